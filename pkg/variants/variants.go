// Package variants defines the closed sets of application and board choices
// a build target is assembled from. Every member maps deterministically to
// the identifiers the external toolchain understands; an enum member without
// a mapping is a programming error, surfaced as UNKNOWN_VARIANT rather than
// a silent default.
package variants

import (
	"strings"

	"github.com/chipbuild/chipbuild/pkg/errors"
)

// TelinkApp selects which example application a Telink target builds.
type TelinkApp int

const (
	// AppLight is the lighting-app example.
	AppLight TelinkApp = iota
)

// telinkApps lists every defined TelinkApp in declaration order.
var telinkApps = []TelinkApp{AppLight}

// ExampleName returns the source directory name under examples/.
func (a TelinkApp) ExampleName() (string, error) {
	switch a {
	case AppLight:
		return "lighting-app", nil
	default:
		return "", errors.Newf(errors.ErrUnknownVariant, "unknown application variant: %d", int(a))
	}
}

// ArtifactPrefix returns the base name used for produced artifact files.
func (a TelinkApp) ArtifactPrefix() (string, error) {
	switch a {
	case AppLight:
		return "chip-telink-lighting-example", nil
	default:
		return "", errors.Newf(errors.ErrUnknownVariant, "unknown application variant: %d", int(a))
	}
}

// String returns the short target-name fragment for the app.
func (a TelinkApp) String() string {
	switch a {
	case AppLight:
		return "light"
	default:
		return "unknown"
	}
}

// ParseTelinkApp parses a target-name fragment into a TelinkApp.
func ParseTelinkApp(s string) (TelinkApp, error) {
	switch strings.ToLower(s) {
	case "light":
		return AppLight, nil
	default:
		return 0, errors.Newf(errors.ErrInvalidInput, "unknown application: %s", s)
	}
}

// TelinkApps returns all defined application variants.
func TelinkApps() []TelinkApp {
	apps := make([]TelinkApp, len(telinkApps))
	copy(apps, telinkApps)
	return apps
}

// TelinkBoard selects the hardware target a Telink build is compiled for.
type TelinkBoard int

const (
	// BoardTLSR9518ADK80D is the TLSR9518A development kit.
	BoardTLSR9518ADK80D TelinkBoard = iota
)

// telinkBoards lists every defined TelinkBoard in declaration order.
var telinkBoards = []TelinkBoard{BoardTLSR9518ADK80D}

// ToolchainTag returns the board name passed verbatim to the toolchain.
func (b TelinkBoard) ToolchainTag() (string, error) {
	switch b {
	case BoardTLSR9518ADK80D:
		return "tlsr9518adk80d", nil
	default:
		return "", errors.Newf(errors.ErrUnknownVariant, "unknown board variant: %d", int(b))
	}
}

// String returns the target-name fragment for the board, which matches the
// toolchain tag for all current boards.
func (b TelinkBoard) String() string {
	switch b {
	case BoardTLSR9518ADK80D:
		return "tlsr9518adk80d"
	default:
		return "unknown"
	}
}

// ParseTelinkBoard parses a target-name fragment into a TelinkBoard.
func ParseTelinkBoard(s string) (TelinkBoard, error) {
	switch strings.ToLower(s) {
	case "tlsr9518adk80d":
		return BoardTLSR9518ADK80D, nil
	default:
		return 0, errors.Newf(errors.ErrInvalidInput, "unknown board: %s", s)
	}
}

// TelinkBoards returns all defined board variants.
func TelinkBoards() []TelinkBoard {
	boards := make([]TelinkBoard, len(telinkBoards))
	copy(boards, telinkBoards)
	return boards
}
