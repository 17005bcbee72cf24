package chipbuild

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Build firmware for Matter example applications"
	MsgBuildShort      = "Generate and build the selected targets"
	MsgGenShort        = "Generate build configuration without compiling"
	MsgOutputsShort    = "Show the artifact map of a target"
	MsgTargetsShort    = "List all supported target names"
	MsgTargetsLong     = "Targets prints every target name chipbuild can build. Names follow the <family>-<board>-<app> convention and are accepted anywhere a target is expected."
	MsgGenconfigShort  = "Print the default configuration as commented TOML"
	MsgTopicsShort     = "Display available documentation topics"
	MsgTopicsLong      = "Display a list of all available help topics that provide additional documentation beyond command help."
	MsgCompletionShort = "Generate shell completion script"
	MsgVersionShort    = "Print version information"
	MsgManShort        = "Generate man pages"
	MsgManLong         = "Generate a man page for chipbuild and each of its commands into the given directory."

	// Error messages
	MsgErrInitPaths      = "failed to initialize paths: %w"
	MsgErrLoadConfig     = "failed to load configuration: %w"
	MsgErrResolveTargets = "failed to resolve targets: %w"

	// Flag descriptions
	MsgFlagVerbose   = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagDryRun    = "Print toolchain commands instead of executing them"
	MsgFlagRoot      = "CHIP checkout to build from (overrides CHIP_ROOT and config)"
	MsgFlagOut       = "Output prefix build directories nest under"
	MsgFlagCopyTo    = "Copy artifacts to this directory after a successful build"
	MsgFlagArchiveTo = "Write per-target .tar.gz archives to this directory"
	MsgFlagFormat    = "Output format: auto, term, text, or json"
	MsgFlagManDir    = "Directory to write man pages into"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/build-long.txt
	msgBuildLongRaw string
	MsgBuildLong    = strings.TrimSpace(msgBuildLongRaw)

	//go:embed msgs/build-example.txt
	msgBuildExampleRaw string
	MsgBuildExample    = strings.TrimSpace(msgBuildExampleRaw)

	//go:embed msgs/gen-long.txt
	msgGenLongRaw string
	MsgGenLong    = strings.TrimSpace(msgGenLongRaw)

	//go:embed msgs/gen-example.txt
	msgGenExampleRaw string
	MsgGenExample    = strings.TrimSpace(msgGenExampleRaw)

	//go:embed msgs/outputs-long.txt
	msgOutputsLongRaw string
	MsgOutputsLong    = strings.TrimSpace(msgOutputsLongRaw)

	//go:embed msgs/outputs-example.txt
	msgOutputsExampleRaw string
	MsgOutputsExample    = strings.TrimSpace(msgOutputsExampleRaw)

	//go:embed msgs/targets-example.txt
	msgTargetsExampleRaw string
	MsgTargetsExample    = strings.TrimSpace(msgTargetsExampleRaw)

	//go:embed msgs/genconfig-long.txt
	msgGenconfigLongRaw string
	MsgGenconfigLong    = strings.TrimSpace(msgGenconfigLongRaw)

	//go:embed msgs/genconfig-example.txt
	msgGenconfigExampleRaw string
	MsgGenconfigExample    = strings.TrimSpace(msgGenconfigExampleRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/fallback-warning.txt
	msgFallbackWarningRaw string
	MsgFallbackWarning    = strings.TrimSpace(msgFallbackWarningRaw)

	// The usage template keeps its trailing newline; TrimSpace would eat
	// the newline cobra expects at the end of usage output.
	//go:embed msgs/usage-template.txt
	MsgUsageTemplate string
)
