// Package telink builds Matter example applications for Telink boards using
// the Zephyr toolchain. Generation runs west against a sourced Zephyr
// environment; compilation drives ninja against the generated tree.
package telink

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/chipbuild/chipbuild/pkg/builder"
	"github.com/chipbuild/chipbuild/pkg/environ"
	"github.com/chipbuild/chipbuild/pkg/errors"
	"github.com/chipbuild/chipbuild/pkg/logging"
	"github.com/chipbuild/chipbuild/pkg/runner"
	"github.com/chipbuild/chipbuild/pkg/shell"
	"github.com/chipbuild/chipbuild/pkg/variants"
	"github.com/rs/zerolog"
)

// Environment variables that locate the Zephyr installation.
const (
	// EnvTelinkZephyrBase is the family-specific Zephyr location and wins
	// when both variables are set.
	EnvTelinkZephyrBase = "TELINK_ZEPHYR_BASE"

	// EnvZephyrBase is the generic fallback, accepted for backward
	// compatibility.
	// TODO: drop the fallback once TELINK_ZEPHYR_BASE is set in all build images
	EnvZephyrBase = "ZEPHYR_BASE"
)

// Config assembles everything a Telink builder needs. Paths must be
// absolute; the zero values of App and Board select the lighting example on
// the TLSR9518A development kit.
type Config struct {
	// Root is the CHIP checkout root.
	Root string

	// Runner executes the composed toolchain commands.
	Runner runner.Runner

	// OutputDir is the build-output directory for this target.
	OutputDir string

	// Identifier is the target name used in command titles and logs.
	Identifier string

	// App and Board select what gets built and for which hardware.
	App   variants.TelinkApp
	Board variants.TelinkBoard

	// Env is the environment snapshot consulted for the Zephyr location.
	// Defaults to the process environment when nil.
	Env environ.Environment
}

// Builder compiles one (application, board) pair. It is stateless across
// calls; all build state lives on disk in the output directory.
type Builder struct {
	builder.Base

	app   variants.TelinkApp
	board variants.TelinkBoard
	env   environ.Environment

	logger zerolog.Logger
}

var _ builder.Builder = (*Builder)(nil)

// New creates a Telink builder from cfg.
func New(cfg Config) *Builder {
	env := cfg.Env
	if env == nil {
		env = environ.FromOS()
	}

	return &Builder{
		Base:   builder.NewBase(cfg.Root, cfg.Runner, cfg.OutputDir, cfg.Identifier),
		app:    cfg.App,
		board:  cfg.Board,
		env:    env,
		logger: logging.GetLogger("builder.telink"),
	}
}

// Generate materializes the west build configuration. Once the output
// directory exists the call is a strict no-op: no environment checks, no
// command execution.
func (b *Builder) Generate() error {
	if _, err := os.Stat(b.OutputDir()); err == nil {
		b.logger.Debug().
			Str("outputDir", b.OutputDir()).
			Msg("Output directory exists, skipping generation")
		return nil
	}

	done := logging.LogOperationStart(b.logger, "generate")
	defer done()

	script, err := b.generateScript()
	if err != nil {
		return err
	}

	// The Zephyr environment only exists after sourcing zephyr-env.sh, so
	// this one step must go through a shell. Everything else is plain argv.
	return b.Execute([]string{"bash", "-c", script}, "Generating "+b.Identifier())
}

// generateScript composes the shell script for the generation step. Which
// export line it opens with depends on which environment variable locates
// Zephyr: the family-specific variable is re-exported as ZEPHYR_BASE, while
// the fallback is left untouched. Dry runs skip the environment check
// entirely and keep the re-export.
func (b *Builder) generateScript() (string, error) {
	script := "export ZEPHYR_BASE=\"$TELINK_ZEPHYR_BASE\"\n"

	if !b.DryRun() {
		if !b.env.Has(EnvTelinkZephyrBase) {
			script = ""
			if !b.env.Has(EnvZephyrBase) {
				return "", errors.Newf(errors.ErrMissingEnvironment,
					"Telink builds require %s or %s to be set",
					EnvTelinkZephyrBase, EnvZephyrBase).
					WithDetail("variables", []string{EnvTelinkZephyrBase, EnvZephyrBase})
			}
		}
	}

	board, err := b.board.ToolchainTag()
	if err != nil {
		return "", err
	}
	example, err := b.app.ExampleName()
	if err != nil {
		return "", err
	}

	sourceDir := filepath.Join(b.Root(), "examples", example, "telink")

	// TODO: read the SDK location from TELINK_ZEPHYR_SDK_DIR instead of hardcoding zephyr-sdk-0.13.0
	script += strings.Join([]string{
		"export ZEPHYR_TOOLCHAIN_VARIANT=zephyr",
		`export ZEPHYR_SDK_INSTALL_DIR="$ZEPHYR_BASE/../../zephyr-sdk-0.13.0"`,
		`source "$ZEPHYR_BASE/zephyr-env.sh";`,
		fmt.Sprintf("west build --cmake-only -d %s -b %s %s",
			shell.Quote(b.OutputDir()), board, shell.Quote(sourceDir)),
	}, "\n")

	return script, nil
}

// Build compiles the generated tree.
func (b *Builder) Build() error {
	b.logger.Info().
		Str("outputDir", b.OutputDir()).
		Msg("Compiling Telink application")

	done := logging.LogOperationStart(b.logger, "build")
	defer done()

	return b.Execute([]string{"ninja", "-C", b.OutputDir()}, "Building "+b.Identifier())
}

// Outputs returns the fixed two-entry artifact map the Zephyr toolchain
// produces. No filesystem check: the entries are a path convention, valid
// before Build has run.
func (b *Builder) Outputs() (builder.ArtifactMap, error) {
	prefix, err := b.app.ArtifactPrefix()
	if err != nil {
		return nil, err
	}

	return builder.ArtifactMap{
		prefix + ".elf": filepath.Join(b.OutputDir(), "zephyr", "zephyr.elf"),
		prefix + ".map": filepath.Join(b.OutputDir(), "zephyr", "zephyr.map"),
	}, nil
}
