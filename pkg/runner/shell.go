package runner

import (
	"io"
	"os"
	"os/exec"

	"github.com/chipbuild/chipbuild/pkg/errors"
	"github.com/chipbuild/chipbuild/pkg/logging"
	"github.com/rs/zerolog"
)

// ShellRunner spawns real processes, streaming their output to the
// configured writers. Toolchain invocations run unbounded; cancellation is
// the operator's job (signals reach the child process group).
type ShellRunner struct {
	logger zerolog.Logger
	dryRun bool

	// Stdout and Stderr receive the child process output. They default to
	// the real standard streams so build output stays visible live.
	Stdout io.Writer
	Stderr io.Writer
}

// NewShellRunner creates a runner that executes commands for real, or only
// logs them when dryRun is set.
func NewShellRunner(dryRun bool) *ShellRunner {
	return &ShellRunner{
		logger: logging.GetLogger("runner.shell"),
		dryRun: dryRun,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// Run executes argv and waits for it to complete.
func (r *ShellRunner) Run(argv []string, title string) error {
	if len(argv) == 0 {
		return errors.New(errors.ErrInvalidInput, "run requires a non-empty command")
	}

	r.logger.Info().
		Str("title", title).
		Strs("argv", argv).
		Msg("Executing command")
	logging.LogCommand(argv[0], argv[1:])

	if r.dryRun {
		r.logger.Info().Str("title", title).Msg("Dry run mode - command would be executed")
		return nil
	}

	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr

	if err := cmd.Run(); err != nil {
		exitCode := -1
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		}

		r.logger.Error().
			Err(err).
			Str("title", title).
			Strs("argv", argv).
			Int("exitCode", exitCode).
			Msg("Command execution failed")

		return errors.Wrapf(err, errors.ErrCommandFailed,
			"failed to execute command: %s", argv[0]).
			WithDetail("title", title).
			WithDetail("exit_code", exitCode)
	}

	r.logger.Debug().Str("title", title).Msg("Command executed successfully")
	return nil
}

// DryRun reports whether this runner only simulates execution.
func (r *ShellRunner) DryRun() bool {
	return r.dryRun
}
