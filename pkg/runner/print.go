package runner

import (
	"fmt"
	"io"

	"github.com/chipbuild/chipbuild/pkg/errors"
	"github.com/chipbuild/chipbuild/pkg/shell"
)

// PrintRunner writes each command to an output stream instead of executing
// it, rendering a script an operator could replay by hand. It is always a
// dry-run delegate.
type PrintRunner struct {
	out io.Writer
}

// NewPrintRunner creates a runner that prints commands to out.
func NewPrintRunner(out io.Writer) *PrintRunner {
	return &PrintRunner{out: out}
}

// Start writes the replay header. Commands are printed relative to the
// checkout root, so the header pins the working directory first.
func (r *PrintRunner) Start(root string) error {
	_, err := fmt.Fprintf(r.out, "# Commands will be run in CHIP project root.\ncd %s\n\n", shell.Quote(root))
	if err != nil {
		return errors.Wrap(err, errors.ErrFileWrite, "failed to write replay header")
	}
	return nil
}

// Run writes the title as a comment followed by the quoted command line.
func (r *PrintRunner) Run(argv []string, title string) error {
	if len(argv) == 0 {
		return errors.New(errors.ErrInvalidInput, "run requires a non-empty command")
	}

	if title != "" {
		if _, err := fmt.Fprintf(r.out, "# %s\n", title); err != nil {
			return errors.Wrap(err, errors.ErrFileWrite, "failed to write command title")
		}
	}
	if _, err := fmt.Fprintf(r.out, "%s\n\n", shell.Join(argv)); err != nil {
		return errors.Wrap(err, errors.ErrFileWrite, "failed to write command line")
	}
	return nil
}

// DryRun always reports true: printing never has build side effects.
func (r *PrintRunner) DryRun() bool {
	return true
}
