package builder

import (
	"github.com/chipbuild/chipbuild/pkg/runner"
)

// Base provides the shared state for concrete builders: the checkout root,
// the per-target output directory, the target identifier, and the execution
// delegate. Callers supply absolute paths; Base does not resolve them.
type Base struct {
	root       string
	outputDir  string
	identifier string
	runner     runner.Runner
}

// NewBase creates the shared builder state.
func NewBase(root string, r runner.Runner, outputDir, identifier string) Base {
	return Base{
		root:       root,
		outputDir:  outputDir,
		identifier: identifier,
		runner:     r,
	}
}

// Root returns the source checkout root.
func (b *Base) Root() string {
	return b.root
}

// OutputDir returns the build-output directory for this target.
func (b *Base) OutputDir() string {
	return b.outputDir
}

// Identifier returns the target name.
func (b *Base) Identifier() string {
	return b.identifier
}

// Runner returns the execution delegate.
func (b *Base) Runner() runner.Runner {
	return b.runner
}

// DryRun reports the delegate's dry-run flag.
func (b *Base) DryRun() bool {
	return b.runner.DryRun()
}

// Execute hands argv to the execution delegate under the given title.
func (b *Base) Execute(argv []string, title string) error {
	return b.runner.Run(argv, title)
}
