// Package runner provides the execution delegates that builders hand their
// external toolchain commands to. A delegate decides what executing a
// command means: spawning the process, printing it, or recording it for
// tests. Builders read the delegate's dry-run flag but never mutate it.
package runner

// Runner executes external commands on behalf of builders.
type Runner interface {
	// Run executes argv, tagged with a human-readable title for
	// observability. Failures surface as ErrCommandFailed; the underlying
	// tool's own diagnostics are the source of truth and are not
	// interpreted here.
	Run(argv []string, title string) error

	// DryRun reports whether this delegate simulates execution. Builders
	// use it to skip checks that only matter for a real run.
	DryRun() bool
}
