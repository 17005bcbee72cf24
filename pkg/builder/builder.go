// Package builder defines the lifecycle every target-family builder
// implements: generate the on-disk toolchain configuration, run the external
// build tool against it, and report where the artifacts land. Builders hold
// no in-memory build state; everything persistent lives in the output
// directory and is owned by the external toolchain.
package builder

// ArtifactMap maps logical artifact names to absolute file paths. Names are
// unique per builder invocation; the map is produced fresh on every call.
type ArtifactMap map[string]string

// Builder is the three-phase build lifecycle.
type Builder interface {
	// Generate materializes the toolchain build configuration inside the
	// output directory. It is idempotent: once the directory exists,
	// Generate is a strict no-op, including in error paths.
	Generate() error

	// Build invokes the external build tool against the already-generated
	// output directory. It assumes Generate has run and relies on the
	// tool's own error reporting if it has not.
	Build() error

	// Outputs returns the artifact map. It is computed purely from the
	// output-path convention; entries may name files that do not exist
	// yet if Build has not completed.
	Outputs() (ArtifactMap, error)

	// Identifier returns the target name this builder was constructed for.
	Identifier() string
}

// Run drives a builder through generate and build in order, stopping at the
// first failure.
func Run(b Builder) error {
	if err := b.Generate(); err != nil {
		return err
	}
	return b.Build()
}
