// Package config resolves the chipbuild configuration by layering embedded
// defaults, the user config file, the checkout config file, and CHIPBUILD_
// environment variables, in increasing precedence.
package config

// Config holds the resolved chipbuild configuration.
type Config struct {
	// SourceRoot is the CHIP checkout builds read sources from. Empty
	// means discover it from CHIP_ROOT, the enclosing git repository, or
	// the current directory.
	SourceRoot string `koanf:"source_root" toml:"source_root"`

	// OutputDir is the prefix build outputs nest under; each target
	// builds in OutputDir/<target-name>.
	OutputDir string `koanf:"output_dir" toml:"output_dir"`

	// CopyArtifactsTo names a directory artifacts are copied to after a
	// successful build. Empty disables copying.
	CopyArtifactsTo string `koanf:"copy_artifacts_to" toml:"copy_artifacts_to"`

	// CreateArchivesTo names a directory per-target artifact archives are
	// written to. Empty disables archiving.
	CreateArchivesTo string `koanf:"create_archives_to" toml:"create_archives_to"`

	// Verbosity is the baseline log verbosity; -v flags add to it.
	Verbosity int `koanf:"verbosity" toml:"verbosity"`
}
