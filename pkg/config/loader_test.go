package config

import (
	"strings"
	"testing"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chipbuild/chipbuild/pkg/errors"
	"github.com/chipbuild/chipbuild/pkg/paths"
	"github.com/chipbuild/chipbuild/pkg/testutil"
)

// testPaths returns a Paths whose config dir and source root live in fresh
// temp dirs, so tests never read real config files.
func testPaths(t *testing.T) (paths.Paths, string, string) {
	t.Helper()

	configDir := t.TempDir()
	root := t.TempDir()
	t.Setenv(paths.EnvConfigDir, configDir)

	p, err := paths.New(root)
	require.NoError(t, err)
	return p, configDir, root
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "", cfg.SourceRoot)
	assert.Equal(t, "out", cfg.OutputDir)
	assert.Equal(t, "", cfg.CopyArtifactsTo)
	assert.Equal(t, "", cfg.CreateArchivesTo)
	assert.Equal(t, 0, cfg.Verbosity)
}

func TestLoad(t *testing.T) {
	t.Run("defaults_only", func(t *testing.T) {
		p, _, _ := testPaths(t)

		cfg, err := Load(p)
		require.NoError(t, err)
		assert.Equal(t, Default(), cfg)
	})

	t.Run("user_config_overrides_defaults", func(t *testing.T) {
		p, configDir, _ := testPaths(t)
		testutil.CreateFile(t, configDir, paths.ConfigFileName, "output_dir = \"/user/out\"\n")

		cfg, err := Load(p)
		require.NoError(t, err)
		assert.Equal(t, "/user/out", cfg.OutputDir)
	})

	t.Run("root_config_overrides_user_config", func(t *testing.T) {
		p, configDir, root := testPaths(t)
		testutil.CreateFile(t, configDir, paths.ConfigFileName, "output_dir = \"/user/out\"\nverbosity = 1\n")
		testutil.CreateFile(t, root, paths.ConfigFileName, "output_dir = \"/root/out\"\n")

		cfg, err := Load(p)
		require.NoError(t, err)
		assert.Equal(t, "/root/out", cfg.OutputDir)
		// Keys the root config doesn't set keep the user value.
		assert.Equal(t, 1, cfg.Verbosity)
	})

	t.Run("env_overrides_files", func(t *testing.T) {
		p, _, root := testPaths(t)
		testutil.CreateFile(t, root, paths.ConfigFileName, "output_dir = \"/root/out\"\n")
		t.Setenv("CHIPBUILD_OUTPUT_DIR", "/env/out")
		t.Setenv("CHIPBUILD_VERBOSITY", "2")

		cfg, err := Load(p)
		require.NoError(t, err)
		assert.Equal(t, "/env/out", cfg.OutputDir)
		assert.Equal(t, 2, cfg.Verbosity)
	})

	t.Run("overrides_beat_everything", func(t *testing.T) {
		p, _, root := testPaths(t)
		testutil.CreateFile(t, root, paths.ConfigFileName, "output_dir = \"/root/out\"\n")
		t.Setenv("CHIPBUILD_OUTPUT_DIR", "/env/out")

		cfg, err := LoadWithOverrides(p, map[string]interface{}{
			"output_dir": "/flag/out",
		})
		require.NoError(t, err)
		assert.Equal(t, "/flag/out", cfg.OutputDir)
	})

	t.Run("malformed_config_fails", func(t *testing.T) {
		p, _, root := testPaths(t)
		testutil.CreateFile(t, root, paths.ConfigFileName, "output_dir = [broken\n")

		_, err := Load(p)
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrConfigParse))
	})
}

func TestGenerateConfigContent(t *testing.T) {
	content, err := GenerateConfigContent()
	require.NoError(t, err)

	assert.Contains(t, content, "# chipbuild configuration")
	assert.Contains(t, content, "# output_dir = 'out'")

	// Every non-blank line is a comment; nothing takes effect until the
	// user uncomments it.
	var valueLines []string
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		require.True(t, strings.HasPrefix(trimmed, "#"), "line not commented: %q", line)

		uncommented := strings.TrimPrefix(trimmed, "# ")
		if strings.Contains(uncommented, " = ") {
			valueLines = append(valueLines, uncommented)
		}
	}

	// Uncommenting the value lines round-trips back to the defaults.
	var cfg Config
	require.NoError(t, toml.Unmarshal([]byte(strings.Join(valueLines, "\n")), &cfg))
	assert.Equal(t, *Default(), cfg)
}
