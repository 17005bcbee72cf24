// TEST TYPE: Unit Test
// DEPENDENCIES: Registry state from init, temp dirs
// PURPOSE: Verify target naming, enumeration, pattern matching, and builder
// construction for registered families

package targets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chipbuild/chipbuild/pkg/environ"
	"github.com/chipbuild/chipbuild/pkg/errors"
	"github.com/chipbuild/chipbuild/pkg/testutil"
)

func TestTargetName(t *testing.T) {
	target := Target{Family: "telink", Board: "tlsr9518adk80d", App: "light"}
	assert.Equal(t, "telink-tlsr9518adk80d-light", target.Name())
}

func TestAllEnumeratesRegisteredFamilies(t *testing.T) {
	all := All()
	require.NotEmpty(t, all)

	names := Names()
	assert.Contains(t, names, "telink-tlsr9518adk80d-light")

	// Enumeration is stable across calls.
	assert.Equal(t, names, Names())

	for i := 1; i < len(names); i++ {
		assert.Less(t, names[i-1], names[i], "names must be sorted")
	}
}

func TestFamiliesContainsTelink(t *testing.T) {
	assert.Contains(t, Families(), TelinkFamily)
}

func TestResolve(t *testing.T) {
	t.Run("known_name", func(t *testing.T) {
		target, err := Resolve("telink-tlsr9518adk80d-light")
		require.NoError(t, err)
		assert.Equal(t, TelinkFamily, target.Family)
		assert.Equal(t, "tlsr9518adk80d", target.Board)
		assert.Equal(t, "light", target.App)
	})

	t.Run("unknown_name", func(t *testing.T) {
		_, err := Resolve("telink-tlsr9518adk80d-lock")
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrTargetNotFound))

		details := errors.GetErrorDetails(err)
		require.NotNil(t, details)
		assert.Contains(t, details, "known")
	})
}

func TestMatch(t *testing.T) {
	tests := []struct {
		name      string
		patterns  []string
		wantNames []string
		wantErr   errors.ErrorCode
	}{
		{
			name:      "empty_selects_all",
			patterns:  nil,
			wantNames: Names(),
		},
		{
			name:      "exact_name",
			patterns:  []string{"telink-tlsr9518adk80d-light"},
			wantNames: []string{"telink-tlsr9518adk80d-light"},
		},
		{
			name:      "family_glob",
			patterns:  []string{"telink-*"},
			wantNames: Names(),
		},
		{
			name:      "duplicate_patterns_dedupe",
			patterns:  []string{"telink-*", "telink-tlsr9518adk80d-light"},
			wantNames: Names(),
		},
		{
			name:     "no_match_is_an_error",
			patterns: []string{"esp32-*"},
			wantErr:  errors.ErrTargetNotFound,
		},
		{
			name:     "malformed_pattern",
			patterns: []string{"telink-["},
			wantErr:  errors.ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matched, err := Match(tt.patterns)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.True(t, errors.IsErrorCode(err, tt.wantErr))
				return
			}
			require.NoError(t, err)

			names := make([]string, len(matched))
			for i, target := range matched {
				names[i] = target.Name()
			}
			assert.Equal(t, tt.wantNames, names)
		})
	}
}

func TestOutputDirNestsUnderPrefix(t *testing.T) {
	got := OutputDir("/tmp/out", "telink-tlsr9518adk80d-light")
	assert.Equal(t, filepath.Join("/tmp/out", "telink-tlsr9518adk80d-light"), got)
}

func TestNewBuilder(t *testing.T) {
	t.Run("constructs_for_known_target", func(t *testing.T) {
		root := t.TempDir()
		outPrefix := t.TempDir()

		b, err := NewBuilder("telink-tlsr9518adk80d-light", Options{
			Root:      root,
			OutPrefix: outPrefix,
			Runner:    &testutil.RecordingRunner{},
			Env:       environ.Environment{},
		})
		require.NoError(t, err)

		assert.Equal(t, "telink-tlsr9518adk80d-light", b.Identifier())

		outputs, err := b.Outputs()
		require.NoError(t, err)
		wantDir := filepath.Join(outPrefix, "telink-tlsr9518adk80d-light")
		assert.Equal(t, filepath.Join(wantDir, "zephyr", "zephyr.elf"),
			outputs["chip-telink-lighting-example.elf"])
	})

	t.Run("resolves_relative_paths", func(t *testing.T) {
		wd, err := os.Getwd()
		require.NoError(t, err)

		b, err := NewBuilder("telink-tlsr9518adk80d-light", Options{
			Root:      "checkout",
			OutPrefix: "out",
			Runner:    &testutil.RecordingRunner{},
			Env:       environ.Environment{},
		})
		require.NoError(t, err)

		outputs, err := b.Outputs()
		require.NoError(t, err)
		assert.Equal(t,
			filepath.Join(wd, "out", "telink-tlsr9518adk80d-light", "zephyr", "zephyr.map"),
			outputs["chip-telink-lighting-example.map"])
	})

	t.Run("unknown_target", func(t *testing.T) {
		_, err := NewBuilder("telink-tlsr9518adk80d-lock", Options{
			Root:      t.TempDir(),
			OutPrefix: t.TempDir(),
			Runner:    &testutil.RecordingRunner{},
		})
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrTargetNotFound))
	})
}

func TestNewBuildersMatchesPatterns(t *testing.T) {
	builders, err := NewBuilders([]string{"telink-*"}, Options{
		Root:      t.TempDir(),
		OutPrefix: t.TempDir(),
		Runner:    &testutil.RecordingRunner{},
		Env:       environ.Environment{},
	})
	require.NoError(t, err)
	require.Len(t, builders, len(All()))

	for i, b := range builders {
		assert.Equal(t, All()[i].Name(), b.Identifier())
	}
}
