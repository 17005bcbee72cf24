package builder_test

import (
	stderrors "errors"
	"testing"

	"github.com/chipbuild/chipbuild/pkg/builder"
	"github.com/chipbuild/chipbuild/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBaseAccessors(t *testing.T) {
	r := &testutil.RecordingRunner{Dry: true}
	base := builder.NewBase("/work/chip", r, "/tmp/out/telink-light", "telink-tlsr9518adk80d-light")

	assert.Equal(t, "/work/chip", base.Root())
	assert.Equal(t, "/tmp/out/telink-light", base.OutputDir())
	assert.Equal(t, "telink-tlsr9518adk80d-light", base.Identifier())
	assert.True(t, base.DryRun())
	assert.Equal(t, r, base.Runner())
}

func TestBaseExecute(t *testing.T) {
	r := &testutil.RecordingRunner{}
	base := builder.NewBase("/work/chip", r, "/tmp/out", "target")

	err := base.Execute([]string{"ninja", "-C", "/tmp/out"}, "Building target")
	require.NoError(t, err)

	require.Len(t, r.Calls, 1)
	assert.Equal(t, []string{"ninja", "-C", "/tmp/out"}, r.Calls[0].Argv)
	assert.Equal(t, "Building target", r.Calls[0].Title)
}

// lifecycleBuilder counts phase invocations for Run ordering tests
type lifecycleBuilder struct {
	builder.Base

	generated int
	built     int

	generateErr error
	buildErr    error
}

func (b *lifecycleBuilder) Generate() error {
	b.generated++
	return b.generateErr
}

func (b *lifecycleBuilder) Build() error {
	b.built++
	return b.buildErr
}

func (b *lifecycleBuilder) Outputs() (builder.ArtifactMap, error) {
	return builder.ArtifactMap{}, nil
}

func TestRun(t *testing.T) {
	t.Run("generate_then_build", func(t *testing.T) {
		b := &lifecycleBuilder{}

		err := builder.Run(b)
		require.NoError(t, err)
		assert.Equal(t, 1, b.generated)
		assert.Equal(t, 1, b.built)
	})

	t.Run("failed_generate_stops_lifecycle", func(t *testing.T) {
		b := &lifecycleBuilder{generateErr: stderrors.New("generator exploded")}

		err := builder.Run(b)
		require.Error(t, err)
		assert.Equal(t, 1, b.generated)
		assert.Equal(t, 0, b.built)
	})

	t.Run("build_error_propagates", func(t *testing.T) {
		b := &lifecycleBuilder{buildErr: stderrors.New("build exploded")}

		err := builder.Run(b)
		require.Error(t, err)
		assert.Equal(t, 1, b.built)
	})
}
