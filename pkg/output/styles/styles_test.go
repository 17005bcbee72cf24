package styles

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedStylesLoad(t *testing.T) {
	// init already ran; the registry must hold every semantic style the
	// renderers reach for.
	for _, name := range []string{"Header", "Target", "Artifact", "Path", "Success", "Error", "Warning", "Muted"} {
		_, ok := StyleRegistry[name]
		assert.True(t, ok, "missing style %q", name)
	}
}

func TestLoadStylesRejectsMalformedYAML(t *testing.T) {
	err := LoadStyles([]byte("styles: [not a map"))
	require.Error(t, err)

	// Restore the registry for other tests.
	require.NoError(t, LoadStyles(defaultStyles))
}

func TestGetStyleFallsBackToPlain(t *testing.T) {
	style := GetStyle("NoSuchStyle")
	assert.Equal(t, "plain", style.Render("plain"))
}

func TestBuildStyleAppliesAttributes(t *testing.T) {
	def := StyleDef{Bold: true, Foreground: "success", Width: 20}
	style := buildStyle(def)

	assert.True(t, style.GetBold())
	assert.Equal(t, 20, style.GetWidth())
}
