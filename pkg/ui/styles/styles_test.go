package styles_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scarlettos/scpkg/pkg/ui/styles"
)

func TestStyleRegistry(t *testing.T) {
	// Styles the renderers look up by name. A missing entry degrades to
	// unstyled output, so this list is the contract with the renderers.
	expectedStyles := []string{
		"Header",
		"Success", "Error", "Warning", "Info",
		"Bold", "Italic", "Muted",
		"PackageName", "Version", "FilePath",
	}

	for _, styleName := range expectedStyles {
		t.Run(styleName, func(t *testing.T) {
			_, exists := styles.StyleRegistry[styleName]
			assert.True(t, exists, "Style %s should exist in registry", styleName)
		})
	}

	assert.GreaterOrEqual(t, len(styles.StyleRegistry), len(expectedStyles))
}

func TestGetStyleUnknownName(t *testing.T) {
	// Unknown names must not panic, they return a pass-through style
	style := styles.GetStyle("DoesNotExist")
	assert.Equal(t, "plain", style.Render("plain"))
}

func TestLoadStylesFromData(t *testing.T) {
	yaml := `
colors:
  loud:
    light: "196"
    dark: "196"
styles:
  Shout:
    bold: true
    foreground: loud
`
	require.NoError(t, styles.LoadStylesFromData([]byte(yaml)))
	t.Cleanup(func() {
		// Put the embedded theme back for other tests
		require.NoError(t, styles.LoadStylesFromData(styles.EmbeddedStyles()))
	})

	_, exists := styles.StyleRegistry["Shout"]
	assert.True(t, exists)
	_, exists = styles.StyleRegistry["Success"]
	assert.False(t, exists, "loading a theme replaces the registry wholesale")
}

func TestLoadStylesFromDataRejectsBadYAML(t *testing.T) {
	err := styles.LoadStylesFromData([]byte("{{{"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse styles data")
}
