package theme

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultReturnsIndependentCopies(t *testing.T) {
	a := Default()
	a.Spacing["8"] = "99px"
	a.Colors.Text = "#000000"

	b := Default()
	assert.NotSame(t, a, b)
	assert.Equal(t, "8px", b.Spacing["8"])
	assert.Equal(t, "#1A1F2C", b.Colors.Text)
	assert.Equal(t, "8px", b.Flatten()["spacing.8"])
}

func TestTreeMirrorsFlatten(t *testing.T) {
	tokens := Default()
	tree := tokens.Tree()

	for name, want := range tokens.Flatten() {
		var node any = tree
		for _, part := range strings.Split(name, ".") {
			m, ok := node.(map[string]any)
			require.Truef(t, ok, "token %q: segment %q is not a map", name, part)
			node = m[part]
		}
		assert.Equalf(t, want, node, "token %q", name)
	}

	colors := tree["colors"].(map[string]any)
	assert.Equal(t, "#1A1F2C", colors["text"])
	sizes := tree["type"].(map[string]any)["sizes"].(map[string]any)
	assert.Equal(t, "32px", sizes["h1"])
	assert.Equal(t, "600px", tree["layout"].(map[string]any)["container_width"])
}

func TestTreeReturnsFreshMaps(t *testing.T) {
	tokens := Default()
	tree := tokens.Tree()
	tree["colors"].(map[string]any)["text"] = "#000000"

	assert.Equal(t, "#1A1F2C", tokens.Tree()["colors"].(map[string]any)["text"])
}

// TestStableTokenNames pins the names template authors rely on.
func TestStableTokenNames(t *testing.T) {
	want := map[string]string{
		"colors.text":                "#1A1F2C",
		"colors.background":          "#F5F2E8",
		"colors.newsprint_red":       "#ea384c",
		"colors.callout_bg":          "#F8F6F0",
		"type.sizes.h1":              "32px",
		"type.sizes.base":            "16px",
		"type.line_height.normal":    "1.6",
		"type.font_body":             "Georgia, 'Times New Roman', serif",
		"layout.container_width":     "600px",
		"layout.gutter":              "20px",
		"spacing.16":                 "16px",
		"spacing.40":                 "40px",
		"radii.md":                   "4px",
		"components.button.bg":       "#1A1F2C",
		"components.badge.border":    "#D3CAB4",
		"components.button.bg_hover": "#333333",
	}

	flat := Default().Flatten()
	for name, value := range want {
		got, ok := flat[name]
		require.Truef(t, ok, "token %q missing", name)
		assert.Equalf(t, value, got, "token %q", name)
	}
}

func TestFlattenCoversEveryGroup(t *testing.T) {
	flat := Default().Flatten()

	groups := map[string]int{}
	for name, value := range flat {
		assert.NotEmptyf(t, value, "token %q has empty value", name)
		groups[strings.SplitN(name, ".", 2)[0]]++
	}

	assert.Equal(t, 16, groups["colors"])
	assert.Equal(t, 13, groups["type"])
	assert.Equal(t, 12, groups["spacing"])
	assert.Equal(t, 2, groups["radii"])
	assert.Equal(t, 2, groups["layout"])
	assert.Equal(t, 6, groups["components"])
}

func TestFlattenReturnsFreshMap(t *testing.T) {
	a := Default().Flatten()
	a["colors.text"] = "#000000"

	assert.Equal(t, "#1A1F2C", Default().Colors.Text)
	assert.Equal(t, "#1A1F2C", Default().Flatten()["colors.text"])
}

func TestLookup(t *testing.T) {
	v, ok := Default().Lookup("type.sizes.h2")
	assert.True(t, ok)
	assert.Equal(t, "18px", v)

	_, ok = Default().Lookup("colors.nope")
	assert.False(t, ok)
}
