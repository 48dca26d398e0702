//go:build !nocssinline

package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSSInlinerProcess(t *testing.T) {
	in := `<html><head><style>p { color: red; }</style></head><body><p>hello</p></body></html>`

	out, err := CSSInliner{}.Process(in)
	require.NoError(t, err)
	assert.Contains(t, out, `<p style="`)
	assert.Contains(t, out, "color: red")
	assert.Contains(t, out, "hello")
}

func TestNewCSSInlinerAvailable(t *testing.T) {
	assert.NotNil(t, NewCSSInliner())
}

func TestRenderWithInlinedCSS(t *testing.T) {
	r := NewRenderer(RendererConfig{InlineCSS: true})

	html, err := r.Render(scenarioDigest())
	require.NoError(t, err)

	assert.Contains(t, html, "Paper: X")
	assert.Contains(t, html, "CRITICAL")
	assert.True(t, strings.Contains(html, `<body style="`), "body rules should be inlined")
}
