//go:build nocssinline

package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderWithoutInlinerPassesThrough(t *testing.T) {
	assert.Nil(t, NewCSSInliner())

	plain, err := NewRenderer(RendererConfig{}).Render(scenarioDigest())
	require.NoError(t, err)

	inlined, err := NewRenderer(RendererConfig{InlineCSS: true}).Render(scenarioDigest())
	require.NoError(t, err)
	assert.Equal(t, plain, inlined)
}
