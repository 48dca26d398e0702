package digest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paperboy/internal/render"
)

func TestSampleCoversEverySection(t *testing.T) {
	d := Sample()

	assert.NotEmpty(t, d.Highlights)
	assert.NotEmpty(t, d.DirectlyRelevant)
	assert.NotEmpty(t, d.ExpandKnowledge)
	assert.NotEmpty(t, d.QuickScan)
	assert.Equal(t, 3, d.ArticleCount())
	require.NotNil(t, d.DirectlyRelevant[0].PDFURL)
	assert.Nil(t, d.ExpandKnowledge[0].PDFURL)
}

func TestSampleIsFresh(t *testing.T) {
	a := Sample()
	a.Highlights[0].Title = "changed"
	*a.DirectlyRelevant[0].PDFURL = "changed"

	b := Sample()
	assert.Equal(t, "Top theme", b.Highlights[0].Title)
	assert.Equal(t, "https://example.com/paper.pdf", *b.DirectlyRelevant[0].PDFURL)
}

func TestSampleIsValid(t *testing.T) {
	assert.NoError(t, Validate(Sample()))
}

func TestSampleRenders(t *testing.T) {
	r := render.NewRenderer(render.RendererConfig{})

	html, err := r.Render(Sample())
	require.NoError(t, err)
	assert.Contains(t, html, "Paper: Robust reasoning in LLM systems (2025)")
	assert.Contains(t, html, "https://example.com/paper.pdf")
	assert.Contains(t, html, "NOTEWORTHY")
}
