package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seo_article_generator/generator"
)

func article() generator.GeneratedArticle {
	return generator.GeneratedArticle{
		ID:      "a1",
		Title:   "Best Coffee",
		Content: "## Intro\n\nGrind **fresh**.\n\n<script>alert(1)</script>\n",
	}
}

func TestExport_SameBytesDifferentExtension(t *testing.T) {
	mdFile, err := Export(article(), FormatMarkdown)
	require.NoError(t, err)
	txtFile, err := Export(article(), FormatText)
	require.NoError(t, err)

	assert.Equal(t, "Best Coffee.md", mdFile.Name)
	assert.Equal(t, "Best Coffee.txt", txtFile.Name)
	assert.Equal(t, []byte(article().Content), mdFile.Data)
	assert.Equal(t, mdFile.Data, txtFile.Data)
}

func TestExport_UnknownFormat(t *testing.T) {
	_, err := Export(article(), Format("pdf"))
	assert.Error(t, err)
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"": FormatMarkdown, "MD": FormatMarkdown, "markdown": FormatMarkdown, "txt": FormatText, " text ": FormatText} {
		f, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, f, in)
	}
	_, err := ParseFormat("docx")
	assert.Error(t, err)
}

func TestRenderHTML(t *testing.T) {
	html, err := RenderHTML(article())
	require.NoError(t, err)
	assert.Contains(t, html, "<h2>Best Coffee</h2>")
	assert.Contains(t, html, "<h2>Intro</h2>")
	assert.Contains(t, html, "<strong>fresh</strong>")
	assert.NotContains(t, html, "<script>")
}

func TestRenderTerminal(t *testing.T) {
	out, err := RenderTerminal(article(), 80, "notty")
	require.NoError(t, err)
	assert.Contains(t, out, "Best Coffee")
	assert.Contains(t, out, "Intro")
}
