package export

import (
	"bytes"
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"seo_article_generator/generator"
)

var md = goldmark.New(goldmark.WithExtensions(extension.GFM))

// previewMarkdown 预览时在正文前加上标题。
func previewMarkdown(a generator.GeneratedArticle) string {
	return fmt.Sprintf("## %s\n\n%s\n", a.Title, a.Content)
}

// RenderHTML converts the article preview to HTML. Raw HTML in the content is
// dropped by goldmark's default renderer.
func RenderHTML(a generator.GeneratedArticle) (string, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(previewMarkdown(a)), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// RenderTerminal renders the article preview for an ANSI terminal.
// style is a glamour standard style name; empty picks one from the terminal.
func RenderTerminal(a generator.GeneratedArticle, width int, style string) (string, error) {
	opts := []glamour.TermRendererOption{}
	if style == "" {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle(style))
	}
	if width > 0 {
		opts = append(opts, glamour.WithWordWrap(width))
	}
	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return "", err
	}
	return r.Render(previewMarkdown(a))
}
