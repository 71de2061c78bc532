// Package export turns generated articles into downloadable files and previews.
package export

import (
	"fmt"
	"strings"

	"seo_article_generator/generator"
)

// Format selects the file extension of an export. The content is the same
// for every format.
type Format string

const (
	FormatMarkdown Format = "md"
	FormatText     Format = "txt"
)

// File is a named, downloadable export.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// ParseFormat accepts md, markdown, txt and text. Empty means Markdown.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "md", "markdown":
		return FormatMarkdown, nil
	case "txt", "text":
		return FormatText, nil
	default:
		return "", fmt.Errorf("unsupported export format %q", s)
	}
}

// Export returns the article content as a file named "{title}.{ext}".
func Export(a generator.GeneratedArticle, f Format) (File, error) {
	switch f {
	case FormatMarkdown, FormatText:
	default:
		return File{}, fmt.Errorf("unsupported export format %q", f)
	}
	return File{
		Name:        FileName(a.Title, f),
		ContentType: "text/plain; charset=utf-8",
		Data:        []byte(a.Content),
	}, nil
}

func FileName(title string, f Format) string {
	return title + "." + string(f)
}
