// Package markdown renders Chronik synopses with goldmark.
package markdown

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/sommertheater/portal/internal/domain/shows"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

type goldmarkRenderer struct {
	md goldmark.Markdown
}

// NewRenderer returns a renderer with GitHub-flavoured tables, strikethrough
// and autolinks. Raw HTML in the source is dropped.
func NewRenderer() shows.MarkdownRenderer {
	return &goldmarkRenderer{
		md: goldmark.New(
			goldmark.WithExtensions(
				extension.Table,
				extension.Strikethrough,
				extension.Linkify,
			),
		),
	}
}

func (r *goldmarkRenderer) Render(source string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(source), &buf); err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return template.HTML(buf.String()), nil
}
