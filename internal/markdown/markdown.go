// Package markdown turns post sources into HTML fragments and reads metadata
// back out of the rendered HTML.
package markdown

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// Converter renders Markdown to HTML. The zero value is not usable; use NewConverter.
type Converter struct {
	md goldmark.Markdown
}

// NewConverter returns a CommonMark converter with strikethrough enabled.
// Raw HTML in the source is passed through unchanged.
func NewConverter() *Converter {
	return &Converter{
		md: goldmark.New(
			goldmark.WithExtensions(extension.Strikethrough),
			goldmark.WithRendererOptions(html.WithUnsafe()),
		),
	}
}

// Convert renders src and returns the HTML fragment. Rendering into memory
// cannot fail for valid UTF-8 input; if goldmark reports an error anyway the
// output produced so far is returned.
func (c *Converter) Convert(src []byte) string {
	var buf bytes.Buffer
	_ = c.md.Convert(src, &buf)
	return buf.String()
}

var defaultConverter = NewConverter()

// Convert renders src with the default converter.
func Convert(src string) string {
	return defaultConverter.Convert([]byte(src))
}
