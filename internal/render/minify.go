package render

import (
	"io"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/html"
	"github.com/tdewolff/minify/v2/js"
)

const (
	mediaTypeHTML = "text/html"
	mediaTypeCSS  = "text/css"
	mediaTypeJS   = "application/javascript"
)

// Minifier shrinks a rendered page without changing its meaning.
type Minifier interface {
	Minify(w io.Writer, r io.Reader) error
}

// HTMLMinifier minifies pages with tdewolff/minify. Inline <style> and
// <script> blocks are minified too.
type HTMLMinifier struct {
	m *minify.M
}

// NewHTMLMinifier drops whitespace and comments but keeps document tags, end
// tags, default attribute values and conditional comments.
func NewHTMLMinifier() *HTMLMinifier {
	m := minify.New()
	m.Add(mediaTypeHTML, &html.Minifier{
		KeepDocumentTags:        true,
		KeepConditionalComments: true,
		KeepEndTags:             true,
		KeepDefaultAttrVals:     true,
		KeepWhitespace:          false,
	})
	m.Add(mediaTypeCSS, &css.Minifier{KeepCSS2: true})
	m.Add(mediaTypeJS, &js.Minifier{})
	return &HTMLMinifier{m: m}
}

func (h *HTMLMinifier) Minify(w io.Writer, r io.Reader) error {
	return h.m.Minify(mediaTypeHTML, w, r)
}

// NoopMinifier copies input unchanged.
type NoopMinifier struct{}

func (NoopMinifier) Minify(w io.Writer, r io.Reader) error {
	_, err := io.Copy(w, r)
	return err
}
