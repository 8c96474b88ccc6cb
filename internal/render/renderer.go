package render

import (
	"bytes"
	"html/template"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"git.home.luguber.info/inful/postgen/internal/foundation/errors"
	"git.home.luguber.info/inful/postgen/internal/posts"
)

const outputFilePermissions = 0o644

// Renderer produces HTML pages from Renderable views.
type Renderer struct {
	fs        afero.Fs
	templates fs.FS
	tmpl      *template.Template
	minifier  Minifier
	site      SiteData
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithSiteTitle sets .Site.Title for every page.
func WithSiteTitle(title string) Option {
	return func(r *Renderer) { r.site.Title = title }
}

// WithMinifier replaces the HTML minifier. Pass NoopMinifier{} to disable minification.
func WithMinifier(m Minifier) Option {
	return func(r *Renderer) {
		if m != nil {
			r.minifier = m
		}
	}
}

// WithTemplates loads templates from fsys instead of the embedded defaults.
func WithTemplates(fsys fs.FS) Option {
	return func(r *Renderer) {
		if fsys != nil {
			r.templates = fsys
		}
	}
}

// WithTemplatesDir loads templates from dir on the renderer's filesystem.
// An empty dir keeps the embedded defaults.
func WithTemplatesDir(dir string) Option {
	return func(r *Renderer) {
		if dir != "" {
			r.templates = DirTemplates(r.fs, dir)
		}
	}
}

// NewRenderer parses the templates once; a broken template fails here rather
// than on the first page.
func NewRenderer(afs afero.Fs, opts ...Option) (*Renderer, error) {
	r := &Renderer{
		fs:        afs,
		templates: DefaultTemplates(),
		minifier:  NewHTMLMinifier(),
	}
	for _, opt := range opts {
		opt(r)
	}

	tmpl, err := LoadTemplates(r.templates)
	if err != nil {
		return nil, err
	}
	r.tmpl = tmpl
	return r, nil
}

// RenderIndex writes <outputRoot>/index.html listing ps in the given order.
func (r *Renderer) RenderIndex(ps []posts.Post, outputRoot string) error {
	return r.Render(IndexView{Posts: ps}, outputRoot)
}

// RenderPost writes <outputRoot>/<post filename>.
func (r *Renderer) RenderPost(p posts.Post, outputRoot string) error {
	return r.Render(PostView{Post: p}, outputRoot)
}

// Render executes, minifies and writes a single view.
func (r *Renderer) Render(v Renderable, outputRoot string) error {
	page, err := r.RenderBytes(v)
	if err != nil {
		return err
	}
	return r.write(outputRoot, v.OutputName(), page)
}

// RenderBytes executes and minifies a view without writing it.
func (r *Renderer) RenderBytes(v Renderable) ([]byte, error) {
	name := v.TemplateName()

	var raw bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&raw, name, v.Data(r.site)); err != nil {
		return nil, templateError(err, name)
	}

	var out bytes.Buffer
	if err := r.minifier.Minify(&out, &raw); err != nil {
		return nil, templateError(err, name)
	}
	return out.Bytes(), nil
}

func (r *Renderer) write(outputRoot, name string, data []byte) error {
	cleanRel := filepath.Clean(name)
	if name == "" || filepath.IsAbs(cleanRel) || strings.HasPrefix(cleanRel, "..") {
		return errors.InvalidPathError("output path escapes output directory").
			WithFile(name).
			Build()
	}

	fullPath := filepath.Join(outputRoot, cleanRel)
	if err := afero.WriteFile(r.fs, fullPath, data, outputFilePermissions); err != nil {
		return errors.WrapError(err, errors.CategoryIO, "failed to write page").
			WithFile(fullPath).
			Fatal().
			Build()
	}
	return nil
}
