package render

import (
	"html/template"

	"git.home.luguber.info/inful/postgen/internal/posts"
)

const (
	IndexTemplate = "index.html.tmpl"
	PostTemplate  = "post.html.tmpl"
	IndexFilename = "index.html"
)

// Renderable is a page the Renderer can produce.
type Renderable interface {
	// TemplateName is the template executed for the page.
	TemplateName() string
	// OutputName is the file name below the output root.
	OutputName() string
	// Data is passed to the template.
	Data(site SiteData) any
}

// SiteData is available to every template as .Site.
type SiteData struct {
	Title string
}

// PostData is the template-facing form of a post. Title and Content are
// trusted HTML produced by the Markdown converter.
type PostData struct {
	Filename string
	Title    template.HTML
	Content  template.HTML
	Date     string
}

func newPostData(p posts.Post) PostData {
	return PostData{
		Filename: p.Filename(),
		Title:    template.HTML(p.Title()),   // #nosec G203 -- rendered from local Markdown
		Content:  template.HTML(p.Content()), // #nosec G203 -- rendered from local Markdown
		Date:     p.Date(),
	}
}

// IndexView renders the post list.
type IndexView struct {
	Posts []posts.Post
}

func (IndexView) TemplateName() string { return IndexTemplate }
func (IndexView) OutputName() string   { return IndexFilename }

func (v IndexView) Data(site SiteData) any {
	items := make([]PostData, len(v.Posts))
	for i, p := range v.Posts {
		items[i] = newPostData(p)
	}
	return struct {
		Site  SiteData
		Posts []PostData
	}{Site: site, Posts: items}
}

// PostView renders a single post.
type PostView struct {
	Post posts.Post
}

func (PostView) TemplateName() string { return PostTemplate }
func (v PostView) OutputName() string { return v.Post.Filename() }

func (v PostView) Data(site SiteData) any {
	return struct {
		Site SiteData
		Post PostData
	}{Site: site, Post: newPostData(v.Post)}
}
