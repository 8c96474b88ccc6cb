// Package render turns posts into HTML pages.
//
// Each page is described by a Renderable view. The Renderer executes the
// view's template, passes the result through a Minifier and writes it below
// the output root:
//
//	r, err := render.NewRenderer(fs, render.WithSiteTitle("Notes"))
//	if err != nil {
//	    return err
//	}
//	if err := r.RenderIndex(posts, "gen"); err != nil {
//	    return err
//	}
//
// Templates default to the embedded index.html.tmpl and post.html.tmpl and
// can be replaced from a directory with WithTemplatesDir. Post titles and
// bodies are trusted HTML and are inserted without escaping.
package render
