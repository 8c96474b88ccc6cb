package posts

import (
	"time"
)

// DateLayout is the layout post dates are rendered with, e.g. "2024-03-01 14:05:09 CET".
const DateLayout = "2006-01-02 15:04:05 MST"

// Post is a fully rendered post. It is immutable once constructed and is
// passed by value.
type Post struct {
	filename string
	title    string
	content  string
	date     string
	source   string
	modified time.Time
}

// NewPost assembles a Post for the Markdown file at source. The output
// filename is derived from source and the date is formatted in loc (local
// time when loc is nil).
func NewPost(source, title, content string, modified time.Time, loc *time.Location) (Post, error) {
	filename, err := DeriveFilename(source)
	if err != nil {
		return Post{}, err
	}
	if loc == nil {
		loc = time.Local
	}
	return Post{
		filename: filename,
		title:    title,
		content:  content,
		date:     modified.In(loc).Format(DateLayout),
		source:   source,
		modified: modified,
	}, nil
}

// Filename is the output file name, e.g. "hello.html".
func (p Post) Filename() string { return p.filename }

// Title is the inner HTML of the post's first level-2 heading.
func (p Post) Title() string { return p.title }

// Content is the full HTML body.
func (p Post) Content() string { return p.content }

// Date is the formatted modification time.
func (p Post) Date() string { return p.date }

// Source is the path of the Markdown file the post was loaded from.
func (p Post) Source() string { return p.source }

// Modified is the raw modification time of the source file.
func (p Post) Modified() time.Time { return p.modified }
