package posts

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gobwas/glob"
	"github.com/spf13/afero"

	"git.home.luguber.info/inful/postgen/internal/foundation"
	"git.home.luguber.info/inful/postgen/internal/foundation/errors"
	"git.home.luguber.info/inful/postgen/internal/logfields"
	"git.home.luguber.info/inful/postgen/internal/markdown"
	"git.home.luguber.info/inful/postgen/internal/observability"
)

// DefaultPattern matches Markdown sources.
const DefaultPattern = "*.md"

// LoadResult is either every loaded post or every load error.
type LoadResult = foundation.Result[[]Post, LoadErrors]

// Loader discovers and loads posts from a single directory.
type Loader struct {
	fs        afero.Fs
	dir       string
	pattern   glob.Glob
	location  *time.Location
	converter *markdown.Converter
}

// Option configures a Loader.
type Option func(*Loader)

// WithLocation sets the time zone post dates are formatted in.
func WithLocation(loc *time.Location) Option {
	return func(l *Loader) {
		if loc != nil {
			l.location = loc
		}
	}
}

// WithConverter replaces the Markdown converter.
func WithConverter(c *markdown.Converter) Option {
	return func(l *Loader) {
		if c != nil {
			l.converter = c
		}
	}
}

// NewLoader returns a Loader for files in dir whose name matches pattern.
// An empty pattern means DefaultPattern.
func NewLoader(fs afero.Fs, dir, pattern string, opts ...Option) (*Loader, error) {
	if pattern == "" {
		pattern = DefaultPattern
	}
	g, err := glob.Compile(pattern)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryValidation, "invalid source pattern").
			WithContext("pattern", pattern).
			Build()
	}
	l := &Loader{
		fs:        fs,
		dir:       dir,
		pattern:   g,
		location:  time.Local,
		converter: markdown.NewConverter(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l, nil
}

// Load reads every matching file in directory listing order, following
// symlinks and skipping hidden files. Each post is logged as it loads and
// each failure as it occurs; the result holds either all posts or all errors.
// A missing directory is an empty, successful load.
func (l *Loader) Load(ctx context.Context) LoadResult {
	entries, err := afero.ReadDir(l.fs, l.dir)
	if err != nil {
		if os.IsNotExist(err) {
			observability.WarnContext(ctx, "Source directory does not exist, no posts to load", logfields.Path(l.dir))
			return foundation.Ok[[]Post, LoadErrors]([]Post{})
		}
		loadErr := errors.WrapError(err, errors.CategoryIO, "failed to list source directory").
			WithFile(l.dir).
			Build()
		observability.ErrorContext(ctx, "Post discovery failed", logfields.Path(l.dir), logfields.Error(loadErr))
		return foundation.Err[[]Post, LoadErrors](LoadErrors{loadErr})
	}

	results := make([]foundation.Result[Post, error], 0, len(entries))
	for _, entry := range entries {
		if !l.pattern.Match(entry.Name()) {
			continue
		}
		path := filepath.Join(l.dir, entry.Name())
		fileCtx := observability.WithFile(ctx, path)

		if strings.HasPrefix(entry.Name(), ".") {
			observability.InfoContext(fileCtx, "Skipping hidden file")
			continue
		}

		regular, err := l.isRegular(fileCtx, entry, path)
		if err == nil && !regular {
			continue
		}

		var post Post
		if err == nil {
			post, err = l.loadOne(path)
		}
		if err != nil {
			observability.ErrorContext(fileCtx, "Failed to load post",
				logfields.Category(string(errors.GetCategory(err))),
				logfields.Error(err))
			results = append(results, foundation.Err[Post, error](err))
			continue
		}
		observability.InfoContext(fileCtx, "Post loaded",
			logfields.Title(post.Title()),
			logfields.Date(post.Date()))
		results = append(results, foundation.Ok[Post, error](post))
	}

	return foundation.Fold(results, func(errs []error) LoadErrors { return LoadErrors(errs) })
}

// isRegular reports whether entry is a regular file. Symlinks are followed;
// a link whose target cannot be resolved is an io error.
func (l *Loader) isRegular(ctx context.Context, entry os.FileInfo, path string) (bool, error) {
	if entry.Mode()&os.ModeSymlink == 0 {
		return entry.Mode().IsRegular(), nil
	}
	target, err := l.fs.Stat(path)
	if err != nil {
		return false, errors.WrapError(err, errors.CategoryIO, "failed to resolve symlinked post").
			WithFile(path).
			Build()
	}
	if !target.Mode().IsRegular() {
		observability.WarnContext(ctx, "Skipping symlink to non-regular file")
		return false, nil
	}
	return true, nil
}

func (l *Loader) loadOne(path string) (Post, error) {
	if _, err := DeriveFilename(path); err != nil {
		return Post{}, err
	}

	src, err := afero.ReadFile(l.fs, path)
	if err != nil {
		return Post{}, errors.WrapError(err, errors.CategoryIO, "failed to read post").
			WithFile(path).
			Build()
	}

	html := l.converter.Convert(src)

	title, err := markdown.ExtractTitle(html)
	if err != nil {
		if ce, ok := errors.AsClassified(err); ok {
			return Post{}, ce.WithContext(errors.ContextKeyFile, path)
		}
		return Post{}, err
	}

	info, err := l.fs.Stat(path)
	if err != nil {
		return Post{}, errors.WrapError(err, errors.CategoryIO, "failed to stat post").
			WithFile(path).
			Build()
	}
	if info.ModTime().IsZero() {
		return Post{}, errors.IOError("modification time unavailable").
			WithFile(path).
			Build()
	}

	return NewPost(path, title, html, info.ModTime(), l.location)
}
