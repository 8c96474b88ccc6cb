package posts

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ferrors "git.home.luguber.info/inful/postgen/internal/foundation/errors"
	"git.home.luguber.info/inful/postgen/internal/markdown"
	testutil "git.home.luguber.info/inful/postgen/internal/testing"
)

var fixedTime = time.Date(2024, 3, 1, 14, 5, 9, 0, time.UTC)

func newTestLoader(t *testing.T, fs afero.Fs) *Loader {
	t.Helper()
	l, err := NewLoader(fs, "posts", "", WithLocation(time.UTC))
	require.NoError(t, err)
	return l
}

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return &buf
}

func TestLoadHelloPost(t *testing.T) {
	fs := afero.NewMemMapFs()
	testutil.WritePost(t, fs, "posts", "hello.md", "## Hello World\nSome *text*.", fixedTime)

	posts, errs := newTestLoader(t, fs).Load(context.Background()).ToTuple()
	require.NoError(t, errs)
	require.Len(t, posts, 1)

	p := posts[0]
	assert.Equal(t, "hello.html", p.Filename())
	assert.Equal(t, "Hello World", p.Title())
	assert.Contains(t, p.Content(), "<em>text</em>")
	assert.Equal(t, "2024-03-01 14:05:09 UTC", p.Date())
	assert.Equal(t, filepath.Join("posts", "hello.md"), p.Source())
	assert.True(t, p.Modified().Equal(fixedTime))
}

func TestLoadOrderFollowsDirectoryListing(t *testing.T) {
	fs := afero.NewMemMapFs()
	for _, name := range []string{"c.md", "a.md", "b.md"} {
		testutil.WritePost(t, fs, "posts", name, "## "+name, fixedTime)
	}

	posts, err := newTestLoader(t, fs).Load(context.Background()).ToTuple()
	require.NoError(t, err)

	var names []string
	for _, p := range posts {
		names = append(names, p.Filename())
	}
	assert.Equal(t, []string{"a.html", "b.html", "c.html"}, names)
}

func TestLoadAllOrNothing(t *testing.T) {
	tests := []struct {
		name     string
		files    map[string]string
		failures int
	}{
		{"all valid", map[string]string{"a.md": "## A", "b.md": "## B", "c.md": "## C"}, 0},
		{"one failure", map[string]string{"a.md": "## A", "b.md": "no heading"}, 1},
		{"two of three", map[string]string{"a.md": "# A", "b.md": "## B", "c.md": "### C"}, 2},
		{"all failing", map[string]string{"a.md": "text", "b.md": "more text"}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			for name, content := range tt.files {
				testutil.WritePost(t, fs, "posts", name, content, fixedTime)
			}

			result := newTestLoader(t, fs).Load(context.Background())
			if tt.failures == 0 {
				posts, ok := result.Value()
				require.True(t, ok)
				assert.Len(t, posts, len(tt.files))
				return
			}

			loadErrs, ok := result.Error()
			require.True(t, ok)
			assert.Len(t, loadErrs, tt.failures)
			_, hasPosts := result.Value()
			assert.False(t, hasPosts)
			for _, err := range loadErrs {
				assert.True(t, errors.Is(err, markdown.ErrNoTitleFound), err.Error())
			}
		})
	}
}

func TestLoadErrorReferencesOnlyFailingFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	testutil.WritePost(t, fs, "posts", "good.md", "## Good", fixedTime)
	testutil.WritePost(t, fs, "posts", "bad.md", "nothing here", fixedTime)

	logs := captureLogs(t)
	_, err := newTestLoader(t, fs).Load(context.Background()).ToTuple()
	require.Error(t, err)

	var loadErrs LoadErrors
	require.ErrorAs(t, err, &loadErrs)
	assert.Equal(t, []string{filepath.Join("posts", "bad.md")}, loadErrs.Files())
	assert.NotContains(t, err.Error(), "good.md")

	// Loading still reports progress for the good file before the verdict.
	assert.Contains(t, logs.String(), "Post loaded")
	assert.Contains(t, logs.String(), "Failed to load post")
	assert.Contains(t, logs.String(), "category=no_title")
}

func TestLoadEmptyAndMissingDirectory(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		require.NoError(t, fs.MkdirAll("posts", 0o750))

		posts, err := newTestLoader(t, fs).Load(context.Background()).ToTuple()
		require.NoError(t, err)
		assert.NotNil(t, posts)
		assert.Empty(t, posts)
	})

	t.Run("missing", func(t *testing.T) {
		logs := captureLogs(t)
		posts, err := newTestLoader(t, afero.NewMemMapFs()).Load(context.Background()).ToTuple()
		require.NoError(t, err)
		assert.Empty(t, posts)
		assert.Contains(t, logs.String(), "Source directory does not exist")
	})
}

func TestLoadSkipsNonMatchingEntries(t *testing.T) {
	fs := afero.NewMemMapFs()
	testutil.WritePost(t, fs, "posts", "post.md", "## Post", fixedTime)
	testutil.WritePost(t, fs, "posts", "notes.txt", "no heading", fixedTime)
	testutil.WritePost(t, fs, "posts", "drafts.md/inner.md", "no heading", fixedTime)

	posts, err := newTestLoader(t, fs).Load(context.Background()).ToTuple()
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "post.html", posts[0].Filename())
}

func TestLoadCustomPattern(t *testing.T) {
	fs := afero.NewMemMapFs()
	testutil.WritePost(t, fs, "posts", "a.markdown", "## A", fixedTime)
	testutil.WritePost(t, fs, "posts", "b.md", "## B", fixedTime)

	l, err := NewLoader(fs, "posts", "*.{md,markdown}", WithLocation(time.UTC))
	require.NoError(t, err)
	posts, loadErr := l.Load(context.Background()).ToTuple()
	require.NoError(t, loadErr)
	assert.Len(t, posts, 2)

	_, err = NewLoader(fs, "posts", "[md")
	require.Error(t, err)
	assert.Equal(t, ferrors.CategoryValidation, ferrors.GetCategory(err))
}

func TestLoadInvalidUTF8Name(t *testing.T) {
	fs := afero.NewMemMapFs()
	testutil.WritePost(t, fs, "posts", "\xff\xfe.md", "## Broken name", fixedTime)

	loadErrs, ok := newTestLoader(t, fs).Load(context.Background()).Error()
	require.True(t, ok)
	require.Len(t, loadErrs, 1)
	assert.True(t, errors.Is(loadErrs[0], ErrInvalidPath))
	assert.True(t, ferrors.HasCategory(loadErrs[0], ferrors.CategoryInvalidPath))
}

func TestLoadZeroModificationTime(t *testing.T) {
	fs := afero.NewMemMapFs()
	testutil.WritePost(t, fs, "posts", "old.md", "## Old", time.Time{})

	loadErrs, ok := newTestLoader(t, fs).Load(context.Background()).Error()
	require.True(t, ok)
	require.Len(t, loadErrs, 1)
	assert.True(t, ferrors.HasCategory(loadErrs[0], ferrors.CategoryIO))
}

type unreadableFs struct {
	afero.Fs
	name string
}

func (f unreadableFs) Open(name string) (afero.File, error) {
	if filepath.Base(name) == f.name {
		return nil, os.ErrPermission
	}
	return f.Fs.Open(name)
}

func TestLoadReadFailure(t *testing.T) {
	mem := afero.NewMemMapFs()
	testutil.WritePost(t, mem, "posts", "locked.md", "## Locked", fixedTime)
	testutil.WritePost(t, mem, "posts", "open.md", "## Open", fixedTime)

	loadErrs, ok := newTestLoader(t, unreadableFs{Fs: mem, name: "locked.md"}).Load(context.Background()).Error()
	require.True(t, ok)
	require.Len(t, loadErrs, 1)
	assert.True(t, ferrors.HasCategory(loadErrs[0], ferrors.CategoryIO))
	assert.True(t, errors.Is(loadErrs[0], os.ErrPermission))
}

// osPostsDir creates <tmp>/posts with a.md and returns both paths.
func osPostsDir(t *testing.T) (string, string) {
	t.Helper()
	root := t.TempDir()
	dir := filepath.Join(root, "posts")
	require.NoError(t, os.MkdirAll(dir, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.md"), []byte("## A"), 0o600))
	return root, dir
}

func symlinkOrSkip(t *testing.T, target, link string) {
	t.Helper()
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}
}

func TestLoadFollowsSymlinkedPost(t *testing.T) {
	root, dir := osPostsDir(t)
	require.NoError(t, os.WriteFile(filepath.Join(root, "shared.md"), []byte("## Shared *post*"), 0o600))
	symlinkOrSkip(t, filepath.Join("..", "shared.md"), filepath.Join(dir, "linked.md"))

	l, err := NewLoader(afero.NewOsFs(), dir, "")
	require.NoError(t, err)
	posts, loadErr := l.Load(context.Background()).ToTuple()
	require.NoError(t, loadErr)

	var names []string
	for _, p := range posts {
		names = append(names, p.Filename())
	}
	assert.Equal(t, []string{"a.html", "linked.html"}, names)
	assert.Equal(t, "Shared <em>post</em>", posts[1].Title())
}

func TestLoadDanglingSymlinkFailsLoad(t *testing.T) {
	root, dir := osPostsDir(t)
	symlinkOrSkip(t, filepath.Join(root, "gone.md"), filepath.Join(dir, "broken.md"))

	l, err := NewLoader(afero.NewOsFs(), dir, "")
	require.NoError(t, err)
	result := l.Load(context.Background())

	_, ok := result.Value()
	assert.False(t, ok)
	loadErrs, failed := result.Error()
	require.True(t, failed)
	require.Len(t, loadErrs, 1)
	assert.True(t, ferrors.HasCategory(loadErrs[0], ferrors.CategoryIO))
	assert.Equal(t, []string{filepath.Join(dir, "broken.md")}, loadErrs.Files())
}

func TestLoadSkipsSymlinkToDirectory(t *testing.T) {
	root, dir := osPostsDir(t)
	require.NoError(t, os.MkdirAll(filepath.Join(root, "archive"), 0o750))
	symlinkOrSkip(t, filepath.Join(root, "archive"), filepath.Join(dir, "archive.md"))

	logs := captureLogs(t)
	l, err := NewLoader(afero.NewOsFs(), dir, "")
	require.NoError(t, err)
	posts, loadErr := l.Load(context.Background()).ToTuple()
	require.NoError(t, loadErr)
	assert.Len(t, posts, 1)
	assert.Contains(t, logs.String(), "Skipping symlink to non-regular file")
}

func TestLoadSkipsHiddenFiles(t *testing.T) {
	fs := afero.NewMemMapFs()
	testutil.WritePost(t, fs, "posts", "post.md", "## Post", fixedTime)
	testutil.WritePost(t, fs, "posts", ".md", "no heading", fixedTime)
	testutil.WritePost(t, fs, "posts", ".draft.md", "## Draft", fixedTime)

	logs := captureLogs(t)
	posts, err := newTestLoader(t, fs).Load(context.Background()).ToTuple()
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "post.html", posts[0].Filename())
	assert.Contains(t, logs.String(), "Skipping hidden file")
}

func TestWithConverter(t *testing.T) {
	fs := afero.NewMemMapFs()
	testutil.WritePost(t, fs, "posts", "a.md", "## ~~Old~~ New", fixedTime)

	shared := markdown.NewConverter()
	for _, c := range []*markdown.Converter{shared, nil} {
		l, err := NewLoader(fs, "posts", "", WithConverter(c))
		require.NoError(t, err)
		require.NotNil(t, l.converter)

		posts, loadErr := l.Load(context.Background()).ToTuple()
		require.NoError(t, loadErr)
		assert.Equal(t, "<del>Old</del> New", posts[0].Title())
	}
}
