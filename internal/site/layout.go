// Package site prepares the generated site tree: output directories and
// copied static assets.
package site

import (
	"context"
	"path/filepath"

	"github.com/spf13/afero"

	"git.home.luguber.info/inful/postgen/internal/foundation/errors"
	"git.home.luguber.info/inful/postgen/internal/logfields"
	"git.home.luguber.info/inful/postgen/internal/observability"
)

const (
	// PostsDir is reserved under the output root and created empty.
	PostsDir = "posts"
	// AssetsDir receives the copied static assets.
	AssetsDir = "assets"

	dirPermissions  = 0o755
	filePermissions = 0o644
)

const directoryErrorMessage = "failed to prepare output directory"

// ErrDirectory matches every directory preparation failure with errors.Is.
var ErrDirectory = errors.DirectoryError(directoryErrorMessage).Build()

// Layout returns the directories EnsureDirectories creates, parents first.
func Layout(root string) []string {
	return []string{
		root,
		filepath.Join(root, PostsDir),
		filepath.Join(root, AssetsDir),
	}
}

// EnsureDirectories creates root, root/posts and root/assets when missing.
// Existing directories are left untouched, so repeated calls perform no writes.
func EnsureDirectories(ctx context.Context, fs afero.Fs, root string) error {
	for _, dir := range Layout(root) {
		info, err := fs.Stat(dir)
		switch {
		case err == nil && info.IsDir():
			continue
		case err == nil:
			return errors.DirectoryError(directoryErrorMessage).
				WithFile(dir).
				WithContext("reason", "path exists and is not a directory").
				Build()
		}

		if mkErr := fs.MkdirAll(dir, dirPermissions); mkErr != nil {
			return errors.WrapError(mkErr, errors.CategoryDirectory, directoryErrorMessage).
				WithFile(dir).
				Fatal().
				Build()
		}
		observability.InfoContext(ctx, "Created directory", logfields.Path(dir))
	}
	return nil
}
