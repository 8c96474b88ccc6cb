package site

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"git.home.luguber.info/inful/postgen/internal/foundation/errors"
	"git.home.luguber.info/inful/postgen/internal/logfields"
	"git.home.luguber.info/inful/postgen/internal/observability"
)

// CopyResult summarizes an asset copy.
type CopyResult struct {
	Files   int
	Dirs    int
	Bytes   int64
	Skipped bool
}

// CopyAssets recursively copies the contents of src into dst, overwriting
// files that already exist. A missing src is not an error: the result is
// marked Skipped. Symlinked files are copied as their target; symlinked
// directories are not descended into. The first failure aborts the copy.
func CopyAssets(ctx context.Context, fs afero.Fs, src, dst string) (CopyResult, error) {
	var result CopyResult

	info, err := fs.Stat(src)
	if err != nil {
		if os.IsNotExist(err) {
			observability.WarnContext(ctx, "Assets directory not found, skipping copy", logfields.Path(src))
			result.Skipped = true
			return result, nil
		}
		return result, assetsError(err, src, "failed to stat assets directory")
	}
	if !info.IsDir() {
		return result, errors.AssetsError("assets path is not a directory").WithFile(src).Build()
	}

	err = afero.Walk(fs, src, func(path string, fi os.FileInfo, walkErr error) error {
		if walkErr != nil {
			return assetsError(walkErr, path, "failed to walk assets")
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return assetsError(err, path, "failed to resolve asset path")
		}
		target := filepath.Join(dst, rel)

		if fi.IsDir() {
			if err := fs.MkdirAll(target, dirPermissions); err != nil {
				return assetsError(err, target, "failed to create asset directory")
			}
			if rel != "." {
				result.Dirs++
			}
			return nil
		}
		if fi.Mode()&os.ModeSymlink != 0 {
			resolved, err := fs.Stat(path)
			if err != nil {
				return assetsError(err, path, "failed to resolve symlinked asset")
			}
			fi = resolved
		}
		if !fi.Mode().IsRegular() {
			observability.WarnContext(ctx, "Skipping non-regular asset", logfields.Path(path))
			return nil
		}

		n, err := copyFile(fs, path, target, fi.Mode().Perm())
		if err != nil {
			return assetsError(err, path, "failed to copy asset")
		}
		result.Files++
		result.Bytes += n
		return nil
	})
	if err != nil {
		return result, err
	}

	observability.InfoContext(ctx, "Assets copied",
		logfields.Path(dst),
		logfields.Count(result.Files))
	return result, nil
}

func copyFile(fs afero.Fs, src, dst string, perm os.FileMode) (int64, error) {
	in, err := fs.Open(src)
	if err != nil {
		return 0, err
	}
	defer func() { _ = in.Close() }()

	if perm == 0 {
		perm = filePermissions
	}
	out, err := fs.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return 0, err
	}

	n, err := io.Copy(out, in)
	if closeErr := out.Close(); err == nil {
		err = closeErr
	}
	return n, err
}

func assetsError(err error, path, msg string) error {
	return errors.WrapError(err, errors.CategoryAssets, msg).
		WithFile(path).
		Fatal().
		Build()
}
