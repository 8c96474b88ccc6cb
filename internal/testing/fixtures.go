package testing

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/afero"
)

// WriteFile creates path (and its parents) on fs with content.
func WriteFile(t *testing.T, fs afero.Fs, path, content string) {
	t.Helper()
	if err := fs.MkdirAll(filepath.Dir(path), testDirPermissions); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := afero.WriteFile(fs, path, []byte(content), testFilePermissions); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// WritePost writes a Markdown post into dir and pins its modification time.
func WritePost(t *testing.T, fs afero.Fs, dir, name, content string, modified time.Time) string {
	t.Helper()
	path := filepath.Join(dir, name)
	WriteFile(t, fs, path, content)
	if err := fs.Chtimes(path, modified, modified); err != nil {
		t.Fatalf("chtimes %s: %v", path, err)
	}
	return path
}
