package testing

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"
)

// FileAssertions provides utilities for asserting file system state in tests.
type FileAssertions struct {
	t       *testing.T
	fs      afero.Fs
	baseDir string
}

// NewFileAssertions creates a new file assertions helper rooted at baseDir on fs.
func NewFileAssertions(t *testing.T, fs afero.Fs, baseDir string) *FileAssertions {
	return &FileAssertions{
		t:       t,
		fs:      fs,
		baseDir: baseDir,
	}
}

func (fa *FileAssertions) path(relativePath string) string {
	return filepath.Join(fa.baseDir, relativePath)
}

// AssertFileExists validates that a file exists
func (fa *FileAssertions) AssertFileExists(relativePath string) *FileAssertions {
	fa.t.Helper()
	fullPath := fa.path(relativePath)
	if ok, _ := afero.Exists(fa.fs, fullPath); !ok {
		fa.t.Errorf("Expected file to exist: %s", fullPath)
	}
	return fa
}

// AssertFileNotExists validates that a file does not exist
func (fa *FileAssertions) AssertFileNotExists(relativePath string) *FileAssertions {
	fa.t.Helper()
	fullPath := fa.path(relativePath)
	if ok, _ := afero.Exists(fa.fs, fullPath); ok {
		fa.t.Errorf("Expected file to not exist: %s", fullPath)
	}
	return fa
}

// AssertDirExists validates that a directory exists
func (fa *FileAssertions) AssertDirExists(relativePath string) *FileAssertions {
	fa.t.Helper()
	fullPath := fa.path(relativePath)
	stat, err := fa.fs.Stat(fullPath)
	if err != nil {
		fa.t.Errorf("Expected directory to exist: %s", fullPath)
	} else if !stat.IsDir() {
		fa.t.Errorf("Expected %s to be a directory, but it's a file", fullPath)
	}
	return fa
}

// AssertFileContains validates that a file contains expected content
func (fa *FileAssertions) AssertFileContains(relativePath, expectedContent string) *FileAssertions {
	fa.t.Helper()
	fullPath := fa.path(relativePath)

	content, err := afero.ReadFile(fa.fs, fullPath)
	if err != nil {
		fa.t.Errorf("Failed to read file %s: %v", fullPath, err)
		return fa
	}

	if !strings.Contains(string(content), expectedContent) {
		fa.t.Errorf("Expected file %s to contain %q\nActual content:\n%s",
			relativePath, expectedContent, string(content))
	}
	return fa
}

// AssertFileCount validates the number of regular files in a directory (non-recursive).
func (fa *FileAssertions) AssertFileCount(relativePath string, expected int) *FileAssertions {
	fa.t.Helper()
	if got := fa.CountFiles(relativePath); got != expected {
		fa.t.Errorf("Expected %d files in %s, found %d: %v", expected, relativePath, got, fa.ListFiles(relativePath))
	}
	return fa
}

// CountFiles returns the number of files in a directory (non-recursive)
func (fa *FileAssertions) CountFiles(relativePath string) int {
	fa.t.Helper()
	return len(fa.ListFiles(relativePath))
}

// ListFiles returns a list of file names in a directory
func (fa *FileAssertions) ListFiles(relativePath string) []string {
	fa.t.Helper()
	fullPath := fa.path(relativePath)

	entries, err := afero.ReadDir(fa.fs, fullPath)
	if err != nil {
		fa.t.Logf("Failed to read directory %s: %v", fullPath, err)
		return nil
	}

	var files []string
	for _, entry := range entries {
		if !entry.IsDir() {
			files = append(files, entry.Name())
		}
	}
	return files
}

// GetFileContent reads and returns the content of a file
func (fa *FileAssertions) GetFileContent(relativePath string) string {
	fa.t.Helper()
	fullPath := fa.path(relativePath)

	content, err := afero.ReadFile(fa.fs, fullPath)
	if err != nil {
		fa.t.Fatalf("Failed to read file %s: %v", fullPath, err)
	}
	return string(content)
}
