package posts

import (
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"git.home.luguber.info/inful/postgen/internal/foundation/errors"
)

// ErrInvalidPath is returned when a source path cannot be turned into an
// output filename.
var ErrInvalidPath = errors.InvalidPathError("invalid post path").Build()

// LoadErrors is the complete set of per-file failures from one load.
type LoadErrors []error

func (e LoadErrors) Error() string {
	switch len(e) {
	case 0:
		return "no post errors"
	case 1:
		return e[0].Error()
	}
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("%d posts failed to load: %s", len(e), strings.Join(msgs, "; "))
}

// Unwrap exposes the individual errors to errors.Is and errors.As.
func (e LoadErrors) Unwrap() []error { return e }

// Files returns the file each error refers to, in order.
func (e LoadErrors) Files() []string {
	files := make([]string, 0, len(e))
	for _, err := range e {
		if ce, ok := errors.AsClassified(err); ok && ce.File() != "" {
			files = append(files, ce.File())
		}
	}
	return files
}

// DeriveFilename maps a Markdown source path to its output filename by
// replacing the extension of the base name with ".html".
func DeriveFilename(source string) (string, error) {
	base := filepath.Base(source)
	if !utf8.ValidString(base) {
		return "", invalidPath(source, fmt.Sprintf("file name %q is not valid UTF-8", base))
	}
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if stem == "" || stem == "." || base == string(filepath.Separator) {
		return "", invalidPath(source, "path has no file name")
	}
	return stem + ".html", nil
}

func invalidPath(source, reason string) error {
	return ErrInvalidPath.
		WithContext(errors.ContextKeyFile, source).
		WithContext("reason", reason)
}
