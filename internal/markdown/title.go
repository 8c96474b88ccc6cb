package markdown

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"git.home.luguber.info/inful/postgen/internal/foundation/errors"
)

// ErrNoTitleFound is returned when a fragment has no usable level-2 heading.
// Errors carrying a file context still match it with errors.Is.
var ErrNoTitleFound = errors.NoTitleError("no level-2 heading found").Build()

// ExtractTitle returns the inner HTML of the first <h2> in fragment, nested
// markup included. The heading is re-serialized from the parsed tree, so
// character references may differ in spelling from the converter output
// (an apostrophe becomes &#39;) while rendering identically.
// A missing or blank heading yields ErrNoTitleFound.
func ExtractTitle(fragment string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return "", errors.WrapError(err, errors.CategoryNoTitle, "failed to parse HTML fragment").Build()
	}

	heading := doc.Find("h2").First()
	if heading.Length() == 0 {
		return "", ErrNoTitleFound
	}

	title, err := heading.Html()
	if err != nil {
		return "", errors.WrapError(err, errors.CategoryNoTitle, "failed to serialize heading").Build()
	}
	if strings.TrimSpace(title) == "" {
		return "", ErrNoTitleFound
	}
	return title, nil
}
