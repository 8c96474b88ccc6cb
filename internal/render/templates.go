package render

import (
	"embed"
	"html/template"
	"io/fs"

	"github.com/spf13/afero"

	"git.home.luguber.info/inful/postgen/internal/foundation/errors"
)

//go:embed templates/*.tmpl
var embeddedTemplates embed.FS

const templateErrorMessage = "template rendering failed"

// ErrTemplate matches every template failure with errors.Is.
var ErrTemplate = errors.TemplateError(templateErrorMessage).Build()

func templateError(err error, name string) error {
	return errors.WrapError(err, errors.CategoryTemplate, templateErrorMessage).
		WithContext("template", name).
		Fatal().
		Build()
}

// DefaultTemplates returns the embedded templates.
func DefaultTemplates() fs.FS {
	sub, err := fs.Sub(embeddedTemplates, "templates")
	if err != nil {
		// embed guarantees the directory exists
		panic(err)
	}
	return sub
}

// DirTemplates exposes the templates in dir on afs as an fs.FS.
func DirTemplates(afs afero.Fs, dir string) fs.FS {
	return afero.NewIOFS(afero.NewBasePathFs(afs, dir))
}

// LoadTemplates parses the index and post templates from fsys.
func LoadTemplates(fsys fs.FS) (*template.Template, error) {
	root := template.New("postgen").Option("missingkey=error")
	for _, name := range []string{IndexTemplate, PostTemplate} {
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, templateError(err, name)
		}
		if _, err := root.New(name).Parse(string(data)); err != nil {
			return nil, templateError(err, name)
		}
	}
	return root, nil
}
