// Package errors provides the classified error primitives used across postgen.
//
// Every failure that can end a build is a ClassifiedError: it carries a category
// (io, invalid_path, no_title, template, directory, ...), a severity and structured
// context such as the file it relates to. Errors are created with the fluent builder:
//
//	err := errors.NewError(errors.CategoryNoTitle, "post has no title").
//		WithContext("file", path).
//		WithCause(markdown.ErrNoTitleFound).
//		Build()
//
// CLIErrorAdapter turns a classified error into a diagnostic line and an exit code.
package errors
