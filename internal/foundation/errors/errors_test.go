package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestClassifiedError(t *testing.T) {
	t.Run("Basic error creation", func(t *testing.T) {
		err := NewError(CategoryConfig, "invalid configuration").
			WithSeverity(SeverityFatal).
			WithContext("file", "postgen.yaml").
			Build()

		if err.Category() != CategoryConfig {
			t.Errorf("expected category %s, got %s", CategoryConfig, err.Category())
		}
		if err.Severity() != SeverityFatal {
			t.Errorf("expected severity %s, got %s", SeverityFatal, err.Severity())
		}
		if err.Message() != "invalid configuration" {
			t.Errorf("expected message 'invalid configuration', got %s", err.Message())
		}

		file, exists := err.Context().GetString("file")
		if !exists || file != "postgen.yaml" {
			t.Errorf("expected context file=postgen.yaml, got %v", file)
		}
	})

	t.Run("Error detection", func(t *testing.T) {
		err := ConfigError("test error").Build()

		if !IsClassified(err) {
			t.Error("expected error to be classified")
		}
		if !HasCategory(err, CategoryConfig) {
			t.Error("expected error to have config category")
		}
		if !HasSeverity(err, SeverityFatal) {
			t.Error("expected error to have fatal severity")
		}
		if !err.IsFatal() {
			t.Error("expected config error to be fatal")
		}
	})

	t.Run("Detection through wrapping", func(t *testing.T) {
		inner := NoTitleError("post has no title").WithFile("posts/a.md").Build()
		wrapped := errors.Join(errors.New("outer"), inner)

		if GetCategory(wrapped) != CategoryNoTitle {
			t.Errorf("expected category %s, got %s", CategoryNoTitle, GetCategory(wrapped))
		}
	})

	t.Run("Message names the file", func(t *testing.T) {
		err := IOError("read failed").WithFile("posts/a.md").WithCause(errors.New("boom")).Build()

		if !strings.Contains(err.Error(), "posts/a.md: read failed") {
			t.Errorf("expected file in message, got %q", err.Error())
		}
		if err.File() != "posts/a.md" {
			t.Errorf("expected File() posts/a.md, got %q", err.File())
		}
	})
}

func TestErrorBuilder(t *testing.T) {
	t.Run("Fluent API", func(t *testing.T) {
		originalErr := errors.New("original error")
		err := WrapError(originalErr, CategoryIO, "write failed").
			Warning().
			WithContext("path", "gen/index.html").
			WithContext("bytes", 512).
			Build()

		if err.Category() != CategoryIO {
			t.Errorf("expected category %s, got %s", CategoryIO, err.Category())
		}
		if err.Severity() != SeverityWarning {
			t.Errorf("expected severity %s, got %s", SeverityWarning, err.Severity())
		}
		if !errors.Is(err, originalErr) {
			t.Error("expected error to wrap original error")
		}

		path, _ := err.Context().GetString("path")
		if path != "gen/index.html" {
			t.Errorf("expected path context 'gen/index.html', got %s", path)
		}
	})

	t.Run("Convenience constructors", func(t *testing.T) {
		tests := []struct {
			name     string
			builder  *ErrorBuilder
			category ErrorCategory
			severity ErrorSeverity
		}{
			{"ConfigError", ConfigError("test"), CategoryConfig, SeverityFatal},
			{"ValidationError", ValidationError("test"), CategoryValidation, SeverityFatal},
			{"IOError", IOError("test"), CategoryIO, SeverityError},
			{"InvalidPathError", InvalidPathError("test"), CategoryInvalidPath, SeverityError},
			{"NoTitleError", NoTitleError("test"), CategoryNoTitle, SeverityError},
			{"TemplateError", TemplateError("test"), CategoryTemplate, SeverityFatal},
			{"DirectoryError", DirectoryError("test"), CategoryDirectory, SeverityFatal},
			{"AssetsError", AssetsError("test"), CategoryAssets, SeverityFatal},
			{"InternalError", InternalError("test"), CategoryInternal, SeverityFatal},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				err := tt.builder.Build()
				if err.Category() != tt.category {
					t.Errorf("expected category %s, got %s", tt.category, err.Category())
				}
				if err.Severity() != tt.severity {
					t.Errorf("expected severity %s, got %s", tt.severity, err.Severity())
				}
			})
		}
	})

	t.Run("WithContext returns a copy", func(t *testing.T) {
		base := IOError("read failed").Build()
		derived := base.WithContext("file", "posts/b.md")

		if base.File() != "" {
			t.Errorf("expected base to stay without file, got %q", base.File())
		}
		if derived.File() != "posts/b.md" {
			t.Errorf("expected derived file posts/b.md, got %q", derived.File())
		}
	})
}

func TestErrorContext(t *testing.T) {
	t.Run("Context operations", func(t *testing.T) {
		ctx := make(ErrorContext)
		ctx = ctx.Set("key1", "value1")
		ctx = ctx.Set("key2", 42)

		value1, exists1 := ctx.GetString("key1")
		if !exists1 || value1 != "value1" {
			t.Errorf("expected key1=value1, got %v", value1)
		}

		value2, exists2 := ctx.Get("key2")
		if !exists2 || value2 != 42 {
			t.Errorf("expected key2=42, got %v", value2)
		}

		_, exists3 := ctx.Get("nonexistent")
		if exists3 {
			t.Error("expected nonexistent key to not exist")
		}
	})

	t.Run("Context merge", func(t *testing.T) {
		ctx1 := make(ErrorContext)
		ctx1 = ctx1.Set("key1", "value1")
		ctx1 = ctx1.Set("shared", "original")

		ctx2 := make(ErrorContext)
		ctx2 = ctx2.Set("key2", "value2")
		ctx2 = ctx2.Set("shared", "overridden")

		merged := ctx1.Merge(ctx2)

		value1, _ := merged.GetString("key1")
		value2, _ := merged.GetString("key2")
		shared, _ := merged.GetString("shared")

		if value1 != "value1" {
			t.Errorf("expected key1=value1, got %s", value1)
		}
		if value2 != "value2" {
			t.Errorf("expected key2=value2, got %s", value2)
		}
		if shared != "overridden" {
			t.Errorf("expected shared=overridden, got %s", shared)
		}
	})
}
