package config

import (
	"os"
	"path/filepath"
	"time"

	"git.home.luguber.info/inful/postgen/internal/foundation/errors"
)

const (
	defaultSourceDir  = "posts"
	defaultSourceGlob = "*.md"
	defaultAssetsDir  = "assets"
	defaultOutputName = "gen"
	defaultSiteTitle  = "Posts"
)

// contextKeyDomain names the applier that rejected the configuration.
const contextKeyDomain = "domain"

// executablePath is replaced in tests.
var executablePath = os.Executable

// DefaultApplier applies defaults for a specific configuration domain.
type DefaultApplier interface {
	ApplyDefaults(cfg *Config) error
	Domain() string
}

// PathsDefaultApplier fills in the input and output locations.
type PathsDefaultApplier struct{}

func (PathsDefaultApplier) Domain() string { return "paths" }

func (PathsDefaultApplier) ApplyDefaults(cfg *Config) error {
	if cfg.SourceDir == "" {
		cfg.SourceDir = defaultSourceDir
	}
	if cfg.SourceGlob == "" {
		cfg.SourceGlob = defaultSourceGlob
	}
	if cfg.AssetsDir == "" {
		cfg.AssetsDir = defaultAssetsDir
	}
	if cfg.OutputDir == "" {
		out, err := DefaultOutputDir()
		if err != nil {
			return err
		}
		cfg.OutputDir = out
	}
	return nil
}

// DefaultOutputDir returns the gen directory next to the running executable.
func DefaultOutputDir() (string, error) {
	exe, err := executablePath()
	if err != nil {
		return "", errors.WrapError(err, errors.CategoryConfig, "cannot resolve executable location").
			Fatal().
			Build()
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Join(filepath.Dir(exe), defaultOutputName), nil
}

// SiteDefaultApplier fills in site and rendering options.
type SiteDefaultApplier struct{}

func (SiteDefaultApplier) Domain() string { return "site" }

func (SiteDefaultApplier) ApplyDefaults(cfg *Config) error {
	if cfg.Site.Title == "" {
		cfg.Site.Title = defaultSiteTitle
	}
	if cfg.Minify == nil {
		enabled := true
		cfg.Minify = &enabled
	}
	if cfg.Assets.Strict == nil {
		strict := true
		cfg.Assets.Strict = &strict
	}

	sortMode, err := indexSortNormalizer.NormalizeWithValidation(string(cfg.Index.Sort))
	if err != nil {
		return errors.WrapError(err, errors.CategoryValidation, "invalid index configuration").Build()
	}
	cfg.Index.Sort = sortMode

	if cfg.Timezone == "" {
		cfg.location = time.Local
		return nil
	}
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return errors.WrapError(err, errors.CategoryValidation, "invalid timezone").
			WithContext("timezone", cfg.Timezone).
			Build()
	}
	cfg.location = loc
	return nil
}

// LoggingDefaultApplier normalizes logging settings.
type LoggingDefaultApplier struct{}

func (LoggingDefaultApplier) Domain() string { return "logging" }

func (LoggingDefaultApplier) ApplyDefaults(cfg *Config) error {
	level, err := logLevelNormalizer.NormalizeWithValidation(string(cfg.Logging.Level))
	if err != nil {
		return errors.WrapError(err, errors.CategoryValidation, "invalid logging configuration").Build()
	}
	format, err := logFormatNormalizer.NormalizeWithValidation(string(cfg.Logging.Format))
	if err != nil {
		return errors.WrapError(err, errors.CategoryValidation, "invalid logging configuration").Build()
	}
	cfg.Logging.Level = level
	cfg.Logging.Format = format
	return nil
}

var defaultAppliers = []DefaultApplier{
	PathsDefaultApplier{},
	SiteDefaultApplier{},
	LoggingDefaultApplier{},
}

func applyDefaults(cfg *Config) error {
	for _, applier := range defaultAppliers {
		if err := applier.ApplyDefaults(cfg); err != nil {
			if ce, ok := errors.AsClassified(err); ok {
				return ce.WithContext(contextKeyDomain, applier.Domain())
			}
			return err
		}
	}
	return nil
}
