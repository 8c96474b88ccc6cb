package config

import (
	"path/filepath"

	"github.com/gobwas/glob"

	"git.home.luguber.info/inful/postgen/internal/foundation/errors"
)

// ValidateConfig checks a configuration that already had its defaults applied.
func ValidateConfig(cfg *Config) error {
	validator := newConfigurationValidator(cfg)
	return validator.validate()
}

type configurationValidator struct {
	config *Config
}

func newConfigurationValidator(config *Config) *configurationValidator {
	return &configurationValidator{config: config}
}

func (cv *configurationValidator) validate() error {
	if err := cv.validatePaths(); err != nil {
		return err
	}
	return cv.validateSourceGlob()
}

// validatePaths rejects an output directory that would overwrite the inputs.
func (cv *configurationValidator) validatePaths() error {
	out := filepath.Clean(cv.config.OutputDir)
	inputs := []struct{ name, dir string }{
		{"source_dir", cv.config.SourceDir},
		{"assets_dir", cv.config.AssetsDir},
	}
	for _, in := range inputs {
		if filepath.Clean(in.dir) == out {
			return errors.ValidationError("output_dir must differ from " + in.name).
				WithContext("output_dir", cv.config.OutputDir).
				Build()
		}
	}
	return nil
}

func (cv *configurationValidator) validateSourceGlob() error {
	if _, err := glob.Compile(cv.config.SourceGlob); err != nil {
		return errors.WrapError(err, errors.CategoryValidation, "invalid source_glob").
			WithContext("source_glob", cv.config.SourceGlob).
			Fatal().
			Build()
	}
	return nil
}
