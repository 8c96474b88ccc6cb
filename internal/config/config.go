package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/postgen/internal/foundation/errors"
)

// Config represents the application configuration.
type Config struct {
	Site         SiteConfig    `yaml:"site" toml:"site"`
	SourceDir    string        `yaml:"source_dir" toml:"source_dir"`
	SourceGlob   string        `yaml:"source_glob" toml:"source_glob"`
	AssetsDir    string        `yaml:"assets_dir" toml:"assets_dir"`
	OutputDir    string        `yaml:"output_dir" toml:"output_dir"`
	TemplatesDir string        `yaml:"templates_dir,omitempty" toml:"templates_dir,omitempty"`
	Timezone     string        `yaml:"timezone,omitempty" toml:"timezone,omitempty"`
	Minify       *bool         `yaml:"minify,omitempty" toml:"minify,omitempty"`
	MetricsFile  string        `yaml:"metrics_file,omitempty" toml:"metrics_file,omitempty"`
	Index        IndexConfig   `yaml:"index" toml:"index"`
	Assets       AssetsConfig  `yaml:"assets" toml:"assets"`
	Logging      LoggingConfig `yaml:"logging" toml:"logging"`

	location *time.Location
}

// SiteConfig holds values exposed to templates.
type SiteConfig struct {
	Title string `yaml:"title" toml:"title"`
}

// IndexConfig controls the generated index page.
type IndexConfig struct {
	Sort IndexSort `yaml:"sort" toml:"sort"`
}

// AssetsConfig controls static asset copying.
type AssetsConfig struct {
	// Strict makes an asset copy failure fail the build. Defaults to true.
	Strict *bool `yaml:"strict,omitempty" toml:"strict,omitempty"`
}

// LoggingConfig selects log level and output format.
type LoggingConfig struct {
	Level  LogLevel  `yaml:"level" toml:"level"`
	Format LogFormat `yaml:"format" toml:"format"`
}

// DefaultConfigFiles are tried in order when no explicit path is given.
var DefaultConfigFiles = []string{"postgen.yaml", "postgen.yml", "postgen.toml"}

// MinifyEnabled reports whether rendered pages are minified.
func (c *Config) MinifyEnabled() bool {
	return c.Minify == nil || *c.Minify
}

// AssetsStrict reports whether an asset copy failure is fatal.
func (c *Config) AssetsStrict() bool {
	return c.Assets.Strict == nil || *c.Assets.Strict
}

// Location returns the time zone post dates are formatted in.
func (c *Config) Location() *time.Location {
	if c.location == nil {
		return time.Local
	}
	return c.location
}

// Load loads configuration from configPath. An empty path falls back to the
// first existing entry of DefaultConfigFiles, and to built-in defaults when
// none exists. Defaults are applied and the result is validated.
func Load(configPath string) (*Config, error) {
	if err := loadEnvFile(); err != nil {
		slog.Debug("No .env file loaded", "reason", err)
	}

	if configPath == "" {
		configPath = findDefaultConfig()
	}

	cfg := &Config{}
	if configPath != "" {
		if err := decodeFile(configPath, cfg); err != nil {
			return nil, err
		}
	}

	if level := os.Getenv(EnvLogLevel); level != "" {
		cfg.Logging.Level = LogLevel(level)
	}

	if err := Finalize(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Finalize applies defaults to cfg and validates it. It is idempotent, so
// callers that override fields after Load run it again.
func Finalize(cfg *Config) error {
	if err := applyDefaults(cfg); err != nil {
		return err
	}
	return ValidateConfig(cfg)
}

// Default returns a configuration with every default applied.
func Default() (*Config, error) {
	cfg := &Config{}
	if err := Finalize(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func findDefaultConfig() string {
	for _, candidate := range DefaultConfigFiles {
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate
		}
	}
	return ""
}

func decodeFile(configPath string, cfg *Config) error {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return errors.ConfigError("configuration file not found").
			WithFile(configPath).
			Build()
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return errors.WrapError(err, errors.CategoryConfig, "failed to read config file").
			WithFile(configPath).
			Fatal().
			Build()
	}

	// Expand environment variables in the file content
	expanded := []byte(os.ExpandEnv(string(data)))

	switch strings.ToLower(filepath.Ext(configPath)) {
	case ".toml":
		err = toml.Unmarshal(expanded, cfg)
	default:
		err = yaml.Unmarshal(expanded, cfg)
	}
	if err != nil {
		return errors.WrapError(err, errors.CategoryConfig, "failed to parse config file").
			WithFile(configPath).
			Fatal().
			Build()
	}
	return nil
}

// Init creates a new configuration file with example content. The format
// follows the file extension.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return errors.ConfigError(fmt.Sprintf("configuration file already exists: %s (use --force to overwrite)", configPath)).
			WithFile(configPath).
			Build()
	}

	minify := true
	strict := true
	example := Config{
		Site:        SiteConfig{Title: "My Blog"},
		SourceDir:   defaultSourceDir,
		SourceGlob:  defaultSourceGlob,
		AssetsDir:   defaultAssetsDir,
		OutputDir:   "./gen",
		Minify:      &minify,
		MetricsFile: "",
		Index:       IndexConfig{Sort: IndexSortNone},
		Assets:      AssetsConfig{Strict: &strict},
		Logging:     LoggingConfig{Level: LogLevelInfo, Format: LogFormatText},
	}

	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(configPath)) {
	case ".toml":
		data, err = toml.Marshal(example)
	default:
		data, err = yaml.Marshal(&example)
	}
	if err != nil {
		return errors.WrapError(err, errors.CategoryInternal, "failed to marshal example config").Build()
	}

	if dir := filepath.Dir(configPath); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return errors.WrapError(err, errors.CategoryIO, "failed to create config directory").
				WithFile(dir).
				Build()
		}
	}

	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return errors.WrapError(err, errors.CategoryIO, "failed to write config file").
			WithFile(configPath).
			Build()
	}
	return nil
}
