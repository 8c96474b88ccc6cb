package commands

import (
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/postgen/internal/config"
)

// Global context passed to subcommands.
type Global struct {
	Logger *slog.Logger
}

// CLI definition & global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path (default: postgen.yaml, postgen.yml or postgen.toml if present)" type:"path"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Build BuildCmd `cmd:"" default:"1" help:"Generate the site (default command)"`
	Init  InitCmd  `cmd:"" help:"Write an example configuration file"`
}

// logOutput is where log records go; replaced in tests.
var logOutput io.Writer = os.Stderr

// AfterApply runs after flag parsing and installs a logger honouring
// --verbose and POSTGEN_LOG_LEVEL until the configuration is loaded.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	level := config.NormalizeLogLevel(os.Getenv(config.EnvLogLevel))
	slog.SetDefault(NewLogger(logOutput, config.LogFormatText, effectiveLevel(level, c.Verbose)))
	return nil
}

// NewLogger builds the process logger for the given format and level.
func NewLogger(w io.Writer, format config.LogFormat, level slog.Level) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	if format == config.LogFormatJSON {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// ConfigureLogging replaces the default logger once the configuration is known.
func ConfigureLogging(g *Global, cfg *config.Config, verbose bool) {
	logger := NewLogger(logOutput, cfg.Logging.Format, effectiveLevel(cfg.Logging.Level, verbose))
	slog.SetDefault(logger)
	if g != nil {
		g.Logger = logger
	}
}

func effectiveLevel(level config.LogLevel, verbose bool) slog.Level {
	if verbose {
		return slog.LevelDebug
	}
	return level.SlogLevel()
}
