package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/postgen/internal/build"
	"git.home.luguber.info/inful/postgen/internal/config"
	"git.home.luguber.info/inful/postgen/internal/logfields"
	"git.home.luguber.info/inful/postgen/internal/metrics"
)

// stdout receives the user-facing summary; replaced in tests.
var stdout io.Writer = os.Stdout

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	Output      string `short:"o" help:"Output directory for the generated site (default: gen next to the executable)"`
	Source      string `short:"s" help:"Directory holding the Markdown posts"`
	Assets      string `short:"a" help:"Directory copied to <output>/assets"`
	Templates   string `short:"t" help:"Directory with index.html.tmpl and post.html.tmpl overriding the built-in templates"`
	NoMinify    bool   `name:"no-minify" help:"Write rendered pages without minification"`
	Sort        string `help:"Index ordering (none|name|date)"`
	MetricsFile string `name:"metrics-file" help:"Write Prometheus metrics in text format to this file after the build"`
}

func (b *BuildCmd) Run(g *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return err
	}
	if err := b.applyOverrides(cfg); err != nil {
		return err
	}
	ConfigureLogging(g, cfg, root.Verbose)

	return RunBuild(context.Background(), cfg)
}

// applyOverrides copies explicitly set flags over file values and re-validates.
func (b *BuildCmd) applyOverrides(cfg *config.Config) error {
	if b.Output != "" {
		cfg.OutputDir = b.Output
	}
	if b.Source != "" {
		cfg.SourceDir = b.Source
	}
	if b.Assets != "" {
		cfg.AssetsDir = b.Assets
	}
	if b.Templates != "" {
		cfg.TemplatesDir = b.Templates
	}
	if b.NoMinify {
		disabled := false
		cfg.Minify = &disabled
	}
	if b.Sort != "" {
		cfg.Index.Sort = config.IndexSort(b.Sort)
	}
	if b.MetricsFile != "" {
		cfg.MetricsFile = b.MetricsFile
	}
	return config.Finalize(cfg)
}

// RunBuild generates the site described by cfg and prints a summary.
func RunBuild(ctx context.Context, cfg *config.Config) error {
	svc := build.NewBuildService()

	var reg *prom.Registry
	if cfg.MetricsFile != "" {
		reg = prom.NewRegistry()
		svc = svc.WithRecorder(metrics.NewPrometheusRecorder(reg))
	}

	result, err := svc.Run(ctx, build.BuildRequest{Config: cfg})

	if reg != nil {
		if werr := metrics.WriteTextfile(reg, cfg.MetricsFile); werr != nil {
			slog.Warn("Failed to write metrics file", logfields.Path(cfg.MetricsFile), logfields.Error(werr))
		}
	}

	if err != nil {
		return err
	}

	printSummary(stdout, result)
	return nil
}

func printSummary(w io.Writer, result *build.BuildResult) {
	_, _ = fmt.Fprintf(w, "Generated %d post(s) into %s\n", result.Posts, result.OutputPath)
	if !result.Assets.Skipped {
		_, _ = fmt.Fprintf(w, "Copied %d asset file(s)\n", result.Assets.Files)
	}
	for _, warning := range result.Warnings {
		_, _ = fmt.Fprintf(w, "warning: %s\n", warning)
	}
	_, _ = fmt.Fprintf(w, "Build %s in %s\n", result.Status, result.Duration.Round(time.Millisecond))
}
