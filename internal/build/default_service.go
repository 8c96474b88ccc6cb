package build

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/afero"

	"git.home.luguber.info/inful/postgen/internal/config"
	"git.home.luguber.info/inful/postgen/internal/foundation/errors"
	"git.home.luguber.info/inful/postgen/internal/logfields"
	"git.home.luguber.info/inful/postgen/internal/markdown"
	"git.home.luguber.info/inful/postgen/internal/metrics"
	"git.home.luguber.info/inful/postgen/internal/observability"
	"git.home.luguber.info/inful/postgen/internal/posts"
	"git.home.luguber.info/inful/postgen/internal/render"
	"git.home.luguber.info/inful/postgen/internal/site"
)

// DefaultBuildService is the standard implementation of BuildService.
type DefaultBuildService struct {
	fs         afero.Fs
	recorder   metrics.Recorder
	converter  *markdown.Converter
	newBuildID func() string
	now        func() time.Time
}

// NewBuildService creates a DefaultBuildService working on the OS filesystem.
func NewBuildService() *DefaultBuildService {
	return &DefaultBuildService{
		fs:         afero.NewOsFs(),
		recorder:   metrics.NoopRecorder{},
		converter:  markdown.NewConverter(),
		newBuildID: uuid.NewString,
		now:        time.Now,
	}
}

// WithFilesystem replaces the filesystem every stage reads from and writes to.
func (s *DefaultBuildService) WithFilesystem(fs afero.Fs) *DefaultBuildService {
	s.fs = fs
	return s
}

// WithRecorder injects a metrics recorder.
func (s *DefaultBuildService) WithRecorder(r metrics.Recorder) *DefaultBuildService {
	if r == nil {
		r = metrics.NoopRecorder{}
	}
	s.recorder = r
	return s
}

// WithBuildIDGenerator overrides how build IDs are generated (for testing).
func (s *DefaultBuildService) WithBuildIDGenerator(gen func() string) *DefaultBuildService {
	s.newBuildID = gen
	return s
}

// Run executes the complete build pipeline.
func (s *DefaultBuildService) Run(ctx context.Context, req BuildRequest) (*BuildResult, error) {
	startTime := s.now()
	result := &BuildResult{
		BuildID:   s.newBuildID(),
		Stage:     StageInit,
		StartTime: startTime,
	}
	ctx = observability.WithBuildID(ctx, result.BuildID)

	if req.Config == nil {
		return s.fail(ctx, result, ErrConfigRequired)
	}
	cfg := req.Config
	result.OutputPath = cfg.OutputDir

	observability.InfoContext(ctx, "Starting build",
		slog.String("source_dir", cfg.SourceDir),
		logfields.Path(cfg.OutputDir))

	renderer, err := s.newRenderer(cfg)
	if err != nil {
		return s.fail(ctx, result, err)
	}

	if err := s.runStage(ctx, result, StageDirectoriesReady, func(ctx context.Context) error {
		return site.EnsureDirectories(ctx, s.fs, cfg.OutputDir)
	}); err != nil {
		return s.fail(ctx, result, err)
	}

	var loaded []posts.Post
	if err := s.runStage(ctx, result, StagePostsLoaded, func(ctx context.Context) error {
		var loadErr error
		loaded, loadErr = s.loadPosts(ctx, cfg, result)
		return loadErr
	}); err != nil {
		return s.fail(ctx, result, err)
	}

	if err := s.runStage(ctx, result, StageAssetsCopied, func(ctx context.Context) error {
		return s.copyAssets(ctx, cfg, result)
	}); err != nil {
		return s.fail(ctx, result, err)
	}

	if err := s.runStage(ctx, result, StageIndexRendered, func(ctx context.Context) error {
		if err := renderer.RenderIndex(sortForIndex(loaded, cfg.Index.Sort), cfg.OutputDir); err != nil {
			return err
		}
		s.recorder.IncFilesWritten("index")
		result.PagesWritten++
		observability.InfoContext(ctx, "Index rendered", logfields.Count(len(loaded)))
		return nil
	}); err != nil {
		return s.fail(ctx, result, err)
	}

	if err := s.runStage(ctx, result, StagePostsRendered, func(ctx context.Context) error {
		for _, p := range loaded {
			if err := renderer.RenderPost(p, cfg.OutputDir); err != nil {
				return err
			}
			s.recorder.IncFilesWritten("post")
			result.PagesWritten++
			observability.DebugContext(observability.WithFile(ctx, p.Source()), "Post rendered",
				logfields.Path(filepath.Join(cfg.OutputDir, p.Filename())))
		}
		return nil
	}); err != nil {
		return s.fail(ctx, result, err)
	}

	result.Stage = StageDone
	return s.succeed(ctx, result)
}

func (s *DefaultBuildService) newRenderer(cfg *config.Config) (*render.Renderer, error) {
	var minifier render.Minifier = render.NoopMinifier{}
	if cfg.MinifyEnabled() {
		minifier = render.NewHTMLMinifier()
	}
	return render.NewRenderer(s.fs,
		render.WithSiteTitle(cfg.Site.Title),
		render.WithMinifier(minifier),
		render.WithTemplatesDir(cfg.TemplatesDir))
}

func (s *DefaultBuildService) loadPosts(ctx context.Context, cfg *config.Config, result *BuildResult) ([]posts.Post, error) {
	loader, err := posts.NewLoader(s.fs, cfg.SourceDir, cfg.SourceGlob,
		posts.WithLocation(cfg.Location()),
		posts.WithConverter(s.converter))
	if err != nil {
		return nil, err
	}

	var (
		loaded  []posts.Post
		loadErr error
	)
	loader.Load(ctx).Match(
		func(ps []posts.Post) {
			loaded = ps
			result.Posts = len(ps)
			s.recorder.SetPostsLoaded(len(ps))
			observability.InfoContext(ctx, "Posts loaded", logfields.Count(len(ps)))
		},
		func(errs posts.LoadErrors) {
			result.LoadErrors = errs
			for _, e := range errs {
				s.recorder.IncPostLoadError(string(errors.GetCategory(e)))
			}
			s.recorder.SetPostsLoaded(0)
			loadErr = errs
		},
	)
	return loaded, loadErr
}

func (s *DefaultBuildService) copyAssets(ctx context.Context, cfg *config.Config, result *BuildResult) error {
	dst := filepath.Join(cfg.OutputDir, site.AssetsDir)
	copied, err := site.CopyAssets(ctx, s.fs, cfg.AssetsDir, dst)
	result.Assets = copied
	if err == nil {
		return nil
	}
	if cfg.AssetsStrict() {
		return err
	}
	observability.WarnContext(ctx, "Asset copy failed, continuing", logfields.Error(err))
	result.Warnings = append(result.Warnings, err.Error())
	return nil
}

// runStage times fn, records its outcome and advances result.Stage on success.
func (s *DefaultBuildService) runStage(ctx context.Context, result *BuildResult, stage Stage, fn func(context.Context) error) error {
	stageStart := s.now()
	stageCtx := observability.WithStage(ctx, string(stage))
	warningsBefore := len(result.Warnings)

	err := fn(stageCtx)
	elapsed := s.now().Sub(stageStart)
	s.recorder.ObserveStageDuration(string(stage), elapsed)

	switch {
	case err != nil:
		s.recorder.IncStageResult(string(stage), metrics.ResultFatal)
		return err
	case len(result.Warnings) > warningsBefore:
		s.recorder.IncStageResult(string(stage), metrics.ResultWarning)
	default:
		s.recorder.IncStageResult(string(stage), metrics.ResultSuccess)
	}

	result.Stage = stage
	observability.DebugContext(stageCtx, "Stage complete",
		logfields.DurationMS(float64(elapsed.Microseconds())/1000))
	return nil
}

func (s *DefaultBuildService) finish(result *BuildResult, status BuildStatus) {
	result.Status = status
	result.EndTime = s.now()
	result.Duration = result.EndTime.Sub(result.StartTime)
	s.recorder.ObserveBuildDuration(result.Duration)
}

func (s *DefaultBuildService) fail(ctx context.Context, result *BuildResult, err error) (*BuildResult, error) {
	s.finish(result, BuildStatusFailed)
	s.recorder.IncBuildOutcome(metrics.BuildOutcomeFailed)
	observability.ErrorContext(ctx, "Build failed",
		logfields.Stage(string(result.Stage)),
		logfields.Category(string(errors.GetCategory(err))),
		logfields.Error(err))
	return result, err
}

func (s *DefaultBuildService) succeed(ctx context.Context, result *BuildResult) (*BuildResult, error) {
	s.finish(result, BuildStatusSuccess)
	s.recorder.IncBuildOutcome(metrics.BuildOutcomeSuccess)
	observability.InfoContext(ctx, "Build completed",
		logfields.Count(result.PagesWritten),
		logfields.DurationMS(float64(result.Duration.Microseconds())/1000))
	return result, nil
}

func sortForIndex(ps []posts.Post, mode config.IndexSort) []posts.Post {
	switch mode {
	case config.IndexSortName:
		return posts.SortedByName(ps)
	case config.IndexSortDate:
		return posts.SortedByDate(ps)
	default:
		return ps
	}
}
