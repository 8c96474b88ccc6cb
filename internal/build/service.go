package build

import (
	"context"
	"time"

	"git.home.luguber.info/inful/postgen/internal/config"
	"git.home.luguber.info/inful/postgen/internal/posts"
	"git.home.luguber.info/inful/postgen/internal/site"
)

// BuildService is the canonical interface for generating a site.
type BuildService interface {
	// Run executes the complete pipeline and returns a result even on failure.
	Run(ctx context.Context, req BuildRequest) (*BuildResult, error)
}

// BuildRequest contains all inputs required to execute a build.
type BuildRequest struct {
	// Config is the loaded configuration. Paths in it are used as-is.
	Config *config.Config
}

// Stage names a point in the pipeline.
type Stage string

const (
	StageInit             Stage = "init"
	StageDirectoriesReady Stage = "directories_ready"
	StagePostsLoaded      Stage = "posts_loaded"
	StageAssetsCopied     Stage = "assets_copied"
	StageIndexRendered    Stage = "index_rendered"
	StagePostsRendered    Stage = "posts_rendered"
	StageDone             Stage = "done"
)

// BuildResult contains the outcome of a build execution.
type BuildResult struct {
	// BuildID identifies the run in logs.
	BuildID string

	// Status indicates overall build outcome.
	Status BuildStatus

	// Stage is the last stage that completed.
	Stage Stage

	// OutputPath is the root of the generated site.
	OutputPath string

	// Posts is the number of posts loaded.
	Posts int

	// PagesWritten counts index and post pages written.
	PagesWritten int

	// Assets summarizes the asset copy.
	Assets site.CopyResult

	// LoadErrors holds every per-file failure when loading failed.
	LoadErrors posts.LoadErrors

	// Warnings lists non-fatal problems, e.g. a tolerated asset copy failure.
	Warnings []string

	// Duration is the total build execution time.
	Duration time.Duration

	// StartTime is when the build started.
	StartTime time.Time

	// EndTime is when the build completed.
	EndTime time.Time
}

// BuildStatus represents the outcome of a build execution.
type BuildStatus string

const (
	// BuildStatusSuccess indicates the build completed successfully.
	BuildStatusSuccess BuildStatus = "success"

	// BuildStatusFailed indicates the build stopped at a fatal error.
	BuildStatusFailed BuildStatus = "failed"
)

// IsSuccess returns true if the build completed successfully.
func (s BuildStatus) IsSuccess() bool {
	return s == BuildStatusSuccess
}
