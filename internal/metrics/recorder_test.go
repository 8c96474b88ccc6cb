package metrics

import (
	"testing"
	"time"
)

// testRecorder is a Recorder that counts calls; it lets tests assert the
// interface stays implementable outside Prometheus.
type testRecorder struct {
	stageDurations map[string]int
	stageResults   map[string]map[ResultLabel]int
	buildDurations int
	buildOutcomes  map[BuildOutcomeLabel]int
	postsLoaded    int
	loadErrors     map[string]int
	filesWritten   map[string]int
}

var _ Recorder = (*testRecorder)(nil)
var _ Recorder = NoopRecorder{}
var _ Recorder = (*PrometheusRecorder)(nil)

func newTestRecorder() *testRecorder {
	return &testRecorder{
		stageDurations: map[string]int{},
		stageResults:   map[string]map[ResultLabel]int{},
		buildOutcomes:  map[BuildOutcomeLabel]int{},
		loadErrors:     map[string]int{},
		filesWritten:   map[string]int{},
	}
}

func (t *testRecorder) ObserveStageDuration(stage string, _ time.Duration) {
	t.stageDurations[stage]++
}
func (t *testRecorder) ObserveBuildDuration(_ time.Duration) { t.buildDurations++ }
func (t *testRecorder) IncStageResult(stage string, result ResultLabel) {
	m, ok := t.stageResults[stage]
	if !ok {
		m = map[ResultLabel]int{}
		t.stageResults[stage] = m
	}
	m[result]++
}
func (t *testRecorder) IncBuildOutcome(outcome BuildOutcomeLabel) { t.buildOutcomes[outcome]++ }
func (t *testRecorder) SetPostsLoaded(n int)                      { t.postsLoaded = n }
func (t *testRecorder) IncPostLoadError(category string)          { t.loadErrors[category]++ }
func (t *testRecorder) IncFilesWritten(kind string)               { t.filesWritten[kind]++ }

func TestRecorderCountsCalls(t *testing.T) {
	var rec Recorder = newTestRecorder()
	rec.IncStageResult("posts_loaded", ResultSuccess)
	rec.IncStageResult("posts_loaded", ResultFatal)
	rec.IncPostLoadError("io")

	tr := rec.(*testRecorder)
	if tr.stageResults["posts_loaded"][ResultFatal] != 1 || tr.loadErrors["io"] != 1 {
		t.Fatalf("unexpected counts: %+v %+v", tr.stageResults, tr.loadErrors)
	}
}
