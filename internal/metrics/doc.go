// Package metrics records build pipeline metrics for postgen.
//
// Components receive a Recorder through dependency injection and default to
// NoopRecorder, so no nil checks are needed at call sites:
//
//	svc := build.NewBuildService().WithRecorder(metrics.NoopRecorder{})
//
// PrometheusRecorder registers its collectors on a caller-provided registry.
// postgen is a one-shot process, so instead of serving the registry over HTTP
// it is flushed to a node_exporter textfile with WriteTextfile after each run:
//
//	reg := prometheus.NewRegistry()
//	rec := metrics.NewPrometheusRecorder(reg)
//	// ... run the build ...
//	_ = metrics.WriteTextfile(reg, "/var/lib/node_exporter/postgen.prom")
package metrics
