// Package build runs the postgen pipeline.
//
// DefaultBuildService walks a fixed sequence of stages:
//
//	init → directories_ready → posts_loaded → assets_copied → index_rendered → posts_rendered → done
//
// The first failing stage ends the build. BuildResult records the last stage
// that completed so callers can tell how far a failed build got. Post loading
// is all-or-nothing: if any source fails, no page is written and the
// returned error lists every failing file.
package build
