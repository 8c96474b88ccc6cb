// Package posts discovers Markdown sources and turns them into immutable Post
// records.
//
// Loading is all-or-nothing: Loader.Load either returns every post found in
// the source directory or, if any file failed, the complete list of per-file
// errors and no posts at all. Each failure carries the offending file in its
// error context so callers can report every problem at once.
package posts
