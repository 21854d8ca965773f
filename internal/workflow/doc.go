// Package workflow drives the processing pipeline: discover media files
// under a source tree, repair extensions and timestamps, relocate files
// into the configured layout, merge album manifests, and write the
// categorized error logs.
//
// The phases run strictly in order with a barrier between them; within a
// phase, files are processed by a bounded worker pool. Per-file failures
// are recorded and skipped so one bad file never stops a run.
package workflow
