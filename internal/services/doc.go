// Package services holds cross-cutting helpers shared by the pipeline phases:
// sentinel errors with classification-aware wrapping and context annotations
// for structured logging.
//
// Phase code wraps failures with services.Wrap so the workflow manager can
// distinguish fatal configuration problems from per-file failures that should
// be recorded and skipped.
package services
