// Package logging assembles structured slog loggers and formatting helpers
// used across snapsort components.
//
// It owns the configurable console/JSON handlers, centralizes level and
// output plumbing, and exposes context-aware helpers so pipeline code can
// automatically tag log lines with file paths, phase names, and run
// correlation IDs. The package also provides a no-op logger for tests and
// wiring code that cannot fail.
package logging
