package services

import "context"

type contextKey string

const (
	filePathKey contextKey = "file_path"
	phaseKey    contextKey = "phase"
	runIDKey    contextKey = "run_id"
)

// WithFilePath annotates context with the media file currently processed.
func WithFilePath(ctx context.Context, path string) context.Context {
	if path == "" {
		return ctx
	}
	return context.WithValue(ctx, filePathKey, path)
}

// FilePathFromContext extracts the media file path if present.
func FilePathFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(filePathKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithPhase annotates context with the pipeline phase name.
func WithPhase(ctx context.Context, phase string) context.Context {
	if phase == "" {
		return ctx
	}
	return context.WithValue(ctx, phaseKey, phase)
}

// PhaseFromContext returns the phase name if present.
func PhaseFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(phaseKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithRunID annotates context with a correlation identifier for the run.
func WithRunID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, runIDKey, id)
}

// RunIDFromContext extracts the run correlation identifier if present.
func RunIDFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(runIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}
