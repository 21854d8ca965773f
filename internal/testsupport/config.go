package testsupport

import (
	"path/filepath"
	"testing"

	"snapsort/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.OutputDir = filepath.Join(base, "out")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Paths.AlbumsDir = filepath.Join(base, "albums")

	for _, opt := range opts {
		opt(&cfg)
	}
	return &cfg
}

// WithLayout sets the destination layout on the test config.
func WithLayout(layout string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Organize.Layout = layout
	}
}

// WithAlbumNames points the test config at an album names file.
func WithAlbumNames(path string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Paths.AlbumNamesFile = path
	}
}
