package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, _, exists, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if exists {
		t.Fatal("expected exists=false for missing file")
	}
	if cfg.Organize.Layout != LayoutYear {
		t.Fatalf("expected default layout %q, got %q", LayoutYear, cfg.Organize.Layout)
	}
	if cfg.Workers.Process != 8 || cfg.Workers.Extract != 4 {
		t.Fatalf("unexpected worker defaults: %+v", cfg.Workers)
	}
	if cfg.ExiftoolBinary() != "exiftool" {
		t.Fatalf("unexpected exiftool binary %q", cfg.ExiftoolBinary())
	}
}

func TestLoadParsesAndNormalizes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[paths]
output_dir = "` + filepath.Join(dir, "out") + `"
log_dir = "` + filepath.Join(dir, "logs") + `"

[organize]
layout = "FLAT"

[workers]
process = 2
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, resolved, exists, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("expected exists=true at %q, got %q exists=%v", path, resolved, exists)
	}
	if cfg.Organize.Layout != LayoutFlat {
		t.Fatalf("layout not lowered: %q", cfg.Organize.Layout)
	}
	if cfg.Workers.Process != 2 {
		t.Fatalf("workers.process not applied: %d", cfg.Workers.Process)
	}
	if cfg.Workers.Extract != 4 {
		t.Fatalf("workers.extract default not applied: %d", cfg.Workers.Extract)
	}
}

func TestLoadRejectsBadLayout(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("[organize]\nlayout = \"monthly\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, _, _, err := Load(path); err == nil || !strings.Contains(err.Error(), "organize.layout") {
		t.Fatalf("expected layout validation error, got %v", err)
	}
}

func TestValidateRejectsEqualSubdirs(t *testing.T) {
	cfg := Default()
	cfg.Organize.PicturesDir = "media"
	cfg.Organize.MoviesDir = "media"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for identical subdirectories")
	}
}

func TestExpandPathHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory available")
	}
	got, err := ExpandPath("~/snapsort-test")
	if err != nil {
		t.Fatalf("ExpandPath: %v", err)
	}
	if got != filepath.Join(home, "snapsort-test") {
		t.Fatalf("expected home-joined path, got %q", got)
	}
}

func TestEnsureDirectories(t *testing.T) {
	dir := t.TempDir()
	cfg := Default()
	cfg.Paths.OutputDir = filepath.Join(dir, "out")
	cfg.Paths.LogDir = filepath.Join(dir, "logs")
	cfg.Paths.AlbumsDir = filepath.Join(dir, "albums")

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories: %v", err)
	}
	for _, sub := range []string{"out", "logs", "albums"} {
		if info, err := os.Stat(filepath.Join(dir, sub)); err != nil || !info.IsDir() {
			t.Fatalf("directory %s not created: %v", sub, err)
		}
	}
}

func TestCreateSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := CreateSample(path); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "[organize]") {
		t.Fatalf("sample config missing organize section")
	}
}
