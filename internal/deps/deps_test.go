package deps

import (
	"os"
	"path/filepath"
	"testing"

	"snapsort/internal/config"
)

func TestCheck(t *testing.T) {
	binDir := t.TempDir()
	present := filepath.Join(binDir, "present")
	if err := os.WriteFile(present, []byte("#!/bin/sh\nexit 0\n"), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}

	reqs := []Requirement{
		{Name: "Present", Command: present},
		{Name: "Missing", Command: "clearly-not-present-binary"},
		{Name: "Unset", Command: "  "},
	}

	results := Check(reqs)
	if len(results) != len(reqs) {
		t.Fatalf("expected %d results, got %d", len(reqs), len(results))
	}
	if !results[0].Available {
		t.Fatalf("expected %s to be available, got %#v", present, results[0])
	}
	if results[1].Available {
		t.Fatal("expected missing binary to be unavailable")
	}
	if results[1].Detail == "" {
		t.Fatal("expected detail message for missing binary")
	}
	if results[2].Detail != "command not configured" {
		t.Fatalf("unexpected detail for blank command: %q", results[2].Detail)
	}

	if got := len(Missing(results)); got != 2 {
		t.Fatalf("Missing = %d, want 2", got)
	}
}

func TestRequirementsUseConfiguredBinary(t *testing.T) {
	cfg := config.Default()
	cfg.Exiftool.Binary = "exiftool-custom"
	reqs := Requirements(&cfg)
	if len(reqs) != 1 {
		t.Fatalf("requirements = %d, want 1", len(reqs))
	}
	if reqs[0].Command != "exiftool-custom" {
		t.Fatalf("command = %q, want configured binary", reqs[0].Command)
	}
}
