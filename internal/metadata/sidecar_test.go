package metadata

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadSidecarSupplementalNaming(t *testing.T) {
	dir := t.TempDir()
	mediaPath := filepath.Join(dir, "a.jpg")
	payload := `{"title":"a.jpg","photoTakenTime":{"timestamp":"1654076400","formatted":"01.06.2022, 09:30:00 UTC"}}`
	if err := os.WriteFile(mediaPath+".supplemental-metadata.json", []byte(payload), 0o644); err != nil {
		t.Fatal(err)
	}

	sidecar, ok := LoadSidecar(mediaPath)
	if !ok {
		t.Fatal("sidecar not found")
	}
	if sidecar.TakenTime() != "01.06.2022, 09:30:00 UTC" {
		t.Fatalf("TakenTime = %q", sidecar.TakenTime())
	}
	if sidecar.EpochTimestamp() != "1654076400" {
		t.Fatalf("EpochTimestamp = %q", sidecar.EpochTimestamp())
	}
}

func TestLoadSidecarPlainJSONFallback(t *testing.T) {
	dir := t.TempDir()
	mediaPath := filepath.Join(dir, "b.mp4")
	if err := os.WriteFile(mediaPath+".json", []byte(`{"photoTakenTime":{"formatted":"02.02.2020, 20:20:20"}}`), 0o644); err != nil {
		t.Fatal(err)
	}

	sidecar, ok := LoadSidecar(mediaPath)
	if !ok {
		t.Fatal("sidecar not found via plain .json fallback")
	}
	if sidecar.TakenTime() != "02.02.2020, 20:20:20" {
		t.Fatalf("TakenTime = %q", sidecar.TakenTime())
	}
}

func TestLoadSidecarTruncatedName(t *testing.T) {
	dir := t.TempDir()
	base := strings.Repeat("x", 60) + ".jpg"
	mediaPath := filepath.Join(dir, base)
	truncated := filepath.Join(dir, base[:48]+".supplemental-metadata.json")
	if err := os.WriteFile(truncated, []byte(`{"photoTakenTime":{"formatted":"03.03.2023, 03:03:03"}}`), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, ok := LoadSidecar(mediaPath); !ok {
		t.Fatal("sidecar not found via truncated-name fallback")
	}
}

func TestLoadSidecarMalformedIsAbsent(t *testing.T) {
	dir := t.TempDir()
	mediaPath := filepath.Join(dir, "c.png")
	if err := os.WriteFile(mediaPath+".supplemental-metadata.json", []byte("{broken"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, ok := LoadSidecar(mediaPath); ok {
		t.Fatal("malformed sidecar should be treated as absent")
	}
}

func TestLoadSidecarMissing(t *testing.T) {
	if _, ok := LoadSidecar(filepath.Join(t.TempDir(), "missing.jpg")); ok {
		t.Fatal("expected no sidecar")
	}
}
