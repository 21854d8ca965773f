package extract

import (
	"archive/zip"
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
)

func writeZip(t *testing.T, path string, entries map[string]string) {
	t.Helper()
	var buf bytes.Buffer
	writer := zip.NewWriter(&buf)
	for name, content := range entries {
		entry, err := writer.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := entry.Write([]byte(content)); err != nil {
			t.Fatal(err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestUnpack(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "takeout-1.zip")
	second := filepath.Join(dir, "takeout-2.zip")
	writeZip(t, first, map[string]string{"Photos/a.jpg": "aaa"})
	writeZip(t, second, map[string]string{"Photos/b.mp4": "bbb"})

	dest := filepath.Join(dir, "extracted")
	if err := Unpack(context.Background(), []string{first, second}, dest, 4, nil); err != nil {
		t.Fatalf("Unpack: %v", err)
	}

	for _, name := range []string{"Photos/a.jpg", "Photos/b.mp4"} {
		if _, err := os.Stat(filepath.Join(dest, name)); err != nil {
			t.Fatalf("missing extracted file %s: %v", name, err)
		}
	}
}

func TestUnpackRejectsEscapingEntries(t *testing.T) {
	dir := t.TempDir()
	archive := filepath.Join(dir, "evil.zip")
	writeZip(t, archive, map[string]string{"../outside.txt": "nope"})

	dest := filepath.Join(dir, "extracted")
	if err := Unpack(context.Background(), []string{archive}, dest, 1, nil); err == nil {
		t.Fatal("expected error for path traversal entry")
	}
	if _, err := os.Stat(filepath.Join(dir, "outside.txt")); err == nil {
		t.Fatal("escaping entry was written")
	}
}

func TestUnpackMissingArchive(t *testing.T) {
	dir := t.TempDir()
	err := Unpack(context.Background(), []string{filepath.Join(dir, "missing.zip")}, filepath.Join(dir, "out"), 1, nil)
	if err == nil {
		t.Fatal("expected error for missing archive")
	}
}
