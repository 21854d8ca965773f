package album

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewCatalogFoldsAndTrims(t *testing.T) {
	catalog := NewCatalog([]string{"  Holiday 2023 ", "PETS", ""})
	if catalog.Len() != 2 {
		t.Fatalf("expected 2 collections, got %d", catalog.Len())
	}

	if key, ok := catalog.Match("holiday 2023"); !ok || key != "holiday 2023" {
		t.Fatalf("Match(holiday 2023) = %q, %v", key, ok)
	}
	if key, ok := catalog.Match("Pets"); !ok || key != "pets" {
		t.Fatalf("Match(Pets) = %q, %v", key, ok)
	}
	if _, ok := catalog.Match("unknown"); ok {
		t.Fatal("unexpected match for unknown name")
	}
}

func TestLoadCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "albums.txt")
	content := "Holiday 2023\n\n  Pets\n\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	catalog, err := LoadCatalog(path)
	if err != nil {
		t.Fatalf("LoadCatalog: %v", err)
	}
	keys := catalog.Keys()
	if len(keys) != 2 || keys[0] != "holiday 2023" || keys[1] != "pets" {
		t.Fatalf("unexpected keys: %v", keys)
	}
}

func TestLoadCatalogMissingFile(t *testing.T) {
	if _, err := LoadCatalog(filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestNilCatalog(t *testing.T) {
	var catalog *Catalog
	if _, ok := catalog.Match("anything"); ok {
		t.Fatal("nil catalog should never match")
	}
	if catalog.Len() != 0 || catalog.Keys() != nil {
		t.Fatal("nil catalog should be empty")
	}
}
