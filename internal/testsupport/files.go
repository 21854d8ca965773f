package testsupport

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

// WriteFile creates path with the given contents, making parent directories
// as needed.
func WriteFile(t testing.TB, path, contents string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// WriteSidecar places a companion metadata JSON next to mediaPath carrying
// the given formatted capture time, such as "01.06.2022, 09:30:00 UTC".
func WriteSidecar(t testing.TB, mediaPath, formatted string) {
	t.Helper()

	payload := fmt.Sprintf(
		`{"title":%q,"photoTakenTime":{"timestamp":"","formatted":%q}}`,
		filepath.Base(mediaPath), formatted)
	WriteFile(t, mediaPath+".supplemental-metadata.json", payload)
}
