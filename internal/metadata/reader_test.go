package metadata

import (
	"os"
	"path/filepath"
	"testing"

	"snapsort/internal/media/exiftool"
)

func TestSniffType(t *testing.T) {
	dir := t.TempDir()
	cases := []struct {
		name   string
		header []byte
		want   exiftool.FileType
	}{
		{"jpeg.bin", []byte{0xFF, 0xD8, 0xFF, 0xE0, 0, 0, 0, 0, 0, 0, 0, 0}, exiftool.TypeJPEG},
		{"png.bin", []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1A, '\n', 0, 0, 0, 0}, exiftool.TypePNG},
		{"heic.bin", append([]byte{0, 0, 0, 0x18}, []byte("ftypheic")...), exiftool.TypeHEIC},
		{"mp4.bin", append([]byte{0, 0, 0, 0x18}, []byte("ftypisom")...), exiftool.TypeMP4},
		{"text.bin", []byte("hello world!"), exiftool.TypeUnknown},
	}
	for _, tc := range cases {
		path := filepath.Join(dir, tc.name)
		if err := os.WriteFile(path, tc.header, 0o644); err != nil {
			t.Fatal(err)
		}
		got, err := sniffType(path)
		if err != nil {
			t.Fatalf("sniffType(%s): %v", tc.name, err)
		}
		if got != tc.want {
			t.Errorf("sniffType(%s) = %q, want %q", tc.name, got, tc.want)
		}
	}
}
