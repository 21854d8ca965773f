package metadata

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/rwcarlsen/goexif/exif"

	"snapsort/internal/logging"
	"snapsort/internal/media/exiftool"
)

// Result bundles both answers of a metadata read.
type Result struct {
	Type   exiftool.FileType
	Fields exiftool.Fields
}

// Reader obtains the detected file type and date fields for a media file.
type Reader struct {
	tool   *exiftool.Client
	logger *slog.Logger
	native bool
}

// NewReader constructs a Reader. When the exiftool binary is not available on
// PATH the reader degrades to a native EXIF decoder that covers JPEG capture
// dates and magic-byte type sniffing.
func NewReader(tool *exiftool.Client, logger *slog.Logger) *Reader {
	native := tool == nil || !tool.Available()
	r := &Reader{
		tool:   tool,
		logger: logging.NewComponentLogger(logger, "metadata"),
		native: native,
	}
	if native {
		r.logger.Warn("exiftool not found on PATH, using native EXIF fallback")
	}
	return r
}

// Read queries the detected true type and the candidate date fields for path.
// The two queries are independent and issued concurrently; both must finish
// before Read returns.
func (r *Reader) Read(ctx context.Context, path string) (Result, error) {
	if r.native {
		return r.readNative(path)
	}

	var result Result
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		typ, err := r.tool.DetectFileType(ctx, path)
		if err != nil {
			return err
		}
		result.Type = typ
		return nil
	})
	g.Go(func() error {
		fields, err := r.tool.ExtractFields(ctx, path)
		if err != nil {
			return err
		}
		result.Fields = fields
		return nil
	})
	if err := g.Wait(); err != nil {
		return Result{}, err
	}
	return result, nil
}

func (r *Reader) readNative(path string) (Result, error) {
	typ, err := sniffType(path)
	if err != nil {
		return Result{}, err
	}
	result := Result{Type: typ}

	if typ == exiftool.TypeJPEG {
		file, err := os.Open(path)
		if err != nil {
			return Result{}, err
		}
		defer file.Close()
		if x, err := exif.Decode(file); err == nil {
			if taken, err := x.DateTime(); err == nil {
				result.Fields.DateTimeOriginal = taken.Format("2006:01:02 15:04:05")
			}
		}
	}

	if info, err := os.Stat(path); err == nil {
		result.Fields.FileModifyDate = info.ModTime().Format("2006:01:02 15:04:05")
	}
	return result, nil
}

// sniffType detects the container type from magic bytes.
func sniffType(path string) (exiftool.FileType, error) {
	file, err := os.Open(path)
	if err != nil {
		return exiftool.TypeUnknown, err
	}
	defer file.Close()

	header := make([]byte, 12)
	n, _ := file.Read(header)
	header = header[:n]

	switch {
	case len(header) >= 3 && bytes.Equal(header[:3], []byte{0xFF, 0xD8, 0xFF}):
		return exiftool.TypeJPEG, nil
	case len(header) >= 8 && bytes.Equal(header[:8], []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1A, '\n'}):
		return exiftool.TypePNG, nil
	case len(header) >= 12 && bytes.Equal(header[4:8], []byte("ftyp")):
		brand := strings.ToLower(string(header[8:12]))
		if strings.HasPrefix(brand, "hei") || strings.HasPrefix(brand, "mif") {
			return exiftool.TypeHEIC, nil
		}
		return exiftool.TypeMP4, nil
	default:
		return exiftool.TypeUnknown, nil
	}
}
