package normalize

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"snapsort/internal/fileutil"
	"snapsort/internal/logging"
	"snapsort/internal/media/exiftool"
)

// Sentinel errors the workflow manager classifies on.
var (
	ErrRename         = errors.New("extension rename failed")
	ErrTimestampWrite = errors.New("timestamp write failed")
)

// TimestampWriter is the slice of the exiftool client the normalizer needs.
type TimestampWriter interface {
	WriteTimestamps(ctx context.Context, path string, t time.Time) error
}

// Normalizer corrects a file's extension to match its detected true type and
// stamps the resolved capture time onto the file.
type Normalizer struct {
	writer TimestampWriter
	logger *slog.Logger
}

// New constructs a Normalizer.
func New(writer TimestampWriter, logger *slog.Logger) *Normalizer {
	return &Normalizer{
		writer: writer,
		logger: logging.NewComponentLogger(logger, "normalizer"),
	}
}

// Normalize renames path to carry the canonical extension for typ when they
// differ, then writes the resolved timestamp in a single combined call. The
// returned path reflects any rename. When hasTimestamp is false the file's
// times are left untouched. Running Normalize twice on an already-correct
// file performs no rename and returns no error.
func (n *Normalizer) Normalize(ctx context.Context, path string, typ exiftool.FileType, timestamp time.Time, hasTimestamp bool) (string, error) {
	logger := logging.WithContext(ctx, n.logger)

	current := path
	canonical := typ.Extension()
	if canonical != "" && !strings.EqualFold(filepath.Ext(current), canonical) {
		target, err := n.renameToCanonical(current, canonical)
		if err != nil {
			return current, fmt.Errorf("%w: %v", ErrRename, err)
		}
		logger.Info("corrected extension",
			logging.String("from", filepath.Base(current)),
			logging.String("to", filepath.Base(target)),
		)
		current = target
	}

	if hasTimestamp && n.writer != nil {
		if err := n.writer.WriteTimestamps(ctx, current, timestamp); err != nil {
			return current, fmt.Errorf("%w: %v", ErrTimestampWrite, err)
		}
		logger.Debug("timestamps written", logging.Time("capture_time", timestamp))
	}

	return current, nil
}

// renameToCanonical moves path onto the canonical extension, appending a
// numeric counter when the plain name is taken. The move refuses to replace
// an existing file, so two files normalizing toward the same name cannot
// destroy each other; the loser simply advances to the next counter.
func (n *Normalizer) renameToCanonical(path, canonical string) (string, error) {
	stem := strings.TrimSuffix(path, filepath.Ext(path))
	const maxAttempts = 10000
	for counter := 0; counter <= maxAttempts; counter++ {
		candidate := stem + canonical
		if counter > 0 {
			candidate = fmt.Sprintf("%s_%d%s", stem, counter, canonical)
		}
		if fileutil.Exists(candidate) {
			continue
		}
		err := fileutil.MoveFile(path, candidate)
		if err == nil {
			return candidate, nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return "", err
		}
	}
	return "", fmt.Errorf("exhausted rename slots for %s", path)
}
