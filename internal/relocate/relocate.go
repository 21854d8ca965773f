package relocate

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"math/rand/v2"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"snapsort/internal/album"
	"snapsort/internal/config"
	"snapsort/internal/fileutil"
	"snapsort/internal/logging"
)

// ErrNoDate reports that year-based relocation could not determine a year
// for the file; the file is skipped, not moved.
var ErrNoDate = errors.New("no date available for year layout")

// TimestampSource resolves the capture time for a file. Year-based layouts
// resolve freshly at relocation time rather than reusing the metadata-fix
// phase result.
type TimestampSource interface {
	ResolveCapture(ctx context.Context, path string) (time.Time, error)
}

// Outcome describes the result of relocating one file.
type Outcome struct {
	FinalPath string
	// Renamed is set when a collision forced a duplicate-suffix rename;
	// OriginalName then holds the name the file would have had.
	Renamed      bool
	OriginalName string
	// Update is non-nil when the file's source folder matched a known
	// collection.
	Update *album.Update
}

// Relocator moves media files into the configured destination layout.
type Relocator struct {
	outputRoot  string
	layout      string
	picturesDir string
	moviesDir   string
	catalog     *album.Catalog
	timestamps  TimestampSource
	logger      *slog.Logger
}

// New constructs a Relocator.
func New(cfg *config.Config, catalog *album.Catalog, timestamps TimestampSource, logger *slog.Logger) *Relocator {
	return &Relocator{
		outputRoot:  cfg.Paths.OutputDir,
		layout:      cfg.Organize.Layout,
		picturesDir: cfg.Organize.PicturesDir,
		moviesDir:   cfg.Organize.MoviesDir,
		catalog:     catalog,
		timestamps:  timestamps,
		logger:      logging.NewComponentLogger(logger, "relocator"),
	}
}

// Relocate moves path into its destination folder, resolving name collisions
// with a random duplicate suffix and attributing the file to a collection
// when its source folder name matches one.
func (r *Relocator) Relocate(ctx context.Context, path string) (Outcome, error) {
	logger := logging.WithContext(ctx, r.logger)

	destDir, err := r.destinationDir(ctx, path)
	if err != nil {
		return Outcome{}, err
	}

	base := filepath.Base(path)
	dest := filepath.Join(destDir, base)

	outcome := Outcome{}
	const maxMoveAttempts = 100
	for attempt := 0; ; attempt++ {
		if !fileutil.Exists(dest) {
			err := fileutil.MoveFile(path, dest)
			if err == nil {
				break
			}
			// A concurrent mover claimed the name between the check and
			// the move; fall through and pick another suffix.
			if !errors.Is(err, fs.ErrExist) {
				return Outcome{}, fmt.Errorf("move %s: %w", base, err)
			}
		}
		if attempt >= maxMoveAttempts {
			return Outcome{}, fmt.Errorf("move %s: no free destination name", base)
		}
		outcome.Renamed = true
		outcome.OriginalName = base
		ext := filepath.Ext(base)
		stem := strings.TrimSuffix(base, ext)
		candidate := stem + "_duplicate_" + strconv.Itoa(rand.IntN(100000)) + ext
		dest = filepath.Join(destDir, candidate)
	}
	outcome.FinalPath = dest

	if outcome.Renamed {
		logger.Info("collision resolved with duplicate suffix",
			logging.String("original", outcome.OriginalName),
			logging.String("final", filepath.Base(dest)),
		)
	}

	if collection, ok := r.catalog.Match(filepath.Base(filepath.Dir(path))); ok {
		relative, err := filepath.Rel(r.outputRoot, dest)
		if err != nil {
			relative = filepath.Base(dest)
		}
		outcome.Update = &album.Update{
			Collection: collection,
			Item: album.Item{
				Name:         filepath.Base(dest),
				RelativePath: relative,
				FullPath:     dest,
			},
		}
	}

	return outcome, nil
}

func (r *Relocator) destinationDir(ctx context.Context, path string) (string, error) {
	sub := r.picturesDir
	if strings.EqualFold(filepath.Ext(path), ".mp4") {
		sub = r.moviesDir
	}

	if r.layout == config.LayoutFlat {
		return filepath.Join(r.outputRoot, sub), nil
	}

	if r.timestamps == nil {
		return "", ErrNoDate
	}
	taken, err := r.timestamps.ResolveCapture(ctx, path)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNoDate, err)
	}
	return filepath.Join(r.outputRoot, strconv.Itoa(taken.Year()), sub), nil
}
