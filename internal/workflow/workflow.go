package workflow

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"snapsort/internal/album"
	"snapsort/internal/config"
	"snapsort/internal/errlog"
	"snapsort/internal/logging"
	"snapsort/internal/media/exiftool"
	"snapsort/internal/metadata"
	"snapsort/internal/normalize"
	"snapsort/internal/relocate"
	"snapsort/internal/services"
)

const defaultProcessWorkers = 8

// mediaExtensions is the allow-list of file extensions the pipeline
// considers. Matching is case-insensitive; everything else is ignored.
var mediaExtensions = map[string]bool{
	".jpg":  true,
	".heic": true,
	".png":  true,
	".mp4":  true,
}

// Summary reports what a run did. Error counts mirror the categorized logs
// written at the end of the run.
type Summary struct {
	RunID            string
	Discovered       int
	Renamed          int
	TimestampsFixed  int
	Relocated        int
	Skipped          int
	AlbumUpdates     int
	MergedItems      int
	MetadataErrors   int
	RelocationErrors int
	DuplicateNotices int
	LogPaths         []string
	Duration         time.Duration
}

// Manager drives the full repair-and-organize pipeline: discover media
// files, fix metadata, relocate into the destination layout, merge album
// manifests, and write the categorized error logs.
type Manager struct {
	cfg        *config.Config
	logger     *slog.Logger
	reader     *metadata.Reader
	normalizer *normalize.Normalizer
	relocator  *relocate.Relocator
	store      *album.Store
	catalog    *album.Catalog
	sink       *errlog.Sink
}

// NewManager wires a Manager from configuration, constructing the exiftool
// client from the configured binary.
func NewManager(cfg *config.Config, logger *slog.Logger) (*Manager, error) {
	tool, err := exiftool.New(cfg.ExiftoolBinary(), cfg.Exiftool.TimeoutSeconds)
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "setup", "exiftool", "configure metadata tool", err)
	}
	return NewManagerWithClient(cfg, logger, tool)
}

// NewManagerWithClient wires a Manager around an existing exiftool client.
// Tests use this to substitute a scripted executor.
func NewManagerWithClient(cfg *config.Config, logger *slog.Logger, tool *exiftool.Client) (*Manager, error) {
	if cfg == nil {
		return nil, services.Wrap(services.ErrConfiguration, "setup", "workflow", "configuration is required", nil)
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	catalog, err := loadCatalog(cfg)
	if err != nil {
		return nil, err
	}
	reader := metadata.NewReader(tool, logger)
	m := &Manager{
		cfg:        cfg,
		logger:     logging.NewComponentLogger(logger, "workflow"),
		reader:     reader,
		normalizer: normalize.New(tool, logger),
		store:      album.NewStore(cfg.Paths.AlbumsDir, logger),
		catalog:    catalog,
		sink:       errlog.NewSink(),
	}
	m.relocator = relocate.New(cfg, catalog, &captureResolver{reader: reader}, logger)
	return m, nil
}

func loadCatalog(cfg *config.Config) (*album.Catalog, error) {
	if cfg.Paths.AlbumNamesFile == "" {
		return album.NewCatalog(nil), nil
	}
	catalog, err := album.LoadCatalog(cfg.Paths.AlbumNamesFile)
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "setup", "albums", "load album names", err)
	}
	return catalog, nil
}

// Run executes the pipeline over sourceDir. Per-file failures are recorded
// in the error logs and do not stop the run; structural failures (missing
// source, unwritable destinations) abort it. The error logs are written
// even when every file succeeds.
func (m *Manager) Run(ctx context.Context, sourceDir string) (*Summary, error) {
	start := time.Now()
	runID := uuid.NewString()
	ctx = services.WithRunID(ctx, runID)
	summary := &Summary{RunID: runID}

	info, err := os.Stat(sourceDir)
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "discover", "workflow", "source directory is not accessible", err)
	}
	if !info.IsDir() {
		return nil, services.Wrap(services.ErrConfiguration, "discover", "workflow", fmt.Sprintf("%s is not a directory", sourceDir), nil)
	}
	if err := m.cfg.EnsureDirectories(); err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "discover", "workflow", "create destination directories", err)
	}
	if err := m.store.InitManifests(m.catalog); err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "discover", "albums", "initialize album manifests", err)
	}

	files, err := discover(sourceDir)
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "discover", "workflow", "walk source directory", err)
	}
	summary.Discovered = len(files)
	m.logger.Info("discovered media files",
		logging.Int("count", len(files)),
		logging.String(logging.FieldRunID, runID))

	if err := m.fixMetadata(ctx, files, summary); err != nil {
		return nil, err
	}
	updates, err := m.relocateAll(ctx, files, summary)
	if err != nil {
		return nil, err
	}
	m.mergeManifests(ctx, updates, summary)

	paths, err := m.sink.Flush(m.cfg.Paths.LogDir)
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "report", "errlog", "write error logs", err)
	}
	summary.LogPaths = paths
	summary.MetadataErrors, summary.RelocationErrors, summary.DuplicateNotices = m.sink.Counts()
	summary.Duration = time.Since(start)
	m.logger.Info("run complete",
		logging.Int("relocated", summary.Relocated),
		logging.Int("skipped", summary.Skipped),
		logging.Duration("duration", summary.Duration))
	return summary, nil
}

// discover walks root and returns every file whose extension is on the
// media allow-list, in walk order.
func discover(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if mediaExtensions[strings.ToLower(filepath.Ext(path))] {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// fixMetadata runs the metadata-fix phase over files in place: each entry
// is replaced with its post-rename path so the relocation phase sees the
// normalized names. Per-file failures are recorded and the file keeps its
// slot; the phase never fails a sibling.
func (m *Manager) fixMetadata(ctx context.Context, files []string, summary *Summary) error {
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(m.processWorkers())
	var mu sync.Mutex
	for i, path := range files {
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			newPath, renamed, stamped := m.fixOne(groupCtx, path)
			mu.Lock()
			files[i] = newPath
			if renamed {
				summary.Renamed++
			}
			if stamped {
				summary.TimestampsFixed++
			}
			mu.Unlock()
			return nil
		})
	}
	return group.Wait()
}

// fixOne repairs a single file's extension and embedded timestamps. It
// returns the file's current path (changed when the extension was wrong),
// whether a rename happened, and whether timestamps were written.
func (m *Manager) fixOne(ctx context.Context, path string) (string, bool, bool) {
	ctx = services.WithPhase(services.WithFilePath(ctx, path), "metadata")
	log := logging.WithContext(ctx, m.logger)

	sidecar, _ := metadata.LoadSidecar(path)
	result, err := m.reader.Read(ctx, path)
	if err != nil {
		log.Warn("metadata read failed", logging.Error(err))
		m.sink.Report(errlog.KindMetadataRead, path, err.Error())
		return path, false, false
	}

	taken, err := metadata.Resolve(sidecar, result.Fields)
	hasTimestamp := err == nil
	if err != nil {
		if errors.Is(err, metadata.ErrNoTimestamp) {
			m.sink.Report(errlog.KindNoTimestamp, path, "no timestamp found in sidecar or metadata")
		} else {
			m.sink.Report(errlog.KindMetadataRead, path, err.Error())
		}
	}

	newPath, err := m.normalizer.Normalize(ctx, path, result.Type, taken, hasTimestamp)
	switch {
	case errors.Is(err, normalize.ErrRename):
		m.sink.Report(errlog.KindExtensionRename, path, err.Error())
		return path, false, false
	case errors.Is(err, normalize.ErrTimestampWrite):
		m.sink.Report(errlog.KindTimestampWrite, newPath, err.Error())
		return newPath, newPath != path, false
	case err != nil:
		m.sink.Report(errlog.KindMetadataRead, path, err.Error())
		return path, false, false
	}
	return newPath, newPath != path, hasTimestamp
}

// relocateAll moves every file into the destination layout and collects
// album updates for the merge phase.
func (m *Manager) relocateAll(ctx context.Context, files []string, summary *Summary) ([]album.Update, error) {
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(m.processWorkers())
	var mu sync.Mutex
	var updates []album.Update
	for _, path := range files {
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			fileCtx := services.WithPhase(services.WithFilePath(groupCtx, path), "relocate")
			outcome, err := m.relocator.Relocate(fileCtx, path)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case errors.Is(err, relocate.ErrNoDate):
				m.sink.Report(errlog.KindRelocation, path, "no date available to choose a year folder")
				summary.Skipped++
				return nil
			case err != nil:
				m.sink.Report(errlog.KindRelocation, path, err.Error())
				summary.Skipped++
				return nil
			}
			summary.Relocated++
			if outcome.Renamed {
				m.sink.Report(errlog.KindDuplicateRenamed, outcome.FinalPath,
					fmt.Sprintf("renamed to avoid collision with existing %s", outcome.OriginalName))
			}
			if outcome.Update != nil {
				updates = append(updates, *outcome.Update)
			}
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	summary.AlbumUpdates = len(updates)
	return updates, nil
}

// mergeManifests merges the collected album updates into their manifests.
// A failed collection is logged and recorded without blocking the others.
func (m *Manager) mergeManifests(ctx context.Context, updates []album.Update, summary *Summary) {
	if len(updates) == 0 {
		return
	}
	failures := m.store.MergeAll(ctx, updates)
	for _, failure := range failures {
		m.logger.Warn("album manifest merge failed",
			logging.String(logging.FieldCollection, failure.Collection),
			logging.Error(failure.Err))
		m.sink.Report(errlog.KindManifestMerge, m.store.ManifestPath(failure.Collection), failure.Err.Error())
	}
	summary.MergedItems = len(updates) - countFailedUpdates(updates, failures)
}

func countFailedUpdates(updates []album.Update, failures []album.MergeError) int {
	if len(failures) == 0 {
		return 0
	}
	failed := make(map[string]bool, len(failures))
	for _, f := range failures {
		failed[album.Key(f.Collection)] = true
	}
	n := 0
	for _, u := range updates {
		if failed[album.Key(u.Collection)] {
			n++
		}
	}
	return n
}

func (m *Manager) processWorkers() int {
	if m.cfg.Workers.Process > 0 {
		return m.cfg.Workers.Process
	}
	return defaultProcessWorkers
}

// captureResolver re-reads a file's sidecar and metadata to resolve its
// capture time. Relocation uses this for year layouts instead of carrying
// the metadata-fix phase result forward, so a rename between phases cannot
// leave a stale answer.
type captureResolver struct {
	reader *metadata.Reader
}

func (c *captureResolver) ResolveCapture(ctx context.Context, path string) (time.Time, error) {
	sidecar, _ := metadata.LoadSidecar(path)
	result, err := c.reader.Read(ctx, path)
	if err != nil {
		return time.Time{}, err
	}
	return metadata.Resolve(sidecar, result.Fields)
}
