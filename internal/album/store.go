package album

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gofrs/flock"
	"golang.org/x/sync/errgroup"

	"snapsort/internal/logging"
)

// ErrLockContended reports that the per-collection lock could not be
// acquired within the retry budget.
var ErrLockContended = errors.New("manifest lock contended")

// ErrManifestCollision reports that two distinct collection names reduce to
// the same manifest file, which would silently merge their contents.
var ErrManifestCollision = errors.New("collections share a manifest name")

// Retry contract for contended locks.
const (
	lockInitialDelay = 100 * time.Millisecond
	lockDelayFactor  = 2
	lockMaxAttempts  = 5
)

// Store persists one JSON array manifest per collection, guarded by a
// filesystem lock so concurrent writers from any process serialize their
// merges. Merges across distinct collections share no lock.
type Store struct {
	dir    string
	logger *slog.Logger

	initialDelay time.Duration
	maxAttempts  int
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithRetry overrides the lock retry budget (primarily for tests).
func WithRetry(initialDelay time.Duration, maxAttempts int) StoreOption {
	return func(s *Store) {
		if initialDelay > 0 {
			s.initialDelay = initialDelay
		}
		if maxAttempts > 0 {
			s.maxAttempts = maxAttempts
		}
	}
}

// NewStore constructs a manifest store rooted at dir.
func NewStore(dir string, logger *slog.Logger, opts ...StoreOption) *Store {
	store := &Store{
		dir:          dir,
		logger:       logging.NewComponentLogger(logger, "album-store"),
		initialDelay: lockInitialDelay,
		maxAttempts:  lockMaxAttempts,
	}
	for _, opt := range opts {
		opt(store)
	}
	return store
}

// ManifestPath returns the stable manifest location for a collection.
func (s *Store) ManifestPath(collection string) string {
	return filepath.Join(s.dir, slug(collection)+".json")
}

func (s *Store) lockPath(collection string) string {
	return s.ManifestPath(collection) + ".lock"
}

// InitManifests creates empty manifests for every catalog collection that
// does not have one yet. Distinct collections whose names reduce to the same
// manifest basename are rejected up front rather than merged.
func (s *Store) InitManifests(catalog *Catalog) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create albums directory: %w", err)
	}
	claimed := make(map[string]string)
	for _, key := range catalog.Keys() {
		name := slug(key)
		if prev, ok := claimed[name]; ok {
			return fmt.Errorf("%w: %q and %q both map to %s.json", ErrManifestCollision, prev, key, name)
		}
		claimed[name] = key
		path := s.ManifestPath(key)
		if _, err := os.Stat(path); err == nil {
			continue
		}
		if err := writeManifest(path, []Item{}); err != nil {
			return fmt.Errorf("init manifest for %q: %w", key, err)
		}
	}
	return nil
}

// Load reads the current manifest for a collection. A missing or empty file
// yields an empty slice.
func (s *Store) Load(collection string) ([]Item, error) {
	return readManifest(s.ManifestPath(collection))
}

// MergeItems appends items to the collection manifest, dropping items whose
// FullPath is already present. The operation is idempotent and safe against
// concurrent writers: an exclusive lock file serializes merges for the same
// collection, retried with exponential backoff before giving up.
func (s *Store) MergeItems(ctx context.Context, collection string, items []Item) error {
	if len(items) == 0 {
		return nil
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create albums directory: %w", err)
	}

	lock := flock.New(s.lockPath(collection))
	if err := s.acquire(ctx, collection, lock); err != nil {
		return err
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			s.logger.Warn("failed to release manifest lock",
				logging.String(logging.FieldCollection, collection),
				logging.Error(err),
			)
		}
	}()

	path := s.ManifestPath(collection)
	current, err := readManifest(path)
	if err != nil {
		return fmt.Errorf("read manifest: %w", err)
	}

	seen := make(map[string]struct{}, len(current))
	for _, item := range current {
		seen[item.FullPath] = struct{}{}
	}

	added := 0
	for _, item := range items {
		if _, ok := seen[item.FullPath]; ok {
			continue
		}
		seen[item.FullPath] = struct{}{}
		current = append(current, item)
		added++
	}
	if added == 0 {
		return nil
	}

	if err := writeManifest(path, current); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	s.logger.Info("manifest merged",
		logging.String(logging.FieldCollection, collection),
		logging.Int("added", added),
		logging.Int("total", len(current)),
	)
	return nil
}

// MergeError pairs a failed collection with its cause.
type MergeError struct {
	Collection string
	Err        error
}

// MergeAll groups updates by collection and merges them, parallel across
// collections. Failures are collected per collection; one collection's
// exhausted retries never block the others.
func (s *Store) MergeAll(ctx context.Context, updates []Update) []MergeError {
	grouped := make(map[string][]Item)
	for _, update := range updates {
		key := Key(update.Collection)
		grouped[key] = append(grouped[key], update.Item)
	}

	var mu sync.Mutex
	var failures []MergeError

	g, ctx := errgroup.WithContext(ctx)
	for collection, items := range grouped {
		g.Go(func() error {
			if err := s.MergeItems(ctx, collection, items); err != nil {
				mu.Lock()
				failures = append(failures, MergeError{Collection: collection, Err: err})
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()
	return failures
}

func (s *Store) acquire(ctx context.Context, collection string, lock *flock.Flock) error {
	delay := s.initialDelay
	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		ok, err := lock.TryLock()
		if err != nil {
			return fmt.Errorf("acquire manifest lock: %w", err)
		}
		if ok {
			return nil
		}
		if attempt == s.maxAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
		delay *= lockDelayFactor
	}
	return fmt.Errorf("%w: collection %q after %d attempts", ErrLockContended, collection, s.maxAttempts)
}

func readManifest(path string) ([]Item, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []Item{}, nil
		}
		return nil, err
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return []Item{}, nil
	}
	var items []Item
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", filepath.Base(path), err)
	}
	return items, nil
}

// writeManifest writes the whole array through a temp file and rename so the
// manifest stays valid JSON even if the process dies mid-write.
func writeManifest(path string, items []Item) error {
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".manifest-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}

// slug reduces a collection key to a filesystem-safe manifest basename.
func slug(collection string) string {
	builder := strings.Builder{}
	lastHyphen := false
	for _, r := range Key(collection) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			builder.WriteRune(r)
			lastHyphen = false
		case r == ' ' || r == '-' || r == '_' || r == '.':
			if !lastHyphen {
				builder.WriteRune('-')
				lastHyphen = true
			}
		default:
			// drop other runes
		}
	}
	result := strings.Trim(builder.String(), "-")
	if result == "" {
		result = "collection"
	}
	return result
}
