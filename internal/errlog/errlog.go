package errlog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Kind classifies a per-file pipeline failure.
type Kind string

const (
	KindMetadataRead    Kind = "metadata_read_failure"
	KindNoTimestamp     Kind = "no_timestamp_found"
	KindTimestampWrite  Kind = "timestamp_write_failure"
	KindExtensionRename Kind = "extension_rename_failure"
	KindRelocation      Kind = "relocation_failure"
	KindManifestMerge   Kind = "manifest_merge_failure"
	// KindDuplicateRenamed is informational, not strictly an error.
	KindDuplicateRenamed Kind = "duplicate_renamed"
)

// Category selects which of the three log files a record lands in.
type Category int

const (
	CategoryMetadata Category = iota
	CategoryRelocation
	CategoryDuplicates
)

// DefaultCategory maps a kind onto the log category it belongs to when the
// caller has no phase-specific routing to apply.
func DefaultCategory(kind Kind) Category {
	switch kind {
	case KindRelocation, KindManifestMerge:
		return CategoryRelocation
	case KindDuplicateRenamed:
		return CategoryDuplicates
	default:
		return CategoryMetadata
	}
}

// Record is one reported failure or notice. Field names match the on-disk
// JSON shape consumed by downstream tooling.
type Record struct {
	Path    string `json:"Path"`
	Message string `json:"Message"`
}

// Log file basenames written by Flush.
const (
	MetadataLogName   = "metadata_errors.json"
	RelocationLogName = "relocation_errors.json"
	DuplicatesLogName = "duplicates.json"
)

// Sink aggregates structured per-file failures from concurrent workers.
// All methods are safe for concurrent use.
type Sink struct {
	mu         sync.Mutex
	metadata   []Record
	relocation []Record
	duplicates []Record
}

// NewSink returns an empty sink.
func NewSink() *Sink {
	return &Sink{}
}

// Add appends a record to the given category.
func (s *Sink) Add(category Category, path, message string) {
	record := Record{Path: path, Message: message}
	s.mu.Lock()
	defer s.mu.Unlock()
	switch category {
	case CategoryRelocation:
		s.relocation = append(s.relocation, record)
	case CategoryDuplicates:
		s.duplicates = append(s.duplicates, record)
	default:
		s.metadata = append(s.metadata, record)
	}
}

// Report routes a kind through its default category.
func (s *Sink) Report(kind Kind, path, message string) {
	s.Add(DefaultCategory(kind), path, message)
}

// Counts returns the number of records per category.
func (s *Sink) Counts() (metadata, relocation, duplicates int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.metadata), len(s.relocation), len(s.duplicates)
}

// Snapshot returns copies of the collected records.
func (s *Sink) Snapshot(category Category) []Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	var src []Record
	switch category {
	case CategoryRelocation:
		src = s.relocation
	case CategoryDuplicates:
		src = s.duplicates
	default:
		src = s.metadata
	}
	out := make([]Record, len(src))
	copy(out, src)
	return out
}

// Flush overwrites the three category log files under dir with the full set
// accumulated this run. Empty categories still produce valid empty JSON
// arrays. Returns the three written paths in metadata, relocation,
// duplicates order.
func (s *Sink) Flush(dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create error log directory: %w", err)
	}

	s.mu.Lock()
	categories := []struct {
		name    string
		records []Record
	}{
		{MetadataLogName, append([]Record(nil), s.metadata...)},
		{RelocationLogName, append([]Record(nil), s.relocation...)},
		{DuplicatesLogName, append([]Record(nil), s.duplicates...)},
	}
	s.mu.Unlock()

	paths := make([]string, 0, len(categories))
	for _, category := range categories {
		records := category.records
		if records == nil {
			records = []Record{}
		}
		data, err := json.MarshalIndent(records, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", category.name, err)
		}
		path := filepath.Join(dir, category.name)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return nil, fmt.Errorf("write %s: %w", category.name, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
