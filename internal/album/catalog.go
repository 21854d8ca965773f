package album

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strings"

	"golang.org/x/text/cases"
)

// Item is one media file attributed to a collection manifest.
type Item struct {
	Name         string `json:"name"`
	RelativePath string `json:"relativePath"`
	FullPath     string `json:"fullPath"`
}

// Update is a transient pairing of a collection name and an item produced
// during relocation, merged into the manifest afterwards.
type Update struct {
	Collection string
	Item       Item
}

var folder = cases.Fold()

// Key canonicalizes a collection name for use as a lookup key: trimmed and
// Unicode case-folded.
func Key(name string) string {
	return folder.String(strings.TrimSpace(name))
}

// Catalog holds the set of known collection names.
type Catalog struct {
	names map[string]string
}

// NewCatalog builds a catalog from raw names. Blank entries are dropped;
// names are keyed case-folded and trimmed.
func NewCatalog(names []string) *Catalog {
	catalog := &Catalog{names: make(map[string]string, len(names))}
	for _, name := range names {
		trimmed := strings.TrimSpace(name)
		if trimmed == "" {
			continue
		}
		catalog.names[Key(trimmed)] = trimmed
	}
	return catalog
}

// LoadCatalog reads a plain-text collection name list, one name per line,
// ignoring blank lines.
func LoadCatalog(path string) (*Catalog, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open album names file: %w", err)
	}
	defer file.Close()

	var names []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		names = append(names, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read album names file: %w", err)
	}
	return NewCatalog(names), nil
}

// Match reports whether folderName refers to a known collection and returns
// its canonical key.
func (c *Catalog) Match(folderName string) (string, bool) {
	if c == nil {
		return "", false
	}
	key := Key(folderName)
	if _, ok := c.names[key]; ok {
		return key, true
	}
	return "", false
}

// Keys returns the canonical collection keys in sorted order.
func (c *Catalog) Keys() []string {
	if c == nil {
		return nil
	}
	keys := make([]string, 0, len(c.names))
	for key := range c.names {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of known collections.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.names)
}
