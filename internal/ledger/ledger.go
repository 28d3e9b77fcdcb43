// Package ledger persists the set of bug ids already embedded into the
// vector index. It gates incremental ingestion.
package ledger

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/google/renameio/v2"
)

// Ledger is a JSON file holding an array of bug ids. Single writer only.
type Ledger struct {
	path string
}

// New creates a ledger backed by the file at path
func New(path string) *Ledger {
	return &Ledger{path: path}
}

// Path returns the backing file location
func (l *Ledger) Path() string {
	return l.path
}

// Load returns the ingested ids. A missing file is initialised to an empty set
// and persisted so later reads never fail.
func (l *Ledger) Load() (map[int]struct{}, error) {
	data, err := os.ReadFile(l.path)
	if errors.Is(err, fs.ErrNotExist) {
		ids := map[int]struct{}{}
		if err := l.Save(ids); err != nil {
			return nil, fmt.Errorf("failed to initialise ledger: %w", err)
		}
		return ids, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read ledger: %w", err)
	}

	var list []int
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("failed to parse ledger %s: %w", l.path, err)
	}

	ids := make(map[int]struct{}, len(list))
	for _, id := range list {
		ids[id] = struct{}{}
	}
	return ids, nil
}

// Save replaces the stored set. The file is written to a temp file in the same
// directory and renamed over the old one, so a crash leaves either the old or
// the new ledger, never a truncated one.
func (l *Ledger) Save(ids map[int]struct{}) error {
	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return fmt.Errorf("failed to create ledger directory: %w", err)
	}

	data, err := json.Marshal(Sorted(ids))
	if err != nil {
		return fmt.Errorf("failed to encode ledger: %w", err)
	}

	if err := renameio.WriteFile(l.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write ledger: %w", err)
	}
	return nil
}

// Sorted returns the ids in ascending order
func Sorted(ids map[int]struct{}) []int {
	list := make([]int, 0, len(ids))
	for id := range ids {
		list = append(list, id)
	}
	sort.Ints(list)
	return list
}

// Union returns a new set holding the ids of base plus added
func Union(base map[int]struct{}, added []int) map[int]struct{} {
	out := make(map[int]struct{}, len(base)+len(added))
	for id := range base {
		out[id] = struct{}{}
	}
	for _, id := range added {
		out[id] = struct{}{}
	}
	return out
}

// Difference returns the ids not yet in the set, keeping their order and
// dropping repeats
func Difference(ids []int, known map[int]struct{}) []int {
	var out []int
	seen := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := known[id]; ok {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
