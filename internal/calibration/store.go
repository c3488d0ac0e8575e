// Package calibration persists the screen positions the crafters click on.
//
// Positions live in a small JSON document keyed by section and name, for
// example currency/chaos or cluster/button-location. The whole document is
// loaded into memory and rewritten on every update.
package calibration

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

// Sections and keys read by the crafters
const (
	SectionCurrency = "currency"
	SectionCluster  = "cluster"
	SectionTargets  = "targets"

	KeyClusterButton = "button-location"
	KeyCraftItem     = "craft-item"
	KeyCraftMethod   = "craft-method"
	KeyMapItem       = "map-item"
)

// Position is a screen coordinate
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// IsZero reports whether the position was never calibrated
func (p Position) IsZero() bool {
	return p.X == 0 && p.Y == 0
}

func (p Position) String() string {
	return fmt.Sprintf("(%d, %d)", p.X, p.Y)
}

// Entry is one calibrated position, used for listings
type Entry struct {
	Section  string
	Key      string
	Position Position
}

type document map[string]map[string]Position

// Store is a file-backed position registry. Safe for concurrent use; reads
// never touch the disk.
type Store struct {
	mu   sync.RWMutex
	path string
	data document
}

// defaultDocument returns the layout written when no file exists yet
func defaultDocument() document {
	return document{
		SectionCluster: {KeyClusterButton: {}},
		SectionCurrency: {
			"chaos":      {},
			"augment":    {},
			"alteration": {},
			"scouring":   {},
		},
	}
}

// Open loads the store at path, creating it with defaults when missing
func Open(path string) (*Store, error) {
	s := &Store{path: path}

	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		s.data = defaultDocument()
		if err := s.save(); err != nil {
			return nil, err
		}
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read calibration file: %w", err)
	}

	doc := document{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse calibration file %s: %w", path, err)
	}
	s.data = doc
	return s, nil
}

// Path returns the backing file
func (s *Store) Path() string {
	return s.path
}

// Lookup returns the calibrated position. Unset (zero) positions are absent.
func (s *Store) Lookup(section, key string) (Position, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	pos, ok := s.data[section][key]
	if !ok || pos.IsZero() {
		return Position{}, false
	}
	return pos, true
}

// Set stores a position and rewrites the file
func (s *Store) Set(section, key string, pos Position) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.data == nil {
		s.data = document{}
	}
	if s.data[section] == nil {
		s.data[section] = map[string]Position{}
	}
	s.data[section][key] = pos
	return s.save()
}

// Entries lists every stored position sorted by section and key
func (s *Store) Entries() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Entry
	for section, keys := range s.data {
		for key, pos := range keys {
			out = append(out, Entry{Section: section, Key: key, Position: pos})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Section != out[j].Section {
			return out[i].Section < out[j].Section
		}
		return out[i].Key < out[j].Key
	})
	return out
}

// save must be called with the write lock held (or before the store is shared)
func (s *Store) save() error {
	raw, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return err
	}
	if dir := filepath.Dir(s.path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create calibration dir: %w", err)
		}
	}
	if err := os.WriteFile(s.path, raw, 0o644); err != nil {
		return fmt.Errorf("write calibration file: %w", err)
	}
	return nil
}
