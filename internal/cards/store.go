package cards

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// Store persists the ordered card sequence as a single JSON file. Every save
// is a whole-array replacement, never an incremental patch, so callers must
// always submit the complete current sequence. Concurrent editor sessions are
// not coordinated: the last save to land wins. That race is a known
// limitation carried over from the single-user design, not something this
// layer papers over.
type Store struct {
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load returns the saved sequence. A missing backing file is the empty state,
// not an error.
func (s *Store) Load() ([]Card, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []Card{}, nil
	}
	if err != nil {
		return nil, err
	}
	var loaded []Card
	if err := json.Unmarshal(data, &loaded); err != nil {
		return nil, err
	}
	if loaded == nil {
		loaded = []Card{}
	}
	return loaded, nil
}

func (s *Store) Save(sequence []Card) error {
	if sequence == nil {
		sequence = []Card{}
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(sequence, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0644)
}
