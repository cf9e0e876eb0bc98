package jsonstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/idilsaglam/crudadmin/internal/model"
)

// JSON-backed storage for the development backend. Single file,
// human-readable, one array per kind:
//
//	{"post": [...], "tag": [...]}
//
// An empty path keeps everything in memory.

// ErrNotFound is returned when no record has the requested id.
var ErrNotFound = errors.New("record not found")

type Store struct {
	path string

	mu   sync.Mutex
	data map[string][]model.Record
}

// Open loads path; a missing file starts an empty store.
func Open(path string) (*Store, error) {
	s := &Store{path: path, data: map[string][]model.Record{}}
	if path == "" {
		return s, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return nil, fmt.Errorf("read file: %w", err)
	}
	if err := json.Unmarshal(b, &s.data); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}
	if s.data == nil {
		s.data = map[string][]model.Record{}
	}
	return s, nil
}

// List returns a copy of the kind's records in insertion order.
func (s *Store) List(kind string) []model.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Record, len(s.data[kind]))
	copy(out, s.data[kind])
	return out
}

func (s *Store) Get(kind string, id model.ID) (model.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(kind, id)
	if i < 0 {
		return model.Record{}, ErrNotFound
	}
	return s.data[kind][i], nil
}

// Insert appends rec, which must already carry its identifier.
func (s *Store) Insert(kind string, rec model.Record) error {
	if rec.ID.IsZero() {
		return errors.New("insert: record has no identifier")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.index(kind, rec.ID) >= 0 {
		return fmt.Errorf("insert: duplicate identifier %q", rec.ID)
	}
	s.data[kind] = append(s.data[kind], rec)
	return s.save()
}

// Replace swaps the stored record with the same identifier.
func (s *Store) Replace(kind string, rec model.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(kind, rec.ID)
	if i < 0 {
		return ErrNotFound
	}
	s.data[kind][i] = rec
	return s.save()
}

func (s *Store) Delete(kind string, id model.ID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(kind, id)
	if i < 0 {
		return ErrNotFound
	}
	items := s.data[kind]
	s.data[kind] = append(items[:i:i], items[i+1:]...)
	return s.save()
}

func (s *Store) index(kind string, id model.ID) int {
	for i, rec := range s.data[kind] {
		if rec.ID.Same(id) {
			return i
		}
	}
	return -1
}

// save must be called with mu held.
func (s *Store) save() error {
	if s.path == "" {
		return nil
	}
	b, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir: %w", err)
		}
	}
	if err := os.WriteFile(s.path, b, 0o644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}
