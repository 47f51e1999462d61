// Package prefs persists small client-side preferences (theme, recent
// prompts) as JSON-encoded scalars in a key-value file.
package prefs

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	perrors "github.com/nexara/nexara/internal/errors"
)

// Keys used by the client. They match the keys the web client keeps in
// localStorage so the two front ends describe the same state.
const (
	KeyTheme   = "nexara_theme"
	KeyHistory = "nexara_history"
)

// Store is a persistent key-value store of JSON-encoded values.
type Store interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte) error
	Delete(key string) error
}

// FileStore keeps every key in a single JSON object on disk.
type FileStore struct {
	path string

	mu     sync.Mutex
	values map[string]json.RawMessage
	loaded bool
}

// NewFileStore returns a store backed by path. The file is read lazily and
// created on the first write.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// DefaultPath returns prefs.json inside dir.
func DefaultPath(dir string) string {
	return filepath.Join(dir, "prefs.json")
}

// Path returns the backing file.
func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) loadLocked() error {
	if s.loaded {
		return nil
	}
	s.values = make(map[string]json.RawMessage)

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		s.loaded = true
		return nil
	}
	if err != nil {
		return perrors.FileReadFailed("prefs.load", s.path, err)
	}
	if err := json.Unmarshal(data, &s.values); err != nil {
		// A corrupt file is treated like an empty one; the next write replaces it.
		s.values = make(map[string]json.RawMessage)
		s.loaded = true
		return perrors.E(perrors.Op("prefs.load"), perrors.KindInvalid, "corrupt prefs file "+s.path, err)
	}
	s.loaded = true
	return nil
}

// Get returns the raw JSON value stored under key.
func (s *FileStore) Get(key string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.loadLocked(); err != nil {
		return nil, false
	}
	v, ok := s.values[key]
	if !ok {
		return nil, false
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, true
}

// Set stores value under key and writes the file.
func (s *FileStore) Set(key string, value []byte) error {
	if !json.Valid(value) {
		return perrors.E(perrors.Op("prefs.Set"), perrors.KindInvalid, "value for "+key+" is not valid JSON")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// A corrupt file is overwritten, so a load error is not fatal here.
	_ = s.loadLocked()
	s.values[key] = append(json.RawMessage(nil), value...)
	return s.flushLocked()
}

// Delete removes key and writes the file.
func (s *FileStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_ = s.loadLocked()
	if _, ok := s.values[key]; !ok {
		return nil
	}
	delete(s.values, key)
	return s.flushLocked()
}

// flushLocked writes through a temp file and rename so a crash mid-write
// never leaves a truncated prefs file behind.
func (s *FileStore) flushLocked() error {
	op := perrors.Op("prefs.flush")

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return perrors.E(op, perrors.KindIO, err)
	}
	data, err := json.MarshalIndent(s.values, "", "  ")
	if err != nil {
		return perrors.E(op, perrors.KindInvalid, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".prefs-*.json")
	if err != nil {
		return perrors.E(op, perrors.KindIO, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return perrors.E(op, perrors.KindIO, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return perrors.E(op, perrors.KindIO, err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return perrors.E(op, perrors.KindIO, err)
	}
	return nil
}

// MemoryStore is a Store that never touches disk.
type MemoryStore struct {
	mu     sync.Mutex
	values map[string][]byte
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string][]byte)}
}

func (s *MemoryStore) Get(key string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	if !ok {
		return nil, false
	}
	return append([]byte(nil), v...), true
}

func (s *MemoryStore) Set(key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = append([]byte(nil), value...)
	return nil
}

func (s *MemoryStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return nil
}
