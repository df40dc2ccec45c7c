// Package storesvc provides KeyValueStore implementations: a JSON file store
// that survives restarts, the way the browser's localStorage does, and an
// in-memory store for tests.
package storesvc

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"

	"github.com/trezcool/skillshare/core"
)

// FileStore persists key/value pairs in a single JSON file. Every mutation is
// written through immediately.
type FileStore struct {
	mu   sync.RWMutex
	path string
	data map[string]string
}

var _ core.KeyValueStore = (*FileStore)(nil)

func NewFileStore(path string) (*FileStore, error) {
	s := &FileStore{path: path, data: make(map[string]string)}
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, errors.Wrap(err, "reading store file")
	}
	if len(raw) > 0 {
		if err = json.Unmarshal(raw, &s.data); err != nil {
			return nil, errors.Wrap(err, "decoding store file")
		}
	}
	return s, nil
}

func (s *FileStore) Get(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	return v, ok
}

func (s *FileStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	return s.flush()
}

func (s *FileStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return s.flush()
}

func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = make(map[string]string)
	return s.flush()
}

func (s *FileStore) flush() error {
	raw, err := json.Marshal(s.data)
	if err != nil {
		return errors.Wrap(err, "encoding store")
	}
	if err = os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return errors.Wrap(err, "creating store dir")
	}
	if err = os.WriteFile(s.path, raw, 0o600); err != nil {
		return errors.Wrap(err, "writing store file")
	}
	return nil
}
