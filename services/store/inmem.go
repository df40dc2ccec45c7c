package storesvc

import (
	"sync"

	"github.com/trezcool/skillshare/core"
)

// InMemStore is a volatile KeyValueStore for tests.
type InMemStore struct {
	mu   sync.RWMutex
	data map[string]string
}

var _ core.KeyValueStore = (*InMemStore)(nil)

func NewInMemStore() *InMemStore {
	return &InMemStore{data: make(map[string]string)}
}

func (s *InMemStore) Get(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	return v, ok
}

func (s *InMemStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	return nil
}

func (s *InMemStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

func (s *InMemStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = make(map[string]string)
	return nil
}
