package kv

import (
	"context"
	"sync"

	"walletmap/pkg/platform/sentinel"
)

// MemoryStore keeps mappings in process memory. It intentionally favors
// clarity over performance and is the default backend for development and
// unit tests.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]string)}
}

func (s *MemoryStore) Get(_ context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if value, ok := s.data[key]; ok {
		return value, nil
	}
	return "", sentinel.ErrNotFound
}

func (s *MemoryStore) SetNX(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.data[key]; ok {
		return sentinel.ErrConflict
	}
	s.data[key] = value
	return nil
}

func (s *MemoryStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	return nil
}

// Len reports the number of stored keys. Tests use it to assert that rejected
// requests leave no state behind.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}
