package memory

import (
	"context"
	"sync"

	"github.com/mcoot/gameportal/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu     sync.RWMutex
	values map[string]string
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		values: make(map[string]string),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) Get(ctx context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.values[key]
	if !ok {
		return "", storage.ErrNotFound
	}
	return value, nil
}

func (s *Storage) Set(ctx context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

func (s *Storage) Remove(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return nil
}

// Len returns the number of stored keys
func (s *Storage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.values)
}
