package memory

import (
	"context"
	"maps"
	"sync"
)

// Store keeps values in a map. It backs tests and the in-memory storage driver.
type Store struct {
	mu     sync.Mutex
	values map[string]string
}

func New() *Store {
	return &Store{values: make(map[string]string)}
}

// NewFrom seeds the store with a copy of values.
func NewFrom(values map[string]string) *Store {
	return &Store{values: maps.Clone(values)}
}

func (s *Store) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.values[key]

	return v, ok, nil
}

func (s *Store) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.values == nil {
		s.values = make(map[string]string)
	}

	s.values[key] = value

	return nil
}
