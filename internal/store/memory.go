package store

import (
	"context"
	"maps"
	"slices"
	"sync"

	"github.com/google/uuid"
)

// MemoryStore keeps records in a map. Values are stored as given, so
// callers storing pointers share them with the store.
type MemoryStore[T any] struct {
	mu sync.RWMutex
	m  map[string]T
}

func NewMemoryStore[T any]() *MemoryStore[T] {
	return &MemoryStore[T]{m: map[string]T{}}
}

func (s *MemoryStore[T]) Get(_ context.Context, id string) (T, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.m[id]
	return v, ok, nil
}

func (s *MemoryStore[T]) Put(_ context.Context, id string, v T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[id] = v
	return nil
}

// List returns every record ordered by ID.
func (s *MemoryStore[T]) List(_ context.Context) ([]T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]T, 0, len(s.m))
	for _, id := range slices.Sorted(maps.Keys(s.m)) {
		out = append(out, s.m[id])
	}
	return out, nil
}

func (s *MemoryStore[T]) NewID() string {
	return uuid.NewString()
}
