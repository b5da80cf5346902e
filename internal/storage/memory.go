package storage

import (
	"context"
	"sync"

	"github.com/pfrederiksen/wimbledon-finals/internal/final"
)

// MemoryStore keeps finals in a map guarded by a mutex
type MemoryStore struct {
	mu     sync.RWMutex
	finals map[int]final.Final
}

// NewMemory creates an empty in-memory store
func NewMemory() *MemoryStore {
	return &MemoryStore{finals: make(map[int]final.Final)}
}

func (s *MemoryStore) Upsert(_ context.Context, f final.Final) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.finals[f.Year] = f
	return nil
}

func (s *MemoryStore) GetByYear(_ context.Context, year int) (final.Final, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	f, ok := s.finals[year]
	if !ok {
		return final.Final{}, ErrNotFound
	}
	return f.Normalize(), nil
}

// Len returns the number of stored records
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.finals)
}

func (s *MemoryStore) Close() error {
	return nil
}
