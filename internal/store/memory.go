package store

import (
	"context"
	"sync"
)

// MemoryStore is an in-memory Store used in tests and as a last-resort
// fallback. State does not survive restarts.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]string
}

// NewMemory creates an empty in-memory store.
func NewMemory() *MemoryStore {
	return &MemoryStore{entries: make(map[string]string)}
}

// Get retrieves the value for a key.
func (s *MemoryStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.entries[key]
	return value, ok, nil
}

// Set stores or replaces the value for a key.
func (s *MemoryStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = value
	return nil
}

// Delete removes the given keys.
func (s *MemoryStore) Delete(_ context.Context, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, key := range keys {
		delete(s.entries, key)
	}
	return nil
}

// Ping always succeeds.
func (s *MemoryStore) Ping(_ context.Context) error { return nil }

// Close is a no-op.
func (s *MemoryStore) Close() error { return nil }
