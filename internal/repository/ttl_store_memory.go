package repository

import (
	"context"
	"sync"
	"time"
)

type memEntry struct {
	value     []byte
	expiresAt time.Time
}

func (e memEntry) isExpired() bool {
	return time.Now().After(e.expiresAt)
}

// memoryTTLStore keeps entries in a process-local map. Data is lost on
// restart and invisible to other instances; acceptable for single-instance
// deployments only.
type memoryTTLStore struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]memEntry
}

func NewMemoryTTLStore(ttl time.Duration) TTLStore {
	return &memoryTTLStore{
		ttl:     ttl,
		entries: make(map[string]memEntry),
	}
}

func (s *memoryTTLStore) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = memEntry{value: value, expiresAt: time.Now().Add(s.ttl)}
	return nil
}

func (s *memoryTTLStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	entry, ok := s.entries[key]
	s.mu.RUnlock()

	if !ok || entry.isExpired() {
		if ok && entry.isExpired() {
			// Lazy reclamation; an optimization, not part of the contract.
			s.mu.Lock()
			delete(s.entries, key)
			s.mu.Unlock()
		}
		return nil, nil
	}
	return entry.value, nil
}
