package store

import (
	"context"
	"slices"
	"sync"

	"github.com/jpp0ca/SetlistStats-API/internal/domain"
)

// Memory is an in-process PayloadStore. It is safe for concurrent use.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]domain.CacheEntry
}

func NewMemory() *Memory {
	return &Memory{entries: make(map[string]domain.CacheEntry)}
}

func (m *Memory) Get(_ context.Context, key string) (*domain.CacheEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entry, ok := m.entries[key]
	if !ok {
		return nil, domain.ErrCacheMiss
	}
	entry.Data = slices.Clone(entry.Data)
	return &entry, nil
}

func (m *Memory) Set(_ context.Context, key string, entry domain.CacheEntry) error {
	entry.Data = slices.Clone(entry.Data)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = entry
	return nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
	return nil
}
