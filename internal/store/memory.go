package store

import (
	"context"
	"sync"
)

// Memory is an in-process Store. A positive limit caps the total number of
// bytes held across all keys, mirroring a browser storage quota.
type Memory struct {
	mu     sync.RWMutex
	values map[string][]byte
	limit  int
}

// NewMemory creates an empty in-memory store. limit <= 0 means unlimited.
func NewMemory(limit int) *Memory {
	return &Memory{
		values: make(map[string][]byte),
		limit:  limit,
	}
}

// Get implements Store
func (m *Memory) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	value, ok := m.values[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), value...), nil
}

// Set implements Store
func (m *Memory) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.limit > 0 {
		used := len(value)
		for k, v := range m.values {
			if k != key {
				used += len(v)
			}
		}
		if used > m.limit {
			return &QuotaExceededError{Key: key, Size: used, Limit: m.limit}
		}
	}

	m.values[key] = append([]byte(nil), value...)
	return nil
}

// Delete implements Store
func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}
