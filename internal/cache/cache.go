// Package cache provides the process-local response cache used for catalog
// fetches. Entries never expire; they live until Clear or process exit.
package cache

import "sync"

// Cache is a string-keyed value cache
type Cache[V any] interface {
	Get(key string) (V, bool)
	Set(key string, value V)
	Clear()
}

// Memory is an in-memory Cache safe for concurrent use
type Memory[V any] struct {
	mu    sync.RWMutex
	items map[string]V
}

// NewMemory creates an empty in-memory cache
func NewMemory[V any]() *Memory[V] {
	return &Memory[V]{items: make(map[string]V)}
}

func (m *Memory[V]) Get(key string) (V, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.items[key]
	return v, ok
}

func (m *Memory[V]) Set(key string, value V) {
	m.mu.Lock()
	m.items[key] = value
	m.mu.Unlock()
}

func (m *Memory[V]) Clear() {
	m.mu.Lock()
	m.items = make(map[string]V)
	m.mu.Unlock()
}

// Len returns the number of cached entries
func (m *Memory[V]) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}
