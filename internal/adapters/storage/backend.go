// Package storage provides the key-addressed entity store shared by every
// view: whole-collection reads and writes over a pluggable string
// key/value backend, with fixed default datasets standing in for missing
// or unreadable values.
package storage

import (
	"context"
	"sync"
)

// Backend is the persistence contract: string key to string value, no
// partial updates. Implementations must be safe for concurrent use.
type Backend interface {
	// Get returns the stored value and whether the key exists.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set stores the value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error
}

// MemoryBackend is a map-based Backend for tests and ephemeral runs.
type MemoryBackend struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryBackend creates an empty in-memory backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{values: make(map[string]string)}
}

// Get returns the stored value and whether the key exists.
func (b *MemoryBackend) Get(_ context.Context, key string) (string, bool, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	v, ok := b.values[key]
	return v, ok, nil
}

// Set stores the value under key.
func (b *MemoryBackend) Set(_ context.Context, key, value string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.values[key] = value
	return nil
}
