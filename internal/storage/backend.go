// Package storage persists serialized themes. A Backend is a plain key/value
// slot store; the Adapter layers theme encoding, validation and the
// never-fail contract on top of it.
package storage

import (
	"errors"
	"sync"
)

var (
	// ErrNotFound is returned by a Backend when the key has never been written.
	ErrNotFound = errors.New("storage: key not found")
	// ErrUnavailable is returned when the backing store cannot be reached at all.
	ErrUnavailable = errors.New("storage: backend unavailable")
)

// Backend stores opaque values under string keys.
type Backend interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
}

// Memory is a process-local Backend.
type Memory struct {
	mu     sync.RWMutex
	values map[string][]byte
}

// NewMemory allocates an empty in-memory backend.
func NewMemory() *Memory {
	return &Memory{values: make(map[string][]byte)}
}

// Get implements Backend.
func (m *Memory) Get(key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	value, ok := m.values[key]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

// Set implements Backend.
func (m *Memory) Set(key string, value []byte) error {
	stored := make([]byte, len(value))
	copy(stored, value)

	m.mu.Lock()
	m.values[key] = stored
	m.mu.Unlock()
	return nil
}

// Unavailable is a Backend for contexts with no durable store, such as
// server-side rendering. Every call fails with ErrUnavailable.
type Unavailable struct{}

// Get implements Backend.
func (Unavailable) Get(string) ([]byte, error) { return nil, ErrUnavailable }

// Set implements Backend.
func (Unavailable) Set(string, []byte) error { return ErrUnavailable }
