package snapshot

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"
)

// Memory is an in-process snapshot source for tests.
type Memory struct {
	mu      sync.RWMutex
	objects map[string][]byte
}

// NewMemory returns an empty in-memory source.
func NewMemory() *Memory {
	return &Memory{objects: make(map[string][]byte)}
}

// Driver implements Source.
func (m *Memory) Driver() Driver { return DriverMemory }

// Put stores a snapshot payload under key, replacing any previous payload.
func (m *Memory) Put(key string, payload []byte) {
	m.mu.Lock()
	m.objects[key] = append([]byte(nil), payload...)
	m.mu.Unlock()
}

// Fetch implements Source.
func (m *Memory) Fetch(_ context.Context, key string) (io.ReadCloser, error) {
	m.mu.RLock()
	payload, ok := m.objects[key]
	m.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("snapshot %s not found", key)
	}
	return io.NopCloser(bytes.NewReader(payload)), nil
}
