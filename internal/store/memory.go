package store

import (
	"context"
	"sync"
)

// MemorySlots is an in-process Slots implementation. Contents are lost when
// the process exits; it backs tests and STORE_DRIVER=memory.
type MemorySlots struct {
	mu   sync.RWMutex
	data map[string]string
}

// NewMemorySlots returns an empty MemorySlots.
func NewMemorySlots() *MemorySlots {
	return &MemorySlots{data: make(map[string]string)}
}

func (m *MemorySlots) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *MemorySlots) Put(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}
