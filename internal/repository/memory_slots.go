package repository

import (
	"context"
	"sync"
)

// MemorySlots is a process-local slot store.
type MemorySlots struct {
	mu    sync.RWMutex
	slots map[string]string
}

func NewMemorySlots() *MemorySlots {
	return &MemorySlots{slots: map[string]string{}}
}

func (m *MemorySlots) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.slots[key]
	return v, ok, nil
}

func (m *MemorySlots) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	m.slots[key] = value
	m.mu.Unlock()
	return nil
}
