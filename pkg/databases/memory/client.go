package memory

import (
	"context"
	"sync"

	"github.com/haguru/localauth/internal/interfaces"
)

// MemoryClient keeps values in process memory. Nothing survives a restart.
type MemoryClient struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryClient returns an empty in-memory store.
func NewMemoryClient() interfaces.KVStore {
	return &MemoryClient{values: make(map[string]string)}
}

func (m *MemoryClient) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *MemoryClient) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *MemoryClient) Remove(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

func (m *MemoryClient) Ping(context.Context) error {
	return nil
}

func (m *MemoryClient) Close(context.Context) error {
	return nil
}
