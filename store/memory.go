package store

import (
	"context"
	"sync"

	"github.com/nathoo/trailhead/types"
)

// MemoryStore keeps the state in process memory.
type MemoryStore struct {
	mu    sync.RWMutex
	state types.GameState
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore(initial types.GameState) *MemoryStore {
	return &MemoryStore{state: initial}
}

func (m *MemoryStore) Get(_ context.Context) (types.GameState, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state, nil
}

func (m *MemoryStore) Replace(_ context.Context, s types.GameState) (types.GameState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = s
	return m.state, nil
}

func (m *MemoryStore) Ping(_ context.Context) error {
	return nil
}

func (m *MemoryStore) Close() error {
	return nil
}
