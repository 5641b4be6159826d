package prefs

import (
	"context"
	"sync"
)

// memory is an in-process Store. State is lost when the process exits.
type memory struct {
	mu sync.RWMutex
	p  Preferences
}

// NewMemoryStore returns a Store holding def until the first Save.
func NewMemoryStore(def Preferences) Store {
	return &memory{p: def}
}

func (m *memory) Load(ctx context.Context) (Preferences, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.p, nil
}

func (m *memory) Save(ctx context.Context, p Preferences) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.p = p
	return nil
}

func (m *memory) Close() error { return nil }
