package session

import (
	"sync"

	"github.com/merchantdash/datagrid"
)

var _ datagrid.Preferences = (*MemoryPreferences)(nil)

// MemoryPreferences is an in-process datagrid.Preferences implementation.
type MemoryPreferences struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMemoryPreferences() *MemoryPreferences {
	return &MemoryPreferences{values: make(map[string]string)}
}

func (m *MemoryPreferences) Read(key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok
}

func (m *MemoryPreferences) Write(key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
}
