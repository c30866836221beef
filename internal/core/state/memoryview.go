package state

import (
	"fmt"
	"sync"

	"github.com/slopestore/slopestored/internal/core/pda"
	"github.com/slopestore/slopestored/internal/core/types"
)

// MemoryView is an in-memory base View. It backs the test environment and
// standalone mode; the daemon uses the durable ledgerstore instead.
type MemoryView struct {
	mu      sync.RWMutex
	entries map[types.Address][]byte
}

// NewMemoryView returns an empty in-memory view.
func NewMemoryView() *MemoryView {
	return &MemoryView{entries: make(map[types.Address][]byte)}
}

func (m *MemoryView) Read(k pda.Keylet) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.entries[k.Key]
	if !ok {
		return nil, nil
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

func (m *MemoryView) Exists(k pda.Keylet) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.entries[k.Key]
	return ok, nil
}

func (m *MemoryView) Insert(k pda.Keylet, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.entries[k.Key]; ok {
		return fmt.Errorf("state: entry %s already exists", k.Key)
	}
	m.entries[k.Key] = append([]byte(nil), data...)
	return nil
}

func (m *MemoryView) Update(k pda.Keylet, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.entries[k.Key]; !ok {
		return fmt.Errorf("state: entry %s not found", k.Key)
	}
	m.entries[k.Key] = append([]byte(nil), data...)
	return nil
}

func (m *MemoryView) Erase(k pda.Keylet) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.entries[k.Key]; !ok {
		return fmt.Errorf("state: entry %s not found", k.Key)
	}
	delete(m.entries, k.Key)
	return nil
}

func (m *MemoryView) ForEach(fn func(key types.Address, data []byte) bool) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for key, data := range m.entries {
		if !fn(key, data) {
			return nil
		}
	}
	return nil
}
