package state

import (
	"fmt"

	"github.com/slopestore/slopestored/internal/core/pda"
	"github.com/slopestore/slopestored/internal/core/types"
)

// Action represents the type of modification to a ledger entry.
type Action int

const (
	// ActionCache means the entry was read but not modified.
	ActionCache Action = iota
	// ActionInsert means a new entry was created.
	ActionInsert
	// ActionModify means an existing entry was modified.
	ActionModify
	// ActionErase means an entry was deleted.
	ActionErase
)

// trackedEntry is a ledger entry being tracked for changes.
type trackedEntry struct {
	action  Action
	typ     pda.EntryType
	current []byte
}

// ApplyStateTable buffers all reads and writes of a single transaction
// against a base view. Nothing reaches the base until Commit; a failed
// transaction simply drops the table, so partial application is
// impossible.
type ApplyStateTable struct {
	base  View
	items map[types.Address]*trackedEntry
}

// NewApplyStateTable creates a sandbox over the given base view.
func NewApplyStateTable(base View) *ApplyStateTable {
	return &ApplyStateTable{
		base:  base,
		items: make(map[types.Address]*trackedEntry),
	}
}

func (t *ApplyStateTable) Read(k pda.Keylet) ([]byte, error) {
	if entry, ok := t.items[k.Key]; ok {
		if entry.action == ActionErase {
			return nil, nil
		}
		return entry.current, nil
	}
	data, err := t.base.Read(k)
	if err != nil {
		return nil, err
	}
	if data != nil {
		t.items[k.Key] = &trackedEntry{action: ActionCache, typ: k.Type, current: data}
	}
	return data, nil
}

func (t *ApplyStateTable) Exists(k pda.Keylet) (bool, error) {
	if entry, ok := t.items[k.Key]; ok {
		return entry.action != ActionErase, nil
	}
	return t.base.Exists(k)
}

func (t *ApplyStateTable) Insert(k pda.Keylet, data []byte) error {
	if entry, ok := t.items[k.Key]; ok {
		if entry.action != ActionErase {
			return fmt.Errorf("state: entry %s already exists", k.Key)
		}
		entry.action = ActionModify
		entry.current = data
		return nil
	}
	exists, err := t.base.Exists(k)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("state: entry %s already exists", k.Key)
	}
	t.items[k.Key] = &trackedEntry{action: ActionInsert, typ: k.Type, current: data}
	return nil
}

func (t *ApplyStateTable) Update(k pda.Keylet, data []byte) error {
	if entry, ok := t.items[k.Key]; ok {
		switch entry.action {
		case ActionErase:
			return fmt.Errorf("state: entry %s not found", k.Key)
		case ActionCache:
			entry.action = ActionModify
		}
		entry.current = data
		return nil
	}
	exists, err := t.base.Exists(k)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("state: entry %s not found", k.Key)
	}
	t.items[k.Key] = &trackedEntry{action: ActionModify, typ: k.Type, current: data}
	return nil
}

func (t *ApplyStateTable) Erase(k pda.Keylet) error {
	if entry, ok := t.items[k.Key]; ok {
		if entry.action == ActionErase {
			return fmt.Errorf("state: entry %s not found", k.Key)
		}
		if entry.action == ActionInsert {
			delete(t.items, k.Key)
			return nil
		}
		entry.action = ActionErase
		entry.current = nil
		return nil
	}
	exists, err := t.base.Exists(k)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("state: entry %s not found", k.Key)
	}
	t.items[k.Key] = &trackedEntry{action: ActionErase, typ: k.Type}
	return nil
}

func (t *ApplyStateTable) ForEach(fn func(key types.Address, data []byte) bool) error {
	// Sandboxed iteration: buffered state shadows the base.
	seen := make(map[types.Address]bool, len(t.items))
	for key, entry := range t.items {
		seen[key] = true
		if entry.action == ActionErase {
			continue
		}
		if !fn(key, entry.current) {
			return nil
		}
	}
	return t.base.ForEach(func(key types.Address, data []byte) bool {
		if seen[key] {
			return true
		}
		return fn(key, data)
	})
}

// Commit pushes every buffered change to the base view. Entries that were
// only read are skipped.
func (t *ApplyStateTable) Commit() error {
	for key, entry := range t.items {
		k := pda.Keylet{Type: entry.typ, Key: key}
		var err error
		switch entry.action {
		case ActionCache:
			continue
		case ActionInsert:
			err = t.base.Insert(k, entry.current)
		case ActionModify:
			err = t.base.Update(k, entry.current)
		case ActionErase:
			err = t.base.Erase(k)
		}
		if err != nil {
			return fmt.Errorf("state: commit %s: %w", key, err)
		}
	}
	t.items = make(map[types.Address]*trackedEntry)
	return nil
}

// Discard drops all buffered changes without touching the base.
func (t *ApplyStateTable) Discard() {
	t.items = make(map[types.Address]*trackedEntry)
}
