// Package ledgerstore persists ledger entries in a keyValueDb backend.
//
// Store implements state.View for the daemon. Writes buffer into a pending
// batch that Flush pushes to the backend in one atomic Batch call, so a
// transaction's entries never reach disk half-applied. Reads go through an
// LRU cache in front of the backend.
package ledgerstore

import (
	"context"
	"errors"
	"fmt"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/slopestore/slopestored/internal/core/pda"
	"github.com/slopestore/slopestored/internal/core/types"
	"github.com/slopestore/slopestored/internal/storage/keyValueDb"
)

// DefaultCacheSize is the LRU entry count used when the config gives none.
const DefaultCacheSize = 16384

var (
	// ErrExists is returned by Insert when the key is already present.
	ErrExists = errors.New("ledgerstore: entry already exists")

	// ErrNotFound is returned by Update and Erase on a missing key.
	ErrNotFound = errors.New("ledgerstore: entry not found")
)

// Store is a durable state.View over a key-value backend.
type Store struct {
	mu    sync.RWMutex
	db    keyValueDb.DB
	cache *lru.Cache[string, []byte]

	// overlay holds writes since the last Flush; a nil value marks an
	// erase. Reads consult the overlay before cache and backend.
	overlay map[string][]byte
	pending []keyValueDb.BatchOperation
}

// New creates a Store over the given backend. cacheSize <= 0 selects
// DefaultCacheSize.
func New(db keyValueDb.DB, cacheSize int) (*Store, error) {
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}
	cache, err := lru.New[string, []byte](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("ledgerstore: %w", err)
	}
	return &Store{
		db:      db,
		cache:   cache,
		overlay: make(map[string][]byte),
	}, nil
}

// dbKey is the backend key for a keylet: one type byte plus the 256-bit key.
func dbKey(k pda.Keylet) []byte {
	out := make([]byte, 1+types.AddressLen)
	out[0] = byte(k.Type)
	copy(out[1:], k.Key[:])
	return out
}

func (s *Store) read(key []byte) ([]byte, error) {
	ks := string(key)
	if val, ok := s.overlay[ks]; ok {
		if val == nil {
			return nil, nil
		}
		return append([]byte(nil), val...), nil
	}
	if val, ok := s.cache.Get(ks); ok {
		return append([]byte(nil), val...), nil
	}
	val, err := s.db.Read(context.Background(), key)
	if err != nil {
		if errors.Is(err, keyValueDb.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, err
	}
	s.cache.Add(ks, val)
	return append([]byte(nil), val...), nil
}

// Read returns the entry data, or (nil, nil) when absent.
func (s *Store) Read(k pda.Keylet) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.read(dbKey(k))
}

// Exists reports whether the entry is present.
func (s *Store) Exists(k pda.Keylet) (bool, error) {
	data, err := s.Read(k)
	return data != nil, err
}

// Insert buffers a new entry; fails when one already exists.
func (s *Store) Insert(k pda.Keylet, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := dbKey(k)
	existing, err := s.read(key)
	if err != nil {
		return err
	}
	if existing != nil {
		return fmt.Errorf("%w: %s", ErrExists, k.Key)
	}
	s.put(key, data)
	return nil
}

// Update buffers a rewrite of an existing entry.
func (s *Store) Update(k pda.Keylet, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := dbKey(k)
	existing, err := s.read(key)
	if err != nil {
		return err
	}
	if existing == nil {
		return fmt.Errorf("%w: %s", ErrNotFound, k.Key)
	}
	s.put(key, data)
	return nil
}

// Erase buffers removal of an existing entry.
func (s *Store) Erase(k pda.Keylet) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := dbKey(k)
	existing, err := s.read(key)
	if err != nil {
		return err
	}
	if existing == nil {
		return fmt.Errorf("%w: %s", ErrNotFound, k.Key)
	}
	s.overlay[string(key)] = nil
	s.pending = append(s.pending, keyValueDb.BatchOperation{
		Type: keyValueDb.BatchDelete,
		Key:  key,
	})
	return nil
}

func (s *Store) put(key, data []byte) {
	val := append([]byte(nil), data...)
	s.overlay[string(key)] = val
	s.pending = append(s.pending, keyValueDb.BatchOperation{
		Type:  keyValueDb.BatchPut,
		Key:   key,
		Value: val,
	})
}

// ForEach visits every entry, pending writes included.
func (s *Store) ForEach(fn func(key types.Address, data []byte) bool) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	visited := make(map[string]bool, len(s.overlay))

	it, err := s.db.Iterator(context.Background(), nil, nil)
	if err != nil {
		return err
	}
	defer it.Close()

	for it.Next() {
		key := it.Key()
		ks := string(key)
		data := it.Value()
		if val, ok := s.overlay[ks]; ok {
			visited[ks] = true
			if val == nil {
				continue
			}
			data = val
		}
		if len(key) != 1+types.AddressLen {
			continue
		}
		addr, err := types.AddressFromBytes(key[1:])
		if err != nil {
			continue
		}
		if !fn(addr, data) {
			return it.Error()
		}
	}
	if err := it.Error(); err != nil {
		return err
	}

	for ks, val := range s.overlay {
		if val == nil || visited[ks] {
			continue
		}
		key := []byte(ks)
		if len(key) != 1+types.AddressLen {
			continue
		}
		addr, err := types.AddressFromBytes(key[1:])
		if err != nil {
			continue
		}
		if !fn(addr, val) {
			return nil
		}
	}
	return nil
}

// Pending returns the number of buffered operations.
func (s *Store) Pending() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.pending)
}

// Flush pushes all buffered operations to the backend as one batch and
// promotes them into the read cache. A failed flush leaves the buffer
// intact for retry.
func (s *Store) Flush(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.pending) == 0 {
		return nil
	}
	if err := s.db.Batch(ctx, s.pending); err != nil {
		return fmt.Errorf("ledgerstore: flush: %w", err)
	}
	for ks, val := range s.overlay {
		if val == nil {
			s.cache.Remove(ks)
		} else {
			s.cache.Add(ks, val)
		}
	}
	s.overlay = make(map[string][]byte)
	s.pending = s.pending[:0]
	return nil
}
