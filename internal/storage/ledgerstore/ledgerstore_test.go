package ledgerstore_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/slopestore/slopestored/internal/core/pda"
	"github.com/slopestore/slopestored/internal/core/state"
	"github.com/slopestore/slopestored/internal/core/types"
	"github.com/slopestore/slopestored/internal/storage/keyValueDb/bbolt"
	"github.com/slopestore/slopestored/internal/storage/ledgerstore"
)

func newStore(t *testing.T) *ledgerstore.Store {
	t.Helper()
	mgr := bbolt.NewBBoltManager(t.TempDir())
	db, err := mgr.OpenDB("ledger")
	require.NoError(t, err)
	t.Cleanup(func() { mgr.Close() })

	store, err := ledgerstore.New(db, 0)
	require.NoError(t, err)
	return store
}

func keyletForTest(b byte) pda.Keylet {
	var addr types.Address
	addr[0] = b
	return pda.Keylet{Type: pda.TypeStore, Key: addr}
}

func TestInsertReadUpdateErase(t *testing.T) {
	store := newStore(t)
	k := keyletForTest(1)

	data, err := store.Read(k)
	require.NoError(t, err)
	require.Nil(t, data)

	require.NoError(t, store.Insert(k, []byte("one")))
	require.ErrorIs(t, store.Insert(k, []byte("dup")), ledgerstore.ErrExists)

	data, err = store.Read(k)
	require.NoError(t, err)
	require.Equal(t, []byte("one"), data)

	require.NoError(t, store.Update(k, []byte("two")))
	data, err = store.Read(k)
	require.NoError(t, err)
	require.Equal(t, []byte("two"), data)

	require.NoError(t, store.Erase(k))
	exists, err := store.Exists(k)
	require.NoError(t, err)
	require.False(t, exists)

	require.ErrorIs(t, store.Update(k, []byte("x")), ledgerstore.ErrNotFound)
	require.ErrorIs(t, store.Erase(k), ledgerstore.ErrNotFound)
}

func TestFlushPersists(t *testing.T) {
	mgr := bbolt.NewBBoltManager(t.TempDir())
	db, err := mgr.OpenDB("ledger")
	require.NoError(t, err)
	t.Cleanup(func() { mgr.Close() })

	store, err := ledgerstore.New(db, 0)
	require.NoError(t, err)

	k := keyletForTest(7)
	require.NoError(t, store.Insert(k, []byte("durable")))
	require.Equal(t, 1, store.Pending())
	require.NoError(t, store.Flush(context.Background()))
	require.Equal(t, 0, store.Pending())

	// A second store over the same backend sees the flushed entry.
	store2, err := ledgerstore.New(db, 0)
	require.NoError(t, err)
	data, err := store2.Read(k)
	require.NoError(t, err)
	require.Equal(t, []byte("durable"), data)
}

func TestUnflushedWritesStayLocal(t *testing.T) {
	mgr := bbolt.NewBBoltManager(t.TempDir())
	db, err := mgr.OpenDB("ledger")
	require.NoError(t, err)
	t.Cleanup(func() { mgr.Close() })

	store, err := ledgerstore.New(db, 0)
	require.NoError(t, err)

	k := keyletForTest(9)
	require.NoError(t, store.Insert(k, []byte("buffered")))

	// Visible through the writing store, absent from the backend.
	data, err := store.Read(k)
	require.NoError(t, err)
	require.Equal(t, []byte("buffered"), data)

	fresh, err := ledgerstore.New(db, 0)
	require.NoError(t, err)
	data, err = fresh.Read(k)
	require.NoError(t, err)
	require.Nil(t, data)
}

func TestForEachSeesOverlay(t *testing.T) {
	store := newStore(t)

	a, b := keyletForTest(1), keyletForTest(2)
	require.NoError(t, store.Insert(a, []byte("a")))
	require.NoError(t, store.Flush(context.Background()))
	require.NoError(t, store.Insert(b, []byte("b")))
	require.NoError(t, store.Erase(a))

	seen := map[types.Address][]byte{}
	require.NoError(t, store.ForEach(func(key types.Address, data []byte) bool {
		seen[key] = append([]byte(nil), data...)
		return true
	}))
	require.Len(t, seen, 1)
	require.Equal(t, []byte("b"), seen[b.Key])
}

func TestTypedAccessorsOverStore(t *testing.T) {
	store := newStore(t)

	mint := types.MustParseAddress(
		"1111111111111111111111111111111111111111111111111111111111111111")
	recordK, bump, err := pda.Record(pda.DefaultProgramID, mint)
	require.NoError(t, err)

	require.NoError(t, state.InsertRecord(store, recordK, &state.Record{
		Mint: mint,
		Bump: bump,
	}))
	require.NoError(t, store.Flush(context.Background()))

	record, err := state.ReadRecord(store, recordK)
	require.NoError(t, err)
	require.Equal(t, mint, record.Mint)
	require.Equal(t, bump, record.Bump)
}
