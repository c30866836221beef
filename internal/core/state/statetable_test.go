package state

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/slopestore/slopestored/internal/core/pda"
	"github.com/slopestore/slopestored/internal/core/types"
)

func addr(b byte) types.Address {
	var a types.Address
	a[0] = b
	return a
}

func keylet(b byte) pda.Keylet {
	return pda.Keylet{Type: pda.TypeAccountRoot, Key: addr(b)}
}

func TestCodec_RoundTrip(t *testing.T) {
	record := &Record{
		Mint:        addr(1),
		Initializer: addr(2),
		Seller:      addr(3),
		Price:       10_000_000_000,
		Rate:        10,
		OnSale:      true,
		SaleCount:   2,
		Volume:      20_000_000_000,
		Bump:        254,
		CustodyBump: 251,
	}
	data, err := Encode(KindRecord, record)
	require.NoError(t, err)

	var decoded Record
	require.NoError(t, Decode(KindRecord, data, &decoded))
	require.Equal(t, *record, decoded)

	kind, err := KindOf(data)
	require.NoError(t, err)
	require.Equal(t, KindRecord, kind)
}

func TestCodec_WrongKind(t *testing.T) {
	data, err := Encode(KindStore, &Store{Name: "slope", Owner: addr(1)})
	require.NoError(t, err)

	var record Record
	require.ErrorIs(t, Decode(KindRecord, data, &record), ErrWrongKind)

	require.ErrorIs(t, Decode(KindRecord, nil, &record), ErrEmptyEntry)
}

func TestStateTable_CommitPushesChanges(t *testing.T) {
	base := NewMemoryView()
	table := NewApplyStateTable(base)

	require.NoError(t, table.Insert(keylet(1), []byte("one")))
	require.NoError(t, table.Insert(keylet(2), []byte("two")))
	require.NoError(t, table.Update(keylet(1), []byte("one'")))

	// Nothing visible in the base before commit.
	exists, err := base.Exists(keylet(1))
	require.NoError(t, err)
	require.False(t, exists)

	require.NoError(t, table.Commit())

	data, err := base.Read(keylet(1))
	require.NoError(t, err)
	require.Equal(t, []byte("one'"), data)
	data, err = base.Read(keylet(2))
	require.NoError(t, err)
	require.Equal(t, []byte("two"), data)
}

func TestStateTable_DiscardLeavesBaseUntouched(t *testing.T) {
	base := NewMemoryView()
	require.NoError(t, base.Insert(keylet(1), []byte("orig")))

	table := NewApplyStateTable(base)
	require.NoError(t, table.Update(keylet(1), []byte("mutated")))
	require.NoError(t, table.Insert(keylet(2), []byte("new")))
	require.NoError(t, table.Erase(keylet(1)))
	table.Discard()

	data, err := base.Read(keylet(1))
	require.NoError(t, err)
	require.Equal(t, []byte("orig"), data)
	exists, err := base.Exists(keylet(2))
	require.NoError(t, err)
	require.False(t, exists)
}

func TestStateTable_InsertShadowing(t *testing.T) {
	base := NewMemoryView()
	require.NoError(t, base.Insert(keylet(1), []byte("orig")))

	table := NewApplyStateTable(base)

	// Insert over an existing base entry fails.
	require.Error(t, table.Insert(keylet(1), []byte("dup")))

	// Erase then re-insert becomes a modify.
	require.NoError(t, table.Erase(keylet(1)))
	data, err := table.Read(keylet(1))
	require.NoError(t, err)
	require.Nil(t, data)
	require.NoError(t, table.Insert(keylet(1), []byte("again")))
	require.NoError(t, table.Commit())

	data, err = base.Read(keylet(1))
	require.NoError(t, err)
	require.Equal(t, []byte("again"), data)
}

func TestStateTable_InsertThenEraseIsNoop(t *testing.T) {
	base := NewMemoryView()
	table := NewApplyStateTable(base)

	require.NoError(t, table.Insert(keylet(7), []byte("temp")))
	require.NoError(t, table.Erase(keylet(7)))
	require.NoError(t, table.Commit())

	exists, err := base.Exists(keylet(7))
	require.NoError(t, err)
	require.False(t, exists)
}

func TestTypedAccessors(t *testing.T) {
	view := NewMemoryView()

	acct := &AccountRoot{Account: addr(9), Balance: 500}
	require.NoError(t, PutAccountRoot(view, acct))
	got, err := ReadAccountRoot(view, addr(9))
	require.NoError(t, err)
	require.Equal(t, uint64(500), got.Balance)

	// Put again updates in place.
	acct.Balance = 750
	require.NoError(t, PutAccountRoot(view, acct))
	got, err = ReadAccountRoot(view, addr(9))
	require.NoError(t, err)
	require.Equal(t, uint64(750), got.Balance)

	// Missing entries read as nil without error.
	missing, err := ReadAccountRoot(view, addr(42))
	require.NoError(t, err)
	require.Nil(t, missing)
}
