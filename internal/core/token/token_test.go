package token

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/slopestore/slopestored/internal/core/pda"
	"github.com/slopestore/slopestored/internal/core/state"
	"github.com/slopestore/slopestored/internal/core/types"
)

func addr(b byte) types.Address {
	var a types.Address
	a[0] = b
	return a
}

func tokenKeylet(b byte) pda.Keylet {
	return pda.Keylet{Type: pda.TypeCustody, Key: addr(b)}
}

func TestTransfer_AuthorityEnforced(t *testing.T) {
	view := state.NewMemoryView()
	mint := addr(0xaa)
	owner := addr(1)
	other := addr(2)

	src := tokenKeylet(10)
	dst := tokenKeylet(11)
	require.NoError(t, CreateAccount(view, src, mint, owner))
	require.NoError(t, CreateAccount(view, dst, mint, other))
	require.NoError(t, MintTo(view, src, 1))

	// Wrong authority cannot move the unit.
	err := Transfer(view, src, dst, other, 1)
	require.ErrorIs(t, err, ErrNotAuthorized)

	// The owner can.
	require.NoError(t, Transfer(view, src, dst, owner, 1))

	srcBal, err := Balance(view, src)
	require.NoError(t, err)
	require.Equal(t, uint64(0), srcBal)
	dstBal, err := Balance(view, dst)
	require.NoError(t, err)
	require.Equal(t, uint64(1), dstBal)
}

func TestTransfer_InsufficientBalance(t *testing.T) {
	view := state.NewMemoryView()
	mint := addr(0xaa)

	src := tokenKeylet(10)
	dst := tokenKeylet(11)
	require.NoError(t, CreateAccount(view, src, mint, addr(1)))
	require.NoError(t, CreateAccount(view, dst, mint, addr(2)))

	err := Transfer(view, src, dst, addr(1), 1)
	require.ErrorIs(t, err, ErrInsufficientBalance)
}

func TestTransfer_MintMismatch(t *testing.T) {
	view := state.NewMemoryView()

	src := tokenKeylet(10)
	dst := tokenKeylet(11)
	require.NoError(t, CreateAccount(view, src, addr(0xaa), addr(1)))
	require.NoError(t, CreateAccount(view, dst, addr(0xbb), addr(2)))
	require.NoError(t, MintTo(view, src, 1))

	err := Transfer(view, src, dst, addr(1), 1)
	require.ErrorIs(t, err, ErrMintMismatch)
}

func TestBalance_AbsentAccountIsZero(t *testing.T) {
	view := state.NewMemoryView()
	bal, err := Balance(view, tokenKeylet(99))
	require.NoError(t, err)
	require.Equal(t, uint64(0), bal)

	require.ErrorIs(t, MintTo(view, tokenKeylet(99), 1), ErrNoAccount)
}
