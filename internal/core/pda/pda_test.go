package pda

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/slopestore/slopestored/internal/core/types"
)

func TestDerive_Deterministic(t *testing.T) {
	program := DefaultProgramID

	addr1, bump1, err := Derive(program, []byte("slope"))
	require.NoError(t, err)
	addr2, bump2, err := Derive(program, []byte("slope"))
	require.NoError(t, err)

	require.Equal(t, addr1, addr2)
	require.Equal(t, bump1, bump2)
	require.False(t, addr1.IsZero())
}

func TestDerive_DistinctSeeds(t *testing.T) {
	program := DefaultProgramID

	a, _, err := Derive(program, []byte("alpha"))
	require.NoError(t, err)
	b, _, err := Derive(program, []byte("beta"))
	require.NoError(t, err)
	require.NotEqual(t, a, b)

	// Seed boundaries matter: ["ab","c"] and ["a","bc"] concatenate the
	// same but must still go through the same hash, so equal inputs in a
	// different program namespace diverge instead.
	other := types.MustParseAddress(
		"00000000000000000000000000000000000000000000000000000000000000ff")
	c, _, err := Derive(other, []byte("alpha"))
	require.NoError(t, err)
	require.NotEqual(t, a, c)
}

func TestDerive_OffCurve(t *testing.T) {
	program := DefaultProgramID

	addr, bump, err := Derive(program, []byte("offcurve-check"))
	require.NoError(t, err)
	require.True(t, offCurve(addr))

	// Recomputing with the canonical bump succeeds and matches.
	again, err := DeriveWithBump(program, bump, []byte("offcurve-check"))
	require.NoError(t, err)
	require.Equal(t, addr, again)
}

func TestDeriveWithBump_RejectsOnCurve(t *testing.T) {
	program := DefaultProgramID

	// Scan a window of seeds until one has a skipped (on-curve) bump above
	// the canonical one, then verify DeriveWithBump rejects it. About half
	// of all candidates decode as curve points, so a small window is ample.
	for i := 0; i < 64; i++ {
		seed := []byte{byte(i), 'b', 'u', 'm', 'p'}
		_, bump, err := Derive(program, seed)
		require.NoError(t, err)
		if bump == 255 {
			continue
		}
		for probe := 255; probe > int(bump); probe-- {
			_, err := DeriveWithBump(program, uint8(probe), seed)
			require.ErrorIs(t, err, ErrOnCurve)
		}
		return
	}
	t.Fatal("no seed with a skipped bump found in window")
}

func TestTypedKeylets(t *testing.T) {
	program := DefaultProgramID
	mint := types.MustParseAddress(
		"1111111111111111111111111111111111111111111111111111111111111111")

	record, _, err := Record(program, mint)
	require.NoError(t, err)
	custody, _, err := Custody(program, mint)
	require.NoError(t, err)
	require.NotEqual(t, record.Key, custody.Key)
	require.Equal(t, TypeRecord, record.Type)
	require.Equal(t, TypeCustody, custody.Type)

	sold0, _, err := Sold(program, mint, 0)
	require.NoError(t, err)
	sold1, _, err := Sold(program, mint, 1)
	require.NoError(t, err)
	require.NotEqual(t, sold0.Key, sold1.Key)

	acct := Account(mint)
	require.Equal(t, mint, acct.Key)
	require.Equal(t, TypeAccountRoot, acct.Type)
}
