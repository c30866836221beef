package store_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/slopestore/slopestored/internal/core/pda"
	jtx "github.com/slopestore/slopestored/internal/testing"
	"github.com/slopestore/slopestored/internal/testing/market"
	"github.com/slopestore/slopestored/internal/testing/store"
)

func TestStoreCreate(t *testing.T) {
	env := jtx.NewTestEnv(t)
	alice := jtx.NewAccount("alice")
	env.Fund(alice)

	result := env.Submit(store.Create(env, alice, "shop").Build())
	jtx.RequireTxSuccess(t, result)

	entry := env.StoreEntry("shop")
	require.NotNil(t, entry)
	require.Equal(t, "shop", entry.Name)
	require.Equal(t, alice.Address, entry.Owner)
	require.False(t, entry.Frozen)
}

func TestStoreCreate_Duplicate(t *testing.T) {
	env := jtx.NewTestEnv(t)
	alice := jtx.NewAccount("alice")
	bob := jtx.NewAccount("bob")
	env.Fund(alice, bob)

	jtx.RequireTxSuccess(t, env.Submit(store.Create(env, alice, "shop").Build()))

	// The name is the uniqueness key, whoever retries.
	jtx.RequireTxResult(t, env.Submit(store.Create(env, alice, "shop").Build()), "tefALREADY")
	jtx.RequireTxResult(t, env.Submit(store.Create(env, bob, "shop").Build()), "tefALREADY")

	// First registrant keeps ownership.
	require.Equal(t, alice.Address, env.StoreEntry("shop").Owner)
}

func TestStoreCreate_BadBump(t *testing.T) {
	env := jtx.NewTestEnv(t)
	alice := jtx.NewAccount("alice")
	env.Fund(alice)

	_, canonical, err := pda.Store(env.ProgramID(), "shop")
	require.NoError(t, err)

	wrong := canonical - 1
	if canonical == 0 {
		wrong = 1
	}
	result := env.Submit(store.Create(env, alice, "shop").Bump(wrong).Build())
	jtx.RequireTxResult(t, result, "temADDRESS_MISMATCH")
	require.Nil(t, env.StoreEntry("shop"))
}

func TestStoreCreate_Malformed(t *testing.T) {
	env := jtx.NewTestEnv(t)
	alice := jtx.NewAccount("alice")
	env.Fund(alice)

	jtx.RequireTxResult(t, env.Submit(store.Create(env, alice, "").Build()), "temMALFORMED")
	jtx.RequireTxResult(t, env.Submit(store.Create(env, alice, "elevenchars").Build()), "temMALFORMED")

	// Exactly ten bytes is fine.
	jtx.RequireTxSuccess(t, env.Submit(store.Create(env, alice, "exactly_10").Build()))
}

func TestStoreFreezeThaw(t *testing.T) {
	env := jtx.NewTestEnv(t)
	alice := jtx.NewAccount("alice")
	bob := jtx.NewAccount("bob")
	env.Fund(alice, bob)

	jtx.RequireTxSuccess(t, env.Submit(store.Create(env, alice, "shop").Build()))

	// Only the owner may freeze.
	jtx.RequireTxResult(t, env.Submit(store.Freeze(bob, "shop").Build()), "tecNO_PERMISSION")

	jtx.RequireTxSuccess(t, env.Submit(store.Freeze(alice, "shop").Build()))
	require.True(t, env.StoreEntry("shop").Frozen)

	// Freezing twice is a hard failure.
	jtx.RequireTxResult(t, env.Submit(store.Freeze(alice, "shop").Build()), "tefALREADY")

	jtx.RequireTxResult(t, env.Submit(store.Thaw(bob, "shop").Build()), "tecNO_PERMISSION")
	jtx.RequireTxSuccess(t, env.Submit(store.Thaw(alice, "shop").Build()))
	require.False(t, env.StoreEntry("shop").Frozen)

	jtx.RequireTxResult(t, env.Submit(store.Thaw(alice, "shop").Build()), "tefALREADY")
}

func TestStoreFreeze_MissingStore(t *testing.T) {
	env := jtx.NewTestEnv(t)
	alice := jtx.NewAccount("alice")
	env.Fund(alice)

	jtx.RequireTxResult(t, env.Submit(store.Freeze(alice, "ghost").Build()), "tecNO_ENTRY")
	jtx.RequireTxResult(t, env.Submit(store.Thaw(alice, "ghost").Build()), "tecNO_ENTRY")
}

func TestFrozenStoreRejectsNewBusiness(t *testing.T) {
	env := jtx.NewTestEnv(t)
	alice := jtx.NewAccount("alice")
	seller := jtx.NewAccount("seller")
	env.Fund(alice, seller)

	jtx.RequireTxSuccess(t, env.Submit(store.Create(env, alice, "shop").Build()))

	listed := env.MintNFT(seller, "listed")
	jtx.RequireTxSuccess(t, env.Submit(market.RecordCreate(env, seller, listed, "shop").Build()))

	jtx.RequireTxSuccess(t, env.Submit(store.Freeze(alice, "shop").Build()))

	// New records and new listings are rejected while frozen.
	fresh := env.MintNFT(seller, "fresh")
	jtx.RequireTxResult(t, env.Submit(market.RecordCreate(env, seller, fresh, "shop").Build()), "tecFROZEN")
	jtx.RequireTxResult(t, env.Submit(market.Sell(seller, listed, "shop", 1000, 5).Build()), "tecFROZEN")

	// Thawing reopens the store.
	jtx.RequireTxSuccess(t, env.Submit(store.Thaw(alice, "shop").Build()))
	jtx.RequireTxSuccess(t, env.Submit(market.Sell(seller, listed, "shop", 1000, 5).Build()))
}

func TestFrozenStoreStillSettlesExistingListings(t *testing.T) {
	env := jtx.NewTestEnv(t)
	alice := jtx.NewAccount("alice")
	seller := jtx.NewAccount("seller")
	buyer := jtx.NewAccount("buyer")
	env.Fund(alice, seller, buyer)

	jtx.RequireTxSuccess(t, env.Submit(store.Create(env, alice, "shop").Build()))
	mint := env.MintNFT(seller, "artwork")
	jtx.RequireTxSuccess(t, env.Submit(market.RecordCreate(env, seller, mint, "shop").Build()))
	jtx.RequireTxSuccess(t, env.Submit(market.Sell(seller, mint, "shop", 1000, 5).Build()))

	jtx.RequireTxSuccess(t, env.Submit(store.Freeze(alice, "shop").Build()))

	// An already-live listing can still be bought through a frozen store.
	jtx.RequireTxSuccess(t, env.Submit(market.Buy(buyer, mint, "shop").Build()))
	require.Equal(t, uint64(1), env.HoldingBalance(buyer, mint))
}
