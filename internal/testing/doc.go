// Package testing provides a test harness for marketplace transaction
// testing. It wires an in-memory ledger view to a transaction engine with a
// manual clock, and offers helpers for creating accounts, funding them,
// minting assets, submitting transactions and inspecting ledger entries.
//
// Typical usage:
//
//	env := jtx.NewTestEnv(t)
//	alice := jtx.NewAccount("alice")
//	env.FundAmount(alice, 1_000_000)
//	mint := env.MintNFT(alice, "artwork")
//	result := env.Submit(market.Sell(alice, mint, "shop", 500, 10).Build())
//	jtx.RequireTxSuccess(t, result)
package testing
