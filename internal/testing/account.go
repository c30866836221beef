package testing

import (
	"github.com/slopestore/slopestored/internal/core/types"
	"github.com/slopestore/slopestored/internal/crypto"
)

// Account represents a test identity.
type Account struct {
	// Name is a human-readable identifier for the account (used for debugging).
	Name string

	// Address is the account's 256-bit ledger identity.
	Address types.Address
}

// NewAccount creates a test account with a deterministic address derived
// from the name. The same name always produces the same account, making
// tests reproducible.
func NewAccount(name string) *Account {
	addr := crypto.Sha512Half([]byte("test_account"), []byte(name))
	return &Account{
		Name:    name,
		Address: types.Address(addr),
	}
}

// NewMint returns a deterministic asset identity derived from the name.
func NewMint(name string) types.Address {
	return types.Address(crypto.Sha512Half([]byte("test_mint"), []byte(name)))
}
