// Package token is the custody adapter for the asset-transfer primitive.
//
// It moves units of a mint between token accounts through a state.View.
// Transfers out of an account require the account owner's authority; the
// custody account of an escrow record is owned by the record's derived
// address, so only the engine, acting as the record, can release escrowed
// units.
package token

import (
	"errors"

	"github.com/slopestore/slopestored/internal/core/pda"
	"github.com/slopestore/slopestored/internal/core/state"
	"github.com/slopestore/slopestored/internal/core/types"
)

var (
	// ErrNoAccount is returned when the source token account does not exist.
	ErrNoAccount = errors.New("token: account not found")

	// ErrNotAuthorized is returned when the authority does not own the
	// source account.
	ErrNotAuthorized = errors.New("token: authority does not own source account")

	// ErrInsufficientBalance is returned when the source balance cannot
	// cover the transfer amount.
	ErrInsufficientBalance = errors.New("token: insufficient balance")

	// ErrMintMismatch is returned when source and destination accounts
	// hold different mints.
	ErrMintMismatch = errors.New("token: mint mismatch")
)

// Balance returns the balance of a token account, or 0 if it is absent.
func Balance(v state.View, k pda.Keylet) (uint64, error) {
	tok, err := state.ReadToken(v, k)
	if err != nil {
		return 0, err
	}
	if tok == nil {
		return 0, nil
	}
	return tok.Balance, nil
}

// CreateAccount initializes an empty token account for a mint and owner.
// Fails if an account already exists at the keylet.
func CreateAccount(v state.View, k pda.Keylet, mint, owner types.Address) error {
	return state.InsertToken(v, k, &state.TokenAccount{Mint: mint, Owner: owner})
}

// MintTo credits freshly issued units to an existing token account.
func MintTo(v state.View, k pda.Keylet, amount uint64) error {
	tok, err := state.ReadToken(v, k)
	if err != nil {
		return err
	}
	if tok == nil {
		return ErrNoAccount
	}
	tok.Balance += amount
	return state.UpdateToken(v, k, tok)
}

// Transfer moves amount units from one token account to another. The
// authority must be the owner of the source account; both accounts must
// hold the same mint.
func Transfer(v state.View, from, to pda.Keylet, authority types.Address, amount uint64) error {
	src, err := state.ReadToken(v, from)
	if err != nil {
		return err
	}
	if src == nil {
		return ErrNoAccount
	}
	if src.Owner != authority {
		return ErrNotAuthorized
	}
	if src.Balance < amount {
		return ErrInsufficientBalance
	}
	dst, err := state.ReadToken(v, to)
	if err != nil {
		return err
	}
	if dst == nil {
		return ErrNoAccount
	}
	if src.Mint != dst.Mint {
		return ErrMintMismatch
	}

	src.Balance -= amount
	dst.Balance += amount
	if err := state.UpdateToken(v, from, src); err != nil {
		return err
	}
	return state.UpdateToken(v, to, dst)
}
