// Package store provides fluent builders for store registry transactions.
package store

import (
	"github.com/slopestore/slopestored/internal/core/pda"
	"github.com/slopestore/slopestored/internal/core/tx"
	jtx "github.com/slopestore/slopestored/internal/testing"
)

// CreateBuilder builds StoreCreate transactions.
type CreateBuilder struct {
	env   *jtx.TestEnv
	owner *jtx.Account
	name  string
	bump  *uint8
}

// Create starts a StoreCreate for the owner and store name. The bump is
// derived under the environment's program unless overridden with Bump.
func Create(env *jtx.TestEnv, owner *jtx.Account, name string) *CreateBuilder {
	return &CreateBuilder{env: env, owner: owner, name: name}
}

// Bump overrides the derived bump, for exercising address mismatch paths.
func (b *CreateBuilder) Bump(bump uint8) *CreateBuilder {
	b.bump = &bump
	return b
}

// Build constructs the StoreCreate transaction.
func (b *CreateBuilder) Build() tx.Transaction {
	bump := uint8(0)
	if b.bump != nil {
		bump = *b.bump
	} else if _, derived, err := pda.Store(b.env.ProgramID(), b.name); err == nil {
		bump = derived
	}
	return tx.NewStoreCreate(b.owner.Address, b.name, bump)
}

// FreezeBuilder builds StoreFreeze transactions.
type FreezeBuilder struct {
	account *jtx.Account
	name    string
}

// Freeze starts a StoreFreeze for the store name.
func Freeze(account *jtx.Account, name string) *FreezeBuilder {
	return &FreezeBuilder{account: account, name: name}
}

// Build constructs the StoreFreeze transaction.
func (b *FreezeBuilder) Build() tx.Transaction {
	return tx.NewStoreFreeze(b.account.Address, b.name)
}

// ThawBuilder builds StoreThaw transactions.
type ThawBuilder struct {
	account *jtx.Account
	name    string
}

// Thaw starts a StoreThaw for the store name.
func Thaw(account *jtx.Account, name string) *ThawBuilder {
	return &ThawBuilder{account: account, name: name}
}

// Build constructs the StoreThaw transaction.
func (b *ThawBuilder) Build() tx.Transaction {
	return tx.NewStoreThaw(b.account.Address, b.name)
}
