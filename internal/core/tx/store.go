package tx

import (
	"errors"
	"fmt"

	"github.com/slopestore/slopestored/internal/core/state"
	"github.com/slopestore/slopestored/internal/core/types"
)

// StoreCreate registers a named store. The caller becomes the store owner
// and receives the platform fee on every sale through the store.
type StoreCreate struct {
	BaseTx

	// Name is the store name, the store's uniqueness key (required,
	// at most 10 bytes).
	Name string `json:"Name"`

	// Bump is the caller-derived bump for the store address. The engine
	// rejects the transaction if it does not match the canonical bump.
	Bump uint8 `json:"Bump"`
}

// NewStoreCreate creates a new StoreCreate transaction.
func NewStoreCreate(account types.Address, name string, bump uint8) *StoreCreate {
	return &StoreCreate{
		BaseTx: *NewBaseTx(TypeStoreCreate, account),
		Name:   name,
		Bump:   bump,
	}
}

// TxType returns the transaction type.
func (s *StoreCreate) TxType() Type { return TypeStoreCreate }

// Validate validates the StoreCreate transaction.
func (s *StoreCreate) Validate() error {
	if err := s.BaseTx.Validate(); err != nil {
		return err
	}
	if s.Name == "" {
		return errors.New("temMALFORMED: store name is required")
	}
	if len(s.Name) > state.MaxStoreNameLen {
		return fmt.Errorf("temMALFORMED: store name exceeds %d bytes", state.MaxStoreNameLen)
	}
	return nil
}

// StoreFreeze suspends a store. A frozen store rejects new records and
// new listings; existing listings can still be bought or redeemed.
type StoreFreeze struct {
	BaseTx

	// Name is the store to freeze (required). Only the owner may freeze.
	Name string `json:"Name"`
}

// NewStoreFreeze creates a new StoreFreeze transaction.
func NewStoreFreeze(account types.Address, name string) *StoreFreeze {
	return &StoreFreeze{
		BaseTx: *NewBaseTx(TypeStoreFreeze, account),
		Name:   name,
	}
}

// TxType returns the transaction type.
func (s *StoreFreeze) TxType() Type { return TypeStoreFreeze }

// Validate validates the StoreFreeze transaction.
func (s *StoreFreeze) Validate() error {
	if err := s.BaseTx.Validate(); err != nil {
		return err
	}
	if s.Name == "" {
		return errors.New("temMALFORMED: store name is required")
	}
	return nil
}

// StoreThaw lifts a freeze. Only the owner may thaw.
type StoreThaw struct {
	BaseTx

	// Name is the store to thaw (required).
	Name string `json:"Name"`
}

// NewStoreThaw creates a new StoreThaw transaction.
func NewStoreThaw(account types.Address, name string) *StoreThaw {
	return &StoreThaw{
		BaseTx: *NewBaseTx(TypeStoreThaw, account),
		Name:   name,
	}
}

// TxType returns the transaction type.
func (s *StoreThaw) TxType() Type { return TypeStoreThaw }

// Validate validates the StoreThaw transaction.
func (s *StoreThaw) Validate() error {
	if err := s.BaseTx.Validate(); err != nil {
		return err
	}
	if s.Name == "" {
		return errors.New("temMALFORMED: store name is required")
	}
	return nil
}
