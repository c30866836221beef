// Package tx defines the ledger program's transactions and the engine
// that applies them atomically against ledger state.
package tx

import (
	"errors"
	"fmt"

	"github.com/slopestore/slopestored/internal/core/types"
)

// Type identifies a transaction type.
type Type uint16

const (
	TypeStoreCreate Type = iota + 1
	TypeStoreFreeze
	TypeStoreThaw
	TypeRecordCreate
	TypeNFTSell
	TypeNFTBuy
	TypeNFTRedeem
)

var typeNames = map[Type]string{
	TypeStoreCreate:  "StoreCreate",
	TypeStoreFreeze:  "StoreFreeze",
	TypeStoreThaw:    "StoreThaw",
	TypeRecordCreate: "RecordCreate",
	TypeNFTSell:      "NFTSell",
	TypeNFTBuy:       "NFTBuy",
	TypeNFTRedeem:    "NFTRedeem",
}

// Name returns the canonical name of the transaction type.
func (t Type) Name() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("Unknown(%d)", uint16(t))
}

// TypeFromName resolves a transaction type by its canonical name.
func TypeFromName(name string) (Type, bool) {
	for t, n := range typeNames {
		if n == name {
			return t, true
		}
	}
	return 0, false
}

// Transaction is the interface implemented by all transaction types.
type Transaction interface {
	// TxType returns the transaction type.
	TxType() Type

	// Common returns the fields shared by all transactions.
	Common() *BaseTx

	// Validate performs static validation, independent of ledger state.
	Validate() error
}

// BaseTx holds the fields common to every transaction.
type BaseTx struct {
	// TransactionType is the canonical type name (set by constructors,
	// used by the JSON registry).
	TransactionType string `json:"TransactionType"`

	// Account is the identity authorizing the transaction.
	Account types.Address `json:"Account"`
}

// NewBaseTx creates the common transaction fields.
func NewBaseTx(t Type, account types.Address) *BaseTx {
	return &BaseTx{
		TransactionType: t.Name(),
		Account:         account,
	}
}

// Common returns the base transaction fields.
func (b *BaseTx) Common() *BaseTx {
	return b
}

// Validate validates the common fields.
func (b *BaseTx) Validate() error {
	if b.Account.IsZero() {
		return errors.New("temBAD_SRC_ACCOUNT: Account is required")
	}
	return nil
}
