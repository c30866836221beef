// Package state defines the ledger entry types, their serialization, and
// the views through which the transaction engine reads and mutates them.
package state

import (
	"github.com/slopestore/slopestored/internal/core/types"
)

// Kind tags a serialized ledger entry with its concrete type.
type Kind uint8

const (
	KindAccountRoot Kind = iota + 1
	KindStore
	KindRecord
	KindToken
	KindSold
)

func (k Kind) String() string {
	switch k {
	case KindAccountRoot:
		return "AccountRoot"
	case KindStore:
		return "Store"
	case KindRecord:
		return "Record"
	case KindToken:
		return "Token"
	case KindSold:
		return "Sold"
	default:
		return "Unknown"
	}
}

// MaxStoreNameLen bounds store names (fixed-width name field on the wire).
const MaxStoreNameLen = 10

// AccountRoot holds an identity's native currency balance.
type AccountRoot struct {
	Account types.Address `codec:"account"`
	Balance uint64        `codec:"balance"`
}

// Store is the registry entry for a named store. Created once, never
// destroyed. Owner is the identity that registered the name and receives
// the platform fee on every sale.
type Store struct {
	Name   string        `codec:"name"`
	Owner  types.Address `codec:"owner"`
	Bump   uint8         `codec:"bump"`
	Frozen bool          `codec:"frozen"`
}

// Record is the per-mint escrow state machine. Created once per mint and
// reused across listing cycles; SaleCount advances on every completed buy.
//
// Seller, Price and Rate are retained after a sale as historical residue;
// OnSale alone decides whether the listing is live.
type Record struct {
	Mint        types.Address `codec:"mint"`
	Initializer types.Address `codec:"initializer"`
	Seller      types.Address `codec:"seller"`
	Price       uint64        `codec:"price"`
	Rate        uint8         `codec:"rate"`
	OnSale      bool          `codec:"on_sale"`
	SaleCount   uint32        `codec:"sale_count"`
	Volume      uint64        `codec:"volume"`
	Bump        uint8         `codec:"bump"`
	CustodyBump uint8         `codec:"custody_bump"`
}

// TokenAccount holds units of a mint for an owner. The custody account of
// a record is a TokenAccount whose owner is the record's derived address.
type TokenAccount struct {
	Mint    types.Address `codec:"mint"`
	Owner   types.Address `codec:"owner"`
	Balance uint64        `codec:"balance"`
}

// Sold is an immutable, append-only receipt for one completed sale,
// addressed by (mint, index). Later sales of the same mint use the next
// index; an existing Sold entry is never overwritten.
type Sold struct {
	Mint      types.Address `codec:"mint"`
	Index     uint32        `codec:"index"`
	Price     uint64        `codec:"price"`
	Rate      uint8         `codec:"rate"`
	Seller    types.Address `codec:"seller"`
	Customer  types.Address `codec:"customer"`
	CreatedAt int64         `codec:"created_at"`
}
