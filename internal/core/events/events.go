// Package events publishes typed notifications for ledger state
// transitions to in-process observers.
package events

import (
	"github.com/slopestore/slopestored/internal/core/types"
)

// Event labels, one per state transition.
const (
	LabelSell   = "sell_nft"
	LabelBuy    = "buy_nft"
	LabelRedeem = "redeem_nft"
)

// LaunchEvent is emitted when an asset is listed for sale.
type LaunchEvent struct {
	Seller types.Address `json:"seller"`
	Mint   types.Address `json:"mint"`
	Price  uint64        `json:"price"`
	Rate   uint8         `json:"rate"`
	Label  string        `json:"label"`
}

// SoldEvent is emitted when a listing is bought.
type SoldEvent struct {
	Seller    types.Address `json:"seller"`
	Mint      types.Address `json:"mint"`
	Customer  types.Address `json:"customer"`
	Index     uint32        `json:"index"`
	Price     uint64        `json:"price"`
	Rate      uint8         `json:"rate"`
	CreatedAt int64         `json:"created_at"`
	Label     string        `json:"label"`
}

// RedeemEvent is emitted when a seller withdraws an unsold listing.
type RedeemEvent struct {
	Redeem types.Address `json:"redeem"`
	Mint   types.Address `json:"mint"`
	Label  string        `json:"label"`
}

// Envelope wraps an event with its label and the ledger slot at emission.
type Envelope struct {
	Label string `json:"label"`
	Slot  uint64 `json:"slot"`
	Event any    `json:"event"`
}
