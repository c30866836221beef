// Package market provides fluent builders for escrow record and trading
// transactions.
package market

import (
	"github.com/slopestore/slopestored/internal/core/pda"
	"github.com/slopestore/slopestored/internal/core/tx"
	"github.com/slopestore/slopestored/internal/core/types"
	jtx "github.com/slopestore/slopestored/internal/testing"
)

// RecordCreateBuilder builds RecordCreate transactions.
type RecordCreateBuilder struct {
	env       *jtx.TestEnv
	account   *jtx.Account
	mint      types.Address
	storeName string
	bumps     *tx.RecordBumps
}

// RecordCreate starts a RecordCreate for the mint under the named store.
// Bumps are derived under the environment's program unless overridden.
func RecordCreate(env *jtx.TestEnv, account *jtx.Account, mint types.Address, storeName string) *RecordCreateBuilder {
	return &RecordCreateBuilder{env: env, account: account, mint: mint, storeName: storeName}
}

// Bumps overrides the derived bumps, for exercising address mismatch paths.
func (b *RecordCreateBuilder) Bumps(record, custody uint8) *RecordCreateBuilder {
	b.bumps = &tx.RecordBumps{Record: record, Custody: custody}
	return b
}

// Build constructs the RecordCreate transaction.
func (b *RecordCreateBuilder) Build() tx.Transaction {
	bumps := tx.RecordBumps{}
	if b.bumps != nil {
		bumps = *b.bumps
	} else {
		if _, recordBump, err := pda.Record(b.env.ProgramID(), b.mint); err == nil {
			bumps.Record = recordBump
		}
		if _, custodyBump, err := pda.Custody(b.env.ProgramID(), b.mint); err == nil {
			bumps.Custody = custodyBump
		}
	}
	return tx.NewRecordCreate(b.account.Address, b.mint, b.storeName, bumps)
}

// SellBuilder builds NFTSell transactions.
type SellBuilder struct {
	seller    *jtx.Account
	mint      types.Address
	storeName string
	price     uint64
	rate      uint8
}

// Sell starts an NFTSell listing the mint at price with the given fee rate.
func Sell(seller *jtx.Account, mint types.Address, storeName string, price uint64, rate uint8) *SellBuilder {
	return &SellBuilder{
		seller:    seller,
		mint:      mint,
		storeName: storeName,
		price:     price,
		rate:      rate,
	}
}

// Build constructs the NFTSell transaction.
func (b *SellBuilder) Build() tx.Transaction {
	return tx.NewNFTSell(b.seller.Address, b.mint, b.storeName, b.price, b.rate)
}

// BuyBuilder builds NFTBuy transactions.
type BuyBuilder struct {
	buyer     *jtx.Account
	mint      types.Address
	storeName string
}

// Buy starts an NFTBuy for the mint through the named store.
func Buy(buyer *jtx.Account, mint types.Address, storeName string) *BuyBuilder {
	return &BuyBuilder{buyer: buyer, mint: mint, storeName: storeName}
}

// Build constructs the NFTBuy transaction.
func (b *BuyBuilder) Build() tx.Transaction {
	return tx.NewNFTBuy(b.buyer.Address, b.mint, b.storeName)
}

// RedeemBuilder builds NFTRedeem transactions.
type RedeemBuilder struct {
	account *jtx.Account
	mint    types.Address
}

// Redeem starts an NFTRedeem for the mint.
func Redeem(account *jtx.Account, mint types.Address) *RedeemBuilder {
	return &RedeemBuilder{account: account, mint: mint}
}

// Build constructs the NFTRedeem transaction.
func (b *RedeemBuilder) Build() tx.Transaction {
	return tx.NewNFTRedeem(b.account.Address, b.mint)
}
