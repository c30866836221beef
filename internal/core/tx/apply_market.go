package tx

import (
	"math/bits"

	"github.com/slopestore/slopestored/internal/core/events"
	"github.com/slopestore/slopestored/internal/core/pda"
	"github.com/slopestore/slopestored/internal/core/state"
	"github.com/slopestore/slopestored/internal/core/token"
	"github.com/slopestore/slopestored/internal/core/types"
)

// splitPrice computes the store fee and seller share for a sale.
// storeFee = floor(price*rate/100); the two legs always sum to price.
// The 128-bit intermediate keeps price*rate from wrapping.
func splitPrice(price uint64, rate uint8) (storeFee, sellerShare uint64) {
	hi, lo := bits.Mul64(price, uint64(rate))
	storeFee, _ = bits.Div64(hi, lo, 100)
	return storeFee, price - storeFee
}

// credit adds amount to an identity's native balance, creating the account
// root on first use.
func credit(v state.View, addr types.Address, amount uint64) error {
	acct, err := state.ReadAccountRoot(v, addr)
	if err != nil {
		return err
	}
	if acct == nil {
		acct = &state.AccountRoot{Account: addr}
	}
	acct.Balance += amount
	return state.PutAccountRoot(v, acct)
}

// ensureHolding returns the keylet of the owner's token account for the
// mint, creating an empty account when none exists yet.
func ensureHolding(v state.View, owner, mint types.Address) (pda.Keylet, error) {
	k := pda.Holding(owner, mint)
	exists, err := v.Exists(k)
	if err != nil {
		return pda.Keylet{}, err
	}
	if !exists {
		if err := token.CreateAccount(v, k, mint, owner); err != nil {
			return pda.Keylet{}, err
		}
	}
	return k, nil
}

// applyNFTSell escrows one unit of the mint and marks the record on sale.
func (e *Engine) applyNFTSell(txn *NFTSell, ctx *applyCtx) (Result, error) {
	recordK, _, err := pda.Record(e.config.ProgramID, txn.Mint)
	if err != nil {
		return TefINTERNAL, err
	}
	record, err := state.ReadRecord(ctx.view, recordK)
	if err != nil {
		return TefINTERNAL, err
	}
	if record == nil {
		return TecNO_TARGET, nil
	}
	if record.OnSale {
		return TecON_SALE, nil
	}

	storeK, _, err := pda.Store(e.config.ProgramID, txn.StoreName)
	if err != nil {
		return TefINTERNAL, err
	}
	store, err := state.ReadStore(ctx.view, storeK)
	if err != nil {
		return TefINTERNAL, err
	}
	if store == nil {
		return TecNO_ENTRY, nil
	}
	if store.Frozen {
		return TecFROZEN, nil
	}

	holdingK := pda.Holding(txn.Account, txn.Mint)
	balance, err := token.Balance(ctx.view, holdingK)
	if err != nil {
		return TefINTERNAL, err
	}
	if balance < 1 {
		return TecUNFUNDED_ASSET, nil
	}

	custodyK, _, err := pda.Custody(e.config.ProgramID, txn.Mint)
	if err != nil {
		return TefINTERNAL, err
	}
	if err := token.Transfer(ctx.view, holdingK, custodyK, txn.Account, 1); err != nil {
		return TefINTERNAL, err
	}

	record.Seller = txn.Account
	record.Price = txn.Price
	record.Rate = txn.Rate
	record.OnSale = true
	if err := state.UpdateRecord(ctx.view, recordK, record); err != nil {
		return TefINTERNAL, err
	}

	ctx.queue(events.LabelSell, events.LaunchEvent{
		Seller: txn.Account,
		Mint:   txn.Mint,
		Price:  txn.Price,
		Rate:   txn.Rate,
		Label:  events.LabelSell,
	})
	return TesSUCCESS, nil
}

// applyNFTBuy settles the live listing: the price is split between the
// seller and the store owner, the unit leaves custody for the buyer, and a
// sold record is appended at the record's current sale index.
func (e *Engine) applyNFTBuy(txn *NFTBuy, ctx *applyCtx) (Result, error) {
	recordK, _, err := pda.Record(e.config.ProgramID, txn.Mint)
	if err != nil {
		return TefINTERNAL, err
	}
	record, err := state.ReadRecord(ctx.view, recordK)
	if err != nil {
		return TefINTERNAL, err
	}
	if record == nil {
		return TecNO_TARGET, nil
	}
	if !record.OnSale {
		return TecNOT_ON_SALE, nil
	}

	storeK, _, err := pda.Store(e.config.ProgramID, txn.StoreName)
	if err != nil {
		return TefINTERNAL, err
	}
	store, err := state.ReadStore(ctx.view, storeK)
	if err != nil {
		return TefINTERNAL, err
	}
	if store == nil {
		return TecNO_ENTRY, nil
	}

	buyer, err := state.ReadAccountRoot(ctx.view, txn.Account)
	if err != nil {
		return TefINTERNAL, err
	}
	if buyer == nil || buyer.Balance < record.Price {
		return TecUNFUNDED_PAYMENT, nil
	}

	soldK, _, err := pda.Sold(e.config.ProgramID, txn.Mint, record.SaleCount)
	if err != nil {
		return TefINTERNAL, err
	}
	exists, err := ctx.view.Exists(soldK)
	if err != nil {
		return TefINTERNAL, err
	}
	if exists {
		return TecDUPLICATE, nil
	}

	// Payment legs: debit the buyer first so the later credits observe the
	// debited balance when buyer, seller and store owner coincide.
	storeFee, sellerShare := splitPrice(record.Price, record.Rate)
	buyer.Balance -= record.Price
	if err := state.PutAccountRoot(ctx.view, buyer); err != nil {
		return TefINTERNAL, err
	}
	if err := credit(ctx.view, record.Seller, sellerShare); err != nil {
		return TefINTERNAL, err
	}
	if err := credit(ctx.view, store.Owner, storeFee); err != nil {
		return TefINTERNAL, err
	}

	// Asset leg: custody releases the unit to the buyer's holding under the
	// record's own authority.
	custodyK, _, err := pda.Custody(e.config.ProgramID, txn.Mint)
	if err != nil {
		return TefINTERNAL, err
	}
	holdingK, err := ensureHolding(ctx.view, txn.Account, txn.Mint)
	if err != nil {
		return TefINTERNAL, err
	}
	if err := token.Transfer(ctx.view, custodyK, holdingK, recordK.Key, 1); err != nil {
		return TefINTERNAL, err
	}

	createdAt := e.config.Clock.Now().Unix()
	sold := &state.Sold{
		Mint:      txn.Mint,
		Index:     record.SaleCount,
		Price:     record.Price,
		Rate:      record.Rate,
		Seller:    record.Seller,
		Customer:  txn.Account,
		CreatedAt: createdAt,
	}
	if err := state.InsertSold(ctx.view, soldK, sold); err != nil {
		return TefINTERNAL, err
	}

	soldIndex := record.SaleCount
	record.SaleCount++
	record.Volume += record.Price
	record.OnSale = false
	if err := state.UpdateRecord(ctx.view, recordK, record); err != nil {
		return TefINTERNAL, err
	}

	ctx.queue(events.LabelBuy, events.SoldEvent{
		Seller:    record.Seller,
		Mint:      txn.Mint,
		Customer:  txn.Account,
		Index:     soldIndex,
		Price:     record.Price,
		Rate:      record.Rate,
		CreatedAt: createdAt,
		Label:     events.LabelBuy,
	})
	return TesSUCCESS, nil
}

// applyNFTRedeem returns an unsold unit from custody to the seller.
func (e *Engine) applyNFTRedeem(txn *NFTRedeem, ctx *applyCtx) (Result, error) {
	recordK, _, err := pda.Record(e.config.ProgramID, txn.Mint)
	if err != nil {
		return TefINTERNAL, err
	}
	record, err := state.ReadRecord(ctx.view, recordK)
	if err != nil {
		return TefINTERNAL, err
	}
	if record == nil {
		return TecNO_TARGET, nil
	}
	if !record.OnSale {
		return TecNOT_ON_SALE, nil
	}
	if record.Seller != txn.Account {
		return TecNO_PERMISSION, nil
	}

	custodyK, _, err := pda.Custody(e.config.ProgramID, txn.Mint)
	if err != nil {
		return TefINTERNAL, err
	}
	holdingK, err := ensureHolding(ctx.view, txn.Account, txn.Mint)
	if err != nil {
		return TefINTERNAL, err
	}
	if err := token.Transfer(ctx.view, custodyK, holdingK, recordK.Key, 1); err != nil {
		return TefINTERNAL, err
	}

	record.OnSale = false
	if err := state.UpdateRecord(ctx.view, recordK, record); err != nil {
		return TefINTERNAL, err
	}

	ctx.queue(events.LabelRedeem, events.RedeemEvent{
		Redeem: txn.Account,
		Mint:   txn.Mint,
		Label:  events.LabelRedeem,
	})
	return TesSUCCESS, nil
}
