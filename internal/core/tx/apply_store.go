package tx

import (
	"github.com/slopestore/slopestored/internal/core/pda"
	"github.com/slopestore/slopestored/internal/core/state"
)

// applyStoreCreate registers a new named store owned by the caller.
func (e *Engine) applyStoreCreate(txn *StoreCreate, ctx *applyCtx) (Result, error) {
	storeK, bump, err := pda.Store(e.config.ProgramID, txn.Name)
	if err != nil {
		return TefINTERNAL, err
	}
	if txn.Bump != bump {
		return TemADDRESS_MISMATCH, nil
	}

	exists, err := ctx.view.Exists(storeK)
	if err != nil {
		return TefINTERNAL, err
	}
	if exists {
		return TefALREADY, nil
	}

	store := &state.Store{
		Name:  txn.Name,
		Owner: txn.Account,
		Bump:  bump,
	}
	if err := state.InsertStore(ctx.view, storeK, store); err != nil {
		return TefINTERNAL, err
	}
	return TesSUCCESS, nil
}

// applyStoreFreeze suspends a store. Owner only.
func (e *Engine) applyStoreFreeze(txn *StoreFreeze, ctx *applyCtx) (Result, error) {
	storeK, _, err := pda.Store(e.config.ProgramID, txn.Name)
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
	if store.Owner != txn.Account {
		return TecNO_PERMISSION, nil
	}
	if store.Frozen {
		return TefALREADY, nil
	}

	store.Frozen = true
	if err := state.UpdateStore(ctx.view, storeK, store); err != nil {
		return TefINTERNAL, err
	}
	return TesSUCCESS, nil
}

// applyStoreThaw lifts a freeze. Owner only.
func (e *Engine) applyStoreThaw(txn *StoreThaw, ctx *applyCtx) (Result, error) {
	storeK, _, err := pda.Store(e.config.ProgramID, txn.Name)
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
	if store.Owner != txn.Account {
		return TecNO_PERMISSION, nil
	}
	if !store.Frozen {
		return TefALREADY, nil
	}

	store.Frozen = false
	if err := state.UpdateStore(ctx.view, storeK, store); err != nil {
		return TefINTERNAL, err
	}
	return TesSUCCESS, nil
}
