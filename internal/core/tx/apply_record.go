package tx

import (
	"github.com/slopestore/slopestored/internal/core/pda"
	"github.com/slopestore/slopestored/internal/core/state"
	"github.com/slopestore/slopestored/internal/core/token"
)

// applyRecordCreate initializes the escrow record and its custody token
// account for a mint. The custody account is owned by the record's derived
// address, so nothing but the engine can release units from it.
func (e *Engine) applyRecordCreate(txn *RecordCreate, ctx *applyCtx) (Result, error) {
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

	recordK, recordBump, err := pda.Record(e.config.ProgramID, txn.Mint)
	if err != nil {
		return TefINTERNAL, err
	}
	custodyK, custodyBump, err := pda.Custody(e.config.ProgramID, txn.Mint)
	if err != nil {
		return TefINTERNAL, err
	}
	if txn.Bumps.Record != recordBump || txn.Bumps.Custody != custodyBump {
		return TemADDRESS_MISMATCH, nil
	}

	exists, err := ctx.view.Exists(recordK)
	if err != nil {
		return TefINTERNAL, err
	}
	if exists {
		return TefALREADY, nil
	}

	record := &state.Record{
		Mint:        txn.Mint,
		Initializer: txn.Account,
		Bump:        recordBump,
		CustodyBump: custodyBump,
	}
	if err := state.InsertRecord(ctx.view, recordK, record); err != nil {
		return TefINTERNAL, err
	}
	if err := token.CreateAccount(ctx.view, custodyK, txn.Mint, recordK.Key); err != nil {
		return TefINTERNAL, err
	}
	return TesSUCCESS, nil
}
