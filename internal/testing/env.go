package testing

import (
	"testing"
	"time"

	"github.com/slopestore/slopestored/internal/core/events"
	"github.com/slopestore/slopestored/internal/core/pda"
	"github.com/slopestore/slopestored/internal/core/state"
	"github.com/slopestore/slopestored/internal/core/token"
	"github.com/slopestore/slopestored/internal/core/tx"
	"github.com/slopestore/slopestored/internal/core/types"
)

// DefaultFundAmount is the balance Fund gives each account.
const DefaultFundAmount = uint64(10_000_000_000)

// TestEnv manages a test ledger environment for transaction testing.
// It provides a simplified interface for creating accounts, funding them,
// minting assets, submitting transactions, and verifying results.
type TestEnv struct {
	t        *testing.T
	view     *state.MemoryView
	engine   *tx.Engine
	clock    *ManualClock
	accounts map[string]*Account
}

// NewTestEnv creates a new test environment over an in-memory ledger.
func NewTestEnv(t *testing.T) *TestEnv {
	t.Helper()
	return NewTestEnvWithProgram(t, types.ZeroAddress)
}

// NewTestEnvWithProgram creates a test environment whose engine derives
// addresses under the given program identity. Zero selects the default.
func NewTestEnvWithProgram(t *testing.T, program types.Address) *TestEnv {
	t.Helper()

	view := state.NewMemoryView()
	clock := NewManualClock()
	engine := tx.NewEngine(view, tx.EngineConfig{ProgramID: program, Clock: clock}, events.NewEmitter())

	return &TestEnv{
		t:        t,
		view:     view,
		engine:   engine,
		clock:    clock,
		accounts: make(map[string]*Account),
	}
}

// Engine returns the environment's transaction engine.
func (e *TestEnv) Engine() *tx.Engine { return e.engine }

// View returns the committed ledger view.
func (e *TestEnv) View() state.View { return e.view }

// ProgramID returns the engine's program identity.
func (e *TestEnv) ProgramID() types.Address { return e.engine.ProgramID() }

// Fund gives each account the default starting balance.
func (e *TestEnv) Fund(accounts ...*Account) {
	e.t.Helper()
	for _, acc := range accounts {
		e.FundAmount(acc, DefaultFundAmount)
	}
}

// FundAmount sets up an account root with the given balance, registering
// the account in the environment.
func (e *TestEnv) FundAmount(acc *Account, amount uint64) {
	e.t.Helper()
	err := state.PutAccountRoot(e.view, &state.AccountRoot{
		Account: acc.Address,
		Balance: amount,
	})
	if err != nil {
		e.t.Fatalf("fund %s: %v", acc.Name, err)
	}
	e.accounts[acc.Name] = acc
}

// MintNFT issues one unit of a fresh mint into the account's holding and
// returns the mint identity.
func (e *TestEnv) MintNFT(acc *Account, name string) types.Address {
	e.t.Helper()
	mint := NewMint(name)
	holding := pda.Holding(acc.Address, mint)
	if err := token.CreateAccount(e.view, holding, mint, acc.Address); err != nil {
		e.t.Fatalf("mint %s for %s: %v", name, acc.Name, err)
	}
	if err := token.MintTo(e.view, holding, 1); err != nil {
		e.t.Fatalf("mint %s for %s: %v", name, acc.Name, err)
	}
	return mint
}

// Submit applies a transaction and wraps the engine result.
func (e *TestEnv) Submit(txn tx.Transaction) TxResult {
	e.t.Helper()
	result, err := e.engine.Apply(txn)
	res := TxResult{
		Code:    result.String(),
		Result:  result,
		Success: result.IsSuccess(),
	}
	if err != nil {
		res.Message = err.Error()
	}
	return res
}

// Balance returns the account's native balance, 0 when the account root is
// absent.
func (e *TestEnv) Balance(acc *Account) uint64 {
	e.t.Helper()
	root, err := state.ReadAccountRoot(e.view, acc.Address)
	if err != nil {
		e.t.Fatalf("read account root %s: %v", acc.Name, err)
	}
	if root == nil {
		return 0
	}
	return root.Balance
}

// HoldingBalance returns the account's token balance for a mint.
func (e *TestEnv) HoldingBalance(acc *Account, mint types.Address) uint64 {
	e.t.Helper()
	balance, err := token.Balance(e.view, pda.Holding(acc.Address, mint))
	if err != nil {
		e.t.Fatalf("holding balance %s: %v", acc.Name, err)
	}
	return balance
}

// CustodyBalance returns the escrow custody balance for a mint.
func (e *TestEnv) CustodyBalance(mint types.Address) uint64 {
	e.t.Helper()
	custodyK, _, err := pda.Custody(e.ProgramID(), mint)
	if err != nil {
		e.t.Fatalf("custody keylet: %v", err)
	}
	balance, err := token.Balance(e.view, custodyK)
	if err != nil {
		e.t.Fatalf("custody balance: %v", err)
	}
	return balance
}

// StoreEntry reads the store registry entry, nil when absent.
func (e *TestEnv) StoreEntry(name string) *state.Store {
	e.t.Helper()
	k, _, err := pda.Store(e.ProgramID(), name)
	if err != nil {
		e.t.Fatalf("store keylet: %v", err)
	}
	store, err := state.ReadStore(e.view, k)
	if err != nil {
		e.t.Fatalf("read store %s: %v", name, err)
	}
	return store
}

// Record reads the escrow record for a mint, nil when absent.
func (e *TestEnv) Record(mint types.Address) *state.Record {
	e.t.Helper()
	k, _, err := pda.Record(e.ProgramID(), mint)
	if err != nil {
		e.t.Fatalf("record keylet: %v", err)
	}
	record, err := state.ReadRecord(e.view, k)
	if err != nil {
		e.t.Fatalf("read record: %v", err)
	}
	return record
}

// SoldEntry reads the sold record at (mint, index), nil when absent.
func (e *TestEnv) SoldEntry(mint types.Address, index uint32) *state.Sold {
	e.t.Helper()
	k, _, err := pda.Sold(e.ProgramID(), mint, index)
	if err != nil {
		e.t.Fatalf("sold keylet: %v", err)
	}
	sold, err := state.ReadSold(e.view, k)
	if err != nil {
		e.t.Fatalf("read sold: %v", err)
	}
	return sold
}

// GetAccount returns a registered account by name, nil when unknown.
func (e *TestEnv) GetAccount(name string) *Account {
	return e.accounts[name]
}

// Now returns the current environment time.
func (e *TestEnv) Now() time.Time {
	return e.clock.Now()
}

// AdvanceTime moves the environment clock forward.
func (e *TestEnv) AdvanceTime(d time.Duration) {
	e.clock.Advance(d)
}

// SetTime sets the environment clock.
func (e *TestEnv) SetTime(t time.Time) {
	e.clock.Set(t)
}

// Slot returns the engine's current ledger slot.
func (e *TestEnv) Slot() uint64 {
	return e.engine.Slot()
}
