package tx

import (
	"strings"
	"sync"
	"time"

	"github.com/slopestore/slopestored/internal/core/events"
	"github.com/slopestore/slopestored/internal/core/pda"
	"github.com/slopestore/slopestored/internal/core/state"
	"github.com/slopestore/slopestored/internal/core/types"
)

// Clock supplies the ledger time recorded on sold records.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// EngineConfig holds configuration for the transaction engine.
type EngineConfig struct {
	// ProgramID is the program identity used for address derivation.
	// Zero selects pda.DefaultProgramID.
	ProgramID types.Address

	// Clock supplies ledger time. Nil selects the system clock.
	Clock Clock
}

// Engine applies transactions against ledger state.
//
// Every Apply is atomic: all reads, validations and writes of one call
// commit together or not at all. A mutex serializes applies, standing in
// for the ledger's account locking; the core itself never depends on
// intra-transaction interleaving.
type Engine struct {
	mu      sync.Mutex
	view    state.View
	config  EngineConfig
	emitter *events.Emitter
	slot    uint64
}

// NewEngine creates an engine over the given base view.
func NewEngine(view state.View, config EngineConfig, emitter *events.Emitter) *Engine {
	if config.ProgramID.IsZero() {
		config.ProgramID = pda.DefaultProgramID
	}
	if config.Clock == nil {
		config.Clock = systemClock{}
	}
	if emitter == nil {
		emitter = events.NewEmitter()
	}
	return &Engine{
		view:    view,
		config:  config,
		emitter: emitter,
	}
}

// Events returns the engine's event emitter.
func (e *Engine) Events() *events.Emitter { return e.emitter }

// ProgramID returns the engine's program identity.
func (e *Engine) ProgramID() types.Address { return e.config.ProgramID }

// Slot returns the current ledger slot. It advances on every commit.
func (e *Engine) Slot() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.slot
}

// View returns the committed base view. Callers must treat it as
// read-only; all mutation goes through Apply.
func (e *Engine) View() state.View { return e.view }

// pendingEvent is an event queued during apply and emitted after commit.
type pendingEvent struct {
	label string
	event any
}

// applyCtx carries the per-transaction sandbox and queued events.
type applyCtx struct {
	view   *state.ApplyStateTable
	events []pendingEvent
}

func (c *applyCtx) queue(label string, event any) {
	c.events = append(c.events, pendingEvent{label: label, event: event})
}

// Apply validates and applies a transaction. On tesSUCCESS the sandbox is
// committed, the slot advances, and queued events are emitted in order
// with the commit slot. Any other result leaves the base view untouched.
func (e *Engine) Apply(txn Transaction) (Result, error) {
	if err := txn.Validate(); err != nil {
		return resultFromValidation(err), err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	ctx := &applyCtx{view: state.NewApplyStateTable(e.view)}

	var result Result
	var err error
	switch t := txn.(type) {
	case *StoreCreate:
		result, err = e.applyStoreCreate(t, ctx)
	case *StoreFreeze:
		result, err = e.applyStoreFreeze(t, ctx)
	case *StoreThaw:
		result, err = e.applyStoreThaw(t, ctx)
	case *RecordCreate:
		result, err = e.applyRecordCreate(t, ctx)
	case *NFTSell:
		result, err = e.applyNFTSell(t, ctx)
	case *NFTBuy:
		result, err = e.applyNFTBuy(t, ctx)
	case *NFTRedeem:
		result, err = e.applyNFTRedeem(t, ctx)
	default:
		return TemUNKNOWN, ErrUnknownTransactionType
	}
	if err != nil {
		ctx.view.Discard()
		return TefINTERNAL, err
	}

	if !result.IsSuccess() {
		ctx.view.Discard()
		return result, nil
	}

	if err := ctx.view.Commit(); err != nil {
		return TefINTERNAL, err
	}
	e.slot++
	for _, ev := range ctx.events {
		e.emitter.Emit(ev.label, ev.event, e.slot)
	}
	return TesSUCCESS, nil
}

// resultFromValidation maps a Validate error to its tem result code.
// Validation errors carry a "temCODE: detail" message.
func resultFromValidation(err error) Result {
	msg := err.Error()
	if i := strings.IndexByte(msg, ':'); i > 0 {
		if r, ok := ResultFromName(msg[:i]); ok && r.IsTem() {
			return r
		}
	}
	return TemMALFORMED
}
