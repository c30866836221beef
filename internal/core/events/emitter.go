package events

import (
	"sync"
)

// Handle identifies a subscription for later removal.
type Handle uint64

// Emitter fans events out synchronously to registered observers.
//
// Emission order matches transition commit order: the engine calls Emit
// under its apply lock, after the sandbox has committed. There is no
// replay buffer; an observer registered after an emission never sees it.
type Emitter struct {
	mu     sync.RWMutex
	nextID Handle
	subs   map[Handle]*subscription
	order  []Handle
}

type subscription struct {
	label string // empty subscribes to all labels
	fn    func(Envelope)
}

// NewEmitter returns an emitter with no observers.
func NewEmitter() *Emitter {
	return &Emitter{subs: make(map[Handle]*subscription)}
}

// Subscribe registers fn for events with the given label. An empty label
// receives every event. fn runs synchronously on the emitting goroutine.
func (e *Emitter) Subscribe(label string, fn func(Envelope)) Handle {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.nextID++
	id := e.nextID
	e.subs[id] = &subscription{label: label, fn: fn}
	e.order = append(e.order, id)
	return id
}

// Unsubscribe removes a subscription. Unknown handles are ignored.
func (e *Emitter) Unsubscribe(h Handle) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := e.subs[h]; !ok {
		return
	}
	delete(e.subs, h)
	for i, id := range e.order {
		if id == h {
			e.order = append(e.order[:i], e.order[i+1:]...)
			break
		}
	}
}

// Emit delivers the event to all matching observers in subscription order.
func (e *Emitter) Emit(label string, event any, slot uint64) {
	e.mu.RLock()
	matched := make([]func(Envelope), 0, len(e.order))
	for _, id := range e.order {
		sub := e.subs[id]
		if sub.label == "" || sub.label == label {
			matched = append(matched, sub.fn)
		}
	}
	e.mu.RUnlock()

	env := Envelope{Label: label, Slot: slot, Event: event}
	for _, fn := range matched {
		fn(env)
	}
}
