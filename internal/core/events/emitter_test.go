package events

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/slopestore/slopestored/internal/core/types"
)

func TestEmitter_LabelFilter(t *testing.T) {
	emitter := NewEmitter()

	var sells, all []Envelope
	emitter.Subscribe(LabelSell, func(env Envelope) { sells = append(sells, env) })
	emitter.Subscribe("", func(env Envelope) { all = append(all, env) })

	var mint types.Address
	mint[0] = 1
	emitter.Emit(LabelSell, LaunchEvent{Mint: mint, Label: LabelSell}, 3)
	emitter.Emit(LabelRedeem, RedeemEvent{Mint: mint, Label: LabelRedeem}, 4)

	require.Len(t, sells, 1)
	require.Equal(t, uint64(3), sells[0].Slot)
	require.Len(t, all, 2)
	require.Equal(t, LabelRedeem, all[1].Label)
}

func TestEmitter_Unsubscribe(t *testing.T) {
	emitter := NewEmitter()

	count := 0
	h := emitter.Subscribe("", func(Envelope) { count++ })
	emitter.Emit(LabelBuy, SoldEvent{}, 1)
	emitter.Unsubscribe(h)
	emitter.Emit(LabelBuy, SoldEvent{}, 2)

	require.Equal(t, 1, count)

	// Removing twice is harmless.
	emitter.Unsubscribe(h)
}

func TestEmitter_NoReplayForLateSubscribers(t *testing.T) {
	emitter := NewEmitter()
	emitter.Emit(LabelBuy, SoldEvent{Index: 0}, 1)

	var got []Envelope
	emitter.Subscribe(LabelBuy, func(env Envelope) { got = append(got, env) })
	require.Empty(t, got)

	emitter.Emit(LabelBuy, SoldEvent{Index: 1}, 2)
	require.Len(t, got, 1)
	require.Equal(t, uint32(1), got[0].Event.(SoldEvent).Index)
}

func TestEmitter_OrderMatchesSubscription(t *testing.T) {
	emitter := NewEmitter()

	var order []int
	emitter.Subscribe("", func(Envelope) { order = append(order, 1) })
	emitter.Subscribe("", func(Envelope) { order = append(order, 2) })
	emitter.Emit(LabelSell, LaunchEvent{}, 1)

	require.Equal(t, []int{1, 2}, order)
}
