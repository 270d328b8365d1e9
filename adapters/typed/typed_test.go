package typed

import (
	"testing"

	"github.com/codewandler/actorkit/core/actor"
	"github.com/stretchr/testify/require"
)

type deposit struct{ amount int }
type withdrawal struct{ amount int }

type barrier struct{}

func TestRegistrar_DispatchesByExactType(t *testing.T) {
	var deposited, withdrawn int

	r := NewRegistrar()
	On(r, func(ctx *actor.Context, msg deposit) error {
		deposited += msg.amount
		return nil
	})
	On(r, func(ctx *actor.Context, msg withdrawal) error {
		withdrawn += msg.amount
		return nil
	})
	On(r, func(ctx *actor.Context, msg barrier) error {
		ctx.Reply(nil)
		return nil
	})

	a := actor.New(actor.Options{}, r.Build())
	a.Send(deposit{amount: 10})
	a.Send(withdrawal{amount: 3})
	_, err := a.AskBlocking(t.Context(), barrier{})
	require.NoError(t, err)

	require.Equal(t, 10, deposited)
	require.Equal(t, 3, withdrawn)
}

func TestRegistrar_LeavesUnregisteredTypesUnmatched(t *testing.T) {
	r := NewRegistrar()
	matched := false
	On(r, func(ctx *actor.Context, msg deposit) error {
		matched = true
		return nil
	})

	h := r.Build()
	require.True(t, h.Matches(deposit{}))
	require.False(t, h.Matches(withdrawal{}))
	require.False(t, h.Matches("unrelated"))
	require.False(t, matched)
}

func TestRegistrar_DistinguishesValueFromPointerType(t *testing.T) {
	r := NewRegistrar()
	var sawValue, sawPointer bool
	On(r, func(ctx *actor.Context, msg deposit) error {
		sawValue = true
		return nil
	})
	On(r, func(ctx *actor.Context, msg *deposit) error {
		sawPointer = true
		return nil
	})

	h := r.Build()
	require.NoError(t, h.Apply(nil, deposit{amount: 1}))
	require.True(t, sawValue)
	require.False(t, sawPointer)

	require.NoError(t, h.Apply(nil, &deposit{amount: 1}))
	require.True(t, sawPointer)
}

func TestRegistrar_AskBlockingRoundTrips(t *testing.T) {
	type ping struct{}
	type pong struct{ n int }

	r := NewRegistrar()
	On(r, func(ctx *actor.Context, msg ping) error {
		ctx.Reply(pong{n: 42})
		return nil
	})

	a := actor.New(actor.Options{}, r.Build())
	v, err := a.AskBlocking(t.Context(), ping{})
	require.NoError(t, err)
	require.Equal(t, pong{n: 42}, v)
}
