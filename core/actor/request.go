package actor

import (
	"context"
	"time"
)

// Ask sends msg wrapped in a request envelope and returns the Future that
// will be satisfied when a handler calls Context.Reply (directly, or via
// Context.Forward chaining through other actors). Ask never blocks.
func (a *Actor) Ask(msg any) *Future {
	fut := NewFuture()
	a.sendEnvelope(msg, fut)
	return fut
}

// AskBlocking sends msg and blocks until the reply arrives or ctx is done.
func (a *Actor) AskBlocking(ctx context.Context, msg any) (any, error) {
	return a.Ask(msg).Get(ctx)
}

// AskBlockingTimeout sends msg and blocks for at most timeout, returning
// ok=false if no reply arrived in time. The future, once created, remains
// valid: a late reply still settles it, it is simply no longer observed
// by this call.
func (a *Actor) AskBlockingTimeout(msg any, timeout time.Duration) (v any, ok bool) {
	return a.Ask(msg).GetTimeout(timeout)
}
