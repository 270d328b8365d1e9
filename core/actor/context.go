package actor

import "context"

// Context is passed to a Handler's Apply. It exposes the reply/forward
// operations of the request/response overlay; a handler that ignores
// these behaves as a plain fire-and-forget consumer.
type Context struct {
	actor *Actor
}

// Reply resolves the current request's future with v. It is a silent
// no-op if the message being handled is not a request, or if the future
// was already settled. After a caller's AskBlockingTimeout has timed out,
// Reply still settles the future, but nobody observes the value.
func (c *Context) Reply(v any) {
	if c.actor.currentFuture != nil {
		c.actor.currentFuture.Satisfy(v)
	}
}

// Asker is implemented by anything Context.Forward can target: *Actor
// satisfies it directly via Ask; other implementations are treated as an
// external collaborator and answered via a synchronous ask-then-reply.
type Asker interface {
	Ask(msg any) *Future
}

// Forward reroutes the in-flight request to other. If other is an *Actor,
// the same future is carried over directly (no extra round trip), so
// other's own Reply resolves the original caller. Otherwise, it
// synchronously asks other and replies with its result. Returns
// ErrNoPendingRequest if called outside the scope of a request envelope.
func (c *Context) Forward(msg any, other Asker) error {
	fut := c.actor.currentFuture
	if fut == nil {
		return ErrNoPendingRequest
	}
	if target, ok := other.(*Actor); ok {
		target.sendEnvelope(msg, fut)
		return nil
	}
	v, err := other.Ask(msg).Get(context.Background())
	if err != nil {
		return err
	}
	fut.Satisfy(v)
	return nil
}

// Actor returns the actor this context belongs to, e.g. to Send further
// messages to self.
func (c *Context) Actor() *Actor { return c.actor }
