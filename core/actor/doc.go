// Package actor provides a mailbox-based actor runtime for building
// concurrent, message-driven components that process work sequentially
// while many actors run in parallel on a shared bounded worker pool.
//
// # Core Model
//
// Each [Actor] owns a private mailbox and a user-supplied [Handler]. Sending
// a message never blocks: it appends the message to a short staging list
// and, if the actor is currently idle, schedules exactly one activation
// (a "drain") on the configured [Executor]. A drain hands each matching
// message in turn to the handler and runs until no message left in the
// mailbox matches it.
//
//	a := actor.New(actor.Options{}, actor.When(
//	    func(msg any) bool { _, ok := msg.(string); return ok },
//	    func(ctx *actor.Context, msg any) error {
//	        fmt.Println(msg)
//	        return nil
//	    },
//	))
//	a.Send("hello")
//
// # Request/Response
//
// [Actor.Ask] and [Actor.AskBlocking] wrap a message in a one-shot [Future]
// and deliver it like any other message; a handler calls [Context.Reply]
// to resolve it. [Context.Forward] reroutes an in-flight request to another
// actor so that the second actor's reply resolves the original caller.
//
// # Priority and Around-Wrappers
//
// An optional priority handler is drained to exhaustion before any normal
// message on every drain iteration (see [Options.PriorityHandler]).
// Around-wrappers (see [Options.Wrappers]) compose outside-in around the
// whole drain loop, for cross-cutting concerns like correlation IDs or
// audit logging.
//
// # Non-goals
//
// This package does not provide distribution across processes, supervision
// trees, location transparency, persistence, or bounded-mailbox
// backpressure. The mailbox is unbounded by design.
package actor
