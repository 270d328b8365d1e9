package actor

// MatchFunc reports whether a handler applies to msg.
type MatchFunc func(msg any) bool

// ApplyFunc consumes a message a matching handler accepted. It may call
// Context.Reply if the message is a request, and returns an error (or
// panics) to signal a handler-level exception.
type ApplyFunc func(ctx *Context, msg any) error

// Handler is a partial function over messages: it reports, for each
// candidate message, whether it is applicable (Matches) and, if so,
// handles it (Apply). Messages that do not match remain in the mailbox for
// a later handler installation or priority pass.
type Handler interface {
	Matches(msg any) bool
	Apply(ctx *Context, msg any) error
}

// handlerFunc adapts a MatchFunc/ApplyFunc pair to the Handler interface.
type handlerFunc struct {
	match MatchFunc
	apply ApplyFunc
}

func (h handlerFunc) Matches(msg any) bool             { return h.match(msg) }
func (h handlerFunc) Apply(ctx *Context, msg any) error { return h.apply(ctx, msg) }

// When builds a Handler from a match predicate and an apply function.
func When(match MatchFunc, apply ApplyFunc) Handler {
	return handlerFunc{match: match, apply: apply}
}

// Any builds a Handler that matches every message.
func Any(apply ApplyFunc) Handler {
	return handlerFunc{match: func(any) bool { return true }, apply: apply}
}

// ExceptionHandler is a partial function over throwables: it reports
// whether it applies to an error raised by a Handler's Apply, and if so,
// handles it. An unmatched exception terminates the current drain.
type ExceptionHandler interface {
	Matches(err error) bool
	Handle(ctx *Context, err error)
}

type exceptionHandlerFunc struct {
	match  func(error) bool
	handle func(*Context, error)
}

func (h exceptionHandlerFunc) Matches(err error) bool        { return h.match(err) }
func (h exceptionHandlerFunc) Handle(ctx *Context, err error) { h.handle(ctx, err) }

// CatchAll builds an ExceptionHandler that matches every error.
func CatchAll(handle func(ctx *Context, err error)) ExceptionHandler {
	return exceptionHandlerFunc{match: func(error) bool { return true }, handle: handle}
}

// CatchWhen builds an ExceptionHandler that only matches errors for which
// match returns true.
func CatchWhen(match func(error) bool, handle func(ctx *Context, err error)) ExceptionHandler {
	return exceptionHandlerFunc{match: match, handle: handle}
}

// AroundWrapper wraps the actor's drain loop. It must invoke next exactly
// once. Wrappers compose outside-in: the first
// wrapper in Options.Wrappers is outermost. Typical uses: correlation IDs,
// thread-local-style context, transactional scopes, audit logging.
type AroundWrapper func(next func()) func()
