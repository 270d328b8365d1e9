package actor

import (
	"fmt"
	"log/slog"
	"sync"

	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/codewandler/actorkit/core/reflector"
)

// Options configures an Actor. The zero value is usable: a nameless actor
// on the DefaultExecutor with no priority handler, no exception handler,
// and no around-wrappers.
type Options struct {
	// Name identifies the actor in logs and metrics. Defaults to a
	// short random id.
	Name string
	// Executor runs the actor's drain loop. Defaults to DefaultExecutor().
	Executor *Executor
	// OnSameThread, when true, makes the actor run its drain inline on
	// the sender's goroutine instead of submitting to the Executor.
	// Defaults to the Executor's own OnSameThread setting.
	OnSameThread bool
	// Logger defaults to slog.Default().
	Logger *slog.Logger
	// Metrics defaults to a no-op implementation.
	Metrics ActorMetrics
	// PriorityHandler, if set, is drained to exhaustion ahead of the
	// normal handler on every drain iteration.
	PriorityHandler Handler
	// ExceptionHandler, if set, is consulted when Apply throws.
	ExceptionHandler ExceptionHandler
	// Wrappers compose outside-in around the whole drain loop.
	Wrappers []AroundWrapper
}

// Actor owns a mailbox and a message handler and processes messages one
// at a time, even though many actors run concurrently on a shared
// Executor. See the package doc for the full model.
type Actor struct {
	name    string
	log     *slog.Logger
	metrics ActorMetrics

	executor     *Executor
	onSameThread bool

	handler          Handler
	priorityHandler  Handler
	exceptionHandler ExceptionHandler
	wrappers         []AroundWrapper

	mu              sync.Mutex
	mailbox         *Mailbox
	stagingNormal   []any
	stagingPriority []any
	processing      bool
	startCount      int
	currentFuture   *Future
}

// requestEnvelope pairs a user message with the Future that Ask/AskBlocking
// are waiting on. It travels through the mailbox exactly like any other
// message; the overlay's match/apply translation (see matcher/invoke)
// unwraps it before the user Handler ever sees it.
type requestEnvelope struct {
	Msg    any
	Future *Future
}

// New creates an Actor with the given handler and options.
func New(opts Options, handler Handler) *Actor {
	if opts.Executor == nil {
		opts.Executor = DefaultExecutor()
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Metrics == nil {
		opts.Metrics = NopActorMetrics()
	}
	if opts.Name == "" {
		opts.Name = "actor-" + gonanoid.MustGenerate("abcdefghijklmnopqrstuvwxyz0123456789", 8)
	}

	a := &Actor{
		name:             opts.Name,
		log:              opts.Logger.With(slog.String("actor", opts.Name)),
		metrics:          opts.Metrics,
		executor:         opts.Executor,
		onSameThread:     opts.OnSameThread || opts.Executor.OnSameThread(),
		handler:          handler,
		priorityHandler:  opts.PriorityHandler,
		exceptionHandler: opts.ExceptionHandler,
		wrappers:         opts.Wrappers,
		mailbox:          NewMailbox(),
	}
	return a
}

// Name returns the actor's configured or generated name.
func (a *Actor) Name() string { return a.name }

// Send enqueues m for asynchronous, fire-and-forget delivery. It never
// blocks beyond the brief mailbox-lock acquisition.
func (a *Actor) Send(m any) { a.enqueue(m, false) }

// SendPriority enqueues m on the priority staging list. Priority messages
// are delivered before any non-priority message resident in the mailbox
// at the moment the priority pass runs, but do not preempt a handler that
// is already executing.
func (a *Actor) SendPriority(m any) { a.enqueue(m, true) }

func (a *Actor) sendEnvelope(m any, fut *Future) { a.enqueue(&requestEnvelope{Msg: m, Future: fut}, false) }

func (a *Actor) enqueue(m any, priority bool) {
	a.mu.Lock()
	if priority {
		a.stagingPriority = append(a.stagingPriority, m)
	} else {
		a.stagingNormal = append(a.stagingNormal, m)
	}
	a.mu.Unlock()
	a.tryActivate()
}

// tryActivate applies the two-stage interlock: it schedules exactly one
// drain activation if, and only if, none is already scheduled or running.
// Called both from enqueue (a brand new message arrives) and, after a
// drain is cut short by a panic, to pick up mailbox content the terminated
// drain left behind.
//
// In inline mode (onSameThread) it drives the drain loop itself instead of
// recursing back into runProtected: a handler that panics on every message
// would otherwise grow the call stack by one frame per message.
func (a *Actor) tryActivate() {
	a.mu.Lock()
	if a.processing || a.startCount != 0 {
		a.mu.Unlock()
		return
	}
	if a.onSameThread {
		a.processing = true
		a.mu.Unlock()
		for a.runDrainOnce() {
			a.mu.Lock()
			if a.processing || a.startCount != 0 {
				a.mu.Unlock()
				return
			}
			a.processing = true
			a.mu.Unlock()
		}
		return
	}
	a.startCount = 1
	a.mu.Unlock()
	a.executor.Execute(a.runProtected)
}

// finishDrain marks the drain as no longer running and, in the same
// critical section, reports whether new work arrived that needs a
// follow-up activation. Folding the reset and the pending check into one
// lock acquisition closes the window a split reset-then-check would leave
// open: without it, a concurrent Send could see processing already false
// and start a second drain touching the lock-free mailbox while this
// goroutine is still unwinding from the panic that triggered the reset.
func (a *Actor) finishDrain() (pending bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.processing = false
	if len(a.stagingNormal) > 0 || len(a.stagingPriority) > 0 {
		return true
	}
	return !a.mailbox.Empty()
}

// runProtected is the pool-mode entry point submitted to the Executor: one
// drain pass, and if that pass was cut short by a panic and work remains,
// a single re-submission to the Executor. It never recurses into itself.
func (a *Actor) runProtected() {
	if a.runDrainOnce() {
		a.tryActivate()
	}
}

// runDrainOnce wraps one composed-drain pass in panic recovery so an
// unhandled exception never escapes to the caller (inline mode) or crashes
// a worker (pool mode, where the Executor's own worker boundary provides a
// second line of defense). It reports whether a follow-up activation is
// needed; processing stays true for the whole unwind, so no concurrent
// Send can start a second drain until finishDrain resets it.
func (a *Actor) runDrainOnce() (pending bool) {
	defer func() {
		if r := recover(); r != nil {
			a.log.Error("actor: drain terminated by unhandled exception", slog.Any("recovered", r))
			pending = a.finishDrain()
		}
	}()
	a.composeDrain()()
	return false
}

func (a *Actor) composeDrain() func() {
	fn := a.drain
	for i := len(a.wrappers) - 1; i >= 0; i-- {
		fn = a.wrappers[i](fn)
	}
	return fn
}

// drain runs the batch loop described in the package design: merge
// staging, exhaust the priority pass, then the normal pass, repeating
// until no mailbox message matches the handler and staging is empty.
// Unmatched messages stay in the mailbox.
func (a *Actor) drain() {
	a.mu.Lock()
	a.processing = true
	a.startCount = 0
	a.mu.Unlock()

	for {
		a.mergeStaging()
		a.runPriorityPass()

		item := a.mailbox.FindFirst(a.matcher(a.handler))
		if item != nil {
			a.mailbox.Remove(item)
			a.invoke(a.handler, item.Value)
			continue
		}

		a.mu.Lock()
		if len(a.stagingNormal) == 0 && len(a.stagingPriority) == 0 {
			a.processing = false
			a.mu.Unlock()
			return
		}
		a.mu.Unlock()
	}
}

func (a *Actor) runPriorityPass() {
	if a.priorityHandler == nil {
		return
	}
	for {
		item := a.mailbox.FindFirst(a.matcher(a.priorityHandler))
		if item == nil {
			if !a.mergeStagingIfAny() {
				return
			}
			continue
		}
		a.mailbox.Remove(item)
		a.invoke(a.priorityHandler, item.Value)
	}
}

func (a *Actor) matcher(h Handler) func(any) bool {
	return func(raw any) bool {
		return h.Matches(unwrapEnvelope(raw))
	}
}

func unwrapEnvelope(raw any) any {
	if env, ok := raw.(*requestEnvelope); ok {
		return env.Msg
	}
	return raw
}

// invoke applies h to the inner message carried by raw (unwrapping a
// request envelope and setting currentFuture for the duration of the
// call, per the apply-translation hook in the design). A thrown exception
// is routed to the exception handler if one matches; otherwise it is
// re-panicked so runDrainOnce's recover logs it and resets processing.
// invoke itself must not touch processing: it runs with the mailbox
// unguarded by a.mu, so only runDrainOnce's recover, after the panic has
// fully unwound back to it, may clear the flag that keeps a second drain
// from starting while this one is still tearing down.
func (a *Actor) invoke(h Handler, raw any) {
	var inner any
	var fut *Future
	if env, ok := raw.(*requestEnvelope); ok {
		inner, fut = env.Msg, env.Future
	} else {
		inner = raw
	}

	prevFuture := a.currentFuture
	a.currentFuture = fut
	defer func() { a.currentFuture = prevFuture }()

	msgType := reflector.TypeInfoOf(inner).Name
	timer := a.metrics.MessageDuration(msgType)
	defer timer.ObserveDuration()

	ctx := &Context{actor: a}
	err := a.callApply(h, ctx, inner)
	if err == nil {
		a.metrics.MessageProcessed(msgType, true)
		return
	}

	if a.exceptionHandler != nil && a.exceptionHandler.Matches(err) {
		a.exceptionHandler.Handle(ctx, err)
		a.metrics.MessageProcessed(msgType, false)
		return
	}

	a.metrics.MessagePanic(msgType)
	panic(err)
}

func (a *Actor) callApply(h Handler, ctx *Context, inner any) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = panicToError(r)
		}
	}()
	return h.Apply(ctx, inner)
}

func panicToError(r any) error {
	if err, ok := r.(error); ok {
		return err
	}
	return fmt.Errorf("%v", r)
}

func (a *Actor) mergeStaging() {
	sp, sn := a.takeStaging()
	if len(sp) > 0 {
		a.mailbox.PrependAllInOrder(sp)
	}
	if len(sn) > 0 {
		a.mailbox.AppendAll(sn)
	}
	a.metrics.MailboxDepth(a.name, a.mailboxLen())
}

func (a *Actor) mergeStagingIfAny() bool {
	a.mu.Lock()
	empty := len(a.stagingNormal) == 0 && len(a.stagingPriority) == 0
	a.mu.Unlock()
	if empty {
		return false
	}
	a.mergeStaging()
	return true
}

func (a *Actor) takeStaging() (priority, normal []any) {
	a.mu.Lock()
	priority, a.stagingPriority = a.stagingPriority, nil
	normal, a.stagingNormal = a.stagingNormal, nil
	a.mu.Unlock()
	return
}

func (a *Actor) mailboxLen() int {
	return a.mailbox.Len()
}
