package app

import (
	"context"
	"fmt"
	"log/slog"

	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/codewandler/actorkit/core/actor"
)

// Config configures an App.
type Config struct {
	// ID identifies this process instance in logs. Defaults to a
	// generated id.
	ID string
	// Context is the parent context; its cancellation stops the app.
	// Defaults to context.Background().
	Context context.Context
	// Log defaults to slog.Default().
	Log *slog.Logger
	// Executor is shared by every actor the app registers. Defaults to a
	// new Executor built from ExecutorOptions.
	Executor       *actor.Executor
	ExecutorOptions actor.ExecutorOptions
}

// App bundles a logger, a cancellable lifecycle, a shared Executor, and an
// actor.System registry into the setup most single-process programs using
// this package need.
type App struct {
	id        string
	ctx       context.Context
	cancelCtx context.CancelFunc
	log       *slog.Logger
	executor  *actor.Executor
	system    *actor.System
	stopped   bool
}

// New builds an App from config, filling in defaults.
func New(config Config) *App {
	id := config.ID
	if id == "" {
		id = fmt.Sprintf("app-%s", gonanoid.MustGenerate("abcdefghijklmnopqrstuvwxyz0123456789", 6))
	}

	log := config.Log
	if log == nil {
		log = slog.Default()
	}
	log = log.With(slog.String("app", id))

	parent := config.Context
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)

	executor := config.Executor
	if executor == nil {
		opts := config.ExecutorOptions
		if opts.Logger == nil {
			opts.Logger = log
		}
		executor = actor.NewExecutor(opts)
	}

	return &App{
		id:        id,
		ctx:       ctx,
		cancelCtx: cancel,
		log:       log,
		executor:  executor,
		system:    actor.NewSystem(),
	}
}

// ID returns the app's instance id.
func (a *App) ID() string { return a.id }

// Context returns the app's lifecycle context.
func (a *App) Context() context.Context { return a.ctx }

// Log returns the app's logger.
func (a *App) Log() *slog.Logger { return a.log }

// Executor returns the Executor shared by actors registered through Spawn.
func (a *App) Executor() *actor.Executor { return a.executor }

// System returns the app's actor registry.
func (a *App) System() *actor.System { return a.system }

// Spawn creates an actor on the app's Executor, registers it in System
// under name, and returns it.
func (a *App) Spawn(name string, handler actor.Handler, opts actor.Options) (*actor.Actor, error) {
	opts.Name = name
	opts.Executor = a.executor
	if opts.Logger == nil {
		opts.Logger = a.log
	}
	act := actor.New(opts, handler)
	if err := a.system.Register(act); err != nil {
		return nil, err
	}
	return act, nil
}

// Done returns a channel closed once the app's context is cancelled.
func (a *App) Done() <-chan struct{} { return a.ctx.Done() }

// Stop cancels the app's context and shuts down its Executor. It is
// idempotent.
func (a *App) Stop() {
	if a.stopped {
		return
	}
	a.stopped = true
	a.cancelCtx()
	a.executor.Shutdown()
}
