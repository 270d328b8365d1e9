package actor

import (
	"log/slog"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"
)

// ExecutorOptions configures an Executor. All fields are read when the pool
// is (re-)created; after construction, use the Executor's exported setters
// (SetCoreThreads, SetMaxThreads, SetIdleTimeout, SetOnSameThread) and call
// Shutdown to have new values take effect on the next Execute.
type ExecutorOptions struct {
	// CoreThreads is the minimum number of always-running workers.
	CoreThreads int
	// MaxThreads is the burst ceiling; temporary workers above
	// CoreThreads are spawned up to this limit and reclaimed after
	// IdleTimeout with no work.
	MaxThreads int
	// IdleTimeout is how long a burst worker waits for new work before
	// exiting.
	IdleTimeout time.Duration
	// OnSameThread, when true, makes Execute run work inline on the
	// caller instead of submitting it to the pool.
	OnSameThread bool
	// Logger receives worker panic reports. Defaults to slog.Default().
	Logger *slog.Logger
	// Metrics receives pool instrumentation. Defaults to a no-op.
	Metrics ExecutorMetrics
	// Factory, if set, overrides pool construction entirely: it is
	// called in place of the built-in worker-pool initialization.
	Factory func(ExecutorOptions) WorkerPool
}

// WorkerPool is the minimal interface a custom Factory must satisfy.
type WorkerPool interface {
	// Submit schedules work for asynchronous execution.
	Submit(work func())
	// Close releases pool resources.
	Close()
}

// Executor is a bounded worker pool that runs submitted work units. It has
// a lazy-initialize-on-first-use lifecycle: the pool is created under a
// lock on first Execute and torn down by Shutdown, after which the next
// Execute re-creates it from the then-current options.
type Executor struct {
	mu      sync.Mutex
	opts    ExecutorOptions
	pool    WorkerPool
	started bool
}

var (
	defaultExecutorOnce sync.Once
	defaultExecutor     *Executor
)

// DefaultExecutor returns the process-wide default Executor, created with
// NewExecutor(ExecutorOptions{}) on first use.
func DefaultExecutor() *Executor {
	defaultExecutorOnce.Do(func() {
		defaultExecutor = NewExecutor(ExecutorOptions{})
	})
	return defaultExecutor
}

// NewExecutor creates an Executor with the given options, filling in
// defaults. The underlying pool is not created until the first Execute.
func NewExecutor(opts ExecutorOptions) *Executor {
	if opts.CoreThreads <= 0 {
		opts.CoreThreads = 16
	}
	if opts.MaxThreads <= 0 {
		opts.MaxThreads = opts.CoreThreads * 25
	}
	if opts.IdleTimeout <= 0 {
		opts.IdleTimeout = 60 * time.Second
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Metrics == nil {
		opts.Metrics = NopExecutorMetrics()
	}
	return &Executor{opts: opts}
}

// OnSameThread reports the executor's current inline-execution setting.
func (e *Executor) OnSameThread() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.opts.OnSameThread
}

// SetOnSameThread updates the inline-execution setting for the next pool
// creation. It takes effect immediately if the pool has not been created
// yet, or after the next Shutdown.
func (e *Executor) SetOnSameThread(v bool) {
	e.mu.Lock()
	e.opts.OnSameThread = v
	e.mu.Unlock()
}

// SetCoreThreads updates the core worker count for the next pool creation.
// It takes effect after the next Shutdown; it does not resize a pool that
// is already running.
func (e *Executor) SetCoreThreads(n int) {
	e.mu.Lock()
	e.opts.CoreThreads = n
	e.mu.Unlock()
}

// SetMaxThreads updates the burst ceiling for the next pool creation. It
// takes effect after the next Shutdown.
func (e *Executor) SetMaxThreads(n int) {
	e.mu.Lock()
	e.opts.MaxThreads = n
	e.mu.Unlock()
}

// SetIdleTimeout updates the burst-worker idle timeout for the next pool
// creation. It takes effect after the next Shutdown.
func (e *Executor) SetIdleTimeout(d time.Duration) {
	e.mu.Lock()
	e.opts.IdleTimeout = d
	e.mu.Unlock()
}

// Execute schedules work for asynchronous execution and returns
// immediately. If the pool is uninitialized, it is initialized under a
// lock before submission. If OnSameThread is set and no pool is running,
// work runs inline on the caller instead.
func (e *Executor) Execute(work func()) {
	e.mu.Lock()
	if e.opts.OnSameThread && !e.started {
		e.mu.Unlock()
		e.runProtected(work)
		return
	}
	if !e.started {
		e.initLocked()
	}
	pool := e.pool
	e.mu.Unlock()

	pool.Submit(func() { e.runProtected(work) })
}

// Shutdown gracefully terminates workers and marks the executor
// uninitialized so the next Execute re-creates the pool from the
// then-current options.
func (e *Executor) Shutdown() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.started {
		return
	}
	e.pool.Close()
	e.pool = nil
	e.started = false
}

func (e *Executor) initLocked() {
	if e.opts.Factory != nil {
		e.pool = e.opts.Factory(e.opts)
	} else {
		e.pool = newElasticPool(e.opts)
	}
	e.started = true
}

// runProtected invokes work with panic recovery: any exception thrown by a
// submitted work unit is caught here and logged, never propagating up to
// kill a worker.
func (e *Executor) runProtected(work func()) {
	timer := e.opts.Metrics.TaskDuration()
	defer timer.ObserveDuration()
	defer func() {
		if r := recover(); r != nil {
			e.opts.Metrics.TaskPanic()
			e.opts.Logger.Error("executor: work unit panicked",
				slog.Any("recovered", r),
				slog.String("stack", string(debug.Stack())),
			)
		}
	}()
	work()
}

// elasticPool is the built-in WorkerPool implementation: CoreThreads goroutines
// permanently drain a work queue; when the queue is momentarily full,
// temporary burst workers run the submitted task directly and then loop
// pulling further work from the queue for up to IdleTimeout before
// exiting, bounding total concurrency at MaxThreads.
type elasticPool struct {
	queue   chan func()
	stop    chan struct{}
	wg      sync.WaitGroup
	running atomic.Int64
	live    atomic.Int64
	max     int64
	idle    time.Duration
	metrics ExecutorMetrics
}

func newElasticPool(opts ExecutorOptions) *elasticPool {
	p := &elasticPool{
		queue:   make(chan func(), opts.CoreThreads*4),
		stop:    make(chan struct{}),
		max:     int64(opts.MaxThreads),
		idle:    opts.IdleTimeout,
		metrics: opts.Metrics,
	}
	for i := 0; i < opts.CoreThreads; i++ {
		p.spawnCore()
	}
	return p
}

func (p *elasticPool) spawnCore() {
	p.wg.Add(1)
	p.metrics.PoolSize(int(p.live.Add(1)))
	go func() {
		defer func() {
			p.metrics.PoolSize(int(p.live.Add(-1)))
			p.wg.Done()
		}()
		for {
			select {
			case <-p.stop:
				return
			case w := <-p.queue:
				p.runTracked(w)
			}
		}
	}()
}

func (p *elasticPool) runTracked(w func()) {
	p.running.Add(1)
	p.metrics.ActiveWorkers(int(p.running.Load()))
	defer func() {
		p.running.Add(-1)
		p.metrics.ActiveWorkers(int(p.running.Load()))
	}()
	w()
}

// Submit enqueues work, spawning a temporary burst worker bounded by
// MaxThreads if the queue would otherwise block.
func (p *elasticPool) Submit(work func()) {
	select {
	case p.queue <- work:
		return
	default:
	}

	if p.max <= 0 || p.running.Load() < p.max {
		p.wg.Add(1)
		p.metrics.PoolSize(int(p.live.Add(1)))
		go p.burst(work)
		return
	}

	// At the concurrency ceiling: block until a slot frees up.
	select {
	case p.queue <- work:
	case <-p.stop:
	}
}

func (p *elasticPool) burst(work func()) {
	defer func() {
		p.metrics.PoolSize(int(p.live.Add(-1)))
		p.wg.Done()
	}()
	p.runTracked(work)
	for {
		select {
		case <-p.stop:
			return
		case w, ok := <-p.queue:
			if !ok {
				return
			}
			p.runTracked(w)
		case <-time.After(p.idle):
			return
		}
	}
}

func (p *elasticPool) Close() {
	close(p.stop)
	p.wg.Wait()
}
