package actor

import "github.com/codewandler/actorkit/core/metrics"

// ActorMetrics defines the metrics interface for per-actor instrumentation.
// All methods are thread-safe. Implementations are pluggable; see
// adapters/prometheus for a Prometheus-backed one.
type ActorMetrics interface {
	// MessageDuration starts a timer for handling a message of the given
	// type name.
	MessageDuration(msgType string) metrics.Timer
	// MessageProcessed records the outcome of handling one message.
	MessageProcessed(msgType string, success bool)
	// MessagePanic records an unhandled exception that terminated a drain.
	MessagePanic(msgType string)
	// MailboxDepth reports the current mailbox queue depth for an actor.
	MailboxDepth(actorName string, depth int)
}

// ExecutorMetrics defines the metrics interface for the shared Executor
// pool.
type ExecutorMetrics interface {
	// PoolSize reports the current number of live worker goroutines.
	PoolSize(count int)
	// ActiveWorkers reports the number of workers currently running a
	// task.
	ActiveWorkers(count int)
	// TaskDuration starts a timer for one submitted work unit.
	TaskDuration() metrics.Timer
	// TaskPanic records a work unit that panicked at the worker boundary.
	TaskPanic()
}

type nopActorMetrics struct{}

func (nopActorMetrics) MessageDuration(string) metrics.Timer { return metrics.NopTimer() }
func (nopActorMetrics) MessageProcessed(string, bool)        {}
func (nopActorMetrics) MessagePanic(string)                  {}
func (nopActorMetrics) MailboxDepth(string, int)             {}

// NopActorMetrics returns a no-op ActorMetrics implementation.
func NopActorMetrics() ActorMetrics { return nopActorMetrics{} }

type nopExecutorMetrics struct{}

func (nopExecutorMetrics) PoolSize(int)                     {}
func (nopExecutorMetrics) ActiveWorkers(int)                {}
func (nopExecutorMetrics) TaskDuration() metrics.Timer      { return metrics.NopTimer() }
func (nopExecutorMetrics) TaskPanic()                       {}

// NopExecutorMetrics returns a no-op ExecutorMetrics implementation.
func NopExecutorMetrics() ExecutorMetrics { return nopExecutorMetrics{} }
