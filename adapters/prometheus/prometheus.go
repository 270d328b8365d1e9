// Package prometheus provides Prometheus-backed implementations of the
// actor package's ActorMetrics and ExecutorMetrics interfaces.
package prometheus

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/codewandler/actorkit/core/metrics"
)

// timer wraps a Prometheus histogram to implement the Timer interface.
type timer struct {
	h     prometheus.Observer
	start time.Time
}

func newTimer(h prometheus.Observer) metrics.Timer {
	return &timer{h: h, start: time.Now()}
}

func (t *timer) ObserveDuration() {
	t.h.Observe(time.Since(t.start).Seconds())
}

// Default histogram buckets for latency metrics (in seconds).
var defaultBuckets = []float64{
	.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10,
}

// AllMetrics holds Prometheus implementations for both the actor and
// executor metrics interfaces. Use this to initialize instrumentation for
// an application built on this package in one call.
type AllMetrics struct {
	Actor    *actorMetrics
	Executor *executorMetrics
}

// NewAllMetrics creates Prometheus metrics for both the actor and executor
// interfaces, registered against reg.
func NewAllMetrics(reg prometheus.Registerer) *AllMetrics {
	return &AllMetrics{
		Actor:    NewActorMetrics(reg).(*actorMetrics),
		Executor: NewExecutorMetrics(reg).(*executorMetrics),
	}
}

func boolToStr(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
