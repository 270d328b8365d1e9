package prometheus

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/codewandler/actorkit/core/actor"
	"github.com/codewandler/actorkit/core/metrics"
)

// actorMetrics implements actor.ActorMetrics using Prometheus.
type actorMetrics struct {
	messageDuration *prometheus.HistogramVec
	messagesTotal   *prometheus.CounterVec
	panicTotal      *prometheus.CounterVec
	mailboxDepth    *prometheus.GaugeVec
}

// NewActorMetrics creates a new Prometheus implementation of actor.ActorMetrics.
func NewActorMetrics(reg prometheus.Registerer) actor.ActorMetrics {
	m := &actorMetrics{
		messageDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "actorkit_message_duration_seconds",
			Help:    "Message handling time in seconds",
			Buckets: defaultBuckets,
		}, []string{"message_type"}),

		messagesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "actorkit_messages_total",
			Help: "Total number of messages processed",
		}, []string{"message_type", "success"}),

		panicTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "actorkit_panics_total",
			Help: "Total number of handler exceptions that terminated a drain",
		}, []string{"message_type"}),

		mailboxDepth: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "actorkit_mailbox_depth",
			Help: "Current mailbox queue depth",
		}, []string{"actor"}),
	}

	reg.MustRegister(
		m.messageDuration,
		m.messagesTotal,
		m.panicTotal,
		m.mailboxDepth,
	)

	return m
}

func (m *actorMetrics) MessageDuration(msgType string) metrics.Timer {
	return newTimer(m.messageDuration.WithLabelValues(msgType))
}

func (m *actorMetrics) MessageProcessed(msgType string, success bool) {
	m.messagesTotal.WithLabelValues(msgType, boolToStr(success)).Inc()
}

func (m *actorMetrics) MessagePanic(msgType string) {
	m.panicTotal.WithLabelValues(msgType).Inc()
}

func (m *actorMetrics) MailboxDepth(actorName string, depth int) {
	m.mailboxDepth.WithLabelValues(actorName).Set(float64(depth))
}

var _ actor.ActorMetrics = (*actorMetrics)(nil)

// executorMetrics implements actor.ExecutorMetrics using Prometheus.
type executorMetrics struct {
	poolSize      prometheus.Gauge
	activeWorkers prometheus.Gauge
	taskDuration  prometheus.Histogram
	taskPanics    prometheus.Counter
}

// NewExecutorMetrics creates a new Prometheus implementation of actor.ExecutorMetrics.
func NewExecutorMetrics(reg prometheus.Registerer) actor.ExecutorMetrics {
	m := &executorMetrics{
		poolSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "actorkit_executor_pool_size",
			Help: "Number of live worker goroutines",
		}),
		activeWorkers: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "actorkit_executor_active_workers",
			Help: "Number of workers currently running a task",
		}),
		taskDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "actorkit_executor_task_duration_seconds",
			Help:    "Submitted work unit duration in seconds",
			Buckets: defaultBuckets,
		}),
		taskPanics: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "actorkit_executor_task_panics_total",
			Help: "Total number of work units that panicked at the worker boundary",
		}),
	}

	reg.MustRegister(m.poolSize, m.activeWorkers, m.taskDuration, m.taskPanics)

	return m
}

func (m *executorMetrics) PoolSize(count int)      { m.poolSize.Set(float64(count)) }
func (m *executorMetrics) ActiveWorkers(count int) { m.activeWorkers.Set(float64(count)) }
func (m *executorMetrics) TaskDuration() metrics.Timer {
	return newTimer(m.taskDuration)
}
func (m *executorMetrics) TaskPanic() { m.taskPanics.Inc() }

var _ actor.ExecutorMetrics = (*executorMetrics)(nil)
