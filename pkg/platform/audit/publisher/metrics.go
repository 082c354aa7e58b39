package publisher

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Drop reasons used as the "reason" label of the dropped counter.
const (
	DropQueueFull = "queue_full"
	DropClosed    = "closed"
)

// Metrics holds Prometheus metrics for the audit publisher.
type Metrics struct {
	Enqueued        prometheus.Counter
	Dropped         *prometheus.CounterVec
	Persisted       prometheus.Counter
	PersistFailures prometheus.Counter
	PersistDuration prometheus.Histogram
	QueueDepth      prometheus.Gauge
}

// NewMetrics registers the publisher metrics with reg. Pass
// prometheus.DefaultRegisterer in main and a fresh registry in tests.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Enqueued: f.NewCounter(prometheus.CounterOpts{
			Name: "eligibility_audit_enqueued_total",
			Help: "Total number of audit records accepted into the publisher queue",
		}),
		Dropped: f.NewCounterVec(prometheus.CounterOpts{
			Name: "eligibility_audit_dropped_total",
			Help: "Total number of audit records dropped before persistence",
		}, []string{"reason"}),
		Persisted: f.NewCounter(prometheus.CounterOpts{
			Name: "eligibility_audit_persisted_total",
			Help: "Total number of audit records written to the store",
		}),
		PersistFailures: f.NewCounter(prometheus.CounterOpts{
			Name: "eligibility_audit_persist_failures_total",
			Help: "Total number of audit record persistence failures",
		}),
		PersistDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "eligibility_audit_persist_duration_seconds",
			Help:    "Time spent writing one audit record to the store",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}),
		QueueDepth: f.NewGauge(prometheus.GaugeOpts{
			Name: "eligibility_audit_queue_depth",
			Help: "Number of audit records waiting for a worker",
		}),
	}
}

func (m *Metrics) IncEnqueued() {
	if m == nil {
		return
	}
	m.Enqueued.Inc()
}

func (m *Metrics) IncDropped(reason string) {
	if m == nil {
		return
	}
	m.Dropped.WithLabelValues(reason).Inc()
}

func (m *Metrics) ObservePersisted(seconds float64) {
	if m == nil {
		return
	}
	m.Persisted.Inc()
	m.PersistDuration.Observe(seconds)
}

func (m *Metrics) IncPersistFailures() {
	if m == nil {
		return
	}
	m.PersistFailures.Inc()
}

func (m *Metrics) SetQueueDepth(n int) {
	if m == nil {
		return
	}
	m.QueueDepth.Set(float64(n))
}
