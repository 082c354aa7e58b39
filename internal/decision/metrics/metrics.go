package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the decision module.
type Metrics struct {
	// Upstream lookup latencies by source
	UpstreamLatency *prometheus.HistogramVec

	// Decision outcomes by persisted result
	DecisionOutcome *prometheus.CounterVec

	// Decision rows that could not be written
	PersistFailures prometheus.Counter

	// Overall evaluation latency
	EvaluateLatency prometheus.Histogram
}

// New creates a new Metrics instance registered with reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		UpstreamLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "eligibility_decision_upstream_duration_seconds",
			Help:    "Duration of upstream lookups by source",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"source"}), // source: "accounts", "clients"

		DecisionOutcome: f.NewCounterVec(prometheus.CounterOpts{
			Name: "eligibility_decision_outcomes_total",
			Help: "Total decision outcomes by result",
		}, []string{"result"}),

		PersistFailures: f.NewCounter(prometheus.CounterOpts{
			Name: "eligibility_decision_persist_failures_total",
			Help: "Total number of decision rows that failed to persist",
		}),

		EvaluateLatency: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "eligibility_decision_evaluate_duration_seconds",
			Help:    "Duration of full evaluation including upstream lookups",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
	}
}

// ObserveUpstreamLatency records the duration of one upstream lookup.
func (m *Metrics) ObserveUpstreamLatency(source string, d time.Duration) {
	if m != nil {
		m.UpstreamLatency.WithLabelValues(source).Observe(d.Seconds())
	}
}

// IncrementOutcome records a decision outcome.
func (m *Metrics) IncrementOutcome(result string) {
	if m != nil {
		m.DecisionOutcome.WithLabelValues(result).Inc()
	}
}

func (m *Metrics) IncrementPersistFailures() {
	if m != nil {
		m.PersistFailures.Inc()
	}
}

// ObserveEvaluateLatency records the total evaluation duration.
func (m *Metrics) ObserveEvaluateLatency(d time.Duration) {
	if m != nil {
		m.EvaluateLatency.Observe(d.Seconds())
	}
}
