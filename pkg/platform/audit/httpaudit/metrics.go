package httpaudit

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	DirectionInbound  = "inbound"
	DirectionOutbound = "outbound"
)

// Metrics counts audited exchanges by direction, API and outcome.
type Metrics struct {
	Exchanges *prometheus.CounterVec
	Duration  *prometheus.HistogramVec
}

// NewMetrics registers exchange metrics with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Exchanges: f.NewCounterVec(prometheus.CounterOpts{
			Name: "eligibility_http_exchanges_total",
			Help: "Total number of audited HTTP exchanges",
		}, []string{"direction", "api_name", "outcome"}),
		Duration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "eligibility_http_exchange_duration_seconds",
			Help:    "Duration of audited HTTP exchanges",
			Buckets: prometheus.DefBuckets,
		}, []string{"direction", "api_name"}),
	}
}

func (m *Metrics) observe(direction, api, outcome string, seconds float64) {
	if m == nil {
		return
	}
	m.Exchanges.WithLabelValues(direction, api, outcome).Inc()
	m.Duration.WithLabelValues(direction, api).Observe(seconds)
}

func outcome(success bool, hasResponse bool) string {
	switch {
	case success:
		return "success"
	case hasResponse:
		return "error_status"
	default:
		return "transport_error"
	}
}
