// Package httpaudit records every HTTP exchange crossing the service boundary.
//
// Middleware audits inbound requests and must wrap the whole handler chain.
// Transport audits outbound calls made through an http.Client. Both build one
// audit.Record per exchange and hand it to an audit.Emitter; neither lets a
// failure in audit bookkeeping change what the caller sees.
package httpaudit

import (
	"log/slog"
	"net/http"
	"time"

	audit "eligibility/pkg/platform/audit"

	"github.com/google/uuid"
)

// HeaderCorrelationID carries the caller's correlation id in and out.
const HeaderCorrelationID = "correlation-id"

type options struct {
	logger  *slog.Logger
	metrics *Metrics
	now     func() time.Time
	newID   func() string
	base    http.RoundTripper
	hosts   map[string]audit.APIName
}

// Option configures Middleware and Transport.
type Option func(*options)

// WithLogger sets the logger used for exchange summaries and audit failures.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithMetrics sets the exchange metrics collector.
func WithMetrics(m *Metrics) Option {
	return func(o *options) {
		o.metrics = m
	}
}

// WithClock overrides the clock used to measure execution time.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

// WithIDGenerator overrides request id generation.
func WithIDGenerator(newID func() string) Option {
	return func(o *options) {
		o.newID = newID
	}
}

// WithBase sets the RoundTripper a Transport delegates to.
func WithBase(rt http.RoundTripper) Option {
	return func(o *options) {
		o.base = rt
	}
}

// WithHost maps an outbound host name (without port) to an API name.
func WithHost(host string, api audit.APIName) Option {
	return func(o *options) {
		o.hosts[host] = api
	}
}

// DefaultHosts is the built-in host table for outbound calls.
func DefaultHosts() map[string]audit.APIName {
	return map[string]audit.APIName{
		"accounts.cluster.domain.cz": audit.APIAccountsServer,
		"clients.cluster.domain.cz":  audit.APIClientsServer,
	}
}

func newOptions(opts []Option) options {
	o := options{
		logger: slog.Default(),
		now:    time.Now,
		newID:  uuid.NewString,
		base:   http.DefaultTransport,
		hosts:  DefaultHosts(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
