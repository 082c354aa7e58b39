package decision

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"eligibility/internal/decision/metrics"
	"eligibility/internal/decision/ports"
	"eligibility/pkg/requestcontext"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Service decides eligibility by fetching accounts, then the client profile,
// strictly in that order, and appending exactly one decision row per call.
type Service struct {
	accounts ports.AccountsPort
	clients  ports.ClientsPort
	store    Store
	logger   *slog.Logger
	metrics  *metrics.Metrics
	tracer   trace.Tracer
	now      func() time.Time
}

// Option configures the Service.
type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithClock overrides the clock used for age and CheckedAt. Without it the
// request-scoped time from requestcontext is used.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func NewService(accounts ports.AccountsPort, clients ports.ClientsPort, store Store, opts ...Option) *Service {
	s := &Service{
		accounts: accounts,
		clients:  clients,
		store:    store,
		logger:   slog.Default(),
		tracer:   otel.Tracer("eligibility/internal/decision"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Evaluate runs one evaluation. Every failure, including a panic in a
// collaborator, is recorded as an ERROR row and returned as *BusinessError.
func (s *Service) Evaluate(ctx context.Context, req EvaluateRequest) (outcome *Outcome, err error) {
	start := time.Now()
	ctx, span := s.tracer.Start(ctx, "decision.Evaluate",
		trace.WithAttributes(attribute.String("correlation_id", req.CorrelationID)),
	)
	defer span.End()
	defer func() {
		s.metrics.ObserveEvaluateLatency(time.Since(start))
	}()
	defer func() {
		if p := recover(); p != nil {
			outcome, err = nil, s.fail(ctx, span, req, fmt.Errorf("unexpected failure: %v", p))
		}
	}()

	s.stage(ctx, StageStarted, req)

	fetchStart := time.Now()
	accounts, err := s.accounts.ClientAccounts(ctx, req.ClientID, req.CorrelationID)
	s.metrics.ObserveUpstreamLatency("accounts", time.Since(fetchStart))
	if err != nil {
		return nil, s.fail(ctx, span, req, err)
	}
	s.stage(ctx, StageAccountsFetched, req, "accounts", len(accounts))

	fetchStart = time.Now()
	profile, err := s.clients.ClientDetail(ctx, req.ClientID, req.CorrelationID)
	s.metrics.ObserveUpstreamLatency("clients", time.Since(fetchStart))
	if err != nil {
		return nil, s.fail(ctx, span, req, err)
	}
	s.stage(ctx, StageDetailFetched, req)

	today := s.today(ctx)
	adult, err := IsAdult(profile.BirthDate, today)
	if err != nil {
		return nil, s.fail(ctx, span, req, err)
	}

	result := EvaluateEligibility(len(accounts) > 0, adult)
	if err := s.store.Save(ctx, NewDecision(req.ClientID, req.CorrelationID, result.Result(), today)); err != nil {
		s.metrics.IncrementPersistFailures()
		return nil, s.fail(ctx, span, req, fmt.Errorf("persist decision: %w", err))
	}

	s.metrics.IncrementOutcome(string(result.Result()))
	span.SetAttributes(attribute.String("decision.result", string(result.Result())))
	s.stage(ctx, StageDecided, req,
		"result", string(result.Result()),
		"reasons", result.Reasons,
	)
	return &result, nil
}

// fail records the ERROR row best-effort and builds the returned error.
func (s *Service) fail(ctx context.Context, span trace.Span, req EvaluateRequest, cause error) error {
	span.RecordError(cause)
	span.SetStatus(codes.Error, cause.Error())
	s.stage(ctx, StageErrored, req, "error", cause)

	saveCtx := context.WithoutCancel(ctx)
	if err := s.store.Save(saveCtx, NewDecision(req.ClientID, req.CorrelationID, ResultError, s.today(ctx))); err != nil {
		s.metrics.IncrementPersistFailures()
		s.logger.ErrorContext(ctx, "failed to persist error decision",
			"correlation_id", req.CorrelationID,
			"error", err,
		)
	}
	s.metrics.IncrementOutcome(string(ResultError))
	return newBusinessError(req.CorrelationID, cause)
}

func (s *Service) today(ctx context.Context) time.Time {
	if s.now != nil {
		return s.now()
	}
	return requestcontext.Now(ctx)
}

func (s *Service) stage(ctx context.Context, stage Stage, req EvaluateRequest, attrs ...any) {
	level := slog.LevelInfo
	if stage == StageErrored {
		level = slog.LevelError
	}
	base := []any{
		"stage", string(stage),
		"client_id", req.ClientID,
		"correlation_id", req.CorrelationID,
	}
	s.logger.Log(ctx, level, "eligibility evaluation", append(base, attrs...)...)
}
