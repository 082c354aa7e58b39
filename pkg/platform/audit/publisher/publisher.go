// Package publisher provides a best-effort, non-blocking audit publisher.
//
// Emit places the record on a bounded queue and returns immediately. A fixed
// pool of workers drains the queue into the configured store. When the queue
// is full or the publisher has been closed the record is dropped, counted and
// logged; the caller never waits and never sees the failure.
//
// Records are written at most once. Store failures are logged and discarded.
package publisher

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	audit "eligibility/pkg/platform/audit"
	"eligibility/pkg/platform/sentinel"

	"golang.org/x/sync/errgroup"
)

const (
	defaultWorkers    = 4
	defaultBufferSize = 1024
)

type task struct {
	ctx    context.Context
	record audit.Record
}

// Publisher implements audit.Emitter on top of an audit.Store.
type Publisher struct {
	store      audit.Store
	logger     *slog.Logger
	metrics    *Metrics
	now        func() time.Time
	workers    int
	bufferSize int

	mu     sync.RWMutex
	closed bool
	queue  chan task
	group  *errgroup.Group
	once   sync.Once
}

// Option configures the Publisher.
type Option func(*Publisher)

// WithWorkers sets the number of persistence workers.
func WithWorkers(n int) Option {
	return func(p *Publisher) {
		if n > 0 {
			p.workers = n
		}
	}
}

// WithBufferSize sets the queue capacity.
func WithBufferSize(n int) Option {
	return func(p *Publisher) {
		if n > 0 {
			p.bufferSize = n
		}
	}
}

// WithLogger sets a logger for drop and failure reporting.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Publisher) {
		p.logger = logger
	}
}

// WithMetrics sets the metrics collector.
func WithMetrics(m *Metrics) Option {
	return func(p *Publisher) {
		p.metrics = m
	}
}

// WithClock overrides the clock used to stamp CreatedAt.
func WithClock(now func() time.Time) Option {
	return func(p *Publisher) {
		p.now = now
	}
}

// New creates a publisher and starts its workers.
func New(store audit.Store, opts ...Option) *Publisher {
	p := &Publisher{
		store:      store,
		logger:     slog.Default(),
		now:        time.Now,
		workers:    defaultWorkers,
		bufferSize: defaultBufferSize,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.queue = make(chan task, p.bufferSize)
	p.group = &errgroup.Group{}
	for range p.workers {
		p.group.Go(p.run)
	}
	return p
}

// Emit schedules record for persistence. It never blocks and never fails:
// a rejected record is counted and logged.
func (p *Publisher) Emit(ctx context.Context, record audit.Record) {
	_ = p.TryEmit(ctx, record)
}

// TryEmit is Emit that reports rejection: sentinel.ErrQueueFull or
// sentinel.ErrClosed. The record is already counted as dropped when it
// returns an error.
//
// The task keeps ctx's values but not its cancellation, so a finished request
// does not abort a write that has already been accepted.
func (p *Publisher) TryEmit(ctx context.Context, record audit.Record) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		p.drop(ctx, record, DropClosed)
		return sentinel.ErrClosed
	}

	select {
	case p.queue <- task{ctx: context.WithoutCancel(ctx), record: record}:
		p.metrics.IncEnqueued()
		p.metrics.SetQueueDepth(len(p.queue))
		return nil
	default:
		p.drop(ctx, record, DropQueueFull)
		return sentinel.ErrQueueFull
	}
}

// Close stops accepting records and waits until every queued record has been
// handed to the store. Safe to call more than once.
func (p *Publisher) Close() error {
	p.once.Do(func() {
		p.mu.Lock()
		p.closed = true
		close(p.queue)
		p.mu.Unlock()
	})
	return p.group.Wait()
}

// Shutdown is Close bounded by ctx. Workers keep draining in the background
// if ctx expires first.
func (p *Publisher) Shutdown(ctx context.Context) error {
	done := make(chan error, 1)
	go func() { done <- p.Close() }()
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return fmt.Errorf("audit publisher drain: %w", ctx.Err())
	}
}

func (p *Publisher) run() error {
	for t := range p.queue {
		p.metrics.SetQueueDepth(len(p.queue))
		p.persist(t.ctx, t.record)
	}
	return nil
}

func (p *Publisher) persist(ctx context.Context, record audit.Record) {
	defer func() {
		if r := recover(); r != nil {
			p.metrics.IncPersistFailures()
			p.logger.ErrorContext(ctx, "audit store panicked",
				"request_id", record.RequestID,
				"panic", fmt.Sprint(r),
			)
		}
	}()

	record = record.Truncated()
	if record.CreatedAt.IsZero() {
		record.CreatedAt = p.now()
	}

	start := time.Now()
	if err := p.store.Append(ctx, record); err != nil {
		p.metrics.IncPersistFailures()
		p.logger.ErrorContext(ctx, "failed to persist audit record",
			"request_id", record.RequestID,
			"api_name", string(record.APIName),
			"error", err,
		)
		return
	}
	p.metrics.ObservePersisted(time.Since(start).Seconds())
	p.logger.DebugContext(ctx, "audit record persisted",
		"request_id", record.RequestID,
		"api_name", string(record.APIName),
	)
}

func (p *Publisher) drop(ctx context.Context, record audit.Record, reason string) {
	p.metrics.IncDropped(reason)
	p.logger.WarnContext(ctx, "audit record dropped",
		"request_id", record.RequestID,
		"api_name", string(record.APIName),
		"reason", reason,
	)
}
