package httpaudit

import (
	"context"
	"io"
	"log/slog"
	"sync"

	audit "eligibility/pkg/platform/audit"
)

type captureEmitter struct {
	mu      sync.Mutex
	records []audit.Record
}

func (c *captureEmitter) Emit(_ context.Context, r audit.Record) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.records = append(c.records, r)
}

func (c *captureEmitter) all() []audit.Record {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]audit.Record(nil), c.records...)
}

type panicEmitter struct{}

func (panicEmitter) Emit(context.Context, audit.Record) {
	panic("emitter exploded")
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func fixedID(id string) Option {
	return WithIDGenerator(func() string { return id })
}
