package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	audit "eligibility/pkg/platform/audit"
)

// InMemoryStore keeps audit records in insertion order. It backs local runs
// without a database and the publisher tests.
type InMemoryStore struct {
	mu      sync.RWMutex
	records []audit.Record
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

func (s *InMemoryStore) Append(_ context.Context, record audit.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, record)
	return nil
}

func (s *InMemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = nil
}

// ListAll returns a copy of every stored record.
func (s *InMemoryStore) ListAll(_ context.Context) ([]audit.Record, error) {
	return s.filter(func(audit.Record) bool { return true }), nil
}

func (s *InMemoryStore) ListByCorrelationID(_ context.Context, correlationID string) ([]audit.Record, error) {
	return s.filter(func(r audit.Record) bool {
		return r.CorrelationID != nil && *r.CorrelationID == correlationID
	}), nil
}

func (s *InMemoryStore) ListByRequestIDs(_ context.Context, requestIDs []string) ([]audit.Record, error) {
	return s.filter(func(r audit.Record) bool {
		return slices.Contains(requestIDs, r.RequestID)
	}), nil
}

func (s *InMemoryStore) ListFailed(_ context.Context) ([]audit.Record, error) {
	return s.filter(func(r audit.Record) bool { return !r.Success }), nil
}

func (s *InMemoryStore) ListByAPINameBetween(_ context.Context, api audit.APIName, from, to time.Time) ([]audit.Record, error) {
	return s.filter(func(r audit.Record) bool {
		return r.APIName == api && !r.CreatedAt.Before(from) && !r.CreatedAt.After(to)
	}), nil
}

func (s *InMemoryStore) filter(keep func(audit.Record) bool) []audit.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []audit.Record{}
	for _, r := range s.records {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}
