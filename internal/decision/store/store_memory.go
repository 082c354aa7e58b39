package store

import (
	"context"
	"slices"
	"sync"

	"eligibility/internal/decision"
)

// InMemoryStore keeps decisions in insertion order.
type InMemoryStore struct {
	mu        sync.RWMutex
	decisions []decision.Decision
}

func NewInMemory() *InMemoryStore {
	return &InMemoryStore{}
}

func (s *InMemoryStore) Save(_ context.Context, d decision.Decision) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.decisions = append(s.decisions, d)
	return nil
}

// All returns every stored decision.
func (s *InMemoryStore) All() []decision.Decision {
	return s.filter(func(decision.Decision) bool { return true })
}

func (s *InMemoryStore) ListByClientID(_ context.Context, clientID string) ([]decision.Decision, error) {
	return s.filter(func(d decision.Decision) bool { return d.ClientID == clientID }), nil
}

func (s *InMemoryStore) ListByCorrelationID(_ context.Context, correlationID string) ([]decision.Decision, error) {
	return s.filter(func(d decision.Decision) bool { return d.CorrelationID == correlationID }), nil
}

func (s *InMemoryStore) ListByResults(_ context.Context, results []decision.Result) ([]decision.Decision, error) {
	return s.filter(func(d decision.Decision) bool { return slices.Contains(results, d.Result) }), nil
}

func (s *InMemoryStore) filter(keep func(decision.Decision) bool) []decision.Decision {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []decision.Decision{}
	for _, d := range s.decisions {
		if keep(d) {
			out = append(out, d)
		}
	}
	return out
}
