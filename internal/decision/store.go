package decision

import "context"

// Store appends decisions. Rows are never updated or deduplicated.
type Store interface {
	Save(ctx context.Context, d Decision) error
}

// Reader queries the decision log, oldest first.
type Reader interface {
	ListByClientID(ctx context.Context, clientID string) ([]Decision, error)
	ListByCorrelationID(ctx context.Context, correlationID string) ([]Decision, error)
	ListByResults(ctx context.Context, results []Result) ([]Decision, error)
}
