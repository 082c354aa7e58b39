package audit

import (
	"context"
	"errors"
	"time"
)

// Reader queries persisted records. Results are ordered by CreatedAt ascending.
type Reader interface {
	ListByCorrelationID(ctx context.Context, correlationID string) ([]Record, error)
	ListByRequestIDs(ctx context.Context, requestIDs []string) ([]Record, error)
	ListFailed(ctx context.Context) ([]Record, error)
	ListByAPINameBetween(ctx context.Context, api APIName, from, to time.Time) ([]Record, error)
}

// MultiStore appends each record to every store in order. A failing store
// does not stop the remaining ones; all failures are joined.
type MultiStore []Store

func (m MultiStore) Append(ctx context.Context, record Record) error {
	var errs []error
	for _, s := range m {
		if err := s.Append(ctx, record); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
