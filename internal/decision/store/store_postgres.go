package store

import (
	"context"
	"database/sql"
	"fmt"

	"eligibility/internal/decision"

	"github.com/lib/pq"
)

// PostgresStore implements decision.Store and decision.Reader on the
// eligibility table.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Save(ctx context.Context, d decision.Decision) error {
	var correlationID *string
	if d.CorrelationID != "" {
		correlationID = &d.CorrelationID
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO eligibility (client_id, correlation_id, result, checked_at)
		VALUES ($1, $2, $3, $4)
	`, d.ClientID, correlationID, string(d.Result), d.CheckedAt)
	if err != nil {
		return fmt.Errorf("insert eligibility decision: %w", err)
	}
	return nil
}

const selectDecisions = `SELECT client_id, correlation_id, result, checked_at FROM eligibility `

func (s *PostgresStore) ListByClientID(ctx context.Context, clientID string) ([]decision.Decision, error) {
	return s.query(ctx, selectDecisions+`WHERE client_id = $1 ORDER BY checked_at, id`, clientID)
}

func (s *PostgresStore) ListByCorrelationID(ctx context.Context, correlationID string) ([]decision.Decision, error) {
	return s.query(ctx, selectDecisions+`WHERE correlation_id = $1 ORDER BY checked_at, id`, correlationID)
}

// ListByResults returns decisions whose result is any of results.
func (s *PostgresStore) ListByResults(ctx context.Context, results []decision.Result) ([]decision.Decision, error) {
	if len(results) == 0 {
		return []decision.Decision{}, nil
	}
	names := make([]string, len(results))
	for i, r := range results {
		names[i] = string(r)
	}
	return s.query(ctx, selectDecisions+`WHERE result = ANY($1) ORDER BY checked_at, id`, pq.Array(names))
}

func (s *PostgresStore) query(ctx context.Context, query string, args ...any) ([]decision.Decision, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query eligibility decisions: %w", err)
	}
	defer rows.Close()

	out := []decision.Decision{}
	for rows.Next() {
		var (
			d             decision.Decision
			correlationID sql.NullString
			result        string
		)
		if err := rows.Scan(&d.ClientID, &correlationID, &result, &d.CheckedAt); err != nil {
			return nil, fmt.Errorf("scan eligibility decision: %w", err)
		}
		d.CorrelationID = correlationID.String
		d.Result = decision.Result(result)
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate eligibility decisions: %w", err)
	}
	return out, nil
}
