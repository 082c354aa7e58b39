package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	audit "eligibility/pkg/platform/audit"

	"github.com/lib/pq"
)

// Store implements audit.Store and audit.Reader on the audit_logs table.
type Store struct {
	db *sql.DB
}

// New creates a PostgreSQL audit store.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

const selectColumns = `
	SELECT request_id, api_name, method, url, request_headers, request_body,
		   response_status, response_headers, response_body, execution_time_ms,
		   success, error_message, exception_name, correlation_id, user_id, created_at
	FROM audit_logs
`

// Append inserts one record. Records are never updated.
func (s *Store) Append(ctx context.Context, r audit.Record) error {
	query := `
		INSERT INTO audit_logs (
			request_id, api_name, method, url, request_headers, request_body,
			response_status, response_headers, response_body, execution_time_ms,
			success, error_message, exception_name, correlation_id, user_id, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`
	createdAt := r.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx, query,
		r.RequestID,
		string(r.APIName),
		r.Method,
		r.URL,
		r.RequestHeaders,
		r.RequestBody,
		r.ResponseStatus,
		r.ResponseHeaders,
		r.ResponseBody,
		r.ExecutionTimeMs,
		r.Success,
		r.ErrorMessage,
		r.ExceptionName,
		r.CorrelationID,
		r.UserID,
		createdAt,
	)
	if err != nil {
		return fmt.Errorf("insert audit log: %w", err)
	}
	return nil
}

func (s *Store) ListByCorrelationID(ctx context.Context, correlationID string) ([]audit.Record, error) {
	return s.query(ctx, selectColumns+`WHERE correlation_id = $1 ORDER BY created_at, id`, correlationID)
}

// ListByRequestIDs returns the records whose request id is in requestIDs.
func (s *Store) ListByRequestIDs(ctx context.Context, requestIDs []string) ([]audit.Record, error) {
	if len(requestIDs) == 0 {
		return []audit.Record{}, nil
	}
	return s.query(ctx, selectColumns+`WHERE request_id = ANY($1) ORDER BY created_at, id`, pq.Array(requestIDs))
}

func (s *Store) ListFailed(ctx context.Context) ([]audit.Record, error) {
	return s.query(ctx, selectColumns+`WHERE success = FALSE ORDER BY created_at, id`)
}

// ListByAPINameBetween returns records for api created within [from, to].
func (s *Store) ListByAPINameBetween(ctx context.Context, api audit.APIName, from, to time.Time) ([]audit.Record, error) {
	return s.query(ctx,
		selectColumns+`WHERE api_name = $1 AND created_at BETWEEN $2 AND $3 ORDER BY created_at, id`,
		string(api), from, to,
	)
}

func (s *Store) query(ctx context.Context, query string, args ...any) ([]audit.Record, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query audit logs: %w", err)
	}
	defer rows.Close()

	records := []audit.Record{}
	for rows.Next() {
		var (
			r       audit.Record
			apiName string
			status  sql.NullInt32
		)
		err := rows.Scan(
			&r.RequestID,
			&apiName,
			&r.Method,
			&r.URL,
			&r.RequestHeaders,
			&r.RequestBody,
			&status,
			&r.ResponseHeaders,
			&r.ResponseBody,
			&r.ExecutionTimeMs,
			&r.Success,
			&r.ErrorMessage,
			&r.ExceptionName,
			&r.CorrelationID,
			&r.UserID,
			&r.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan audit log: %w", err)
		}
		r.APIName = audit.APIName(apiName)
		if status.Valid {
			v := int(status.Int32)
			r.ResponseStatus = &v
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit logs: %w", err)
	}
	return records, nil
}
