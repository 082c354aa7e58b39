package admin

import (
	"time"

	"eligibility/internal/decision"
	audit "eligibility/pkg/platform/audit"
)

// AuditLogResponse is the HTTP response DTO for one audit record.
type AuditLogResponse struct {
	RequestID       string    `json:"requestId"`
	APIName         string    `json:"apiName"`
	Method          string    `json:"method"`
	URL             string    `json:"url"`
	RequestHeaders  string    `json:"requestHeaders"`
	RequestBody     *string   `json:"requestBody"`
	ResponseStatus  *int      `json:"responseStatus"`
	ResponseHeaders *string   `json:"responseHeaders"`
	ResponseBody    *string   `json:"responseBody"`
	ExecutionTimeMs int64     `json:"executionTimeMs"`
	Success         bool      `json:"success"`
	ErrorMessage    *string   `json:"errorMessage"`
	ExceptionName   *string   `json:"exceptionName"`
	CorrelationID   *string   `json:"correlationId"`
	UserID          string    `json:"userId"`
	CreatedAt       time.Time `json:"createdAt"`
}

// DecisionResponse is the HTTP response DTO for one eligibility decision.
type DecisionResponse struct {
	ClientID      string    `json:"clientId"`
	CorrelationID string    `json:"correlationId,omitempty"`
	Result        string    `json:"result"`
	CheckedAt     time.Time `json:"checkedAt"`
}

func toAuditLogs(records []audit.Record) []AuditLogResponse {
	out := make([]AuditLogResponse, len(records))
	for i, r := range records {
		out[i] = AuditLogResponse{
			RequestID:       r.RequestID,
			APIName:         string(r.APIName),
			Method:          r.Method,
			URL:             r.URL,
			RequestHeaders:  r.RequestHeaders,
			RequestBody:     r.RequestBody,
			ResponseStatus:  r.ResponseStatus,
			ResponseHeaders: r.ResponseHeaders,
			ResponseBody:    r.ResponseBody,
			ExecutionTimeMs: r.ExecutionTimeMs,
			Success:         r.Success,
			ErrorMessage:    r.ErrorMessage,
			ExceptionName:   r.ExceptionName,
			CorrelationID:   r.CorrelationID,
			UserID:          r.UserID,
			CreatedAt:       r.CreatedAt,
		}
	}
	return out
}

func toDecisions(decisions []decision.Decision) []DecisionResponse {
	out := make([]DecisionResponse, len(decisions))
	for i, d := range decisions {
		out[i] = DecisionResponse{
			ClientID:      d.ClientID,
			CorrelationID: d.CorrelationID,
			Result:        string(d.Result),
			CheckedAt:     d.CheckedAt,
		}
	}
	return out
}
