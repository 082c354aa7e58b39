package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"eligibility/internal/decision"
	"eligibility/internal/upstream"
	dErrors "eligibility/pkg/domain-errors"
	"eligibility/pkg/platform/httputil"
	"eligibility/pkg/requestcontext"
)

// ErrorTranslator renders every failure reaching the HTTP boundary as the
// uniform error body. It is the only place errors become status codes.
type ErrorTranslator struct {
	logger *slog.Logger
	now    func() time.Time
}

// NewErrorTranslator returns a translator stamping errorTime from the
// request-scoped clock.
func NewErrorTranslator(logger *slog.Logger) *ErrorTranslator {
	if logger == nil {
		logger = slog.Default()
	}
	return &ErrorTranslator{logger: logger}
}

// WithClock fixes errorTime, for tests.
func (t *ErrorTranslator) WithClock(now func() time.Time) *ErrorTranslator {
	t.now = now
	return t
}

// Write translates err and writes the response. The correlation id is echoed
// when the error or the request carries one.
func (t *ErrorTranslator) Write(w http.ResponseWriter, r *http.Request, err error) {
	ctx := r.Context()
	status, message := t.classify(err)

	correlationID := correlationIDOf(r, err)
	if correlationID != "" {
		w.Header().Set(HeaderCorrelationID, correlationID)
	}

	attrs := []any{
		"request_id", requestcontext.RequestID(ctx),
		"correlation_id", correlationID,
		"status", status,
		"error", err,
	}
	if status >= http.StatusInternalServerError {
		t.logger.ErrorContext(ctx, "request failed", attrs...)
	} else {
		t.logger.WarnContext(ctx, "request rejected", attrs...)
	}

	httputil.WriteErrorResponse(w, status, message, t.timestamp(r))
}

// NotFound is installed as the router's 404 handler.
func (t *ErrorTranslator) NotFound(w http.ResponseWriter, r *http.Request) {
	t.Write(w, r, dErrors.New(dErrors.CodeNotFound, "No endpoint "+r.Method+" "+r.URL.Path))
}

// MethodNotAllowed is installed as the router's 405 handler.
func (t *ErrorTranslator) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	t.Write(w, r, dErrors.New(dErrors.CodeMethodDenied, "Request method '"+r.Method+"' is not supported"))
}

func (t *ErrorTranslator) classify(err error) (int, string) {
	var business *decision.BusinessError
	if errors.As(err, &business) {
		return http.StatusBadRequest, business.Message
	}

	var de *dErrors.Error
	if errors.As(err, &de) {
		status := dErrors.ToHTTPStatus(de.Code)
		if status >= http.StatusInternalServerError {
			return status, httputil.InternalErrorMessage
		}
		return status, de.Message
	}

	var ue *upstream.Error
	if errors.As(err, &ue) {
		return http.StatusBadRequest, ue.Message
	}

	return http.StatusInternalServerError, httputil.InternalErrorMessage
}

func (t *ErrorTranslator) timestamp(r *http.Request) time.Time {
	if t.now != nil {
		return t.now()
	}
	return requestcontext.Now(r.Context())
}

func correlationIDOf(r *http.Request, err error) string {
	var business *decision.BusinessError
	if errors.As(err, &business) && business.CorrelationID != "" {
		return business.CorrelationID
	}
	if id := strings.TrimSpace(r.Header.Get(HeaderCorrelationID)); id != "" {
		return id
	}
	return requestcontext.CorrelationID(r.Context())
}
