// Package admin exposes read-only queries over the audit trail and the
// decision log.
package admin

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"eligibility/internal/decision"
	dErrors "eligibility/pkg/domain-errors"
	audit "eligibility/pkg/platform/audit"
	"eligibility/pkg/platform/httputil"
)

// ErrorWriter renders failures as the uniform error body.
type ErrorWriter interface {
	Write(w http.ResponseWriter, r *http.Request, err error)
}

// Handler serves /admin query endpoints.
type Handler struct {
	audits    audit.Reader
	decisions decision.Reader
	errors    ErrorWriter
	logger    *slog.Logger
}

// New constructs an admin handler.
func New(audits audit.Reader, decisions decision.Reader, errors ErrorWriter, logger *slog.Logger) *Handler {
	return &Handler{
		audits:    audits,
		decisions: decisions,
		errors:    errors,
		logger:    logger,
	}
}

// Register mounts admin endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/admin/audit-logs", h.HandleAuditLogs)
	r.Get("/admin/eligibility-decisions", h.HandleDecisions)
}

// HandleAuditLogs handles GET /admin/audit-logs.
func (h *Handler) HandleAuditLogs(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	f, err := parseAuditFilter(r.URL.Query())
	if err != nil {
		h.errors.Write(w, r, err)
		return
	}

	var records []audit.Record
	switch {
	case f.correlationID != "":
		records, err = h.audits.ListByCorrelationID(ctx, f.correlationID)
	case len(f.requestIDs) > 0:
		records, err = h.audits.ListByRequestIDs(ctx, f.requestIDs)
	case f.failed:
		records, err = h.audits.ListFailed(ctx)
	default:
		records, err = h.audits.ListByAPINameBetween(ctx, f.apiName, f.from, f.to)
	}
	if err != nil {
		h.errors.Write(w, r, dErrors.Wrap(err, dErrors.CodeInternal, "failed to query audit logs"))
		return
	}

	httputil.WriteJSON(w, http.StatusOK, toAuditLogs(records))
}

// HandleDecisions handles GET /admin/eligibility-decisions.
func (h *Handler) HandleDecisions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	f, err := parseDecisionFilter(r.URL.Query())
	if err != nil {
		h.errors.Write(w, r, err)
		return
	}

	var decisions []decision.Decision
	switch {
	case f.clientID != "":
		decisions, err = h.decisions.ListByClientID(ctx, f.clientID)
	case f.correlationID != "":
		decisions, err = h.decisions.ListByCorrelationID(ctx, f.correlationID)
	default:
		decisions, err = h.decisions.ListByResults(ctx, f.results)
	}
	if err != nil {
		h.errors.Write(w, r, dErrors.Wrap(err, dErrors.CodeInternal, "failed to query decisions"))
		return
	}

	h.logger.DebugContext(ctx, "decisions queried", "count", len(decisions))
	httputil.WriteJSON(w, http.StatusOK, toDecisions(decisions))
}
