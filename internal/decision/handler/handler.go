package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"eligibility/internal/decision"
	dErrors "eligibility/pkg/domain-errors"
	"eligibility/pkg/platform/httputil"
	"eligibility/pkg/requestcontext"
)

// Request headers read by the eligibility endpoint.
const (
	HeaderClientID      = "clientId"
	HeaderCorrelationID = "correlation-id"
)

// Service defines the interface for decision operations.
type Service interface {
	Evaluate(ctx context.Context, req decision.EvaluateRequest) (*decision.Outcome, error)
}

// Handler wires the eligibility endpoint to the decision service.
type Handler struct {
	service Service
	logger  *slog.Logger
	errors  *ErrorTranslator
}

// New constructs a decision handler with its dependencies.
func New(service Service, logger *slog.Logger, errors *ErrorTranslator) *Handler {
	if errors == nil {
		errors = NewErrorTranslator(logger)
	}
	return &Handler{
		service: service,
		logger:  logger,
		errors:  errors,
	}
}

// Register mounts decision endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/api/v1/eligibility", h.HandleEligibility)
}

// HandleEligibility handles GET /api/v1/eligibility requests.
func (h *Handler) HandleEligibility(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	start := time.Now()
	requestID := requestcontext.RequestID(ctx)

	clientID := strings.TrimSpace(r.Header.Get(HeaderClientID))
	if clientID == "" {
		h.errors.Write(w, r, dErrors.New(dErrors.CodeValidation, "Required request header 'clientId' is not present"))
		return
	}
	correlationID := strings.TrimSpace(r.Header.Get(HeaderCorrelationID))

	outcome, err := h.service.Evaluate(ctx, decision.EvaluateRequest{
		ClientID:      clientID,
		CorrelationID: correlationID,
	})
	if err != nil {
		h.errors.Write(w, r, err)
		return
	}

	h.logger.InfoContext(ctx, "eligibility evaluated",
		"request_id", requestID,
		"correlation_id", correlationID,
		"eligible", outcome.Eligible,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	if correlationID != "" {
		w.Header().Set(HeaderCorrelationID, correlationID)
	}
	httputil.WriteJSON(w, http.StatusOK, FromOutcome(outcome))
}
