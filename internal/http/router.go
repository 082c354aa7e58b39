// Package httpapi assembles the HTTP surface: the audited application routes
// and the unaudited ops endpoints.
package httpapi

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"

	"eligibility/internal/admin"
	"eligibility/internal/decision/handler"
	platformmetrics "eligibility/internal/platform/metrics"
	"eligibility/pkg/platform/audit/httpaudit"
	"eligibility/pkg/platform/httputil"
	"eligibility/pkg/platform/middleware/requesttime"
)

// HealthCheck reports whether the process can serve traffic.
type HealthCheck func(ctx context.Context) error

// Deps holds everything the router mounts.
type Deps struct {
	Eligibility *handler.Handler
	Admin       *admin.Handler
	Errors      *handler.ErrorTranslator
	Audit       *httpaudit.Middleware
	Registry    *prometheus.Registry
	Health      HealthCheck
	Logger      *slog.Logger
}

// NewRouter wires all endpoints. Everything except the ops endpoints is served
// by the application mux, whose root middleware stack starts with the audit
// middleware. Unrouted requests (404, 405) are audited too, and the audit
// middleware sees the final response, including the 500 written by the
// recoverer.
func NewRouter(d Deps) http.Handler {
	app := chi.NewRouter()
	app.Use(d.Audit.Handler)
	app.Use(middleware.Recoverer)
	app.Use(requesttime.Middleware)
	app.NotFound(d.Errors.NotFound)
	app.MethodNotAllowed(d.Errors.MethodNotAllowed)

	d.Eligibility.Register(app)
	if d.Admin != nil {
		d.Admin.Register(app)
	}

	r := chi.NewRouter()
	r.Get("/healthz", healthz(d.Health, d.Logger))
	if d.Registry != nil {
		r.Method(http.MethodGet, "/metrics", platformmetrics.Handler(d.Registry))
	}
	r.Mount("/", app)
	return r
}

func healthz(check HealthCheck, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if check != nil {
			if err := check(r.Context()); err != nil {
				logger.WarnContext(r.Context(), "health check failed", "error", err)
				httputil.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
				return
			}
		}
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
