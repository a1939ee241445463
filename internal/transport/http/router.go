// Package httptransport assembles the HTTP surface of the service. It wires
// middleware, domain handlers and operational endpoints onto a chi router and
// keeps business logic out of the transport layer.
package httptransport

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	analysishandler "riskscope/internal/analysis/handler"
	"riskscope/internal/platform/metrics"
	"riskscope/internal/ratelimit"
	"riskscope/pkg/platform/httputil"
	adminmw "riskscope/pkg/platform/middleware/admin"
	authmw "riskscope/pkg/platform/middleware/auth"
	"riskscope/pkg/platform/middleware/metadata"
	"riskscope/pkg/platform/middleware/request"
	"riskscope/pkg/platform/middleware/requesttime"
)

// HealthChecker reports whether a backing dependency is reachable.
type HealthChecker interface {
	Health(ctx context.Context) error
}

// Deps carries everything the router needs. RateLimit, Metrics and the health
// checkers are optional.
type Deps struct {
	Analysis *analysishandler.Handler

	RateLimit *ratelimit.Middleware
	Metrics   *metrics.Metrics

	AdminTokenHash string
	AdminVerifier  *authmw.Verifier

	// Health maps a dependency name to its checker for /healthz reporting.
	Health map[string]HealthChecker

	Logger *slog.Logger
}

// NewRouter builds the full route tree: public analysis endpoints behind the
// rate limiter, admin endpoints behind admin auth, and operational endpoints.
func NewRouter(deps Deps) http.Handler {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := chi.NewRouter()
	r.Use(request.Middleware)
	r.Use(requesttime.Middleware)
	r.Use(metadata.ClientMetadata)
	if deps.Metrics != nil {
		r.Use(deps.Metrics.Instrument)
	}

	r.Route("/api", func(api chi.Router) {
		if deps.RateLimit != nil {
			api.Use(deps.RateLimit.PerIP)
		}
		deps.Analysis.Register(api)
	})

	r.Route("/admin", func(admin chi.Router) {
		admin.Use(adminmw.RequireAdmin(deps.AdminTokenHash, deps.AdminVerifier, logger))
		deps.Analysis.RegisterAdmin(admin)
	})

	r.Get("/healthz", healthHandler(deps.Health))
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	return r
}

func healthHandler(checks map[string]HealthChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		status := http.StatusOK
		deps := make(map[string]string, len(checks))
		for name, check := range checks {
			if err := check.Health(ctx); err != nil {
				deps[name] = err.Error()
				status = http.StatusServiceUnavailable
				continue
			}
			deps[name] = "ok"
		}

		body := map[string]any{"status": "ok"}
		if status != http.StatusOK {
			body["status"] = "degraded"
		}
		if len(deps) > 0 {
			body["dependencies"] = deps
		}
		httputil.WriteJSON(w, status, body)
	}
}
