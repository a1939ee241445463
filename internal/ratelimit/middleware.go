package ratelimit

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"riskscope/internal/ratelimit/metrics"
	dErrors "riskscope/pkg/domain-errors"
	"riskscope/pkg/platform/httputil"
	"riskscope/pkg/requestcontext"
)

// Middleware applies a per-IP request limit with standard X-RateLimit
// headers.
type Middleware struct {
	store    BucketStore
	limit    int
	window   time.Duration
	logger   *slog.Logger
	metrics  *metrics.Metrics
	disabled bool
}

// MiddlewareOption configures a Middleware.
type MiddlewareOption func(*Middleware)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) MiddlewareOption {
	return func(m *Middleware) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithMetrics sets the metrics collector.
func WithMetrics(mx *metrics.Metrics) MiddlewareOption {
	return func(m *Middleware) {
		m.metrics = mx
	}
}

// WithDisabled turns the limiter off entirely, for tests and demo mode.
func WithDisabled(disabled bool) MiddlewareOption {
	return func(m *Middleware) {
		m.disabled = disabled
	}
}

func NewMiddleware(store BucketStore, limit int, window time.Duration, opts ...MiddlewareOption) *Middleware {
	m := &Middleware{
		store:  store,
		limit:  limit,
		window: window,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(m)
		}
	}
	return m
}

// PerIP limits requests by client IP. Store errors fail open: an unreachable
// limiter must not take the API down with it.
func (m *Middleware) PerIP(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.disabled {
			next.ServeHTTP(w, r)
			return
		}

		ctx := r.Context()
		ip := requestcontext.ClientIP(ctx)
		if ip == "" {
			ip = r.RemoteAddr
		}

		result, err := m.store.Allow(ctx, "ip:"+ip, m.limit, m.window)
		if err != nil {
			m.logger.ErrorContext(ctx, "rate limit check failed, allowing request",
				"error", err,
			)
			next.ServeHTTP(w, r)
			return
		}

		addHeaders(w, result)

		if !result.Allowed {
			m.metrics.IncrementBlocked()
			retryAfter := int(time.Until(result.ResetAt).Seconds())
			if retryAfter < 1 {
				retryAfter = 1
			}
			w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
			httputil.WriteError(w, dErrors.New(dErrors.CodeRateLimited, "rate limit exceeded, slow down"))
			return
		}

		m.metrics.IncrementAllowed()
		next.ServeHTTP(w, r)
	})
}

func addHeaders(w http.ResponseWriter, result *Result) {
	w.Header().Set("X-RateLimit-Limit", strconv.Itoa(result.Limit))
	w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
	w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt.Unix(), 10))
}
