// Package admin guards operator-only endpoints. Callers authenticate with
// either the shared admin token (compared against a bcrypt hash so the
// plaintext never lives in config) or a bearer JWT carrying the admin scope.
package admin

import (
	"log/slog"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"

	authmw "riskscope/pkg/platform/middleware/auth"
	request "riskscope/pkg/platform/middleware/request"
)

// RequireAdmin authorizes a request via X-Admin-Token or a Bearer token with
// the "admin" scope. An empty tokenHash disables the token path entirely.
func RequireAdmin(tokenHash string, verifier *authmw.Verifier, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token := r.Header.Get("X-Admin-Token"); token != "" && tokenHash != "" {
				if err := bcrypt.CompareHashAndPassword([]byte(tokenHash), []byte(token)); err == nil {
					next.ServeHTTP(w, r)
					return
				}
			}

			if verifier != nil {
				if raw, ok := bearerToken(r); ok {
					claims, err := verifier.Verify(raw)
					if err == nil && claims.HasScope("admin") {
						next.ServeHTTP(w, r)
						return
					}
				}
			}

			ctx := r.Context()
			logger.WarnContext(ctx, "admin authorization failed",
				"request_id", request.GetRequestID(ctx),
			)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":"unauthorized","error_description":"admin credentials required"}`))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return strings.TrimSpace(parts[1]), true
}
