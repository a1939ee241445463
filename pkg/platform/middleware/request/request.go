// Package request assigns each inbound request a stable ID for log and audit
// correlation. Inbound X-Request-ID headers are honored so IDs survive proxy
// hops; otherwise a fresh UUID is generated.
package request

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"riskscope/pkg/requestcontext"
)

const headerName = "X-Request-ID"

// Middleware injects a request ID into the context and echoes it on the
// response so clients can report it.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(headerName)
		if requestID == "" || len(requestID) > 64 {
			requestID = uuid.New().String()
		}

		w.Header().Set(headerName, requestID)
		ctx := requestcontext.WithRequestID(r.Context(), requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetRequestID retrieves the request ID from the context.
func GetRequestID(ctx context.Context) string {
	return requestcontext.RequestID(ctx)
}
