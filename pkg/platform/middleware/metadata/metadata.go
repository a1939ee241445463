// Package metadata extracts client IP, User-Agent, and a condensed device
// description from the request and stores them in the context for rate
// limiting and audit events. Apply early in the chain.
package metadata

import (
	"net/http"
	"strings"

	ua "github.com/mssola/useragent"

	"riskscope/pkg/requestcontext"
)

// ClientMetadata extracts client metadata from the request into the context.
func ClientMetadata(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := ClientIPFromRequest(r)
		userAgent := r.Header.Get("User-Agent")

		ctx := requestcontext.WithClientMetadata(r.Context(), ip, userAgent)
		ctx = requestcontext.WithClientDevice(ctx, parseDevice(userAgent))

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// parseDevice condenses a raw User-Agent into the fields audit events record.
// The raw string is never persisted, only the summary.
func parseDevice(userAgent string) requestcontext.Device {
	if userAgent == "" {
		return requestcontext.Device{}
	}
	parsed := ua.New(userAgent)
	browser, version := parsed.Browser()
	device := requestcontext.Device{
		OS:  parsed.OS(),
		Bot: parsed.Bot(),
	}
	if browser != "" {
		device.Browser = browser
		if version != "" {
			device.Browser = browser + "/" + version
		}
	}
	return device
}

// ClientIPFromRequest extracts the real client IP, handling proxies and load
// balancers.
func ClientIPFromRequest(r *http.Request) string {
	// X-Forwarded-For can contain multiple IPs (client, proxy1, proxy2, ...);
	// the first is the original client.
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if idx := strings.Index(xff, ","); idx != -1 {
			return strings.TrimSpace(xff[:idx])
		}
		return strings.TrimSpace(xff)
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}

	// RemoteAddr is "ip:port" ("[::1]:port" for IPv6), strip the port.
	if addr := r.RemoteAddr; addr != "" {
		if idx := strings.LastIndex(addr, ":"); idx != -1 {
			return addr[:idx]
		}
		return addr
	}

	return "unknown"
}
