// Package ratelimit enforces per-IP request limits using a sliding window.
// The bucket store is pluggable: in-memory for single instances, Redis for
// shared state, and a circuit-breaker fallback that degrades to memory when
// Redis is unreachable.
package ratelimit

import (
	"context"
	"time"
)

// Result describes one rate limit check.
type Result struct {
	Allowed   bool
	Limit     int
	Remaining int
	ResetAt   time.Time
}

// BucketStore tracks request counts per key over a sliding window.
type BucketStore interface {
	// Allow records one request against key and reports whether it fits
	// within limit for the window.
	Allow(ctx context.Context, key string, limit int, window time.Duration) (*Result, error)
	// Reset clears the counter for a key.
	Reset(ctx context.Context, key string) error
}
