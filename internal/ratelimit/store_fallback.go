package ratelimit

import (
	"context"
	"log/slog"
	"time"

	"riskscope/pkg/platform/circuit"
)

// FallbackBucketStore checks the primary store and degrades to an in-memory
// store when the circuit opens. Counts diverge between the two stores during
// degradation; limiting stays approximate but never disappears.
type FallbackBucketStore struct {
	primary  BucketStore
	fallback BucketStore
	breaker  *circuit.Breaker
	logger   *slog.Logger
}

func NewFallbackBucketStore(primary BucketStore, breaker *circuit.Breaker, logger *slog.Logger) *FallbackBucketStore {
	if logger == nil {
		logger = slog.Default()
	}
	if breaker == nil {
		breaker = circuit.New("ratelimit")
	}
	return &FallbackBucketStore{
		primary:  primary,
		fallback: NewInMemoryBucketStore(),
		breaker:  breaker,
		logger:   logger,
	}
}

func (s *FallbackBucketStore) Allow(ctx context.Context, key string, limit int, window time.Duration) (*Result, error) {
	if s.breaker.IsOpen() {
		s.probePrimary(ctx, key, limit, window)
		return s.fallback.Allow(ctx, key, limit, window)
	}

	result, err := s.primary.Allow(ctx, key, limit, window)
	if err != nil {
		useFallback, change := s.breaker.RecordFailure()
		if change.Opened {
			s.logger.WarnContext(ctx, "ratelimit store circuit opened",
				"breaker", s.breaker.Name(),
				"error", err,
			)
		}
		if useFallback {
			return s.fallback.Allow(ctx, key, limit, window)
		}
		// Closed circuit, transient error: fail open for this request.
		s.logger.WarnContext(ctx, "ratelimit store check failed, allowing request",
			"error", err,
		)
		return &Result{Allowed: true, Limit: limit, Remaining: limit, ResetAt: time.Now().Add(window)}, nil
	}

	if _, change := s.breaker.RecordSuccess(); change.Closed {
		s.logger.InfoContext(ctx, "ratelimit store circuit closed",
			"breaker", s.breaker.Name(),
		)
	}
	return result, nil
}

func (s *FallbackBucketStore) Reset(ctx context.Context, key string) error {
	if err := s.fallback.Reset(ctx, key); err != nil {
		return err
	}
	return s.primary.Reset(ctx, key)
}

// probePrimary gives an open circuit a chance to observe primary health
// without letting primary failures affect the response.
func (s *FallbackBucketStore) probePrimary(ctx context.Context, key string, limit int, window time.Duration) {
	if _, err := s.primary.Allow(ctx, key, limit, window); err != nil {
		s.breaker.RecordFailure()
		return
	}
	if _, change := s.breaker.RecordSuccess(); change.Closed {
		s.logger.InfoContext(ctx, "ratelimit store circuit closed",
			"breaker", s.breaker.Name(),
		)
	}
}
