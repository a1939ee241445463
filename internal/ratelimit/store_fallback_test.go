package ratelimit

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"riskscope/pkg/platform/circuit"
)

// flakyStore fails until healed.
type flakyStore struct {
	inner   BucketStore
	failing bool
}

func (f *flakyStore) Allow(ctx context.Context, key string, limit int, window time.Duration) (*Result, error) {
	if f.failing {
		return nil, errors.New("store unavailable")
	}
	return f.inner.Allow(ctx, key, limit, window)
}

func (f *flakyStore) Reset(ctx context.Context, key string) error {
	if f.failing {
		return errors.New("store unavailable")
	}
	return f.inner.Reset(ctx, key)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestFallbackUsesPrimaryWhenHealthy(t *testing.T) {
	primary := &flakyStore{inner: NewInMemoryBucketStore()}
	store := NewFallbackBucketStore(primary, circuit.New("test"), discardLogger())

	result, err := store.Allow(context.Background(), "ip:healthy", 5, time.Minute)
	require.NoError(t, err)
	assert.True(t, result.Allowed)
	assert.Equal(t, 4, result.Remaining)
}

func TestFallbackFailsOpenBeforeCircuitOpens(t *testing.T) {
	primary := &flakyStore{inner: NewInMemoryBucketStore(), failing: true}
	breaker := circuit.New("test", circuit.WithFailureThreshold(3))
	store := NewFallbackBucketStore(primary, breaker, discardLogger())

	// Below the threshold, transient errors admit the request.
	result, err := store.Allow(context.Background(), "ip:transient", 5, time.Minute)
	require.NoError(t, err)
	assert.True(t, result.Allowed)
	assert.False(t, breaker.IsOpen())
}

func TestFallbackDegradesToMemoryWhenCircuitOpens(t *testing.T) {
	primary := &flakyStore{inner: NewInMemoryBucketStore(), failing: true}
	breaker := circuit.New("test", circuit.WithFailureThreshold(2))
	store := NewFallbackBucketStore(primary, breaker, discardLogger())

	ctx := context.Background()
	for range 2 {
		_, err := store.Allow(ctx, "ip:degrade", 3, time.Minute)
		require.NoError(t, err)
	}
	require.True(t, breaker.IsOpen())

	// Degraded limiting still enforces the limit in memory.
	allowed := 0
	for range 5 {
		result, err := store.Allow(ctx, "ip:degrade", 3, time.Minute)
		require.NoError(t, err)
		if result.Allowed {
			allowed++
		}
	}
	assert.Equal(t, 3, allowed)
}

func TestFallbackRecoversWhenPrimaryHeals(t *testing.T) {
	primary := &flakyStore{inner: NewInMemoryBucketStore(), failing: true}
	breaker := circuit.New("test",
		circuit.WithFailureThreshold(1),
		circuit.WithSuccessThreshold(2),
	)
	store := NewFallbackBucketStore(primary, breaker, discardLogger())
	ctx := context.Background()

	_, err := store.Allow(ctx, "ip:recover", 100, time.Minute)
	require.NoError(t, err)
	require.True(t, breaker.IsOpen())

	primary.failing = false

	// Each degraded check probes the primary; two successes close the circuit.
	for range 2 {
		_, err := store.Allow(ctx, "ip:recover", 100, time.Minute)
		require.NoError(t, err)
	}
	assert.False(t, breaker.IsOpen())
}
