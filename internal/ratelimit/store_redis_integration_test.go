//go:build integration

package ratelimit_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"riskscope/internal/ratelimit"
	"riskscope/pkg/testutil/containers"
)

type RedisBucketStoreSuite struct {
	suite.Suite
	redis *containers.RedisContainer
	store *ratelimit.RedisBucketStore
}

func TestRedisBucketStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RedisBucketStoreSuite))
}

func (s *RedisBucketStoreSuite) SetupSuite() {
	mgr := containers.GetManager()
	s.redis = mgr.GetRedis(s.T())
	s.store = ratelimit.NewRedisBucketStore(s.redis.Client)
}

func (s *RedisBucketStoreSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(context.Background()))
}

func (s *RedisBucketStoreSuite) TestAllowUpToLimit() {
	ctx := context.Background()
	const limit = 5

	for i := 0; i < limit; i++ {
		result, err := s.store.Allow(ctx, "ip:redis:limit", limit, time.Minute)
		s.Require().NoError(err)
		s.True(result.Allowed, "request %d", i)
		s.Equal(limit-i-1, result.Remaining)
	}

	result, err := s.store.Allow(ctx, "ip:redis:limit", limit, time.Minute)
	s.Require().NoError(err)
	s.False(result.Allowed)
	s.Equal(0, result.Remaining)
	s.True(result.ResetAt.After(time.Now()))
}

func (s *RedisBucketStoreSuite) TestWindowExpiry() {
	ctx := context.Background()
	const window = 500 * time.Millisecond

	for i := 0; i < 2; i++ {
		_, err := s.store.Allow(ctx, "ip:redis:expiry", 2, window)
		s.Require().NoError(err)
	}
	result, err := s.store.Allow(ctx, "ip:redis:expiry", 2, window)
	s.Require().NoError(err)
	s.False(result.Allowed)

	time.Sleep(window + 100*time.Millisecond)

	result, err = s.store.Allow(ctx, "ip:redis:expiry", 2, window)
	s.Require().NoError(err)
	s.True(result.Allowed)
}

func (s *RedisBucketStoreSuite) TestReset() {
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := s.store.Allow(ctx, "ip:redis:reset", 3, time.Minute)
		s.Require().NoError(err)
	}
	s.Require().NoError(s.store.Reset(ctx, "ip:redis:reset"))

	result, err := s.store.Allow(ctx, "ip:redis:reset", 3, time.Minute)
	s.Require().NoError(err)
	s.True(result.Allowed)
	s.Equal(2, result.Remaining)
}

func (s *RedisBucketStoreSuite) TestKeysIsolated() {
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, err := s.store.Allow(ctx, "ip:redis:a", 2, time.Minute)
		s.Require().NoError(err)
	}

	for i := 0; i < 2; i++ {
		result, err := s.store.Allow(ctx, fmt.Sprintf("ip:redis:b%d", i), 2, time.Minute)
		s.Require().NoError(err)
		s.True(result.Allowed)
	}
}
