package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisBucketStore implements BucketStore over a Redis sorted set per key,
// scored by request time. Shared across instances; entries expire with the
// window so idle keys cost nothing.
type RedisBucketStore struct {
	client redis.UniversalClient
	prefix string
}

func NewRedisBucketStore(client redis.UniversalClient) *RedisBucketStore {
	return &RedisBucketStore{client: client, prefix: "ratelimit:"}
}

func (s *RedisBucketStore) Allow(ctx context.Context, key string, limit int, window time.Duration) (*Result, error) {
	now := time.Now()
	cutoff := now.Add(-window)
	redisKey := s.prefix + key

	pipe := s.client.TxPipeline()
	pipe.ZRemRangeByScore(ctx, redisKey, "-inf", fmt.Sprintf("%d", cutoff.UnixNano()))
	countCmd := pipe.ZCard(ctx, redisKey)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("ratelimit count for %q: %w", key, err)
	}

	count := int(countCmd.Val())
	if count >= limit {
		oldest, err := s.oldestEntry(ctx, redisKey)
		if err != nil {
			return nil, err
		}
		return &Result{
			Allowed:   false,
			Limit:     limit,
			Remaining: 0,
			ResetAt:   oldest.Add(window),
		}, nil
	}

	member := fmt.Sprintf("%d-%s", now.UnixNano(), uuid.NewString())
	pipe = s.client.TxPipeline()
	pipe.ZAdd(ctx, redisKey, redis.Z{Score: float64(now.UnixNano()), Member: member})
	pipe.Expire(ctx, redisKey, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("ratelimit record for %q: %w", key, err)
	}

	oldest, err := s.oldestEntry(ctx, redisKey)
	if err != nil {
		return nil, err
	}
	return &Result{
		Allowed:   true,
		Limit:     limit,
		Remaining: limit - count - 1,
		ResetAt:   oldest.Add(window),
	}, nil
}

func (s *RedisBucketStore) Reset(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.prefix+key).Err(); err != nil {
		return fmt.Errorf("ratelimit reset for %q: %w", key, err)
	}
	return nil
}

// oldestEntry returns the timestamp of the oldest entry still in the window,
// falling back to now when the set is empty.
func (s *RedisBucketStore) oldestEntry(ctx context.Context, redisKey string) (time.Time, error) {
	entries, err := s.client.ZRangeWithScores(ctx, redisKey, 0, 0).Result()
	if err != nil {
		return time.Time{}, fmt.Errorf("ratelimit oldest entry: %w", err)
	}
	if len(entries) == 0 {
		return time.Now(), nil
	}
	return time.Unix(0, int64(entries[0].Score)), nil
}
