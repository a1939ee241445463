// Package config loads service configuration from the environment so main
// stays lean.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Server captures HTTP server level configuration.
type Server struct {
	Addr string

	// AdminTokenHash is the bcrypt hash of the static admin token. Empty
	// disables static-token admin auth.
	AdminTokenHash string
	// JWTSigningKey signs and verifies admin bearer tokens. Empty disables
	// JWT admin auth.
	JWTSigningKey string

	// PostgresDSN enables the Postgres history and audit stores. Empty falls
	// back to in-memory stores.
	PostgresDSN string

	Redis RedisConfig

	// KafkaBrokers enables the Kafka audit sink. Empty disables it.
	KafkaBrokers []string
	KafkaTopic   string

	RateLimit RateLimitConfig
}

// RedisConfig tunes the shared Redis client. An empty URL disables Redis.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// RateLimitConfig tunes the per-IP limiter.
type RateLimitConfig struct {
	Disabled bool
	Limit    int
	Window   time.Duration
}

// FromEnv builds a Server config from environment variables.
func FromEnv() Server {
	return Server{
		Addr:           envOr("RISKSCOPE_ADDR", ":8080"),
		AdminTokenHash: os.Getenv("RISKSCOPE_ADMIN_TOKEN_HASH"),
		JWTSigningKey:  os.Getenv("RISKSCOPE_JWT_SIGNING_KEY"),
		PostgresDSN:    os.Getenv("RISKSCOPE_POSTGRES_DSN"),
		Redis: RedisConfig{
			URL:          os.Getenv("RISKSCOPE_REDIS_URL"),
			PoolSize:     envInt("RISKSCOPE_REDIS_POOL_SIZE", 10),
			MinIdleConns: envInt("RISKSCOPE_REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  envDuration("RISKSCOPE_REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  envDuration("RISKSCOPE_REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: envDuration("RISKSCOPE_REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		KafkaBrokers: splitList(os.Getenv("RISKSCOPE_KAFKA_BROKERS")),
		KafkaTopic:   envOr("RISKSCOPE_KAFKA_TOPIC", "riskscope.audit"),
		RateLimit: RateLimitConfig{
			Disabled: os.Getenv("RISKSCOPE_RATELIMIT_DISABLED") == "true",
			Limit:    envInt("RISKSCOPE_RATELIMIT_PER_MINUTE", 30),
			Window:   time.Minute,
		},
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func splitList(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
