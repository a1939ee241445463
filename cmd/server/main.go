package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/lib/pq"
	"golang.org/x/sync/errgroup"

	analysishandler "riskscope/internal/analysis/handler"
	analysismetrics "riskscope/internal/analysis/metrics"
	"riskscope/internal/analysis/service"
	analysisstore "riskscope/internal/analysis/store"
	"riskscope/internal/audit"
	"riskscope/internal/platform/config"
	"riskscope/internal/platform/httpserver"
	"riskscope/internal/platform/logger"
	platformmetrics "riskscope/internal/platform/metrics"
	platformredis "riskscope/internal/platform/redis"
	"riskscope/internal/ratelimit"
	ratelimitmetrics "riskscope/internal/ratelimit/metrics"
	httptransport "riskscope/internal/transport/http"
	"riskscope/pkg/platform/circuit"
	authmw "riskscope/pkg/platform/middleware/auth"
)

const shutdownTimeout = 10 * time.Second

// main wires high-level dependencies and keeps the server lifecycle small.
// Business logic lives in the internal service packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	health := make(map[string]httptransport.HealthChecker)

	historyStore, auditStore, cleanup, err := buildStores(ctx, cfg, health)
	if err != nil {
		log.Error("store setup failed", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	auditBackend := auditStore
	if len(cfg.KafkaBrokers) > 0 {
		sink, err := audit.NewKafkaSink(ctx, cfg.KafkaBrokers, cfg.KafkaTopic, log)
		if err != nil {
			log.Error("kafka sink setup failed", "error", err)
			os.Exit(1)
		}
		defer sink.Close()
		auditBackend = audit.NewFanoutStore(auditStore, log, sink)
	}

	publisher := audit.NewPublisher(auditBackend,
		audit.WithLogger(log),
		audit.WithAsyncBuffer(256),
	)
	defer publisher.Close()

	bucketStore, err := buildBucketStore(cfg, log, health)
	if err != nil {
		log.Error("redis setup failed", "error", err)
		os.Exit(1)
	}

	svc := service.NewService(historyStore, publisher,
		service.WithLogger(log),
		service.WithMetrics(analysismetrics.New()),
	)

	limiter := ratelimit.NewMiddleware(bucketStore, cfg.RateLimit.Limit, cfg.RateLimit.Window,
		ratelimit.WithLogger(log),
		ratelimit.WithMetrics(ratelimitmetrics.New()),
		ratelimit.WithDisabled(cfg.RateLimit.Disabled),
	)

	var verifier *authmw.Verifier
	if cfg.JWTSigningKey != "" {
		verifier = authmw.NewVerifier(cfg.JWTSigningKey)
	}

	router := httptransport.NewRouter(httptransport.Deps{
		Analysis:       analysishandler.New(svc, analysishandler.WithLogger(log)),
		RateLimit:      limiter,
		Metrics:        platformmetrics.New(),
		AdminTokenHash: cfg.AdminTokenHash,
		AdminVerifier:  verifier,
		Health:         health,
		Logger:         log,
	})

	srv := httpserver.New(cfg.Addr, router)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting riskscope", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
	log.Info("riskscope stopped")
}

// buildStores returns the history and audit stores, backed by Postgres when a
// DSN is configured and by memory otherwise.
func buildStores(ctx context.Context, cfg config.Server, health map[string]httptransport.HealthChecker) (service.AnalysisStore, audit.Store, func(), error) {
	if cfg.PostgresDSN == "" {
		return analysisstore.NewInMemoryStore(), audit.NewInMemoryStore(), func() {}, nil
	}

	pool, err := pgxpool.New(ctx, cfg.PostgresDSN)
	if err != nil {
		return nil, nil, nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, nil, nil, err
	}

	historyStore := analysisstore.NewPostgresStore(pool)
	if err := historyStore.EnsureSchema(ctx); err != nil {
		pool.Close()
		return nil, nil, nil, err
	}

	db, err := sql.Open("postgres", cfg.PostgresDSN)
	if err != nil {
		pool.Close()
		return nil, nil, nil, err
	}
	auditStore := audit.NewPostgresStore(db)
	if err := auditStore.EnsureSchema(ctx); err != nil {
		pool.Close()
		db.Close()
		return nil, nil, nil, err
	}

	health["postgres"] = pingHealth{ping: pool.Ping}

	cleanup := func() {
		pool.Close()
		db.Close()
	}
	return historyStore, auditStore, cleanup, nil
}

// buildBucketStore returns the rate limit backend. With Redis configured the
// limiter runs against Redis behind a circuit breaker that degrades to the
// in-memory store; without it the in-memory store is used directly.
func buildBucketStore(cfg config.Server, log *slog.Logger, health map[string]httptransport.HealthChecker) (ratelimit.BucketStore, error) {
	memory := ratelimit.NewInMemoryBucketStore()

	client, err := platformredis.New(cfg.Redis)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return memory, nil
	}

	health["redis"] = client
	breaker := circuit.New("ratelimit-redis")
	return ratelimit.NewFallbackBucketStore(ratelimit.NewRedisBucketStore(client.Client), breaker, log), nil
}

type pingHealth struct {
	ping func(context.Context) error
}

func (p pingHealth) Health(ctx context.Context) error { return p.ping(ctx) }
