// Package service orchestrates the analysis flow: run the engine, persist
// the result, emit audit and metrics. Handlers stay thin; the engine stays
// pure.
package service

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks AnalysisStore,AuditEmitter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"riskscope/internal/analysis"
	"riskscope/internal/analysis/metrics"
	"riskscope/internal/analysis/store"
	"riskscope/internal/audit"
	"riskscope/internal/signal"
	dErrors "riskscope/pkg/domain-errors"
	"riskscope/pkg/platform/sentinel"
	"riskscope/pkg/requestcontext"
)

// AnalysisStore persists completed analyses.
type AnalysisStore interface {
	Save(ctx context.Context, rec store.Record) error
	Get(ctx context.Context, id uuid.UUID) (*store.Record, error)
	ListRecent(ctx context.Context, limit int) ([]store.Record, error)
	Purge(ctx context.Context) (int64, error)
}

// AuditEmitter records domain actions.
type AuditEmitter interface {
	Emit(ctx context.Context, event audit.Event) error
}

const (
	defaultHistoryLimit = 10
	maxHistoryLimit     = 100
)

// Service wires the deterministic engine to persistence and observability.
type Service struct {
	engine  *analysis.Engine
	store   AnalysisStore
	auditor AuditEmitter
	metrics *metrics.Metrics
	logger  *slog.Logger
	tracer  trace.Tracer
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMetrics sets the metrics collector.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithEngine overrides the default engine calibration.
func WithEngine(engine *analysis.Engine) Option {
	return func(s *Service) {
		if engine != nil {
			s.engine = engine
		}
	}
}

func NewService(analysisStore AnalysisStore, auditor AuditEmitter, opts ...Option) *Service {
	s := &Service{
		engine:  analysis.NewEngine(),
		store:   analysisStore,
		auditor: auditor,
		logger:  slog.Default(),
		tracer:  otel.Tracer("riskscope/analysis"),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Analyze runs the engine over a raw submission, persists the result, and
// emits the audit trail. The evaluation timestamp comes from the request
// context so retried requests stay reproducible. Persistence failures are
// logged but do not fail the analysis; the result is already computed and
// correct.
func (s *Service) Analyze(ctx context.Context, raw map[string]any) (*analysis.Result, error) {
	ctx, span := s.tracer.Start(ctx, "analysis.Analyze")
	defer span.End()
	start := time.Now()

	result, err := s.engine.Analyze(raw, requestcontext.Now(ctx))
	if err != nil {
		s.recordRejection(ctx, raw, err)
		return nil, err
	}

	rec := store.Record{
		ID:        uuid.New(),
		Result:    *result,
		CreatedAt: result.Timestamp,
	}
	if err := s.store.Save(ctx, rec); err != nil {
		s.logger.ErrorContext(ctx, "analysis history save failed",
			"username", result.Username,
			"error", err,
		)
	}

	span.SetAttributes(
		attribute.Int("analysis.risk_score", result.RiskScore),
		attribute.String("analysis.risk_level", string(result.RiskLevel)),
	)
	s.metrics.IncrementCompleted(string(result.RiskLevel))
	s.metrics.ObserveScore(result.RiskScore)
	s.metrics.ObserveAnalyzeLatency(time.Since(start))
	s.emit(ctx, audit.Event{
		Action:    audit.ActionAnalysisCompleted,
		Username:  result.Username,
		RiskLevel: string(result.RiskLevel),
		RiskScore: result.RiskScore,
	})

	s.logger.InfoContext(ctx, "analysis completed",
		"username", result.Username,
		"risk_score", result.RiskScore,
		"risk_level", result.RiskLevel,
		"confidence", result.Confidence,
	)
	return result, nil
}

// History returns the most recent analyses, newest first. The limit defaults
// to 10 and is capped at 100.
func (s *Service) History(ctx context.Context, limit int) ([]store.Record, error) {
	ctx, span := s.tracer.Start(ctx, "analysis.History")
	defer span.End()

	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}
	records, err := s.store.ListRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	return records, nil
}

// Lookup returns a single stored analysis by ID.
func (s *Service) Lookup(ctx context.Context, id uuid.UUID) (*store.Record, error) {
	ctx, span := s.tracer.Start(ctx, "analysis.Lookup")
	defer span.End()

	rec, err := s.store.Get(ctx, id)
	if errors.Is(err, sentinel.ErrNotFound) {
		return nil, dErrors.Wrap(err, dErrors.CodeNotFound, "no analysis with that id")
	}
	if err != nil {
		return nil, fmt.Errorf("lookup analysis: %w", err)
	}
	return rec, nil
}

// PurgeHistory removes all stored analyses and reports the count.
func (s *Service) PurgeHistory(ctx context.Context) (int64, error) {
	ctx, span := s.tracer.Start(ctx, "analysis.PurgeHistory")
	defer span.End()

	n, err := s.store.Purge(ctx)
	if err != nil {
		return 0, fmt.Errorf("purge history: %w", err)
	}
	s.emit(ctx, audit.Event{
		Action: audit.ActionHistoryPurged,
		Reason: fmt.Sprintf("%d records removed", n),
	})
	s.logger.InfoContext(ctx, "analysis history purged", "removed", n)
	return n, nil
}

func (s *Service) recordRejection(ctx context.Context, raw map[string]any, err error) {
	reason := "invalid_input"
	var verr *signal.ValidationError
	if errors.As(err, &verr) {
		reason = string(verr.Tag)
	}
	s.metrics.IncrementRejected(reason)
	username, _ := raw["username"].(string)
	s.emit(ctx, audit.Event{
		Action:   audit.ActionAnalysisRejected,
		Username: username,
		Reason:   reason,
	})
}

// emit enriches the event with request metadata and hands it to the auditor.
// Audit failures here are operational, not compliance, so they only log.
func (s *Service) emit(ctx context.Context, event audit.Event) {
	if s.auditor == nil {
		return
	}
	event.Timestamp = requestcontext.Now(ctx)
	event.RequestID = requestcontext.RequestID(ctx)
	event.ClientIP = requestcontext.ClientIP(ctx)
	device := requestcontext.ClientDevice(ctx)
	event.Browser = device.Browser
	event.OS = device.OS
	if err := s.auditor.Emit(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "audit emit failed",
			"action", event.Action,
			"error", err,
		)
	}
}
