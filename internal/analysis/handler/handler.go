// Package handler exposes the analysis endpoints over HTTP.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"riskscope/internal/analysis"
	"riskscope/internal/analysis/store"
	dErrors "riskscope/pkg/domain-errors"
	"riskscope/pkg/platform/httputil"
	"riskscope/pkg/platform/middleware/request"
)

// Service defines the analysis operations the handler needs.
type Service interface {
	Analyze(ctx context.Context, raw map[string]any) (*analysis.Result, error)
	History(ctx context.Context, limit int) ([]store.Record, error)
	Lookup(ctx context.Context, id uuid.UUID) (*store.Record, error)
	PurgeHistory(ctx context.Context) (int64, error)
}

// Handler handles analysis and history endpoints.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// Option configures a Handler.
type Option func(*Handler)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(h *Handler) {
		if logger != nil {
			h.logger = logger
		}
	}
}

func New(service Service, opts ...Option) *Handler {
	h := &Handler{
		service: service,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(h)
		}
	}
	return h
}

// Register mounts the public analysis routes. Paths are relative to the
// group the caller mounts them under.
func (h *Handler) Register(r chi.Router) {
	r.Post("/analyze", h.handleAnalyze)
	r.Get("/history", h.handleHistory)
	r.Get("/history/{id}", h.handleLookup)
}

// RegisterAdmin mounts the privileged history routes. The caller wraps them
// in the admin auth middleware.
func (h *Handler) RegisterAdmin(r chi.Router) {
	r.Get("/history", h.handleHistory)
	r.Delete("/history", h.handlePurgeHistory)
}

func (h *Handler) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := request.GetRequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[AnalyzeRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	result, err := h.service.Analyze(ctx, req.Fields)
	if err != nil {
		var fieldErr httputil.FieldError
		if errors.As(err, &fieldErr) {
			h.logger.WarnContext(ctx, "analysis rejected",
				"request_id", requestID,
				"field", fieldErr.Field(),
				"reason", fieldErr.Reason(),
			)
			httputil.WriteError(w, err)
			return
		}
		h.logger.ErrorContext(ctx, "analysis failed",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeInternal, "analysis failed"))
		return
	}

	httputil.WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := request.GetRequestID(ctx)

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "limit must be a positive integer"))
			return
		}
		limit = parsed
	}

	records, err := h.service.History(ctx, limit)
	if err != nil {
		h.logger.ErrorContext(ctx, "history lookup failed",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeInternal, "failed to load history"))
		return
	}

	httputil.WriteJSON(w, http.StatusOK, newHistoryResponse(records))
}

func (h *Handler) handleLookup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := request.GetRequestID(ctx)

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "id must be a UUID"))
		return
	}

	rec, err := h.service.Lookup(ctx, id)
	if err != nil {
		if dErrors.CodeOf(err) == dErrors.CodeNotFound {
			httputil.WriteError(w, err)
			return
		}
		h.logger.ErrorContext(ctx, "history lookup failed",
			"request_id", requestID,
			"id", id,
			"error", err,
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeInternal, "failed to load analysis"))
		return
	}

	httputil.WriteJSON(w, http.StatusOK, newHistoryEntry(*rec))
}

func (h *Handler) handlePurgeHistory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := request.GetRequestID(ctx)

	removed, err := h.service.PurgeHistory(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "history purge failed",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeInternal, "failed to purge history"))
		return
	}

	httputil.WriteJSON(w, http.StatusOK, PurgeResponse{Removed: removed})
}
