// Package store persists completed analyses for the history endpoints.
package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"riskscope/internal/analysis"
)

// Record is one persisted analysis.
type Record struct {
	ID        uuid.UUID
	Result    analysis.Result
	CreatedAt time.Time
}

// AnalysisStore persists and retrieves analysis records.
type AnalysisStore interface {
	// Save appends one record.
	Save(ctx context.Context, rec Record) error
	// Get returns the record with the given ID, or an error wrapping
	// sentinel.ErrNotFound when no such record exists.
	Get(ctx context.Context, id uuid.UUID) (*Record, error)
	// ListRecent returns up to limit records, newest first.
	ListRecent(ctx context.Context, limit int) ([]Record, error)
	// Purge deletes all records and reports how many were removed.
	Purge(ctx context.Context) (int64, error)
}
