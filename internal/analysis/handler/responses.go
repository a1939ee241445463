package handler

import (
	"time"

	"riskscope/internal/analysis"
	"riskscope/internal/analysis/store"
)

// HistoryEntry is one stored analysis in a history listing.
type HistoryEntry struct {
	ID        string          `json:"id"`
	CreatedAt time.Time       `json:"created_at"`
	Result    analysis.Result `json:"result"`
}

// HistoryResponse wraps a history listing.
type HistoryResponse struct {
	History []HistoryEntry `json:"history"`
	Count   int            `json:"count"`
}

func newHistoryEntry(rec store.Record) HistoryEntry {
	return HistoryEntry{
		ID:        rec.ID.String(),
		CreatedAt: rec.CreatedAt,
		Result:    rec.Result,
	}
}

func newHistoryResponse(records []store.Record) HistoryResponse {
	entries := make([]HistoryEntry, 0, len(records))
	for _, rec := range records {
		entries = append(entries, newHistoryEntry(rec))
	}
	return HistoryResponse{History: entries, Count: len(entries)}
}

// PurgeResponse reports how many records a purge removed.
type PurgeResponse struct {
	Removed int64 `json:"removed"`
}
