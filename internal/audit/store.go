package audit

import "context"

// Store is an append-only event sink with bounded reads for inspection.
type Store interface {
	Append(ctx context.Context, event Event) error
	ListRecent(ctx context.Context, limit int) ([]Event, error)
}
