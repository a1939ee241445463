package audit

import (
	"context"
	"log/slog"
)

// Appender is the append-only half of Store, for sinks that cannot serve
// reads.
type Appender interface {
	Append(ctx context.Context, event Event) error
}

// FanoutStore writes every event to a primary store and mirrors it to
// best-effort sinks. The primary write is authoritative; a sink failure is
// logged and does not fail the append.
type FanoutStore struct {
	primary Store
	sinks   []Appender
	logger  *slog.Logger
}

func NewFanoutStore(primary Store, logger *slog.Logger, sinks ...Appender) *FanoutStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &FanoutStore{primary: primary, sinks: sinks, logger: logger}
}

func (s *FanoutStore) Append(ctx context.Context, event Event) error {
	if err := s.primary.Append(ctx, event); err != nil {
		return err
	}
	for _, sink := range s.sinks {
		if err := sink.Append(ctx, event); err != nil {
			s.logger.WarnContext(ctx, "audit sink append failed",
				"action", event.Action,
				"error", err,
			)
		}
	}
	return nil
}

func (s *FanoutStore) ListRecent(ctx context.Context, limit int) ([]Event, error) {
	return s.primary.ListRecent(ctx, limit)
}
