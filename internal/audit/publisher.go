package audit

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Publisher captures structured audit events. By default it writes through to
// the store synchronously; with an async buffer, Emit enqueues and a
// background goroutine drains, trading durability for request latency.
type Publisher struct {
	store  Store
	logger *slog.Logger

	inbox chan Event
	wg    sync.WaitGroup
	once  sync.Once
}

// PublisherOption configures a Publisher.
type PublisherOption func(*Publisher)

// WithLogger sets a logger for drop and persistence failures.
func WithLogger(logger *slog.Logger) PublisherOption {
	return func(p *Publisher) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithAsyncBuffer switches the publisher to asynchronous mode with the given
// queue capacity.
func WithAsyncBuffer(size int) PublisherOption {
	return func(p *Publisher) {
		if size > 0 {
			p.inbox = make(chan Event, size)
		}
	}
}

func NewPublisher(store Store, opts ...PublisherOption) *Publisher {
	p := &Publisher{
		store:  store,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}
	if p.inbox != nil {
		p.wg.Add(1)
		go p.drain()
	}
	return p
}

// Emit records one event. In async mode a full queue drops the event rather
// than blocking the request path.
func (p *Publisher) Emit(ctx context.Context, event Event) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	if p.inbox == nil {
		return p.store.Append(ctx, event)
	}
	select {
	case p.inbox <- event:
	default:
		p.logger.WarnContext(ctx, "audit queue full, dropping event",
			"action", event.Action,
			"username", event.Username,
		)
	}
	return nil
}

// List returns the most recent events, newest first.
func (p *Publisher) List(ctx context.Context, limit int) ([]Event, error) {
	return p.store.ListRecent(ctx, limit)
}

// Close drains any queued events and stops the background goroutine.
func (p *Publisher) Close() {
	p.once.Do(func() {
		if p.inbox != nil {
			close(p.inbox)
			p.wg.Wait()
		}
	})
}

func (p *Publisher) drain() {
	defer p.wg.Done()
	for event := range p.inbox {
		if err := p.store.Append(context.Background(), event); err != nil {
			p.logger.Error("audit event persistence failed",
				"action", event.Action,
				"error", err,
			)
		}
	}
}
