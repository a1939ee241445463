package audit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublisherSyncMode(t *testing.T) {
	store := NewInMemoryStore()
	pub := NewPublisher(store)
	defer pub.Close()

	err := pub.Emit(context.Background(), Event{
		Action:   ActionAnalysisCompleted,
		Username: "sync_user",
	})
	require.NoError(t, err)

	events, err := pub.List(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, ActionAnalysisCompleted, events[0].Action)
	assert.False(t, events[0].Timestamp.IsZero(), "publisher should stamp events")
}

func TestPublisherAsyncMode(t *testing.T) {
	store := NewInMemoryStore()
	pub := NewPublisher(store, WithAsyncBuffer(10))

	err := pub.Emit(context.Background(), Event{
		Action:   ActionAnalysisRejected,
		Username: "async_user",
		Reason:   "unparseable_number",
	})
	require.NoError(t, err)

	// Close drains the queue.
	pub.Close()

	events, err := store.ListRecent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, ActionAnalysisRejected, events[0].Action)
	assert.Equal(t, "unparseable_number", events[0].Reason)
}

func TestPublisherAsyncDrainsOnClose(t *testing.T) {
	store := NewInMemoryStore()
	pub := NewPublisher(store, WithAsyncBuffer(100))

	for i := 0; i < 10; i++ {
		err := pub.Emit(context.Background(), Event{
			Action:   ActionAnalysisCompleted,
			Username: "drain_user",
		})
		require.NoError(t, err)
	}

	pub.Close()

	events, err := store.ListRecent(context.Background(), 100)
	require.NoError(t, err)
	assert.Len(t, events, 10)
}

func TestPublisherCloseIdempotent(t *testing.T) {
	pub := NewPublisher(NewInMemoryStore(), WithAsyncBuffer(1))
	pub.Close()
	pub.Close()
}

type failingStore struct{}

func (failingStore) Append(context.Context, Event) error { return errors.New("sink down") }
func (failingStore) ListRecent(context.Context, int) ([]Event, error) {
	return nil, errors.New("sink down")
}

func TestFanoutPrimaryFailureFailsAppend(t *testing.T) {
	fanout := NewFanoutStore(failingStore{}, nil)
	err := fanout.Append(context.Background(), Event{Action: ActionHistoryPurged})
	require.Error(t, err)
}

func TestFanoutSinkFailureIsSwallowed(t *testing.T) {
	primary := NewInMemoryStore()
	fanout := NewFanoutStore(primary, nil, failingStore{})

	err := fanout.Append(context.Background(), Event{
		Action:    ActionHistoryPurged,
		Timestamp: time.Now(),
	})
	require.NoError(t, err)

	events, err := fanout.ListRecent(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, events, 1)
}

func TestMemoryStoreListRecentNewestFirst(t *testing.T) {
	store := NewInMemoryStore()
	for _, name := range []string{"a", "b", "c"} {
		require.NoError(t, store.Append(context.Background(), Event{Username: name}))
	}

	events, err := store.ListRecent(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "c", events[0].Username)
	assert.Equal(t, "b", events[1].Username)
}
