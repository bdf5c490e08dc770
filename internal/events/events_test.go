package events

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTaskEvent(t *testing.T) {
	aggregateID := uuid.New()
	payload := StaleFlaggedPayload{IsStale: true}

	event, err := NewTaskEvent(aggregateID, TypeTaskStaleFlagged, payload)

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, event.ID)
	assert.Equal(t, aggregateID, event.AggregateID)
	assert.Equal(t, TypeTaskStaleFlagged, event.Type)
	assert.NotNil(t, event.Payload)
	assert.WithinDuration(t, time.Now(), event.CreatedAt, 2*time.Second)

	var decoded StaleFlaggedPayload
	require.NoError(t, event.UnmarshalPayload(&decoded))
	assert.True(t, decoded.IsStale)
}

func TestNewTaskEventUnserializablePayload(t *testing.T) {
	// Channels cannot be serialized to JSON
	_, err := NewTaskEvent(uuid.New(), TypeTaskMoved, make(chan int))
	assert.Error(t, err)
}

// recordingHandler implements the EventHandler interface for testing
type recordingHandler struct {
	received []*TaskEvent
	err      error
}

func (h *recordingHandler) HandleEvent(ctx context.Context, event *TaskEvent) error {
	h.received = append(h.received, event)
	return h.err
}

func TestInMemoryEventBusPublishAll(t *testing.T) {
	bus := NewInMemoryEventBus(nil)
	first := &recordingHandler{}
	second := &recordingHandler{}
	bus.RegisterHandler(first)
	bus.RegisterHandler(second)

	aggregateID := uuid.New()
	e1, err := NewTaskEvent(aggregateID, TypeTaskStaleFlagged, StaleFlaggedPayload{IsStale: true})
	require.NoError(t, err)
	e2, err := NewTaskEvent(aggregateID, TypeTaskMoved, MovedPayload{
		FromColumnID: uuid.New(),
		ToColumnID:   uuid.New(),
	})
	require.NoError(t, err)

	err = bus.PublishAll(context.Background(), []*TaskEvent{e1, e2})
	require.NoError(t, err)

	// Every handler sees the whole batch in order
	for _, h := range []*recordingHandler{first, second} {
		require.Len(t, h.received, 2)
		assert.Equal(t, e1.ID, h.received[0].ID)
		assert.Equal(t, e2.ID, h.received[1].ID)
	}
}

func TestInMemoryEventBusHandlerError(t *testing.T) {
	bus := NewInMemoryEventBus(nil)
	failing := &recordingHandler{err: assert.AnError}
	healthy := &recordingHandler{}
	bus.RegisterHandler(failing)
	bus.RegisterHandler(healthy)

	event, err := NewTaskEvent(uuid.New(), TypeTaskCompleted, CompletionPayload{IsDone: true})
	require.NoError(t, err)

	err = bus.PublishAll(context.Background(), []*TaskEvent{event})

	// First error is surfaced, delivery to other handlers still happens
	assert.ErrorIs(t, err, assert.AnError)
	assert.Len(t, healthy.received, 1)
}

func TestInMemoryEventBusEmptyBatch(t *testing.T) {
	bus := NewInMemoryEventBus(nil)
	handler := &recordingHandler{}
	bus.RegisterHandler(handler)

	require.NoError(t, bus.PublishAll(context.Background(), nil))
	require.NoError(t, bus.PublishAll(context.Background(), []*TaskEvent{}))
	assert.Empty(t, handler.received)
}

func TestInMemoryEventBusNoHandlers(t *testing.T) {
	bus := NewInMemoryEventBus(nil)

	event, err := NewTaskEvent(uuid.New(), TypeTaskReopened, CompletionPayload{IsDone: false})
	require.NoError(t, err)

	// Publishing with no subscribers is not an error
	assert.NoError(t, bus.PublishAll(context.Background(), []*TaskEvent{event}))
}
