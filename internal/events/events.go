package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Task event types emitted by the task aggregate.
const (
	TypeTaskStaleFlagged = "task.stale_flagged"
	TypeTaskMoved        = "task.moved"
	TypeTaskCompleted    = "task.completed"
	TypeTaskReopened     = "task.reopened"
	TypeTaskEdited       = "task.edited"
)

// TaskEvent is an immutable record of something that happened to a task
// aggregate. Events are produced by entity mutations, buffered on the
// entity, and published as a batch only after the mutated state has been
// persisted.
type TaskEvent struct {
	// ID is a unique identifier for this event
	ID uuid.UUID `json:"id"`

	// AggregateID identifies the task the event belongs to
	AggregateID uuid.UUID `json:"aggregate_id"`

	// Type indicates what happened (e.g., task.stale_flagged)
	Type string `json:"type"`

	// Payload contains the event-specific data serialized as JSON
	Payload json.RawMessage `json:"payload"`

	// CreatedAt is the timestamp when the event was created
	CreatedAt time.Time `json:"created_at"`
}

// UnmarshalPayload decodes the event payload into the provided structure.
func (e *TaskEvent) UnmarshalPayload(v interface{}) error {
	return json.Unmarshal(e.Payload, v)
}

// NewTaskEvent creates a new TaskEvent for the given aggregate.
// Construction only fails if the payload cannot be serialized to JSON;
// all payload types defined in this package serialize cleanly.
func NewTaskEvent(aggregateID uuid.UUID, eventType string, payload interface{}) (*TaskEvent, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return &TaskEvent{
		ID:          uuid.New(),
		AggregateID: aggregateID,
		Type:        eventType,
		Payload:     payloadBytes,
		CreatedAt:   time.Now().UTC(),
	}, nil
}

// StaleFlaggedPayload is the payload for TypeTaskStaleFlagged events.
type StaleFlaggedPayload struct {
	IsStale bool `json:"is_stale"`
}

// MovedPayload is the payload for TypeTaskMoved events.
type MovedPayload struct {
	FromColumnID uuid.UUID `json:"from_column_id"`
	ToColumnID   uuid.UUID `json:"to_column_id"`
}

// CompletionPayload is the payload for TypeTaskCompleted and
// TypeTaskReopened events.
type CompletionPayload struct {
	IsDone bool `json:"is_done"`
}

// EditedPayload is the payload for TypeTaskEdited events. ChangedFields
// maps field names to their new values.
type EditedPayload struct {
	ChangedFields map[string]string `json:"changed_fields"`
}

// EventHandler defines an interface for components that subscribe to
// task events. Handlers process events and take appropriate actions
// (notifications, analytics, projections).
type EventHandler interface {
	// HandleEvent processes the given event within the provided context.
	// Returns an error if the event cannot be handled successfully.
	HandleEvent(ctx context.Context, event *TaskEvent) error
}

// EventBus defines the publish contract the workflows depend on.
// Implementations deliver events at least once to every registered
// subscriber; the core neither retries nor deduplicates.
type EventBus interface {
	// PublishAll publishes the given events as a single batch, in order.
	// Returns an error if the batch cannot be published.
	PublishAll(ctx context.Context, batch []*TaskEvent) error
}
