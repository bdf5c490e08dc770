package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/dkemper/driftboard-api/internal/events"
)

// Task-specific validation errors
var (
	// ErrTaskIDEmpty is returned when a task ID is empty or nil.
	ErrTaskIDEmpty = errors.New("task ID cannot be empty")

	// ErrTaskBoardIDEmpty is returned when a task's board ID is empty or nil.
	ErrTaskBoardIDEmpty = errors.New("task board ID cannot be empty")

	// ErrTaskColumnIDEmpty is returned when a task's column ID is empty or nil.
	ErrTaskColumnIDEmpty = errors.New("task column ID cannot be empty")

	// ErrTaskTitleEmpty is returned when a task's title is empty.
	ErrTaskTitleEmpty = errors.New("task title cannot be empty")
)

// Task is the aggregate root for a single task on a board. It owns its
// consistency boundary and records a domain event for each mutation.
//
// Recorded events are buffered on the instance and must be harvested by
// the caller (via DomainEvents) after a successful persist, then cleared
// with ClearDomainEvents. The entity never clears the buffer itself, so
// events for changes that failed to persist are simply discarded along
// with the instance.
//
// IsStale and IsDone are independent flags: completing a task does not
// clear a previously set stale flag.
type Task struct {
	ID          uuid.UUID `json:"id"`
	BoardID     uuid.UUID `json:"board_id"`
	ColumnID    uuid.UUID `json:"column_id"`
	Title       string    `json:"title"`
	Notes       string    `json:"notes,omitempty"`
	IsDone      bool      `json:"is_done"`
	IsStale     bool      `json:"is_stale"`
	LastMovedAt time.Time `json:"last_moved_at"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// recorded holds events buffered since hydration, in insertion order.
	// Not serialized; a freshly hydrated task always starts empty.
	recorded []*events.TaskEvent
}

// NewTask creates a new Task in the given board and column.
// It generates a new UUID for the task ID, stamps LastMovedAt with the
// creation time, and sets the creation/update timestamps.
// Returns an error if validation fails.
func NewTask(boardID, columnID uuid.UUID, title, notes string) (*Task, error) {
	now := time.Now().UTC()
	task := &Task{
		ID:          uuid.New(),
		BoardID:     boardID,
		ColumnID:    columnID,
		Title:       title,
		Notes:       notes,
		LastMovedAt: now,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Identity implements the Entity interface.
func (t *Task) Identity() uuid.UUID {
	return t.ID
}

// Kind implements the Entity interface.
func (t *Task) Kind() string {
	return "task"
}

// Validate checks if the Task has valid data.
// Returns an error if any field fails validation.
func (t *Task) Validate() error {
	if t.ID == uuid.Nil {
		return NewValidationError("id", "cannot be empty", ErrTaskIDEmpty)
	}

	if t.BoardID == uuid.Nil {
		return NewValidationError("board_id", "cannot be empty", ErrTaskBoardIDEmpty)
	}

	if t.ColumnID == uuid.Nil {
		return NewValidationError("column_id", "cannot be empty", ErrTaskColumnIDEmpty)
	}

	if t.Title == "" {
		return NewValidationError("title", "cannot be empty", ErrTaskTitleEmpty)
	}

	return nil
}

// MarkStale sets the stale flag and records a TaskStaleFlagged event.
// The event is recorded unconditionally, even when the flag matches the
// previous value: re-flagging signals intent and subscribers are expected
// to handle duplicates. LastMovedAt is never touched here; staleness is
// an annotation, not a movement.
func (t *Task) MarkStale(flag bool) {
	t.IsStale = flag
	t.UpdatedAt = time.Now().UTC()
	t.record(events.TypeTaskStaleFlagged, events.StaleFlaggedPayload{IsStale: flag})
}

// MoveToColumn moves the task to the given column, refreshes LastMovedAt,
// and clears the stale flag: a move is exactly the activity staleness
// measures the absence of. Records a TaskMoved event.
// Returns an error if the column ID is empty.
func (t *Task) MoveToColumn(columnID uuid.UUID) error {
	if columnID == uuid.Nil {
		return NewValidationError("column_id", "cannot be empty", ErrTaskColumnIDEmpty)
	}

	from := t.ColumnID
	now := time.Now().UTC()

	t.ColumnID = columnID
	t.IsStale = false
	t.LastMovedAt = now
	t.UpdatedAt = now
	t.record(events.TypeTaskMoved, events.MovedPayload{
		FromColumnID: from,
		ToColumnID:   columnID,
	})

	return nil
}

// Complete marks the task as done and records a TaskCompleted event.
// The stale flag is left as-is.
func (t *Task) Complete() {
	t.IsDone = true
	t.UpdatedAt = time.Now().UTC()
	t.record(events.TypeTaskCompleted, events.CompletionPayload{IsDone: true})
}

// Reopen marks the task as not done and records a TaskReopened event.
func (t *Task) Reopen() {
	t.IsDone = false
	t.UpdatedAt = time.Now().UTC()
	t.record(events.TypeTaskReopened, events.CompletionPayload{IsDone: false})
}

// UpdateDetails updates the task's title and notes and records a
// TaskEdited event listing the changed fields.
// Returns an error if the new title is empty.
func (t *Task) UpdateDetails(title, notes string) error {
	if title == "" {
		return NewValidationError("title", "cannot be empty", ErrTaskTitleEmpty)
	}

	changed := make(map[string]string)
	if title != t.Title {
		changed["title"] = title
	}
	if notes != t.Notes {
		changed["notes"] = notes
	}

	t.Title = title
	t.Notes = notes
	t.UpdatedAt = time.Now().UTC()
	t.record(events.TypeTaskEdited, events.EditedPayload{ChangedFields: changed})

	return nil
}

// DomainEvents returns a snapshot of the buffered events in insertion
// order. The returned slice is a copy; later mutations or a call to
// ClearDomainEvents do not affect it.
func (t *Task) DomainEvents() []*events.TaskEvent {
	snapshot := make([]*events.TaskEvent, len(t.recorded))
	copy(snapshot, t.recorded)
	return snapshot
}

// ClearDomainEvents empties the event buffer. Callers invoke this after
// the buffered events have been handed to the event bus.
func (t *Task) ClearDomainEvents() {
	t.recorded = nil
}

// record appends an event to the buffer. Payload types defined in the
// events package always serialize; an event is only dropped if given a
// payload that cannot be marshaled, which no mutation here does.
func (t *Task) record(eventType string, payload interface{}) {
	event, err := events.NewTaskEvent(t.ID, eventType, payload)
	if err != nil {
		return
	}
	t.recorded = append(t.recorded, event)
}
