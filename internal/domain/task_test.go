package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/dkemper/driftboard-api/internal/events"
)

func TestNewTask(t *testing.T) {
	t.Parallel() // Enable parallel execution
	boardID := uuid.New()
	columnID := uuid.New()

	task, err := NewTask(boardID, columnID, "Water the plants", "before they give up")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if task.ID == uuid.Nil {
		t.Error("Expected non-nil UUID, got nil UUID")
	}

	if task.BoardID != boardID {
		t.Errorf("Expected board ID %s, got %s", boardID, task.BoardID)
	}

	if task.ColumnID != columnID {
		t.Errorf("Expected column ID %s, got %s", columnID, task.ColumnID)
	}

	if task.IsDone || task.IsStale {
		t.Error("Expected new task to be neither done nor stale")
	}

	if task.LastMovedAt.IsZero() {
		t.Error("Expected non-zero LastMovedAt time")
	}

	if len(task.DomainEvents()) != 0 {
		t.Error("Expected new task to have no buffered events")
	}

	// Test invalid board ID
	_, err = NewTask(uuid.Nil, columnID, "t", "")
	if !errors.Is(err, ErrTaskBoardIDEmpty) {
		t.Errorf("Expected error %v, got %v", ErrTaskBoardIDEmpty, err)
	}
	if !errors.Is(err, ErrValidation) {
		t.Errorf("Expected error to wrap ErrValidation, got %v", err)
	}

	// Test invalid column ID
	_, err = NewTask(boardID, uuid.Nil, "t", "")
	if !errors.Is(err, ErrTaskColumnIDEmpty) {
		t.Errorf("Expected error %v, got %v", ErrTaskColumnIDEmpty, err)
	}

	// Test empty title
	_, err = NewTask(boardID, columnID, "", "")
	if !errors.Is(err, ErrTaskTitleEmpty) {
		t.Errorf("Expected error %v, got %v", ErrTaskTitleEmpty, err)
	}
}

func TestTaskMarkStale(t *testing.T) {
	t.Parallel()
	task := mustNewTask(t)
	movedAt := task.LastMovedAt

	task.MarkStale(true)

	if !task.IsStale {
		t.Error("Expected task to be stale")
	}
	if !task.LastMovedAt.Equal(movedAt) {
		t.Error("Expected MarkStale to leave LastMovedAt untouched")
	}

	recorded := task.DomainEvents()
	if len(recorded) != 1 {
		t.Fatalf("Expected 1 buffered event, got %d", len(recorded))
	}
	if recorded[0].Type != events.TypeTaskStaleFlagged {
		t.Errorf("Expected event type %s, got %s", events.TypeTaskStaleFlagged, recorded[0].Type)
	}
	if recorded[0].AggregateID != task.ID {
		t.Errorf("Expected aggregate ID %s, got %s", task.ID, recorded[0].AggregateID)
	}

	var payload events.StaleFlaggedPayload
	if err := recorded[0].UnmarshalPayload(&payload); err != nil {
		t.Fatalf("Expected payload to unmarshal, got %v", err)
	}
	if !payload.IsStale {
		t.Error("Expected payload IsStale to be true")
	}
}

func TestTaskMarkStaleRecordsEveryCall(t *testing.T) {
	t.Parallel()
	task := mustNewTask(t)

	// Re-flagging with the same value still records an event: the flag is
	// idempotent, the event stream is not.
	task.MarkStale(true)
	task.MarkStale(true)

	if len(task.DomainEvents()) != 2 {
		t.Errorf("Expected 2 buffered events, got %d", len(task.DomainEvents()))
	}
}

func TestTaskMoveToColumn(t *testing.T) {
	t.Parallel()
	task := mustNewTask(t)
	task.MarkStale(true)
	task.ClearDomainEvents()

	from := task.ColumnID
	movedAt := task.LastMovedAt
	target := uuid.New()

	time.Sleep(time.Millisecond) // ensure the movement timestamp advances

	if err := task.MoveToColumn(target); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if task.ColumnID != target {
		t.Errorf("Expected column ID %s, got %s", target, task.ColumnID)
	}
	if task.IsStale {
		t.Error("Expected move to clear the stale flag")
	}
	if !task.LastMovedAt.After(movedAt) {
		t.Error("Expected move to refresh LastMovedAt")
	}

	recorded := task.DomainEvents()
	if len(recorded) != 1 {
		t.Fatalf("Expected 1 buffered event, got %d", len(recorded))
	}
	var payload events.MovedPayload
	if err := recorded[0].UnmarshalPayload(&payload); err != nil {
		t.Fatalf("Expected payload to unmarshal, got %v", err)
	}
	if payload.FromColumnID != from || payload.ToColumnID != target {
		t.Errorf("Expected move payload %s -> %s, got %s -> %s",
			from, target, payload.FromColumnID, payload.ToColumnID)
	}

	// Moving to a nil column fails and records nothing
	task.ClearDomainEvents()
	err := task.MoveToColumn(uuid.Nil)
	if !errors.Is(err, ErrTaskColumnIDEmpty) {
		t.Errorf("Expected error %v, got %v", ErrTaskColumnIDEmpty, err)
	}
	if len(task.DomainEvents()) != 0 {
		t.Error("Expected failed move to record no event")
	}
}

func TestTaskCompleteAndReopen(t *testing.T) {
	t.Parallel()
	task := mustNewTask(t)
	task.MarkStale(true)
	task.ClearDomainEvents()

	task.Complete()
	if !task.IsDone {
		t.Error("Expected task to be done")
	}
	if !task.IsStale {
		t.Error("Expected completion to leave the stale flag alone")
	}

	task.Reopen()
	if task.IsDone {
		t.Error("Expected task to be reopened")
	}

	recorded := task.DomainEvents()
	if len(recorded) != 2 {
		t.Fatalf("Expected 2 buffered events, got %d", len(recorded))
	}
	if recorded[0].Type != events.TypeTaskCompleted || recorded[1].Type != events.TypeTaskReopened {
		t.Errorf("Expected completed then reopened, got %s then %s",
			recorded[0].Type, recorded[1].Type)
	}
}

func TestTaskUpdateDetails(t *testing.T) {
	t.Parallel()
	task := mustNewTask(t)

	if err := task.UpdateDetails("New title", task.Notes); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	recorded := task.DomainEvents()
	if len(recorded) != 1 {
		t.Fatalf("Expected 1 buffered event, got %d", len(recorded))
	}

	var payload events.EditedPayload
	if err := recorded[0].UnmarshalPayload(&payload); err != nil {
		t.Fatalf("Expected payload to unmarshal, got %v", err)
	}
	if payload.ChangedFields["title"] != "New title" {
		t.Errorf("Expected changed title in payload, got %v", payload.ChangedFields)
	}
	if _, ok := payload.ChangedFields["notes"]; ok {
		t.Error("Expected unchanged notes to be absent from payload")
	}

	if err := task.UpdateDetails("", ""); !errors.Is(err, ErrTaskTitleEmpty) {
		t.Errorf("Expected error %v, got %v", ErrTaskTitleEmpty, err)
	}
}

func TestTaskDomainEventsSnapshot(t *testing.T) {
	t.Parallel()
	task := mustNewTask(t)
	task.MarkStale(true)

	snapshot := task.DomainEvents()
	task.ClearDomainEvents()

	if len(snapshot) != 1 {
		t.Errorf("Expected snapshot to survive ClearDomainEvents, got %d events", len(snapshot))
	}
	if len(task.DomainEvents()) != 0 {
		t.Error("Expected buffer to be empty after ClearDomainEvents")
	}

	// Later mutations must not leak into an earlier snapshot
	task.MarkStale(false)
	if len(snapshot) != 1 {
		t.Errorf("Expected snapshot to stay at 1 event, got %d", len(snapshot))
	}
}

func mustNewTask(t *testing.T) *Task {
	t.Helper()
	task, err := NewTask(uuid.New(), uuid.New(), "Test task", "")
	if err != nil {
		t.Fatalf("Failed to create task: %v", err)
	}
	return task
}
