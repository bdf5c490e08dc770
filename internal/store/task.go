package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/dkemper/driftboard-api/internal/domain"
)

// TaskWithContext is a task record joined with its board context.
// Column is populated when the listing was requested with WithColumn;
// it is nil otherwise.
type TaskWithContext struct {
	Task   *domain.Task
	Column *domain.Column
}

// ListOptions controls which related records are attached when listing tasks.
type ListOptions struct {
	// WithColumn attaches each task's column, including its type.
	// The stale-triage workflow needs this to exclude terminal columns.
	WithColumn bool
}

// TaskStore defines the interface for task data persistence.
type TaskStore interface {
	// Create saves a new task to the store.
	// The task must be valid according to domain validation rules.
	// Returns ErrInvalidEntity if the referenced board or column does not exist.
	Create(ctx context.Context, task *domain.Task) error

	// GetByID retrieves a task by its unique ID, hydrating all fields
	// the entity tracks. Returns ErrTaskNotFound if the task does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error)

	// Update persists the current state of an existing task. This is the
	// durability point of the mutation workflows: events buffered on the
	// entity may only be published after Update returns nil.
	// Returns ErrTaskNotFound if the task does not exist.
	Update(ctx context.Context, task *domain.Task) error

	// ListByBoard retrieves all tasks belonging to the given board,
	// with related records attached per opts. An empty board yields an
	// empty slice, not an error.
	ListByBoard(ctx context.Context, boardID uuid.UUID, opts ListOptions) ([]*TaskWithContext, error)

	// FindStale retrieves all tasks, system-wide, whose LastMovedAt is
	// older than thresholdDays days. The caller applies board scoping,
	// done-task exclusion, and terminal-column filtering.
	FindStale(ctx context.Context, thresholdDays int) ([]*domain.Task, error)

	// WithTxTaskStore returns a new TaskStore instance that uses the
	// provided transaction. The transaction is created and managed by
	// the caller, typically via RunInTransaction.
	WithTxTaskStore(tx *sql.Tx) TaskStore
}
