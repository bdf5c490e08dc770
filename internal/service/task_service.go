package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/google/uuid"

	"github.com/dkemper/driftboard-api/internal/domain"
	"github.com/dkemper/driftboard-api/internal/events"
	"github.com/dkemper/driftboard-api/internal/platform/logger"
	"github.com/dkemper/driftboard-api/internal/store"
)

// DefaultStaleThresholdDays is used when a caller passes a non-positive
// threshold to GetStaleTasks.
const DefaultStaleThresholdDays = 7

// TaskRepository defines the repository interface for the service layer.
// It is satisfied by store.TaskStore.
type TaskRepository interface {
	// Create saves a new task to the store
	Create(ctx context.Context, task *domain.Task) error

	// GetByID retrieves a task by its unique ID
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error)

	// Update persists the current state of an existing task
	Update(ctx context.Context, task *domain.Task) error

	// ListByBoard retrieves all tasks belonging to the given board
	ListByBoard(ctx context.Context, boardID uuid.UUID, opts store.ListOptions) ([]*store.TaskWithContext, error)

	// FindStale retrieves all tasks, system-wide, idle longer than thresholdDays
	FindStale(ctx context.Context, thresholdDays int) ([]*domain.Task, error)
}

// TaskService provides task lifecycle operations.
type TaskService interface {
	// CreateTask creates a new task in the given board and column.
	CreateTask(ctx context.Context, boardID, columnID uuid.UUID, title, notes string) (*domain.Task, error)

	// GetStaleTasks returns the stale tasks of one board, ready for triage:
	// idle beyond the threshold, not done, not sitting in a terminal column,
	// ordered oldest-moved first. Read-only; an empty board or no matches
	// yields an empty slice.
	GetStaleTasks(ctx context.Context, boardID uuid.UUID, thresholdDays int) ([]*store.TaskWithContext, error)

	// MarkStale sets a task's stale flag, persists it, and publishes the
	// buffered domain events after the persist succeeds. Returns the
	// persisted task. Fails with ErrTaskNotFound if the task is absent.
	MarkStale(ctx context.Context, id uuid.UUID, isStale bool) (*domain.Task, error)

	// MoveTask moves a task to another column, refreshing its movement
	// timestamp and clearing staleness, then publishes the buffered events.
	MoveTask(ctx context.Context, id, columnID uuid.UUID) (*domain.Task, error)

	// CompleteTask marks a task as done, then publishes the buffered events.
	CompleteTask(ctx context.Context, id uuid.UUID) (*domain.Task, error)
}

// TaskServiceError wraps errors from the task service with context.
type TaskServiceError struct {
	// Operation is the operation that failed (e.g., "mark_stale", "get_stale_tasks")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for TaskServiceError.
func (e *TaskServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("task service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("task service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *TaskServiceError) Unwrap() error {
	return e.Err
}

// NewTaskServiceError creates a new TaskServiceError.
// It returns known sentinel errors directly without wrapping.
func NewTaskServiceError(operation, message string, err error) error {
	if err == nil {
		return nil
	}

	// Service-defined sentinels pass through untouched
	if errors.Is(err, ErrTaskNotFound) || errors.Is(err, ErrBoardNotFound) {
		return err
	}

	// Store-level sentinels map to service-level ones
	if errors.Is(err, store.ErrTaskNotFound) {
		return fmt.Errorf("%w: %s", ErrTaskNotFound, message)
	}
	if errors.Is(err, store.ErrBoardNotFound) {
		return fmt.Errorf("%w: %s", ErrBoardNotFound, message)
	}

	return &TaskServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

// taskServiceImpl implements the TaskService interface
type taskServiceImpl struct {
	taskRepo TaskRepository
	eventBus events.EventBus
	logger   *slog.Logger
}

// NewTaskService creates a new TaskService.
// It returns an error if any of the required dependencies are nil.
func NewTaskService(
	taskRepo TaskRepository,
	eventBus events.EventBus,
	logger *slog.Logger,
) (TaskService, error) {
	if taskRepo == nil {
		return nil, domain.NewValidationError("taskRepo", "cannot be nil", domain.ErrValidation)
	}
	if eventBus == nil {
		return nil, domain.NewValidationError("eventBus", "cannot be nil", domain.ErrValidation)
	}

	// Use provided logger or create default
	if logger == nil {
		logger = slog.Default()
	}

	return &taskServiceImpl{
		taskRepo: taskRepo,
		eventBus: eventBus,
		logger:   logger.With("component", "task_service"),
	}, nil
}

// CreateTask implements TaskService.CreateTask
// Creation buffers no events, so nothing is published here.
func (s *taskServiceImpl) CreateTask(
	ctx context.Context,
	boardID, columnID uuid.UUID,
	title, notes string,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task, err := domain.NewTask(boardID, columnID, title, notes)
	if err != nil {
		log.Error("failed to create task object",
			"error", err,
			"board_id", boardID)
		return nil, NewTaskServiceError("create_task", "failed to create task object", err)
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		log.Error("failed to save task",
			"error", err,
			"task_id", task.ID,
			"board_id", boardID)
		return nil, NewTaskServiceError("create_task", "failed to save task", err)
	}

	log.Info("task created",
		"task_id", task.ID,
		"board_id", boardID,
		"column_id", columnID)

	return task, nil
}

// GetStaleTasks implements TaskService.GetStaleTasks
//
// The staleness query runs system-wide and the board listing separately;
// the intersection is filtered here rather than in SQL so the exclusion
// rules (done tasks, terminal columns) live in one place next to their
// tests.
func (s *taskServiceImpl) GetStaleTasks(
	ctx context.Context,
	boardID uuid.UUID,
	thresholdDays int,
) ([]*store.TaskWithContext, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if thresholdDays <= 0 {
		thresholdDays = DefaultStaleThresholdDays
	}

	log.Debug("retrieving stale tasks",
		"board_id", boardID,
		"threshold_days", thresholdDays)

	// 1. All tasks idle beyond the threshold, system-wide, keyed by id.
	staleTasks, err := s.taskRepo.FindStale(ctx, thresholdDays)
	if err != nil {
		log.Error("failed to find stale tasks",
			"error", err,
			"threshold_days", thresholdDays)
		return nil, NewTaskServiceError("get_stale_tasks", "failed to find stale tasks", err)
	}

	staleByID := make(map[uuid.UUID]struct{}, len(staleTasks))
	for _, task := range staleTasks {
		staleByID[task.ID] = struct{}{}
	}

	// 2. The board's tasks with column context attached.
	boardTasks, err := s.taskRepo.ListByBoard(ctx, boardID, store.ListOptions{WithColumn: true})
	if err != nil {
		log.Error("failed to list board tasks",
			"error", err,
			"board_id", boardID)
		return nil, NewTaskServiceError("get_stale_tasks", "failed to list board tasks", err)
	}

	// 3. Keep board tasks that are stale-by-time, not done, and not in a
	// terminal column.
	result := make([]*store.TaskWithContext, 0, len(boardTasks))
	for _, tc := range boardTasks {
		if _, isStale := staleByID[tc.Task.ID]; !isStale {
			continue
		}
		if tc.Task.IsDone {
			continue
		}
		if tc.Column != nil && tc.Column.Type.IsTerminal() {
			continue
		}
		result = append(result, tc)
	}

	// 4. Oldest-moved first: the triage ordering.
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Task.LastMovedAt.Before(result[j].Task.LastMovedAt)
	})

	log.Debug("retrieved stale tasks",
		"board_id", boardID,
		"stale_count", len(result))

	return result, nil
}

// MarkStale implements TaskService.MarkStale
//
// Events are published only after the repository update succeeds; a
// persistence failure surfaces to the caller with nothing published.
func (s *taskServiceImpl) MarkStale(
	ctx context.Context,
	id uuid.UUID,
	isStale bool,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	// 1. Load and hydrate the task.
	task, err := s.taskRepo.GetByID(ctx, id)
	if err != nil {
		log.Error("failed to retrieve task for stale marking",
			"error", err,
			"task_id", id)
		return nil, NewTaskServiceError("mark_stale", retrievalFailureMessage(id, err), err)
	}

	// 2. Mutate; the entity buffers the corresponding event.
	task.MarkStale(isStale)

	// 3. Persist. Durability point: nothing is published if this fails.
	if err := s.taskRepo.Update(ctx, task); err != nil {
		log.Error("failed to persist stale flag",
			"error", err,
			"task_id", id,
			"is_stale", isStale)
		return nil, NewTaskServiceError("mark_stale", "failed to persist task", err)
	}

	// 4. Publish the buffered events as one batch, then clear the buffer.
	if err := s.publishRecorded(ctx, task); err != nil {
		return nil, NewTaskServiceError("mark_stale", "failed to publish events", err)
	}

	log.Info("task stale flag persisted",
		"task_id", id,
		"is_stale", isStale)

	return task, nil
}

// MoveTask implements TaskService.MoveTask
func (s *taskServiceImpl) MoveTask(
	ctx context.Context,
	id, columnID uuid.UUID,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task, err := s.taskRepo.GetByID(ctx, id)
	if err != nil {
		log.Error("failed to retrieve task for move",
			"error", err,
			"task_id", id)
		return nil, NewTaskServiceError("move_task", retrievalFailureMessage(id, err), err)
	}

	if err := task.MoveToColumn(columnID); err != nil {
		return nil, NewTaskServiceError("move_task", "invalid target column", err)
	}

	if err := s.taskRepo.Update(ctx, task); err != nil {
		log.Error("failed to persist task move",
			"error", err,
			"task_id", id,
			"column_id", columnID)
		return nil, NewTaskServiceError("move_task", "failed to persist task", err)
	}

	if err := s.publishRecorded(ctx, task); err != nil {
		return nil, NewTaskServiceError("move_task", "failed to publish events", err)
	}

	log.Info("task moved",
		"task_id", id,
		"column_id", columnID)

	return task, nil
}

// CompleteTask implements TaskService.CompleteTask
func (s *taskServiceImpl) CompleteTask(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task, err := s.taskRepo.GetByID(ctx, id)
	if err != nil {
		log.Error("failed to retrieve task for completion",
			"error", err,
			"task_id", id)
		return nil, NewTaskServiceError("complete_task", retrievalFailureMessage(id, err), err)
	}

	task.Complete()

	if err := s.taskRepo.Update(ctx, task); err != nil {
		log.Error("failed to persist task completion",
			"error", err,
			"task_id", id)
		return nil, NewTaskServiceError("complete_task", "failed to persist task", err)
	}

	if err := s.publishRecorded(ctx, task); err != nil {
		return nil, NewTaskServiceError("complete_task", "failed to publish events", err)
	}

	log.Info("task completed", "task_id", id)

	return task, nil
}

// retrievalFailureMessage distinguishes a missing task from a failed lookup
// so callers never see "not found" wording for a transient store failure.
func retrievalFailureMessage(id uuid.UUID, err error) string {
	if errors.Is(err, store.ErrTaskNotFound) {
		return fmt.Sprintf("Task not found: %s", id)
	}
	return "failed to retrieve task"
}

// publishRecorded hands the entity's buffered events to the bus as a
// single batch and clears the buffer. Called exactly once per workflow
// invocation, strictly after a successful persist, so subscribers never
// see events for unpersisted changes.
func (s *taskServiceImpl) publishRecorded(ctx context.Context, task *domain.Task) error {
	recorded := task.DomainEvents()
	if len(recorded) == 0 {
		return nil
	}

	if err := s.eventBus.PublishAll(ctx, recorded); err != nil {
		s.logger.Error("failed to publish task events",
			"error", err,
			"task_id", task.ID,
			"event_count", len(recorded))
		return err
	}

	task.ClearDomainEvents()
	return nil
}
