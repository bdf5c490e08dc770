package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dkemper/driftboard-api/internal/domain"
	"github.com/dkemper/driftboard-api/internal/platform/logger"
	"github.com/dkemper/driftboard-api/internal/store"
)

// PostgreSQL error codes
const (
	pgForeignKeyViolationCode = "23503"
	pgUniqueViolationCode     = "23505"
)

// PostgresTaskStore implements the store.TaskStore interface
// using a PostgreSQL database as the storage backend.
type PostgresTaskStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresTaskStore creates a new PostgreSQL implementation of the TaskStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresTaskStore(db store.DBTX, logger *slog.Logger) *PostgresTaskStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresTaskStore{
		db:     db,
		logger: logger.With(slog.String("component", "task_store")),
	}
}

// Ensure PostgresTaskStore implements store.TaskStore interface
var _ store.TaskStore = (*PostgresTaskStore)(nil)

// Create implements store.TaskStore.Create
// It saves a new task to the database, handling domain validation.
// Returns store.ErrInvalidEntity if the board or column doesn't exist
// (foreign key violation).
func (s *PostgresTaskStore) Create(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		log.Warn("task validation failed during create",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return err
	}

	query := `
		INSERT INTO tasks (id, board_id, column_id, title, notes, is_done, is_stale, last_moved_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		task.ID,
		task.BoardID,
		task.ColumnID,
		task.Title,
		task.Notes,
		task.IsDone,
		task.IsStale,
		task.LastMovedAt,
		task.CreatedAt,
		task.UpdatedAt,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case pgForeignKeyViolationCode:
				log.Warn("foreign key violation during task creation",
					slog.String("error", err.Error()),
					slog.String("task_id", task.ID.String()),
					slog.String("board_id", task.BoardID.String()))
				return fmt.Errorf("%w: board %s or column %s not found",
					store.ErrInvalidEntity, task.BoardID, task.ColumnID)
			case pgUniqueViolationCode:
				log.Warn("unique violation during task creation",
					slog.String("error", err.Error()),
					slog.String("task_id", task.ID.String()))
				return fmt.Errorf("%w: task with ID %s", store.ErrDuplicate, task.ID)
			}
		}

		log.Error("failed to create task",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()),
			slog.String("board_id", task.BoardID.String()))
		return store.NewStoreError("task", "create", "failed to insert row", err)
	}

	log.Info("task created successfully",
		slog.String("task_id", task.ID.String()),
		slog.String("board_id", task.BoardID.String()))
	return nil
}

// GetByID implements store.TaskStore.GetByID
// It retrieves a task by its unique ID, hydrating every field the entity tracks.
// Returns store.ErrTaskNotFound if the task does not exist.
func (s *PostgresTaskStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	log.Debug("retrieving task by ID", slog.String("task_id", id.String()))

	query := `
		SELECT id, board_id, column_id, title, notes, is_done, is_stale, last_moved_at, created_at, updated_at
		FROM tasks
		WHERE id = $1
	`

	var task domain.Task
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&task.ID,
		&task.BoardID,
		&task.ColumnID,
		&task.Title,
		&task.Notes,
		&task.IsDone,
		&task.IsStale,
		&task.LastMovedAt,
		&task.CreatedAt,
		&task.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("task not found", slog.String("task_id", id.String()))
			return nil, store.ErrTaskNotFound
		}

		log.Error("failed to retrieve task",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()))
		return nil, err
	}

	return &task, nil
}

// Update implements store.TaskStore.Update
// It persists the current state of an existing task (dehydration).
// Returns store.ErrTaskNotFound if the task does not exist.
func (s *PostgresTaskStore) Update(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		log.Warn("task validation failed during update",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return err
	}

	query := `
		UPDATE tasks
		SET board_id = $2, column_id = $3, title = $4, notes = $5, is_done = $6,
		    is_stale = $7, last_moved_at = $8, updated_at = $9
		WHERE id = $1
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		task.ID,
		task.BoardID,
		task.ColumnID,
		task.Title,
		task.Notes,
		task.IsDone,
		task.IsStale,
		task.LastMovedAt,
		task.UpdatedAt,
	)

	if err != nil {
		log.Error("failed to update task",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return store.NewStoreError("task", "update", "failed to execute update", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected after task update",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return fmt.Errorf("%w: could not read affected rows: %w", store.ErrUpdateFailed, err)
	}

	if rows == 0 {
		log.Debug("task not found during update", slog.String("task_id", task.ID.String()))
		return store.ErrTaskNotFound
	}

	log.Info("task updated successfully",
		slog.String("task_id", task.ID.String()),
		slog.Bool("is_stale", task.IsStale),
		slog.Bool("is_done", task.IsDone))
	return nil
}

// ListByBoard implements store.TaskStore.ListByBoard
// It retrieves all tasks belonging to the given board, optionally joined
// with their column. An empty board yields an empty slice.
func (s *PostgresTaskStore) ListByBoard(
	ctx context.Context,
	boardID uuid.UUID,
	opts store.ListOptions,
) ([]*store.TaskWithContext, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	log.Debug("listing tasks by board",
		slog.String("board_id", boardID.String()),
		slog.Bool("with_column", opts.WithColumn))

	if opts.WithColumn {
		return s.listByBoardWithColumn(ctx, boardID)
	}

	query := `
		SELECT id, board_id, column_id, title, notes, is_done, is_stale, last_moved_at, created_at, updated_at
		FROM tasks
		WHERE board_id = $1
		ORDER BY created_at
	`

	rows, err := s.db.QueryContext(ctx, query, boardID)
	if err != nil {
		log.Error("failed to list tasks by board",
			slog.String("error", err.Error()),
			slog.String("board_id", boardID.String()))
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	tasks := make([]*store.TaskWithContext, 0)
	for rows.Next() {
		var task domain.Task
		if err := rows.Scan(
			&task.ID,
			&task.BoardID,
			&task.ColumnID,
			&task.Title,
			&task.Notes,
			&task.IsDone,
			&task.IsStale,
			&task.LastMovedAt,
			&task.CreatedAt,
			&task.UpdatedAt,
		); err != nil {
			log.Error("failed to scan task row",
				slog.String("error", err.Error()),
				slog.String("board_id", boardID.String()))
			return nil, err
		}
		tasks = append(tasks, &store.TaskWithContext{Task: &task})
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return tasks, nil
}

// listByBoardWithColumn joins each task with its column so callers can
// filter on column type without extra round trips.
func (s *PostgresTaskStore) listByBoardWithColumn(
	ctx context.Context,
	boardID uuid.UUID,
) ([]*store.TaskWithContext, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT t.id, t.board_id, t.column_id, t.title, t.notes, t.is_done, t.is_stale,
		       t.last_moved_at, t.created_at, t.updated_at,
		       c.id, c.board_id, c.name, c.type, c.position, c.created_at, c.updated_at
		FROM tasks t
		JOIN columns c ON c.id = t.column_id
		WHERE t.board_id = $1
		ORDER BY t.created_at
	`

	rows, err := s.db.QueryContext(ctx, query, boardID)
	if err != nil {
		log.Error("failed to list tasks with columns",
			slog.String("error", err.Error()),
			slog.String("board_id", boardID.String()))
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	tasks := make([]*store.TaskWithContext, 0)
	for rows.Next() {
		var task domain.Task
		var column domain.Column
		if err := rows.Scan(
			&task.ID,
			&task.BoardID,
			&task.ColumnID,
			&task.Title,
			&task.Notes,
			&task.IsDone,
			&task.IsStale,
			&task.LastMovedAt,
			&task.CreatedAt,
			&task.UpdatedAt,
			&column.ID,
			&column.BoardID,
			&column.Name,
			&column.Type,
			&column.Position,
			&column.CreatedAt,
			&column.UpdatedAt,
		); err != nil {
			log.Error("failed to scan task+column row",
				slog.String("error", err.Error()),
				slog.String("board_id", boardID.String()))
			return nil, err
		}
		tasks = append(tasks, &store.TaskWithContext{Task: &task, Column: &column})
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return tasks, nil
}

// FindStale implements store.TaskStore.FindStale
// It retrieves all tasks, system-wide, whose last movement is older than
// the threshold. Board scoping and column filtering are the caller's job.
func (s *PostgresTaskStore) FindStale(ctx context.Context, thresholdDays int) ([]*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	log.Debug("finding stale tasks", slog.Int("threshold_days", thresholdDays))

	query := `
		SELECT id, board_id, column_id, title, notes, is_done, is_stale, last_moved_at, created_at, updated_at
		FROM tasks
		WHERE last_moved_at < now() - ($1 * interval '1 day')
		ORDER BY last_moved_at
	`

	rows, err := s.db.QueryContext(ctx, query, thresholdDays)
	if err != nil {
		log.Error("failed to find stale tasks",
			slog.String("error", err.Error()),
			slog.Int("threshold_days", thresholdDays))
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	tasks := make([]*domain.Task, 0)
	for rows.Next() {
		var task domain.Task
		if err := rows.Scan(
			&task.ID,
			&task.BoardID,
			&task.ColumnID,
			&task.Title,
			&task.Notes,
			&task.IsDone,
			&task.IsStale,
			&task.LastMovedAt,
			&task.CreatedAt,
			&task.UpdatedAt,
		); err != nil {
			log.Error("failed to scan stale task row",
				slog.String("error", err.Error()))
			return nil, err
		}
		tasks = append(tasks, &task)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return tasks, nil
}

// WithTxTaskStore implements store.TaskStore.WithTxTaskStore
// It returns a new TaskStore instance backed by the provided transaction.
func (s *PostgresTaskStore) WithTxTaskStore(tx *sql.Tx) store.TaskStore {
	return &PostgresTaskStore{
		db:     tx,
		logger: s.logger,
	}
}
