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

// PostgresBoardStore implements the store.BoardStore interface
// using a PostgreSQL database as the storage backend.
type PostgresBoardStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresBoardStore creates a new PostgreSQL implementation of the BoardStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresBoardStore(db store.DBTX, logger *slog.Logger) *PostgresBoardStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresBoardStore{
		db:     db,
		logger: logger.With(slog.String("component", "board_store")),
	}
}

// Ensure PostgresBoardStore implements store.BoardStore interface
var _ store.BoardStore = (*PostgresBoardStore)(nil)

// Create implements store.BoardStore.Create
func (s *PostgresBoardStore) Create(ctx context.Context, board *domain.Board) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := board.Validate(); err != nil {
		log.Warn("board validation failed during create",
			slog.String("error", err.Error()),
			slog.String("board_id", board.ID.String()))
		return err
	}

	query := `
		INSERT INTO boards (id, owner_id, name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		board.ID,
		board.OwnerID,
		board.Name,
		board.CreatedAt,
		board.UpdatedAt,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolationCode {
			log.Warn("unique violation during board creation",
				slog.String("error", err.Error()),
				slog.String("board_id", board.ID.String()))
			return fmt.Errorf("%w: board with ID %s", store.ErrDuplicate, board.ID)
		}

		log.Error("failed to create board",
			slog.String("error", err.Error()),
			slog.String("board_id", board.ID.String()))
		return store.NewStoreError("board", "create", "failed to insert row", err)
	}

	log.Info("board created successfully",
		slog.String("board_id", board.ID.String()),
		slog.String("owner_id", board.OwnerID.String()))
	return nil
}

// GetByID implements store.BoardStore.GetByID
// Returns store.ErrBoardNotFound if the board does not exist.
func (s *PostgresBoardStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Board, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, owner_id, name, created_at, updated_at
		FROM boards
		WHERE id = $1
	`

	var board domain.Board
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&board.ID,
		&board.OwnerID,
		&board.Name,
		&board.CreatedAt,
		&board.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("board not found", slog.String("board_id", id.String()))
			return nil, store.ErrBoardNotFound
		}

		log.Error("failed to retrieve board",
			slog.String("error", err.Error()),
			slog.String("board_id", id.String()))
		return nil, err
	}

	return &board, nil
}

// CreateColumn implements store.BoardStore.CreateColumn
// Returns store.ErrInvalidEntity if the referenced board does not exist.
func (s *PostgresBoardStore) CreateColumn(ctx context.Context, column *domain.Column) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := column.Validate(); err != nil {
		log.Warn("column validation failed during create",
			slog.String("error", err.Error()),
			slog.String("column_id", column.ID.String()))
		return err
	}

	query := `
		INSERT INTO columns (id, board_id, name, type, position, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		column.ID,
		column.BoardID,
		column.Name,
		column.Type,
		column.Position,
		column.CreatedAt,
		column.UpdatedAt,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case pgForeignKeyViolationCode:
				log.Warn("foreign key violation during column creation",
					slog.String("error", err.Error()),
					slog.String("column_id", column.ID.String()),
					slog.String("board_id", column.BoardID.String()))
				return fmt.Errorf("%w: board with ID %s not found",
					store.ErrInvalidEntity, column.BoardID)
			case pgUniqueViolationCode:
				log.Warn("unique violation during column creation",
					slog.String("error", err.Error()),
					slog.String("column_id", column.ID.String()))
				return fmt.Errorf("%w: column with ID %s", store.ErrDuplicate, column.ID)
			}
		}

		log.Error("failed to create column",
			slog.String("error", err.Error()),
			slog.String("column_id", column.ID.String()))
		return store.NewStoreError("column", "create", "failed to insert row", err)
	}

	log.Info("column created successfully",
		slog.String("column_id", column.ID.String()),
		slog.String("board_id", column.BoardID.String()),
		slog.String("type", string(column.Type)))
	return nil
}

// ListColumns implements store.BoardStore.ListColumns
func (s *PostgresBoardStore) ListColumns(ctx context.Context, boardID uuid.UUID) ([]*domain.Column, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, board_id, name, type, position, created_at, updated_at
		FROM columns
		WHERE board_id = $1
		ORDER BY position
	`

	rows, err := s.db.QueryContext(ctx, query, boardID)
	if err != nil {
		log.Error("failed to list columns",
			slog.String("error", err.Error()),
			slog.String("board_id", boardID.String()))
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	columns := make([]*domain.Column, 0)
	for rows.Next() {
		var column domain.Column
		if err := rows.Scan(
			&column.ID,
			&column.BoardID,
			&column.Name,
			&column.Type,
			&column.Position,
			&column.CreatedAt,
			&column.UpdatedAt,
		); err != nil {
			log.Error("failed to scan column row",
				slog.String("error", err.Error()),
				slog.String("board_id", boardID.String()))
			return nil, err
		}
		columns = append(columns, &column)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return columns, nil
}

// WithTxBoardStore implements store.BoardStore.WithTxBoardStore
func (s *PostgresBoardStore) WithTxBoardStore(tx *sql.Tx) store.BoardStore {
	return &PostgresBoardStore{
		db:     tx,
		logger: s.logger,
	}
}
