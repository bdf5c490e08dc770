package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/dkemper/driftboard-api/internal/domain"
	"github.com/dkemper/driftboard-api/internal/platform/logger"
	"github.com/dkemper/driftboard-api/internal/store"
)

// defaultColumns is the column layout every new board starts with.
var defaultColumns = []struct {
	name       string
	columnType domain.ColumnType
}{
	{"To Do", domain.ColumnTypeTodo},
	{"In Progress", domain.ColumnTypeInProgress},
	{"Done", domain.ColumnTypeDone},
	{"Someday", domain.ColumnTypeSomeday},
}

// BoardRepository defines the repository interface for the service layer.
type BoardRepository interface {
	// Create saves a new board to the store
	Create(ctx context.Context, board *domain.Board) error

	// GetByID retrieves a board by its unique ID
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Board, error)

	// CreateColumn saves a new column to the store
	CreateColumn(ctx context.Context, column *domain.Column) error

	// ListColumns retrieves all columns of the given board
	ListColumns(ctx context.Context, boardID uuid.UUID) ([]*domain.Column, error)

	// WithTx returns a new repository instance that uses the provided transaction
	WithTx(tx *sql.Tx) BoardRepository

	// DB returns the underlying database connection
	DB() *sql.DB
}

// BoardWithColumns bundles a board with its ordered columns.
type BoardWithColumns struct {
	Board   *domain.Board
	Columns []*domain.Column
}

// BoardService provides board-related operations.
type BoardService interface {
	// CreateBoard creates a board with the default column layout in a
	// single transaction.
	CreateBoard(ctx context.Context, ownerID uuid.UUID, name string) (*BoardWithColumns, error)

	// GetBoard retrieves a board and its columns.
	// Fails with ErrBoardNotFound if the board is absent.
	GetBoard(ctx context.Context, boardID uuid.UUID) (*BoardWithColumns, error)
}

// BoardServiceError wraps errors from the board service with context.
type BoardServiceError struct {
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for BoardServiceError.
func (e *BoardServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("board service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("board service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *BoardServiceError) Unwrap() error {
	return e.Err
}

// NewBoardServiceError creates a new BoardServiceError.
// It returns known sentinel errors directly without wrapping.
func NewBoardServiceError(operation, message string, err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, ErrBoardNotFound) {
		return err
	}
	if errors.Is(err, store.ErrBoardNotFound) {
		return fmt.Errorf("%w: %s", ErrBoardNotFound, message)
	}

	return &BoardServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

// boardServiceImpl implements the BoardService interface
type boardServiceImpl struct {
	boardRepo BoardRepository
	logger    *slog.Logger
}

// NewBoardService creates a new BoardService.
// It returns an error if any of the required dependencies are nil.
func NewBoardService(boardRepo BoardRepository, logger *slog.Logger) (BoardService, error) {
	if boardRepo == nil {
		return nil, domain.NewValidationError("boardRepo", "cannot be nil", domain.ErrValidation)
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &boardServiceImpl{
		boardRepo: boardRepo,
		logger:    logger.With("component", "board_service"),
	}, nil
}

// CreateBoard implements BoardService.CreateBoard
// The board and its default columns are created atomically.
func (s *boardServiceImpl) CreateBoard(
	ctx context.Context,
	ownerID uuid.UUID,
	name string,
) (*BoardWithColumns, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	board, err := domain.NewBoard(ownerID, name)
	if err != nil {
		log.Error("failed to create board object",
			"error", err,
			"owner_id", ownerID)
		return nil, NewBoardServiceError("create_board", "failed to create board object", err)
	}

	columns := make([]*domain.Column, 0, len(defaultColumns))
	for position, def := range defaultColumns {
		column, err := domain.NewColumn(board.ID, def.name, def.columnType, position)
		if err != nil {
			log.Error("failed to create column object",
				"error", err,
				"board_id", board.ID)
			return nil, NewBoardServiceError("create_board", "failed to create column object", err)
		}
		columns = append(columns, column)
	}

	err = store.RunInTransaction(ctx, s.boardRepo.DB(), func(ctx context.Context, tx *sql.Tx) error {
		txRepo := s.boardRepo.WithTx(tx)

		if err := txRepo.Create(ctx, board); err != nil {
			log.Error("failed to create board in transaction",
				"error", err,
				"board_id", board.ID)
			return NewBoardServiceError("create_board", "failed to save board", err)
		}

		for _, column := range columns {
			if err := txRepo.CreateColumn(ctx, column); err != nil {
				log.Error("failed to create column in transaction",
					"error", err,
					"board_id", board.ID,
					"column_id", column.ID)
				return NewBoardServiceError("create_board", "failed to save column", err)
			}
		}

		return nil
	})
	if err != nil {
		// Error is already wrapped in the transaction
		return nil, err
	}

	log.Info("board created with default columns",
		"board_id", board.ID,
		"owner_id", ownerID,
		"column_count", len(columns))

	return &BoardWithColumns{Board: board, Columns: columns}, nil
}

// GetBoard implements BoardService.GetBoard
func (s *boardServiceImpl) GetBoard(ctx context.Context, boardID uuid.UUID) (*BoardWithColumns, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	board, err := s.boardRepo.GetByID(ctx, boardID)
	if err != nil {
		log.Error("failed to retrieve board",
			"error", err,
			"board_id", boardID)
		return nil, NewBoardServiceError("get_board", "failed to retrieve board", err)
	}

	columns, err := s.boardRepo.ListColumns(ctx, boardID)
	if err != nil {
		log.Error("failed to list board columns",
			"error", err,
			"board_id", boardID)
		return nil, NewBoardServiceError("get_board", "failed to list columns", err)
	}

	return &BoardWithColumns{Board: board, Columns: columns}, nil
}
