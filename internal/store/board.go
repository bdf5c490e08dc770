package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/dkemper/driftboard-api/internal/domain"
)

// BoardStore defines the interface for board and column data persistence.
type BoardStore interface {
	// Create saves a new board to the store.
	Create(ctx context.Context, board *domain.Board) error

	// GetByID retrieves a board by its unique ID.
	// Returns ErrBoardNotFound if the board does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Board, error)

	// CreateColumn saves a new column to the store.
	// Returns ErrInvalidEntity if the referenced board does not exist.
	CreateColumn(ctx context.Context, column *domain.Column) error

	// ListColumns retrieves all columns of the given board ordered by
	// position. An empty board yields an empty slice, not an error.
	ListColumns(ctx context.Context, boardID uuid.UUID) ([]*domain.Column, error)

	// WithTxBoardStore returns a new BoardStore instance that uses the
	// provided transaction.
	WithTxBoardStore(tx *sql.Tx) BoardStore
}
