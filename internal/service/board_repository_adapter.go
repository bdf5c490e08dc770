package service

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/dkemper/driftboard-api/internal/domain"
	"github.com/dkemper/driftboard-api/internal/store"
)

// NewBoardRepositoryAdapter creates a new adapter that allows a store.BoardStore
// to be used where a BoardRepository is expected.
func NewBoardRepositoryAdapter(boardStore store.BoardStore, db *sql.DB) BoardRepository {
	return &boardRepositoryAdapter{
		boardStore: boardStore,
		db:         db,
	}
}

// boardRepositoryAdapter adapts a store.BoardStore to the BoardRepository interface
type boardRepositoryAdapter struct {
	boardStore store.BoardStore
	db         *sql.DB
}

// Create implements BoardRepository.Create
func (a *boardRepositoryAdapter) Create(ctx context.Context, board *domain.Board) error {
	return a.boardStore.Create(ctx, board)
}

// GetByID implements BoardRepository.GetByID
func (a *boardRepositoryAdapter) GetByID(ctx context.Context, id uuid.UUID) (*domain.Board, error) {
	return a.boardStore.GetByID(ctx, id)
}

// CreateColumn implements BoardRepository.CreateColumn
func (a *boardRepositoryAdapter) CreateColumn(ctx context.Context, column *domain.Column) error {
	return a.boardStore.CreateColumn(ctx, column)
}

// ListColumns implements BoardRepository.ListColumns
func (a *boardRepositoryAdapter) ListColumns(ctx context.Context, boardID uuid.UUID) ([]*domain.Column, error) {
	return a.boardStore.ListColumns(ctx, boardID)
}

// WithTx implements BoardRepository.WithTx
func (a *boardRepositoryAdapter) WithTx(tx *sql.Tx) BoardRepository {
	return &boardRepositoryAdapter{
		boardStore: a.boardStore.WithTxBoardStore(tx),
		db:         a.db,
	}
}

// DB implements BoardRepository.DB
func (a *boardRepositoryAdapter) DB() *sql.DB {
	return a.db
}
