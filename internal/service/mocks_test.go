package service

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/dkemper/driftboard-api/internal/domain"
	"github.com/dkemper/driftboard-api/internal/events"
	"github.com/dkemper/driftboard-api/internal/store"
)

// MockTaskRepository is a mock implementation of the TaskRepository
type MockTaskRepository struct {
	mock.Mock
}

// Create implements TaskRepository.Create
func (m *MockTaskRepository) Create(ctx context.Context, task *domain.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

// GetByID implements TaskRepository.GetByID
func (m *MockTaskRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	args := m.Called(ctx, id)
	task, _ := args.Get(0).(*domain.Task)
	return task, args.Error(1)
}

// Update implements TaskRepository.Update
func (m *MockTaskRepository) Update(ctx context.Context, task *domain.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

// ListByBoard implements TaskRepository.ListByBoard
func (m *MockTaskRepository) ListByBoard(
	ctx context.Context,
	boardID uuid.UUID,
	opts store.ListOptions,
) ([]*store.TaskWithContext, error) {
	args := m.Called(ctx, boardID, opts)
	tasks, _ := args.Get(0).([]*store.TaskWithContext)
	return tasks, args.Error(1)
}

// FindStale implements TaskRepository.FindStale
func (m *MockTaskRepository) FindStale(
	ctx context.Context,
	thresholdDays int,
) ([]*domain.Task, error) {
	args := m.Called(ctx, thresholdDays)
	tasks, _ := args.Get(0).([]*domain.Task)
	return tasks, args.Error(1)
}

// MockEventBus is a mock implementation of the events.EventBus
type MockEventBus struct {
	mock.Mock
}

// PublishAll implements events.EventBus.PublishAll
func (m *MockEventBus) PublishAll(ctx context.Context, batch []*events.TaskEvent) error {
	args := m.Called(ctx, batch)
	return args.Error(0)
}

// MockBoardRepository is a mock implementation of the BoardRepository
type MockBoardRepository struct {
	mock.Mock
}

// Create implements BoardRepository.Create
func (m *MockBoardRepository) Create(ctx context.Context, board *domain.Board) error {
	args := m.Called(ctx, board)
	return args.Error(0)
}

// GetByID implements BoardRepository.GetByID
func (m *MockBoardRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Board, error) {
	args := m.Called(ctx, id)
	board, _ := args.Get(0).(*domain.Board)
	return board, args.Error(1)
}

// CreateColumn implements BoardRepository.CreateColumn
func (m *MockBoardRepository) CreateColumn(ctx context.Context, column *domain.Column) error {
	args := m.Called(ctx, column)
	return args.Error(0)
}

// ListColumns implements BoardRepository.ListColumns
func (m *MockBoardRepository) ListColumns(
	ctx context.Context,
	boardID uuid.UUID,
) ([]*domain.Column, error) {
	args := m.Called(ctx, boardID)
	columns, _ := args.Get(0).([]*domain.Column)
	return columns, args.Error(1)
}

// WithTx implements BoardRepository.WithTx
func (m *MockBoardRepository) WithTx(tx *sql.Tx) BoardRepository {
	args := m.Called(tx)
	repo, _ := args.Get(0).(BoardRepository)
	return repo
}

// DB implements BoardRepository.DB
func (m *MockBoardRepository) DB() *sql.DB {
	args := m.Called()
	db, _ := args.Get(0).(*sql.DB)
	return db
}
