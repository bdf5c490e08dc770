package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ColumnType classifies a board column for workflow purposes
type ColumnType string

// Possible column type values
const (
	ColumnTypeTodo       ColumnType = "todo"
	ColumnTypeInProgress ColumnType = "in_progress"
	ColumnTypeDone       ColumnType = "done"
	ColumnTypeArchive    ColumnType = "archive"
	ColumnTypeSomeday    ColumnType = "someday"
)

// Common validation errors for Board and Column
var (
	ErrBoardIDEmpty      = errors.New("board ID cannot be empty")
	ErrBoardOwnerIDEmpty = errors.New("board owner ID cannot be empty")
	ErrBoardNameEmpty    = errors.New("board name cannot be empty")
	ErrColumnIDEmpty     = errors.New("column ID cannot be empty")
	ErrColumnNameEmpty   = errors.New("column name cannot be empty")
)

// Board represents a user's task board. It is an aggregate root identified
// by its UUID; columns belong to exactly one board.
type Board struct {
	ID        uuid.UUID `json:"id"`
	OwnerID   uuid.UUID `json:"owner_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Column represents a single column on a board. The Type drives workflow
// behavior: tasks in done/archive/someday columns are never considered
// for new staleness.
type Column struct {
	ID        uuid.UUID  `json:"id"`
	BoardID   uuid.UUID  `json:"board_id"`
	Name      string     `json:"name"`
	Type      ColumnType `json:"type"`
	Position  int        `json:"position"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// NewBoard creates a new Board owned by the given user.
// It generates a new UUID for the board ID and sets the creation/update
// timestamps. Returns an error if validation fails.
func NewBoard(ownerID uuid.UUID, name string) (*Board, error) {
	board := &Board{
		ID:        uuid.New(),
		OwnerID:   ownerID,
		Name:      name,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}

	if err := board.Validate(); err != nil {
		return nil, err
	}

	return board, nil
}

// Identity implements the Entity interface.
func (b *Board) Identity() uuid.UUID {
	return b.ID
}

// Kind implements the Entity interface.
func (b *Board) Kind() string {
	return "board"
}

// Validate checks if the Board has valid data.
// Returns an error if any field fails validation.
func (b *Board) Validate() error {
	if b.ID == uuid.Nil {
		return NewValidationError("id", "cannot be empty", ErrBoardIDEmpty)
	}

	if b.OwnerID == uuid.Nil {
		return NewValidationError("owner_id", "cannot be empty", ErrBoardOwnerIDEmpty)
	}

	if b.Name == "" {
		return NewValidationError("name", "cannot be empty", ErrBoardNameEmpty)
	}

	return nil
}

// Rename changes the board's name and updates the UpdatedAt timestamp.
// Returns an error if the new name is empty.
func (b *Board) Rename(name string) error {
	if name == "" {
		return NewValidationError("name", "cannot be empty", ErrBoardNameEmpty)
	}

	b.Name = name
	b.UpdatedAt = time.Now().UTC()
	return nil
}

// NewColumn creates a new Column on the given board.
// Returns an error if validation fails.
func NewColumn(boardID uuid.UUID, name string, columnType ColumnType, position int) (*Column, error) {
	column := &Column{
		ID:        uuid.New(),
		BoardID:   boardID,
		Name:      name,
		Type:      columnType,
		Position:  position,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}

	if err := column.Validate(); err != nil {
		return nil, err
	}

	return column, nil
}

// Identity implements the Entity interface.
func (c *Column) Identity() uuid.UUID {
	return c.ID
}

// Kind implements the Entity interface.
func (c *Column) Kind() string {
	return "column"
}

// Validate checks if the Column has valid data.
// Returns an error if any field fails validation.
func (c *Column) Validate() error {
	if c.ID == uuid.Nil {
		return NewValidationError("id", "cannot be empty", ErrColumnIDEmpty)
	}

	if c.BoardID == uuid.Nil {
		return NewValidationError("board_id", "cannot be empty", ErrBoardIDEmpty)
	}

	if c.Name == "" {
		return NewValidationError("name", "cannot be empty", ErrColumnNameEmpty)
	}

	if !isValidColumnType(c.Type) {
		return NewValidationError("type", "unknown column type", ErrInvalidColumnType)
	}

	return nil
}

// IsTerminal reports whether the column type is terminal for staleness
// purposes. Tasks sitting in terminal columns are excluded from stale
// triage regardless of how long they have been idle.
func (t ColumnType) IsTerminal() bool {
	switch t {
	case ColumnTypeDone, ColumnTypeArchive, ColumnTypeSomeday:
		return true
	default:
		return false
	}
}

// isValidColumnType checks if the given type is a valid ColumnType.
func isValidColumnType(t ColumnType) bool {
	switch t {
	case ColumnTypeTodo, ColumnTypeInProgress, ColumnTypeDone,
		ColumnTypeArchive, ColumnTypeSomeday:
		return true
	default:
		return false
	}
}
