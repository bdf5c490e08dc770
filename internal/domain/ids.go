package domain

import (
	"fmt"

	"github.com/google/uuid"
)

// ParseTaskID parses a raw task identifier string into a UUID.
// Returns an error wrapping ErrInvalidID if the string is not a valid UUID.
func ParseTaskID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: task ID %q", ErrInvalidID, raw)
	}
	return id, nil
}

// ParseBoardID parses a raw board identifier string into a UUID.
// Returns an error wrapping ErrInvalidID if the string is not a valid UUID.
func ParseBoardID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: board ID %q", ErrInvalidID, raw)
	}
	return id, nil
}

// ParseColumnID parses a raw column identifier string into a UUID.
// Returns an error wrapping ErrInvalidID if the string is not a valid UUID.
func ParseColumnID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: column ID %q", ErrInvalidID, raw)
	}
	return id, nil
}
