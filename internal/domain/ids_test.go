package domain

import (
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestParseIDs(t *testing.T) {
	t.Parallel()
	valid := uuid.New().String()

	parsers := map[string]func(string) (uuid.UUID, error){
		"task":   ParseTaskID,
		"board":  ParseBoardID,
		"column": ParseColumnID,
	}

	for name, parse := range parsers {
		id, err := parse(valid)
		if err != nil {
			t.Errorf("Expected %s parser to accept %q, got %v", name, valid, err)
		}
		if id.String() != valid {
			t.Errorf("Expected %s parser to round-trip %q, got %q", name, valid, id)
		}

		_, err = parse("not-a-uuid")
		if !errors.Is(err, ErrInvalidID) {
			t.Errorf("Expected %s parser to wrap ErrInvalidID, got %v", name, err)
		}

		_, err = parse("")
		if !errors.Is(err, ErrInvalidID) {
			t.Errorf("Expected %s parser to reject empty input, got %v", name, err)
		}
	}
}
