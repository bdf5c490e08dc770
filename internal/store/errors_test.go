package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntitySpecificNotFoundErrors(t *testing.T) {
	// Entity-specific sentinels all wrap the generic ErrNotFound
	for _, err := range []error{ErrTaskNotFound, ErrBoardNotFound, ErrColumnNotFound} {
		assert.ErrorIs(t, err, ErrNotFound)
	}

	assert.NotErrorIs(t, ErrTaskNotFound, ErrBoardNotFound)
}

func TestIsNotFoundError(t *testing.T) {
	assert.True(t, IsNotFoundError(ErrNotFound))
	assert.True(t, IsNotFoundError(ErrTaskNotFound))
	assert.True(t, IsNotFoundError(fmt.Errorf("lookup: %w", ErrBoardNotFound)))

	assert.False(t, IsNotFoundError(nil))
	assert.False(t, IsNotFoundError(ErrDuplicate))
	assert.False(t, IsNotFoundError(errors.New("unrelated")))
}

func TestStoreError(t *testing.T) {
	cause := errors.New("unique constraint violated")
	err := NewStoreError("task", "create", "failed to insert row", cause)

	assert.Contains(t, err.Error(), "create operation on task failed")
	assert.Contains(t, err.Error(), cause.Error())
	assert.ErrorIs(t, err, cause)

	var storeErr *StoreError
	require.ErrorAs(t, error(err), &storeErr)
	assert.Equal(t, "task", storeErr.Entity)

	// Without a cause the message stands alone
	bare := NewStoreError("board", "update", "nothing changed", nil)
	assert.Equal(t, "update operation on board failed: nothing changed", bare.Error())
	assert.NoError(t, bare.Unwrap())
}
