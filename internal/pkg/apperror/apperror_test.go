package apperror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorsIsThroughWrap(t *testing.T) {
	sentinel := New(409, "time slot already booked")
	wrapped := Wrap(sentinel, 409, "interval overlaps approved booking 7")

	assert.ErrorIs(t, wrapped, sentinel)
	assert.Equal(t, "interval overlaps approved booking 7", wrapped.Error())
}

func TestErrorsAsFindsCode(t *testing.T) {
	sentinel := New(404, "booking not found")
	err := fmt.Errorf("loading booking: %w", sentinel)

	var appErr *AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 404, appErr.Code)
	assert.Equal(t, "booking not found", appErr.Message)
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("connection reset")
	err := Wrap(cause, 500, "storage failure")
	assert.ErrorIs(t, err, cause)
}
