package shared

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationErrorMatchesSentinel(t *testing.T) {
	err := NewValidationError("title not provided")

	assert.Equal(t, "title not provided", err.Error())
	assert.True(t, errors.Is(err, ErrValidation))
	assert.False(t, errors.Is(err, ErrBusy))
}

func TestValidationErrorSurvivesWrapping(t *testing.T) {
	err := fmt.Errorf("saving post: %w", NewValidationError("content not provided"))
	assert.True(t, errors.Is(err, ErrValidation))
}
