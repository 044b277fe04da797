package shared

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDomainError(t *testing.T) {
	err := NewDomainError("SOME_CODE", "something happened")
	assert.Equal(t, "something happened", err.Error())
	assert.Equal(t, "SOME_CODE", err.Code)
}

func TestValidationError(t *testing.T) {
	t.Run("lists missing fields", func(t *testing.T) {
		err := NewValidationError("title", "category")
		assert.Contains(t, err.Error(), "title, category")
		assert.True(t, errors.Is(err, ErrValidation))
	})

	t.Run("wrapped validation error still matches", func(t *testing.T) {
		err := fmt.Errorf("submit: %w", NewValidationError("description"))
		var ve *ValidationError
		assert.True(t, errors.As(err, &ve))
		assert.Equal(t, []string{"description"}, ve.Fields)
		assert.False(t, errors.Is(err, ErrUnauthorized))
	})

	t.Run("empty field list uses base message", func(t *testing.T) {
		assert.Equal(t, ErrValidation.Message, NewValidationError().Error())
	})
}

func TestIsUnauthorized(t *testing.T) {
	assert.True(t, IsUnauthorized(fmt.Errorf("fetch community: %w", ErrUnauthorized)))
	assert.False(t, IsUnauthorized(errors.New("boom")))
	assert.False(t, IsUnauthorized(nil))
}
