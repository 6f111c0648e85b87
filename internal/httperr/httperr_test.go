package httperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsBusiness_Wrapped(t *testing.T) {
	err := fmt.Errorf("create listing: %w", ErrInsufficientCredit)

	assert.True(t, IsBusiness(err, "insufficient_credit"))
	assert.False(t, IsBusiness(err, "unauthenticated"))
	assert.True(t, errors.Is(err, ErrInsufficientCredit))
}

func TestPersistence(t *testing.T) {
	assert.Nil(t, Persistence("op", nil))

	base := errors.New("connection reset")
	err := Persistence("properties.count", base)

	assert.True(t, IsPersistence(err))
	assert.ErrorIs(t, err, base)
	assert.Equal(t, "properties.count: connection reset", err.Error())
}

func TestValidationError_FieldMap(t *testing.T) {
	ve := NewValidationError(
		FieldError{Field: "price", Message: "Price must be greater than 0"},
		FieldError{Field: "images", Message: "At least one image is required"},
		FieldError{Field: "price", Message: "Price is required"},
	)

	m := ve.FieldMap()
	assert.Len(t, m, 2)
	assert.Len(t, m["price"], 2)

	got, ok := AsValidation(fmt.Errorf("wrapped: %w", ve))
	assert.True(t, ok)
	assert.Same(t, ve, got)
	assert.Contains(t, ve.Error(), "images: At least one image is required")
}
