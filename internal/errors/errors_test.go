package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationError_Creation(t *testing.T) {
	message := "Missing parameters"
	details := []ValidationDetail{
		{Field: "tokenId", Message: "required"},
		{Field: "price", Message: "required"},
	}

	err := NewValidationError(message, details...)

	assert.NotNil(t, err)
	assert.Equal(t, message, err.Message)
	assert.Equal(t, message, err.Error())
	assert.Len(t, err.Details, 2)
}

func TestValidationError_IsValidationError_Wrapped(t *testing.T) {
	err := fmt.Errorf("submit: %w", NewValidationError("Missing parameters"))

	ve, ok := IsValidationError(err)
	assert.True(t, ok)
	assert.Equal(t, "Missing parameters", ve.Message)
}

func TestNotFoundError_IsNotFoundError(t *testing.T) {
	err := NewNotFoundError("Order not found")

	nfe, ok := IsNotFoundError(err)
	assert.True(t, ok)
	assert.Equal(t, "Order not found", nfe.Message)
	assert.Equal(t, "Order not found", err.Error())
}

func TestNotFoundError_IsNotFoundError_WithOtherError(t *testing.T) {
	nfe, ok := IsNotFoundError(errors.New("some other error"))
	assert.False(t, ok)
	assert.Nil(t, nfe)
}

func TestConflictError_IsConflictError(t *testing.T) {
	err := fmt.Errorf("upsert: %w", NewConflictError("Order already sold"))

	ce, ok := IsConflictError(err)
	assert.True(t, ok)
	assert.Equal(t, "Order already sold", ce.Message)

	_, ok = IsNotFoundError(err)
	assert.False(t, ok)
}

func TestStoreError_Unwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewStoreError("upsert order", cause)

	assert.Equal(t, cause, err.Unwrap())
	assert.True(t, errors.Is(err, cause))
	assert.Contains(t, err.Error(), "upsert order")
	assert.Contains(t, err.Error(), "connection refused")

	se, ok := IsStoreError(err)
	assert.True(t, ok)
	assert.Equal(t, "upsert order", se.Op)
}

func TestStoreError_NilCause(t *testing.T) {
	err := NewStoreError("list active orders", nil)

	assert.Equal(t, "store list active orders", err.Error())
	assert.Nil(t, err.Unwrap())
}

func TestSerializationError(t *testing.T) {
	cause := errors.New("unexpected end of JSON input")
	err := NewSerializationError("seaportOrder is not valid JSON", cause)

	assert.Contains(t, err.Error(), "seaportOrder is not valid JSON")
	assert.True(t, errors.Is(err, cause))

	_, ok := IsSerializationError(err)
	assert.True(t, ok)
	assert.Equal(t, "no cause", NewSerializationError("no cause", nil).Error())
}
