package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusCodes(t *testing.T) {
	tests := []struct {
		err      *AppError
		expected int
	}{
		{NewValidationError("bad input"), http.StatusBadRequest},
		{NewAuthError("no token", nil), http.StatusUnauthorized},
		{NewUnauthorizedError("not the owner"), http.StatusUnauthorized},
		{NewNotFoundError("gone"), http.StatusNotFound},
		{NewConflictError("duplicate"), http.StatusConflict},
		{NewDatabaseError("boom", errors.New("disk on fire")), http.StatusInternalServerError},
		{NewInternalError("boom", nil), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, tt.err.StatusCode(), tt.err.Message)
	}
}

func TestUnwrapThroughWrappedChains(t *testing.T) {
	cause := errors.New("record not found")
	wrapped := fmt.Errorf("loading post: %w", NewNotFoundError("post not found"))

	assert.True(t, IsNotFound(wrapped))
	assert.False(t, IsNotFound(cause))

	ae := NewDatabaseError("query failed", cause)
	assert.ErrorIs(t, ae, cause)
	assert.Contains(t, ae.Error(), "record not found")
}

func TestFromError(t *testing.T) {
	ae, ok := FromError(NewConflictError("duplicate"))
	assert.True(t, ok)
	assert.True(t, IsConflict(ae))

	_, ok = FromError(errors.New("plain"))
	assert.False(t, ok)

	_, ok = FromError(nil)
	assert.False(t, ok)
}
