package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrom(t *testing.T) {
	t.Run("extracts typed error from chain", func(t *testing.T) {
		base := UserNotFound("alice")
		wrapped := fmt.Errorf("login: %w", base)

		got := From(wrapped)
		assert.Equal(t, CodeUserNotFound, got.Code)
		assert.Equal(t, "user not found: alice", got.Message)
	})

	t.Run("maps unknown errors to generic failure", func(t *testing.T) {
		got := From(errors.New("connection refused"))
		assert.Equal(t, CodeError, got.Code)
		assert.Equal(t, "operation failed", got.Message)
	})
}

func TestIs(t *testing.T) {
	err := fmt.Errorf("service: %w", AccountLocked("bob"))
	assert.True(t, Is(err, CodeAccountLocked))
	assert.False(t, Is(err, CodeUserNotFound))
	assert.False(t, Is(errors.New("plain"), CodeAccountLocked))
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("db down")
	err := Wrap(CodeError, "lookup failed", cause)
	require.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "db down")
}

func TestBoundaryMessages(t *testing.T) {
	assert.Equal(t, "please log in first: no valid identity", Unauthenticated("no valid identity").Message)
	assert.Equal(t, "insufficient privileges: admin role required", Forbidden("admin role required").Message)
}
