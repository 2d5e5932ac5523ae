package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenServiceRoundTrip(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour)

	token, err := svc.Issue(42, "alice", "ADMIN")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "ADMIN", claims.Role)
	assert.Equal(t, "alice", claims.Subject)
	assert.NotEmpty(t, claims.ID)

	assert.True(t, svc.Validate(token))

	userID, err := svc.UserIDOf(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), userID)

	username, err := svc.UsernameOf(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", username)

	role, err := svc.RoleOf(token)
	require.NoError(t, err)
	assert.Equal(t, "ADMIN", role)
}

func TestTokenServiceRejectsGarbage(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour)

	for _, tokenString := range []string{"", "not.a.valid.token", "a.b"} {
		_, err := svc.Parse(tokenString)
		assert.ErrorIs(t, err, ErrInvalidToken, tokenString)
		assert.False(t, svc.Validate(tokenString))
	}
}

func TestTokenServiceRejectsWrongSecret(t *testing.T) {
	issuer := NewTokenService("secret-a", time.Hour)
	verifier := NewTokenService("secret-b", time.Hour)

	token, err := issuer.Issue(1, "alice", "USER")
	require.NoError(t, err)

	_, err = verifier.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.False(t, verifier.Validate(token))
}

func TestTokenServiceRejectsExpired(t *testing.T) {
	svc := NewTokenService("test-secret", -time.Minute)

	token, err := svc.Issue(1, "alice", "USER")
	require.NoError(t, err)

	_, err = svc.Parse(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
	assert.False(t, svc.Validate(token))
}

func TestIssuedTokensDiffer(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour)

	// Each token carries a unique jti.
	t1, err := svc.Issue(1, "alice", "USER")
	require.NoError(t, err)
	t2, err := svc.Issue(1, "alice", "USER")
	require.NoError(t, err)
	assert.NotEqual(t, t1, t2)
}
