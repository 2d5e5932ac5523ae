package auth

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quillpress/quillpress/internal/apperr"
	coreauth "github.com/quillpress/quillpress/internal/auth"
	"github.com/quillpress/quillpress/internal/db/bunx"
	"github.com/quillpress/quillpress/internal/db/models"
	"github.com/quillpress/quillpress/internal/repository"
)

func newService(t *testing.T) (*Service, repository.UserRepository) {
	t.Helper()

	db, err := bunx.NewDB(":memory:", 0)
	require.NoError(t, err)
	t.Cleanup(func() { _ = bunx.Close(db) })

	_, err = db.NewCreateTable().Model((*models.User)(nil)).IfNotExists().Exec(context.Background())
	require.NoError(t, err)

	users := repository.NewBunUserRepository(db)
	tokens := coreauth.NewTokenService("test-secret", time.Hour)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(users, tokens, logger), users
}

func TestRegisterAndLogin(t *testing.T) {
	svc, users := newService(t)
	ctx := context.Background()

	result, err := svc.Register(ctx, RegisterInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "s3cret",
		Nickname: "Alice",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, "alice", result.Username)
	assert.Equal(t, "USER", result.Role)

	t.Run("login by username", func(t *testing.T) {
		result, err := svc.Login(ctx, "alice", "s3cret", "10.0.0.1")
		require.NoError(t, err)
		assert.NotEmpty(t, result.Token)
		assert.Equal(t, "Alice", result.Nickname)

		user, err := users.GetByUsername(ctx, "alice")
		require.NoError(t, err)
		require.NotNil(t, user.LastLoginAt)
		assert.Equal(t, "10.0.0.1", user.LastLoginIP)
	})

	t.Run("login by email", func(t *testing.T) {
		result, err := svc.Login(ctx, "alice@example.com", "s3cret", "10.0.0.1")
		require.NoError(t, err)
		assert.Equal(t, "alice", result.Username)
	})

	t.Run("unknown account", func(t *testing.T) {
		_, err := svc.Login(ctx, "nobody", "s3cret", "10.0.0.1")
		assert.True(t, apperr.Is(err, apperr.CodeUserNotFound))
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, "alice", "wrong", "10.0.0.1")
		assert.True(t, apperr.Is(err, apperr.CodePasswordError))
	})

	t.Run("missing credentials", func(t *testing.T) {
		_, err := svc.Login(ctx, "", "", "10.0.0.1")
		assert.True(t, apperr.Is(err, apperr.CodeParamMissing))
	})
}

func TestLoginLockedAccount(t *testing.T) {
	svc, users := newService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{
		Username: "mallory",
		Email:    "mallory@example.com",
		Password: "s3cret",
	})
	require.NoError(t, err)

	user, err := users.GetByUsername(ctx, "mallory")
	require.NoError(t, err)
	user.Status = models.StatusDisabled
	require.NoError(t, users.Update(ctx, user))

	_, err = svc.Login(ctx, "mallory", "s3cret", "10.0.0.1")
	assert.True(t, apperr.Is(err, apperr.CodeAccountLocked))
}

func TestRegisterConflicts(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{
		Username: "alice", Email: "alice@example.com", Password: "s3cret",
	})
	require.NoError(t, err)

	_, err = svc.Register(ctx, RegisterInput{
		Username: "alice", Email: "other@example.com", Password: "s3cret",
	})
	assert.True(t, apperr.Is(err, apperr.CodeAccountExists))

	_, err = svc.Register(ctx, RegisterInput{
		Username: "alice2", Email: "alice@example.com", Password: "s3cret",
	})
	assert.True(t, apperr.Is(err, apperr.CodeAccountExists))

	_, err = svc.Register(ctx, RegisterInput{Username: "x"})
	assert.True(t, apperr.Is(err, apperr.CodeParamMissing))

	t.Run("nickname defaults to username", func(t *testing.T) {
		result, err := svc.Register(ctx, RegisterInput{
			Username: "bob", Email: "bob@example.com", Password: "s3cret",
		})
		require.NoError(t, err)
		assert.Equal(t, "bob", result.Nickname)
	})
}
