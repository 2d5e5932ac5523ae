package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quillpress/quillpress/internal/db/models"
)

func TestBunUserRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBunUserRepository(db)
	ctx := context.Background()

	t.Run("create and get", func(t *testing.T) {
		user := seedUser(t, db, "alice", "USER", models.StatusActive)
		require.NotZero(t, user.ID)

		byID, err := repo.GetByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, "alice", byID.Username)

		byName, err := repo.GetByUsername(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, user.ID, byName.ID)

		byEmail, err := repo.GetByEmail(ctx, "alice@example.com")
		require.NoError(t, err)
		assert.Equal(t, user.ID, byEmail.ID)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := repo.GetByID(ctx, 99999)
		assert.ErrorIs(t, err, ErrNotFound)

		_, err = repo.GetByUsername(ctx, "nobody")
		assert.ErrorIs(t, err, ErrNotFound)

		err = repo.UpdateLastLogin(ctx, 99999, "127.0.0.1")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("update last login", func(t *testing.T) {
		user := seedUser(t, db, "bob", "USER", models.StatusActive)
		require.Nil(t, user.LastLoginAt)

		require.NoError(t, repo.UpdateLastLogin(ctx, user.ID, "10.0.0.7"))

		reloaded, err := repo.GetByID(ctx, user.ID)
		require.NoError(t, err)
		require.NotNil(t, reloaded.LastLoginAt)
		assert.Equal(t, "10.0.0.7", reloaded.LastLoginIP)
	})

	t.Run("update", func(t *testing.T) {
		user := seedUser(t, db, "carol", "USER", models.StatusActive)
		user.Nickname = "Carol C."
		user.Status = models.StatusDisabled
		require.NoError(t, repo.Update(ctx, user))

		reloaded, err := repo.GetByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, "Carol C.", reloaded.Nickname)
		assert.False(t, reloaded.Enabled())
	})
}
