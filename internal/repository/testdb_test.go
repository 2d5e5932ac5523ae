package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"

	"github.com/quillpress/quillpress/internal/db/bunx"
	"github.com/quillpress/quillpress/internal/db/models"
)

// setupTestDB creates an isolated in-memory SQLite database with the blog
// schema. Each test gets its own database because the connection pool is
// capped at a single connection.
func setupTestDB(t *testing.T) *bun.DB {
	t.Helper()

	db, err := bunx.NewDB(":memory:", 0)
	require.NoError(t, err)
	t.Cleanup(func() { _ = bunx.Close(db) })

	ctx := context.Background()
	for _, model := range []any{
		(*models.User)(nil),
		(*models.Category)(nil),
		(*models.Tag)(nil),
		(*models.Article)(nil),
		(*models.ArticleTag)(nil),
		(*models.Comment)(nil),
		(*models.LikeRecord)(nil),
	} {
		_, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx)
		require.NoError(t, err)
	}

	return db
}

func seedUser(t *testing.T, db *bun.DB, username, role string, status int) *models.User {
	t.Helper()

	user := &models.User{
		Username:     username,
		PasswordHash: "x",
		Email:        username + "@example.com",
		Role:         role,
		Status:       status,
	}
	require.NoError(t, NewBunUserRepository(db).Create(context.Background(), user))
	return user
}

func seedCategory(t *testing.T, db *bun.DB, name string) *models.Category {
	t.Helper()

	category := &models.Category{Name: name, Status: models.StatusActive}
	require.NoError(t, NewBunCategoryRepository(db).Create(context.Background(), category))
	return category
}
