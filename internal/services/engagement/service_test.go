package engagement

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quillpress/quillpress/internal/apperr"
	"github.com/quillpress/quillpress/internal/auth"
	"github.com/quillpress/quillpress/internal/db/bunx"
	"github.com/quillpress/quillpress/internal/db/models"
	"github.com/quillpress/quillpress/internal/repository"
)

type fixture struct {
	svc      *Service
	articles repository.ArticleRepository

	articleID int64
	alice     auth.SecurityContext
	bob       auth.SecurityContext
	admin     auth.SecurityContext
	anonymous auth.SecurityContext
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db, err := bunx.NewDB(":memory:", 0)
	require.NoError(t, err)
	t.Cleanup(func() { _ = bunx.Close(db) })

	ctx := context.Background()
	for _, model := range []any{
		(*models.Article)(nil),
		(*models.ArticleTag)(nil),
		(*models.Comment)(nil),
		(*models.LikeRecord)(nil),
	} {
		_, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx)
		require.NoError(t, err)
	}

	articles := repository.NewBunArticleRepository(db)
	article := &models.Article{
		Title: "Commented", Content: "body", CategoryID: 1, AuthorID: 1,
		Status: models.ArticlePublished,
	}
	require.NoError(t, articles.Create(ctx, article))

	scFor := func(id int64, role auth.Role) auth.SecurityContext {
		return auth.SecurityContextFrom(auth.WithPrincipal(context.Background(), &auth.Principal{
			UserID: id, Role: role, Enabled: true,
		}))
	}

	return &fixture{
		svc:       NewService(articles, repository.NewBunCommentRepository(db), repository.NewBunLikeRepository(db)),
		articles:  articles,
		articleID: article.ID,
		alice:     scFor(10, auth.RoleUser),
		bob:       scFor(11, auth.RoleUser),
		admin:     scFor(12, auth.RoleAdmin),
		anonymous: auth.SecurityContextFrom(context.Background()),
	}
}

func (f *fixture) commentCount(t *testing.T) int {
	t.Helper()
	article, err := f.articles.GetByID(context.Background(), f.articleID)
	require.NoError(t, err)
	return article.CommentCount
}

func (f *fixture) likeCount(t *testing.T) int {
	t.Helper()
	article, err := f.articles.GetByID(context.Background(), f.articleID)
	require.NoError(t, err)
	return article.LikeCount
}

func TestComments(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	t.Run("anonymous cannot comment", func(t *testing.T) {
		_, err := f.svc.AddComment(ctx, f.anonymous, f.articleID, nil, "hi")
		assert.True(t, apperr.Is(err, apperr.CodeUnauthenticated))
	})

	t.Run("missing article", func(t *testing.T) {
		_, err := f.svc.AddComment(ctx, f.alice, 999, nil, "hi")
		assert.True(t, apperr.Is(err, apperr.CodeDataNotFound))
	})

	comment, err := f.svc.AddComment(ctx, f.alice, f.articleID, nil, "first!")
	require.NoError(t, err)
	assert.Equal(t, 1, f.commentCount(t))

	t.Run("reply links to parent", func(t *testing.T) {
		reply, err := f.svc.AddComment(ctx, f.bob, f.articleID, &comment.ID, "welcome")
		require.NoError(t, err)
		require.NotNil(t, reply.ParentID)
		assert.Equal(t, comment.ID, *reply.ParentID)
		assert.Equal(t, 2, f.commentCount(t))
	})

	t.Run("reply to missing parent refused", func(t *testing.T) {
		missing := int64(999)
		_, err := f.svc.AddComment(ctx, f.bob, f.articleID, &missing, "hi")
		assert.True(t, apperr.Is(err, apperr.CodeParamError))
	})

	t.Run("list pages comments", func(t *testing.T) {
		page, err := f.svc.ListComments(ctx, f.articleID, 1, 10)
		require.NoError(t, err)
		assert.Equal(t, 2, page.Total)
		assert.Len(t, page.Items, 2)
	})

	t.Run("only author or admin deletes", func(t *testing.T) {
		err := f.svc.DeleteComment(ctx, f.bob, comment.ID)
		assert.True(t, apperr.Is(err, apperr.CodeForbidden))

		require.NoError(t, f.svc.DeleteComment(ctx, f.alice, comment.ID))
		assert.Equal(t, 1, f.commentCount(t))

		err = f.svc.DeleteComment(ctx, f.alice, comment.ID)
		assert.True(t, apperr.Is(err, apperr.CodeDataNotFound))
	})

	t.Run("admin deletes any comment", func(t *testing.T) {
		other, err := f.svc.AddComment(ctx, f.bob, f.articleID, nil, "bye")
		require.NoError(t, err)
		require.NoError(t, f.svc.DeleteComment(ctx, f.admin, other.ID))
	})
}

func TestLikeToggle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	t.Run("anonymous cannot like", func(t *testing.T) {
		_, err := f.svc.ToggleLike(ctx, f.anonymous, f.articleID)
		assert.True(t, apperr.Is(err, apperr.CodeUnauthenticated))
	})

	liked, err := f.svc.ToggleLike(ctx, f.alice, f.articleID)
	require.NoError(t, err)
	assert.True(t, liked)
	assert.Equal(t, 1, f.likeCount(t))

	// Second user likes independently.
	liked, err = f.svc.ToggleLike(ctx, f.bob, f.articleID)
	require.NoError(t, err)
	assert.True(t, liked)
	assert.Equal(t, 2, f.likeCount(t))

	// Toggling again removes the like; two toggles are net zero.
	liked, err = f.svc.ToggleLike(ctx, f.alice, f.articleID)
	require.NoError(t, err)
	assert.False(t, liked)
	assert.Equal(t, 1, f.likeCount(t))

	t.Run("missing article", func(t *testing.T) {
		_, err := f.svc.ToggleLike(ctx, f.alice, 999)
		assert.True(t, apperr.Is(err, apperr.CodeDataNotFound))
	})
}
