package article

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"

	"github.com/quillpress/quillpress/internal/apperr"
	"github.com/quillpress/quillpress/internal/auth"
	"github.com/quillpress/quillpress/internal/db/bunx"
	"github.com/quillpress/quillpress/internal/db/models"
	"github.com/quillpress/quillpress/internal/repository"
)

type fixture struct {
	svc        *Service
	db         *bun.DB
	categories repository.CategoryRepository

	owner *auth.Principal
	other *auth.Principal
	admin *auth.Principal

	categoryID int64
	tagID      int64
}

func newFixture(t *testing.T) *fixture {
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
	} {
		_, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx)
		require.NoError(t, err)
	}

	users := repository.NewBunUserRepository(db)
	categories := repository.NewBunCategoryRepository(db)
	tags := repository.NewBunTagRepository(db)
	articles := repository.NewBunArticleRepository(db)

	ownerUser := &models.User{Username: "owner", Email: "owner@example.com", PasswordHash: "x", Nickname: "The Owner", Role: "USER", Status: models.StatusActive}
	otherUser := &models.User{Username: "other", Email: "other@example.com", PasswordHash: "x", Role: "USER", Status: models.StatusActive}
	adminUser := &models.User{Username: "admin", Email: "admin@example.com", PasswordHash: "x", Role: "ADMIN", Status: models.StatusActive}
	for _, u := range []*models.User{ownerUser, otherUser, adminUser} {
		require.NoError(t, users.Create(ctx, u))
	}

	category := &models.Category{Name: "Tech", Status: models.StatusActive}
	require.NoError(t, categories.Create(ctx, category))
	tag := &models.Tag{Name: "go"}
	require.NoError(t, tags.Create(ctx, tag))

	return &fixture{
		svc:        NewService(articles, categories, tags, users),
		db:         db,
		categories: categories,
		owner:      &auth.Principal{UserID: ownerUser.ID, Username: "owner", Role: auth.RoleUser, Enabled: true},
		other:      &auth.Principal{UserID: otherUser.ID, Username: "other", Role: auth.RoleUser, Enabled: true},
		admin:      &auth.Principal{UserID: adminUser.ID, Username: "admin", Role: auth.RoleAdmin, Enabled: true},
		categoryID: category.ID,
		tagID:      tag.ID,
	}
}

func scFor(p *auth.Principal) auth.SecurityContext {
	if p == nil {
		return auth.SecurityContextFrom(context.Background())
	}
	return auth.SecurityContextFrom(auth.WithPrincipal(context.Background(), p))
}

func (f *fixture) input() Input {
	return Input{
		Title:      "Hello Gophers",
		Summary:    "an introduction",
		Content:    "body",
		CategoryID: f.categoryID,
		Status:     models.ArticlePublished,
		TagIDs:     []int64{f.tagID},
	}
}

func (f *fixture) categoryCount(t *testing.T, id int64) int {
	t.Helper()
	category, err := f.categories.GetByID(context.Background(), id)
	require.NoError(t, err)
	return category.ArticleCount
}

func TestCreate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	t.Run("anonymous rejected", func(t *testing.T) {
		_, err := f.svc.Create(ctx, scFor(nil), f.input())
		assert.True(t, apperr.Is(err, apperr.CodeUnauthenticated))
	})

	t.Run("unknown category rejected", func(t *testing.T) {
		in := f.input()
		in.CategoryID = 999
		_, err := f.svc.Create(ctx, scFor(f.owner), in)
		assert.True(t, apperr.Is(err, apperr.CodeParamError))
	})

	t.Run("missing title rejected", func(t *testing.T) {
		in := f.input()
		in.Title = ""
		_, err := f.svc.Create(ctx, scFor(f.owner), in)
		assert.True(t, apperr.Is(err, apperr.CodeParamMissing))
	})

	t.Run("published article gets publish time and counts", func(t *testing.T) {
		article, err := f.svc.Create(ctx, scFor(f.owner), f.input())
		require.NoError(t, err)
		assert.Equal(t, f.owner.UserID, article.AuthorID)
		assert.NotNil(t, article.PublishTime)
		assert.Equal(t, 1, f.categoryCount(t, f.categoryID))

		view, err := f.svc.Detail(ctx, article.ID)
		require.NoError(t, err)
		assert.Equal(t, "Tech", view.CategoryName)
		assert.Equal(t, "The Owner", view.AuthorName)
		require.Len(t, view.Tags, 1)
		assert.Equal(t, "go", view.Tags[0].Name)
		assert.Equal(t, 1, view.ViewCount)
	})

	t.Run("draft has no publish time", func(t *testing.T) {
		in := f.input()
		in.Status = models.ArticleDraft
		article, err := f.svc.Create(ctx, scFor(f.owner), in)
		require.NoError(t, err)
		assert.Nil(t, article.PublishTime)
	})
}

func TestUpdateOwnership(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	article, err := f.svc.Create(ctx, scFor(f.owner), f.input())
	require.NoError(t, err)

	t.Run("missing article reported before ownership", func(t *testing.T) {
		_, err := f.svc.Update(ctx, scFor(f.other), 999, f.input())
		assert.True(t, apperr.Is(err, apperr.CodeDataNotFound))
	})

	t.Run("non-owner forbidden", func(t *testing.T) {
		_, err := f.svc.Update(ctx, scFor(f.other), article.ID, f.input())
		assert.True(t, apperr.Is(err, apperr.CodeForbidden))
	})

	t.Run("owner may update", func(t *testing.T) {
		in := f.input()
		in.Title = "Hello again"
		updated, err := f.svc.Update(ctx, scFor(f.owner), article.ID, in)
		require.NoError(t, err)
		assert.Equal(t, "Hello again", updated.Title)
	})

	t.Run("admin may update", func(t *testing.T) {
		in := f.input()
		in.TagIDs = nil
		_, err := f.svc.Update(ctx, scFor(f.admin), article.ID, in)
		require.NoError(t, err)
	})
}

func TestUpdateMovesCategoryCounts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	life := &models.Category{Name: "Life", Status: models.StatusActive}
	require.NoError(t, f.categories.Create(ctx, life))

	article, err := f.svc.Create(ctx, scFor(f.owner), f.input())
	require.NoError(t, err)
	require.Equal(t, 1, f.categoryCount(t, f.categoryID))

	in := f.input()
	in.CategoryID = life.ID
	_, err = f.svc.Update(ctx, scFor(f.owner), article.ID, in)
	require.NoError(t, err)

	assert.Equal(t, 0, f.categoryCount(t, f.categoryID))
	assert.Equal(t, 1, f.categoryCount(t, life.ID))
}

func TestDelete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	article, err := f.svc.Create(ctx, scFor(f.owner), f.input())
	require.NoError(t, err)

	err = f.svc.Delete(ctx, scFor(f.other), article.ID)
	assert.True(t, apperr.Is(err, apperr.CodeForbidden))

	require.NoError(t, f.svc.Delete(ctx, scFor(f.owner), article.ID))
	assert.Equal(t, 0, f.categoryCount(t, f.categoryID))

	_, err = f.svc.Detail(ctx, article.ID)
	assert.True(t, apperr.Is(err, apperr.CodeDataNotFound))
}

func TestPublishLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	in := f.input()
	in.Status = models.ArticleDraft
	article, err := f.svc.Create(ctx, scFor(f.owner), in)
	require.NoError(t, err)

	t.Run("offline requires published", func(t *testing.T) {
		err := f.svc.Offline(ctx, scFor(f.owner), article.ID)
		assert.True(t, apperr.Is(err, apperr.CodeParamError))
	})

	t.Run("publish sets time once", func(t *testing.T) {
		require.NoError(t, f.svc.Publish(ctx, scFor(f.owner), article.ID))

		err := f.svc.Publish(ctx, scFor(f.owner), article.ID)
		assert.True(t, apperr.Is(err, apperr.CodeParamError))
	})

	t.Run("offline after publish", func(t *testing.T) {
		require.NoError(t, f.svc.Offline(ctx, scFor(f.owner), article.ID))
	})

	t.Run("non-owner cannot publish", func(t *testing.T) {
		err := f.svc.Publish(ctx, scFor(f.other), article.ID)
		assert.True(t, apperr.Is(err, apperr.CodeForbidden))
	})
}

func TestListAndCuration(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.svc.Create(ctx, scFor(f.owner), f.input())
	require.NoError(t, err)
	in := f.input()
	in.Title = "Second post"
	in.TagIDs = nil
	second, err := f.svc.Create(ctx, scFor(f.owner), in)
	require.NoError(t, err)

	t.Run("list decorates items", func(t *testing.T) {
		page, err := f.svc.List(ctx, repository.ArticleFilter{})
		require.NoError(t, err)
		assert.Equal(t, 2, page.Total)
		require.Len(t, page.Items, 2)
		for _, item := range page.Items {
			assert.Equal(t, "Tech", item.CategoryName)
			assert.Empty(t, item.Content)
		}
	})

	t.Run("set top reorders", func(t *testing.T) {
		require.NoError(t, f.svc.SetTop(ctx, second.ID, true))
		page, err := f.svc.List(ctx, repository.ArticleFilter{})
		require.NoError(t, err)
		require.NotEmpty(t, page.Items)
		assert.Equal(t, second.ID, page.Items[0].ID)
	})

	t.Run("set featured filters", func(t *testing.T) {
		require.NoError(t, f.svc.SetFeatured(ctx, first.ID, true))
		featured := true
		page, err := f.svc.List(ctx, repository.ArticleFilter{IsFeatured: &featured})
		require.NoError(t, err)
		require.Equal(t, 1, page.Total)
		assert.Equal(t, first.ID, page.Items[0].ID)
	})

	t.Run("curation on missing article", func(t *testing.T) {
		err := f.svc.SetTop(ctx, 999, true)
		assert.True(t, apperr.Is(err, apperr.CodeDataNotFound))
	})
}
