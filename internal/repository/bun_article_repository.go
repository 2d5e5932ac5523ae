package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	"github.com/quillpress/quillpress/internal/db/models"
)

// BunArticleRepository implements ArticleRepository using Bun ORM
type BunArticleRepository struct {
	db *bun.DB
}

// NewBunArticleRepository creates a new Bun-based article repository
func NewBunArticleRepository(db *bun.DB) *BunArticleRepository {
	return &BunArticleRepository{db: db}
}

// Create inserts a new article
func (r *BunArticleRepository) Create(ctx context.Context, article *models.Article) error {
	_, err := r.db.NewInsert().
		Model(article).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("create article: %w", err)
	}
	return nil
}

// GetByID retrieves an article by ID
func (r *BunArticleRepository) GetByID(ctx context.Context, id int64) (*models.Article, error) {
	article := new(models.Article)
	err := r.db.NewSelect().
		Model(article).
		Where("id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("article %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("get article by ID: %w", err)
	}
	return article, nil
}

// Update updates an existing article
func (r *BunArticleRepository) Update(ctx context.Context, article *models.Article) error {
	article.UpdatedAt = time.Now()
	result, err := r.db.NewUpdate().
		Model(article).
		WherePK().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("update article: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("article %d: %w", article.ID, ErrNotFound)
	}
	return nil
}

// Delete removes an article and its tag links
func (r *BunArticleRepository) Delete(ctx context.Context, id int64) error {
	return r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewDelete().
			Model((*models.ArticleTag)(nil)).
			Where("article_id = ?", id).
			Exec(ctx); err != nil {
			return fmt.Errorf("delete article tags: %w", err)
		}
		if _, err := tx.NewDelete().
			Model((*models.Article)(nil)).
			Where("id = ?", id).
			Exec(ctx); err != nil {
			return fmt.Errorf("delete article: %w", err)
		}
		return nil
	})
}

// List returns a page of articles matching the filter plus the total count.
func (r *BunArticleRepository) List(ctx context.Context, filter ArticleFilter) ([]models.Article, int, error) {
	var articles []models.Article

	q := r.db.NewSelect().Model(&articles)

	if filter.CategoryID != nil {
		q = q.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.AuthorID != nil {
		q = q.Where("author_id = ?", *filter.AuthorID)
	}
	if filter.TagID != nil {
		ids, err := r.ArticleIDsByTag(ctx, *filter.TagID)
		if err != nil {
			return nil, 0, err
		}
		if len(ids) == 0 {
			return []models.Article{}, 0, nil
		}
		q = q.Where("a.id IN (?)", bun.In(ids))
	}
	if filter.Keyword != "" {
		pattern := "%" + filter.Keyword + "%"
		q = q.WhereGroup(" AND ", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("title LIKE ?", pattern).WhereOr("summary LIKE ?", pattern)
		})
	}
	if filter.Status != nil {
		q = q.Where("a.status = ?", *filter.Status)
	} else {
		// Only published articles are visible by default.
		q = q.Where("a.status = ?", models.ArticlePublished)
	}
	if filter.IsTop != nil {
		q = q.Where("is_top = ?", *filter.IsTop)
	}
	if filter.IsFeatured != nil {
		q = q.Where("is_featured = ?", *filter.IsFeatured)
	}

	total, err := q.Count(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("count articles: %w", err)
	}

	dir := "DESC"
	if filter.Asc {
		dir = "ASC"
	}
	q = q.Order("is_top DESC")
	switch filter.OrderBy {
	case "publishTime":
		q = q.OrderExpr("publish_time " + dir)
	case "viewCount":
		q = q.OrderExpr("view_count " + dir)
	case "likeCount":
		q = q.OrderExpr("like_count " + dir)
	default:
		q = q.OrderExpr("a.created_at " + dir)
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 {
		pageSize = 10
	}
	q = q.Limit(pageSize).Offset((page - 1) * pageSize)

	if err := q.Scan(ctx); err != nil {
		return nil, 0, fmt.Errorf("list articles: %w", err)
	}
	return articles, total, nil
}

// IncrementViewCount bumps the view counter by one
func (r *BunArticleRepository) IncrementViewCount(ctx context.Context, id int64) error {
	_, err := r.db.NewUpdate().
		Model((*models.Article)(nil)).
		Set("view_count = view_count + 1").
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("increment view count: %w", err)
	}
	return nil
}

// AddCounts adjusts the like and comment counters by the given deltas
func (r *BunArticleRepository) AddCounts(ctx context.Context, id int64, likeDelta, commentDelta int) error {
	_, err := r.db.NewUpdate().
		Model((*models.Article)(nil)).
		Set("like_count = like_count + ?", likeDelta).
		Set("comment_count = comment_count + ?", commentDelta).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("adjust article counters: %w", err)
	}
	return nil
}

// SetTop sets or clears the top flag
func (r *BunArticleRepository) SetTop(ctx context.Context, id int64, isTop bool) error {
	_, err := r.db.NewUpdate().
		Model((*models.Article)(nil)).
		Set("is_top = ?", isTop).
		Set("updated_at = ?", time.Now()).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("set top: %w", err)
	}
	return nil
}

// SetFeatured sets or clears the featured flag
func (r *BunArticleRepository) SetFeatured(ctx context.Context, id int64, isFeatured bool) error {
	_, err := r.db.NewUpdate().
		Model((*models.Article)(nil)).
		Set("is_featured = ?", isFeatured).
		Set("updated_at = ?", time.Now()).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("set featured: %w", err)
	}
	return nil
}

// ReplaceTags replaces the tag links of an article
func (r *BunArticleRepository) ReplaceTags(ctx context.Context, articleID int64, tagIDs []int64) error {
	return r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewDelete().
			Model((*models.ArticleTag)(nil)).
			Where("article_id = ?", articleID).
			Exec(ctx); err != nil {
			return fmt.Errorf("clear article tags: %w", err)
		}
		if len(tagIDs) == 0 {
			return nil
		}
		links := make([]models.ArticleTag, 0, len(tagIDs))
		for _, tagID := range tagIDs {
			links = append(links, models.ArticleTag{ArticleID: articleID, TagID: tagID})
		}
		if _, err := tx.NewInsert().
			Model(&links).
			Exec(ctx); err != nil {
			return fmt.Errorf("link article tags: %w", err)
		}
		return nil
	})
}

// TagIDsOf returns the tag IDs linked to an article
func (r *BunArticleRepository) TagIDsOf(ctx context.Context, articleID int64) ([]int64, error) {
	var ids []int64
	err := r.db.NewSelect().
		Model((*models.ArticleTag)(nil)).
		Column("tag_id").
		Where("article_id = ?", articleID).
		Scan(ctx, &ids)
	if err != nil {
		return nil, fmt.Errorf("tag ids of article: %w", err)
	}
	return ids, nil
}

// ArticleIDsByTag returns the IDs of articles carrying the given tag
func (r *BunArticleRepository) ArticleIDsByTag(ctx context.Context, tagID int64) ([]int64, error) {
	var ids []int64
	err := r.db.NewSelect().
		Model((*models.ArticleTag)(nil)).
		Column("article_id").
		Where("tag_id = ?", tagID).
		Scan(ctx, &ids)
	if err != nil {
		return nil, fmt.Errorf("article ids by tag: %w", err)
	}
	return ids, nil
}
