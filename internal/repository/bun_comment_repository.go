package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"

	"github.com/quillpress/quillpress/internal/db/models"
)

// BunCommentRepository implements CommentRepository using Bun ORM
type BunCommentRepository struct {
	db *bun.DB
}

// NewBunCommentRepository creates a new Bun-based comment repository
func NewBunCommentRepository(db *bun.DB) *BunCommentRepository {
	return &BunCommentRepository{db: db}
}

func (r *BunCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	_, err := r.db.NewInsert().
		Model(comment).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("create comment: %w", err)
	}
	return nil
}

func (r *BunCommentRepository) GetByID(ctx context.Context, id int64) (*models.Comment, error) {
	comment := new(models.Comment)
	err := r.db.NewSelect().
		Model(comment).
		Where("id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("comment %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("get comment by ID: %w", err)
	}
	return comment, nil
}

func (r *BunCommentRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.NewDelete().
		Model((*models.Comment)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	return nil
}

// ListByArticle returns a page of comments on an article, oldest first, plus
// the total count.
func (r *BunCommentRepository) ListByArticle(ctx context.Context, articleID int64, page, pageSize int) ([]models.Comment, int, error) {
	var comments []models.Comment

	q := r.db.NewSelect().
		Model(&comments).
		Where("article_id = ?", articleID)

	total, err := q.Count(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("count comments: %w", err)
	}

	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}

	err = q.Order("created_at ASC", "id ASC").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Scan(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("list comments: %w", err)
	}
	return comments, total, nil
}
