package repository

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	"github.com/quillpress/quillpress/internal/db/models"
)

// BunLikeRepository implements LikeRepository using Bun ORM
type BunLikeRepository struct {
	db *bun.DB
}

// NewBunLikeRepository creates a new Bun-based like repository
func NewBunLikeRepository(db *bun.DB) *BunLikeRepository {
	return &BunLikeRepository{db: db}
}

func (r *BunLikeRepository) Exists(ctx context.Context, userID, articleID int64) (bool, error) {
	exists, err := r.db.NewSelect().
		Model((*models.LikeRecord)(nil)).
		Where("user_id = ?", userID).
		Where("article_id = ?", articleID).
		Exists(ctx)
	if err != nil {
		return false, fmt.Errorf("check like record: %w", err)
	}
	return exists, nil
}

func (r *BunLikeRepository) Create(ctx context.Context, like *models.LikeRecord) error {
	_, err := r.db.NewInsert().
		Model(like).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("create like record: %w", err)
	}
	return nil
}

func (r *BunLikeRepository) Delete(ctx context.Context, userID, articleID int64) error {
	_, err := r.db.NewDelete().
		Model((*models.LikeRecord)(nil)).
		Where("user_id = ?", userID).
		Where("article_id = ?", articleID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("delete like record: %w", err)
	}
	return nil
}
