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

// BunTagRepository implements TagRepository using Bun ORM
type BunTagRepository struct {
	db *bun.DB
}

// NewBunTagRepository creates a new Bun-based tag repository
func NewBunTagRepository(db *bun.DB) *BunTagRepository {
	return &BunTagRepository{db: db}
}

func (r *BunTagRepository) Create(ctx context.Context, tag *models.Tag) error {
	_, err := r.db.NewInsert().
		Model(tag).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("create tag: %w", err)
	}
	return nil
}

func (r *BunTagRepository) GetByID(ctx context.Context, id int64) (*models.Tag, error) {
	tag := new(models.Tag)
	err := r.db.NewSelect().
		Model(tag).
		Where("id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("tag %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("get tag by ID: %w", err)
	}
	return tag, nil
}

func (r *BunTagRepository) Update(ctx context.Context, tag *models.Tag) error {
	tag.UpdatedAt = time.Now()
	result, err := r.db.NewUpdate().
		Model(tag).
		WherePK().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("update tag: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("tag %d: %w", tag.ID, ErrNotFound)
	}
	return nil
}

func (r *BunTagRepository) Delete(ctx context.Context, id int64) error {
	return r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewDelete().
			Model((*models.ArticleTag)(nil)).
			Where("tag_id = ?", id).
			Exec(ctx); err != nil {
			return fmt.Errorf("unlink tag: %w", err)
		}
		if _, err := tx.NewDelete().
			Model((*models.Tag)(nil)).
			Where("id = ?", id).
			Exec(ctx); err != nil {
			return fmt.Errorf("delete tag: %w", err)
		}
		return nil
	})
}

func (r *BunTagRepository) List(ctx context.Context) ([]models.Tag, error) {
	var tags []models.Tag
	err := r.db.NewSelect().
		Model(&tags).
		Order("id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	return tags, nil
}
