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

// BunCategoryRepository implements CategoryRepository using Bun ORM
type BunCategoryRepository struct {
	db *bun.DB
}

// NewBunCategoryRepository creates a new Bun-based category repository
func NewBunCategoryRepository(db *bun.DB) *BunCategoryRepository {
	return &BunCategoryRepository{db: db}
}

func (r *BunCategoryRepository) Create(ctx context.Context, category *models.Category) error {
	_, err := r.db.NewInsert().
		Model(category).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("create category: %w", err)
	}
	return nil
}

func (r *BunCategoryRepository) GetByID(ctx context.Context, id int64) (*models.Category, error) {
	category := new(models.Category)
	err := r.db.NewSelect().
		Model(category).
		Where("id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("category %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("get category by ID: %w", err)
	}
	return category, nil
}

func (r *BunCategoryRepository) Update(ctx context.Context, category *models.Category) error {
	category.UpdatedAt = time.Now()
	result, err := r.db.NewUpdate().
		Model(category).
		WherePK().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("update category: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("category %d: %w", category.ID, ErrNotFound)
	}
	return nil
}

func (r *BunCategoryRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.NewDelete().
		Model((*models.Category)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}

func (r *BunCategoryRepository) List(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	err := r.db.NewSelect().
		Model(&categories).
		Order("sort ASC", "id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

// AddArticleCount adjusts the maintained article counter by delta
func (r *BunCategoryRepository) AddArticleCount(ctx context.Context, id int64, delta int) error {
	_, err := r.db.NewUpdate().
		Model((*models.Category)(nil)).
		Set("article_count = article_count + ?", delta).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("adjust category article count: %w", err)
	}
	return nil
}
