package migrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	"github.com/quillpress/quillpress/internal/db/models"
)

func init() {
	Migrations.MustRegister(up_20260115000001, down_20260115000001)
}

// up_20260115000001 seeds a default category so that a fresh install can
// accept its first article without admin setup.
func up_20260115000001(ctx context.Context, db *bun.DB) error {
	exists, err := db.NewSelect().
		Model((*models.Category)(nil)).
		Where("name = ?", "Uncategorized").
		Exists(ctx)
	if err != nil {
		return fmt.Errorf("check default category: %w", err)
	}
	if exists {
		return nil
	}

	_, err = db.NewInsert().
		Model(&models.Category{
			Name:        "Uncategorized",
			Description: "Default category",
			Status:      models.StatusActive,
		}).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("seed default category: %w", err)
	}
	return nil
}

func down_20260115000001(ctx context.Context, db *bun.DB) error {
	_, err := db.NewDelete().
		Model((*models.Category)(nil)).
		Where("name = ?", "Uncategorized").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("remove default category: %w", err)
	}
	return nil
}
