package migrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	"github.com/quillpress/quillpress/internal/db/models"
)

func init() {
	Migrations.MustRegister(up_20260115000000, down_20260115000000)
}

// up_20260115000000 initializes the full blog schema.
func up_20260115000000(ctx context.Context, db *bun.DB) error {
	tables := []struct {
		name  string
		model any
	}{
		{"users", (*models.User)(nil)},
		{"categories", (*models.Category)(nil)},
		{"tags", (*models.Tag)(nil)},
		{"articles", (*models.Article)(nil)},
		{"article_tags", (*models.ArticleTag)(nil)},
		{"comments", (*models.Comment)(nil)},
		{"like_records", (*models.LikeRecord)(nil)},
	}

	for _, tbl := range tables {
		_, err := db.NewCreateTable().
			Model(tbl.model).
			IfNotExists().
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to create %s table: %w", tbl.name, err)
		}
	}

	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_articles_author ON articles(author_id)`,
		`CREATE INDEX IF NOT EXISTS idx_articles_category ON articles(category_id)`,
		`CREATE INDEX IF NOT EXISTS idx_articles_status ON articles(status)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_article_tags_pair ON article_tags(article_id, tag_id)`,
		`CREATE INDEX IF NOT EXISTS idx_comments_article ON comments(article_id)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_like_records_pair ON like_records(user_id, article_id)`,
	}
	for _, stmt := range indexes {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	return nil
}

func down_20260115000000(ctx context.Context, db *bun.DB) error {
	for _, model := range []any{
		(*models.LikeRecord)(nil),
		(*models.Comment)(nil),
		(*models.ArticleTag)(nil),
		(*models.Article)(nil),
		(*models.Tag)(nil),
		(*models.Category)(nil),
		(*models.User)(nil),
	} {
		_, err := db.NewDropTable().
			Model(model).
			IfExists().
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to drop table: %w", err)
		}
	}
	return nil
}
