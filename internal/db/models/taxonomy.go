package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Category groups articles. ArticleCount is maintained by article operations
// rather than computed per query.
type Category struct {
	bun.BaseModel `bun:"table:categories,alias:c"`

	ID           int64     `bun:"id,pk,autoincrement" json:"id"`
	Name         string    `bun:"name,notnull,unique" json:"name"`
	Description  string    `bun:"description" json:"description"`
	Icon         string    `bun:"icon" json:"icon"`
	Sort         int       `bun:"sort,notnull,default:0" json:"sort"`
	Status       int       `bun:"status,notnull,default:1" json:"status"`
	ArticleCount int       `bun:"article_count,notnull,default:0" json:"articleCount"`
	CreatedAt    time.Time `bun:"created_at,notnull,default:current_timestamp" json:"createdAt"`
	UpdatedAt    time.Time `bun:"updated_at,notnull,default:current_timestamp" json:"updatedAt"`
}

// Tag labels articles; an article may carry any number of tags.
type Tag struct {
	bun.BaseModel `bun:"table:tags,alias:t"`

	ID          int64     `bun:"id,pk,autoincrement" json:"id"`
	Name        string    `bun:"name,notnull,unique" json:"name"`
	Description string    `bun:"description" json:"description"`
	Color       string    `bun:"color" json:"color"`
	CreatedAt   time.Time `bun:"created_at,notnull,default:current_timestamp" json:"createdAt"`
	UpdatedAt   time.Time `bun:"updated_at,notnull,default:current_timestamp" json:"updatedAt"`
}
