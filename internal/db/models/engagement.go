package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Comment is a user comment on an article. ParentID is set for replies.
type Comment struct {
	bun.BaseModel `bun:"table:comments,alias:cm"`

	ID        int64     `bun:"id,pk,autoincrement" json:"id"`
	ArticleID int64     `bun:"article_id,notnull" json:"articleId"`
	UserID    int64     `bun:"user_id,notnull" json:"userId"`
	ParentID  *int64    `bun:"parent_id" json:"parentId"`
	Content   string    `bun:"content,notnull" json:"content"`
	Status    int       `bun:"status,notnull,default:1" json:"status"`
	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp" json:"createdAt"`
	UpdatedAt time.Time `bun:"updated_at,notnull,default:current_timestamp" json:"updatedAt"`
}

// LikeRecord marks that a user liked an article. The (user_id, article_id)
// pair is unique; likes toggle by inserting and deleting rows.
type LikeRecord struct {
	bun.BaseModel `bun:"table:like_records,alias:lr"`

	ID        int64     `bun:"id,pk,autoincrement" json:"id"`
	UserID    int64     `bun:"user_id,notnull" json:"userId"`
	ArticleID int64     `bun:"article_id,notnull" json:"articleId"`
	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp" json:"createdAt"`
}
