package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Article publication status values.
const (
	ArticleDraft     = 0
	ArticlePublished = 1
	ArticleOffline   = 2
)

// Article is a blog post. Content holds the markdown source; ContentHTML the
// rendered form supplied by the client editor.
type Article struct {
	bun.BaseModel `bun:"table:articles,alias:a"`

	ID           int64      `bun:"id,pk,autoincrement" json:"id"`
	Title        string     `bun:"title,notnull" json:"title"`
	Summary      string     `bun:"summary" json:"summary"`
	CoverImage   string     `bun:"cover_image" json:"coverImage"`
	Content      string     `bun:"content,notnull" json:"content"`
	ContentHTML  string     `bun:"content_html" json:"contentHtml"`
	CategoryID   int64      `bun:"category_id,notnull" json:"categoryId"`
	AuthorID     int64      `bun:"author_id,notnull" json:"authorId"`
	ViewCount    int        `bun:"view_count,notnull,default:0" json:"viewCount"`
	LikeCount    int        `bun:"like_count,notnull,default:0" json:"likeCount"`
	CommentCount int        `bun:"comment_count,notnull,default:0" json:"commentCount"`
	Status       int        `bun:"status,notnull,default:0" json:"status"`
	IsTop        bool       `bun:"is_top,notnull,default:false" json:"isTop"`
	IsFeatured   bool       `bun:"is_featured,notnull,default:false" json:"isFeatured"`
	PublishTime  *time.Time `bun:"publish_time" json:"publishTime"`
	CreatedAt    time.Time  `bun:"created_at,notnull,default:current_timestamp" json:"createdAt"`
	UpdatedAt    time.Time  `bun:"updated_at,notnull,default:current_timestamp" json:"updatedAt"`
}

// ArticleTag links an article to a tag.
type ArticleTag struct {
	bun.BaseModel `bun:"table:article_tags,alias:at"`

	ID        int64 `bun:"id,pk,autoincrement" json:"id"`
	ArticleID int64 `bun:"article_id,notnull" json:"articleId"`
	TagID     int64 `bun:"tag_id,notnull" json:"tagId"`
}
