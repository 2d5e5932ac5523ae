package repository

import (
	"context"
	"errors"

	"github.com/quillpress/quillpress/internal/db/models"
)

// ErrNotFound is returned when a requested record does not exist. Callers
// discriminate it with errors.Is and map it to their own error codes.
var ErrNotFound = errors.New("record not found")

// UserRepository exposes persistence operations for accounts. This is the
// user-store collaborator consumed by the authentication core.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	UpdateLastLogin(ctx context.Context, id int64, ip string) error
}

// ArticleFilter narrows article list queries. Zero values mean "no filter";
// Status defaults to published when nil.
type ArticleFilter struct {
	CategoryID *int64
	TagID      *int64
	AuthorID   *int64
	Keyword    string
	Status     *int
	IsTop      *bool
	IsFeatured *bool
	OrderBy    string // publishTime | viewCount | likeCount | createTime
	Asc        bool
	Page       int
	PageSize   int
}

// ArticleRepository exposes persistence operations for articles and their
// tag links.
type ArticleRepository interface {
	Create(ctx context.Context, article *models.Article) error
	GetByID(ctx context.Context, id int64) (*models.Article, error)
	Update(ctx context.Context, article *models.Article) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter ArticleFilter) ([]models.Article, int, error)
	IncrementViewCount(ctx context.Context, id int64) error
	AddCounts(ctx context.Context, id int64, likeDelta, commentDelta int) error
	SetTop(ctx context.Context, id int64, isTop bool) error
	SetFeatured(ctx context.Context, id int64, isFeatured bool) error

	ReplaceTags(ctx context.Context, articleID int64, tagIDs []int64) error
	TagIDsOf(ctx context.Context, articleID int64) ([]int64, error)
	ArticleIDsByTag(ctx context.Context, tagID int64) ([]int64, error)
}

// CategoryRepository exposes persistence operations for categories.
type CategoryRepository interface {
	Create(ctx context.Context, category *models.Category) error
	GetByID(ctx context.Context, id int64) (*models.Category, error)
	Update(ctx context.Context, category *models.Category) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]models.Category, error)
	AddArticleCount(ctx context.Context, id int64, delta int) error
}

// TagRepository exposes persistence operations for tags.
type TagRepository interface {
	Create(ctx context.Context, tag *models.Tag) error
	GetByID(ctx context.Context, id int64) (*models.Tag, error)
	Update(ctx context.Context, tag *models.Tag) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]models.Tag, error)
}

// CommentRepository exposes persistence operations for comments.
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id int64) (*models.Comment, error)
	Delete(ctx context.Context, id int64) error
	ListByArticle(ctx context.Context, articleID int64, page, pageSize int) ([]models.Comment, int, error)
}

// LikeRepository exposes persistence operations for like records.
type LikeRepository interface {
	Exists(ctx context.Context, userID, articleID int64) (bool, error)
	Create(ctx context.Context, like *models.LikeRecord) error
	Delete(ctx context.Context, userID, articleID int64) error
}
