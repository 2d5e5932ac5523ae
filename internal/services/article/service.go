// Package article implements the publishing workflow: drafts, publication,
// listing, curation flags and the counters hanging off an article.
package article

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/quillpress/quillpress/internal/apperr"
	"github.com/quillpress/quillpress/internal/auth"
	"github.com/quillpress/quillpress/internal/authz"
	"github.com/quillpress/quillpress/internal/db/models"
	"github.com/quillpress/quillpress/internal/repository"
)

// nameCacheSize bounds the category and tag name caches used when
// assembling list pages.
const (
	nameCacheSize = 256
	nameCacheTTL  = time.Minute
)

// Input carries the writable fields of an article.
type Input struct {
	Title       string  `json:"title"`
	Summary     string  `json:"summary"`
	CoverImage  string  `json:"coverImage"`
	Content     string  `json:"content"`
	ContentHTML string  `json:"contentHtml"`
	CategoryID  int64   `json:"categoryId"`
	Status      int     `json:"status"`
	TagIDs      []int64 `json:"tagIds"`
}

// View is an article decorated with the names a reader wants to see.
type View struct {
	models.Article

	CategoryName string       `json:"categoryName"`
	Tags         []models.Tag `json:"tags"`
	AuthorName   string       `json:"authorName"`
	AuthorAvatar string       `json:"authorAvatar"`
}

// Page is one page of article views plus the total match count.
type Page struct {
	Items []View `json:"items"`
	Total int    `json:"total"`
}

// Service implements article operations.
type Service struct {
	articles   repository.ArticleRepository
	categories repository.CategoryRepository
	tags       repository.TagRepository
	users      repository.UserRepository

	categoryNames *expirable.LRU[int64, string]
	tagNames      *expirable.LRU[int64, models.Tag]
}

// NewService creates the article service.
func NewService(
	articles repository.ArticleRepository,
	categories repository.CategoryRepository,
	tags repository.TagRepository,
	users repository.UserRepository,
) *Service {
	return &Service{
		articles:      articles,
		categories:    categories,
		tags:          tags,
		users:         users,
		categoryNames: expirable.NewLRU[int64, string](nameCacheSize, nil, nameCacheTTL),
		tagNames:      expirable.NewLRU[int64, models.Tag](nameCacheSize, nil, nameCacheTTL),
	}
}

// Create stores a new article authored by the current principal.
func (s *Service) Create(ctx context.Context, sc auth.SecurityContext, in Input) (*models.Article, error) {
	authorID, err := sc.RequireUserID()
	if err != nil {
		return nil, err
	}
	if in.Title == "" || in.Content == "" {
		return nil, apperr.New(apperr.CodeParamMissing, "title and content are required")
	}
	if err := s.checkCategory(ctx, in.CategoryID); err != nil {
		return nil, err
	}

	article := &models.Article{
		Title:       in.Title,
		Summary:     in.Summary,
		CoverImage:  in.CoverImage,
		Content:     in.Content,
		ContentHTML: in.ContentHTML,
		CategoryID:  in.CategoryID,
		AuthorID:    authorID,
		Status:      in.Status,
	}
	if article.Status == models.ArticlePublished {
		now := time.Now()
		article.PublishTime = &now
	}

	if err := s.articles.Create(ctx, article); err != nil {
		return nil, err
	}
	if err := s.articles.ReplaceTags(ctx, article.ID, in.TagIDs); err != nil {
		return nil, err
	}
	if err := s.categories.AddArticleCount(ctx, in.CategoryID, 1); err != nil {
		return nil, err
	}
	return article, nil
}

// Update rewrites an article. Only the owner or an admin may update. The
// publish time is set the first time the article reaches published state,
// and category counters follow a category move.
func (s *Service) Update(ctx context.Context, sc auth.SecurityContext, id int64, in Input) (*models.Article, error) {
	article, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authz.RequireOwnerOrAdmin(sc, article.AuthorID); err != nil {
		return nil, err
	}
	if in.Title == "" || in.Content == "" {
		return nil, apperr.New(apperr.CodeParamMissing, "title and content are required")
	}
	if err := s.checkCategory(ctx, in.CategoryID); err != nil {
		return nil, err
	}

	previousCategory := article.CategoryID
	article.Title = in.Title
	article.Summary = in.Summary
	article.CoverImage = in.CoverImage
	article.Content = in.Content
	article.ContentHTML = in.ContentHTML
	article.CategoryID = in.CategoryID
	article.Status = in.Status
	if article.Status == models.ArticlePublished && article.PublishTime == nil {
		now := time.Now()
		article.PublishTime = &now
	}

	if err := s.articles.Update(ctx, article); err != nil {
		return nil, err
	}
	if err := s.articles.ReplaceTags(ctx, article.ID, in.TagIDs); err != nil {
		return nil, err
	}
	if previousCategory != in.CategoryID {
		if err := s.categories.AddArticleCount(ctx, previousCategory, -1); err != nil {
			return nil, err
		}
		if err := s.categories.AddArticleCount(ctx, in.CategoryID, 1); err != nil {
			return nil, err
		}
	}
	return article, nil
}

// Delete removes an article together with its tag links.
func (s *Service) Delete(ctx context.Context, sc auth.SecurityContext, id int64) error {
	article, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if err := authz.RequireOwnerOrAdmin(sc, article.AuthorID); err != nil {
		return err
	}
	if err := s.articles.Delete(ctx, id); err != nil {
		return err
	}
	return s.categories.AddArticleCount(ctx, article.CategoryID, -1)
}

// Detail returns a single article with its category, tags and author, and
// bumps the view counter.
func (s *Service) Detail(ctx context.Context, id int64) (*View, error) {
	article, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.articles.IncrementViewCount(ctx, id); err != nil {
		return nil, err
	}
	article.ViewCount++

	view, err := s.decorate(ctx, *article)
	if err != nil {
		return nil, err
	}
	return &view, nil
}

// List returns a filtered page of articles.
func (s *Service) List(ctx context.Context, filter repository.ArticleFilter) (*Page, error) {
	articles, total, err := s.articles.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]View, 0, len(articles))
	for _, article := range articles {
		// Readers browsing the list do not need the full body.
		article.Content = ""
		article.ContentHTML = ""
		view, err := s.decorate(ctx, article)
		if err != nil {
			return nil, err
		}
		items = append(items, view)
	}
	return &Page{Items: items, Total: total}, nil
}

// Publish moves a draft to the published state.
func (s *Service) Publish(ctx context.Context, sc auth.SecurityContext, id int64) error {
	article, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if err := authz.RequireOwnerOrAdmin(sc, article.AuthorID); err != nil {
		return err
	}
	if article.Status == models.ArticlePublished {
		return apperr.New(apperr.CodeParamError, "article is already published")
	}
	article.Status = models.ArticlePublished
	if article.PublishTime == nil {
		now := time.Now()
		article.PublishTime = &now
	}
	return s.articles.Update(ctx, article)
}

// Offline takes a published article off the site.
func (s *Service) Offline(ctx context.Context, sc auth.SecurityContext, id int64) error {
	article, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if err := authz.RequireOwnerOrAdmin(sc, article.AuthorID); err != nil {
		return err
	}
	if article.Status != models.ArticlePublished {
		return apperr.New(apperr.CodeParamError, "article is not published")
	}
	article.Status = models.ArticleOffline
	return s.articles.Update(ctx, article)
}

// SetTop pins or unpins an article. The route table already restricts this
// to admins.
func (s *Service) SetTop(ctx context.Context, id int64, isTop bool) error {
	if _, err := s.load(ctx, id); err != nil {
		return err
	}
	return s.articles.SetTop(ctx, id, isTop)
}

// SetFeatured marks or unmarks an article as featured.
func (s *Service) SetFeatured(ctx context.Context, id int64, isFeatured bool) error {
	if _, err := s.load(ctx, id); err != nil {
		return err
	}
	return s.articles.SetFeatured(ctx, id, isFeatured)
}

func (s *Service) load(ctx context.Context, id int64) (*models.Article, error) {
	article, err := s.articles.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.DataNotFound(fmt.Sprintf("article %d", id))
		}
		return nil, err
	}
	return article, nil
}

func (s *Service) checkCategory(ctx context.Context, id int64) error {
	category, err := s.categories.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.Newf(apperr.CodeParamError, "category %d does not exist", id)
		}
		return err
	}
	if category.Status != models.StatusActive {
		return apperr.Newf(apperr.CodeParamError, "category %s is disabled", category.Name)
	}
	return nil
}

func (s *Service) decorate(ctx context.Context, article models.Article) (View, error) {
	view := View{Article: article}

	name, err := s.categoryName(ctx, article.CategoryID)
	if err != nil {
		return View{}, err
	}
	view.CategoryName = name

	tagIDs, err := s.articles.TagIDsOf(ctx, article.ID)
	if err != nil {
		return View{}, err
	}
	view.Tags = make([]models.Tag, 0, len(tagIDs))
	for _, tagID := range tagIDs {
		tag, err := s.tagByID(ctx, tagID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				continue
			}
			return View{}, err
		}
		view.Tags = append(view.Tags, tag)
	}

	author, err := s.users.GetByID(ctx, article.AuthorID)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return View{}, err
		}
	} else {
		view.AuthorName = author.Nickname
		if view.AuthorName == "" {
			view.AuthorName = author.Username
		}
		view.AuthorAvatar = author.Avatar
	}
	return view, nil
}

func (s *Service) categoryName(ctx context.Context, id int64) (string, error) {
	if name, ok := s.categoryNames.Get(id); ok {
		return name, nil
	}
	category, err := s.categories.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", nil
		}
		return "", err
	}
	s.categoryNames.Add(id, category.Name)
	return category.Name, nil
}

func (s *Service) tagByID(ctx context.Context, id int64) (models.Tag, error) {
	if tag, ok := s.tagNames.Get(id); ok {
		return tag, nil
	}
	tag, err := s.tags.GetByID(ctx, id)
	if err != nil {
		return models.Tag{}, err
	}
	s.tagNames.Add(id, *tag)
	return *tag, nil
}
