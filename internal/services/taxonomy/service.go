// Package taxonomy manages categories and tags.
package taxonomy

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/quillpress/quillpress/internal/apperr"
	"github.com/quillpress/quillpress/internal/db/models"
	"github.com/quillpress/quillpress/internal/repository"
)

// CategoryInput carries the writable fields of a category.
type CategoryInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Sort        int    `json:"sort"`
	Status      int    `json:"status"`
}

// TagInput carries the writable fields of a tag.
type TagInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Color       string `json:"color"`
}

// Service implements category and tag management.
type Service struct {
	categories repository.CategoryRepository
	tags       repository.TagRepository
}

// NewService creates the taxonomy service.
func NewService(categories repository.CategoryRepository, tags repository.TagRepository) *Service {
	return &Service{categories: categories, tags: tags}
}

// ListCategories returns all categories in sort order.
func (s *Service) ListCategories(ctx context.Context) ([]models.Category, error) {
	return s.categories.List(ctx)
}

// CreateCategory stores a new category. Names are unique.
func (s *Service) CreateCategory(ctx context.Context, in CategoryInput) (*models.Category, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, apperr.New(apperr.CodeParamMissing, "category name is required")
	}
	if err := s.checkCategoryName(ctx, in.Name, 0); err != nil {
		return nil, err
	}

	category := &models.Category{
		Name:        in.Name,
		Description: in.Description,
		Icon:        in.Icon,
		Sort:        in.Sort,
		Status:      in.Status,
	}
	if err := s.categories.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// UpdateCategory rewrites an existing category.
func (s *Service) UpdateCategory(ctx context.Context, id int64, in CategoryInput) (*models.Category, error) {
	category, err := s.loadCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Name) == "" {
		return nil, apperr.New(apperr.CodeParamMissing, "category name is required")
	}
	if err := s.checkCategoryName(ctx, in.Name, id); err != nil {
		return nil, err
	}

	category.Name = in.Name
	category.Description = in.Description
	category.Icon = in.Icon
	category.Sort = in.Sort
	category.Status = in.Status
	if err := s.categories.Update(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// DeleteCategory removes a category. Categories still holding articles are
// refused to keep the article table consistent.
func (s *Service) DeleteCategory(ctx context.Context, id int64) error {
	category, err := s.loadCategory(ctx, id)
	if err != nil {
		return err
	}
	if category.ArticleCount > 0 {
		return apperr.Newf(apperr.CodeParamError, "category %s still has %d articles", category.Name, category.ArticleCount)
	}
	return s.categories.Delete(ctx, id)
}

// ListTags returns all tags.
func (s *Service) ListTags(ctx context.Context) ([]models.Tag, error) {
	return s.tags.List(ctx)
}

// CreateTag stores a new tag. Names are unique.
func (s *Service) CreateTag(ctx context.Context, in TagInput) (*models.Tag, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, apperr.New(apperr.CodeParamMissing, "tag name is required")
	}
	if err := s.checkTagName(ctx, in.Name, 0); err != nil {
		return nil, err
	}

	tag := &models.Tag{Name: in.Name, Description: in.Description, Color: in.Color}
	if err := s.tags.Create(ctx, tag); err != nil {
		return nil, err
	}
	return tag, nil
}

// UpdateTag rewrites an existing tag.
func (s *Service) UpdateTag(ctx context.Context, id int64, in TagInput) (*models.Tag, error) {
	tag, err := s.loadTag(ctx, id)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Name) == "" {
		return nil, apperr.New(apperr.CodeParamMissing, "tag name is required")
	}
	if err := s.checkTagName(ctx, in.Name, id); err != nil {
		return nil, err
	}

	tag.Name = in.Name
	tag.Description = in.Description
	tag.Color = in.Color
	if err := s.tags.Update(ctx, tag); err != nil {
		return nil, err
	}
	return tag, nil
}

// DeleteTag removes a tag and its article links.
func (s *Service) DeleteTag(ctx context.Context, id int64) error {
	if _, err := s.loadTag(ctx, id); err != nil {
		return err
	}
	return s.tags.Delete(ctx, id)
}

func (s *Service) loadCategory(ctx context.Context, id int64) (*models.Category, error) {
	category, err := s.categories.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.DataNotFound(fmt.Sprintf("category %d", id))
		}
		return nil, err
	}
	return category, nil
}

func (s *Service) loadTag(ctx context.Context, id int64) (*models.Tag, error) {
	tag, err := s.tags.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.DataNotFound(fmt.Sprintf("tag %d", id))
		}
		return nil, err
	}
	return tag, nil
}

func (s *Service) checkCategoryName(ctx context.Context, name string, selfID int64) error {
	categories, err := s.categories.List(ctx)
	if err != nil {
		return err
	}
	for _, category := range categories {
		if category.Name == name && category.ID != selfID {
			return apperr.Newf(apperr.CodeDataExists, "category %s already exists", name)
		}
	}
	return nil
}

func (s *Service) checkTagName(ctx context.Context, name string, selfID int64) error {
	tags, err := s.tags.List(ctx)
	if err != nil {
		return err
	}
	for _, tag := range tags {
		if tag.Name == name && tag.ID != selfID {
			return apperr.Newf(apperr.CodeDataExists, "tag %s already exists", name)
		}
	}
	return nil
}
