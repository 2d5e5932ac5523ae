// Package engagement implements comments and likes.
package engagement

import (
	"context"
	"errors"
	"fmt"

	"github.com/quillpress/quillpress/internal/apperr"
	"github.com/quillpress/quillpress/internal/auth"
	"github.com/quillpress/quillpress/internal/authz"
	"github.com/quillpress/quillpress/internal/db/models"
	"github.com/quillpress/quillpress/internal/repository"
)

// CommentPage is one page of comments plus the total count.
type CommentPage struct {
	Items []models.Comment `json:"items"`
	Total int              `json:"total"`
}

// Service implements comment and like operations.
type Service struct {
	articles repository.ArticleRepository
	comments repository.CommentRepository
	likes    repository.LikeRepository
}

// NewService creates the engagement service.
func NewService(
	articles repository.ArticleRepository,
	comments repository.CommentRepository,
	likes repository.LikeRepository,
) *Service {
	return &Service{articles: articles, comments: comments, likes: likes}
}

// ListComments returns a page of comments on an article, replies included.
func (s *Service) ListComments(ctx context.Context, articleID int64, page, pageSize int) (*CommentPage, error) {
	if err := s.checkArticle(ctx, articleID); err != nil {
		return nil, err
	}
	items, total, err := s.comments.ListByArticle(ctx, articleID, page, pageSize)
	if err != nil {
		return nil, err
	}
	return &CommentPage{Items: items, Total: total}, nil
}

// AddComment posts a comment by the current principal and bumps the
// article's comment counter. parentID references the comment being replied
// to, if any.
func (s *Service) AddComment(ctx context.Context, sc auth.SecurityContext, articleID int64, parentID *int64, content string) (*models.Comment, error) {
	userID, err := sc.RequireUserID()
	if err != nil {
		return nil, err
	}
	if content == "" {
		return nil, apperr.New(apperr.CodeParamMissing, "comment content is required")
	}
	if err := s.checkArticle(ctx, articleID); err != nil {
		return nil, err
	}
	if parentID != nil {
		parent, err := s.comments.GetByID(ctx, *parentID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, apperr.Newf(apperr.CodeParamError, "parent comment %d does not exist", *parentID)
			}
			return nil, err
		}
		if parent.ArticleID != articleID {
			return nil, apperr.New(apperr.CodeParamError, "parent comment belongs to another article")
		}
	}

	comment := &models.Comment{
		ArticleID: articleID,
		UserID:    userID,
		ParentID:  parentID,
		Content:   content,
		Status:    models.StatusActive,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}
	if err := s.articles.AddCounts(ctx, articleID, 0, 1); err != nil {
		return nil, err
	}
	return comment, nil
}

// DeleteComment removes a comment. Only its author or an admin may delete;
// the article's comment counter follows.
func (s *Service) DeleteComment(ctx context.Context, sc auth.SecurityContext, commentID int64) error {
	comment, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.DataNotFound(fmt.Sprintf("comment %d", commentID))
		}
		return err
	}
	if err := authz.RequireOwnerOrAdmin(sc, comment.UserID); err != nil {
		return err
	}
	if err := s.comments.Delete(ctx, commentID); err != nil {
		return err
	}
	return s.articles.AddCounts(ctx, comment.ArticleID, 0, -1)
}

// ToggleLike flips the like state of the current principal on an article
// and reports the new state.
func (s *Service) ToggleLike(ctx context.Context, sc auth.SecurityContext, articleID int64) (bool, error) {
	userID, err := sc.RequireUserID()
	if err != nil {
		return false, err
	}
	if err := s.checkArticle(ctx, articleID); err != nil {
		return false, err
	}

	liked, err := s.likes.Exists(ctx, userID, articleID)
	if err != nil {
		return false, err
	}
	if liked {
		if err := s.likes.Delete(ctx, userID, articleID); err != nil {
			return false, err
		}
		if err := s.articles.AddCounts(ctx, articleID, -1, 0); err != nil {
			return false, err
		}
		return false, nil
	}

	if err := s.likes.Create(ctx, &models.LikeRecord{UserID: userID, ArticleID: articleID}); err != nil {
		return false, err
	}
	if err := s.articles.AddCounts(ctx, articleID, 1, 0); err != nil {
		return false, err
	}
	return true, nil
}

func (s *Service) checkArticle(ctx context.Context, articleID int64) error {
	_, err := s.articles.GetByID(ctx, articleID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.DataNotFound(fmt.Sprintf("article %d", articleID))
		}
		return err
	}
	return nil
}
