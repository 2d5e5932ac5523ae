package server

import (
	"net/http"
	"strconv"

	"github.com/quillpress/quillpress/internal/auth"
	"github.com/quillpress/quillpress/internal/repository"
	articlesvc "github.com/quillpress/quillpress/internal/services/article"
)

func (s *Server) handleCreateArticle(w http.ResponseWriter, r *http.Request) {
	var in articlesvc.Input
	if err := decodeJSON(r, &in); err != nil {
		RespondError(w, err)
		return
	}

	article, err := s.articles.Create(r.Context(), auth.SecurityContextFrom(r.Context()), in)
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondOK(w, article)
}

func (s *Server) handleUpdateArticle(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		RespondError(w, err)
		return
	}
	var in articlesvc.Input
	if err := decodeJSON(r, &in); err != nil {
		RespondError(w, err)
		return
	}

	article, err := s.articles.Update(r.Context(), auth.SecurityContextFrom(r.Context()), id, in)
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondOK(w, article)
}

func (s *Server) handleDeleteArticle(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		RespondError(w, err)
		return
	}
	if err := s.articles.Delete(r.Context(), auth.SecurityContextFrom(r.Context()), id); err != nil {
		RespondError(w, err)
		return
	}
	RespondOK(w, nil)
}

func (s *Server) handleArticleDetail(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		RespondError(w, err)
		return
	}
	view, err := s.articles.Detail(r.Context(), id)
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondOK(w, view)
}

func (s *Server) handleListArticles(w http.ResponseWriter, r *http.Request) {
	filter := repository.ArticleFilter{
		Keyword:  r.URL.Query().Get("keyword"),
		OrderBy:  r.URL.Query().Get("orderBy"),
		Asc:      boolQuery(r, "asc"),
		Page:     intQuery(r, "page", 1),
		PageSize: intQuery(r, "pageSize", 10),
	}
	filter.CategoryID = int64Query(r, "categoryId")
	filter.TagID = int64Query(r, "tagId")
	filter.AuthorID = int64Query(r, "authorId")
	if raw := r.URL.Query().Get("status"); raw != "" {
		if status, err := strconv.Atoi(raw); err == nil {
			filter.Status = &status
		}
	}
	if raw := r.URL.Query().Get("isTop"); raw != "" {
		isTop := raw == "true"
		filter.IsTop = &isTop
	}
	if raw := r.URL.Query().Get("isFeatured"); raw != "" {
		isFeatured := raw == "true"
		filter.IsFeatured = &isFeatured
	}

	page, err := s.articles.List(r.Context(), filter)
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondOK(w, page)
}

func (s *Server) handlePublishArticle(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		RespondError(w, err)
		return
	}
	if err := s.articles.Publish(r.Context(), auth.SecurityContextFrom(r.Context()), id); err != nil {
		RespondError(w, err)
		return
	}
	RespondOK(w, nil)
}

func (s *Server) handleOfflineArticle(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		RespondError(w, err)
		return
	}
	if err := s.articles.Offline(r.Context(), auth.SecurityContextFrom(r.Context()), id); err != nil {
		RespondError(w, err)
		return
	}
	RespondOK(w, nil)
}

func (s *Server) handleSetTop(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		RespondError(w, err)
		return
	}
	if err := s.articles.SetTop(r.Context(), id, boolQuery(r, "isTop")); err != nil {
		RespondError(w, err)
		return
	}
	RespondOK(w, nil)
}

func (s *Server) handleSetFeatured(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		RespondError(w, err)
		return
	}
	if err := s.articles.SetFeatured(r.Context(), id, boolQuery(r, "isFeatured")); err != nil {
		RespondError(w, err)
		return
	}
	RespondOK(w, nil)
}

func int64Query(r *http.Request, name string) *int64 {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil
	}
	return &value
}
