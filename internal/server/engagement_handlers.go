package server

import (
	"net/http"

	"github.com/quillpress/quillpress/internal/auth"
)

type commentRequest struct {
	Content  string `json:"content"`
	ParentID *int64 `json:"parentId"`
}

func (s *Server) handleListComments(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		RespondError(w, err)
		return
	}
	page, err := s.engagement.ListComments(r.Context(), id, intQuery(r, "page", 1), intQuery(r, "pageSize", 10))
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondOK(w, page)
}

func (s *Server) handleAddComment(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		RespondError(w, err)
		return
	}
	var req commentRequest
	if err := decodeJSON(r, &req); err != nil {
		RespondError(w, err)
		return
	}

	comment, err := s.engagement.AddComment(r.Context(), auth.SecurityContextFrom(r.Context()), id, req.ParentID, req.Content)
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondOK(w, comment)
}

func (s *Server) handleDeleteComment(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		RespondError(w, err)
		return
	}
	if err := s.engagement.DeleteComment(r.Context(), auth.SecurityContextFrom(r.Context()), id); err != nil {
		RespondError(w, err)
		return
	}
	RespondOK(w, nil)
}

func (s *Server) handleToggleLike(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		RespondError(w, err)
		return
	}
	liked, err := s.engagement.ToggleLike(r.Context(), auth.SecurityContextFrom(r.Context()), id)
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondOK(w, map[string]bool{"liked": liked})
}
