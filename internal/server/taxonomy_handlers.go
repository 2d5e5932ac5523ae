package server

import (
	"net/http"

	taxonomysvc "github.com/quillpress/quillpress/internal/services/taxonomy"
)

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := s.taxonomy.ListCategories(r.Context())
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondOK(w, categories)
}

func (s *Server) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	var in taxonomysvc.CategoryInput
	if err := decodeJSON(r, &in); err != nil {
		RespondError(w, err)
		return
	}
	category, err := s.taxonomy.CreateCategory(r.Context(), in)
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondOK(w, category)
}

func (s *Server) handleUpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		RespondError(w, err)
		return
	}
	var in taxonomysvc.CategoryInput
	if err := decodeJSON(r, &in); err != nil {
		RespondError(w, err)
		return
	}
	category, err := s.taxonomy.UpdateCategory(r.Context(), id, in)
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondOK(w, category)
}

func (s *Server) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		RespondError(w, err)
		return
	}
	if err := s.taxonomy.DeleteCategory(r.Context(), id); err != nil {
		RespondError(w, err)
		return
	}
	RespondOK(w, nil)
}

func (s *Server) handleListTags(w http.ResponseWriter, r *http.Request) {
	tags, err := s.taxonomy.ListTags(r.Context())
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondOK(w, tags)
}

func (s *Server) handleCreateTag(w http.ResponseWriter, r *http.Request) {
	var in taxonomysvc.TagInput
	if err := decodeJSON(r, &in); err != nil {
		RespondError(w, err)
		return
	}
	tag, err := s.taxonomy.CreateTag(r.Context(), in)
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondOK(w, tag)
}

func (s *Server) handleUpdateTag(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		RespondError(w, err)
		return
	}
	var in taxonomysvc.TagInput
	if err := decodeJSON(r, &in); err != nil {
		RespondError(w, err)
		return
	}
	tag, err := s.taxonomy.UpdateTag(r.Context(), id, in)
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondOK(w, tag)
}

func (s *Server) handleDeleteTag(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		RespondError(w, err)
		return
	}
	if err := s.taxonomy.DeleteTag(r.Context(), id); err != nil {
		RespondError(w, err)
		return
	}
	RespondOK(w, nil)
}
