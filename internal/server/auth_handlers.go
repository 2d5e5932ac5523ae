package server

import (
	"net/http"

	authsvc "github.com/quillpress/quillpress/internal/services/auth"
)

type loginRequest struct {
	Account  string `json:"account"`
	Username string `json:"username"`
	Password string `json:"password"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		RespondError(w, err)
		return
	}

	account := req.Account
	if account == "" {
		account = req.Username
	}
	result, err := s.auth.Login(r.Context(), account, req.Password, clientIP(r))
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondOK(w, result)
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req authsvc.RegisterInput
	if err := decodeJSON(r, &req); err != nil {
		RespondError(w, err)
		return
	}

	result, err := s.auth.Register(r.Context(), req)
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondOK(w, result)
}
