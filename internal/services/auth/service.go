// Package auth implements account login and registration.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/quillpress/quillpress/internal/apperr"
	coreauth "github.com/quillpress/quillpress/internal/auth"
	"github.com/quillpress/quillpress/internal/db/models"
	"github.com/quillpress/quillpress/internal/repository"
)

// LoginResult is the payload returned after a successful login or
// registration.
type LoginResult struct {
	Token    string `json:"token"`
	UserID   int64  `json:"userId"`
	Username string `json:"username"`
	Nickname string `json:"nickname"`
	Avatar   string `json:"avatar"`
	Role     string `json:"role"`
}

// RegisterInput carries the fields of a registration request.
type RegisterInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Nickname string `json:"nickname"`
}

// Service handles authentication flows.
type Service struct {
	users  repository.UserRepository
	tokens *coreauth.TokenService
	logger *slog.Logger
}

// NewService creates the authentication service.
func NewService(users repository.UserRepository, tokens *coreauth.TokenService, logger *slog.Logger) *Service {
	return &Service{users: users, tokens: tokens, logger: logger}
}

// Login authenticates by username or email and issues an access token.
// clientIP is recorded as the last login address.
func (s *Service) Login(ctx context.Context, account, password, clientIP string) (*LoginResult, error) {
	if account == "" || password == "" {
		return nil, apperr.New(apperr.CodeParamMissing, "account and password are required")
	}

	user, err := s.users.GetByUsername(ctx, account)
	if errors.Is(err, repository.ErrNotFound) {
		user, err = s.users.GetByEmail(ctx, account)
	}
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.UserNotFound(account)
		}
		return nil, fmt.Errorf("look up account %q: %w", account, err)
	}

	if !coreauth.VerifyPassword(user.PasswordHash, password) {
		return nil, apperr.New(apperr.CodePasswordError, "wrong password")
	}
	if !user.Enabled() {
		return nil, apperr.AccountLocked(user.Username)
	}

	if err := s.users.UpdateLastLogin(ctx, user.ID, clientIP); err != nil {
		// Login still succeeds when the bookkeeping write fails.
		s.logger.Error("update last login failed", "userId", user.ID, "err", err)
	}

	return s.issueFor(user)
}

// Register creates a new account with the USER role and logs it in.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*LoginResult, error) {
	if in.Username == "" || in.Email == "" || in.Password == "" {
		return nil, apperr.New(apperr.CodeParamMissing, "username, email and password are required")
	}

	if err := s.ensureFree(ctx, in); err != nil {
		return nil, err
	}

	hash, err := coreauth.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("register %q: %w", in.Username, err)
	}

	nickname := in.Nickname
	if nickname == "" {
		nickname = in.Username
	}
	user := &models.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hash,
		Nickname:     nickname,
		Role:         string(coreauth.RoleUser),
		Status:       models.StatusActive,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create account %q: %w", in.Username, err)
	}

	return s.issueFor(user)
}

func (s *Service) ensureFree(ctx context.Context, in RegisterInput) error {
	if _, err := s.users.GetByUsername(ctx, in.Username); err == nil {
		return apperr.Newf(apperr.CodeAccountExists, "username %s is taken", in.Username)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("check username %q: %w", in.Username, err)
	}
	if _, err := s.users.GetByEmail(ctx, in.Email); err == nil {
		return apperr.Newf(apperr.CodeAccountExists, "email %s is taken", in.Email)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("check email %q: %w", in.Email, err)
	}
	return nil
}

func (s *Service) issueFor(user *models.User) (*LoginResult, error) {
	token, err := s.tokens.Issue(user.ID, user.Username, user.Role)
	if err != nil {
		return nil, fmt.Errorf("issue token for %q: %w", user.Username, err)
	}
	return &LoginResult{
		Token:    token,
		UserID:   user.ID,
		Username: user.Username,
		Nickname: user.Nickname,
		Avatar:   user.Avatar,
		Role:     user.Role,
	}, nil
}
