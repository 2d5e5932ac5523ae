package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/quillpress/quillpress/internal/apperr"
	"github.com/quillpress/quillpress/internal/db/models"
	"github.com/quillpress/quillpress/internal/repository"
)

// PrincipalResolver loads account details for a verified token identity.
type PrincipalResolver struct {
	users repository.UserRepository
}

// NewPrincipalResolver creates a resolver backed by the user store.
func NewPrincipalResolver(users repository.UserRepository) *PrincipalResolver {
	return &PrincipalResolver{users: users}
}

// ResolveByUsername loads the principal for a username. A missing account
// yields a user-not-found error; a disabled account yields account-locked.
func (r *PrincipalResolver) ResolveByUsername(ctx context.Context, username string) (*Principal, error) {
	user, err := r.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.UserNotFound(username)
		}
		return nil, fmt.Errorf("resolve principal %q: %w", username, err)
	}
	return r.toPrincipal(user)
}

// ResolveByID loads the principal for an account ID.
func (r *PrincipalResolver) ResolveByID(ctx context.Context, id int64) (*Principal, error) {
	user, err := r.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.UserNotFound(fmt.Sprintf("id %d", id))
		}
		return nil, fmt.Errorf("resolve principal %d: %w", id, err)
	}
	return r.toPrincipal(user)
}

func (r *PrincipalResolver) toPrincipal(user *models.User) (*Principal, error) {
	if !user.Enabled() {
		return nil, apperr.AccountLocked(user.Username)
	}
	return &Principal{
		UserID:   user.ID,
		Username: user.Username,
		Role:     ParseRole(user.Role),
		Enabled:  true,
	}, nil
}
