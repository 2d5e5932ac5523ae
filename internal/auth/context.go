package auth

import (
	"context"

	"github.com/quillpress/quillpress/internal/apperr"
)

type contextKey struct{}

var principalKey contextKey

// WithPrincipal returns a context carrying the authenticated principal.
func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

// SecurityContext is a request-scoped view of the authentication state. It
// is a cheap value derived from the request context and safe to copy.
type SecurityContext struct {
	principal *Principal
}

// SecurityContextFrom builds the security context for the given request
// context. Requests that never passed authentication are anonymous.
func SecurityContextFrom(ctx context.Context) SecurityContext {
	p, _ := ctx.Value(principalKey).(*Principal)
	return SecurityContext{principal: p}
}

// Current returns the authenticated principal, or nil for anonymous
// requests.
func (sc SecurityContext) Current() *Principal {
	return sc.principal
}

// IsAuthenticated reports whether a principal is attached.
func (sc SecurityContext) IsAuthenticated() bool {
	return sc.principal != nil
}

// RequireUserID returns the current account ID, or an unauthenticated error
// when the request is anonymous.
func (sc SecurityContext) RequireUserID() (int64, error) {
	if sc.principal == nil {
		return 0, apperr.Unauthenticated("no authenticated user")
	}
	return sc.principal.UserID, nil
}

// RequireUsername returns the current username, or an unauthenticated error
// when the request is anonymous.
func (sc SecurityContext) RequireUsername() (string, error) {
	if sc.principal == nil {
		return "", apperr.Unauthenticated("no authenticated user")
	}
	return sc.principal.Username, nil
}

// HasRole reports whether the current principal carries the given role.
func (sc SecurityContext) HasRole(role Role) bool {
	return sc.principal != nil && sc.principal.Role == role
}

// HasAnyRole reports whether the current principal carries at least one of
// the given roles.
func (sc SecurityContext) HasAnyRole(roles ...Role) bool {
	if sc.principal == nil {
		return false
	}
	for _, role := range roles {
		if sc.principal.Role == role {
			return true
		}
	}
	return false
}

// IsAdmin reports whether the current principal is an administrator.
func (sc SecurityContext) IsAdmin() bool {
	return sc.principal.IsAdmin()
}

// Clear returns a context with any principal removed.
func Clear(ctx context.Context) context.Context {
	return context.WithValue(ctx, principalKey, (*Principal)(nil))
}
