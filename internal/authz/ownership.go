package authz

import (
	"github.com/quillpress/quillpress/internal/apperr"
	"github.com/quillpress/quillpress/internal/auth"
)

// RequireOwnerOrAdmin allows the action when the current principal owns the
// resource or is an administrator. Anonymous callers get 40001.
func RequireOwnerOrAdmin(sc auth.SecurityContext, ownerID int64) error {
	principal := sc.Current()
	if principal == nil {
		return apperr.Unauthenticated("no authenticated user")
	}
	if principal.UserID == ownerID || principal.IsAdmin() {
		return nil
	}
	return apperr.Forbidden("not the resource owner")
}
