// Package middleware holds the HTTP middleware of the blog API: passive
// request authentication and the route-level authorization gate.
package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/quillpress/quillpress/internal/auth"
)

// BearerPrefix is the scheme prefix of the Authorization header.
const BearerPrefix = "Bearer "

// BearerToken extracts the raw token from an Authorization header value.
// The empty string means no usable bearer credential was presented.
func BearerToken(header string) string {
	if !strings.HasPrefix(header, BearerPrefix) {
		return ""
	}
	return strings.TrimPrefix(header, BearerPrefix)
}

// Authenticator attaches a principal to requests carrying a valid token.
// It never rejects a request: any failure along the way simply leaves the
// request anonymous, and the authorization gate decides what anonymous
// requests may do.
type Authenticator struct {
	tokens   *auth.TokenService
	resolver *auth.PrincipalResolver
	logger   *slog.Logger
}

// NewAuthenticator creates the passive authentication middleware.
func NewAuthenticator(tokens *auth.TokenService, resolver *auth.PrincipalResolver, logger *slog.Logger) *Authenticator {
	return &Authenticator{tokens: tokens, resolver: resolver, logger: logger}
}

// Handler implements the middleware.
func (a *Authenticator) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString := BearerToken(r.Header.Get("Authorization"))
		if tokenString == "" {
			next.ServeHTTP(w, r)
			return
		}

		claims, err := a.tokens.Parse(tokenString)
		if err != nil {
			// Expired and malformed tokens degrade to anonymous.
			a.logger.Debug("token rejected", "err", err)
			next.ServeHTTP(w, r)
			return
		}

		principal, err := a.resolver.ResolveByUsername(r.Context(), claims.Username)
		if err != nil {
			// Covers deleted accounts, locked accounts and store
			// failures alike. The authorization gate still blocks
			// protected routes for this request.
			a.logger.Error("principal resolution failed",
				"username", claims.Username, "err", err)
			next.ServeHTTP(w, r)
			return
		}

		ctx := auth.WithPrincipal(r.Context(), principal)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
