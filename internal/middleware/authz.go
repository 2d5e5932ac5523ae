package middleware

import (
	"net/http"

	"github.com/quillpress/quillpress/internal/auth"
	"github.com/quillpress/quillpress/internal/authz"
)

// FailureHandler renders an authorization failure to the client.
type FailureHandler func(w http.ResponseWriter, r *http.Request, err error)

// AuthorizationGate enforces the route policy table before handlers run.
// Rendering of the two failure modes is delegated so the transport layer
// owns the response envelope.
type AuthorizationGate struct {
	policy    *authz.Policy
	onFailure FailureHandler
}

// NewAuthorizationGate creates the route-level authorization middleware.
func NewAuthorizationGate(policy *authz.Policy, onFailure FailureHandler) *AuthorizationGate {
	return &AuthorizationGate{policy: policy, onFailure: onFailure}
}

// Handler implements the middleware.
func (g *AuthorizationGate) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sc := auth.SecurityContextFrom(r.Context())
		if err := g.policy.Check(sc, r.Method, r.URL.Path); err != nil {
			g.onFailure(w, r, err)
			return
		}
		next.ServeHTTP(w, r)
	})
}
