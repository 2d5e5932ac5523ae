// Package authz decides whether a request may reach its handler. Route
// access levels live in a static table enforced through casbin; resource
// ownership checks are made by services after loading the resource.
package authz

import (
	"fmt"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"

	"github.com/quillpress/quillpress/internal/apperr"
	"github.com/quillpress/quillpress/internal/auth"
)

// AccessLevel is the minimum privilege required for a route.
type AccessLevel int

const (
	// Public routes are reachable without credentials.
	Public AccessLevel = iota
	// AdminOnly routes require the admin role.
	AdminOnly
)

// RoutePolicy binds an HTTP method and chi-style path pattern to an access
// level. Routes absent from the table require authentication.
type RoutePolicy struct {
	Method  string
	Pattern string
	Level   AccessLevel
}

// AnonymousAuthority is the granted authority of unauthenticated requests.
const AnonymousAuthority = "ROLE_ANONYMOUS"

// casbin model: subjects are granted authorities, objects are request
// paths matched with keyMatch2, actions are HTTP methods.
const modelText = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && keyMatch2(r.obj, p.obj) && r.act == p.act
`

// DefaultRoutes is the route policy table of the blog API.
var DefaultRoutes = []RoutePolicy{
	{"POST", "/auth/login", Public},
	{"POST", "/auth/register", Public},
	{"GET", "/articles", Public},
	{"GET", "/articles/:id", Public},
	{"GET", "/articles/:id/comments", Public},
	{"GET", "/categories", Public},
	{"GET", "/tags", Public},
	{"GET", "/healthz", Public},

	{"PUT", "/articles/:id/top", AdminOnly},
	{"PUT", "/articles/:id/featured", AdminOnly},
	{"POST", "/categories", AdminOnly},
	{"PUT", "/categories/:id", AdminOnly},
	{"DELETE", "/categories/:id", AdminOnly},
	{"POST", "/tags", AdminOnly},
	{"PUT", "/tags/:id", AdminOnly},
	{"DELETE", "/tags/:id", AdminOnly},
}

// Policy evaluates route access for incoming requests.
type Policy struct {
	enforcer *casbin.Enforcer
}

// NewPolicy builds a policy from the given route table.
func NewPolicy(routes []RoutePolicy) (*Policy, error) {
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, fmt.Errorf("parse authz model: %w", err)
	}
	enforcer, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("create enforcer: %w", err)
	}

	// Role inheritance: admins can do everything users can, users can do
	// everything anonymous visitors can.
	if _, err := enforcer.AddGroupingPolicy(auth.RoleUser.Authority(), AnonymousAuthority); err != nil {
		return nil, fmt.Errorf("add role inheritance: %w", err)
	}
	if _, err := enforcer.AddGroupingPolicy(auth.RoleAdmin.Authority(), auth.RoleUser.Authority()); err != nil {
		return nil, fmt.Errorf("add role inheritance: %w", err)
	}

	for _, route := range routes {
		subject := AnonymousAuthority
		if route.Level == AdminOnly {
			subject = auth.RoleAdmin.Authority()
		}
		if _, err := enforcer.AddPolicy(subject, route.Pattern, route.Method); err != nil {
			return nil, fmt.Errorf("add route policy %s %s: %w", route.Method, route.Pattern, err)
		}
	}

	return &Policy{enforcer: enforcer}, nil
}

// Check decides whether the request may proceed. Public routes always pass.
// Anonymous requests to non-public routes fail with 40001, authenticated
// requests without the required role with 40003. Routes absent from the
// table pass for any authenticated principal.
func (p *Policy) Check(sc auth.SecurityContext, method, path string) error {
	public, err := p.enforcer.Enforce(AnonymousAuthority, path, method)
	if err != nil {
		return fmt.Errorf("enforce route policy: %w", err)
	}
	if public {
		return nil
	}

	principal := sc.Current()
	if principal == nil {
		return apperr.Unauthenticated(fmt.Sprintf("%s %s requires authentication", method, path))
	}

	allowed, err := p.enforcer.Enforce(principal.Role.Authority(), path, method)
	if err != nil {
		return fmt.Errorf("enforce route policy: %w", err)
	}
	if allowed {
		return nil
	}

	// If even the admin role has no rule for this route it is simply
	// unlisted, and unlisted routes only require authentication.
	restricted, err := p.enforcer.Enforce(auth.RoleAdmin.Authority(), path, method)
	if err != nil {
		return fmt.Errorf("enforce route policy: %w", err)
	}
	if !restricted {
		return nil
	}
	return apperr.Forbidden(fmt.Sprintf("%s %s requires a higher role", method, path))
}
