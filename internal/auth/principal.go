package auth

// Role is an account role as stored in the database.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// Authority returns the role in granted-authority form, e.g. "ROLE_ADMIN".
func (r Role) Authority() string {
	return "ROLE_" + string(r)
}

// ParseRole normalizes a stored role string. Unknown values fall back to
// RoleUser so a corrupted row can never grant elevated access.
func ParseRole(s string) Role {
	if s == string(RoleAdmin) {
		return RoleAdmin
	}
	return RoleUser
}

// Principal is the authenticated identity attached to a request. A nil
// Principal means the request is anonymous.
type Principal struct {
	UserID   int64
	Username string
	Role     Role
	Enabled  bool
}

// IsAdmin reports whether the principal carries the admin role.
func (p *Principal) IsAdmin() bool {
	return p != nil && p.Role == RoleAdmin
}
