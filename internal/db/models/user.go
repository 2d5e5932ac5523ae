package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Account status values. The original schema uses an integer flag.
const (
	StatusDisabled = 0
	StatusActive   = 1
)

// User represents a registered account. PasswordHash stores the bcrypt hash;
// it is never serialized into API responses.
type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID           int64      `bun:"id,pk,autoincrement" json:"id"`
	Username     string     `bun:"username,notnull,unique" json:"username"`
	PasswordHash string     `bun:"password_hash,notnull" json:"-"`
	Nickname     string     `bun:"nickname" json:"nickname"`
	Email        string     `bun:"email,notnull,unique" json:"email"`
	Avatar       string     `bun:"avatar" json:"avatar"`
	Role         string     `bun:"role,notnull,default:'USER'" json:"role"`
	Status       int        `bun:"status,notnull,default:1" json:"status"`
	LastLoginAt  *time.Time `bun:"last_login_at" json:"lastLoginAt"`
	LastLoginIP  string     `bun:"last_login_ip" json:"lastLoginIp"`
	CreatedAt    time.Time  `bun:"created_at,notnull,default:current_timestamp" json:"createdAt"`
	UpdatedAt    time.Time  `bun:"updated_at,notnull,default:current_timestamp" json:"updatedAt"`
}

// Enabled reports whether the account may authenticate.
func (u *User) Enabled() bool {
	return u != nil && u.Status == StatusActive
}
