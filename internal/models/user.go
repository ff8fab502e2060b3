package models

import "time"

type UserRole string

const (
	UserRoleBuyer  UserRole = "BUYER"
	UserRoleSeller UserRole = "SELLER"
	UserRoleAgent  UserRole = "AGENT"
	UserRoleAdmin  UserRole = "ADMIN"
)

// CanSell reports whether the role may own listings and receive leads.
func (r UserRole) CanSell() bool {
	return r == UserRoleSeller || r == UserRoleAgent || r == UserRoleAdmin
}

type User struct {
	ID        string
	Name      string
	Email     string
	Role      UserRole
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Caller is the authenticated identity resolved by the auth middleware before
// any scoped analytics or lead call.
type Caller struct {
	ID   string
	Role UserRole
}

func (c Caller) IsAdmin() bool {
	return c.Role == UserRoleAdmin
}
