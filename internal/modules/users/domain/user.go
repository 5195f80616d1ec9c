package domain

import "strings"

type Role string

const (
	RoleAdmin  Role = "admin"
	RoleSales  Role = "sales"
	RoleViewer Role = "viewer"
)

// ParseRole accepts a role case-insensitively. Empty defaults to viewer.
func ParseRole(raw string) (Role, bool) {
	switch Role(strings.ToLower(strings.TrimSpace(raw))) {
	case "", RoleViewer:
		return RoleViewer, true
	case RoleAdmin:
		return RoleAdmin, true
	case RoleSales:
		return RoleSales, true
	default:
		return "", false
	}
}

// User is an account managed by the users API.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// NewUser is the create payload.
type NewUser struct {
	Name  string `json:"name" validate:"required,max=120"`
	Email string `json:"email" validate:"required,email"`
	Role  Role   `json:"role,omitempty" validate:"omitempty,oneof=admin sales viewer"`
}

// Normalized trims the payload, lowercases the email and resolves the role.
func (u NewUser) Normalized() NewUser {
	u.Name = strings.TrimSpace(u.Name)
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	if role, ok := ParseRole(string(u.Role)); ok {
		u.Role = role
	}
	return u
}
