package domain

import "time"

type Role string

const (
	RoleAdmin   Role = "admin"
	RoleStaff   Role = "staff"
	RoleManager Role = "manager"
)

func IsValidRole(role Role) bool {
	switch role {
	case RoleAdmin, RoleStaff, RoleManager:
		return true
	default:
		return false
	}
}

type User struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	Email           string     `json:"email"`
	Role            Role       `json:"role"`
	IsAuthenticated bool       `json:"isAuthenticated"`
	LastLogin       *time.Time `json:"lastLogin,omitempty"`
}

// UserPatch is a partial profile update; nil fields are left unchanged.
type UserPatch struct {
	Name      *string    `json:"name,omitempty"`
	Email     *string    `json:"email,omitempty"`
	Role      *Role      `json:"role,omitempty"`
	LastLogin *time.Time `json:"lastLogin,omitempty"`
}

func (p UserPatch) Apply(u User) User {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.Role != nil {
		u.Role = *p.Role
	}
	if p.LastLogin != nil {
		t := *p.LastLogin
		u.LastLogin = &t
	}
	return u
}

func (p UserPatch) Validate() error {
	if p.Name != nil && *p.Name == "" {
		return fmtInvalid("user name cannot be empty")
	}
	if p.Email != nil && *p.Email == "" {
		return fmtInvalid("user email cannot be empty")
	}
	if p.Role != nil && !IsValidRole(*p.Role) {
		return fmtInvalid("invalid role '%s'", *p.Role)
	}
	return nil
}
