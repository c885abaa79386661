package domain

import "time"

const (
	RoleAdministrator = "Administrator"
	RoleUser          = "User"
)

// ValidRole reports whether role is one of the known roles.
func ValidRole(role string) bool {
	return role == RoleAdministrator || role == RoleUser
}

// Security is a login credential, optionally linked to one User.
type Security struct {
	ID           int64     `json:"id"`
	Login        string    `json:"login"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name"`
	Role         string    `json:"role"`
	UserID       *int64    `json:"userId,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}
