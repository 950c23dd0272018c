package domain

import "time"

// Role enumerates staff and end-user roles.
type Role string

const (
	RoleAdmin        Role = "ADMIN"
	RoleSupportAgent Role = "SUPPORT_AGENT"
	RoleEndUser      Role = "END_USER"
)

// ActorType indicates which principal model performed a mutation.
type ActorType string

const (
	ActorTypeUser  ActorType = "User"
	ActorTypeAdmin ActorType = "Admin"
)

// User is the domain model for admins, support agents and ticket submitters.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsStaff reports whether the user may act on the admin surface.
func (u *User) IsStaff() bool {
	if u == nil {
		return false
	}
	return u.Role == RoleAdmin || u.Role == RoleSupportAgent
}
