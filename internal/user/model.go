package user

import "time"

// Roles a user can sign up with. Fabricated logins get "both".
const (
	RoleCreator = "creator"
	RoleClient  = "client"
	RoleBoth    = "both"
)

type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Avatar       string    `json:"avatar"`
	Role         string    `json:"role"` // creator|client|both
	PasswordHash string    `json:"passwordHash,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ValidRole reports whether r is one of the three signup roles.
func ValidRole(r string) bool {
	return r == RoleCreator || r == RoleClient || r == RoleBoth
}

// CanList reports whether the user may publish portfolios and services.
func (u User) CanList() bool {
	return u.Role == RoleCreator || u.Role == RoleBoth
}

// Public strips fields that never leave the process in responses.
func (u User) Public() User {
	u.PasswordHash = ""
	return u
}
