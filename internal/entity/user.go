package entity

import "time"

type UserRole string

const (
	RoleUser      UserRole = "USER"
	RoleDeveloper UserRole = "DEVELOPER"
)

type User struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Role       UserRole  `json:"role"`
	IsVerified bool      `json:"is_verified"`
	CreatedAt  time.Time `json:"created_at"`
}

// CanPublish reports whether this user may submit projects. Only a verified
// developer qualifies; the two fields always flip together on upgrade.
func (u *User) CanPublish() bool {
	return u.Role == RoleDeveloper && u.IsVerified
}
