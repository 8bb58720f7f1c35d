package domain

import "time"

// UserRole distinguishes ordinary employees from administrators.
type UserRole string

const (
	UserRoleEmployee UserRole = "employee"
	UserRoleAdmin    UserRole = "admin"
)

// User is the domain model for everyone who posts or receives recognition.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Department   string
	Role         UserRole
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsAdmin reports whether the user can perform moderation and directory actions.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == UserRoleAdmin
}
