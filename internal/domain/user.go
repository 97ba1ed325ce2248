package domain

import "time"

// User represents a registered community member.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Stored hashed, never serialized
	IsAdmin      bool      `json:"is_admin"`
	CreatedAt    time.Time `json:"created_at"`
}

// CanModerate reports whether the user may mutate a resource owned by
// ownerEmail. Admins may mutate anything; everyone else only their own.
func (u *User) CanModerate(ownerEmail string) bool {
	return u.IsAdmin || u.Email == ownerEmail
}
