package models

import (
	"time"

	"projecthub/internal/authz"
)

// User is an account that can authenticate and act as a principal.
// PasswordHash and MFASecret are never serialized.
type User struct {
	ID           string     `json:"id" db:"id"`
	FullName     string     `json:"full_name" db:"full_name"`
	Email        string     `json:"email" db:"email"`
	PasswordHash string     `json:"-" db:"password_hash"`
	Role         authz.Role `json:"role" db:"role"`
	MFAEnabled   bool       `json:"mfa_enabled" db:"mfa_enabled"`
	MFASecret    *string    `json:"-" db:"mfa_secret"`
	IsActive     bool       `json:"is_active" db:"is_active"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" db:"updated_at"`
}

// Principal returns the authorization view of the user.
func (u *User) Principal() authz.Principal {
	return authz.Principal{
		ID:     u.ID,
		Role:   u.Role,
		Active: u.IsActive,
	}
}

// UserSummary is the trimmed user shape embedded in project and document
// responses (the fields the frontend shows next to assignments).
type UserSummary struct {
	ID       string     `json:"id"`
	FullName string     `json:"full_name"`
	Email    string     `json:"email"`
	Role     authz.Role `json:"role"`
}

// Summary returns the embeddable view of the user.
func (u *User) Summary() UserSummary {
	return UserSummary{
		ID:       u.ID,
		FullName: u.FullName,
		Email:    u.Email,
		Role:     u.Role,
	}
}
