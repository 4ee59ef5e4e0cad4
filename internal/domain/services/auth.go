package services

import (
	"context"

	"projecthub/internal/authz"
	"projecthub/internal/domain/models"
)

// LoginRequest carries credentials for authentication.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResult is a successful authentication: an issued token plus the
// authenticated user.
type LoginResult struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// RegisterRequest creates a new account. Only admins may register users.
type RegisterRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// UpdateProfileRequest updates the caller's own profile.
type UpdateProfileRequest struct {
	FullName string `json:"full_name"`
}

// UpdatePasswordRequest rotates the caller's own password.
type UpdatePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// AuthService defines authentication and self-service account operations.
type AuthService interface {
	// Login verifies credentials and issues a token. Inactive accounts
	// are rejected at this boundary.
	Login(ctx context.Context, req *LoginRequest) (*LoginResult, error)

	// Register creates a new user account on behalf of the principal.
	Register(ctx context.Context, principal authz.Principal, req *RegisterRequest) (*models.User, error)

	// Me returns the principal's own user record.
	Me(ctx context.Context, principal authz.Principal) (*models.User, error)

	// UpdateProfile updates the principal's own profile fields.
	UpdateProfile(ctx context.Context, principal authz.Principal, req *UpdateProfileRequest) (*models.User, error)

	// UpdatePassword rotates the principal's password after verifying
	// the current one.
	UpdatePassword(ctx context.Context, principal authz.Principal, req *UpdatePasswordRequest) error
}
