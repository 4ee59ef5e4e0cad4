package services

import (
	"context"

	"projecthub/internal/authz"
	"projecthub/internal/domain/models"
)

// UpdateUserRequest is the admin surface for mutating another user's
// record. Nil fields are left unchanged.
type UpdateUserRequest struct {
	FullName *string `json:"full_name"`
	Role     *string `json:"role"`
	IsActive *bool   `json:"is_active"`
}

// UserService defines admin-facing user management operations.
type UserService interface {
	// List retrieves active users (for team assignment pickers).
	List(ctx context.Context, principal authz.Principal) ([]models.User, error)

	// Get retrieves a user by ID.
	Get(ctx context.Context, principal authz.Principal, id string) (*models.User, error)

	// Update mutates name, role, or active flag of another user.
	Update(ctx context.Context, principal authz.Principal, id string, req *UpdateUserRequest) (*models.User, error)

	// Deactivate marks a user inactive. Records are never destroyed.
	Deactivate(ctx context.Context, principal authz.Principal, id string) error
}
