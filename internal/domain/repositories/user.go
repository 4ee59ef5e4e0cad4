package repositories

import (
	"context"

	"projecthub/internal/domain/models"
)

// UserRepository defines persistence operations for user records.
type UserRepository interface {
	// Create inserts a new user. Returns a conflict error if the email
	// is already registered.
	Create(ctx context.Context, user *models.User) error

	// GetByID retrieves a user by ID.
	GetByID(ctx context.Context, id string) (*models.User, error)

	// GetByEmail retrieves a user by email, including the password hash
	// for credential verification.
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	// List retrieves users ordered by creation time. When activeOnly is
	// set, only active accounts are returned.
	List(ctx context.Context, activeOnly bool) ([]models.User, error)

	// Update persists mutable fields (name, role, active flag, password
	// hash, MFA fields) and refreshes updated_at.
	Update(ctx context.Context, user *models.User) error
}
