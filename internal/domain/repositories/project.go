package repositories

import (
	"context"

	"projecthub/internal/domain/models"
)

// ProjectRepository defines persistence operations for projects and
// their team membership.
type ProjectRepository interface {
	// Create inserts a new project row. Membership is seeded separately
	// via AddMember inside the same transaction.
	Create(ctx context.Context, project *models.Project) error

	// GetByID retrieves a project with its full member list, ordered by
	// assignment time.
	GetByID(ctx context.Context, id string) (*models.Project, error)

	// ListByStatus retrieves projects in the given status with their
	// member lists.
	ListByStatus(ctx context.Context, status models.ProjectStatus) ([]models.Project, error)

	// ListForUser retrieves projects the user leads, created, or belongs
	// to as a team member.
	ListForUser(ctx context.Context, userID string) ([]models.Project, error)

	// Update persists name, description, deadline, status and refreshes
	// updated_at.
	Update(ctx context.Context, project *models.Project) error

	// AddMember inserts a membership row. Returns a conflict error if
	// the user is already assigned to the project.
	AddMember(ctx context.Context, projectID, userID string, role models.MemberRole) error

	// RemoveMember deletes a membership row. Returns a not-found error
	// if the user is not assigned to the project.
	RemoveMember(ctx context.Context, projectID, userID string) error
}
