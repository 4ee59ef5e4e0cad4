package services

import (
	"context"

	"projecthub/internal/authz"
	"projecthub/internal/domain/models"
)

// CreateProjectRequest creates a project. The lead is seeded into the
// team member list with role lead.
type CreateProjectRequest struct {
	Name          string `json:"name"`
	Description   string `json:"description"`
	Deadline      string `json:"deadline"` // RFC 3339 date or timestamp
	ProjectLeadID string `json:"project_lead_id"`
}

// UpdateProjectRequest updates project metadata and status. Nil fields
// are left unchanged.
type UpdateProjectRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Deadline    *string `json:"deadline"`
	Status      *string `json:"status"`
}

// ProjectService defines business logic operations for projects and
// team membership.
type ProjectService interface {
	// Create creates a new project with the lead seeded as a member.
	Create(ctx context.Context, principal authz.Principal, req *CreateProjectRequest) (*models.Project, error)

	// ListActive retrieves all active projects.
	ListActive(ctx context.Context, principal authz.Principal) ([]models.Project, error)

	// ListMine retrieves projects the principal leads, created, or
	// belongs to.
	ListMine(ctx context.Context, principal authz.Principal) ([]models.Project, error)

	// Get retrieves a single project; the principal must be a member,
	// the lead, or an admin.
	Get(ctx context.Context, principal authz.Principal, id string) (*models.Project, error)

	// Update mutates metadata/status; lead or admin only.
	Update(ctx context.Context, principal authz.Principal, id string, req *UpdateProjectRequest) (*models.Project, error)

	// AssignMember adds a user to the team as a developer. Assigning an
	// already-assigned user is rejected as a conflict.
	AssignMember(ctx context.Context, principal authz.Principal, projectID, userID string) (*models.Project, error)

	// RemoveMember removes a team member. The project lead is never
	// removable this way; reassign the lead via Update first.
	RemoveMember(ctx context.Context, principal authz.Principal, projectID, userID string) (*models.Project, error)
}
