package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"projecthub/internal/authz"
	"projecthub/internal/config"
	"projecthub/internal/domain"
	"projecthub/internal/domain/models"
	"projecthub/internal/domain/repositories"
	svc "projecthub/internal/domain/services"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// projectService implements the ProjectService interface
type projectService struct {
	projectRepo repositories.ProjectRepository
	userRepo    repositories.UserRepository
	txManager   repositories.TransactionManager
	logger      *slog.Logger
}

// NewProjectService creates a new project service
func NewProjectService(
	projectRepo repositories.ProjectRepository,
	userRepo repositories.UserRepository,
	txManager repositories.TransactionManager,
	logger *slog.Logger,
) svc.ProjectService {
	return &projectService{
		projectRepo: projectRepo,
		userRepo:    userRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

// Create creates a new project with the lead seeded as a team member
func (s *projectService) Create(ctx context.Context, principal authz.Principal, req *svc.CreateProjectRequest) (*models.Project, error) {
	if err := authorize(principal, authz.ActionProjectCreate, authz.Resource{}, "not authorized to create projects"); err != nil {
		return nil, err
	}

	if err := s.validateCreateRequest(req); err != nil {
		return nil, &domain.ValidationError{Message: err.Error()}
	}

	deadline, err := parseDeadline(req.Deadline)
	if err != nil {
		return nil, &domain.ValidationError{Message: err.Error()}
	}

	leadID := req.ProjectLeadID
	if leadID == "" {
		leadID = principal.ID
	}

	lead, err := s.userRepo.GetByID(ctx, leadID)
	if err != nil {
		return nil, err
	}
	if !lead.IsActive {
		return nil, &domain.ValidationError{Message: "project lead account is inactive"}
	}

	project := &models.Project{
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
		Deadline:    deadline,
		Status:      models.ProjectStatusActive,
		CreatedBy:   principal.ID,
		ProjectLead: lead.ID,
	}

	// Project row and the seeded lead membership land together or not
	// at all.
	err = s.txManager.ExecTx(ctx, func(ctx context.Context) error {
		if err := s.projectRepo.Create(ctx, project); err != nil {
			return err
		}
		return s.projectRepo.AddMember(ctx, project.ID, lead.ID, models.MemberRoleLead)
	})
	if err != nil {
		return nil, err
	}

	created, err := s.projectRepo.GetByID(ctx, project.ID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("project created",
		"project_id", created.ID,
		"name", created.Name,
		"lead_id", created.ProjectLead,
		"created_by", principal.ID,
	)

	return created, nil
}

// ListActive retrieves all active projects
func (s *projectService) ListActive(ctx context.Context, principal authz.Principal) ([]models.Project, error) {
	if !principal.Active {
		return nil, &domain.AuthorizationError{
			Message: "account is inactive",
			Reason:  string(authz.ReasonInactiveAccount),
		}
	}
	return s.projectRepo.ListByStatus(ctx, models.ProjectStatusActive)
}

// ListMine retrieves projects the principal leads, created, or belongs to
func (s *projectService) ListMine(ctx context.Context, principal authz.Principal) ([]models.Project, error) {
	if !principal.Active {
		return nil, &domain.AuthorizationError{
			Message: "account is inactive",
			Reason:  string(authz.ReasonInactiveAccount),
		}
	}
	return s.projectRepo.ListForUser(ctx, principal.ID)
}

// Get retrieves a single project the principal is allowed to see
func (s *projectService) Get(ctx context.Context, principal authz.Principal, id string) (*models.Project, error) {
	project, err := s.projectRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := authorize(principal, authz.ActionProjectRead,
		authz.Resource{Project: project.Ref()},
		"not authorized to view this project"); err != nil {
		return nil, err
	}

	return project, nil
}

// Update mutates project metadata and status
func (s *projectService) Update(ctx context.Context, principal authz.Principal, id string, req *svc.UpdateProjectRequest) (*models.Project, error) {
	project, err := s.projectRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := authorize(principal, authz.ActionProjectUpdate,
		authz.Resource{Project: project.Ref()},
		"not authorized to update this project"); err != nil {
		return nil, err
	}

	if err := s.validateUpdateRequest(req); err != nil {
		return nil, &domain.ValidationError{Message: err.Error()}
	}

	if req.Name != nil {
		project.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		project.Description = strings.TrimSpace(*req.Description)
	}
	if req.Deadline != nil {
		deadline, err := parseDeadline(*req.Deadline)
		if err != nil {
			return nil, &domain.ValidationError{Message: err.Error()}
		}
		project.Deadline = deadline
	}
	if req.Status != nil {
		project.Status = models.ProjectStatus(*req.Status)
	}

	if err := s.projectRepo.Update(ctx, project); err != nil {
		return nil, err
	}

	s.logger.Info("project updated",
		"project_id", project.ID,
		"status", project.Status,
		"updated_by", principal.ID,
	)

	return project, nil
}

// AssignMember adds a user to the project team as a developer
func (s *projectService) AssignMember(ctx context.Context, principal authz.Principal, projectID, userID string) (*models.Project, error) {
	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	if err := authorize(principal, authz.ActionProjectAssignMember,
		authz.Resource{Project: project.Ref()},
		"not authorized to assign members to this project"); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, &domain.ValidationError{Message: "cannot assign an inactive user"}
	}

	if err := s.projectRepo.AddMember(ctx, projectID, userID, models.MemberRoleDeveloper); err != nil {
		return nil, err
	}

	s.logger.Info("member assigned",
		"project_id", projectID,
		"user_id", userID,
		"assigned_by", principal.ID,
	)

	return s.projectRepo.GetByID(ctx, projectID)
}

// RemoveMember removes a team member. The lead is never removable here.
func (s *projectService) RemoveMember(ctx context.Context, principal authz.Principal, projectID, userID string) (*models.Project, error) {
	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	if err := authorize(principal, authz.ActionProjectRemoveMember,
		authz.Resource{Project: project.Ref()},
		"not authorized to remove members from this project"); err != nil {
		return nil, err
	}

	if userID == project.ProjectLead {
		return nil, &domain.ValidationError{Message: "the project lead cannot be removed; reassign the lead first"}
	}

	if err := s.projectRepo.RemoveMember(ctx, projectID, userID); err != nil {
		return nil, err
	}

	s.logger.Info("member removed",
		"project_id", projectID,
		"user_id", userID,
		"removed_by", principal.ID,
	)

	return s.projectRepo.GetByID(ctx, projectID)
}

// validateCreateRequest validates a project creation request
func (s *projectService) validateCreateRequest(req *svc.CreateProjectRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, config.MaxProjectNameLength)),
		validation.Field(&req.Description, validation.Length(0, config.MaxDescriptionLength)),
		validation.Field(&req.Deadline, validation.Required),
	)
}

// validateUpdateRequest validates a project update request
func (s *projectService) validateUpdateRequest(req *svc.UpdateProjectRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Name, validation.NilOrNotEmpty, validation.Length(1, config.MaxProjectNameLength)),
		validation.Field(&req.Description, validation.Length(0, config.MaxDescriptionLength)),
		validation.Field(&req.Status, validation.By(func(value interface{}) error {
			status, _ := value.(*string)
			if status == nil {
				return nil
			}
			if !models.ProjectStatus(*status).Valid() {
				return fmt.Errorf("must be one of active, on-hold, completed")
			}
			return nil
		})),
	)
}

// parseDeadline accepts an RFC 3339 timestamp or a bare date.
func parseDeadline(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("deadline must be an RFC 3339 timestamp or YYYY-MM-DD date")
	}
	return t, nil
}
