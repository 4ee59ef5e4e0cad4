package service

import (
	"context"
	"log/slog"
	"strings"

	"projecthub/internal/authz"
	"projecthub/internal/config"
	"projecthub/internal/domain"
	"projecthub/internal/domain/models"
	"projecthub/internal/domain/repositories"
	svc "projecthub/internal/domain/services"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// userService implements the UserService interface
type userService struct {
	userRepo repositories.UserRepository
	logger   *slog.Logger
}

// NewUserService creates a new user service
func NewUserService(userRepo repositories.UserRepository, logger *slog.Logger) svc.UserService {
	return &userService{
		userRepo: userRepo,
		logger:   logger,
	}
}

// List retrieves active users
func (s *userService) List(ctx context.Context, principal authz.Principal) ([]models.User, error) {
	if err := authorize(principal, authz.ActionUserList, authz.Resource{}, "not authorized to list users"); err != nil {
		return nil, err
	}
	return s.userRepo.List(ctx, true)
}

// Get retrieves a user by ID
func (s *userService) Get(ctx context.Context, principal authz.Principal, id string) (*models.User, error) {
	if err := authorize(principal, authz.ActionUserRead, authz.Resource{}, "not authorized to view users"); err != nil {
		return nil, err
	}
	return s.userRepo.GetByID(ctx, id)
}

// Update mutates another user's name, role, or active flag
func (s *userService) Update(ctx context.Context, principal authz.Principal, id string, req *svc.UpdateUserRequest) (*models.User, error) {
	if err := authorize(principal, authz.ActionUserUpdate, authz.Resource{}, "not authorized to update users"); err != nil {
		return nil, err
	}

	if err := s.validateUpdateRequest(req); err != nil {
		return nil, &domain.ValidationError{Message: err.Error()}
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.FullName != nil {
		user.FullName = strings.TrimSpace(*req.FullName)
	}
	if req.Role != nil {
		user.Role = authz.Role(*req.Role)
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user updated",
		"user_id", user.ID,
		"role", user.Role,
		"is_active", user.IsActive,
		"updated_by", principal.ID,
	)

	return user, nil
}

// Deactivate marks a user inactive
func (s *userService) Deactivate(ctx context.Context, principal authz.Principal, id string) error {
	if err := authorize(principal, authz.ActionUserUpdate, authz.Resource{}, "not authorized to deactivate users"); err != nil {
		return err
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	user.IsActive = false

	if err := s.userRepo.Update(ctx, user); err != nil {
		return err
	}

	s.logger.Info("user deactivated", "user_id", user.ID, "deactivated_by", principal.ID)

	return nil
}

// validateUpdateRequest validates an admin user update
func (s *userService) validateUpdateRequest(req *svc.UpdateUserRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.FullName, validation.NilOrNotEmpty, validation.Length(1, config.MaxFullNameLength)),
		validation.Field(&req.Role, validation.By(func(value interface{}) error {
			role, _ := value.(*string)
			if role == nil {
				return nil
			}
			return validRole(*role)
		})),
	)
}
