package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"projecthub/internal/auth"
	"projecthub/internal/authz"
	"projecthub/internal/config"
	"projecthub/internal/domain"
	"projecthub/internal/domain/models"
	"projecthub/internal/domain/repositories"
	svc "projecthub/internal/domain/services"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// authService implements the AuthService interface
type authService struct {
	userRepo repositories.UserRepository
	issuer   auth.TokenIssuer
	logger   *slog.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo repositories.UserRepository,
	issuer auth.TokenIssuer,
	logger *slog.Logger,
) svc.AuthService {
	return &authService{
		userRepo: userRepo,
		issuer:   issuer,
		logger:   logger,
	}
}

// Login verifies credentials and issues a token
func (s *authService) Login(ctx context.Context, req *svc.LoginRequest) (*svc.LoginResult, error) {
	if err := validation.ValidateStruct(req,
		validation.Field(&req.Email, validation.Required, is.EmailFormat),
		validation.Field(&req.Password, validation.Required),
	); err != nil {
		return nil, &domain.ValidationError{Message: err.Error()}
	}

	user, err := s.userRepo.GetByEmail(ctx, strings.ToLower(req.Email))
	if err != nil {
		// A missing account and a bad password answer the same way
		return nil, &domain.AuthenticationError{Message: "invalid credentials"}
	}

	if !user.IsActive {
		return nil, &domain.AuthenticationError{Message: "user account is inactive"}
	}

	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		s.logger.Debug("password mismatch", "user_id", user.ID)
		return nil, &domain.AuthenticationError{Message: "invalid credentials"}
	}

	token, err := s.issuer.IssueToken(user)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	s.logger.Info("user logged in", "user_id", user.ID, "role", user.Role)

	return &svc.LoginResult{Token: token, User: user}, nil
}

// Register creates a new user account on behalf of an admin
func (s *authService) Register(ctx context.Context, principal authz.Principal, req *svc.RegisterRequest) (*models.User, error) {
	if err := authorize(principal, authz.ActionUserCreate, authz.Resource{}, "not authorized to register users"); err != nil {
		return nil, err
	}

	if err := s.validateRegisterRequest(req); err != nil {
		return nil, &domain.ValidationError{Message: err.Error()}
	}

	role := authz.Role(req.Role)
	if req.Role == "" {
		role = authz.RoleDeveloper
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		FullName:     strings.TrimSpace(req.FullName),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: hash,
		Role:         role,
		IsActive:     true,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user registered",
		"user_id", user.ID,
		"role", user.Role,
		"registered_by", principal.ID,
	)

	return user, nil
}

// Me returns the principal's own user record
func (s *authService) Me(ctx context.Context, principal authz.Principal) (*models.User, error) {
	return s.userRepo.GetByID(ctx, principal.ID)
}

// UpdateProfile updates the principal's own profile fields
func (s *authService) UpdateProfile(ctx context.Context, principal authz.Principal, req *svc.UpdateProfileRequest) (*models.User, error) {
	if err := authorize(principal, authz.ActionUserUpdateSelf,
		authz.Resource{User: &authz.UserRef{ID: principal.ID}},
		"not authorized to update this profile"); err != nil {
		return nil, err
	}

	if err := validation.ValidateStruct(req,
		validation.Field(&req.FullName, validation.Required, validation.Length(1, config.MaxFullNameLength)),
	); err != nil {
		return nil, &domain.ValidationError{Message: err.Error()}
	}

	user, err := s.userRepo.GetByID(ctx, principal.ID)
	if err != nil {
		return nil, err
	}

	user.FullName = strings.TrimSpace(req.FullName)

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("profile updated", "user_id", user.ID)

	return user, nil
}

// UpdatePassword rotates the principal's password
func (s *authService) UpdatePassword(ctx context.Context, principal authz.Principal, req *svc.UpdatePasswordRequest) error {
	if err := authorize(principal, authz.ActionUserUpdateSelf,
		authz.Resource{User: &authz.UserRef{ID: principal.ID}},
		"not authorized to update this password"); err != nil {
		return err
	}

	if err := validation.ValidateStruct(req,
		validation.Field(&req.CurrentPassword, validation.Required),
		validation.Field(&req.NewPassword, validation.Required, validation.Length(config.MinPasswordLength, 0)),
	); err != nil {
		return &domain.ValidationError{Message: err.Error()}
	}

	user, err := s.userRepo.GetByID(ctx, principal.ID)
	if err != nil {
		return err
	}

	if !auth.CheckPassword(user.PasswordHash, req.CurrentPassword) {
		return &domain.ValidationError{Message: "current password is incorrect"}
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return err
	}
	user.PasswordHash = hash

	if err := s.userRepo.Update(ctx, user); err != nil {
		return err
	}

	s.logger.Info("password updated", "user_id", user.ID)

	return nil
}

// validateRegisterRequest validates a registration request
func (s *authService) validateRegisterRequest(req *svc.RegisterRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.FullName, validation.Required, validation.Length(1, config.MaxFullNameLength)),
		validation.Field(&req.Email, validation.Required, is.EmailFormat),
		validation.Field(&req.Password, validation.Required, validation.Length(config.MinPasswordLength, 0)),
		validation.Field(&req.Role, validation.By(validRole)),
	)
}

// validRole accepts an empty role (defaulted to developer) or a known one.
func validRole(value interface{}) error {
	role, _ := value.(string)
	if role == "" {
		return nil
	}
	if !authz.Role(role).Valid() {
		return fmt.Errorf("must be one of admin, project-lead, developer")
	}
	return nil
}
