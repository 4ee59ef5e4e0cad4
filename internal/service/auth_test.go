package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"projecthub/internal/auth"
	"projecthub/internal/authz"
	"projecthub/internal/domain"
	"projecthub/internal/domain/models"
	svc "projecthub/internal/domain/services"
)

func seedAuthFixture(t *testing.T) (*fakeUserRepo, svc.AuthService) {
	t.Helper()
	users := newFakeUserRepo()

	issuer, err := auth.NewHMACTokenService("test-secret-do-not-use", time.Hour, testLogger())
	if err != nil {
		t.Fatalf("NewHMACTokenService: %v", err)
	}

	hash, err := auth.HashPassword("correct-horse")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}

	users.add(models.User{ID: "admin", FullName: "Ada Admin", Email: "ada@example.com", PasswordHash: hash, Role: authz.RoleAdmin, IsActive: true})
	users.add(models.User{ID: "dev", FullName: "Dev One", Email: "dev@example.com", PasswordHash: hash, Role: authz.RoleDeveloper, IsActive: true})
	users.add(models.User{ID: "ghost", FullName: "Gone Ghost", Email: "ghost@example.com", PasswordHash: hash, Role: authz.RoleDeveloper, IsActive: false})

	return users, NewAuthService(users, issuer, testLogger())
}

func TestLogin(t *testing.T) {
	_, service := seedAuthFixture(t)

	result, err := service.Login(context.Background(), &svc.LoginRequest{
		Email:    "ada@example.com",
		Password: "correct-horse",
	})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if result.Token == "" {
		t.Error("empty token on successful login")
	}
	if result.User.ID != "admin" {
		t.Errorf("User.ID = %q, want admin", result.User.ID)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	_, service := seedAuthFixture(t)

	_, err := service.Login(context.Background(), &svc.LoginRequest{
		Email:    "ada@example.com",
		Password: "wrong",
	})
	if !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("err = %v, want authentication error", err)
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	_, service := seedAuthFixture(t)

	_, err := service.Login(context.Background(), &svc.LoginRequest{
		Email:    "nobody@example.com",
		Password: "correct-horse",
	})
	// Unknown account and wrong password are indistinguishable.
	if !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("err = %v, want authentication error", err)
	}
}

func TestLoginInactiveAccount(t *testing.T) {
	_, service := seedAuthFixture(t)

	_, err := service.Login(context.Background(), &svc.LoginRequest{
		Email:    "ghost@example.com",
		Password: "correct-horse",
	})
	if !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("err = %v, want authentication error", err)
	}
}

func TestRegister(t *testing.T) {
	users, service := seedAuthFixture(t)
	admin := principalFor(t, users, "admin")

	user, err := service.Register(context.Background(), admin, &svc.RegisterRequest{
		FullName: "New Dev",
		Email:    "New.Dev@Example.com",
		Password: "long-enough-pw",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.Email != "new.dev@example.com" {
		t.Errorf("Email = %q, want lowercased", user.Email)
	}
	if user.Role != authz.RoleDeveloper {
		t.Errorf("Role = %q, want developer default", user.Role)
	}
	if !user.IsActive {
		t.Error("new account not active")
	}
	if user.PasswordHash == "long-enough-pw" {
		t.Error("password stored in the clear")
	}

	// The freshly registered user can log in.
	if _, err := service.Login(context.Background(), &svc.LoginRequest{
		Email:    "new.dev@example.com",
		Password: "long-enough-pw",
	}); err != nil {
		t.Errorf("Login after Register: %v", err)
	}
}

func TestRegisterDeniedForNonAdmin(t *testing.T) {
	users, service := seedAuthFixture(t)

	_, err := service.Register(context.Background(), principalFor(t, users, "dev"), &svc.RegisterRequest{
		FullName: "Sneaky",
		Email:    "sneaky@example.com",
		Password: "long-enough-pw",
	})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("err = %v, want forbidden", err)
	}
}

func TestRegisterValidation(t *testing.T) {
	users, service := seedAuthFixture(t)
	admin := principalFor(t, users, "admin")

	tests := []struct {
		name string
		req  svc.RegisterRequest
	}{
		{"missing email", svc.RegisterRequest{FullName: "X", Password: "long-enough-pw"}},
		{"bad email", svc.RegisterRequest{FullName: "X", Email: "not-an-email", Password: "long-enough-pw"}},
		{"short password", svc.RegisterRequest{FullName: "X", Email: "x@example.com", Password: "short"}},
		{"unknown role", svc.RegisterRequest{FullName: "X", Email: "x@example.com", Password: "long-enough-pw", Role: "superuser"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := service.Register(context.Background(), admin, &tt.req); !errors.Is(err, domain.ErrValidation) {
				t.Errorf("err = %v, want validation error", err)
			}
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	users, service := seedAuthFixture(t)

	_, err := service.Register(context.Background(), principalFor(t, users, "admin"), &svc.RegisterRequest{
		FullName: "Clone",
		Email:    "dev@example.com",
		Password: "long-enough-pw",
	})
	if !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("err = %v, want conflict", err)
	}
}

func TestUpdatePassword(t *testing.T) {
	users, service := seedAuthFixture(t)
	dev := principalFor(t, users, "dev")

	err := service.UpdatePassword(context.Background(), dev, &svc.UpdatePasswordRequest{
		CurrentPassword: "correct-horse",
		NewPassword:     "battery-staple",
	})
	if err != nil {
		t.Fatalf("UpdatePassword: %v", err)
	}

	if _, err := service.Login(context.Background(), &svc.LoginRequest{
		Email: "dev@example.com", Password: "battery-staple",
	}); err != nil {
		t.Errorf("Login with new password: %v", err)
	}
	if _, err := service.Login(context.Background(), &svc.LoginRequest{
		Email: "dev@example.com", Password: "correct-horse",
	}); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Errorf("old password still accepted: %v", err)
	}
}

func TestUpdatePasswordWrongCurrent(t *testing.T) {
	users, service := seedAuthFixture(t)

	err := service.UpdatePassword(context.Background(), principalFor(t, users, "dev"), &svc.UpdatePasswordRequest{
		CurrentPassword: "wrong",
		NewPassword:     "battery-staple",
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("err = %v, want validation error", err)
	}
}

func TestUpdateProfile(t *testing.T) {
	users, service := seedAuthFixture(t)

	user, err := service.UpdateProfile(context.Background(), principalFor(t, users, "dev"), &svc.UpdateProfileRequest{
		FullName: "  Dev Renamed  ",
	})
	if err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if user.FullName != "Dev Renamed" {
		t.Errorf("FullName = %q, want trimmed rename", user.FullName)
	}
}
