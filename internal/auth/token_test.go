package auth

import (
	"errors"
	"log/slog"
	"testing"
	"time"

	"projecthub/internal/authz"
	"projecthub/internal/domain"
	"projecthub/internal/domain/models"
)

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestHMACTokenRoundtrip(t *testing.T) {
	svc, err := NewHMACTokenService("test-secret", time.Hour, testLogger())
	if err != nil {
		t.Fatalf("NewHMACTokenService: %v", err)
	}

	user := &models.User{ID: "u1", Role: authz.RoleProjectLead}
	token, err := svc.IssueToken(user)
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}

	claims, err := svc.VerifyToken(token)
	if err != nil {
		t.Fatalf("VerifyToken: %v", err)
	}
	if claims.UserID() != "u1" {
		t.Errorf("UserID = %q, want %q", claims.UserID(), "u1")
	}
	if claims.Role != string(authz.RoleProjectLead) {
		t.Errorf("Role = %q, want %q", claims.Role, authz.RoleProjectLead)
	}
}

func TestHMACTokenExpired(t *testing.T) {
	svc, err := NewHMACTokenService("test-secret", -time.Minute, testLogger())
	if err != nil {
		t.Fatalf("NewHMACTokenService: %v", err)
	}

	token, err := svc.IssueToken(&models.User{ID: "u1", Role: authz.RoleDeveloper})
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}

	if _, err := svc.VerifyToken(token); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Errorf("expected authentication error for expired token, got %v", err)
	}
}

func TestHMACTokenWrongSecret(t *testing.T) {
	issuer, _ := NewHMACTokenService("secret-a", time.Hour, testLogger())
	verifier, _ := NewHMACTokenService("secret-b", time.Hour, testLogger())

	token, err := issuer.IssueToken(&models.User{ID: "u1", Role: authz.RoleDeveloper})
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}

	if _, err := verifier.VerifyToken(token); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Errorf("expected authentication error for wrong secret, got %v", err)
	}
}

func TestHMACTokenGarbage(t *testing.T) {
	svc, _ := NewHMACTokenService("test-secret", time.Hour, testLogger())

	for _, token := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := svc.VerifyToken(token); !errors.Is(err, domain.ErrUnauthenticated) {
			t.Errorf("VerifyToken(%q): expected authentication error, got %v", token, err)
		}
	}
}

func TestNewHMACTokenServiceRequiresSecret(t *testing.T) {
	if _, err := NewHMACTokenService("", time.Hour, testLogger()); err == nil {
		t.Error("expected error for empty secret")
	}
}

func TestPasswordHashRoundtrip(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if !CheckPassword(hash, "correct horse battery staple") {
		t.Error("correct password rejected")
	}
	if CheckPassword(hash, "wrong password") {
		t.Error("wrong password accepted")
	}
}
