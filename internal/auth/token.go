package auth

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"projecthub/internal/domain"
	"projecthub/internal/domain/models"

	"github.com/golang-jwt/jwt/v5"
)

// HMACTokenService issues and verifies HS256 tokens signed with a local
// secret. It implements both TokenIssuer and TokenVerifier.
type HMACTokenService struct {
	secret   []byte
	lifetime time.Duration
	logger   *slog.Logger
}

// NewHMACTokenService creates a token service backed by a shared secret.
func NewHMACTokenService(secret string, lifetime time.Duration, logger *slog.Logger) (*HMACTokenService, error) {
	if secret == "" {
		return nil, errors.New("JWT secret cannot be empty")
	}

	return &HMACTokenService{
		secret:   []byte(secret),
		lifetime: lifetime,
		logger:   logger,
	}, nil
}

// IssueToken creates a signed token carrying the user ID as subject.
func (s *HMACTokenService) IssueToken(user *models.User) (string, error) {
	now := time.Now()
	claims := &models.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.lifetime)),
		},
		Role: string(user.Role),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return signed, nil
}

// VerifyToken validates a token against the local secret.
func (s *HMACTokenService) VerifyToken(tokenString string) (*models.Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.Claims{}, func(t *jwt.Token) (interface{}, error) {
		// Prevent algorithm confusion attacks - only the issuing
		// algorithm is accepted
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, fmt.Errorf("unexpected signing method: %s", t.Method.Alg())
		}
		return s.secret, nil
	})
	if err != nil {
		s.logger.Debug("token parse failed", "error", err.Error())
		return nil, &domain.AuthenticationError{Message: "invalid or expired token"}
	}

	if !token.Valid {
		return nil, &domain.AuthenticationError{Message: "invalid token"}
	}

	claims, ok := token.Claims.(*models.Claims)
	if !ok {
		return nil, &domain.AuthenticationError{Message: "invalid token claims"}
	}

	if claims.Subject == "" {
		s.logger.Debug("token missing subject claim")
		return nil, &domain.AuthenticationError{Message: "invalid token claims"}
	}

	return claims, nil
}

// Close is a no-op; the HMAC service holds no external resources.
func (s *HMACTokenService) Close() error {
	return nil
}
