package auth

import "projecthub/internal/domain/models"

// TokenVerifier defines the interface for bearer token verification.
// This abstraction allows the middleware to stay agnostic of whether
// tokens are issued locally (HMAC) or by an external IdP (JWKS).
type TokenVerifier interface {
	// VerifyToken validates a token string and returns the parsed claims.
	// Returns an error if the token is invalid, expired, or has an
	// invalid signature.
	VerifyToken(tokenString string) (*models.Claims, error)

	// Close releases any resources held by the verifier (e.g., HTTP
	// connections for JWKS refresh).
	Close() error
}

// TokenIssuer defines the interface for issuing bearer tokens to
// authenticated users.
type TokenIssuer interface {
	// IssueToken creates a signed token for the user.
	IssueToken(user *models.User) (string, error)
}
