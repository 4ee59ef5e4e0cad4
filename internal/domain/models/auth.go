package models

import "github.com/golang-jwt/jwt/v5"

// Claims is the JWT claims structure issued and verified by this service.
// The subject claim carries the user ID; the role claim is informational
// only - the authentication middleware always re-reads the user record,
// so a stale role in a token never grants stale permissions.
type Claims struct {
	jwt.RegisteredClaims
	Role string `json:"role,omitempty"`
}

// UserID returns the user ID from the JWT subject claim.
func (c *Claims) UserID() string {
	return c.Subject
}
