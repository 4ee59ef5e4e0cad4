package domain

import (
	"errors"
	"net/http"
)

// HTTPError defines errors that can be mapped to HTTP status codes.
// Implementing this interface enables extensible error handling in the
// handler layer without per-type switches.
type HTTPError interface {
	error
	StatusCode() int
}

// Domain error types implementing HTTPError interface
type (
	// ValidationError indicates missing or malformed input
	ValidationError struct {
		Message string
	}

	// AuthenticationError indicates a missing, invalid, or expired
	// credential, or an inactive account at the authentication boundary
	AuthenticationError struct {
		Message string
	}

	// AuthorizationError indicates an authenticated but not permitted
	// request. Reason carries the access-control deny reason code.
	AuthorizationError struct {
		Message string
		Reason  string
	}

	// NotFoundError indicates a referenced entity is absent
	NotFoundError struct {
		Message string
	}

	// ConflictError indicates the request collides with existing state
	// (duplicate email, user already assigned to a project)
	ConflictError struct {
		Message string
	}

	// IntegrityError indicates malformed stored data, e.g. a project
	// without a lead. Not user-actionable; logged and surfaced as a
	// generic failure.
	IntegrityError struct {
		Message string
	}
)

func (e *ValidationError) Error() string     { return e.Message }
func (e *AuthenticationError) Error() string { return e.Message }
func (e *AuthorizationError) Error() string  { return e.Message }
func (e *NotFoundError) Error() string       { return e.Message }
func (e *ConflictError) Error() string       { return e.Message }
func (e *IntegrityError) Error() string      { return e.Message }

func (e *ValidationError) StatusCode() int     { return http.StatusBadRequest }
func (e *AuthenticationError) StatusCode() int { return http.StatusUnauthorized }
func (e *AuthorizationError) StatusCode() int  { return http.StatusForbidden }
func (e *NotFoundError) StatusCode() int       { return http.StatusNotFound }
func (e *ConflictError) StatusCode() int       { return http.StatusConflict }
func (e *IntegrityError) StatusCode() int      { return http.StatusInternalServerError }

// Sentinel errors - use with errors.Is()
var (
	ErrValidation      = errors.New("validation failed")
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("already exists")
	ErrIntegrity       = errors.New("data integrity violation")
)

// Is implementations let errors.Is() match typed errors against sentinels
func (e *ValidationError) Is(target error) bool     { return target == ErrValidation }
func (e *AuthenticationError) Is(target error) bool { return target == ErrUnauthenticated }
func (e *AuthorizationError) Is(target error) bool  { return target == ErrForbidden }
func (e *NotFoundError) Is(target error) bool       { return target == ErrNotFound }
func (e *ConflictError) Is(target error) bool       { return target == ErrConflict }
func (e *IntegrityError) Is(target error) bool      { return target == ErrIntegrity }
