package httputil

import (
	"context"
	"net/http"

	"projecthub/internal/domain/models"
)

// Context key type to avoid collisions
type contextKey string

const currentUserKey contextKey = "currentUser"

// WithCurrentUser returns a request whose context carries the
// authenticated user. Set once by the authentication middleware;
// handlers read it and pass an explicit principal into every service
// call - authorization never consults ambient state.
func WithCurrentUser(r *http.Request, user *models.User) *http.Request {
	ctx := context.WithValue(r.Context(), currentUserKey, user)
	return r.WithContext(ctx)
}

// CurrentUser retrieves the authenticated user from the request context.
func CurrentUser(r *http.Request) (*models.User, bool) {
	user, ok := r.Context().Value(currentUserKey).(*models.User)
	return user, ok
}
