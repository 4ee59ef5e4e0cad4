package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"projecthub/internal/authz"
	"projecthub/internal/domain"
	"projecthub/internal/domain/models"
	"projecthub/internal/httputil"
)

// currentUser pulls the authenticated user the middleware stashed on
// the request. A missing user on a protected route is a middleware
// wiring bug, reported as 401 rather than a panic.
func currentUser(w http.ResponseWriter, r *http.Request) (*models.User, bool) {
	user, ok := httputil.CurrentUser(r)
	if !ok {
		httputil.RespondError(w, http.StatusUnauthorized, "authentication required")
		return nil, false
	}
	return user, true
}

// principal is currentUser narrowed to the access-control view.
func principal(w http.ResponseWriter, r *http.Request) (authz.Principal, bool) {
	user, ok := currentUser(w, r)
	if !ok {
		return authz.Principal{}, false
	}
	return user.Principal(), true
}

// handleError maps domain errors to the response envelope
func handleError(w http.ResponseWriter, logger *slog.Logger, err error) {
	var authzErr *domain.AuthorizationError
	if errors.As(err, &authzErr) {
		httputil.RespondDenied(w, authzErr.Message, authzErr.Reason)
		return
	}

	var integrityErr *domain.IntegrityError
	if errors.As(err, &integrityErr) {
		// Malformed stored data is never the client's fault; log the
		// detail, return a generic failure.
		logger.Error("data integrity violation", "error", integrityErr.Message)
		httputil.RespondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	var httpErr domain.HTTPError
	if errors.As(err, &httpErr) {
		httputil.RespondError(w, httpErr.StatusCode(), httpErr.Error())
		return
	}

	logger.Error("unhandled error", "error", err)
	httputil.RespondError(w, http.StatusInternalServerError, "Internal server error")
}

// pathID reads a non-empty {id}-style path segment.
func pathID(w http.ResponseWriter, r *http.Request, name string) (string, bool) {
	id := r.PathValue(name)
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, name+" is required")
		return "", false
	}
	return id, true
}
