package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"projecthub/internal/auth"
	"projecthub/internal/domain/repositories"
	"projecthub/internal/httputil"
)

// publicPaths are reachable without a bearer token.
var publicPaths = map[string]bool{
	"/api/status":     true,
	"/api/auth/login": true,
}

// Auth verifies the bearer token, loads the user record it references,
// and stores the user in the request context. Inactive accounts are
// rejected here, before any authorization decision runs. The role used
// downstream is always the one from the freshly loaded record, never
// the token's.
func Auth(verifier auth.TokenVerifier, users repositories.UserRepository, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if publicPaths[r.URL.Path] {
				next.ServeHTTP(w, r)
				return
			}

			token := extractBearer(r)
			if token == "" {
				httputil.RespondError(w, http.StatusUnauthorized, "not authorized to access this route")
				return
			}

			claims, err := verifier.VerifyToken(token)
			if err != nil {
				httputil.RespondError(w, http.StatusUnauthorized, "not authorized to access this route")
				return
			}

			user, err := users.GetByID(r.Context(), claims.UserID())
			if err != nil {
				logger.Debug("token subject not found", "user_id", claims.UserID())
				httputil.RespondError(w, http.StatusUnauthorized, "user not found or account is inactive")
				return
			}

			if !user.IsActive {
				httputil.RespondError(w, http.StatusUnauthorized, "user not found or account is inactive")
				return
			}

			next.ServeHTTP(w, httputil.WithCurrentUser(r, user))
		})
	}
}

// extractBearer returns the token from the Authorization header, or ""
// if the header is missing or not a bearer credential.
func extractBearer(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" || !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(header, "Bearer ")
}
