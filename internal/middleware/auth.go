package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"medquiz/internal/auth"
	"medquiz/internal/httputil"
)

// AuthMiddleware verifies the bearer token and stores the user id and
// admin flag in the request context. The token may be absent; the
// verifier decides whether that is acceptable (the dev verifier
// accepts it, the JWKS verifier does not).
func AuthMiddleware(verifier auth.JWTVerifier, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)

			claims, err := verifier.VerifyToken(token)
			if err != nil {
				logger.Debug("auth rejected", "path", r.URL.Path, "error", err)
				httputil.RespondError(w, http.StatusUnauthorized, "invalid or missing token")
				return
			}

			r = httputil.WithAuth(r, claims.GetUserID(), claims.IsAdmin())
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin rejects non-admin users. It must run inside
// AuthMiddleware.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !httputil.IsAdmin(r) {
			httputil.RespondError(w, http.StatusForbidden, "admin role required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}
