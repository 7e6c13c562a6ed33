package httputil

import (
	"context"
	"net/http"
)

// Context key type to avoid collisions
type contextKey string

const (
	userIDKey  contextKey = "userID"
	isAdminKey contextKey = "isAdmin"
)

// WithAuth adds the authenticated user and admin flag to the request
// context.
func WithAuth(r *http.Request, userID string, isAdmin bool) *http.Request {
	ctx := context.WithValue(r.Context(), userIDKey, userID)
	ctx = context.WithValue(ctx, isAdminKey, isAdmin)
	return r.WithContext(ctx)
}

// GetUserID retrieves userID from context, returns empty string if not found
func GetUserID(r *http.Request) string {
	userID, _ := r.Context().Value(userIDKey).(string)
	return userID
}

// IsAdmin reports whether the authenticated user has the admin role.
func IsAdmin(r *http.Request) bool {
	isAdmin, _ := r.Context().Value(isAdminKey).(bool)
	return isAdmin
}
