package models

import "github.com/golang-jwt/jwt/v5"

// AuthClaims represents the JWT claims issued by the auth provider
// (Supabase-compatible layout).
type AuthClaims struct {
	jwt.RegisteredClaims                        // Standard JWT claims (sub, iss, aud, exp, iat, etc.)
	Email                string                 `json:"email"`
	AppMetadata          map[string]interface{} `json:"app_metadata"`
	UserMetadata         map[string]interface{} `json:"user_metadata"`
	Role                 string                 `json:"role"` // "authenticated" or "anon"
	SessionID            string                 `json:"session_id"`
	IsAnonymous          bool                   `json:"is_anonymous"`
}

// GetUserID returns the user ID from the JWT subject claim.
func (c *AuthClaims) GetUserID() string {
	return c.Subject
}

// IsAdmin reports whether the token carries the admin role. The role is
// read from app_metadata first (set server-side, trustworthy), falling
// back to user_metadata for dev tokens.
func (c *AuthClaims) IsAdmin() bool {
	if role, ok := c.AppMetadata["role"].(string); ok && role == "admin" {
		return true
	}
	role, ok := c.UserMetadata["role"].(string)
	return ok && role == "admin"
}
