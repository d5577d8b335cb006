package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// Context keys set by RequireAuth.
const (
	ctxKeyUserID = "user_id"
	ctxKeyName   = "user_name"
	ctxKeyRole   = "user_role"
)

// TokenFromRequest extracts the bearer credential from the Authorization
// header, falling back to the "token" query parameter used by the websocket
// handshake (browsers cannot set headers on websocket upgrades).
func TokenFromRequest(r *http.Request) string {
	if h := r.Header.Get("Authorization"); h != "" {
		if token, found := strings.CutPrefix(h, "Bearer "); found {
			return token
		}
	}
	return r.URL.Query().Get("token")
}

// RequireAuth returns a gin middleware rejecting requests without a valid
// session token. On success the identity is stored in the request context.
func RequireAuth(guard *Guard) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := TokenFromRequest(c.Request)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing credential"})
			return
		}
		claims, err := guard.Verify(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired credential"})
			return
		}
		c.Set(ctxKeyUserID, claims.UserID)
		c.Set(ctxKeyName, claims.Name)
		c.Set(ctxKeyRole, claims.Role)
		c.Next()
	}
}

// UserID returns the authenticated user's ID, or "" when RequireAuth did not run.
func UserID(c *gin.Context) string {
	if v, ok := c.Get(ctxKeyUserID); ok {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}

// Role returns the authenticated user's role, or "" when RequireAuth did not run.
func Role(c *gin.Context) string {
	if v, ok := c.Get(ctxKeyRole); ok {
		if role, ok := v.(string); ok {
			return role
		}
	}
	return ""
}
