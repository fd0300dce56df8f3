package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"docvault-backend/internal/shared/auth"
	"docvault-backend/internal/shared/server/respond"
)

const userIDKey = "userId"

// Auth validates bearer tokens and stores the caller's user ID in context.
// The only accepted convention is "Authorization: Bearer <token>". Preflight
// requests never reach this middleware; CORS aborts them first.
func Auth(tokens *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := strings.TrimSpace(c.GetHeader("Authorization"))
		if header == "" {
			respond.Error(c, http.StatusUnauthorized, "Unauthorized")
			return
		}
		if !strings.HasPrefix(header, "Bearer ") {
			respond.Error(c, http.StatusUnauthorized, "Unauthorized")
			return
		}
		token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer"))
		if token == "" {
			respond.Error(c, http.StatusUnauthorized, "Unauthorized")
			return
		}

		userID, err := tokens.Verify(token)
		if err != nil {
			respond.Error(c, http.StatusForbidden, "Invalid token")
			return
		}

		c.Set(userIDKey, userID)
		c.Next()
	}
}

// UserIDFromContext fetches the user ID set by the auth middleware.
func UserIDFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	val, _ := c.Get(userIDKey)
	if id, ok := val.(string); ok {
		return id
	}
	return ""
}
