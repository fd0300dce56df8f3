package respond

import (
	"github.com/gin-gonic/gin"

	"docvault-backend/internal/shared/telemetry"
)

// ErrorResponse is the body sent for every failed request: an HTTP status and
// a human-readable message, nothing more.
type ErrorResponse struct {
	Message string `json:"message"`
}

// Error logs and sends a standardized error response. Underlying causes are
// logged server-side only; the client sees just the message.
func Error(c *gin.Context, status int, message string) {
	fields := map[string]any{
		"status":     status,
		"message":    message,
		"path":       c.Request.URL.Path,
		"method":     c.Request.Method,
		"request_id": c.GetString("requestId"),
	}
	if userID := c.GetString("userId"); userID != "" {
		fields["user_id"] = userID
	}
	telemetry.Error("http.error", fields)

	c.AbortWithStatusJSON(status, ErrorResponse{Message: message})
}
