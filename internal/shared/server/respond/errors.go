package respond

import (
	"github.com/gin-gonic/gin"

	"garden-backend/internal/shared/telemetry"
)

// ErrorBody is the standardized error object returned to clients.
type ErrorBody struct {
	Error          string `json:"error"`
	Message        string `json:"message"`
	RetrySuggested bool   `json:"retry_suggested"`
}

// Error sends a standardized error response and logs it.
func Error(c *gin.Context, status int, code, message string, retrySuggested bool) {
	telemetry.Error("http.error", map[string]any{
		"status":     status,
		"error":      code,
		"message":    message,
		"path":       c.Request.URL.Path,
		"method":     c.Request.Method,
		"request_id": c.GetString("requestId"),
	})

	c.AbortWithStatusJSON(status, ErrorBody{
		Error:          code,
		Message:        message,
		RetrySuggested: retrySuggested,
	})
}
