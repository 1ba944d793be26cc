package middleware

import (
	"net/http"
	"strings"

	"github.com/SscSPs/vip_gift_workflow/internal/utils"
	"github.com/gin-gonic/gin"
)

// BulkActionKey is set by the bulk action handler to the resolved canonical action.
const BulkActionKey = "bulkAction"

// pathsToSkip contains paths that should not be tracked by PostHog
var pathsToSkip = map[string]bool{
	"/health":  true,
	"/metrics": true,
}

// PosthogMiddleware tracks successful API calls of authenticated users with PostHog.
func PosthogMiddleware(posthogClient *utils.PosthogClientWrapper) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !posthogClient.IsInitialized() || pathsToSkip[c.Request.URL.Path] {
			c.Next()
			return
		}

		c.Next()

		if len(c.Errors) > 0 || c.Writer.Status() >= http.StatusBadRequest {
			return
		}
		userID, exists := GetUserIDFromContext(c)
		if !exists {
			return
		}

		// "/api/v1/gifts/bulk-actions" -> "api_v1_gifts_bulk-actions"
		eventName := strings.ReplaceAll(strings.TrimPrefix(c.FullPath(), "/"), "/", "_")
		if eventName == "" {
			return
		}

		props := map[string]any{
			"method":      c.Request.Method,
			"status_code": c.Writer.Status(),
		}
		if action, ok := c.Get(BulkActionKey); ok {
			props["action"] = action
		}
		if role, ok := GetUserRoleFromContext(c); ok {
			props["role"] = role
		}

		// Analytics are best effort.
		_ = posthogClient.Enqueue(userID, eventName, props)
	}
}
