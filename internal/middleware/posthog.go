package middleware

import (
	"net/http"
	"strings"

	"github.com/SscSPs/fin_manager_app/internal/utils"
	"github.com/gin-gonic/gin"
)

// PosthogMiddleware records one event per successful authenticated API call.
// Events are named after the route template, so ids in the URL never reach PostHog.
func PosthogMiddleware(posthogClient *utils.PosthogClientWrapper) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !posthogClient.IsInitialized() || !tracked(c.Request.URL.Path) {
			c.Next()
			return
		}

		c.Next()

		if len(c.Errors) > 0 || c.Writer.Status() >= http.StatusBadRequest {
			return
		}
		// Unmatched routes have no template.
		route := c.FullPath()
		if route == "" {
			return
		}
		identity, ok := GetIdentityFromContext(c)
		if !ok {
			return
		}

		posthogClient.Enqueue(identity.User.UserID, routeEventName(c.Request.Method, route), map[string]any{
			"method":      c.Request.Method,
			"route":       route,
			"status_code": c.Writer.Status(),
			"auth_method": string(identity.Method),
			"role":        string(identity.User.Role),
		})
	}
}

// PosthogEvent sends a named domain event for the authenticated caller.
func PosthogEvent(c *gin.Context, posthogClient *utils.PosthogClientWrapper, eventName string, properties map[string]any) {
	if !posthogClient.IsInitialized() {
		return
	}
	identity, ok := GetIdentityFromContext(c)
	if !ok {
		return
	}

	if properties == nil {
		properties = make(map[string]any)
	}
	properties["route"] = c.FullPath()
	properties["auth_method"] = string(identity.Method)

	posthogClient.Enqueue(identity.User.UserID, eventName, properties)
}

// tracked limits analytics to the authenticated API surface.
func tracked(path string) bool {
	return strings.HasPrefix(path, "/api/") && !IsPublicPath(path)
}

// routeEventName turns "GET /api/v1/accounts/:accountID" into "get_accounts_by_id".
func routeEventName(method, route string) string {
	parts := []string{strings.ToLower(method)}
	for _, seg := range strings.Split(strings.Trim(route, "/"), "/") {
		switch {
		case seg == "api" || seg == "v1" || seg == "":
		case strings.HasPrefix(seg, ":") || strings.HasPrefix(seg, "*"):
			parts = append(parts, "by_id")
		default:
			parts = append(parts, seg)
		}
	}
	return strings.Join(parts, "_")
}
