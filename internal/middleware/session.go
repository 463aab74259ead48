package middleware

import (
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/SscSPs/fin_manager_app/internal/core/domain"
	portssvc "github.com/SscSPs/fin_manager_app/internal/core/ports/services"
	"github.com/SscSPs/fin_manager_app/internal/dto"
	"github.com/gin-gonic/gin"
)

// publicPaths bypass the session gate entirely.
var publicPaths = map[string]bool{
	"/":            true,
	"/health":      true,
	"/login":       true,
	"/favicon.ico": true,
	"/api/login":   true,
	"/api/logout":  true,
	"/api/signup":  true,
}

// publicPrefixes bypass the session gate for every path below them.
var publicPrefixes = []string{
	"/api/auth/",
	"/static/",
	"/swagger/",
}

// identityAwarePaths are public but still attach a valid session when one is presented.
var identityAwarePaths = map[string]bool{
	"/api/auth/me": true,
}

// IsPublicPath reports whether path is served without a session.
func IsPublicPath(path string) bool {
	if publicPaths[path] {
		return true
	}
	for _, prefix := range publicPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// SessionGate resolves the caller's session server-side on every protected request.
// Public paths pass through without a lookup, except identity-aware ones like
// /api/auth/me. Unauthenticated API calls get 401; other paths are redirected to /login.
func SessionGate(sessions portssvc.SessionSvcFacade, cookies SessionCookies) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		public := IsPublicPath(path)
		if public && !identityAwarePaths[path] {
			c.Next()
			return
		}
		tokens := cookies.Read(c)

		var res portssvc.Resolution
		if !tokens.IsEmpty() {
			res = sessions.Resolve(c.Request.Context(), tokens)
		}

		if res.Authenticated {
			if res.Refreshed != nil {
				cookies.WriteProvider(c, res.Refreshed)
			}
			attachIdentity(c, res.Identity)
			c.Next()
			return
		}

		if public {
			c.Next()
			return
		}

		logger := GetLoggerFromCtx(c.Request.Context())
		logger.Debug("Rejected unauthenticated request", slog.Bool("had_cookies", !tokens.IsEmpty()))
		if strings.HasPrefix(path, "/api/") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.Fail("Unauthorized"))
			return
		}
		c.Redirect(http.StatusFound, "/login?redirect="+url.QueryEscape(c.Request.URL.RequestURI()))
		c.Abort()
	}
}

// RequireRole aborts with 403 unless the authenticated user holds at least min.
func RequireRole(min domain.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := GetIdentityFromContext(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.Fail("Unauthorized"))
			return
		}
		if !identity.User.Role.AtLeast(min) {
			GetLoggerFromCtx(c.Request.Context()).Warn("Insufficient role",
				slog.String("role", string(identity.User.Role)),
				slog.String("required_role", string(min)))
			c.AbortWithStatusJSON(http.StatusForbidden, dto.Fail("Forbidden"))
			return
		}
		c.Next()
	}
}

func attachIdentity(c *gin.Context, identity *domain.Identity) {
	ctx := c.Request.Context()
	logger := GetLoggerFromCtx(ctx).With(
		slog.String("user_id", identity.User.UserID),
		slog.String("auth_method", string(identity.Method)),
	)
	ctx = WithIdentity(ctx, identity)
	ctx = WithLogger(ctx, logger)
	c.Request = c.Request.WithContext(ctx)
}
