package middleware

import (
	"net/http"
	"time"

	"github.com/SscSPs/fin_manager_app/internal/core/domain"
	"github.com/gin-gonic/gin"
)

// Session cookie names.
const (
	AccessTokenCookie   = "sb-access-token"
	RefreshTokenCookie  = "sb-refresh-token"
	CustomSessionCookie = "custom-session"
)

// SessionCookies reads and writes the session cookies. All cookies are http-only.
type SessionCookies struct {
	MaxAge time.Duration
	Secure bool
	Domain string
}

// Read collects the session cookies presented by the client.
func (sc SessionCookies) Read(c *gin.Context) domain.SessionTokens {
	var tokens domain.SessionTokens
	tokens.AccessToken, _ = c.Cookie(AccessTokenCookie)
	tokens.RefreshToken, _ = c.Cookie(RefreshTokenCookie)
	tokens.CustomSession, _ = c.Cookie(CustomSessionCookie)
	return tokens
}

// WriteProvider sets the managed-provider cookies.
func (sc SessionCookies) WriteProvider(c *gin.Context, session *domain.ProviderSession) {
	sc.set(c, AccessTokenCookie, session.AccessToken, sc.maxAgeSeconds())
	if session.RefreshToken != "" {
		sc.set(c, RefreshTokenCookie, session.RefreshToken, sc.maxAgeSeconds())
	}
}

// WriteCustom sets the custom-session cookie.
func (sc SessionCookies) WriteCustom(c *gin.Context, token string) {
	sc.set(c, CustomSessionCookie, token, sc.maxAgeSeconds())
}

// Clear expires every session cookie.
func (sc SessionCookies) Clear(c *gin.Context) {
	for _, name := range []string{AccessTokenCookie, RefreshTokenCookie, CustomSessionCookie} {
		sc.set(c, name, "", -1)
	}
}

func (sc SessionCookies) maxAgeSeconds() int {
	if sc.MaxAge <= 0 {
		return int((7 * 24 * time.Hour).Seconds())
	}
	return int(sc.MaxAge.Seconds())
}

func (sc SessionCookies) set(c *gin.Context, name, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(name, value, maxAge, "/", sc.Domain, sc.Secure, true)
}
