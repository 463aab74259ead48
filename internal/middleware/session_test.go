package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/fin_manager_app/internal/core/domain"
	portssvc "github.com/SscSPs/fin_manager_app/internal/core/ports/services"
	"github.com/SscSPs/fin_manager_app/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubSessions resolves a fixed custom-session value to an identity.
type stubSessions struct {
	portssvc.SessionSvcFacade
	validSession string
	identity     domain.Identity
	refreshed    *domain.ProviderSession
	calls        int
}

func (s *stubSessions) Resolve(_ context.Context, tokens domain.SessionTokens) portssvc.Resolution {
	s.calls++
	if tokens.CustomSession == s.validSession || (s.refreshed != nil && tokens.RefreshToken != "") {
		id := s.identity
		return portssvc.Resolution{Authenticated: true, Identity: &id, Refreshed: s.refreshed}
	}
	return portssvc.Resolution{}
}

func newGatedRouter(sessions portssvc.SessionSvcFacade) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	cookies := middleware.SessionCookies{MaxAge: time.Hour}
	r.Use(middleware.SessionGate(sessions, cookies))
	whoami := func(c *gin.Context) {
		userID, ok := middleware.GetUserIDFromContext(c)
		if !ok {
			c.String(http.StatusOK, "anonymous")
			return
		}
		c.String(http.StatusOK, userID)
	}
	r.GET("/", whoami)
	r.GET("/dashboard", whoami)
	r.GET("/api/v1/accounts", whoami)
	r.GET("/api/auth/me", whoami)
	admin := r.Group("/api/v1/users", middleware.RequireRole(domain.RoleAdmin))
	admin.GET("", whoami)
	return r
}

func TestIsPublicPath(t *testing.T) {
	for _, p := range []string{"/", "/health", "/api/login", "/api/logout", "/api/auth/me", "/static/app.css", "/swagger/index.html"} {
		assert.True(t, middleware.IsPublicPath(p), p)
	}
	for _, p := range []string{"/dashboard", "/api/v1/accounts", "/api/user/profile", "/api/loginx"} {
		assert.False(t, middleware.IsPublicPath(p), p)
	}
}

func TestSessionGate_UnauthenticatedAPIGets401(t *testing.T) {
	r := newGatedRouter(&stubSessions{validSession: "good"})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/accounts", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"success":false,"error":"Unauthorized"}`, w.Body.String())
}

func TestSessionGate_PresenceIsNotEnough(t *testing.T) {
	sessions := &stubSessions{validSession: "good"}
	r := newGatedRouter(sessions)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: middleware.CustomSessionCookie, Value: "forged"})
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login?redirect=%2Fdashboard", w.Header().Get("Location"))
	assert.Equal(t, 1, sessions.calls, "the cookie must be verified, not just detected")
}

func TestSessionGate_ValidSessionPasses(t *testing.T) {
	r := newGatedRouter(&stubSessions{
		validSession: "good",
		identity:     domain.Identity{User: domain.User{UserID: "u-1", Role: domain.RoleUser}, Method: domain.AuthMethodCustom},
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/accounts", nil)
	req.AddCookie(&http.Cookie{Name: middleware.CustomSessionCookie, Value: "good"})
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "u-1", w.Body.String())
}

func TestSessionGate_PublicPathStillSeesIdentity(t *testing.T) {
	r := newGatedRouter(&stubSessions{
		validSession: "good",
		identity:     domain.Identity{User: domain.User{UserID: "u-2"}, Method: domain.AuthMethodCustom},
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/auth/me", nil))
	assert.Equal(t, "anonymous", w.Body.String())

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.AddCookie(&http.Cookie{Name: middleware.CustomSessionCookie, Value: "good"})
	r.ServeHTTP(w, req)
	assert.Equal(t, "u-2", w.Body.String())
}

func TestSessionGate_PublicAssetsSkipSessionLookup(t *testing.T) {
	sessions := &stubSessions{
		validSession: "good",
		identity:     domain.Identity{User: domain.User{UserID: "u-4"}, Method: domain.AuthMethodProvider},
	}
	r := newGatedRouter(sessions)
	r.GET("/static/*file", func(c *gin.Context) { c.Status(http.StatusOK) })

	for _, path := range []string{"/static/app.css", "/static/logo.svg", "/"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.AddCookie(&http.Cookie{Name: middleware.CustomSessionCookie, Value: "good"})
		req.AddCookie(&http.Cookie{Name: middleware.AccessTokenCookie, Value: "provider-access"})
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code, path)
	}
	assert.Zero(t, sessions.calls)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.AddCookie(&http.Cookie{Name: middleware.CustomSessionCookie, Value: "good"})
	r.ServeHTTP(w, req)
	assert.Equal(t, "u-4", w.Body.String())
	assert.Equal(t, 1, sessions.calls)
}

func TestSessionGate_RewritesRefreshedProviderCookies(t *testing.T) {
	r := newGatedRouter(&stubSessions{
		identity:  domain.Identity{User: domain.User{UserID: "u-3"}, Method: domain.AuthMethodProvider},
		refreshed: &domain.ProviderSession{AccessToken: "new-access", RefreshToken: "new-refresh"},
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/accounts", nil)
	req.AddCookie(&http.Cookie{Name: middleware.AccessTokenCookie, Value: "expired"})
	req.AddCookie(&http.Cookie{Name: middleware.RefreshTokenCookie, Value: "old-refresh"})
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	cookies := map[string]*http.Cookie{}
	for _, ck := range w.Result().Cookies() {
		cookies[ck.Name] = ck
	}
	require.Contains(t, cookies, middleware.AccessTokenCookie)
	assert.Equal(t, "new-access", cookies[middleware.AccessTokenCookie].Value)
	assert.True(t, cookies[middleware.AccessTokenCookie].HttpOnly)
	assert.Equal(t, "new-refresh", cookies[middleware.RefreshTokenCookie].Value)
}

func TestRequireRole(t *testing.T) {
	user := &stubSessions{validSession: "good", identity: domain.Identity{User: domain.User{UserID: "u", Role: domain.RoleManager}}}
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/users", nil)
	req.AddCookie(&http.Cookie{Name: middleware.CustomSessionCookie, Value: "good"})
	newGatedRouter(user).ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	admin := &stubSessions{validSession: "good", identity: domain.Identity{User: domain.User{UserID: "a", Role: domain.RoleAdmin}}}
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/v1/users", nil)
	req.AddCookie(&http.Cookie{Name: middleware.CustomSessionCookie, Value: "good"})
	newGatedRouter(admin).ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestNewLimiter(t *testing.T) {
	l, err := middleware.NewLimiter("5-M", nil)
	require.NoError(t, err)
	assert.NotNil(t, l)

	_, err = middleware.NewLimiter("five per minute", nil)
	assert.Error(t, err)
}
