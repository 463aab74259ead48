package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/fin_manager_app/internal/apperrors"
	"github.com/SscSPs/fin_manager_app/internal/core/domain"
	portssvc "github.com/SscSPs/fin_manager_app/internal/core/ports/services"
	"github.com/SscSPs/fin_manager_app/internal/dto"
	"github.com/SscSPs/fin_manager_app/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
)

// authHandler establishes and ends sessions.
type authHandler struct {
	sessions portssvc.SessionSvcFacade
	users    portssvc.UserSvcFacade
	cookies  middleware.SessionCookies
}

func newAuthHandler(sessions portssvc.SessionSvcFacade, users portssvc.UserSvcFacade, cookies middleware.SessionCookies) *authHandler {
	return &authHandler{sessions: sessions, users: users, cookies: cookies}
}

// registerAuthRoutes sets up the public session routes. Login endpoints are rate limited
// per client IP when loginLimiter is non-nil.
func registerAuthRoutes(r *gin.Engine, sessions portssvc.SessionSvcFacade, users portssvc.UserSvcFacade, cookies middleware.SessionCookies, loginLimiter *limiter.Limiter) {
	h := newAuthHandler(sessions, users, cookies)

	limited := []gin.HandlerFunc{}
	if loginLimiter != nil {
		limited = append(limited, middleware.RateLimit(loginLimiter))
	}

	api := r.Group("/api")
	{
		api.POST("/login", append(limited, h.login)...)
		api.POST("/logout", h.logout)
		api.POST("/signup", append(limited, h.signup)...)
		api.GET("/auth/me", h.me)
		api.POST("/auth/google", append(limited, h.loginWithGoogle)...)
	}
}

// login godoc
// @Summary Sign in with email and password
// @Description Tries the managed auth provider first and falls back to the application users table.
// @Description A provider login sets sb-access-token/sb-refresh-token, a custom login sets custom-session.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Login Credentials"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse "Invalid email or password"
// @Failure 429 {object} dto.ErrorResponse
// @Router /api/login [post]
func (h *authHandler) login(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, "login request", err)
		return
	}

	result, err := h.sessions.Login(c.Request.Context(), domain.Credentials{Email: req.Email, Password: req.Password})
	if err != nil {
		if errors.Is(err, apperrors.ErrUnauthorized) {
			logger.Info("Login rejected")
			c.JSON(http.StatusUnauthorized, dto.Fail("Invalid email or password"))
			return
		}
		respondError(c, err, "User", "sign in")
		return
	}

	h.writeSession(c, result)
	logger.Info("Login successful",
		slog.String("user_id", result.Identity.User.UserID),
		slog.String("auth_method", string(result.Identity.Method)))
	c.JSON(http.StatusOK, dto.SuccessResponse{
		Success: true,
		Message: "Login successful",
		Data:    meResponse(&result.Identity),
	})
}

// loginWithGoogle godoc
// @Summary Sign in with a Google ID token
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.GoogleLoginRequest true "Google ID token"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /api/auth/google [post]
func (h *authHandler) loginWithGoogle(c *gin.Context) {
	var req dto.GoogleLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, "google login request", err)
		return
	}

	result, err := h.sessions.LoginWithGoogle(c.Request.Context(), req.IDToken)
	if err != nil {
		respondError(c, err, "User", "sign in with Google")
		return
	}

	h.writeSession(c, result)
	c.JSON(http.StatusOK, dto.SuccessResponse{
		Success: true,
		Message: "Login successful",
		Data:    meResponse(&result.Identity),
	})
}

// logout godoc
// @Summary Sign out
// @Description Revokes the application session and clears every session cookie.
// @Tags auth
// @Produce json
// @Success 200 {object} dto.SuccessResponse
// @Router /api/logout [post]
func (h *authHandler) logout(c *gin.Context) {
	tokens := h.cookies.Read(c)
	if err := h.sessions.Logout(c.Request.Context(), tokens); err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Failed to revoke session", slog.String("error", err.Error()))
	}
	h.cookies.Clear(c)
	c.JSON(http.StatusOK, dto.OKMessage("Logged out"))
}

// signup godoc
// @Summary Register a new user
// @Description Creates an active user with role user in the application users table.
// @Tags auth
// @Accept json
// @Produce json
// @Param signup body dto.SignupRequest true "User details"
// @Success 201 {object} dto.SuccessResponse{data=dto.UserResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Email already registered"
// @Router /api/signup [post]
func (h *authHandler) signup(c *gin.Context) {
	var req dto.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, "signup request", err)
		return
	}

	user, err := h.users.Signup(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "User", "sign up")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("User signed up", slog.String("user_id", user.UserID))
	c.JSON(http.StatusCreated, dto.OK(dto.ToUserResponse(user)))
}

// me godoc
// @Summary Current session
// @Description Reports whether the request carries a valid session and, if so, who it belongs to.
// @Tags auth
// @Produce json
// @Success 200 {object} dto.MeResponse
// @Router /api/auth/me [get]
func (h *authHandler) me(c *gin.Context) {
	identity, ok := middleware.GetIdentityFromContext(c)
	if !ok {
		c.JSON(http.StatusOK, dto.MeResponse{Authenticated: false})
		return
	}
	c.JSON(http.StatusOK, meResponse(identity))
}

func (h *authHandler) writeSession(c *gin.Context, result *portssvc.LoginResult) {
	if result.ProviderSession != nil {
		h.cookies.WriteProvider(c, result.ProviderSession)
		return
	}
	h.cookies.WriteCustom(c, result.CustomSession)
}

func meResponse(identity *domain.Identity) dto.MeResponse {
	user := dto.ToUserResponse(&identity.User)
	return dto.MeResponse{
		Authenticated: true,
		User:          &user,
		AuthMethod:    string(identity.Method),
	}
}
