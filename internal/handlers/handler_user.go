package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/fin_manager_app/internal/core/ports/services"
	"github.com/SscSPs/fin_manager_app/internal/dto"
	"github.com/SscSPs/fin_manager_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// userHandler handles HTTP requests related to users.
type userHandler struct {
	userService portssvc.UserSvcFacade
}

// newUserHandler creates a new userHandler.
func newUserHandler(us portssvc.UserSvcFacade) *userHandler {
	return &userHandler{
		userService: us,
	}
}

// registerUserRoutes registers the administrator user routes. The caller applies the role gate.
func registerUserRoutes(rg *gin.RouterGroup, userService portssvc.UserSvcFacade) {
	h := newUserHandler(userService)

	users := rg.Group("/users")
	{
		users.GET("", h.listUsers)
		users.POST("", h.createUser)
		users.GET("/:userID", h.getUser)
		users.PUT("/:userID", h.updateUser)
		users.DELETE("/:userID", h.deleteUser)
	}
}

// registerProfileRoutes registers the self-service profile routes.
func registerProfileRoutes(rg *gin.RouterGroup, userService portssvc.UserSvcFacade) {
	h := newUserHandler(userService)

	profile := rg.Group("/user")
	{
		profile.GET("/profile", h.getProfile)
		profile.PUT("/profile", h.updateProfile)
		profile.PUT("/password", h.changePassword)
	}
}

// createUser godoc
// @Summary Create a new user
// @Description Creates a user in the application users table. An empty password makes a provider-only user.
// @Tags users
// @Accept  json
// @Produce  json
// @Param   user body dto.CreateUserRequest true "User details"
// @Success 201 {object} dto.SuccessResponse{data=dto.UserResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 409 {object} dto.ErrorResponse "Email already registered"
// @Router /api/v1/users [post]
func (h *userHandler) createUser(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, "create user request", err)
		return
	}

	creatorUserID, ok := currentUserID(c)
	if !ok {
		return
	}

	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("creator_user_id", creatorUserID))
	logger.Info("Received request to create user", slog.String("user_email", req.Email))

	createdUser, err := h.userService.CreateUser(c.Request.Context(), req, creatorUserID)
	if err != nil {
		respondError(c, err, "User", "create user")
		return
	}

	logger.Info("User created successfully", slog.String("user_id", createdUser.UserID))
	c.JSON(http.StatusCreated, dto.OK(dto.ToUserResponse(createdUser)))
}

// getUser godoc
// @Summary Get a user by ID
// @Tags users
// @Produce  json
// @Param   userID path string true "User ID"
// @Success 200 {object} dto.SuccessResponse{data=dto.UserResponse}
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /api/v1/users/{userID} [get]
func (h *userHandler) getUser(c *gin.Context) {
	user, err := h.userService.GetUserByID(c.Request.Context(), c.Param("userID"))
	if err != nil {
		respondError(c, err, "User", "retrieve user")
		return
	}
	c.JSON(http.StatusOK, dto.OK(dto.ToUserResponse(user)))
}

// listUsers godoc
// @Summary List users
// @Tags users
// @Produce  json
// @Param   limit query int false "Limit number of results" default(50)
// @Param   offset query int false "Offset for pagination" default(0)
// @Success 200 {object} dto.SuccessResponse{data=dto.ListUsersResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/v1/users [get]
func (h *userHandler) listUsers(c *gin.Context) {
	var params dto.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindFailed(c, "list users query", err)
		return
	}

	users, err := h.userService.ListUsers(c.Request.Context(), params.Limit, params.Offset)
	if err != nil {
		respondError(c, err, "User", "list users")
		return
	}
	c.JSON(http.StatusOK, dto.OK(dto.ToListUserResponse(users)))
}

// updateUser godoc
// @Summary Update a user
// @Description Administrators cannot change their own role or status.
// @Tags users
// @Accept  json
// @Produce  json
// @Param   userID path string true "User ID"
// @Param   user body dto.UpdateUserRequest true "Fields to update"
// @Success 200 {object} dto.SuccessResponse{data=dto.UserResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /api/v1/users/{userID} [put]
func (h *userHandler) updateUser(c *gin.Context) {
	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, "update user request", err)
		return
	}

	requestingUserID, ok := currentUserID(c)
	if !ok {
		return
	}

	targetUserID := c.Param("userID")
	updated, err := h.userService.UpdateUser(c.Request.Context(), targetUserID, req, requestingUserID)
	if err != nil {
		respondError(c, err, "User", "update user")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("User updated successfully", slog.String("target_user_id", targetUserID))
	c.JSON(http.StatusOK, dto.OK(dto.ToUserResponse(updated)))
}

// deleteUser godoc
// @Summary Delete a user
// @Description Users cannot delete themselves.
// @Tags users
// @Param   userID path string true "User ID"
// @Success 204 "No Content"
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /api/v1/users/{userID} [delete]
func (h *userHandler) deleteUser(c *gin.Context) {
	requestingUserID, ok := currentUserID(c)
	if !ok {
		return
	}

	targetUserID := c.Param("userID")
	if err := h.userService.DeleteUser(c.Request.Context(), targetUserID, requestingUserID); err != nil {
		respondError(c, err, "User", "delete user")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("User deleted successfully", slog.String("target_user_id", targetUserID))
	c.Status(http.StatusNoContent)
}

// getProfile godoc
// @Summary Current user's profile
// @Tags profile
// @Produce json
// @Success 200 {object} dto.SuccessResponse{data=dto.UserResponse}
// @Failure 401 {object} dto.ErrorResponse
// @Router /api/user/profile [get]
func (h *userHandler) getProfile(c *gin.Context) {
	identity, ok := middleware.GetIdentityFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.Fail("Unauthorized"))
		return
	}
	c.JSON(http.StatusOK, dto.OK(dto.ToUserResponse(&identity.User)))
}

// updateProfile godoc
// @Summary Update the current user's profile
// @Tags profile
// @Accept json
// @Produce json
// @Param profile body dto.UpdateProfileRequest true "Profile fields"
// @Success 200 {object} dto.SuccessResponse{data=dto.UserResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse "Profile not stored in the users table"
// @Router /api/user/profile [put]
func (h *userHandler) updateProfile(c *gin.Context) {
	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, "update profile request", err)
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	updated, err := h.userService.UpdateProfile(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err, "User", "update profile")
		return
	}
	c.JSON(http.StatusOK, dto.OK(dto.ToUserResponse(updated)))
}

// changePassword godoc
// @Summary Change the current user's password
// @Description Only users that sign in against the application users table have a password here.
// @Tags profile
// @Accept json
// @Produce json
// @Param password body dto.ChangePasswordRequest true "Current and new password"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse "Current password is wrong"
// @Router /api/user/password [put]
func (h *userHandler) changePassword(c *gin.Context) {
	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, "change password request", err)
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.userService.ChangePassword(c.Request.Context(), userID, req); err != nil {
		respondError(c, err, "User", "change password")
		return
	}
	c.JSON(http.StatusOK, dto.OKMessage("Password updated"))
}
