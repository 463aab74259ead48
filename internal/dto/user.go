package dto

import (
	"time"

	"github.com/SscSPs/fin_manager_app/internal/core/domain"
)

// CreateUserRequest is used by administrators to add a user to the custom users table.
type CreateUserRequest struct {
	Email      string          `json:"email" binding:"required,email"`
	Name       string          `json:"name" binding:"required"`
	Password   string          `json:"password" binding:"omitempty,min=8"` // empty: provider-only user
	Role       domain.UserRole `json:"role" binding:"required,oneof=admin manager user"`
	Phone      string          `json:"phone"`
	PhoneCode  string          `json:"phoneCode"`
	Department string          `json:"department"`
}

// UpdateUserRequest defines the data an administrator may change.
// Using pointers to differentiate between omitted fields and zero-value fields.
type UpdateUserRequest struct {
	Name       *string            `json:"name"`
	Role       *domain.UserRole   `json:"role" binding:"omitempty,oneof=admin manager user"`
	Status     *domain.UserStatus `json:"status" binding:"omitempty,oneof=active inactive"`
	Phone      *string            `json:"phone"`
	PhoneCode  *string            `json:"phoneCode"`
	Department *string            `json:"department"`
}

// UpdateProfileRequest defines the fields a user may change on their own profile.
type UpdateProfileRequest struct {
	Name       *string `json:"name"`
	Phone      *string `json:"phone"`
	PhoneCode  *string `json:"phoneCode"`
	Department *string `json:"department"`
}

// ChangePasswordRequest is the body of PUT /api/user/password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=8"`
}

// UserResponse is the public shape of a user. The password hash never leaves the service.
type UserResponse struct {
	UserID     string    `json:"userID"`
	Email      string    `json:"email"`
	Name       string    `json:"name"`
	Role       string    `json:"role"`
	Status     string    `json:"status"`
	Phone      string    `json:"phone"`
	PhoneCode  string    `json:"phoneCode"`
	Department string    `json:"department"`
	CreatedAt  time.Time `json:"createdAt"`
}

// ToUserResponse converts a domain.User to UserResponse DTO
func ToUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		UserID:     user.UserID,
		Email:      user.Email,
		Name:       user.Name,
		Role:       string(user.Role),
		Status:     string(user.Status),
		Phone:      user.Phone,
		PhoneCode:  user.PhoneCode,
		Department: user.Department,
		CreatedAt:  user.CreatedAt,
	}
}

// ListUsersResponse wraps the list of users.
type ListUsersResponse struct {
	Users []UserResponse `json:"users"`
}

// ToListUserResponse converts a slice of domain.User to ListUsersResponse DTO
func ToListUserResponse(users []domain.User) ListUsersResponse {
	userResponses := make([]UserResponse, len(users))
	for i := range users {
		userResponses[i] = ToUserResponse(&users[i])
	}
	return ListUsersResponse{
		Users: userResponses,
	}
}
