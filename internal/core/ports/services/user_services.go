package services

import (
	"context"

	"github.com/SscSPs/fin_manager_app/internal/core/domain"
	"github.com/SscSPs/fin_manager_app/internal/dto"
)

// UserReaderSvc defines read operations for user data
type UserReaderSvc interface {
	// GetUserByID retrieves a user by ID.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)

	// ListUsers retrieves a paginated list of users.
	ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error)
}

// UserWriterSvc defines write operations for user data
type UserWriterSvc interface {
	// Signup registers a self-service user with role user.
	Signup(ctx context.Context, req dto.SignupRequest) (*domain.User, error)

	// CreateUser creates a new user on behalf of an administrator.
	CreateUser(ctx context.Context, req dto.CreateUserRequest, creatorUserID string) (*domain.User, error)

	// UpdateUser updates an existing user.
	UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest, requestingUserID string) (*domain.User, error)

	// UpdateProfile lets a user edit their own profile fields.
	UpdateProfile(ctx context.Context, userID string, req dto.UpdateProfileRequest) (*domain.User, error)

	// ChangePassword verifies the current password and stores a new hash.
	ChangePassword(ctx context.Context, userID string, req dto.ChangePasswordRequest) error
}

// UserLifecycleSvc defines operations for managing user lifecycle
type UserLifecycleSvc interface {
	// DeleteUser removes a user. Users cannot delete themselves.
	DeleteUser(ctx context.Context, userID string, requestingUserID string) error
}

// UserSvcFacade combines all user-related service interfaces
type UserSvcFacade interface {
	UserReaderSvc
	UserWriterSvc
	UserLifecycleSvc
}
