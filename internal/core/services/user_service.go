package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/fin_manager_app/internal/apperrors"
	"github.com/SscSPs/fin_manager_app/internal/core/domain"
	portsrepo "github.com/SscSPs/fin_manager_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/fin_manager_app/internal/core/ports/services"
	"github.com/SscSPs/fin_manager_app/internal/dto"
	"github.com/SscSPs/fin_manager_app/internal/utils"
	"github.com/google/uuid"
)

// userService implements the UserSvcFacade interface
type userService struct {
	BaseService
	userRepo  portsrepo.UserRepositoryFacade
	passwords utils.PasswordHasher
	now       func() time.Time
}

// NewUserService creates a new user service
func NewUserService(userRepo portsrepo.UserRepositoryFacade, passwords utils.PasswordHasher) portssvc.UserSvcFacade {
	return &userService{userRepo: userRepo, passwords: passwords, now: time.Now}
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

// NormalizeEmail lower-cases and trims an email address. Emails are stored this way.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find user by ID", slog.String("user_id", userID))
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error) {
	users, err := s.userRepo.FindUsers(ctx, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list users", slog.Int("limit", limit), slog.Int("offset", offset))
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	if users == nil {
		return []domain.User{}, nil
	}
	return users, nil
}

func (s *userService) Signup(ctx context.Context, req dto.SignupRequest) (*domain.User, error) {
	return s.createUser(ctx, newUserParams{
		email:      req.Email,
		name:       req.Name,
		password:   req.Password,
		role:       domain.RoleUser,
		phone:      req.Phone,
		phoneCode:  req.PhoneCode,
		department: req.Department,
	})
}

func (s *userService) CreateUser(ctx context.Context, req dto.CreateUserRequest, creatorUserID string) (*domain.User, error) {
	user, err := s.createUser(ctx, newUserParams{
		email:      req.Email,
		name:       req.Name,
		password:   req.Password,
		role:       req.Role,
		phone:      req.Phone,
		phoneCode:  req.PhoneCode,
		department: req.Department,
	})
	if err != nil {
		return nil, err
	}
	s.LogInfo(ctx, "User created by administrator",
		slog.String("user_id", user.UserID),
		slog.String("creator_user_id", creatorUserID))
	return user, nil
}

type newUserParams struct {
	email, name, password        string
	role                         domain.UserRole
	phone, phoneCode, department string
}

func (s *userService) createUser(ctx context.Context, p newUserParams) (*domain.User, error) {
	email := NormalizeEmail(p.email)
	if email == "" || strings.TrimSpace(p.name) == "" {
		return nil, fmt.Errorf("%w: email and name are required", apperrors.ErrValidation)
	}
	if !p.role.Valid() {
		return nil, fmt.Errorf("%w: invalid role %q", apperrors.ErrValidation, p.role)
	}

	existing, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to check for existing user", slog.String("email", email))
		return nil, fmt.Errorf("failed to check for existing user: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: a user with this email already exists", apperrors.ErrDuplicate)
	}

	var hash string
	if p.password != "" {
		hash, err = s.passwords.Hash(p.password)
		if err != nil {
			if errors.Is(err, apperrors.ErrValidation) {
				return nil, err
			}
			s.LogError(ctx, err, "Failed to hash password")
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
	}

	now := s.now()
	user := domain.User{
		UserID:       uuid.NewString(),
		Email:        email,
		Name:         strings.TrimSpace(p.name),
		Role:         p.role,
		Status:       domain.StatusActive,
		Phone:        p.phone,
		PhoneCode:    p.phoneCode,
		Department:   p.department,
		PasswordHash: hash,
		AuditFields:  domain.AuditFields{CreatedAt: now, UpdatedAt: now},
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to save user", slog.String("user_id", user.UserID))
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.LogInfo(ctx, "User created", slog.String("user_id", user.UserID), slog.String("role", string(user.Role)))
	return &user, nil
}

func (s *userService) UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest, requestingUserID string) (*domain.User, error) {
	user, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if userID == requestingUserID {
		if req.Role != nil && *req.Role != user.Role {
			return nil, fmt.Errorf("%w: you cannot change your own role", apperrors.ErrValidation)
		}
		if req.Status != nil && *req.Status != user.Status {
			return nil, fmt.Errorf("%w: you cannot change your own status", apperrors.ErrValidation)
		}
	}

	if req.Name != nil {
		user.Name = strings.TrimSpace(*req.Name)
	}
	if req.Role != nil {
		if !req.Role.Valid() {
			return nil, fmt.Errorf("%w: invalid role %q", apperrors.ErrValidation, *req.Role)
		}
		user.Role = *req.Role
	}
	if req.Status != nil {
		if !req.Status.Valid() {
			return nil, fmt.Errorf("%w: invalid status %q", apperrors.ErrValidation, *req.Status)
		}
		user.Status = *req.Status
	}
	applyProfile(user, req.Phone, req.PhoneCode, req.Department)
	user.UpdatedAt = s.now()

	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		s.LogError(ctx, err, "Failed to update user", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	s.LogInfo(ctx, "User updated", slog.String("user_id", userID), slog.String("updated_by", requestingUserID))
	return user, nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID string, req dto.UpdateProfileRequest) (*domain.User, error) {
	user, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name cannot be empty", apperrors.ErrValidation)
		}
		user.Name = name
	}
	applyProfile(user, req.Phone, req.PhoneCode, req.Department)
	user.UpdatedAt = s.now()

	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		s.LogError(ctx, err, "Failed to update profile", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return user, nil
}

func applyProfile(user *domain.User, phone, phoneCode, department *string) {
	if phone != nil {
		user.Phone = *phone
	}
	if phoneCode != nil {
		user.PhoneCode = *phoneCode
	}
	if department != nil {
		user.Department = *department
	}
}

func (s *userService) ChangePassword(ctx context.Context, userID string, req dto.ChangePasswordRequest) error {
	user, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if !user.HasLocalPassword() {
		return fmt.Errorf("%w: this account's password is managed by the identity provider", apperrors.ErrValidation)
	}
	if !s.passwords.Matches(req.CurrentPassword, user.PasswordHash) {
		s.LogWarn(ctx, "Password change rejected: wrong current password", slog.String("user_id", userID))
		return fmt.Errorf("%w: current password is incorrect", apperrors.ErrValidation)
	}

	hash, err := s.passwords.Hash(req.NewPassword)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			return err
		}
		s.LogError(ctx, err, "Failed to hash password")
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.userRepo.UpdatePasswordHash(ctx, userID, hash, s.now()); err != nil {
		s.LogError(ctx, err, "Failed to store new password", slog.String("user_id", userID))
		return fmt.Errorf("failed to change password: %w", err)
	}

	s.LogInfo(ctx, "Password changed", slog.String("user_id", userID))
	return nil
}

func (s *userService) DeleteUser(ctx context.Context, userID string, requestingUserID string) error {
	if userID == requestingUserID {
		return fmt.Errorf("%w: you cannot delete your own account", apperrors.ErrValidation)
	}
	if err := s.userRepo.DeleteUser(ctx, userID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to delete user", slog.String("user_id", userID))
		}
		return err
	}
	s.LogInfo(ctx, "User deleted", slog.String("user_id", userID), slog.String("deleted_by", requestingUserID))
	return nil
}
