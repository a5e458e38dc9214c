package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/docflow_app/internal/apperrors"
	"github.com/SscSPs/docflow_app/internal/core/domain"
	portsrepo "github.com/SscSPs/docflow_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/docflow_app/internal/core/ports/services"
	"github.com/SscSPs/docflow_app/internal/dto"
	"github.com/SscSPs/docflow_app/internal/utils"
	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
)

var errInvalidCredentials = apperrors.NewUnauthorizedError("invalid email or password")

// userService manages users and checks their credentials.
type userService struct {
	BaseService
	userRepo    portsrepo.UserRepositoryFacade
	catalogRepo portsrepo.CatalogReader
	validate    *validator.Validate
}

// NewUserService creates a new UserService.
func NewUserService(userRepo portsrepo.UserRepositoryFacade, catalogRepo portsrepo.CatalogReader, opts ...Option) portssvc.UserSvcFacade {
	svc := &userService{
		userRepo:    userRepo,
		catalogRepo: catalogRepo,
		validate:    validator.New(),
	}
	svc.apply(opts)
	return svc
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

func (s *userService) GetUserByID(ctx context.Context, userID int64) (*domain.User, error) {
	if userID < 1 {
		return nil, apperrors.NewValidationFailedError("a valid user ID is required")
	}
	return s.userRepo.FindUserByID(ctx, userID)
}

func (s *userService) ListUsers(ctx context.Context, actor domain.Identity) ([]domain.User, error) {
	if !actor.IsAdministrator() {
		return nil, apperrors.NewForbiddenError("only administrators can list users")
	}
	return s.userRepo.ListUsers(ctx)
}

// CreateUser registers a user with a hashed password.
func (s *userService) CreateUser(ctx context.Context, req dto.CreateUserRequest, actor domain.Identity) (*domain.User, error) {
	if !actor.IsAdministrator() {
		return nil, apperrors.NewForbiddenError("only administrators can register users")
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)
	if err := s.validate.Struct(req); err != nil {
		return nil, apperrors.NewValidationFailedError(fmt.Sprintf("invalid user: %v", err))
	}

	role, err := s.catalogRepo.FindByID(ctx, domain.CatalogRole, req.RoleID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewValidationFailedError("unknown role")
		}
		return nil, err
	}

	exists, err := s.userRepo.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.NewConflictError("a user with this email already exists")
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		s.LogError(ctx, err, "Failed to hash password")
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := domain.User{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          req.Email,
		PasswordHash:   hash,
		RoleID:         domain.Role(req.RoleID),
		RoleName:       role.Name,
		DepartmentID:   req.DepartmentID,
		IsActive:       true,
		WhatsappNumber: req.WhatsappNumber,
	}
	id, err := s.userRepo.SaveUser(ctx, user)
	if err != nil {
		s.LogError(ctx, err, "Failed to save user", slog.String("email", user.Email))
		return nil, err
	}
	user.UserID = id

	s.LogInfo(ctx, "User created", slog.Int64("user_id", id), slog.Int64("created_by", actor.UserID))
	return &user, nil
}

// UpdateUser applies the given fields to a user. Role and account status are
// administrator-only; a new password is hashed before it is stored.
func (s *userService) UpdateUser(ctx context.Context, userID int64, req dto.UpdateUserRequest, actor domain.Identity) error {
	if userID < 1 {
		return apperrors.NewValidationFailedError("a valid user ID is required")
	}
	if userID != actor.UserID && !actor.IsAdministrator() {
		return apperrors.NewForbiddenError("you can only update your own account")
	}
	if !actor.IsAdministrator() && (req.RoleID != nil || req.IsActive != nil) {
		return apperrors.NewForbiddenError("only administrators can change roles or account status")
	}

	trim := func(v *string) *string {
		if v == nil {
			return nil
		}
		return lo.ToPtr(strings.TrimSpace(*v))
	}
	req.FirstName = trim(req.FirstName)
	req.LastName = trim(req.LastName)
	if req.Email != nil {
		req.Email = lo.ToPtr(strings.ToLower(strings.TrimSpace(*req.Email)))
	}
	if req.Password != nil && *req.Password == "" {
		req.Password = nil
	}
	for _, v := range []*string{req.FirstName, req.LastName, req.Email} {
		if v != nil && *v == "" {
			return apperrors.NewValidationFailedError("names and email cannot be blank")
		}
	}
	if err := s.validate.Struct(req); err != nil {
		return apperrors.NewValidationFailedError(fmt.Sprintf("invalid user: %v", err))
	}

	patch := domain.UserPatch{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          req.Email,
		DepartmentID:   req.DepartmentID,
		WhatsappNumber: req.WhatsappNumber,
		IsActive:       req.IsActive,
	}
	if req.RoleID != nil {
		if _, err := s.catalogRepo.FindByID(ctx, domain.CatalogRole, *req.RoleID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return apperrors.NewValidationFailedError("unknown role")
			}
			return err
		}
		patch.RoleID = lo.ToPtr(domain.Role(*req.RoleID))
	}
	if req.Email != nil {
		taken, err := s.userRepo.EmailTakenByOther(ctx, *req.Email, userID)
		if err != nil {
			return err
		}
		if taken {
			return apperrors.NewConflictError("a user with this email already exists")
		}
	}
	if req.Password != nil {
		hash, err := utils.HashPassword(*req.Password)
		if err != nil {
			s.LogError(ctx, err, "Failed to hash password")
			return fmt.Errorf("failed to hash password: %w", err)
		}
		patch.PasswordHash = &hash
	}
	if patch.IsEmpty() {
		return apperrors.NewValidationFailedError("no fields to update")
	}

	if err := s.userRepo.PatchUser(ctx, userID, patch); err != nil {
		s.LogError(ctx, err, "Failed to update user", slog.Int64("user_id", userID))
		return err
	}
	s.LogInfo(ctx, "User updated",
		slog.Int64("user_id", userID),
		slog.Int64("updated_by", actor.UserID),
		slog.Bool("password_changed", patch.PasswordHash != nil))
	return nil
}

// DeactivateUser disables an account. Rows are kept so history entries
// still resolve the responsible user.
func (s *userService) DeactivateUser(ctx context.Context, userID int64, actor domain.Identity) error {
	if !actor.IsAdministrator() {
		return apperrors.NewForbiddenError("only administrators can deactivate users")
	}
	if userID < 1 {
		return apperrors.NewValidationFailedError("a valid user ID is required")
	}
	if userID == actor.UserID {
		return apperrors.NewValidationFailedError("you cannot deactivate your own account")
	}

	if err := s.userRepo.PatchUser(ctx, userID, domain.UserPatch{IsActive: lo.ToPtr(false)}); err != nil {
		s.LogError(ctx, err, "Failed to deactivate user", slog.Int64("user_id", userID))
		return err
	}
	s.LogInfo(ctx, "User deactivated", slog.Int64("user_id", userID), slog.Int64("deactivated_by", actor.UserID))
	return nil
}

// AuthenticateUser returns the active user matching email and password.
// Every failure looks the same to the caller.
func (s *userService) AuthenticateUser(ctx context.Context, email, password string) (*domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, errInvalidCredentials
	}

	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, errInvalidCredentials
		}
		return nil, err
	}
	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		s.LogDebug(ctx, "Password mismatch", slog.Int64("user_id", user.UserID))
		return nil, errInvalidCredentials
	}
	return user, nil
}
