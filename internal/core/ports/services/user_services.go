package services

import (
	"context"

	"github.com/SscSPs/docflow_app/internal/core/domain"
	"github.com/SscSPs/docflow_app/internal/dto"
)

// UserReaderSvc defines read operations for user data
type UserReaderSvc interface {
	// GetUserByID retrieves an active user.
	GetUserByID(ctx context.Context, userID int64) (*domain.User, error)

	// ListUsers returns every user, inactive ones included. Administrators only.
	ListUsers(ctx context.Context, actor domain.Identity) ([]domain.User, error)
}

// UserWriterSvc defines write operations for user data
type UserWriterSvc interface {
	// CreateUser registers a new user. Administrators only.
	CreateUser(ctx context.Context, req dto.CreateUserRequest, actor domain.Identity) (*domain.User, error)

	// UpdateUser changes a user. Callers may update themselves, administrators anyone.
	UpdateUser(ctx context.Context, userID int64, req dto.UpdateUserRequest, actor domain.Identity) error

	// DeactivateUser disables a user's account. Administrators only.
	DeactivateUser(ctx context.Context, userID int64, actor domain.Identity) error
}

// UserAuthSvc defines operations for user authentication
type UserAuthSvc interface {
	// AuthenticateUser checks email and password and returns the user.
	AuthenticateUser(ctx context.Context, email, password string) (*domain.User, error)
}

// UserSvcFacade combines all user-related service interfaces
type UserSvcFacade interface {
	UserReaderSvc
	UserWriterSvc
	UserAuthSvc
}
