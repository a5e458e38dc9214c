package repositories

import (
	"context"

	"github.com/SscSPs/docflow_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// UserReader defines read operations for user data
type UserReader interface {
	// FindUserByID retrieves an active user.
	FindUserByID(ctx context.Context, userID int64) (*domain.User, error)

	// FindUserByEmail retrieves an active user by email, case-insensitive.
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)

	// FindFirstActiveUserByRole returns the first active user holding role, by lowest id.
	FindFirstActiveUserByRole(ctx context.Context, role domain.Role) (*domain.User, error)

	// ListActiveUsers returns all active users, optionally only those in a department.
	ListActiveUsers(ctx context.Context, departmentID *int64) ([]domain.User, error)

	// ListUsers returns every user, inactive ones included.
	ListUsers(ctx context.Context) ([]domain.User, error)

	// EmailExists reports whether any user already uses email.
	EmailExists(ctx context.Context, email string) (bool, error)

	// EmailTakenByOther reports whether a user other than userID uses email.
	EmailTakenByOther(ctx context.Context, email string, userID int64) (bool, error)
}

// UserTxReader reads users inside an open transaction.
type UserTxReader interface {
	FindUserByIDTx(ctx context.Context, tx pgx.Tx, userID int64) (*domain.User, error)
	FindFirstActiveUserByRoleTx(ctx context.Context, tx pgx.Tx, role domain.Role) (*domain.User, error)
}

// UserWriter defines write operations for user data
type UserWriter interface {
	// SaveUser inserts a new user and returns its identifier.
	SaveUser(ctx context.Context, user domain.User) (int64, error)

	// PatchUser updates only the non-nil columns of patch, active or not.
	// Returns apperrors.ErrNotFound when the user does not exist.
	PatchUser(ctx context.Context, userID int64, patch domain.UserPatch) error
}

// UserRepositoryFacade combines all user-related repository interfaces
type UserRepositoryFacade interface {
	UserReader
	UserTxReader
	UserWriter
}
