package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/SscSPs/docflow_app/internal/apperrors"
	"github.com/SscSPs/docflow_app/internal/core/domain"
	portsrepo "github.com/SscSPs/docflow_app/internal/core/ports/repositories"
	"github.com/SscSPs/docflow_app/internal/models"
	"github.com/SscSPs/docflow_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const userSelect = `
	SELECT u.user_id, u.first_name, u.last_name, u.email, u.password_hash, u.role_id,
		r.name AS role_name, u.department_id, u.is_active, u.whatsapp_number
	FROM users u
	LEFT JOIN roles r ON r.role_id = u.role_id`

type PgxUserRepository struct {
	BaseRepository
}

func newPgxUserRepository(pool *pgxpool.Pool) portsrepo.UserRepositoryFacade {
	return &PgxUserRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxUserRepository implements portsrepo.UserRepositoryFacade
var _ portsrepo.UserRepositoryFacade = (*PgxUserRepository)(nil)

func findOneUser(ctx context.Context, q querier, query string, args ...any) (*domain.User, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewPersistenceError("failed to query user", err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.User])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("user")
		}
		return nil, apperrors.NewPersistenceError("failed to scan user", err)
	}
	u := mapping.ToDomainUser(m)
	return &u, nil
}

func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID int64) (*domain.User, error) {
	return r.FindUserByIDTx(ctx, nil, userID)
}

// FindUserByIDTx reads through tx when given, otherwise through the pool.
func (r *PgxUserRepository) FindUserByIDTx(ctx context.Context, tx pgx.Tx, userID int64) (*domain.User, error) {
	return findOneUser(ctx, r.pick(tx), userSelect+" WHERE u.user_id = $1 AND u.is_active", userID)
}

func (r *PgxUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return findOneUser(ctx, r.Pool, userSelect+" WHERE LOWER(u.email) = LOWER($1) AND u.is_active", strings.TrimSpace(email))
}

func (r *PgxUserRepository) FindFirstActiveUserByRole(ctx context.Context, role domain.Role) (*domain.User, error) {
	return r.FindFirstActiveUserByRoleTx(ctx, nil, role)
}

// FindFirstActiveUserByRoleTx returns the active user with the lowest id holding role.
func (r *PgxUserRepository) FindFirstActiveUserByRoleTx(ctx context.Context, tx pgx.Tx, role domain.Role) (*domain.User, error) {
	return findOneUser(ctx, r.pick(tx), userSelect+" WHERE u.role_id = $1 AND u.is_active ORDER BY u.user_id LIMIT 1", int64(role))
}

func (r *PgxUserRepository) ListActiveUsers(ctx context.Context, departmentID *int64) ([]domain.User, error) {
	w := &whereBuilder{}
	w.addRaw("u.is_active")
	if departmentID != nil {
		w.add("u.department_id = ?", *departmentID)
	}
	rows, err := r.Pool.Query(ctx, userSelect+w.String()+" ORDER BY u.first_name, u.last_name, u.user_id", w.args...)
	if err != nil {
		return nil, apperrors.NewPersistenceError("failed to query users", err)
	}
	users, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.User])
	if err != nil {
		return nil, apperrors.NewPersistenceError("failed to scan users", err)
	}
	return mapping.ToDomainUserSlice(users), nil
}

func (r *PgxUserRepository) ListUsers(ctx context.Context) ([]domain.User, error) {
	rows, err := r.Pool.Query(ctx, userSelect+" ORDER BY u.user_id")
	if err != nil {
		return nil, apperrors.NewPersistenceError("failed to query users", err)
	}
	users, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.User])
	if err != nil {
		return nil, apperrors.NewPersistenceError("failed to scan users", err)
	}
	return mapping.ToDomainUserSlice(users), nil
}

func (r *PgxUserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.Pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE LOWER(email) = LOWER($1))`, strings.TrimSpace(email)).Scan(&exists)
	if err != nil {
		return false, apperrors.NewPersistenceError("failed to check email", err)
	}
	return exists, nil
}

func (r *PgxUserRepository) EmailTakenByOther(ctx context.Context, email string, userID int64) (bool, error) {
	var taken bool
	err := r.Pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE LOWER(email) = LOWER($1) AND user_id <> $2)`,
		strings.TrimSpace(email), userID).Scan(&taken)
	if err != nil {
		return false, apperrors.NewPersistenceError("failed to check email", err)
	}
	return taken, nil
}

func (r *PgxUserRepository) SaveUser(ctx context.Context, user domain.User) (int64, error) {
	m := mapping.ToModelUser(user)
	query := `
		INSERT INTO users (first_name, last_name, email, password_hash, role_id, department_id, is_active, whatsapp_number)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING user_id;
	`
	var id int64
	err := r.Pool.QueryRow(ctx, query,
		m.FirstName,
		m.LastName,
		m.Email,
		m.PasswordHash,
		m.RoleID,
		m.DepartmentID,
		m.IsActive,
		m.WhatsappNumber,
	).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, apperrors.NewConflictError(fmt.Sprintf("a user with email %s already exists", m.Email))
		}
		if isForeignKeyViolation(err) {
			return 0, apperrors.NewValidationFailedError("unknown role or department")
		}
		return 0, apperrors.NewPersistenceError("failed to save user", err)
	}
	return id, nil
}

// PatchUser updates only the non-nil columns of patch.
func (r *PgxUserRepository) PatchUser(ctx context.Context, userID int64, patch domain.UserPatch) error {
	if patch.IsEmpty() {
		return apperrors.NewValidationFailedError("nothing to update")
	}

	var sets []string
	var args []any
	set := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, column+" = "+placeholder(len(args)))
	}
	if patch.FirstName != nil {
		set("first_name", *patch.FirstName)
	}
	if patch.LastName != nil {
		set("last_name", *patch.LastName)
	}
	if patch.Email != nil {
		set("email", *patch.Email)
	}
	if patch.PasswordHash != nil {
		set("password_hash", *patch.PasswordHash)
	}
	if patch.RoleID != nil {
		set("role_id", int64(*patch.RoleID))
	}
	if patch.DepartmentID != nil {
		set("department_id", *patch.DepartmentID)
	}
	if patch.WhatsappNumber != nil {
		set("whatsapp_number", *patch.WhatsappNumber)
	}
	if patch.IsActive != nil {
		set("is_active", *patch.IsActive)
	}

	args = append(args, userID)
	query := "UPDATE users SET " + strings.Join(sets, ", ") + " WHERE user_id = " + placeholder(len(args))

	tag, err := r.Pool.Exec(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewConflictError("a user with this email already exists")
		}
		if isForeignKeyViolation(err) {
			return apperrors.NewValidationFailedError("unknown role or department")
		}
		return apperrors.NewPersistenceError(fmt.Sprintf("failed to update user %d", userID), err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("user")
	}
	return nil
}

func (r *PgxUserRepository) pick(tx pgx.Tx) querier {
	if tx != nil {
		return tx
	}
	return r.Pool
}
