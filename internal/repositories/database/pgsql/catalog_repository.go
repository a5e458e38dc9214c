package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/docflow_app/internal/apperrors"
	"github.com/SscSPs/docflow_app/internal/core/domain"
	portsrepo "github.com/SscSPs/docflow_app/internal/core/ports/repositories"
	"github.com/SscSPs/docflow_app/internal/models"
	"github.com/SscSPs/docflow_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type catalogTable struct {
	table  string
	key    string
	serial bool // false for tables keyed by fixed enum values
}

var catalogTables = map[domain.CatalogKind]catalogTable{
	domain.CatalogClassification: {table: "classifications", key: "classification_id", serial: true},
	domain.CatalogDocumentType:   {table: "document_types", key: "document_type_id", serial: true},
	domain.CatalogDepartment:     {table: "departments", key: "department_id", serial: true},
	domain.CatalogRole:           {table: "roles", key: "role_id"},
	domain.CatalogState:          {table: "document_states", key: "state_id"},
}

func tableFor(kind domain.CatalogKind) (catalogTable, error) {
	t, ok := catalogTables[kind]
	if !ok {
		return catalogTable{}, apperrors.NewValidationFailedError(fmt.Sprintf("unknown catalog %q", kind))
	}
	return t, nil
}

type PgxCatalogRepository struct {
	BaseRepository
}

func newPgxCatalogRepository(pool *pgxpool.Pool) portsrepo.CatalogRepositoryFacade {
	return &PgxCatalogRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.CatalogRepositoryFacade = (*PgxCatalogRepository)(nil)

func (r *PgxCatalogRepository) ListActive(ctx context.Context, kind domain.CatalogKind) ([]domain.CatalogItem, error) {
	t, err := tableFor(kind)
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf(`SELECT %s AS id, name, is_active FROM %s WHERE is_active ORDER BY %s`, t.key, t.table, t.key)
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewPersistenceError("failed to query "+t.table, err)
	}
	items, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.CatalogItem])
	if err != nil {
		return nil, apperrors.NewPersistenceError("failed to scan "+t.table, err)
	}
	return mapping.ToDomainCatalogItemSlice(items), nil
}

func (r *PgxCatalogRepository) FindByID(ctx context.Context, kind domain.CatalogKind, id int64) (*domain.CatalogItem, error) {
	t, err := tableFor(kind)
	if err != nil {
		return nil, err
	}
	return findCatalogItem(ctx, r.Pool, t, id, false)
}

func (r *PgxCatalogRepository) FindActiveStateTx(ctx context.Context, tx pgx.Tx, state domain.DocumentState) (*domain.CatalogItem, error) {
	return findCatalogItem(ctx, tx, catalogTables[domain.CatalogState], int64(state), true)
}

func findCatalogItem(ctx context.Context, q querier, t catalogTable, id int64, activeOnly bool) (*domain.CatalogItem, error) {
	query := fmt.Sprintf(`SELECT %s AS id, name, is_active FROM %s WHERE %s = $1`, t.key, t.table, t.key)
	if activeOnly {
		query += " AND is_active"
	}
	rows, err := q.Query(ctx, query, id)
	if err != nil {
		return nil, apperrors.NewPersistenceError("failed to query "+t.table, err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.CatalogItem])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(t.table)
		}
		return nil, apperrors.NewPersistenceError("failed to scan "+t.table, err)
	}
	item := mapping.ToDomainCatalogItem(m)
	return &item, nil
}

func (r *PgxCatalogRepository) CreateItem(ctx context.Context, kind domain.CatalogKind, name string) (int64, error) {
	t, err := tableFor(kind)
	if err != nil {
		return 0, err
	}
	if !t.serial {
		return 0, apperrors.NewValidationFailedError(t.table + " cannot be created")
	}
	var id int64
	query := fmt.Sprintf(`INSERT INTO %s (name, is_active) VALUES ($1, TRUE) RETURNING %s`, t.table, t.key)
	if err := r.Pool.QueryRow(ctx, query, name).Scan(&id); err != nil {
		if isUniqueViolation(err) {
			return 0, apperrors.NewConflictError(fmt.Sprintf("%s %q already exists", t.table, name))
		}
		return 0, apperrors.NewPersistenceError("failed to insert into "+t.table, err)
	}
	return id, nil
}

func (r *PgxCatalogRepository) RenameItem(ctx context.Context, kind domain.CatalogKind, id int64, name string) error {
	t, err := tableFor(kind)
	if err != nil {
		return err
	}
	tag, err := r.Pool.Exec(ctx, fmt.Sprintf(`UPDATE %s SET name = $1 WHERE %s = $2`, t.table, t.key), name, id)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewConflictError(fmt.Sprintf("%s %q already exists", t.table, name))
		}
		return apperrors.NewPersistenceError("failed to rename in "+t.table, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError(t.table)
	}
	return nil
}

func (r *PgxCatalogRepository) SetItemActive(ctx context.Context, kind domain.CatalogKind, id int64, active bool) error {
	t, err := tableFor(kind)
	if err != nil {
		return err
	}
	tag, err := r.Pool.Exec(ctx, fmt.Sprintf(`UPDATE %s SET is_active = $1 WHERE %s = $2`, t.table, t.key), active, id)
	if err != nil {
		return apperrors.NewPersistenceError("failed to update "+t.table, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError(t.table)
	}
	return nil
}
