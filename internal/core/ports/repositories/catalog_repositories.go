package repositories

import (
	"context"

	"github.com/SscSPs/docflow_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// CatalogReader reads lookup tables.
type CatalogReader interface {
	// ListActive returns active rows of kind ordered by id.
	ListActive(ctx context.Context, kind domain.CatalogKind) ([]domain.CatalogItem, error)

	// FindByID returns one row of kind regardless of its active flag.
	FindByID(ctx context.Context, kind domain.CatalogKind, id int64) (*domain.CatalogItem, error)

	// FindActiveStateTx resolves a state inside a transaction.
	// Returns apperrors.ErrNotFound when absent or inactive.
	FindActiveStateTx(ctx context.Context, tx pgx.Tx, state domain.DocumentState) (*domain.CatalogItem, error)
}

// CatalogWriter maintains the administrable lookup tables.
type CatalogWriter interface {
	CreateItem(ctx context.Context, kind domain.CatalogKind, name string) (int64, error)
	RenameItem(ctx context.Context, kind domain.CatalogKind, id int64, name string) error
	SetItemActive(ctx context.Context, kind domain.CatalogKind, id int64, active bool) error
}

// CatalogRepositoryFacade combines all catalog repository interfaces
type CatalogRepositoryFacade interface {
	CatalogReader
	CatalogWriter
}
