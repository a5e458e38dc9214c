package services

import (
	"context"

	"github.com/SscSPs/docflow_app/internal/core/domain"
)

// CatalogReaderSvc serves the lookup lists used by forms.
type CatalogReaderSvc interface {
	// ListCatalog returns active classifications, document types, departments or roles.
	ListCatalog(ctx context.Context, kind domain.CatalogKind) ([]domain.CatalogItem, error)

	// ListVisibleStates returns the active states role may select.
	ListVisibleStates(ctx context.Context, role domain.Role) ([]domain.CatalogItem, error)

	// ListUsers returns active users as lookup rows, optionally by department.
	ListUsers(ctx context.Context, departmentID *int64) ([]domain.CatalogItem, error)

	// SearchDocumentCombo returns documents by title for a picker.
	SearchDocumentCombo(ctx context.Context, title string) ([]domain.CatalogItem, error)
}

// CatalogAdminSvc maintains classifications, document types and departments.
type CatalogAdminSvc interface {
	CreateCatalogItem(ctx context.Context, kind domain.CatalogKind, name string, actor domain.Identity) (*domain.CatalogItem, error)
	RenameCatalogItem(ctx context.Context, kind domain.CatalogKind, id int64, name string, actor domain.Identity) error
	DeactivateCatalogItem(ctx context.Context, kind domain.CatalogKind, id int64, actor domain.Identity) error
}

// CatalogSvcFacade combines all catalog service interfaces
type CatalogSvcFacade interface {
	CatalogReaderSvc
	CatalogAdminSvc
}
