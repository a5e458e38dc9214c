package services

import (
	"context"
	"log/slog"
	"strings"

	"github.com/SscSPs/docflow_app/internal/apperrors"
	"github.com/SscSPs/docflow_app/internal/core/domain"
	portsrepo "github.com/SscSPs/docflow_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/docflow_app/internal/core/ports/services"
	"github.com/samber/lo"
)

// NoMatchesLabel names the placeholder row returned for empty pickers.
const NoMatchesLabel = "No matches"

const documentComboLimit = 50

var noMatches = []domain.CatalogItem{{ID: 0, Name: NoMatchesLabel}}

// administrableKinds are the lookup tables administrators may edit.
var administrableKinds = []domain.CatalogKind{
	domain.CatalogClassification,
	domain.CatalogDocumentType,
	domain.CatalogDepartment,
}

// catalogService serves lookup lists and their administration.
type catalogService struct {
	BaseService
	catalogRepo  portsrepo.CatalogRepositoryFacade
	userRepo     portsrepo.UserReader
	documentRepo portsrepo.DocumentReader
}

// NewCatalogService creates the catalog service.
func NewCatalogService(catalogRepo portsrepo.CatalogRepositoryFacade, userRepo portsrepo.UserReader, documentRepo portsrepo.DocumentReader, opts ...Option) portssvc.CatalogSvcFacade {
	svc := &catalogService{
		catalogRepo:  catalogRepo,
		userRepo:     userRepo,
		documentRepo: documentRepo,
	}
	svc.apply(opts)
	return svc
}

var _ portssvc.CatalogSvcFacade = (*catalogService)(nil)

func (s *catalogService) ListCatalog(ctx context.Context, kind domain.CatalogKind) ([]domain.CatalogItem, error) {
	items, err := s.catalogRepo.ListActive(ctx, kind)
	if err != nil {
		s.LogError(ctx, err, "Failed to list catalog", slog.String("kind", string(kind)))
		return nil, err
	}
	return items, nil
}

func (s *catalogService) ListVisibleStates(ctx context.Context, role domain.Role) ([]domain.CatalogItem, error) {
	states, err := s.catalogRepo.ListActive(ctx, domain.CatalogState)
	if err != nil {
		return nil, err
	}
	return domain.FilterVisible(role, states), nil
}

func (s *catalogService) ListUsers(ctx context.Context, departmentID *int64) ([]domain.CatalogItem, error) {
	if departmentID != nil && *departmentID < 1 {
		return nil, apperrors.NewValidationFailedError("a valid department ID is required")
	}
	users, err := s.userRepo.ListActiveUsers(ctx, departmentID)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return noMatches, nil
	}
	return lo.Map(users, func(u domain.User, _ int) domain.CatalogItem {
		return domain.CatalogItem{ID: u.UserID, Name: u.FullName(), IsActive: u.IsActive}
	}), nil
}

func (s *catalogService) SearchDocumentCombo(ctx context.Context, title string) ([]domain.CatalogItem, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, apperrors.NewValidationFailedError("a document name is required")
	}
	refs, err := s.documentRepo.SearchTitles(ctx, title, documentComboLimit)
	if err != nil {
		return nil, err
	}
	if len(refs) == 0 {
		return noMatches, nil
	}
	return lo.Map(refs, func(r domain.DocumentRef, _ int) domain.CatalogItem {
		return domain.CatalogItem{ID: r.DocumentID, Name: r.Title, IsActive: true}
	}), nil
}

func (s *catalogService) authorizeAdmin(kind domain.CatalogKind, actor domain.Identity) error {
	if !actor.IsAdministrator() {
		return apperrors.NewForbiddenError("only administrators can maintain catalogs")
	}
	if !lo.Contains(administrableKinds, kind) {
		return apperrors.NewValidationFailedError("catalog " + string(kind) + " cannot be edited")
	}
	return nil
}

func (s *catalogService) CreateCatalogItem(ctx context.Context, kind domain.CatalogKind, name string, actor domain.Identity) (*domain.CatalogItem, error) {
	if err := s.authorizeAdmin(kind, actor); err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.NewValidationFailedError("name is required")
	}

	id, err := s.catalogRepo.CreateItem(ctx, kind, name)
	if err != nil {
		s.LogError(ctx, err, "Failed to create catalog item", slog.String("kind", string(kind)))
		return nil, err
	}
	s.LogInfo(ctx, "Catalog item created", slog.String("kind", string(kind)), slog.Int64("id", id))
	return &domain.CatalogItem{ID: id, Name: name, IsActive: true}, nil
}

func (s *catalogService) RenameCatalogItem(ctx context.Context, kind domain.CatalogKind, id int64, name string, actor domain.Identity) error {
	if err := s.authorizeAdmin(kind, actor); err != nil {
		return err
	}
	name = strings.TrimSpace(name)
	if id < 1 || name == "" {
		return apperrors.NewValidationFailedError("a valid ID and name are required")
	}
	return s.catalogRepo.RenameItem(ctx, kind, id, name)
}

func (s *catalogService) DeactivateCatalogItem(ctx context.Context, kind domain.CatalogKind, id int64, actor domain.Identity) error {
	if err := s.authorizeAdmin(kind, actor); err != nil {
		return err
	}
	if id < 1 {
		return apperrors.NewValidationFailedError("a valid ID is required")
	}
	if err := s.catalogRepo.SetItemActive(ctx, kind, id, false); err != nil {
		return err
	}
	s.LogInfo(ctx, "Catalog item deactivated", slog.String("kind", string(kind)), slog.Int64("id", id))
	return nil
}
