package mapping

import (
	"github.com/SscSPs/docflow_app/internal/core/domain"
	"github.com/SscSPs/docflow_app/internal/models"
	"github.com/samber/lo"
)

// ToDomainCatalogItem converts a lookup row
func ToDomainCatalogItem(m models.CatalogItem) domain.CatalogItem {
	return domain.CatalogItem{ID: m.ID, Name: m.Name, IsActive: m.IsActive}
}

// ToDomainCatalogItemSlice converts lookup rows
func ToDomainCatalogItemSlice(ms []models.CatalogItem) []domain.CatalogItem {
	return lo.Map(ms, func(m models.CatalogItem, _ int) domain.CatalogItem {
		return ToDomainCatalogItem(m)
	})
}

// ToDomainNamedCountSlice converts grouped counts
func ToDomainNamedCountSlice(ms []models.NamedCount) []domain.NamedCount {
	return lo.Map(ms, func(m models.NamedCount, _ int) domain.NamedCount {
		return domain.NamedCount{ID: m.ID, Name: m.Name, Count: int(m.Count)}
	})
}
