package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/docflow_app/internal/core/domain"
)

// ReportingRepositoryFacade runs the aggregate read queries.
type ReportingRepositoryFacade interface {
	// CountByState counts active documents per state with reference_at in [from, to).
	CountByState(ctx context.Context, from, to *time.Time) ([]domain.NamedCount, error)

	// CountByClassification counts active documents per classification.
	CountByClassification(ctx context.Context, from, to *time.Time) ([]domain.NamedCount, error)

	// CountByDocumentType counts active documents per document type.
	CountByDocumentType(ctx context.Context, from, to *time.Time) ([]domain.NamedCount, error)

	// ListReport returns one page of documents matching the report filter.
	ListReport(ctx context.Context, filter domain.ReportFilter) ([]domain.DocumentView, int, error)
}
