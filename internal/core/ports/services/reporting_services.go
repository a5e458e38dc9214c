package services

import (
	"context"
	"io"

	"github.com/SscSPs/docflow_app/internal/core/domain"
	"github.com/SscSPs/docflow_app/internal/dto"
)

// DashboardSvc aggregates document counts.
type DashboardSvc interface {
	GetDashboard(ctx context.Context, params dto.DashboardParams) (*domain.Dashboard, error)
}

// ReportSvc lists and exports documents for reporting.
type ReportSvc interface {
	// ReportDocuments lists documents scoped by actor's role.
	ReportDocuments(ctx context.Context, params dto.ReportParams, actor domain.Identity) (*domain.Page[domain.DocumentView], error)

	// ExportDocuments writes every matching document as an xlsx workbook.
	ExportDocuments(ctx context.Context, params dto.ReportParams, actor domain.Identity, w io.Writer) error
}

// ReportingSvcFacade combines dashboard and report services
type ReportingSvcFacade interface {
	DashboardSvc
	ReportSvc
}
