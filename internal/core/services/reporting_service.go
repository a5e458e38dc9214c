package services

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/SscSPs/docflow_app/internal/apperrors"
	"github.com/SscSPs/docflow_app/internal/core/domain"
	portsrepo "github.com/SscSPs/docflow_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/docflow_app/internal/core/ports/services"
	"github.com/SscSPs/docflow_app/internal/dto"
	"github.com/SscSPs/docflow_app/internal/utils"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// Progress chart labels.
const (
	ProgressInProgressLabel = "In progress"
	ProgressAttendedLabel   = "Attended"
)

var hundred = decimal.NewFromInt(100)

// reportingService builds the dashboard and the document report.
type reportingService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepositoryFacade
}

// NewReportingService creates a new reporting service.
func NewReportingService(reportingRepo portsrepo.ReportingRepositoryFacade, opts ...Option) portssvc.ReportingSvcFacade {
	svc := &reportingService{reportingRepo: reportingRepo}
	svc.apply(opts)
	return svc
}

var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

// dayStart reads the calendar date of t in the service location.
func (s *reportingService) dayStart(t time.Time) time.Time {
	loc := s.Clock().Location()
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// dateRange turns inclusive calendar dates into a half-open range.
func (s *reportingService) dateRange(from, to *time.Time) (*time.Time, *time.Time, error) {
	var start, end *time.Time
	if from != nil {
		start = lo.ToPtr(s.dayStart(*from))
	}
	if to != nil {
		end = lo.ToPtr(s.dayStart(*to).AddDate(0, 0, 1))
	}
	if start != nil && end != nil && !start.Before(*end) {
		return nil, nil, apperrors.NewValidationFailedError("from must not be after to")
	}
	return start, end, nil
}

func (s *reportingService) GetDashboard(ctx context.Context, params dto.DashboardParams) (*domain.Dashboard, error) {
	var from, to *time.Time
	if start, end, ok := domain.DashboardPeriod(params.PeriodID).Range(s.Clock()); ok {
		from, to = &start, &end
	} else {
		var err error
		if from, to, err = s.dateRange(params.From, params.To); err != nil {
			return nil, err
		}
	}

	byState, err := s.reportingRepo.CountByState(ctx, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to count documents by state")
		return nil, err
	}
	byClassification, err := s.reportingRepo.CountByClassification(ctx, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to count documents by classification")
		return nil, err
	}
	byType, err := s.reportingRepo.CountByDocumentType(ctx, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to count documents by document type")
		return nil, err
	}

	return &domain.Dashboard{
		From:             from,
		To:               to,
		ByState:          byState,
		ByClassification: byClassification,
		Progress:         progressShares(byState),
		ByDocumentType:   byType,
	}, nil
}

// progressShares splits pending against processed documents. Both shares
// are zero when neither state has documents.
func progressShares(byState []domain.NamedCount) []domain.Share {
	countOf := func(state domain.DocumentState) int {
		c, _ := lo.Find(byState, func(n domain.NamedCount) bool { return n.ID == int64(state) })
		return c.Count
	}
	pending := countOf(domain.StatePending)
	processed := countOf(domain.StateProcessed)

	share := func(label string, n int) domain.Share {
		pct := decimal.Zero
		if total := pending + processed; total > 0 {
			pct = decimal.NewFromInt(int64(n)).Mul(hundred).Div(decimal.NewFromInt(int64(total))).Round(2)
		}
		return domain.Share{Label: label, Count: n, Percentage: pct}
	}
	return []domain.Share{
		share(ProgressInProgressLabel, pending),
		share(ProgressAttendedLabel, processed),
	}
}

// reportFilter scopes the report to what actor may see: assistants their
// own documents, front desk every front desk user's documents.
func (s *reportingService) reportFilter(params dto.ReportParams, actor domain.Identity) (domain.ReportFilter, error) {
	from, to, err := s.dateRange(params.From, params.To)
	if err != nil {
		return domain.ReportFilter{}, err
	}
	filter := domain.ReportFilter{
		ClassificationID: params.ClassificationID,
		From:             from,
		To:               to,
	}
	if params.StateID != nil {
		filter.StateID = lo.ToPtr(domain.DocumentState(*params.StateID))
	}

	switch actor.RoleID {
	case domain.RoleAdministrator:
	case domain.RoleAssistant:
		filter.AssigneeID = lo.ToPtr(actor.UserID)
	case domain.RoleFrontDesk:
		filter.AssigneeRoleID = lo.ToPtr(domain.RoleFrontDesk)
	default:
		return domain.ReportFilter{}, apperrors.NewForbiddenError("role cannot view reports")
	}
	if !actor.IsAdministrator() && filter.StateID != nil && !domain.CanSeeState(actor.RoleID, *filter.StateID) {
		return domain.ReportFilter{}, apperrors.NewForbiddenError("state is not available for your role")
	}
	return filter, nil
}

func (s *reportingService) ReportDocuments(ctx context.Context, params dto.ReportParams, actor domain.Identity) (*domain.Page[domain.DocumentView], error) {
	filter, err := s.reportFilter(params, actor)
	if err != nil {
		return nil, err
	}
	filter.PageNumber, filter.PageSize = domain.NormalizePaging(params.PageNumber, params.PageSize)

	items, total, err := s.reportingRepo.ListReport(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list report", slog.Int64("user_id", actor.UserID))
		return nil, err
	}
	return &domain.Page[domain.DocumentView]{
		Items:      items,
		Total:      total,
		PageNumber: filter.PageNumber,
		PageSize:   filter.PageSize,
	}, nil
}

// ExportDocuments writes every matching document, unpaginated.
func (s *reportingService) ExportDocuments(ctx context.Context, params dto.ReportParams, actor domain.Identity, w io.Writer) error {
	filter, err := s.reportFilter(params, actor)
	if err != nil {
		return err
	}
	items, _, err := s.reportingRepo.ListReport(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list report for export", slog.Int64("user_id", actor.UserID))
		return err
	}
	if err := utils.WriteDocumentsWorkbook(w, items); err != nil {
		s.LogError(ctx, err, "Failed to render report workbook")
		return err
	}
	return nil
}
