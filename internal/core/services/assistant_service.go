package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/docflow_app/internal/apperrors"
	"github.com/SscSPs/docflow_app/internal/core/domain"
	portsrepo "github.com/SscSPs/docflow_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/docflow_app/internal/core/ports/services"
	"github.com/samber/lo"
)

// maxTitleMatches caps SearchTitles.
const maxTitleMatches = 10

// assistantService answers the assistant's lookups over documents and
// their audit trail.
type assistantService struct {
	BaseService
	documentRepo portsrepo.DocumentReader
	historyRepo  portsrepo.HistoryReader
	calendar     domain.WorkCalendar
}

// NewAssistantService creates the assistant query service.
func NewAssistantService(documentRepo portsrepo.DocumentReader, historyRepo portsrepo.HistoryReader, opts ...Option) portssvc.AssistantSvcFacade {
	svc := &assistantService{
		documentRepo: documentRepo,
		historyRepo:  historyRepo,
		calendar:     domain.DefaultCalendar,
	}
	svc.apply(opts)
	return svc
}

var _ portssvc.AssistantSvcFacade = (*assistantService)(nil)

func (s *assistantService) VerifyDocument(ctx context.Context, query string) (*domain.DocumentStatusReport, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, apperrors.NewValidationFailedError("a search text is required")
	}

	doc, err := s.documentRepo.FindFirstByText(ctx, query)
	if err != nil {
		return nil, err
	}
	lastActionAt, err := s.historyRepo.LatestActionAt(ctx, doc.DocumentID)
	if err != nil {
		s.LogError(ctx, err, "Failed to read latest action", slog.Int64("document_id", doc.DocumentID))
		return nil, err
	}

	return &domain.DocumentStatusReport{
		DocumentID:   doc.DocumentID,
		Title:        doc.Title,
		Description:  doc.Description,
		StateName:    doc.StateName,
		LastActionAt: lastActionAt,
	}, nil
}

func (s *assistantService) PendingReminders(ctx context.Context, userID int64) ([]domain.DocumentRef, error) {
	if userID < 1 {
		return nil, apperrors.NewValidationFailedError("a valid user ID is required")
	}
	docs, err := s.documentRepo.ListByAssignee(ctx, userID, lo.ToPtr(domain.StatePending))
	if err != nil {
		return nil, err
	}
	return lo.Map(docs, func(d domain.DocumentView, _ int) domain.DocumentRef {
		return domain.DocumentRef{DocumentID: d.DocumentID, Title: d.Title}
	}), nil
}

// ActionHistory lists userID's audit entries. A date-only upper bound
// covers the whole day.
func (s *assistantService) ActionHistory(ctx context.Context, userID int64, from, to *time.Time) ([]domain.HistoryRecord, error) {
	if userID < 1 {
		return nil, apperrors.NewValidationFailedError("a valid user ID is required")
	}
	if to != nil && isMidnight(*to) {
		to = lo.ToPtr(to.AddDate(0, 0, 1).Add(-time.Nanosecond))
	}
	if from != nil && to != nil && from.After(*to) {
		return nil, apperrors.NewValidationFailedError("from must not be after to")
	}
	return s.historyRepo.ListByUser(ctx, userID, from, to)
}

func isMidnight(t time.Time) bool {
	h, m, sec := t.Clock()
	return h == 0 && m == 0 && sec == 0 && t.Nanosecond() == 0
}

func (s *assistantService) SearchTitles(ctx context.Context, query string) ([]domain.DocumentRef, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, apperrors.NewValidationFailedError("search text must not be empty")
	}
	return s.documentRepo.SearchTitles(ctx, query, maxTitleMatches)
}

// DueReminders classifies every pending document against today's date.
// Documents not yet due are left out.
func (s *assistantService) DueReminders(ctx context.Context) ([]domain.DueReminder, error) {
	pending, err := s.documentRepo.ListPending(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list pending documents")
		return nil, err
	}

	today := s.Clock()
	reminders := make([]domain.DueReminder, 0, len(pending))
	for _, d := range pending {
		anchor := d.ReferenceAt.In(today.Location())
		status := domain.ClassifyDeadline(s.calendar.ElapsedWorkingDays(anchor, today))
		if status == domain.NotDue {
			continue
		}

		due := s.calendar.ProjectedDueDate(anchor)
		msg := fmt.Sprintf("%s expired, was due on %s", d.Title, due.Weekday())
		if status == domain.DueSoon {
			msg = fmt.Sprintf("%s is about to expire, due on %s", d.Title, due.Weekday())
		}
		reminders = append(reminders, domain.DueReminder{
			DocumentID: d.DocumentID,
			Title:      d.Title,
			AssigneeID: d.AssigneeID,
			Status:     status,
			DueDate:    due,
			Message:    msg,
		})
	}
	return reminders, nil
}

// WeeklySummary counts active documents by state whose aging anchor falls
// within the last seven days.
func (s *assistantService) WeeklySummary(ctx context.Context) ([]domain.StateCount, error) {
	now := s.Clock()
	y, m, d := now.Date()
	from := time.Date(y, m, d, 0, 0, 0, 0, now.Location()).AddDate(0, 0, -7)

	counts, err := s.documentRepo.CountByStateSince(ctx, from, now)
	if err != nil {
		s.LogError(ctx, err, "Failed to build weekly summary")
		return nil, err
	}
	for i := range counts {
		counts[i].Message = fmt.Sprintf("%d documents in state %s", counts[i].Count, counts[i].StateName)
	}
	return counts, nil
}
