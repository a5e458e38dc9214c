package services

import (
	"context"
	"time"

	"github.com/SscSPs/docflow_app/internal/core/domain"
)

// AssistantSvcFacade answers the assistant's canned lookups.
type AssistantSvcFacade interface {
	// VerifyDocument finds the first document matching query and reports its state.
	VerifyDocument(ctx context.Context, query string) (*domain.DocumentStatusReport, error)

	// PendingReminders lists the pending documents assigned to userID.
	PendingReminders(ctx context.Context, userID int64) ([]domain.DocumentRef, error)

	// ActionHistory lists what userID did within the optional bounds.
	ActionHistory(ctx context.Context, userID int64, from, to *time.Time) ([]domain.HistoryRecord, error)

	// SearchTitles returns up to ten matching titles.
	SearchTitles(ctx context.Context, query string) ([]domain.DocumentRef, error)

	// DueReminders classifies pending documents against their due date.
	DueReminders(ctx context.Context) ([]domain.DueReminder, error)

	// WeeklySummary counts last week's documents by state.
	WeeklySummary(ctx context.Context) ([]domain.StateCount, error)
}
