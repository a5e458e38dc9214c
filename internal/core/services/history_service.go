package services

import (
	"context"
	"log/slog"
	"strings"

	"github.com/SscSPs/docflow_app/internal/apperrors"
	"github.com/SscSPs/docflow_app/internal/core/domain"
	portsrepo "github.com/SscSPs/docflow_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/docflow_app/internal/core/ports/services"
	"github.com/jackc/pgx/v5"
)

// historyService records and reads the audit trail.
type historyService struct {
	BaseService
	historyRepo portsrepo.HistoryRepositoryFacade
}

// NewHistoryService creates a new audit trail service.
func NewHistoryService(historyRepo portsrepo.HistoryRepositoryFacade, opts ...Option) portssvc.HistorySvcFacade {
	svc := &historyService{historyRepo: historyRepo}
	svc.apply(opts)
	return svc
}

var _ portssvc.HistorySvcFacade = (*historyService)(nil)

// Record appends one entry stamped with the engine clock. It only runs
// inside the caller's transaction so the entry commits or rolls back with
// the mutation it describes.
func (s *historyService) Record(ctx context.Context, tx pgx.Tx, documentID, userID int64, action string, comment *string) error {
	if tx == nil {
		return apperrors.NewPersistenceError("audit entries must be written inside a transaction", nil)
	}
	if documentID < 1 || userID < 1 {
		return apperrors.NewValidationFailedError("audit entry requires a document and a user")
	}
	action = strings.TrimSpace(action)
	if action == "" {
		return apperrors.NewValidationFailedError("audit entry requires an action")
	}

	entry := domain.HistoryEntry{
		DocumentID: documentID,
		UserID:     userID,
		Action:     action,
		Comment:    comment,
		ActionAt:   s.Clock(),
		IsActive:   true,
	}
	id, err := s.historyRepo.AppendEntry(ctx, tx, entry)
	if err != nil {
		s.LogError(ctx, err, "Failed to append audit entry",
			slog.Int64("document_id", documentID),
			slog.Int64("user_id", userID))
		return err
	}

	s.LogDebug(ctx, "Audit entry recorded",
		slog.Int64("history_id", id),
		slog.Int64("document_id", documentID),
		slog.String("action", action))
	return nil
}

// GetHistory returns a document's entries, newest first.
func (s *historyService) GetHistory(ctx context.Context, documentID int64) ([]domain.HistoryRecord, error) {
	if documentID < 1 {
		return nil, apperrors.NewValidationFailedError("a valid document ID is required")
	}
	records, err := s.historyRepo.ListByDocument(ctx, documentID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list document history", slog.Int64("document_id", documentID))
		return nil, err
	}
	return records, nil
}
