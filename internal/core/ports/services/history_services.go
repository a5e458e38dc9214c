package services

import (
	"context"

	"github.com/SscSPs/docflow_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// HistoryRecorderSvc appends audit entries inside the caller's transaction.
type HistoryRecorderSvc interface {
	Record(ctx context.Context, tx pgx.Tx, documentID, userID int64, action string, comment *string) error
}

// HistoryReaderSvc reads the audit trail.
type HistoryReaderSvc interface {
	// GetHistory returns a document's entries, newest first.
	GetHistory(ctx context.Context, documentID int64) ([]domain.HistoryRecord, error)
}

// HistorySvcFacade combines all audit trail service interfaces
type HistorySvcFacade interface {
	HistoryRecorderSvc
	HistoryReaderSvc
}
