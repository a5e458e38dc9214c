package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/docflow_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// HistoryReader defines read operations for the audit trail
type HistoryReader interface {
	// ListByDocument returns a document's entries, newest first.
	ListByDocument(ctx context.Context, documentID int64) ([]domain.HistoryRecord, error)

	// ListByUser returns a user's entries within the optional bounds, newest first.
	ListByUser(ctx context.Context, userID int64, from, to *time.Time) ([]domain.HistoryRecord, error)

	// LatestActionAt returns the newest entry timestamp for a document, nil if none.
	LatestActionAt(ctx context.Context, documentID int64) (*time.Time, error)
}

// HistoryAppender appends audit entries. Entries are never updated or removed.
type HistoryAppender interface {
	AppendEntry(ctx context.Context, tx pgx.Tx, entry domain.HistoryEntry) (int64, error)
}

// HistoryRepositoryFacade combines all audit trail repository interfaces
type HistoryRepositoryFacade interface {
	HistoryReader
	HistoryAppender
}
