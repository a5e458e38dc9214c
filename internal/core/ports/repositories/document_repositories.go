package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/docflow_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// DocumentReader defines read operations for document data
type DocumentReader interface {
	// FindDocumentByID retrieves one active document with its names resolved.
	FindDocumentByID(ctx context.Context, documentID int64) (*domain.DocumentView, error)

	// ListDocuments returns one page of documents matching the filter, newest first.
	ListDocuments(ctx context.Context, filter domain.DocumentFilter) ([]domain.DocumentView, int, error)

	// ListByAssignee returns active documents assigned to a user, optionally only those in state.
	ListByAssignee(ctx context.Context, assigneeID int64, state *domain.DocumentState) ([]domain.DocumentView, error)

	// FindFirstByText returns the first active document whose title or description contains text.
	FindFirstByText(ctx context.Context, text string) (*domain.DocumentView, error)

	// SearchTitles returns up to limit active, non-deleted documents whose title contains text.
	SearchTitles(ctx context.Context, text string, limit int) ([]domain.DocumentRef, error)

	// ListPending returns active pending documents with their aging anchor.
	ListPending(ctx context.Context) ([]domain.PendingDocument, error)

	// CountByStateSince groups active documents with reference_at in [from, to] by state.
	CountByStateSince(ctx context.Context, from, to time.Time) ([]domain.StateCount, error)
}

// DocumentWriter defines write operations for document data. Every write
// runs inside a caller supplied transaction.
type DocumentWriter interface {
	// InsertDocument persists a new document and returns its identifier.
	InsertDocument(ctx context.Context, tx pgx.Tx, doc domain.Document) (int64, error)

	// LockDocumentTx reads one active document and locks its row for the rest of tx.
	LockDocumentTx(ctx context.Context, tx pgx.Tx, documentID int64) (*domain.Document, error)

	// PatchDocument updates only the non-nil columns of patch.
	// Returns apperrors.ErrNotFound when no active document matches.
	PatchDocument(ctx context.Context, tx pgx.Tx, documentID int64, patch domain.DocumentPatch) error
}

// DocumentRepositoryFacade combines all document-related repository interfaces
type DocumentRepositoryFacade interface {
	DocumentReader
	DocumentWriter
}

// DocumentRepositoryWithTx extends DocumentRepositoryFacade with transaction capabilities
type DocumentRepositoryWithTx interface {
	DocumentRepositoryFacade
	TransactionManager
}
