package services

import (
	"context"
	"io"

	"github.com/SscSPs/docflow_app/internal/core/domain"
	"github.com/SscSPs/docflow_app/internal/dto"
)

// WorkflowMutatorSvc applies state machine actions. Each call is one
// transaction covering the mutation and its audit entry.
type WorkflowMutatorSvc interface {
	// ChangeState moves a document to stateID on behalf of actor.
	ChangeState(ctx context.Context, documentID int64, req dto.ChangeStateRequest, actor domain.Identity) error

	// Reassign hands a document to another user and returns it to Pending. Administrators only.
	Reassign(ctx context.Context, documentID, assigneeID int64, actor domain.Identity) error
}

// DocumentWriterSvc defines write operations for documents
type DocumentWriterSvc interface {
	// Register creates a document, archiving the related document when one is named.
	Register(ctx context.Context, req dto.RegisterDocumentRequest, file *dto.FileUpload, actor domain.Identity) (*domain.Document, error)

	// UpdateDocument changes descriptive fields of a document.
	UpdateDocument(ctx context.Context, documentID int64, req dto.UpdateDocumentRequest, actor domain.Identity) error

	// ReplaceFile stores a new file for a document and discards the previous one.
	ReplaceFile(ctx context.Context, documentID int64, file dto.FileUpload, comment *string, actor domain.Identity) (string, error)

	// DeleteDocument deactivates a document. Administrators only.
	DeleteDocument(ctx context.Context, documentID int64, actor domain.Identity) error
}

// DocumentReaderSvc defines read operations for documents
type DocumentReaderSvc interface {
	GetDocument(ctx context.Context, documentID int64) (*domain.DocumentView, error)

	// ListDocuments lists documents visible to actor. Non-administrators see their assignments only.
	ListDocuments(ctx context.Context, params dto.ListDocumentsParams, actor domain.Identity) (*domain.Page[domain.DocumentView], error)

	// ListAssignedDocuments lists another user's assignments. Administrators only.
	ListAssignedDocuments(ctx context.Context, assigneeID int64, pendingOnly bool, actor domain.Identity) ([]domain.DocumentView, error)

	// OpenFile streams the stored file of a document.
	OpenFile(ctx context.Context, documentID int64) (io.ReadCloser, string, error)
}

// WorkflowSvcFacade combines all document workflow service interfaces
type WorkflowSvcFacade interface {
	WorkflowMutatorSvc
	DocumentWriterSvc
	DocumentReaderSvc
}
