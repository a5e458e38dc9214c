package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"

	"github.com/SscSPs/docflow_app/internal/apperrors"
	"github.com/SscSPs/docflow_app/internal/core/domain"
	portsrepo "github.com/SscSPs/docflow_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/docflow_app/internal/core/ports/services"
	"github.com/SscSPs/docflow_app/internal/core/ports/storage"
	"github.com/SscSPs/docflow_app/internal/dto"
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5"
	"github.com/samber/lo"
)

const defaultRegistrationComment = "Document registered."

// workflowService is the document state machine. Every mutation and its
// audit entry share one transaction.
type workflowService struct {
	BaseService
	txManager    portsrepo.TransactionManager
	documentRepo portsrepo.DocumentRepositoryFacade
	userRepo     portsrepo.UserRepositoryFacade
	catalogRepo  portsrepo.CatalogReader
	history      portssvc.HistoryRecorderSvc
	files        storage.FileStorage
	validate     *validator.Validate
}

// NewWorkflowService creates the document workflow service.
func NewWorkflowService(
	txManager portsrepo.TransactionManager,
	documentRepo portsrepo.DocumentRepositoryFacade,
	userRepo portsrepo.UserRepositoryFacade,
	catalogRepo portsrepo.CatalogReader,
	history portssvc.HistoryRecorderSvc,
	files storage.FileStorage,
	opts ...Option,
) portssvc.WorkflowSvcFacade {
	svc := &workflowService{
		txManager:    txManager,
		documentRepo: documentRepo,
		userRepo:     userRepo,
		catalogRepo:  catalogRepo,
		history:      history,
		files:        files,
		validate:     validator.New(),
	}
	svc.apply(opts)
	return svc
}

var _ portssvc.WorkflowSvcFacade = (*workflowService)(nil)

// ChangeState moves a document to another state and resets its aging clock.
func (s *workflowService) ChangeState(ctx context.Context, documentID int64, req dto.ChangeStateRequest, actor domain.Identity) error {
	if documentID < 1 || req.StateID < 1 {
		return apperrors.NewValidationFailedError("a valid document ID and state ID are required")
	}
	requestedBy := actor.UserID
	if req.RequestedByUserID != nil && *req.RequestedByUserID > 0 {
		requestedBy = *req.RequestedByUserID
	}

	err := s.RunInTx(ctx, s.txManager, func(tx pgx.Tx) error {
		return s.changeStateTx(ctx, tx, documentID, domain.DocumentState(req.StateID), actor.UserID, requestedBy)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to change document state",
			slog.Int64("document_id", documentID),
			slog.Int64("state_id", req.StateID))
		return err
	}

	s.LogInfo(ctx, "Document state changed",
		slog.Int64("document_id", documentID),
		slog.Int64("state_id", req.StateID))
	return nil
}

// changeStateTx is the state machine step. Register reuses it to archive
// a superseded document.
func (s *workflowService) changeStateTx(ctx context.Context, tx pgx.Tx, documentID int64, target domain.DocumentState, actingUserID, requestedBy int64) error {
	if !target.IsDefined() {
		return apperrors.NewNotFoundError("state")
	}
	state, err := s.catalogRepo.FindActiveStateTx(ctx, tx, target)
	if err != nil {
		return err
	}

	now := s.Clock()
	patch := domain.DocumentPatch{StateID: &target, ReferenceAt: &now}

	if target == domain.StateSent {
		clerk, err := s.userRepo.FindFirstActiveUserByRoleTx(ctx, tx, domain.RoleFrontDesk)
		switch {
		case err == nil:
			patch.AssigneeID = &clerk.UserID
		case errors.Is(err, apperrors.ErrNotFound):
			s.LogDebug(ctx, "No active front desk user, assignee left unchanged", slog.Int64("document_id", documentID))
		default:
			return err
		}
	}

	if err := s.documentRepo.PatchDocument(ctx, tx, documentID, patch); err != nil {
		return err
	}

	comment := fmt.Sprintf("Change requested by user ID %d", requestedBy)
	return s.history.Record(ctx, tx, documentID, actingUserID, "State changed to "+state.Name, &comment)
}

// Reassign hands a document to another user and returns it to Pending.
func (s *workflowService) Reassign(ctx context.Context, documentID, assigneeID int64, actor domain.Identity) error {
	if !actor.IsAdministrator() {
		return apperrors.NewForbiddenError("only administrators can reassign documents")
	}
	if documentID < 1 || assigneeID < 1 {
		return apperrors.NewValidationFailedError("a valid document ID and assignee ID are required")
	}

	err := s.RunInTx(ctx, s.txManager, func(tx pgx.Tx) error {
		assignee, err := s.userRepo.FindUserByIDTx(ctx, tx, assigneeID)
		if err != nil {
			return err
		}

		pending := domain.StatePending
		patch := domain.DocumentPatch{AssigneeID: &assignee.UserID, StateID: &pending}
		if err := s.documentRepo.PatchDocument(ctx, tx, documentID, patch); err != nil {
			return err
		}

		comment := fmt.Sprintf("Assigned to user ID %d successfully", assignee.UserID)
		return s.history.Record(ctx, tx, documentID, actor.UserID, "Reassigned to "+assignee.FullName(), &comment)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to reassign document",
			slog.Int64("document_id", documentID),
			slog.Int64("assignee_id", assigneeID))
		return err
	}

	s.LogInfo(ctx, "Document reassigned",
		slog.Int64("document_id", documentID),
		slog.Int64("assignee_id", assigneeID))
	return nil
}

// Register stores the optional file, then archives the related document,
// creates the new one and records the creation in one transaction. The
// stored file is removed again if the transaction fails.
func (s *workflowService) Register(ctx context.Context, req dto.RegisterDocumentRequest, file *dto.FileUpload, actor domain.Identity) (*domain.Document, error) {
	req.Title = strings.TrimSpace(req.Title)
	if err := s.validate.Struct(req); err != nil {
		return nil, apperrors.NewValidationFailedError(fmt.Sprintf("invalid document: %v", err))
	}

	initial := domain.StateReceived
	if req.InitialStateID != nil {
		initial = domain.DocumentState(*req.InitialStateID)
	}
	if initial == domain.StateDeleted {
		return nil, apperrors.NewValidationFailedError("a document cannot be registered as deleted")
	}

	storedPath := ""
	if file != nil && file.Content != nil {
		folder, err := s.classificationFolder(ctx, req.ClassificationID)
		if err != nil {
			return nil, err
		}
		storedPath, err = s.files.Store(ctx, file.Content, file.Name, folder)
		if err != nil {
			s.LogError(ctx, err, "Failed to store document file", slog.String("file_name", file.Name))
			return nil, err
		}
	}

	doc := domain.Document{
		Title:             req.Title,
		Description:       req.Description,
		FilePath:          storedPath,
		ClassificationID:  req.ClassificationID,
		DocumentTypeID:    req.DocumentTypeID,
		StateID:           initial,
		AssigneeID:        req.AssigneeID,
		DepartmentID:      req.DepartmentID,
		ReferenceAt:       s.Clock(),
		RelatedDocumentID: req.RelatedDocumentID,
		IsActive:          true,
	}
	if actor.UserID > 0 {
		doc.CreatorID = lo.ToPtr(actor.UserID)
	}

	err := s.RunInTx(ctx, s.txManager, func(tx pgx.Tx) error {
		if _, err := s.catalogRepo.FindActiveStateTx(ctx, tx, initial); err != nil {
			return err
		}

		// Archived before the insert: a missing related document is NotFound.
		if req.RelatedDocumentID != nil && *req.RelatedDocumentID > 0 {
			if err := s.changeStateTx(ctx, tx, *req.RelatedDocumentID, domain.StateArchived, actor.UserID, actor.UserID); err != nil {
				return err
			}
		}

		id, err := s.documentRepo.InsertDocument(ctx, tx, doc)
		if err != nil {
			return err
		}
		doc.DocumentID = id

		if doc.CreatorID == nil {
			return nil
		}
		action := "Document registered without file"
		if doc.HasFile() {
			action = "Document registered with file"
		}
		comment := lo.FromPtrOr(req.Comment, "")
		if strings.TrimSpace(comment) == "" {
			comment = defaultRegistrationComment
		}
		return s.history.Record(ctx, tx, id, actor.UserID, action, &comment)
	})
	if err != nil {
		s.discardFile(ctx, storedPath)
		s.LogError(ctx, err, "Failed to register document", slog.String("title", req.Title))
		return nil, err
	}

	s.LogInfo(ctx, "Document registered",
		slog.Int64("document_id", doc.DocumentID),
		slog.Bool("has_file", doc.HasFile()))
	return &doc, nil
}

// classificationFolder names the storage folder after an active
// classification. Unknown or inactive classifications use the root folder.
func (s *workflowService) classificationFolder(ctx context.Context, classificationID *int64) (string, error) {
	if classificationID == nil {
		return "", nil
	}
	item, err := s.catalogRepo.FindByID(ctx, domain.CatalogClassification, *classificationID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return "", nil
		}
		return "", err
	}
	if !item.IsActive {
		return "", nil
	}
	return item.Name, nil
}

func (s *workflowService) discardFile(ctx context.Context, filePath string) {
	if filePath == "" {
		return
	}
	if err := s.files.Delete(ctx, filePath); err != nil {
		s.LogError(ctx, err, "Failed to remove stored file", slog.String("file_path", filePath))
	}
}

// UpdateDocument changes descriptive fields of a document.
func (s *workflowService) UpdateDocument(ctx context.Context, documentID int64, req dto.UpdateDocumentRequest, actor domain.Identity) error {
	if documentID < 1 {
		return apperrors.NewValidationFailedError("a valid document ID is required")
	}
	if req.Title != nil {
		req.Title = lo.ToPtr(strings.TrimSpace(*req.Title))
	}
	if err := s.validate.Struct(req); err != nil {
		return apperrors.NewValidationFailedError(fmt.Sprintf("invalid document: %v", err))
	}

	patch := domain.DocumentPatch{
		Title:            req.Title,
		Description:      req.Description,
		ClassificationID: req.ClassificationID,
		DocumentTypeID:   req.DocumentTypeID,
		DepartmentID:     req.DepartmentID,
	}
	if patch.IsEmpty() {
		return apperrors.NewValidationFailedError("no fields to update")
	}

	err := s.RunInTx(ctx, s.txManager, func(tx pgx.Tx) error {
		if err := s.documentRepo.PatchDocument(ctx, tx, documentID, patch); err != nil {
			return err
		}
		return s.history.Record(ctx, tx, documentID, actor.UserID, "Document data updated", nil)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to update document", slog.Int64("document_id", documentID))
		return err
	}
	return nil
}

// ReplaceFile stores a new file and points the document at it. The old
// file is removed only after the transaction commits.
func (s *workflowService) ReplaceFile(ctx context.Context, documentID int64, file dto.FileUpload, comment *string, actor domain.Identity) (string, error) {
	if documentID < 1 {
		return "", apperrors.NewValidationFailedError("a valid document ID is required")
	}
	if file.Content == nil {
		return "", apperrors.NewValidationFailedError("a file is required")
	}

	current, err := s.documentRepo.FindDocumentByID(ctx, documentID)
	if err != nil {
		return "", err
	}
	folder, err := s.classificationFolder(ctx, current.ClassificationID)
	if err != nil {
		return "", err
	}

	storedPath, err := s.files.Store(ctx, file.Content, file.Name, folder)
	if err != nil {
		s.LogError(ctx, err, "Failed to store replacement file", slog.Int64("document_id", documentID))
		return "", err
	}

	// previous is read under the row lock.
	var previous string
	err = s.RunInTx(ctx, s.txManager, func(tx pgx.Tx) error {
		locked, err := s.documentRepo.LockDocumentTx(ctx, tx, documentID)
		if err != nil {
			return err
		}
		previous = locked.FilePath

		if err := s.documentRepo.PatchDocument(ctx, tx, documentID, domain.DocumentPatch{FilePath: &storedPath}); err != nil {
			return err
		}
		return s.history.Record(ctx, tx, documentID, actor.UserID, "File replaced", comment)
	})
	if err != nil {
		s.discardFile(ctx, storedPath)
		s.LogError(ctx, err, "Failed to replace document file", slog.Int64("document_id", documentID))
		return "", err
	}

	if previous != storedPath {
		s.discardFile(ctx, previous)
	}
	return storedPath, nil
}

// DeleteDocument deactivates a document. Rows are never removed.
func (s *workflowService) DeleteDocument(ctx context.Context, documentID int64, actor domain.Identity) error {
	if !actor.IsAdministrator() {
		return apperrors.NewForbiddenError("only administrators can delete documents")
	}
	if documentID < 1 {
		return apperrors.NewValidationFailedError("a valid document ID is required")
	}

	err := s.RunInTx(ctx, s.txManager, func(tx pgx.Tx) error {
		if err := s.documentRepo.PatchDocument(ctx, tx, documentID, domain.DocumentPatch{IsActive: lo.ToPtr(false)}); err != nil {
			return err
		}
		return s.history.Record(ctx, tx, documentID, actor.UserID, "Document deactivated", nil)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to deactivate document", slog.Int64("document_id", documentID))
		return err
	}
	return nil
}

func (s *workflowService) GetDocument(ctx context.Context, documentID int64) (*domain.DocumentView, error) {
	if documentID < 1 {
		return nil, apperrors.NewValidationFailedError("a valid document ID is required")
	}
	return s.documentRepo.FindDocumentByID(ctx, documentID)
}

// ListDocuments lists documents newest first. Only administrators see
// documents assigned to other users or filter by any state.
func (s *workflowService) ListDocuments(ctx context.Context, params dto.ListDocumentsParams, actor domain.Identity) (*domain.Page[domain.DocumentView], error) {
	pageNumber, pageSize := domain.NormalizePaging(params.PageNumber, params.PageSize)
	filter := domain.DocumentFilter{
		DepartmentID:     params.DepartmentID,
		ClassificationID: params.ClassificationID,
		Title:            strings.TrimSpace(params.Title),
		PageNumber:       pageNumber,
		PageSize:         pageSize,
	}
	if params.StateID != nil {
		filter.StateID = lo.ToPtr(domain.DocumentState(*params.StateID))
	}
	if !actor.IsAdministrator() {
		if filter.StateID != nil && !domain.CanSeeState(actor.RoleID, *filter.StateID) {
			return nil, apperrors.NewForbiddenError("state is not available for your role")
		}
		filter.AssigneeID = lo.ToPtr(actor.UserID)
	}

	items, total, err := s.documentRepo.ListDocuments(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list documents")
		return nil, err
	}
	return &domain.Page[domain.DocumentView]{
		Items:      items,
		Total:      total,
		PageNumber: pageNumber,
		PageSize:   pageSize,
	}, nil
}

// ListAssignedDocuments lists another user's documents, optionally only
// the pending ones.
func (s *workflowService) ListAssignedDocuments(ctx context.Context, assigneeID int64, pendingOnly bool, actor domain.Identity) ([]domain.DocumentView, error) {
	if !actor.IsAdministrator() {
		return nil, apperrors.NewForbiddenError("only administrators can list other users' documents")
	}
	if assigneeID < 1 {
		return nil, apperrors.NewValidationFailedError("a valid user ID is required")
	}

	var state *domain.DocumentState
	if pendingOnly {
		state = lo.ToPtr(domain.StatePending)
	}
	return s.documentRepo.ListByAssignee(ctx, assigneeID, state)
}

// OpenFile streams the file of a document together with its download name.
func (s *workflowService) OpenFile(ctx context.Context, documentID int64) (io.ReadCloser, string, error) {
	doc, err := s.GetDocument(ctx, documentID)
	if err != nil {
		return nil, "", err
	}
	if !doc.HasFile() {
		return nil, "", apperrors.NewNotFoundError("file")
	}
	rc, err := s.files.Open(ctx, doc.FilePath)
	if err != nil {
		return nil, "", err
	}
	return rc, path.Base(doc.FilePath), nil
}
