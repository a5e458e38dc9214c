package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/docflow_app/internal/apperrors"
	"github.com/SscSPs/docflow_app/internal/core/domain"
	portsrepo "github.com/SscSPs/docflow_app/internal/core/ports/repositories"
	"github.com/SscSPs/docflow_app/internal/models"
	"github.com/SscSPs/docflow_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const documentViewColumns = `
	d.document_id, d.title, d.description, d.file_path, d.classification_id, d.document_type_id,
	d.state_id, d.creator_id, d.assignee_id, d.department_id, d.created_at, d.related_document_id, d.is_active,
	c.name AS classification_name,
	t.name AS document_type_name,
	s.name AS state_name,
	dep.name AS department_name,
	NULLIF(TRIM(u.first_name || ' ' || u.last_name), '') AS assignee_name`

const documentViewFrom = `
	FROM documents d
	LEFT JOIN classifications c ON c.classification_id = d.classification_id
	LEFT JOIN document_types t ON t.document_type_id = d.document_type_id
	LEFT JOIN document_states s ON s.state_id = d.state_id
	LEFT JOIN departments dep ON dep.department_id = d.department_id
	LEFT JOIN users u ON u.user_id = d.assignee_id`

const relatedDocumentConstraint = "documents_related_document_id_fkey"

type PgxDocumentRepository struct {
	BaseRepository
}

// newPgxDocumentRepository creates a new repository for document data.
func newPgxDocumentRepository(pool *pgxpool.Pool) portsrepo.DocumentRepositoryWithTx {
	return &PgxDocumentRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.DocumentRepositoryWithTx = (*PgxDocumentRepository)(nil)

func (r *PgxDocumentRepository) collectViews(ctx context.Context, query string, args ...any) ([]domain.DocumentView, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewPersistenceError("failed to query documents", err)
	}
	views, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.DocumentView])
	if err != nil {
		return nil, apperrors.NewPersistenceError("failed to scan documents", err)
	}
	return mapping.ToDomainDocumentViewSlice(views), nil
}

// FindDocumentByID retrieves one active document with its names resolved.
func (r *PgxDocumentRepository) FindDocumentByID(ctx context.Context, documentID int64) (*domain.DocumentView, error) {
	query := "SELECT" + documentViewColumns + documentViewFrom + " WHERE d.document_id = $1 AND d.is_active"
	rows, err := r.Pool.Query(ctx, query, documentID)
	if err != nil {
		return nil, apperrors.NewPersistenceError("failed to query document", err)
	}
	view, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.DocumentView])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("document")
		}
		return nil, apperrors.NewPersistenceError(fmt.Sprintf("failed to find document %d", documentID), err)
	}
	d := mapping.ToDomainDocumentView(view)
	return &d, nil
}

// ListDocuments returns one page of active documents, newest first. Deleted
// documents are hidden unless the filter asks for that state.
func (r *PgxDocumentRepository) ListDocuments(ctx context.Context, filter domain.DocumentFilter) ([]domain.DocumentView, int, error) {
	w := &whereBuilder{}
	w.addRaw("d.is_active")
	if filter.StateID != nil {
		w.add("d.state_id = ?", int64(*filter.StateID))
	} else {
		w.add("d.state_id <> ?", int64(domain.StateDeleted))
	}
	if filter.AssigneeID != nil {
		w.add("d.assignee_id = ?", *filter.AssigneeID)
	}
	if filter.DepartmentID != nil {
		w.add("d.department_id = ?", *filter.DepartmentID)
	}
	if filter.ClassificationID != nil {
		w.add("d.classification_id = ?", *filter.ClassificationID)
	}
	if title := strings.TrimSpace(filter.Title); title != "" {
		w.add("d.title ILIKE ?", containsPattern(title))
	}

	pageNumber, pageSize := domain.NormalizePaging(filter.PageNumber, filter.PageSize)
	query := "SELECT" + documentViewColumns + ", COUNT(*) OVER() AS total_count" + documentViewFrom + w.String() +
		" ORDER BY d.document_id DESC LIMIT " + w.next(pageSize) + " OFFSET " + w.next((pageNumber-1)*pageSize)

	rows, err := r.Pool.Query(ctx, query, w.args...)
	if err != nil {
		return nil, 0, apperrors.NewPersistenceError("failed to list documents", err)
	}
	page, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.DocumentPageRow])
	if err != nil {
		return nil, 0, apperrors.NewPersistenceError("failed to scan documents", err)
	}
	docs, total := mapping.ToDomainDocumentPage(page)
	return docs, total, nil
}

// ListByAssignee returns active documents assigned to a user, optionally only those in state.
func (r *PgxDocumentRepository) ListByAssignee(ctx context.Context, assigneeID int64, state *domain.DocumentState) ([]domain.DocumentView, error) {
	w := &whereBuilder{}
	w.addRaw("d.is_active")
	w.add("d.assignee_id = ?", assigneeID)
	if state != nil {
		w.add("d.state_id = ?", int64(*state))
	}
	return r.collectViews(ctx, "SELECT"+documentViewColumns+documentViewFrom+w.String()+" ORDER BY d.document_id DESC", w.args...)
}

// FindFirstByText returns the first active document whose title or description contains text.
func (r *PgxDocumentRepository) FindFirstByText(ctx context.Context, text string) (*domain.DocumentView, error) {
	query := "SELECT" + documentViewColumns + documentViewFrom + `
		WHERE d.is_active AND d.state_id <> $2 AND (d.title ILIKE $1 OR d.description ILIKE $1)
		ORDER BY d.document_id
		LIMIT 1`
	views, err := r.collectViews(ctx, query, containsPattern(text), int64(domain.StateDeleted))
	if err != nil {
		return nil, err
	}
	if len(views) == 0 {
		return nil, apperrors.NewNotFoundError("document")
	}
	return &views[0], nil
}

// SearchTitles returns up to limit active, non-deleted documents whose title contains text.
func (r *PgxDocumentRepository) SearchTitles(ctx context.Context, text string, limit int) ([]domain.DocumentRef, error) {
	query := `
		SELECT document_id, title
		FROM documents
		WHERE is_active AND state_id <> $2 AND title ILIKE $1
		ORDER BY document_id DESC
		LIMIT $3;
	`
	rows, err := r.Pool.Query(ctx, query, containsPattern(text), int64(domain.StateDeleted), limit)
	if err != nil {
		return nil, apperrors.NewPersistenceError("failed to search document titles", err)
	}
	refs, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.DocumentRef, error) {
		var ref domain.DocumentRef
		err := row.Scan(&ref.DocumentID, &ref.Title)
		return ref, err
	})
	if err != nil {
		return nil, apperrors.NewPersistenceError("failed to scan document titles", err)
	}
	return refs, nil
}

// ListPending returns active pending documents with their aging anchor.
func (r *PgxDocumentRepository) ListPending(ctx context.Context) ([]domain.PendingDocument, error) {
	query := `
		SELECT document_id, title, assignee_id, created_at
		FROM documents
		WHERE is_active AND state_id = $1
		ORDER BY created_at, document_id;
	`
	rows, err := r.Pool.Query(ctx, query, int64(domain.StatePending))
	if err != nil {
		return nil, apperrors.NewPersistenceError("failed to query pending documents", err)
	}
	pending, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.PendingDocument, error) {
		var p domain.PendingDocument
		err := row.Scan(&p.DocumentID, &p.Title, &p.AssigneeID, &p.ReferenceAt)
		return p, err
	})
	if err != nil {
		return nil, apperrors.NewPersistenceError("failed to scan pending documents", err)
	}
	return pending, nil
}

// CountByStateSince groups active documents with reference_at in [from, to] by state.
func (r *PgxDocumentRepository) CountByStateSince(ctx context.Context, from, to time.Time) ([]domain.StateCount, error) {
	query := `
		SELECT d.state_id, s.name, COUNT(*)
		FROM documents d
		JOIN document_states s ON s.state_id = d.state_id
		WHERE d.is_active AND d.created_at BETWEEN $1 AND $2
		GROUP BY d.state_id, s.name
		ORDER BY d.state_id;
	`
	rows, err := r.Pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, apperrors.NewPersistenceError("failed to count documents by state", err)
	}
	defer rows.Close()

	var result []domain.StateCount
	for rows.Next() {
		var (
			stateID int64
			sc      domain.StateCount
		)
		if err := rows.Scan(&stateID, &sc.StateName, &sc.Count); err != nil {
			return nil, apperrors.NewPersistenceError("failed to scan state count", err)
		}
		sc.StateID = domain.DocumentState(stateID)
		result = append(result, sc)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewPersistenceError("failed to iterate state counts", err)
	}
	return result, nil
}

// InsertDocument persists a new document and returns its identifier.
func (r *PgxDocumentRepository) InsertDocument(ctx context.Context, tx pgx.Tx, doc domain.Document) (int64, error) {
	m := mapping.ToModelDocument(doc)
	query := `
		INSERT INTO documents (
			title, description, file_path, classification_id, document_type_id, state_id,
			creator_id, assignee_id, department_id, created_at, related_document_id, is_active
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING document_id;
	`
	var id int64
	err := tx.QueryRow(ctx, query,
		m.Title,
		m.Description,
		m.FilePath,
		m.ClassificationID,
		m.DocumentTypeID,
		m.StateID,
		m.CreatorID,
		m.AssigneeID,
		m.DepartmentID,
		m.ReferenceAt,
		m.RelatedDocumentID,
		m.IsActive,
	).Scan(&id)
	if err != nil {
		if isForeignKeyViolation(err) {
			if violatedConstraint(err) == relatedDocumentConstraint {
				return 0, apperrors.NewNotFoundError("related document")
			}
			return 0, apperrors.NewValidationFailedError("document references an unknown classification, type, state, user or department")
		}
		return 0, apperrors.NewPersistenceError("failed to insert document", err)
	}
	return id, nil
}

// LockDocumentTx reads one active document and holds its row lock until tx ends.
func (r *PgxDocumentRepository) LockDocumentTx(ctx context.Context, tx pgx.Tx, documentID int64) (*domain.Document, error) {
	query := `
		SELECT document_id, title, description, file_path, classification_id, document_type_id, state_id,
			creator_id, assignee_id, department_id, created_at, related_document_id, is_active
		FROM documents
		WHERE document_id = $1 AND is_active
		FOR UPDATE
	`
	rows, err := tx.Query(ctx, query, documentID)
	if err != nil {
		return nil, apperrors.NewPersistenceError("failed to lock document", err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Document])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("document")
		}
		return nil, apperrors.NewPersistenceError(fmt.Sprintf("failed to lock document %d", documentID), err)
	}
	d := mapping.ToDomainDocument(m)
	return &d, nil
}

// PatchDocument updates only the non-nil columns of patch.
func (r *PgxDocumentRepository) PatchDocument(ctx context.Context, tx pgx.Tx, documentID int64, patch domain.DocumentPatch) error {
	if patch.IsEmpty() {
		return apperrors.NewValidationFailedError("nothing to update")
	}

	var sets []string
	var args []any
	set := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, column+" = "+placeholder(len(args)))
	}
	if patch.Title != nil {
		set("title", *patch.Title)
	}
	if patch.Description != nil {
		set("description", *patch.Description)
	}
	if patch.FilePath != nil {
		set("file_path", *patch.FilePath)
	}
	if patch.ClassificationID != nil {
		set("classification_id", *patch.ClassificationID)
	}
	if patch.DocumentTypeID != nil {
		set("document_type_id", *patch.DocumentTypeID)
	}
	if patch.StateID != nil {
		set("state_id", int64(*patch.StateID))
	}
	if patch.AssigneeID != nil {
		set("assignee_id", *patch.AssigneeID)
	}
	if patch.DepartmentID != nil {
		set("department_id", *patch.DepartmentID)
	}
	if patch.ReferenceAt != nil {
		set("created_at", *patch.ReferenceAt)
	}
	if patch.IsActive != nil {
		set("is_active", *patch.IsActive)
	}

	args = append(args, documentID)
	query := "UPDATE documents SET " + strings.Join(sets, ", ") +
		" WHERE document_id = " + placeholder(len(args)) + " AND is_active"

	tag, err := tx.Exec(ctx, query, args...)
	if err != nil {
		if isForeignKeyViolation(err) {
			return apperrors.NewValidationFailedError("update references an unknown record")
		}
		return apperrors.NewPersistenceError(fmt.Sprintf("failed to update document %d", documentID), err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("document")
	}
	return nil
}
