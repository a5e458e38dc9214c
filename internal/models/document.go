package models

import "time"

// Document is a row of the documents table.
type Document struct {
	DocumentID        int64     `db:"document_id"`
	Title             string    `db:"title"`
	Description       *string   `db:"description"`
	FilePath          *string   `db:"file_path"`
	ClassificationID  *int64    `db:"classification_id"`
	DocumentTypeID    *int64    `db:"document_type_id"`
	StateID           int64     `db:"state_id"`
	CreatorID         *int64    `db:"creator_id"`
	AssigneeID        *int64    `db:"assignee_id"`
	DepartmentID      *int64    `db:"department_id"`
	ReferenceAt       time.Time `db:"created_at"`
	RelatedDocumentID *int64    `db:"related_document_id"`
	IsActive          bool      `db:"is_active"`
}

// DocumentView is a document joined with the names of its references.
type DocumentView struct {
	Document
	ClassificationName *string `db:"classification_name"`
	DocumentTypeName   *string `db:"document_type_name"`
	StateName          *string `db:"state_name"`
	DepartmentName     *string `db:"department_name"`
	AssigneeName       *string `db:"assignee_name"`
}

// DocumentPageRow is a DocumentView carrying the total count of its page's query.
type DocumentPageRow struct {
	DocumentView
	TotalCount int64 `db:"total_count"`
}
