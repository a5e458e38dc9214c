package dto

import (
	"io"
	"time"

	"github.com/SscSPs/docflow_app/internal/core/domain"
	"github.com/samber/lo"
)

// FileUpload is an uploaded file handed to the workflow service.
type FileUpload struct {
	Name    string
	Content io.Reader
}

// RegisterDocumentRequest is the multipart form of a new document.
type RegisterDocumentRequest struct {
	Title             string  `form:"title" json:"title" validate:"required,max=200"`
	Description       *string `form:"description" json:"description"`
	ClassificationID  *int64  `form:"classificationID" json:"classificationID" validate:"omitempty,gt=0"`
	DocumentTypeID    *int64  `form:"documentTypeID" json:"documentTypeID" validate:"omitempty,gt=0"`
	InitialStateID    *int64  `form:"stateID" json:"stateID" validate:"omitempty,gte=1,lte=6"`
	AssigneeID        *int64  `form:"assigneeID" json:"assigneeID" validate:"omitempty,gt=0"`
	DepartmentID      *int64  `form:"departmentID" json:"departmentID" validate:"omitempty,gt=0"`
	RelatedDocumentID *int64  `form:"relatedDocumentID" json:"relatedDocumentID"`
	Comment           *string `form:"comment" json:"comment"`
}

// UpdateDocumentRequest carries the document fields to change. Omitted
// fields are left untouched.
type UpdateDocumentRequest struct {
	Title            *string `json:"title" validate:"omitempty,min=1,max=200"`
	Description      *string `json:"description"`
	ClassificationID *int64  `json:"classificationID" validate:"omitempty,gt=0"`
	DocumentTypeID   *int64  `json:"documentTypeID" validate:"omitempty,gt=0"`
	DepartmentID     *int64  `json:"departmentID" validate:"omitempty,gt=0"`
}

// ChangeStateRequest moves a document to another state.
type ChangeStateRequest struct {
	StateID int64 `json:"stateID" binding:"required"`
	// RequestedByUserID names who asked for the change when it differs
	// from the authenticated caller.
	RequestedByUserID *int64 `json:"requestedByUserID"`
}

// ReassignRequest hands a document to another user.
type ReassignRequest struct {
	AssigneeID int64 `json:"assigneeID" binding:"required"`
}

// ListDocumentsParams defines query parameters for listing documents.
type ListDocumentsParams struct {
	StateID          *int64 `form:"stateID"`
	DepartmentID     *int64 `form:"departmentID"`
	ClassificationID *int64 `form:"classificationID"`
	Title            string `form:"title"`
	PageNumber       int    `form:"pageNumber,default=1"`
	PageSize         int    `form:"pageSize,default=10"`
}

// DocumentResponse is the wire shape of a document.
type DocumentResponse struct {
	DocumentID         int64     `json:"documentID"`
	Title              string    `json:"title"`
	Description        *string   `json:"description,omitempty"`
	FilePath           string    `json:"filePath,omitempty"`
	ClassificationID   *int64    `json:"classificationID,omitempty"`
	ClassificationName string    `json:"classificationName,omitempty"`
	DocumentTypeID     *int64    `json:"documentTypeID,omitempty"`
	DocumentTypeName   string    `json:"documentTypeName,omitempty"`
	StateID            int64     `json:"stateID"`
	StateName          string    `json:"stateName,omitempty"`
	CreatorID          *int64    `json:"creatorID,omitempty"`
	AssigneeID         *int64    `json:"assigneeID,omitempty"`
	AssigneeName       string    `json:"assigneeName,omitempty"`
	DepartmentID       *int64    `json:"departmentID,omitempty"`
	DepartmentName     string    `json:"departmentName,omitempty"`
	ReferenceAt        time.Time `json:"referenceAt"`
	RelatedDocumentID  *int64    `json:"relatedDocumentID,omitempty"`
}

// ListDocumentsResponse is one page of documents.
type ListDocumentsResponse struct {
	Documents  []DocumentResponse `json:"documents"`
	Total      int                `json:"total"`
	PageNumber int                `json:"pageNumber"`
	PageSize   int                `json:"pageSize"`
}

// ToDocumentResponse converts a resolved document to its wire shape.
func ToDocumentResponse(v domain.DocumentView) DocumentResponse {
	return DocumentResponse{
		DocumentID:         v.DocumentID,
		Title:              v.Title,
		Description:        v.Description,
		FilePath:           v.FilePath,
		ClassificationID:   v.ClassificationID,
		ClassificationName: v.ClassificationName,
		DocumentTypeID:     v.DocumentTypeID,
		DocumentTypeName:   v.DocumentTypeName,
		StateID:            int64(v.StateID),
		StateName:          v.StateName,
		CreatorID:          v.CreatorID,
		AssigneeID:         v.AssigneeID,
		AssigneeName:       v.AssigneeName,
		DepartmentID:       v.DepartmentID,
		DepartmentName:     v.DepartmentName,
		ReferenceAt:        v.ReferenceAt,
		RelatedDocumentID:  v.RelatedDocumentID,
	}
}

// ToListDocumentsResponse converts a page of documents.
func ToListDocumentsResponse(page *domain.Page[domain.DocumentView]) ListDocumentsResponse {
	return ListDocumentsResponse{
		Documents: lo.Map(page.Items, func(v domain.DocumentView, _ int) DocumentResponse {
			return ToDocumentResponse(v)
		}),
		Total:      page.Total,
		PageNumber: page.PageNumber,
		PageSize:   page.PageSize,
	}
}

// HistoryResponse is one audit entry on the wire.
type HistoryResponse struct {
	HistoryID       int64     `json:"historyID"`
	DocumentID      int64     `json:"documentID"`
	DocumentTitle   string    `json:"documentTitle,omitempty"`
	UserID          int64     `json:"userID"`
	ResponsibleName string    `json:"responsibleName"`
	Action          string    `json:"action"`
	Comment         *string   `json:"comment,omitempty"`
	ActionAt        time.Time `json:"actionAt"`
}

// ToHistoryResponses converts audit records to their wire shape.
func ToHistoryResponses(records []domain.HistoryRecord) []HistoryResponse {
	return lo.Map(records, func(r domain.HistoryRecord, _ int) HistoryResponse {
		return HistoryResponse{
			HistoryID:       r.HistoryID,
			DocumentID:      r.DocumentID,
			DocumentTitle:   r.DocumentTitle,
			UserID:          r.UserID,
			ResponsibleName: r.ResponsibleName,
			Action:          r.Action,
			Comment:         r.Comment,
			ActionAt:        r.ActionAt,
		}
	})
}
