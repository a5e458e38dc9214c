package domain

import "time"

// DocumentState is the workflow state of a document. Values match the
// seeded rows of the document_states table.
type DocumentState int64

const (
	StateReceived  DocumentState = 1
	StatePending   DocumentState = 2
	StateProcessed DocumentState = 3
	StateArchived  DocumentState = 4
	StateDeleted   DocumentState = 5
	StateSent      DocumentState = 6
)

// IsDefined reports whether s is one of the known enum values.
func (s DocumentState) IsDefined() bool {
	return s >= StateReceived && s <= StateSent
}

func (s DocumentState) String() string {
	switch s {
	case StateReceived:
		return "Received"
	case StatePending:
		return "Pending"
	case StateProcessed:
		return "Processed"
	case StateArchived:
		return "Archived"
	case StateDeleted:
		return "Deleted"
	case StateSent:
		return "Sent"
	}
	return "Unknown"
}

// Document is a unit of work routed through the organization.
type Document struct {
	DocumentID        int64         `json:"documentID"`
	Title             string        `json:"title"`
	Description       *string       `json:"description,omitempty"`
	FilePath          string        `json:"filePath,omitempty"`
	ClassificationID  *int64        `json:"classificationID,omitempty"`
	DocumentTypeID    *int64        `json:"documentTypeID,omitempty"`
	StateID           DocumentState `json:"stateID"`
	CreatorID         *int64        `json:"creatorID,omitempty"`
	AssigneeID        *int64        `json:"assigneeID,omitempty"`
	DepartmentID      *int64        `json:"departmentID,omitempty"`
	ReferenceAt       time.Time     `json:"referenceAt"` // reset on every state change
	RelatedDocumentID *int64        `json:"relatedDocumentID,omitempty"`
	IsActive          bool          `json:"isActive"`
}

// HasFile reports whether a stored file is attached.
func (d Document) HasFile() bool {
	return d.FilePath != ""
}

// DocumentView is a document with its references resolved to names.
type DocumentView struct {
	Document
	ClassificationName string `json:"classificationName,omitempty"`
	DocumentTypeName   string `json:"documentTypeName,omitempty"`
	StateName          string `json:"stateName,omitempty"`
	DepartmentName     string `json:"departmentName,omitempty"`
	AssigneeName       string `json:"assigneeName,omitempty"`
}

// DocumentPatch is a sparse set of columns to update on one document.
// Nil fields are left untouched.
type DocumentPatch struct {
	Title            *string
	Description      *string
	FilePath         *string
	ClassificationID *int64
	DocumentTypeID   *int64
	StateID          *DocumentState
	AssigneeID       *int64
	DepartmentID     *int64
	ReferenceAt      *time.Time
	IsActive         *bool
}

// IsEmpty reports whether the patch would change nothing.
func (p DocumentPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.FilePath == nil &&
		p.ClassificationID == nil && p.DocumentTypeID == nil && p.StateID == nil &&
		p.AssigneeID == nil && p.DepartmentID == nil && p.ReferenceAt == nil && p.IsActive == nil
}

// DocumentFilter narrows a document listing.
type DocumentFilter struct {
	StateID          *DocumentState
	DepartmentID     *int64
	ClassificationID *int64
	Title            string
	AssigneeID       *int64 // set by the service from the caller's role
	PageNumber       int
	PageSize         int
}

// ReportFilter narrows the reporting listing.
type ReportFilter struct {
	StateID          *DocumentState
	ClassificationID *int64
	From             *time.Time
	To               *time.Time
	AssigneeID       *int64
	AssigneeRoleID   *Role
	PageNumber       int
	PageSize         int
}
