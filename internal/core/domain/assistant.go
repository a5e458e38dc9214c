package domain

import "time"

// DocumentStatusReport answers "where is my document?".
type DocumentStatusReport struct {
	DocumentID   int64      `json:"documentID"`
	Title        string     `json:"title"`
	Description  *string    `json:"description,omitempty"`
	StateName    string     `json:"stateName"`
	LastActionAt *time.Time `json:"lastActionAt,omitempty"`
}

// DocumentRef is a document identifier with its title.
type DocumentRef struct {
	DocumentID int64  `json:"documentID"`
	Title      string `json:"title"`
}

// PendingDocument is a pending document with its aging anchor.
type PendingDocument struct {
	DocumentID  int64     `json:"documentID"`
	Title       string    `json:"title"`
	AssigneeID  *int64    `json:"assigneeID,omitempty"`
	ReferenceAt time.Time `json:"referenceAt"`
}

// DueReminder is a pending document past, or near, its due date.
type DueReminder struct {
	DocumentID int64          `json:"documentID"`
	Title      string         `json:"title"`
	AssigneeID *int64         `json:"assigneeID,omitempty"`
	Status     DeadlineStatus `json:"-"`
	DueDate    time.Time      `json:"dueDate"`
	Message    string         `json:"message"`
}

// StateCount is a number of documents in one state.
type StateCount struct {
	StateID   DocumentState `json:"stateID"`
	StateName string        `json:"stateName"`
	Count     int           `json:"count"`
	Message   string        `json:"message,omitempty"`
}
