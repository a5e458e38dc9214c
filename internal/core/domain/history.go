package domain

import "time"

// HistoryEntry is one immutable audit row: an action taken on a document
// by a user at an instant.
type HistoryEntry struct {
	HistoryID  int64     `json:"historyID"`
	DocumentID int64     `json:"documentID"`
	UserID     int64     `json:"userID"`
	Action     string    `json:"action"`
	Comment    *string   `json:"comment,omitempty"`
	ActionAt   time.Time `json:"actionAt"`
	IsActive   bool      `json:"isActive"`
}

// HistoryRecord is a HistoryEntry resolved for display.
type HistoryRecord struct {
	HistoryEntry
	ResponsibleName string `json:"responsibleName"`
	DocumentTitle   string `json:"documentTitle"`
}
