package models

import "time"

// HistoryEntry is a row of the document_history table.
type HistoryEntry struct {
	HistoryID  int64     `db:"history_id"`
	DocumentID int64     `db:"document_id"`
	UserID     int64     `db:"user_id"`
	Action     string    `db:"action"`
	Comment    *string   `db:"comment"`
	ActionAt   time.Time `db:"action_at"`
	IsActive   bool      `db:"is_active"`
}

// HistoryRecord is an entry joined with user and document names.
type HistoryRecord struct {
	HistoryEntry
	ResponsibleName string `db:"responsible_name"`
	DocumentTitle   string `db:"document_title"`
}
