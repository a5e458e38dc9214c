package mapping

import (
	"github.com/SscSPs/docflow_app/internal/core/domain"
	"github.com/SscSPs/docflow_app/internal/models"
)

// ToModelHistoryEntry converts a domain HistoryEntry to a model HistoryEntry
func ToModelHistoryEntry(d domain.HistoryEntry) models.HistoryEntry {
	return models.HistoryEntry{
		HistoryID:  d.HistoryID,
		DocumentID: d.DocumentID,
		UserID:     d.UserID,
		Action:     d.Action,
		Comment:    d.Comment,
		ActionAt:   d.ActionAt,
		IsActive:   d.IsActive,
	}
}

// ToDomainHistoryRecordSlice converts joined history rows
func ToDomainHistoryRecordSlice(ms []models.HistoryRecord) []domain.HistoryRecord {
	ds := make([]domain.HistoryRecord, len(ms))
	for i, m := range ms {
		ds[i] = domain.HistoryRecord{
			HistoryEntry: domain.HistoryEntry{
				HistoryID:  m.HistoryID,
				DocumentID: m.DocumentID,
				UserID:     m.UserID,
				Action:     m.Action,
				Comment:    m.Comment,
				ActionAt:   m.ActionAt,
				IsActive:   m.IsActive,
			},
			ResponsibleName: m.ResponsibleName,
			DocumentTitle:   m.DocumentTitle,
		}
	}
	return ds
}
