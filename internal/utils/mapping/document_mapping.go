package mapping

import (
	"github.com/SscSPs/docflow_app/internal/core/domain"
	"github.com/SscSPs/docflow_app/internal/models"
)

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func nilIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// ToModelDocument converts a domain Document to a model Document
func ToModelDocument(d domain.Document) models.Document {
	return models.Document{
		DocumentID:        d.DocumentID,
		Title:             d.Title,
		Description:       d.Description,
		FilePath:          nilIfEmpty(d.FilePath),
		ClassificationID:  d.ClassificationID,
		DocumentTypeID:    d.DocumentTypeID,
		StateID:           int64(d.StateID),
		CreatorID:         d.CreatorID,
		AssigneeID:        d.AssigneeID,
		DepartmentID:      d.DepartmentID,
		ReferenceAt:       d.ReferenceAt,
		RelatedDocumentID: d.RelatedDocumentID,
		IsActive:          d.IsActive,
	}
}

// ToDomainDocument converts a model Document to a domain Document
func ToDomainDocument(m models.Document) domain.Document {
	return domain.Document{
		DocumentID:        m.DocumentID,
		Title:             m.Title,
		Description:       m.Description,
		FilePath:          deref(m.FilePath),
		ClassificationID:  m.ClassificationID,
		DocumentTypeID:    m.DocumentTypeID,
		StateID:           domain.DocumentState(m.StateID),
		CreatorID:         m.CreatorID,
		AssigneeID:        m.AssigneeID,
		DepartmentID:      m.DepartmentID,
		ReferenceAt:       m.ReferenceAt,
		RelatedDocumentID: m.RelatedDocumentID,
		IsActive:          m.IsActive,
	}
}

// ToDomainDocumentView converts a joined model row
func ToDomainDocumentView(m models.DocumentView) domain.DocumentView {
	return domain.DocumentView{
		Document:           ToDomainDocument(m.Document),
		ClassificationName: deref(m.ClassificationName),
		DocumentTypeName:   deref(m.DocumentTypeName),
		StateName:          deref(m.StateName),
		DepartmentName:     deref(m.DepartmentName),
		AssigneeName:       deref(m.AssigneeName),
	}
}

// ToDomainDocumentViewSlice converts a slice of joined model rows
func ToDomainDocumentViewSlice(ms []models.DocumentView) []domain.DocumentView {
	ds := make([]domain.DocumentView, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainDocumentView(m)
	}
	return ds
}

// ToDomainDocumentPage converts page rows and extracts the total count.
func ToDomainDocumentPage(rows []models.DocumentPageRow) ([]domain.DocumentView, int) {
	ds := make([]domain.DocumentView, len(rows))
	total := 0
	for i, r := range rows {
		ds[i] = ToDomainDocumentView(r.DocumentView)
		total = int(r.TotalCount)
	}
	return ds, total
}
