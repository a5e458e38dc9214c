package domain

// CatalogItem is a named lookup row (classification, document type,
// department, role or state).
type CatalogItem struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	IsActive bool   `json:"isActive"`
}

// CatalogKind selects which lookup table a CatalogItem belongs to.
type CatalogKind string

const (
	CatalogClassification CatalogKind = "classification"
	CatalogDocumentType   CatalogKind = "document_type"
	CatalogDepartment     CatalogKind = "department"
	CatalogRole           CatalogKind = "role"
	CatalogState          CatalogKind = "state"
)

// Page is one slice of a larger ordered result.
type Page[T any] struct {
	Items      []T `json:"items"`
	Total      int `json:"total"`
	PageNumber int `json:"pageNumber"`
	PageSize   int `json:"pageSize"`
}

// Default and maximum page sizes for listings.
const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// NormalizePaging clamps page number and size to sane values.
func NormalizePaging(pageNumber, pageSize int) (int, int) {
	if pageNumber < 1 {
		pageNumber = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return pageNumber, pageSize
}
