package dto

// CatalogItemRequest creates or renames a lookup row.
type CatalogItemRequest struct {
	Name string `json:"name" binding:"required,max=150"`
}
