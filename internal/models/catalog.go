package models

// CatalogItem is a row of any lookup table, with its key aliased to id.
type CatalogItem struct {
	ID       int64  `db:"id"`
	Name     string `db:"name"`
	IsActive bool   `db:"is_active"`
}

// NamedCount is a grouped count keyed by a lookup row.
type NamedCount struct {
	ID    int64  `db:"id"`
	Name  string `db:"name"`
	Count int64  `db:"count"`
}
