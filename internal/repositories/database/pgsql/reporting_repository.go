package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/docflow_app/internal/apperrors"
	"github.com/SscSPs/docflow_app/internal/core/domain"
	portsrepo "github.com/SscSPs/docflow_app/internal/core/ports/repositories"
	"github.com/SscSPs/docflow_app/internal/models"
	"github.com/SscSPs/docflow_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// reportingRepository implements the ReportingRepositoryFacade interface
type reportingRepository struct {
	BaseRepository
}

func newReportingRepository(db *pgxpool.Pool) portsrepo.ReportingRepositoryFacade {
	return &reportingRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

// countBy groups active documents by a lookup table. Every active lookup
// row is returned, with zero when no document references it.
func (r *reportingRepository) countBy(ctx context.Context, t catalogTable, docColumn string, from, to *time.Time) ([]domain.NamedCount, error) {
	w := &whereBuilder{}
	join := "d." + docColumn + " = l." + t.key + " AND d.is_active"
	if from != nil {
		join += " AND d.created_at >= " + w.next(*from)
	}
	if to != nil {
		join += " AND d.created_at < " + w.next(*to)
	}
	query := fmt.Sprintf(`
		SELECT l.%s AS id, l.name, COUNT(d.document_id) AS count
		FROM %s l
		LEFT JOIN documents d ON %s
		WHERE l.is_active
		GROUP BY l.%s, l.name
		ORDER BY l.%s`, t.key, t.table, join, t.key, t.key)

	rows, err := r.Pool.Query(ctx, query, w.args...)
	if err != nil {
		return nil, apperrors.NewPersistenceError("error querying counts by "+t.table, err)
	}
	counts, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.NamedCount])
	if err != nil {
		return nil, apperrors.NewPersistenceError("error scanning counts by "+t.table, err)
	}
	return mapping.ToDomainNamedCountSlice(counts), nil
}

func (r *reportingRepository) CountByState(ctx context.Context, from, to *time.Time) ([]domain.NamedCount, error) {
	return r.countBy(ctx, catalogTables[domain.CatalogState], "state_id", from, to)
}

func (r *reportingRepository) CountByClassification(ctx context.Context, from, to *time.Time) ([]domain.NamedCount, error) {
	return r.countBy(ctx, catalogTables[domain.CatalogClassification], "classification_id", from, to)
}

func (r *reportingRepository) CountByDocumentType(ctx context.Context, from, to *time.Time) ([]domain.NamedCount, error) {
	return r.countBy(ctx, catalogTables[domain.CatalogDocumentType], "document_type_id", from, to)
}

// ListReport returns one page of active documents matching the report filter, newest first.
func (r *reportingRepository) ListReport(ctx context.Context, filter domain.ReportFilter) ([]domain.DocumentView, int, error) {
	w := &whereBuilder{}
	w.addRaw("d.is_active")
	if filter.StateID != nil {
		w.add("d.state_id = ?", int64(*filter.StateID))
	}
	if filter.ClassificationID != nil {
		w.add("d.classification_id = ?", *filter.ClassificationID)
	}
	if filter.From != nil {
		w.add("d.created_at >= ?", *filter.From)
	}
	if filter.To != nil {
		w.add("d.created_at < ?", *filter.To)
	}
	if filter.AssigneeID != nil {
		w.add("d.assignee_id = ?", *filter.AssigneeID)
	}
	if filter.AssigneeRoleID != nil {
		w.add("u.role_id = ?", int64(*filter.AssigneeRoleID))
	}

	query := "SELECT" + documentViewColumns + ", COUNT(*) OVER() AS total_count" + documentViewFrom + w.String() +
		" ORDER BY d.document_id DESC"
	if filter.PageSize > 0 {
		pageNumber, pageSize := domain.NormalizePaging(filter.PageNumber, filter.PageSize)
		query += " LIMIT " + w.next(pageSize) + " OFFSET " + w.next((pageNumber-1)*pageSize)
	}

	rows, err := r.Pool.Query(ctx, query, w.args...)
	if err != nil {
		return nil, 0, apperrors.NewPersistenceError("error querying report", err)
	}
	page, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.DocumentPageRow])
	if err != nil {
		return nil, 0, apperrors.NewPersistenceError("error scanning report", err)
	}
	docs, total := mapping.ToDomainDocumentPage(page)
	return docs, total, nil
}
