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

const historyRecordSelect = `
	SELECT h.history_id, h.document_id, h.user_id, h.action, h.comment, h.action_at, h.is_active,
		TRIM(COALESCE(u.first_name, '') || ' ' || COALESCE(u.last_name, '')) AS responsible_name,
		COALESCE(d.title, '') AS document_title
	FROM document_history h
	LEFT JOIN users u ON u.user_id = h.user_id
	LEFT JOIN documents d ON d.document_id = h.document_id`

// Entries may share a timestamp, history_id breaks ties.
const historyOrder = " ORDER BY h.action_at DESC, h.history_id DESC"

type PgxHistoryRepository struct {
	BaseRepository
}

func newPgxHistoryRepository(pool *pgxpool.Pool) portsrepo.HistoryRepositoryFacade {
	return &PgxHistoryRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.HistoryRepositoryFacade = (*PgxHistoryRepository)(nil)

// AppendEntry inserts one audit entry inside tx.
func (r *PgxHistoryRepository) AppendEntry(ctx context.Context, tx pgx.Tx, entry domain.HistoryEntry) (int64, error) {
	m := mapping.ToModelHistoryEntry(entry)
	query := `
		INSERT INTO document_history (document_id, user_id, action, comment, action_at, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING history_id;
	`
	var id int64
	if err := tx.QueryRow(ctx, query, m.DocumentID, m.UserID, m.Action, m.Comment, m.ActionAt, m.IsActive).Scan(&id); err != nil {
		if isForeignKeyViolation(err) {
			return 0, apperrors.NewNotFoundError("document or user")
		}
		return 0, apperrors.NewPersistenceError(fmt.Sprintf("failed to append history for document %d", m.DocumentID), err)
	}
	return id, nil
}

func (r *PgxHistoryRepository) collect(ctx context.Context, query string, args ...any) ([]domain.HistoryRecord, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewPersistenceError("failed to query history", err)
	}
	records, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.HistoryRecord])
	if err != nil {
		return nil, apperrors.NewPersistenceError("failed to scan history", err)
	}
	return mapping.ToDomainHistoryRecordSlice(records), nil
}

// ListByDocument returns a document's entries, newest first.
func (r *PgxHistoryRepository) ListByDocument(ctx context.Context, documentID int64) ([]domain.HistoryRecord, error) {
	return r.collect(ctx, historyRecordSelect+" WHERE h.document_id = $1 AND h.is_active"+historyOrder, documentID)
}

// ListByUser returns a user's entries within the optional bounds, newest first.
func (r *PgxHistoryRepository) ListByUser(ctx context.Context, userID int64, from, to *time.Time) ([]domain.HistoryRecord, error) {
	w := &whereBuilder{}
	w.addRaw("h.is_active")
	w.add("h.user_id = ?", userID)
	if from != nil {
		w.add("h.action_at >= ?", *from)
	}
	if to != nil {
		w.add("h.action_at <= ?", *to)
	}
	return r.collect(ctx, historyRecordSelect+w.String()+historyOrder, w.args...)
}

// LatestActionAt returns the newest entry timestamp for a document, nil if none.
func (r *PgxHistoryRepository) LatestActionAt(ctx context.Context, documentID int64) (*time.Time, error) {
	var latest *time.Time
	err := r.Pool.QueryRow(ctx, `SELECT MAX(action_at) FROM document_history WHERE document_id = $1 AND is_active`, documentID).Scan(&latest)
	if err != nil {
		return nil, apperrors.NewPersistenceError("failed to read latest history timestamp", err)
	}
	return latest, nil
}
