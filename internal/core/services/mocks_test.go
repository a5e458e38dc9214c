package services_test

import (
	"context"
	"io"
	"time"

	"github.com/SscSPs/docflow_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"
)

// fakeTx stands in for an open transaction. Only its identity matters.
type fakeTx struct {
	pgx.Tx
}

// --- Mock TransactionManager ---
type MockTxManager struct {
	mock.Mock
}

func (m *MockTxManager) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	tx, _ := args.Get(0).(pgx.Tx)
	return tx, args.Error(1)
}

func (m *MockTxManager) Commit(ctx context.Context, tx pgx.Tx) error {
	return m.Called(ctx, tx).Error(0)
}

func (m *MockTxManager) Rollback(ctx context.Context, tx pgx.Tx) error {
	return m.Called(ctx, tx).Error(0)
}

// --- Mock DocumentRepository ---
type MockDocumentRepository struct {
	mock.Mock
}

func (m *MockDocumentRepository) FindDocumentByID(ctx context.Context, documentID int64) (*domain.DocumentView, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DocumentView), args.Error(1)
}

func (m *MockDocumentRepository) ListDocuments(ctx context.Context, filter domain.DocumentFilter) ([]domain.DocumentView, int, error) {
	args := m.Called(ctx, filter)
	var docs []domain.DocumentView
	if args.Get(0) != nil {
		docs = args.Get(0).([]domain.DocumentView)
	}
	return docs, args.Int(1), args.Error(2)
}

func (m *MockDocumentRepository) ListByAssignee(ctx context.Context, assigneeID int64, state *domain.DocumentState) ([]domain.DocumentView, error) {
	args := m.Called(ctx, assigneeID, state)
	var docs []domain.DocumentView
	if args.Get(0) != nil {
		docs = args.Get(0).([]domain.DocumentView)
	}
	return docs, args.Error(1)
}

func (m *MockDocumentRepository) FindFirstByText(ctx context.Context, text string) (*domain.DocumentView, error) {
	args := m.Called(ctx, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DocumentView), args.Error(1)
}

func (m *MockDocumentRepository) SearchTitles(ctx context.Context, text string, limit int) ([]domain.DocumentRef, error) {
	args := m.Called(ctx, text, limit)
	var refs []domain.DocumentRef
	if args.Get(0) != nil {
		refs = args.Get(0).([]domain.DocumentRef)
	}
	return refs, args.Error(1)
}

func (m *MockDocumentRepository) ListPending(ctx context.Context) ([]domain.PendingDocument, error) {
	args := m.Called(ctx)
	var docs []domain.PendingDocument
	if args.Get(0) != nil {
		docs = args.Get(0).([]domain.PendingDocument)
	}
	return docs, args.Error(1)
}

func (m *MockDocumentRepository) CountByStateSince(ctx context.Context, from, to time.Time) ([]domain.StateCount, error) {
	args := m.Called(ctx, from, to)
	var counts []domain.StateCount
	if args.Get(0) != nil {
		counts = args.Get(0).([]domain.StateCount)
	}
	return counts, args.Error(1)
}

func (m *MockDocumentRepository) InsertDocument(ctx context.Context, tx pgx.Tx, doc domain.Document) (int64, error) {
	args := m.Called(ctx, tx, doc)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDocumentRepository) LockDocumentTx(ctx context.Context, tx pgx.Tx, documentID int64) (*domain.Document, error) {
	args := m.Called(ctx, tx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}

func (m *MockDocumentRepository) PatchDocument(ctx context.Context, tx pgx.Tx, documentID int64, patch domain.DocumentPatch) error {
	return m.Called(ctx, tx, documentID, patch).Error(0)
}

// --- Mock HistoryRepository ---
type MockHistoryRepository struct {
	mock.Mock
}

func (m *MockHistoryRepository) ListByDocument(ctx context.Context, documentID int64) ([]domain.HistoryRecord, error) {
	args := m.Called(ctx, documentID)
	var records []domain.HistoryRecord
	if args.Get(0) != nil {
		records = args.Get(0).([]domain.HistoryRecord)
	}
	return records, args.Error(1)
}

func (m *MockHistoryRepository) ListByUser(ctx context.Context, userID int64, from, to *time.Time) ([]domain.HistoryRecord, error) {
	args := m.Called(ctx, userID, from, to)
	var records []domain.HistoryRecord
	if args.Get(0) != nil {
		records = args.Get(0).([]domain.HistoryRecord)
	}
	return records, args.Error(1)
}

func (m *MockHistoryRepository) LatestActionAt(ctx context.Context, documentID int64) (*time.Time, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*time.Time), args.Error(1)
}

func (m *MockHistoryRepository) AppendEntry(ctx context.Context, tx pgx.Tx, entry domain.HistoryEntry) (int64, error) {
	args := m.Called(ctx, tx, entry)
	return args.Get(0).(int64), args.Error(1)
}

// --- Mock UserRepository ---
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) user(args mock.Arguments) (*domain.User, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID int64) (*domain.User, error) {
	return m.user(m.Called(ctx, userID))
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return m.user(m.Called(ctx, email))
}

func (m *MockUserRepository) FindFirstActiveUserByRole(ctx context.Context, role domain.Role) (*domain.User, error) {
	return m.user(m.Called(ctx, role))
}

func (m *MockUserRepository) ListActiveUsers(ctx context.Context, departmentID *int64) ([]domain.User, error) {
	args := m.Called(ctx, departmentID)
	var users []domain.User
	if args.Get(0) != nil {
		users = args.Get(0).([]domain.User)
	}
	return users, args.Error(1)
}

func (m *MockUserRepository) ListUsers(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	var users []domain.User
	if args.Get(0) != nil {
		users = args.Get(0).([]domain.User)
	}
	return users, args.Error(1)
}

func (m *MockUserRepository) EmailTakenByOther(ctx context.Context, email string, userID int64) (bool, error) {
	args := m.Called(ctx, email, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) FindUserByIDTx(ctx context.Context, tx pgx.Tx, userID int64) (*domain.User, error) {
	return m.user(m.Called(ctx, tx, userID))
}

func (m *MockUserRepository) FindFirstActiveUserByRoleTx(ctx context.Context, tx pgx.Tx, role domain.Role) (*domain.User, error) {
	return m.user(m.Called(ctx, tx, role))
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) (int64, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) PatchUser(ctx context.Context, userID int64, patch domain.UserPatch) error {
	return m.Called(ctx, userID, patch).Error(0)
}

// --- Mock CatalogRepository ---
type MockCatalogRepository struct {
	mock.Mock
}

func (m *MockCatalogRepository) ListActive(ctx context.Context, kind domain.CatalogKind) ([]domain.CatalogItem, error) {
	args := m.Called(ctx, kind)
	var items []domain.CatalogItem
	if args.Get(0) != nil {
		items = args.Get(0).([]domain.CatalogItem)
	}
	return items, args.Error(1)
}

func (m *MockCatalogRepository) FindByID(ctx context.Context, kind domain.CatalogKind, id int64) (*domain.CatalogItem, error) {
	args := m.Called(ctx, kind, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CatalogItem), args.Error(1)
}

func (m *MockCatalogRepository) FindActiveStateTx(ctx context.Context, tx pgx.Tx, state domain.DocumentState) (*domain.CatalogItem, error) {
	args := m.Called(ctx, tx, state)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CatalogItem), args.Error(1)
}

func (m *MockCatalogRepository) CreateItem(ctx context.Context, kind domain.CatalogKind, name string) (int64, error) {
	args := m.Called(ctx, kind, name)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCatalogRepository) RenameItem(ctx context.Context, kind domain.CatalogKind, id int64, name string) error {
	return m.Called(ctx, kind, id, name).Error(0)
}

func (m *MockCatalogRepository) SetItemActive(ctx context.Context, kind domain.CatalogKind, id int64, active bool) error {
	return m.Called(ctx, kind, id, active).Error(0)
}

// --- Mock ReportingRepository ---
type MockReportingRepository struct {
	mock.Mock
}

func (m *MockReportingRepository) counts(args mock.Arguments) ([]domain.NamedCount, error) {
	var counts []domain.NamedCount
	if args.Get(0) != nil {
		counts = args.Get(0).([]domain.NamedCount)
	}
	return counts, args.Error(1)
}

func (m *MockReportingRepository) CountByState(ctx context.Context, from, to *time.Time) ([]domain.NamedCount, error) {
	return m.counts(m.Called(ctx, from, to))
}

func (m *MockReportingRepository) CountByClassification(ctx context.Context, from, to *time.Time) ([]domain.NamedCount, error) {
	return m.counts(m.Called(ctx, from, to))
}

func (m *MockReportingRepository) CountByDocumentType(ctx context.Context, from, to *time.Time) ([]domain.NamedCount, error) {
	return m.counts(m.Called(ctx, from, to))
}

func (m *MockReportingRepository) ListReport(ctx context.Context, filter domain.ReportFilter) ([]domain.DocumentView, int, error) {
	args := m.Called(ctx, filter)
	var docs []domain.DocumentView
	if args.Get(0) != nil {
		docs = args.Get(0).([]domain.DocumentView)
	}
	return docs, args.Int(1), args.Error(2)
}

// --- Mock FileStorage ---
type MockFileStorage struct {
	mock.Mock
}

func (m *MockFileStorage) Store(ctx context.Context, r io.Reader, suggestedName, folder string) (string, error) {
	args := m.Called(ctx, r, suggestedName, folder)
	return args.String(0), args.Error(1)
}

func (m *MockFileStorage) Delete(ctx context.Context, path string) error {
	return m.Called(ctx, path).Error(0)
}

func (m *MockFileStorage) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	args := m.Called(ctx, path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.ReadCloser), args.Error(1)
}
