package handlers_test

import (
	"context"
	"io"
	"time"

	"github.com/SscSPs/docflow_app/internal/core/domain"
	portssvc "github.com/SscSPs/docflow_app/internal/core/ports/services"
	"github.com/SscSPs/docflow_app/internal/dto"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"
)

// --- Mock WorkflowService ---
type MockWorkflowService struct {
	mock.Mock
}

func (m *MockWorkflowService) ChangeState(ctx context.Context, documentID int64, req dto.ChangeStateRequest, actor domain.Identity) error {
	return m.Called(ctx, documentID, req, actor).Error(0)
}
func (m *MockWorkflowService) Reassign(ctx context.Context, documentID, assigneeID int64, actor domain.Identity) error {
	return m.Called(ctx, documentID, assigneeID, actor).Error(0)
}
func (m *MockWorkflowService) Register(ctx context.Context, req dto.RegisterDocumentRequest, file *dto.FileUpload, actor domain.Identity) (*domain.Document, error) {
	args := m.Called(ctx, req, file, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}
func (m *MockWorkflowService) UpdateDocument(ctx context.Context, documentID int64, req dto.UpdateDocumentRequest, actor domain.Identity) error {
	return m.Called(ctx, documentID, req, actor).Error(0)
}
func (m *MockWorkflowService) ReplaceFile(ctx context.Context, documentID int64, file dto.FileUpload, comment *string, actor domain.Identity) (string, error) {
	args := m.Called(ctx, documentID, file, comment, actor)
	return args.String(0), args.Error(1)
}
func (m *MockWorkflowService) DeleteDocument(ctx context.Context, documentID int64, actor domain.Identity) error {
	return m.Called(ctx, documentID, actor).Error(0)
}
func (m *MockWorkflowService) GetDocument(ctx context.Context, documentID int64) (*domain.DocumentView, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DocumentView), args.Error(1)
}
func (m *MockWorkflowService) ListDocuments(ctx context.Context, params dto.ListDocumentsParams, actor domain.Identity) (*domain.Page[domain.DocumentView], error) {
	args := m.Called(ctx, params, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Page[domain.DocumentView]), args.Error(1)
}
func (m *MockWorkflowService) ListAssignedDocuments(ctx context.Context, assigneeID int64, pendingOnly bool, actor domain.Identity) ([]domain.DocumentView, error) {
	args := m.Called(ctx, assigneeID, pendingOnly, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DocumentView), args.Error(1)
}
func (m *MockWorkflowService) OpenFile(ctx context.Context, documentID int64) (io.ReadCloser, string, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).(io.ReadCloser), args.String(1), args.Error(2)
}

// Ensure mock implements the interface
var _ portssvc.WorkflowSvcFacade = (*MockWorkflowService)(nil)

// --- Mock HistoryService ---
type MockHistoryService struct {
	mock.Mock
}

func (m *MockHistoryService) GetHistory(ctx context.Context, documentID int64) ([]domain.HistoryRecord, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.HistoryRecord), args.Error(1)
}

var _ portssvc.HistoryReaderSvc = (*MockHistoryService)(nil)

// MockHistoryFacade adds the recorder half for wiring the full container.
type MockHistoryFacade struct {
	MockHistoryService
}

func (m *MockHistoryFacade) Record(ctx context.Context, tx pgx.Tx, documentID, userID int64, action string, comment *string) error {
	return m.Called(ctx, tx, documentID, userID, action, comment).Error(0)
}

var _ portssvc.HistorySvcFacade = (*MockHistoryFacade)(nil)

// --- Mock AssistantService ---
type MockAssistantService struct {
	mock.Mock
}

func (m *MockAssistantService) VerifyDocument(ctx context.Context, query string) (*domain.DocumentStatusReport, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DocumentStatusReport), args.Error(1)
}
func (m *MockAssistantService) PendingReminders(ctx context.Context, userID int64) ([]domain.DocumentRef, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DocumentRef), args.Error(1)
}
func (m *MockAssistantService) ActionHistory(ctx context.Context, userID int64, from, to *time.Time) ([]domain.HistoryRecord, error) {
	args := m.Called(ctx, userID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.HistoryRecord), args.Error(1)
}
func (m *MockAssistantService) SearchTitles(ctx context.Context, query string) ([]domain.DocumentRef, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DocumentRef), args.Error(1)
}
func (m *MockAssistantService) DueReminders(ctx context.Context) ([]domain.DueReminder, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DueReminder), args.Error(1)
}
func (m *MockAssistantService) WeeklySummary(ctx context.Context) ([]domain.StateCount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StateCount), args.Error(1)
}

var _ portssvc.AssistantSvcFacade = (*MockAssistantService)(nil)

// --- Mock CatalogService ---
type MockCatalogService struct {
	mock.Mock
}

func (m *MockCatalogService) ListCatalog(ctx context.Context, kind domain.CatalogKind) ([]domain.CatalogItem, error) {
	args := m.Called(ctx, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CatalogItem), args.Error(1)
}
func (m *MockCatalogService) ListVisibleStates(ctx context.Context, role domain.Role) ([]domain.CatalogItem, error) {
	args := m.Called(ctx, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CatalogItem), args.Error(1)
}
func (m *MockCatalogService) ListUsers(ctx context.Context, departmentID *int64) ([]domain.CatalogItem, error) {
	args := m.Called(ctx, departmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CatalogItem), args.Error(1)
}
func (m *MockCatalogService) SearchDocumentCombo(ctx context.Context, title string) ([]domain.CatalogItem, error) {
	args := m.Called(ctx, title)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CatalogItem), args.Error(1)
}
func (m *MockCatalogService) CreateCatalogItem(ctx context.Context, kind domain.CatalogKind, name string, actor domain.Identity) (*domain.CatalogItem, error) {
	args := m.Called(ctx, kind, name, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CatalogItem), args.Error(1)
}
func (m *MockCatalogService) RenameCatalogItem(ctx context.Context, kind domain.CatalogKind, id int64, name string, actor domain.Identity) error {
	return m.Called(ctx, kind, id, name, actor).Error(0)
}
func (m *MockCatalogService) DeactivateCatalogItem(ctx context.Context, kind domain.CatalogKind, id int64, actor domain.Identity) error {
	return m.Called(ctx, kind, id, actor).Error(0)
}

var _ portssvc.CatalogSvcFacade = (*MockCatalogService)(nil)

// --- Mock UserService ---
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) GetUserByID(ctx context.Context, userID int64) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserService) CreateUser(ctx context.Context, req dto.CreateUserRequest, actor domain.Identity) (*domain.User, error) {
	args := m.Called(ctx, req, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserService) ListUsers(ctx context.Context, actor domain.Identity) ([]domain.User, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}
func (m *MockUserService) UpdateUser(ctx context.Context, userID int64, req dto.UpdateUserRequest, actor domain.Identity) error {
	return m.Called(ctx, userID, req, actor).Error(0)
}
func (m *MockUserService) DeactivateUser(ctx context.Context, userID int64, actor domain.Identity) error {
	return m.Called(ctx, userID, actor).Error(0)
}
func (m *MockUserService) AuthenticateUser(ctx context.Context, email, password string) (*domain.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

var _ portssvc.UserSvcFacade = (*MockUserService)(nil)

// --- Mock TokenService ---
type MockTokenService struct {
	mock.Mock
}

func (m *MockTokenService) GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

var _ portssvc.TokenSvcFacade = (*MockTokenService)(nil)

// --- Mock ReportingService ---
type MockReportingService struct {
	mock.Mock
}

func (m *MockReportingService) GetDashboard(ctx context.Context, params dto.DashboardParams) (*domain.Dashboard, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Dashboard), args.Error(1)
}
func (m *MockReportingService) ReportDocuments(ctx context.Context, params dto.ReportParams, actor domain.Identity) (*domain.Page[domain.DocumentView], error) {
	args := m.Called(ctx, params, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Page[domain.DocumentView]), args.Error(1)
}
func (m *MockReportingService) ExportDocuments(ctx context.Context, params dto.ReportParams, actor domain.Identity, w io.Writer) error {
	args := m.Called(ctx, params, actor, w)
	if fn, ok := args.Get(0).(func(io.Writer) error); ok {
		return fn(w)
	}
	return args.Error(0)
}

var _ portssvc.ReportingSvcFacade = (*MockReportingService)(nil)
