package handlers_test

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/SscSPs/docflow_app/internal/apperrors"
	"github.com/SscSPs/docflow_app/internal/core/domain"
	"github.com/SscSPs/docflow_app/internal/dto"
	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
	"github.com/stretchr/testify/mock"
)

func (suite *HandlerTestSuite) TestVerifyDocument() {
	suite.mockAssistant.On("VerifyDocument", mock.Anything, "lease").Return(&domain.DocumentStatusReport{
		DocumentID: 41, Title: "Lease contract", StateName: "Pending",
	}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/assistant/verify?query=lease", nil, "", assistantIdentity)

	suite.Equal(http.StatusOK, w.Code)
	var report domain.DocumentStatusReport
	suite.Require().NoError(json.Unmarshal(suite.decode(w).Data, &report))
	suite.Equal("Pending", report.StateName)
}

func (suite *HandlerTestSuite) TestVerifyDocument_NotFound() {
	suite.mockAssistant.On("VerifyDocument", mock.Anything, "ghost").Return(nil, apperrors.NewNotFoundError("document")).Once()

	w := suite.do(http.MethodGet, "/api/v1/assistant/verify?query=ghost", nil, "", assistantIdentity)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *HandlerTestSuite) TestPendingRemindersUsesCaller() {
	suite.mockAssistant.On("PendingReminders", mock.Anything, int64(2)).
		Return([]domain.DocumentRef{{DocumentID: 3, Title: "Invoice"}}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/assistant/reminders", nil, "", assistantIdentity)

	suite.Equal(http.StatusOK, w.Code)
}

func (suite *HandlerTestSuite) TestActionHistory_EmptyIsUnsuccessfulButOK() {
	suite.mockAssistant.On("ActionHistory", mock.Anything, int64(2),
		mock.MatchedBy(func(from *time.Time) bool {
			return from != nil && from.Year() == 2024 && from.Month() == time.March && from.Day() == 1
		}),
		(*time.Time)(nil),
	).Return([]domain.HistoryRecord{}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/assistant/history?from=2024-03-01", nil, "", assistantIdentity)

	suite.Equal(http.StatusOK, w.Code)
	env := suite.decode(w)
	suite.False(env.Success)
	suite.Equal("No results found", env.Message)
}

func (suite *HandlerTestSuite) TestActionHistory_InvertedRange() {
	suite.mockAssistant.On("ActionHistory", mock.Anything, int64(2), mock.Anything, mock.Anything).
		Return(nil, apperrors.NewValidationFailedError("from must not be after to")).Once()

	w := suite.do(http.MethodGet, "/api/v1/assistant/history?from=2024-03-09&to=2024-03-01", nil, "", assistantIdentity)

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestDueReminders() {
	suite.mockAssistant.On("DueReminders", mock.Anything).Return([]domain.DueReminder{
		{DocumentID: 3, Title: "Invoice", Message: "Invoice expired, was due on Monday"},
	}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/assistant/due", nil, "", adminIdentity)

	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(string(suite.decode(w).Data), "was due on Monday")
}

func (suite *HandlerTestSuite) TestListCatalog_KnownKind() {
	suite.mockCatalog.On("ListCatalog", mock.Anything, domain.CatalogDocumentType).
		Return([]domain.CatalogItem{{ID: 1, Name: "Invoice", IsActive: true}}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/catalogs/items/document-types", nil, "", assistantIdentity)

	suite.Equal(http.StatusOK, w.Code)
}

func (suite *HandlerTestSuite) TestListCatalog_UnknownKind() {
	w := suite.do(http.MethodGet, "/api/v1/catalogs/items/planets", nil, "", assistantIdentity)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.Equal("Unknown catalog planets", suite.decode(w).Message)
}

func (suite *HandlerTestSuite) TestListVisibleStatesUsesCallerRole() {
	suite.mockCatalog.On("ListVisibleStates", mock.Anything, domain.RoleFrontDesk).
		Return([]domain.CatalogItem{{ID: 4, Name: "Archived", IsActive: true}}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/catalogs/states", nil, "", domain.Identity{UserID: 3, RoleID: domain.RoleFrontDesk})

	suite.Equal(http.StatusOK, w.Code)
}

func (suite *HandlerTestSuite) TestListUsers_ByDepartment() {
	suite.mockCatalog.On("ListUsers", mock.Anything, lo.ToPtr(int64(4))).
		Return([]domain.CatalogItem{{ID: 0, Name: "No matches"}}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/catalogs/users?departmentID=4", nil, "", adminIdentity)

	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(string(suite.decode(w).Data), "No matches")
}

func (suite *HandlerTestSuite) TestListUsers_BadDepartment() {
	w := suite.do(http.MethodGet, "/api/v1/catalogs/users?departmentID=abc", nil, "", adminIdentity)

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestCreateCatalogItem() {
	suite.mockCatalog.On("CreateCatalogItem", mock.Anything, domain.CatalogDepartment, "Legal", adminIdentity).
		Return(&domain.CatalogItem{ID: 5, Name: "Legal", IsActive: true}, nil).Once()

	w := suite.doJSON(http.MethodPost, "/api/v1/catalogs/items/departments", gin.H{"name": "Legal"}, adminIdentity)

	suite.Equal(http.StatusCreated, w.Code)
}

func (suite *HandlerTestSuite) TestDeactivateCatalogItem_Forbidden() {
	suite.mockCatalog.On("DeactivateCatalogItem", mock.Anything, domain.CatalogClassification, int64(5), assistantIdentity).
		Return(apperrors.NewForbiddenError("only administrators can maintain catalogs")).Once()

	w := suite.do(http.MethodDelete, "/api/v1/catalogs/items/classifications/5", nil, "", assistantIdentity)

	suite.Equal(http.StatusForbidden, w.Code)
}

func (suite *HandlerTestSuite) TestGetDashboard_Period() {
	suite.mockReporting.On("GetDashboard", mock.Anything,
		mock.MatchedBy(func(p dto.DashboardParams) bool { return p.PeriodID == int(domain.PeriodWeek) && p.From == nil }),
	).Return(&domain.Dashboard{ByState: []domain.NamedCount{{ID: 2, Name: "Pending", Count: 4}}}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/dashboard?periodID=2", nil, "", adminIdentity)

	suite.Equal(http.StatusOK, w.Code)
	var dashboard domain.Dashboard
	suite.Require().NoError(json.Unmarshal(suite.decode(w).Data, &dashboard))
	suite.Equal(4, dashboard.ByState[0].Count)
}

func (suite *HandlerTestSuite) TestReportDocuments_ForbiddenRole() {
	other := domain.Identity{UserID: 4, RoleID: domain.Role(9)}
	suite.mockReporting.On("ReportDocuments", mock.Anything, mock.Anything, other).
		Return(nil, apperrors.NewForbiddenError("role cannot view reports")).Once()

	w := suite.do(http.MethodGet, "/api/v1/reports/documents", nil, "", other)

	suite.Equal(http.StatusForbidden, w.Code)
}

func (suite *HandlerTestSuite) TestExportDocuments_WritesWorkbook() {
	suite.mockReporting.On("ExportDocuments", mock.Anything,
		mock.MatchedBy(func(p dto.ReportParams) bool { return p.StateID != nil && *p.StateID == 3 }),
		adminIdentity, mock.Anything,
	).Return(func(w io.Writer) error {
		_, err := w.Write([]byte("PK-workbook"))
		return err
	}).Once()

	w := suite.do(http.MethodGet, "/api/v1/reports/documents/export?stateID=3", nil, "", adminIdentity)

	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("PK-workbook", w.Body.String())
	suite.Contains(w.Header().Get("Content-Type"), "spreadsheetml")
	suite.Contains(w.Header().Get("Content-Disposition"), "documents_report.xlsx")
}

func (suite *HandlerTestSuite) TestExportDocuments_FailureIsEnvelope() {
	suite.mockReporting.On("ExportDocuments", mock.Anything, mock.Anything, adminIdentity, mock.Anything).
		Return(apperrors.NewValidationFailedError("from must not be after to")).Once()

	w := suite.do(http.MethodGet, "/api/v1/reports/documents/export", nil, "", adminIdentity)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.False(suite.decode(w).Success)
}
