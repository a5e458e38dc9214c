package handlers_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/SscSPs/docflow_app/internal/apperrors"
	"github.com/SscSPs/docflow_app/internal/core/domain"
	"github.com/SscSPs/docflow_app/internal/dto"
	"github.com/SscSPs/docflow_app/internal/handlers"
	"github.com/SscSPs/docflow_app/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
	"github.com/stretchr/testify/mock"
)

// multipartBody builds a form with fields and, when fileName is set, a file part.
func (suite *HandlerTestSuite) multipartBody(fields map[string]string, fileName, content string) (*bytes.Buffer, string) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		suite.Require().NoError(mw.WriteField(k, v))
	}
	if fileName != "" {
		part, err := mw.CreateFormFile("file", fileName)
		suite.Require().NoError(err)
		_, err = part.Write([]byte(content))
		suite.Require().NoError(err)
	}
	suite.Require().NoError(mw.Close())
	return &buf, mw.FormDataContentType()
}

func (suite *HandlerTestSuite) TestRegisterDocument_WithFile() {
	var gotName, gotContent string
	suite.mockWorkflow.On("Register", mock.Anything,
		mock.MatchedBy(func(req dto.RegisterDocumentRequest) bool {
			return req.Title == "Lease contract" && req.ClassificationID != nil && *req.ClassificationID == 2 &&
				req.RelatedDocumentID != nil && *req.RelatedDocumentID == 40
		}),
		mock.AnythingOfType("*dto.FileUpload"),
		adminIdentity,
	).Run(func(args mock.Arguments) {
		upload := args.Get(2).(*dto.FileUpload)
		gotName = upload.Name
		raw, _ := io.ReadAll(upload.Content)
		gotContent = string(raw)
	}).Return(&domain.Document{DocumentID: 41, Title: "Lease contract", FilePath: "Legal/abc_lease.pdf", StateID: domain.StateReceived}, nil).Once()

	body, contentType := suite.multipartBody(map[string]string{
		"title":             "Lease contract",
		"classificationID":  "2",
		"relatedDocumentID": "40",
	}, "lease.pdf", "%PDF-1.4")
	w := suite.do(http.MethodPost, "/api/v1/documents", body, contentType, adminIdentity)

	suite.Equal(http.StatusCreated, w.Code, w.Body.String())
	env := suite.decode(w)
	suite.True(env.Success)
	var doc dto.DocumentResponse
	suite.Require().NoError(json.Unmarshal(env.Data, &doc))
	suite.Equal(int64(41), doc.DocumentID)
	suite.Equal("Legal/abc_lease.pdf", doc.FilePath)
	suite.Equal("lease.pdf", gotName)
	suite.Equal("%PDF-1.4", gotContent)
}

func (suite *HandlerTestSuite) TestRegisterDocument_WithoutFile() {
	suite.mockWorkflow.On("Register", mock.Anything,
		mock.MatchedBy(func(req dto.RegisterDocumentRequest) bool { return req.Title == "Memo" }),
		(*dto.FileUpload)(nil),
		assistantIdentity,
	).Return(&domain.Document{DocumentID: 7, Title: "Memo", StateID: domain.StateReceived}, nil).Once()

	body, contentType := suite.multipartBody(map[string]string{"title": "Memo"}, "", "")
	w := suite.do(http.MethodPost, "/api/v1/documents", body, contentType, assistantIdentity)

	suite.Equal(http.StatusCreated, w.Code, w.Body.String())
}

func (suite *HandlerTestSuite) TestRegisterDocument_ValidationError() {
	suite.mockWorkflow.On("Register", mock.Anything, mock.Anything, mock.Anything, adminIdentity).
		Return(nil, apperrors.NewValidationFailedError("title is required")).Once()

	body, contentType := suite.multipartBody(map[string]string{"title": "  "}, "", "")
	w := suite.do(http.MethodPost, "/api/v1/documents", body, contentType, adminIdentity)

	suite.Equal(http.StatusBadRequest, w.Code)
	env := suite.decode(w)
	suite.False(env.Success)
	suite.Equal("title is required", env.Message)
}

func (suite *HandlerTestSuite) TestRegisterDocument_UploadOverLimitNeverReachesService() {
	r := gin.New()
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(testJWTSecret))
	handlers.RegisterDocumentRoutes(v1, suite.mockWorkflow, suite.mockHistory, 64)

	body, contentType := suite.multipartBody(map[string]string{"title": "Scan"}, "scan.pdf", strings.Repeat("x", 4096))
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/documents", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(adminIdentity))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	suite.NotEqual(http.StatusCreated, w.Code)
	suite.False(suite.decode(w).Success)
	suite.mockWorkflow.AssertNotCalled(suite.T(), "Register", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestChangeState_Success() {
	suite.mockWorkflow.On("ChangeState", mock.Anything, int64(5), dto.ChangeStateRequest{StateID: int64(domain.StateSent)}, assistantIdentity).
		Return(nil).Once()

	w := suite.doJSON(http.MethodPost, "/api/v1/documents/5/state", gin.H{"stateID": 6}, assistantIdentity)

	suite.Equal(http.StatusOK, w.Code)
	env := suite.decode(w)
	suite.True(env.Success)
	suite.Equal("Document state changed successfully", env.Message)
}

func (suite *HandlerTestSuite) TestChangeState_UnknownDocument() {
	suite.mockWorkflow.On("ChangeState", mock.Anything, int64(99), mock.Anything, adminIdentity).
		Return(apperrors.NewNotFoundError("document")).Once()

	w := suite.doJSON(http.MethodPost, "/api/v1/documents/99/state", gin.H{"stateID": 3}, adminIdentity)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.Equal("document not found", suite.decode(w).Message)
}

func (suite *HandlerTestSuite) TestChangeState_MissingStateIsBadRequest() {
	w := suite.doJSON(http.MethodPost, "/api/v1/documents/5/state", gin.H{}, adminIdentity)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockWorkflow.AssertNotCalled(suite.T(), "ChangeState", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestInvalidDocumentIDIsBadRequest() {
	w := suite.do(http.MethodGet, "/api/v1/documents/abc", nil, "", adminIdentity)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.False(suite.decode(w).Success)
}

func (suite *HandlerTestSuite) TestReassign_ForbiddenForNonAdministrator() {
	suite.mockWorkflow.On("Reassign", mock.Anything, int64(5), int64(8), assistantIdentity).
		Return(apperrors.NewForbiddenError("only administrators can reassign documents")).Once()

	w := suite.doJSON(http.MethodPost, "/api/v1/documents/5/reassign", gin.H{"assigneeID": 8}, assistantIdentity)

	suite.Equal(http.StatusForbidden, w.Code)
	suite.Equal("only administrators can reassign documents", suite.decode(w).Message)
}

func (suite *HandlerTestSuite) TestUpdateDocument_Success() {
	suite.mockWorkflow.On("UpdateDocument", mock.Anything, int64(5),
		mock.MatchedBy(func(req dto.UpdateDocumentRequest) bool {
			return req.Title != nil && *req.Title == "Renamed" && req.Description == nil
		}), adminIdentity).Return(nil).Once()

	w := suite.doJSON(http.MethodPut, "/api/v1/documents/5", gin.H{"title": "Renamed"}, adminIdentity)

	suite.Equal(http.StatusOK, w.Code)
}

func (suite *HandlerTestSuite) TestDeleteDocument_Success() {
	suite.mockWorkflow.On("DeleteDocument", mock.Anything, int64(5), adminIdentity).Return(nil).Once()

	w := suite.do(http.MethodDelete, "/api/v1/documents/5", nil, "", adminIdentity)

	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("Document deleted successfully", suite.decode(w).Message)
}

func (suite *HandlerTestSuite) TestGetDocument_PersistenceErrorHidesCause() {
	suite.mockWorkflow.On("GetDocument", mock.Anything, int64(5)).
		Return(nil, apperrors.NewPersistenceError("failed to query document", errors.New("connection refused on 10.0.0.3"))).Once()

	w := suite.do(http.MethodGet, "/api/v1/documents/5", nil, "", adminIdentity)

	suite.Equal(http.StatusInternalServerError, w.Code)
	env := suite.decode(w)
	suite.Equal("Failed to retrieve document", env.Message)
	suite.NotContains(w.Body.String(), "10.0.0.3")
}

func (suite *HandlerTestSuite) TestListDocuments_BindsFilters() {
	ref := time.Date(2024, time.March, 4, 9, 0, 0, 0, time.UTC)
	page := &domain.Page[domain.DocumentView]{
		Items: []domain.DocumentView{
			{Document: domain.Document{DocumentID: 3, Title: "Invoice", StateID: domain.StatePending, ReferenceAt: ref}, StateName: "Pending"},
		},
		Total:      11,
		PageNumber: 2,
		PageSize:   5,
	}
	suite.mockWorkflow.On("ListDocuments", mock.Anything,
		mock.MatchedBy(func(p dto.ListDocumentsParams) bool {
			return p.StateID != nil && *p.StateID == 2 && p.Title == "inv" && p.PageNumber == 2 && p.PageSize == 5
		}), assistantIdentity).Return(page, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/documents?stateID=2&title=inv&pageNumber=2&pageSize=5", nil, "", assistantIdentity)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ListDocumentsResponse
	suite.Require().NoError(json.Unmarshal(suite.decode(w).Data, &resp))
	suite.Equal(11, resp.Total)
	suite.Require().Len(resp.Documents, 1)
	suite.Equal("Pending", resp.Documents[0].StateName)
	suite.True(ref.Equal(resp.Documents[0].ReferenceAt))
}

func (suite *HandlerTestSuite) TestListAssignedDocuments_PendingOnly() {
	suite.mockWorkflow.On("ListAssignedDocuments", mock.Anything, int64(9), true, adminIdentity).
		Return([]domain.DocumentView{{Document: domain.Document{DocumentID: 1, Title: "A"}}}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/assignments/9?pendingOnly=true", nil, "", adminIdentity)

	suite.Equal(http.StatusOK, w.Code)
	var docs []dto.DocumentResponse
	suite.Require().NoError(json.Unmarshal(suite.decode(w).Data, &docs))
	suite.Len(docs, 1)
}

func (suite *HandlerTestSuite) TestReplaceFile_RequiresFile() {
	body, contentType := suite.multipartBody(map[string]string{"comment": "new scan"}, "", "")
	w := suite.do(http.MethodPut, "/api/v1/documents/5/file", body, contentType, adminIdentity)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Equal("A file is required", suite.decode(w).Message)
}

func (suite *HandlerTestSuite) TestReplaceFile_Success() {
	suite.mockWorkflow.On("ReplaceFile", mock.Anything, int64(5),
		mock.MatchedBy(func(f dto.FileUpload) bool { return f.Name == "v2.pdf" }),
		lo.ToPtr("new scan"), adminIdentity).Return("abc_v2.pdf", nil).Once()

	body, contentType := suite.multipartBody(map[string]string{"comment": "new scan"}, "v2.pdf", "data")
	w := suite.do(http.MethodPut, "/api/v1/documents/5/file", body, contentType, adminIdentity)

	suite.Equal(http.StatusOK, w.Code, w.Body.String())
	suite.Contains(string(suite.decode(w).Data), "abc_v2.pdf")
}

func (suite *HandlerTestSuite) TestDownloadFile_StreamsContent() {
	suite.mockWorkflow.On("OpenFile", mock.Anything, int64(5)).
		Return(io.NopCloser(strings.NewReader("file-bytes")), "report.pdf", nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/documents/5/file", nil, "", adminIdentity)

	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("file-bytes", w.Body.String())
	suite.Contains(w.Header().Get("Content-Disposition"), "report.pdf")
}

func (suite *HandlerTestSuite) TestDownloadFile_NoFile() {
	suite.mockWorkflow.On("OpenFile", mock.Anything, int64(5)).
		Return(nil, "", apperrors.NewNotFoundError("file")).Once()

	w := suite.do(http.MethodGet, "/api/v1/documents/5/file", nil, "", adminIdentity)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.Equal("file not found", suite.decode(w).Message)
}

func (suite *HandlerTestSuite) TestGetHistory() {
	comment := "Change requested by user ID 2"
	suite.mockHistory.On("GetHistory", mock.Anything, int64(5)).Return([]domain.HistoryRecord{
		{
			HistoryEntry:    domain.HistoryEntry{HistoryID: 12, DocumentID: 5, UserID: 2, Action: "State changed to Sent", Comment: &comment},
			ResponsibleName: "Ana Ruiz",
		},
	}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/documents/5/history", nil, "", assistantIdentity)

	suite.Equal(http.StatusOK, w.Code)
	var entries []dto.HistoryResponse
	suite.Require().NoError(json.Unmarshal(suite.decode(w).Data, &entries))
	suite.Require().Len(entries, 1)
	suite.Equal("State changed to Sent", entries[0].Action)
	suite.Equal("Ana Ruiz", entries[0].ResponsibleName)
}
