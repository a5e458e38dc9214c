package handlers

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"path"
	"strconv"

	"github.com/SscSPs/docflow_app/internal/core/domain"
	portssvc "github.com/SscSPs/docflow_app/internal/core/ports/services"
	"github.com/SscSPs/docflow_app/internal/dto"
	"github.com/SscSPs/docflow_app/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
)

// documentHandler handles HTTP requests related to documents and their workflow.
type documentHandler struct {
	workflowService portssvc.WorkflowSvcFacade
	historyService  portssvc.HistoryReaderSvc
	maxUploadBytes  int64
}

// RegisterDocumentRoutes registers document routes. Uploads larger than
// maxUploadBytes are rejected with 413.
func RegisterDocumentRoutes(rg *gin.RouterGroup, workflowService portssvc.WorkflowSvcFacade, historyService portssvc.HistoryReaderSvc, maxUploadBytes int64) {
	h := &documentHandler{
		workflowService: workflowService,
		historyService:  historyService,
		maxUploadBytes:  maxUploadBytes,
	}

	documents := rg.Group("/documents")
	{
		documents.POST("", h.registerDocument)
		documents.GET("", h.listDocuments)
		documents.GET("/:id", h.getDocument)
		documents.PUT("/:id", h.updateDocument)
		documents.DELETE("/:id", h.deleteDocument)
		documents.POST("/:id/state", h.changeState)
		documents.POST("/:id/reassign", h.reassign)
		documents.PUT("/:id/file", h.replaceFile)
		documents.GET("/:id/file", h.downloadFile)
		documents.GET("/:id/history", h.getHistory)
	}
	rg.GET("/assignments/:userID", h.listAssignedDocuments)
}

// limitBody caps the request body for upload endpoints.
func (h *documentHandler) limitBody(c *gin.Context) {
	if h.maxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)
	}
}

func isTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}

func (h *documentHandler) respondUploadError(c *gin.Context, err error) {
	if isTooLarge(err) {
		middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Upload exceeds size limit", slog.Int64("limit_bytes", h.maxUploadBytes))
		c.JSON(http.StatusRequestEntityTooLarge, dto.Fail(fmt.Sprintf("File exceeds the maximum upload size of %d bytes", h.maxUploadBytes)))
		return
	}
	respondBindError(c, err)
}

// openUpload returns the "file" part of a multipart request, or nil when
// the request carries none.
func openUpload(c *gin.Context) (*dto.FileUpload, io.Closer, error) {
	fh, err := c.FormFile("file")
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}
	f, err := fh.Open()
	if err != nil {
		return nil, nil, err
	}
	return &dto.FileUpload{Name: fh.Filename, Content: f}, f, nil
}

// registerDocument godoc
// @Summary Register a document
// @Description Creates a document from a multipart form with an optional file. Naming a related document archives it.
// @Tags documents
// @Accept multipart/form-data
// @Produce json
// @Param title formData string true "Title"
// @Param description formData string false "Description"
// @Param classificationID formData int false "Classification ID"
// @Param documentTypeID formData int false "Document type ID"
// @Param stateID formData int false "Initial state ID" default(1)
// @Param assigneeID formData int false "Assignee user ID"
// @Param departmentID formData int false "Department ID"
// @Param relatedDocumentID formData int false "Related document ID"
// @Param comment formData string false "Audit comment"
// @Param file formData file false "Document file"
// @Success 201 {object} dto.Envelope{data=dto.DocumentResponse}
// @Failure 400 {object} dto.Envelope
// @Failure 404 {object} dto.Envelope "Related document not found"
// @Failure 413 {object} dto.Envelope "File too large"
// @Failure 500 {object} dto.Envelope
// @Security BearerAuth
// @Router /documents [post]
func (h *documentHandler) registerDocument(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	identity, ok := callerIdentity(c)
	if !ok {
		return
	}
	h.limitBody(c)

	var req dto.RegisterDocumentRequest
	if err := c.ShouldBind(&req); err != nil {
		h.respondUploadError(c, err)
		return
	}
	upload, closer, err := openUpload(c)
	if err != nil {
		h.respondUploadError(c, err)
		return
	}
	if closer != nil {
		defer closer.Close()
	}

	doc, err := h.workflowService.Register(c.Request.Context(), req, upload, identity)
	if err != nil {
		respondError(c, err, "Failed to register document")
		return
	}

	logger.Info("Document registered", slog.Int64("document_id", doc.DocumentID), slog.Bool("with_file", doc.HasFile()))
	respondOK(c, http.StatusCreated, "Document registered successfully", dto.ToDocumentResponse(domain.DocumentView{Document: *doc}))
}

// listDocuments godoc
// @Summary List documents
// @Description Lists documents. Non-administrators only see documents assigned to them.
// @Tags documents
// @Produce json
// @Param stateID query int false "State ID"
// @Param departmentID query int false "Department ID"
// @Param classificationID query int false "Classification ID"
// @Param title query string false "Title contains"
// @Param pageNumber query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(10)
// @Success 200 {object} dto.Envelope{data=dto.ListDocumentsResponse}
// @Failure 400 {object} dto.Envelope
// @Failure 403 {object} dto.Envelope "State not available for the caller's role"
// @Failure 500 {object} dto.Envelope
// @Security BearerAuth
// @Router /documents [get]
func (h *documentHandler) listDocuments(c *gin.Context) {
	identity, ok := callerIdentity(c)
	if !ok {
		return
	}
	var params dto.ListDocumentsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}

	page, err := h.workflowService.ListDocuments(c.Request.Context(), params, identity)
	if err != nil {
		respondError(c, err, "Failed to list documents")
		return
	}
	respondOK(c, http.StatusOK, "Documents retrieved", dto.ToListDocumentsResponse(page))
}

// getDocument godoc
// @Summary Get a document
// @Tags documents
// @Produce json
// @Param id path int true "Document ID"
// @Success 200 {object} dto.Envelope{data=dto.DocumentResponse}
// @Failure 400 {object} dto.Envelope
// @Failure 404 {object} dto.Envelope
// @Security BearerAuth
// @Router /documents/{id} [get]
func (h *documentHandler) getDocument(c *gin.Context) {
	documentID, ok := idParam(c, "id")
	if !ok {
		return
	}
	view, err := h.workflowService.GetDocument(c.Request.Context(), documentID)
	if err != nil {
		respondError(c, err, "Failed to retrieve document")
		return
	}
	respondOK(c, http.StatusOK, "Document retrieved", dto.ToDocumentResponse(*view))
}

// updateDocument godoc
// @Summary Update document data
// @Description Changes descriptive fields. Omitted fields are left untouched.
// @Tags documents
// @Accept json
// @Produce json
// @Param id path int true "Document ID"
// @Param document body dto.UpdateDocumentRequest true "Fields to change"
// @Success 200 {object} dto.Envelope
// @Failure 400 {object} dto.Envelope
// @Failure 404 {object} dto.Envelope
// @Security BearerAuth
// @Router /documents/{id} [put]
func (h *documentHandler) updateDocument(c *gin.Context) {
	identity, ok := callerIdentity(c)
	if !ok {
		return
	}
	documentID, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	if err := h.workflowService.UpdateDocument(c.Request.Context(), documentID, req, identity); err != nil {
		respondError(c, err, "Failed to update document")
		return
	}
	respondOK(c, http.StatusOK, "Document updated successfully", nil)
}

// deleteDocument godoc
// @Summary Deactivate a document
// @Description Soft deletes a document. Administrators only.
// @Tags documents
// @Produce json
// @Param id path int true "Document ID"
// @Success 200 {object} dto.Envelope
// @Failure 403 {object} dto.Envelope
// @Failure 404 {object} dto.Envelope
// @Security BearerAuth
// @Router /documents/{id} [delete]
func (h *documentHandler) deleteDocument(c *gin.Context) {
	identity, ok := callerIdentity(c)
	if !ok {
		return
	}
	documentID, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := h.workflowService.DeleteDocument(c.Request.Context(), documentID, identity); err != nil {
		respondError(c, err, "Failed to delete document")
		return
	}
	respondOK(c, http.StatusOK, "Document deleted successfully", nil)
}

// changeState godoc
// @Summary Change document state
// @Description Moves a document to another state. Sending a document hands it to the front desk.
// @Tags documents
// @Accept json
// @Produce json
// @Param id path int true "Document ID"
// @Param state body dto.ChangeStateRequest true "Target state"
// @Success 200 {object} dto.Envelope
// @Failure 400 {object} dto.Envelope
// @Failure 404 {object} dto.Envelope "Document or state not found"
// @Failure 500 {object} dto.Envelope
// @Security BearerAuth
// @Router /documents/{id}/state [post]
func (h *documentHandler) changeState(c *gin.Context) {
	identity, ok := callerIdentity(c)
	if !ok {
		return
	}
	documentID, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req dto.ChangeStateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	if err := h.workflowService.ChangeState(c.Request.Context(), documentID, req, identity); err != nil {
		respondError(c, err, "Failed to change document state")
		return
	}
	respondOK(c, http.StatusOK, "Document state changed successfully", nil)
}

// reassign godoc
// @Summary Reassign a document
// @Description Hands a document to another user and returns it to Pending. Administrators only.
// @Tags documents
// @Accept json
// @Produce json
// @Param id path int true "Document ID"
// @Param assignee body dto.ReassignRequest true "New assignee"
// @Success 200 {object} dto.Envelope
// @Failure 400 {object} dto.Envelope
// @Failure 403 {object} dto.Envelope
// @Failure 404 {object} dto.Envelope
// @Security BearerAuth
// @Router /documents/{id}/reassign [post]
func (h *documentHandler) reassign(c *gin.Context) {
	identity, ok := callerIdentity(c)
	if !ok {
		return
	}
	documentID, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req dto.ReassignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	if err := h.workflowService.Reassign(c.Request.Context(), documentID, req.AssigneeID, identity); err != nil {
		respondError(c, err, "Failed to reassign document")
		return
	}
	respondOK(c, http.StatusOK, "Document reassigned successfully", nil)
}

// replaceFile godoc
// @Summary Replace a document's file
// @Tags documents
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "Document ID"
// @Param file formData file true "New file"
// @Param comment formData string false "Audit comment"
// @Success 200 {object} dto.Envelope
// @Failure 400 {object} dto.Envelope
// @Failure 404 {object} dto.Envelope
// @Failure 413 {object} dto.Envelope
// @Security BearerAuth
// @Router /documents/{id}/file [put]
func (h *documentHandler) replaceFile(c *gin.Context) {
	identity, ok := callerIdentity(c)
	if !ok {
		return
	}
	documentID, ok := idParam(c, "id")
	if !ok {
		return
	}
	h.limitBody(c)

	upload, closer, err := openUpload(c)
	if err != nil {
		h.respondUploadError(c, err)
		return
	}
	if upload == nil {
		c.JSON(http.StatusBadRequest, dto.Fail("A file is required"))
		return
	}
	defer closer.Close()

	var comment *string
	if v, found := c.GetPostForm("comment"); found && v != "" {
		comment = &v
	}

	filePath, err := h.workflowService.ReplaceFile(c.Request.Context(), documentID, *upload, comment, identity)
	if err != nil {
		respondError(c, err, "Failed to replace file")
		return
	}
	respondOK(c, http.StatusOK, "File replaced successfully", gin.H{"filePath": filePath})
}

// downloadFile godoc
// @Summary Download a document's file
// @Tags documents
// @Produce octet-stream
// @Param id path int true "Document ID"
// @Success 200 {file} file
// @Failure 404 {object} dto.Envelope "Document or file not found"
// @Security BearerAuth
// @Router /documents/{id}/file [get]
func (h *documentHandler) downloadFile(c *gin.Context) {
	documentID, ok := idParam(c, "id")
	if !ok {
		return
	}

	rc, name, err := h.workflowService.OpenFile(c.Request.Context(), documentID)
	if err != nil {
		respondError(c, err, "Failed to open file")
		return
	}
	defer rc.Close()

	contentType := mime.TypeByExtension(path.Ext(name))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.DataFromReader(http.StatusOK, -1, contentType, rc, map[string]string{
		"Content-Disposition": mime.FormatMediaType("attachment", map[string]string{"filename": name}),
	})
}

// getHistory godoc
// @Summary Document audit trail
// @Description Lists a document's history, newest first
// @Tags documents
// @Produce json
// @Param id path int true "Document ID"
// @Success 200 {object} dto.Envelope{data=[]dto.HistoryResponse}
// @Failure 400 {object} dto.Envelope
// @Security BearerAuth
// @Router /documents/{id}/history [get]
func (h *documentHandler) getHistory(c *gin.Context) {
	documentID, ok := idParam(c, "id")
	if !ok {
		return
	}
	records, err := h.historyService.GetHistory(c.Request.Context(), documentID)
	if err != nil {
		respondError(c, err, "Failed to retrieve history")
		return
	}
	respondOK(c, http.StatusOK, "History retrieved", dto.ToHistoryResponses(records))
}

// listAssignedDocuments godoc
// @Summary Documents assigned to a user
// @Description Lists another user's assignments. Administrators only.
// @Tags documents
// @Produce json
// @Param userID path int true "Assignee user ID"
// @Param pendingOnly query bool false "Only Pending documents"
// @Success 200 {object} dto.Envelope{data=[]dto.DocumentResponse}
// @Failure 400 {object} dto.Envelope
// @Failure 403 {object} dto.Envelope
// @Security BearerAuth
// @Router /assignments/{userID} [get]
func (h *documentHandler) listAssignedDocuments(c *gin.Context) {
	identity, ok := callerIdentity(c)
	if !ok {
		return
	}
	assigneeID, ok := idParam(c, "userID")
	if !ok {
		return
	}
	pendingOnly, _ := strconv.ParseBool(c.DefaultQuery("pendingOnly", "false"))

	views, err := h.workflowService.ListAssignedDocuments(c.Request.Context(), assigneeID, pendingOnly, identity)
	if err != nil {
		respondError(c, err, "Failed to list assigned documents")
		return
	}
	respondOK(c, http.StatusOK, "Documents retrieved", lo.Map(views, func(v domain.DocumentView, _ int) dto.DocumentResponse {
		return dto.ToDocumentResponse(v)
	}))
}
