package handlers

import (
	"bytes"
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/docflow_app/internal/core/ports/services"
	"github.com/SscSPs/docflow_app/internal/dto"
	"github.com/SscSPs/docflow_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// reportingHandler handles HTTP requests related to the dashboard and reports
type reportingHandler struct {
	reportingService portssvc.ReportingSvcFacade
}

// RegisterReportingRoutes registers the dashboard and report routes
func RegisterReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvcFacade) {
	h := &reportingHandler{reportingService: reportingService}

	rg.GET("/dashboard", h.getDashboard)

	reportingGroup := rg.Group("/reports")
	{
		reportingGroup.GET("/documents", h.reportDocuments)
		reportingGroup.GET("/documents/export", h.exportDocuments)
	}
}

// getDashboard godoc
// @Summary Dashboard counts
// @Description Counts documents by state, classification and type over a preset period or an explicit date range
// @Tags reports
// @Produce json
// @Param periodID query int false "1 day, 2 week, 3 month, 4 year, 0 custom"
// @Param from query string false "From date (YYYY-MM-DD), custom period only"
// @Param to query string false "To date (YYYY-MM-DD), inclusive, custom period only"
// @Success 200 {object} dto.Envelope{data=domain.Dashboard}
// @Failure 400 {object} dto.Envelope
// @Failure 500 {object} dto.Envelope
// @Security BearerAuth
// @Router /dashboard [get]
func (h *reportingHandler) getDashboard(c *gin.Context) {
	var params dto.DashboardParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}

	dashboard, err := h.reportingService.GetDashboard(c.Request.Context(), params)
	if err != nil {
		respondError(c, err, "Failed to build dashboard")
		return
	}
	respondOK(c, http.StatusOK, "Dashboard retrieved", dashboard)
}

// reportDocuments godoc
// @Summary Document report
// @Description Lists documents scoped by the caller's role
// @Tags reports
// @Produce json
// @Param stateID query int false "State ID"
// @Param classificationID query int false "Classification ID"
// @Param from query string false "From date (YYYY-MM-DD)"
// @Param to query string false "To date (YYYY-MM-DD), inclusive"
// @Param pageNumber query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(10)
// @Success 200 {object} dto.Envelope{data=dto.ListDocumentsResponse}
// @Failure 400 {object} dto.Envelope
// @Failure 403 {object} dto.Envelope
// @Security BearerAuth
// @Router /reports/documents [get]
func (h *reportingHandler) reportDocuments(c *gin.Context) {
	identity, ok := callerIdentity(c)
	if !ok {
		return
	}
	var params dto.ReportParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}

	page, err := h.reportingService.ReportDocuments(c.Request.Context(), params, identity)
	if err != nil {
		respondError(c, err, "Failed to generate report")
		return
	}
	respondOK(c, http.StatusOK, "Report generated", dto.ToListDocumentsResponse(page))
}

// exportDocuments godoc
// @Summary Export the document report
// @Description Renders every matching document as an xlsx workbook
// @Tags reports
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param stateID query int false "State ID"
// @Param classificationID query int false "Classification ID"
// @Param from query string false "From date (YYYY-MM-DD)"
// @Param to query string false "To date (YYYY-MM-DD), inclusive"
// @Success 200 {file} file
// @Failure 400 {object} dto.Envelope
// @Failure 403 {object} dto.Envelope
// @Security BearerAuth
// @Router /reports/documents/export [get]
func (h *reportingHandler) exportDocuments(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	identity, ok := callerIdentity(c)
	if !ok {
		return
	}
	var params dto.ReportParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}

	// buffered so a failure can still be reported as an envelope
	var buf bytes.Buffer
	if err := h.reportingService.ExportDocuments(c.Request.Context(), params, identity, &buf); err != nil {
		respondError(c, err, "Failed to export report")
		return
	}

	logger.Info("Report exported", slog.Int("bytes", buf.Len()))
	c.Header("Content-Disposition", `attachment; filename="documents_report.xlsx"`)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
