package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/docflow_app/internal/core/ports/services"
	"github.com/SscSPs/docflow_app/internal/dto"
	"github.com/gin-gonic/gin"
)

// noResultsMessage is returned with success=false when a history lookup is empty.
const noResultsMessage = "No results found"

// assistantHandler serves the assistant's canned lookups.
type assistantHandler struct {
	assistantService portssvc.AssistantSvcFacade
}

// RegisterAssistantRoutes registers the assistant query routes.
func RegisterAssistantRoutes(rg *gin.RouterGroup, assistantService portssvc.AssistantSvcFacade) {
	h := &assistantHandler{assistantService: assistantService}

	assistant := rg.Group("/assistant")
	{
		assistant.GET("/verify", h.verifyDocument)
		assistant.GET("/reminders", h.pendingReminders)
		assistant.GET("/history", h.actionHistory)
		assistant.GET("/titles", h.searchTitles)
		assistant.GET("/due", h.dueReminders)
		assistant.GET("/weekly-summary", h.weeklySummary)
	}
}

// verifyDocument godoc
// @Summary Where is my document?
// @Description Finds the first document whose title or description contains the query and reports its state
// @Tags assistant
// @Produce json
// @Param query query string true "Text to look for"
// @Success 200 {object} dto.Envelope{data=domain.DocumentStatusReport}
// @Failure 400 {object} dto.Envelope
// @Failure 404 {object} dto.Envelope
// @Security BearerAuth
// @Router /assistant/verify [get]
func (h *assistantHandler) verifyDocument(c *gin.Context) {
	report, err := h.assistantService.VerifyDocument(c.Request.Context(), c.Query("query"))
	if err != nil {
		respondError(c, err, "Failed to verify document")
		return
	}
	respondOK(c, http.StatusOK, "Document found", report)
}

// pendingReminders godoc
// @Summary My pending documents
// @Tags assistant
// @Produce json
// @Success 200 {object} dto.Envelope{data=[]domain.DocumentRef}
// @Security BearerAuth
// @Router /assistant/reminders [get]
func (h *assistantHandler) pendingReminders(c *gin.Context) {
	identity, ok := callerIdentity(c)
	if !ok {
		return
	}
	refs, err := h.assistantService.PendingReminders(c.Request.Context(), identity.UserID)
	if err != nil {
		respondError(c, err, "Failed to list pending documents")
		return
	}
	respondOK(c, http.StatusOK, "Pending documents retrieved", refs)
}

// actionHistory godoc
// @Summary My action history
// @Description Lists the caller's audit entries within optional date bounds, newest first
// @Tags assistant
// @Produce json
// @Param from query string false "From date (YYYY-MM-DD)"
// @Param to query string false "To date (YYYY-MM-DD), inclusive"
// @Success 200 {object} dto.Envelope{data=[]dto.HistoryResponse}
// @Failure 400 {object} dto.Envelope
// @Security BearerAuth
// @Router /assistant/history [get]
func (h *assistantHandler) actionHistory(c *gin.Context) {
	identity, ok := callerIdentity(c)
	if !ok {
		return
	}
	var params dto.ActionHistoryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}

	records, err := h.assistantService.ActionHistory(c.Request.Context(), identity.UserID, params.From, params.To)
	if err != nil {
		respondError(c, err, "Failed to retrieve action history")
		return
	}
	if len(records) == 0 {
		c.JSON(http.StatusOK, dto.Fail(noResultsMessage))
		return
	}
	respondOK(c, http.StatusOK, "History retrieved", dto.ToHistoryResponses(records))
}

// searchTitles godoc
// @Summary Search document titles
// @Tags assistant
// @Produce json
// @Param query query string true "Text contained in the title"
// @Success 200 {object} dto.Envelope{data=[]domain.DocumentRef}
// @Failure 400 {object} dto.Envelope
// @Security BearerAuth
// @Router /assistant/titles [get]
func (h *assistantHandler) searchTitles(c *gin.Context) {
	refs, err := h.assistantService.SearchTitles(c.Request.Context(), c.Query("query"))
	if err != nil {
		respondError(c, err, "Failed to search titles")
		return
	}
	respondOK(c, http.StatusOK, "Titles retrieved", refs)
}

// dueReminders godoc
// @Summary Documents about to expire or expired
// @Tags assistant
// @Produce json
// @Success 200 {object} dto.Envelope{data=[]domain.DueReminder}
// @Security BearerAuth
// @Router /assistant/due [get]
func (h *assistantHandler) dueReminders(c *gin.Context) {
	reminders, err := h.assistantService.DueReminders(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to compute due reminders")
		return
	}
	respondOK(c, http.StatusOK, "Due reminders retrieved", reminders)
}

// weeklySummary godoc
// @Summary Last week's documents by state
// @Tags assistant
// @Produce json
// @Success 200 {object} dto.Envelope{data=[]domain.StateCount}
// @Security BearerAuth
// @Router /assistant/weekly-summary [get]
func (h *assistantHandler) weeklySummary(c *gin.Context) {
	counts, err := h.assistantService.WeeklySummary(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to compute weekly summary")
		return
	}
	respondOK(c, http.StatusOK, "Weekly summary retrieved", counts)
}
