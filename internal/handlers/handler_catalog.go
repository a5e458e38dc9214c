package handlers

import (
	"net/http"
	"strconv"

	"github.com/SscSPs/docflow_app/internal/core/domain"
	portssvc "github.com/SscSPs/docflow_app/internal/core/ports/services"
	"github.com/SscSPs/docflow_app/internal/dto"
	"github.com/gin-gonic/gin"
)

// catalogKinds maps the URL segment to the lookup table it names.
var catalogKinds = map[string]domain.CatalogKind{
	"classifications": domain.CatalogClassification,
	"document-types":  domain.CatalogDocumentType,
	"departments":     domain.CatalogDepartment,
	"roles":           domain.CatalogRole,
}

// catalogHandler serves lookup lists and their administration.
type catalogHandler struct {
	catalogService portssvc.CatalogSvcFacade
}

// RegisterCatalogRoutes registers lookup and catalog administration routes.
func RegisterCatalogRoutes(rg *gin.RouterGroup, catalogService portssvc.CatalogSvcFacade) {
	h := &catalogHandler{catalogService: catalogService}

	catalogs := rg.Group("/catalogs")
	{
		catalogs.GET("/states", h.listVisibleStates)
		catalogs.GET("/users", h.listUsers)
		catalogs.GET("/documents", h.searchDocuments)

		items := catalogs.Group("/items/:kind")
		items.GET("", h.listItems)
		items.POST("", h.createItem)
		items.PUT("/:id", h.renameItem)
		items.DELETE("/:id", h.deactivateItem)
	}
}

func kindParam(c *gin.Context) (domain.CatalogKind, bool) {
	kind, found := catalogKinds[c.Param("kind")]
	if !found {
		c.AbortWithStatusJSON(http.StatusNotFound, dto.Fail("Unknown catalog "+c.Param("kind")))
		return "", false
	}
	return kind, true
}

// listItems godoc
// @Summary List a catalog
// @Description Lists the active rows of a lookup table
// @Tags catalogs
// @Produce json
// @Param kind path string true "Catalog" Enums(classifications, document-types, departments, roles)
// @Success 200 {object} dto.Envelope{data=[]domain.CatalogItem}
// @Failure 404 {object} dto.Envelope "Unknown catalog"
// @Security BearerAuth
// @Router /catalogs/items/{kind} [get]
func (h *catalogHandler) listItems(c *gin.Context) {
	kind, ok := kindParam(c)
	if !ok {
		return
	}
	items, err := h.catalogService.ListCatalog(c.Request.Context(), kind)
	if err != nil {
		respondError(c, err, "Failed to list catalog")
		return
	}
	respondOK(c, http.StatusOK, "Catalog retrieved", items)
}

// listVisibleStates godoc
// @Summary States the caller may select
// @Tags catalogs
// @Produce json
// @Success 200 {object} dto.Envelope{data=[]domain.CatalogItem}
// @Security BearerAuth
// @Router /catalogs/states [get]
func (h *catalogHandler) listVisibleStates(c *gin.Context) {
	identity, ok := callerIdentity(c)
	if !ok {
		return
	}
	states, err := h.catalogService.ListVisibleStates(c.Request.Context(), identity.RoleID)
	if err != nil {
		respondError(c, err, "Failed to list states")
		return
	}
	respondOK(c, http.StatusOK, "States retrieved", states)
}

// listUsers godoc
// @Summary Users for a picker
// @Description Lists active users, optionally only those of one department
// @Tags catalogs
// @Produce json
// @Param departmentID query int false "Department ID"
// @Success 200 {object} dto.Envelope{data=[]domain.CatalogItem}
// @Failure 400 {object} dto.Envelope
// @Security BearerAuth
// @Router /catalogs/users [get]
func (h *catalogHandler) listUsers(c *gin.Context) {
	var departmentID *int64
	if raw, found := c.GetQuery("departmentID"); found {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			respondBindError(c, err)
			return
		}
		departmentID = &id
	}

	users, err := h.catalogService.ListUsers(c.Request.Context(), departmentID)
	if err != nil {
		respondError(c, err, "Failed to list users")
		return
	}
	respondOK(c, http.StatusOK, "Users retrieved", users)
}

// searchDocuments godoc
// @Summary Documents for a picker
// @Tags catalogs
// @Produce json
// @Param title query string true "Text contained in the title"
// @Success 200 {object} dto.Envelope{data=[]domain.CatalogItem}
// @Failure 400 {object} dto.Envelope
// @Security BearerAuth
// @Router /catalogs/documents [get]
func (h *catalogHandler) searchDocuments(c *gin.Context) {
	items, err := h.catalogService.SearchDocumentCombo(c.Request.Context(), c.Query("title"))
	if err != nil {
		respondError(c, err, "Failed to search documents")
		return
	}
	respondOK(c, http.StatusOK, "Documents retrieved", items)
}

// createItem godoc
// @Summary Add a catalog row
// @Description Administrators only. Roles cannot be edited.
// @Tags catalogs
// @Accept json
// @Produce json
// @Param kind path string true "Catalog" Enums(classifications, document-types, departments)
// @Param item body dto.CatalogItemRequest true "Name"
// @Success 201 {object} dto.Envelope{data=domain.CatalogItem}
// @Failure 400 {object} dto.Envelope
// @Failure 403 {object} dto.Envelope
// @Security BearerAuth
// @Router /catalogs/items/{kind} [post]
func (h *catalogHandler) createItem(c *gin.Context) {
	identity, ok := callerIdentity(c)
	if !ok {
		return
	}
	kind, ok := kindParam(c)
	if !ok {
		return
	}
	var req dto.CatalogItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	item, err := h.catalogService.CreateCatalogItem(c.Request.Context(), kind, req.Name, identity)
	if err != nil {
		respondError(c, err, "Failed to create catalog item")
		return
	}
	respondOK(c, http.StatusCreated, "Catalog item created successfully", item)
}

// renameItem godoc
// @Summary Rename a catalog row
// @Tags catalogs
// @Accept json
// @Produce json
// @Param kind path string true "Catalog" Enums(classifications, document-types, departments)
// @Param id path int true "Row ID"
// @Param item body dto.CatalogItemRequest true "New name"
// @Success 200 {object} dto.Envelope
// @Failure 400 {object} dto.Envelope
// @Failure 403 {object} dto.Envelope
// @Failure 404 {object} dto.Envelope
// @Security BearerAuth
// @Router /catalogs/items/{kind}/{id} [put]
func (h *catalogHandler) renameItem(c *gin.Context) {
	identity, ok := callerIdentity(c)
	if !ok {
		return
	}
	kind, ok := kindParam(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req dto.CatalogItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	if err := h.catalogService.RenameCatalogItem(c.Request.Context(), kind, id, req.Name, identity); err != nil {
		respondError(c, err, "Failed to rename catalog item")
		return
	}
	respondOK(c, http.StatusOK, "Catalog item updated successfully", nil)
}

// deactivateItem godoc
// @Summary Deactivate a catalog row
// @Tags catalogs
// @Produce json
// @Param kind path string true "Catalog" Enums(classifications, document-types, departments)
// @Param id path int true "Row ID"
// @Success 200 {object} dto.Envelope
// @Failure 403 {object} dto.Envelope
// @Failure 404 {object} dto.Envelope
// @Security BearerAuth
// @Router /catalogs/items/{kind}/{id} [delete]
func (h *catalogHandler) deactivateItem(c *gin.Context) {
	identity, ok := callerIdentity(c)
	if !ok {
		return
	}
	kind, ok := kindParam(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := h.catalogService.DeactivateCatalogItem(c.Request.Context(), kind, id, identity); err != nil {
		respondError(c, err, "Failed to deactivate catalog item")
		return
	}
	respondOK(c, http.StatusOK, "Catalog item deactivated successfully", nil)
}
