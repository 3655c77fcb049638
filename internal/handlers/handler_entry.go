package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ledgerbooks/bookkeeping_core/internal/apperrors"
	portssvc "github.com/ledgerbooks/bookkeeping_core/internal/core/ports/services"
	"github.com/ledgerbooks/bookkeeping_core/internal/dto"
	"github.com/ledgerbooks/bookkeeping_core/internal/middleware"
)

// entryHandler handles HTTP requests related to journal entries.
type entryHandler struct {
	entryService portssvc.EntrySvcFacade
}

// registerEntryRoutes registers routes related to journal entries.
func registerEntryRoutes(rg *gin.RouterGroup, entryService portssvc.EntrySvcFacade) {
	h := &entryHandler{entryService: entryService}

	entries := rg.Group("/entries")
	{
		entries.POST("", h.createEntry)
		entries.GET("", h.listEntries)
		entries.GET("/:entryID", h.getEntry)
		entries.PUT("/:entryID", h.updateEntry)
		entries.POST("/:entryID/post", h.postEntry)
		entries.POST("/:entryID/cancel", h.cancelEntry)
		entries.DELETE("/:entryID", h.deleteEntry)
	}
}

// entryError maps service errors to HTTP responses shared by all entry
// endpoints.
func entryError(c *gin.Context, logger *slog.Logger, err error, action string) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Entry not found"})
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrImmutableState), errors.Is(err, apperrors.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrCollision):
		c.JSON(http.StatusConflict, gin.H{"error": "Entry numbering conflict, please retry"})
	default:
		logger.Error("Failed to "+action, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to " + action})
	}
}

// createEntry godoc
// @Summary Create a draft entry
// @Description Creates a balanced draft entry and allocates its entry number
// @Tags entries
// @Accept json
// @Produce json
// @Param companyID path string true "Company ID"
// @Param entry body dto.CreateEntryRequest true "Entry with at least two lines"
// @Success 201 {object} dto.EntryResponse
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /companies/{companyID}/entries [post]
func (h *entryHandler) createEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("companyID")

	var req dto.CreateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	entry, err := h.entryService.CreateEntry(c.Request.Context(), companyID, req, userID)
	if err != nil {
		entryError(c, logger, err, "create entry")
		return
	}

	c.JSON(http.StatusCreated, dto.ToEntryResponse(*entry))
}

// listEntries godoc
// @Summary List entries
// @Tags entries
// @Produce json
// @Param companyID path string true "Company ID"
// @Param journalID query string false "Filter by journal"
// @Param status query string false "Filter by status" Enums(DRAFT, POSTED, CANCELLED)
// @Param limit query int false "Page size (max 100)"
// @Param nextToken query string false "Pagination cursor"
// @Success 200 {object} dto.ListEntriesResponse
// @Security BearerAuth
// @Router /companies/{companyID}/entries [get]
func (h *entryHandler) listEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("companyID")

	var params dto.ListEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.entryService.ListEntries(c.Request.Context(), companyID, params)
	if err != nil {
		entryError(c, logger, err, "list entries")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// getEntry godoc
// @Summary Get an entry with its lines
// @Tags entries
// @Produce json
// @Param companyID path string true "Company ID"
// @Param entryID path string true "Entry ID"
// @Success 200 {object} dto.EntryResponse
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /companies/{companyID}/entries/{entryID} [get]
func (h *entryHandler) getEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("companyID")
	entryID := c.Param("entryID")

	entry, err := h.entryService.GetEntryByID(c.Request.Context(), companyID, entryID)
	if err != nil {
		entryError(c, logger, err, "retrieve entry")
		return
	}

	c.JSON(http.StatusOK, dto.ToEntryResponse(*entry))
}

// updateEntry godoc
// @Summary Update a draft entry
// @Description Only drafts can change; posted and cancelled entries are immutable
// @Tags entries
// @Accept json
// @Produce json
// @Param companyID path string true "Company ID"
// @Param entryID path string true "Entry ID"
// @Param entry body dto.UpdateEntryRequest true "Fields to update"
// @Success 200 {object} dto.EntryResponse
// @Failure 409 {object} map[string]string
// @Security BearerAuth
// @Router /companies/{companyID}/entries/{entryID} [put]
func (h *entryHandler) updateEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("companyID")
	entryID := c.Param("entryID")

	var req dto.UpdateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	entry, err := h.entryService.UpdateEntry(c.Request.Context(), companyID, entryID, req, userID)
	if err != nil {
		entryError(c, logger, err, "update entry")
		return
	}

	c.JSON(http.StatusOK, dto.ToEntryResponse(*entry))
}

// postEntry godoc
// @Summary Post a draft entry
// @Description Makes the entry permanent and applies its amounts to account balances
// @Tags entries
// @Produce json
// @Param companyID path string true "Company ID"
// @Param entryID path string true "Entry ID"
// @Success 200 {object} dto.EntryResponse
// @Failure 409 {object} map[string]string
// @Security BearerAuth
// @Router /companies/{companyID}/entries/{entryID}/post [post]
func (h *entryHandler) postEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("companyID")
	entryID := c.Param("entryID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	entry, err := h.entryService.PostEntry(c.Request.Context(), companyID, entryID, userID)
	if err != nil {
		entryError(c, logger, err, "post entry")
		return
	}

	c.JSON(http.StatusOK, dto.ToEntryResponse(*entry))
}

// cancelEntry godoc
// @Summary Cancel a posted entry
// @Description Appends a mirror-image reversing entry and marks the original cancelled
// @Tags entries
// @Accept json
// @Produce json
// @Param companyID path string true "Company ID"
// @Param entryID path string true "Entry ID"
// @Param cancel body dto.CancelEntryRequest false "Reason and reversal date"
// @Success 201 {object} dto.EntryResponse
// @Failure 409 {object} map[string]string
// @Security BearerAuth
// @Router /companies/{companyID}/entries/{entryID}/cancel [post]
func (h *entryHandler) cancelEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("companyID")
	entryID := c.Param("entryID")

	var req dto.CancelEntryRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
			return
		}
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	reversing, err := h.entryService.CancelEntry(c.Request.Context(), companyID, entryID, req, userID)
	if err != nil {
		entryError(c, logger, err, "cancel entry")
		return
	}

	c.JSON(http.StatusCreated, dto.ToEntryResponse(*reversing))
}

// deleteEntry godoc
// @Summary Delete a draft entry
// @Description Drafts only; posted entries can only be cancelled
// @Tags entries
// @Produce json
// @Param companyID path string true "Company ID"
// @Param entryID path string true "Entry ID"
// @Success 204
// @Failure 409 {object} map[string]string
// @Security BearerAuth
// @Router /companies/{companyID}/entries/{entryID} [delete]
func (h *entryHandler) deleteEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("companyID")
	entryID := c.Param("entryID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.entryService.DeleteEntry(c.Request.Context(), companyID, entryID, userID); err != nil {
		entryError(c, logger, err, "delete entry")
		return
	}

	c.Status(http.StatusNoContent)
}
