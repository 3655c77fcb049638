package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ledgerbooks/bookkeeping_core/internal/apperrors"
	portssvc "github.com/ledgerbooks/bookkeeping_core/internal/core/ports/services"
	"github.com/ledgerbooks/bookkeeping_core/internal/dto"
	"github.com/ledgerbooks/bookkeeping_core/internal/middleware"
)

// importHandler handles accounting file imports.
type importHandler struct {
	importService portssvc.ImportSvc
}

// registerImportRoutes registers routes related to imports.
func registerImportRoutes(rg *gin.RouterGroup, importService portssvc.ImportSvc) {
	h := &importHandler{importService: importService}
	rg.POST("/imports/fec", h.importFEC)
}

// importFEC godoc
// @Summary Import an FEC ledger file
// @Description Accepts the file as multipart field "file" or as the raw request body. Creates missing journals and accounts, posts balanced entry groups and skips entries already imported.
// @Tags imports
// @Accept mpfd
// @Produce json
// @Param companyID path string true "Company ID"
// @Success 200 {object} dto.ImportReportResponse
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /companies/{companyID}/imports/fec [post]
func (h *importHandler) importFEC(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("companyID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var reader io.Reader
	if fileHeader, err := c.FormFile("file"); err == nil {
		f, err := fileHeader.Open()
		if err != nil {
			logger.Error("Failed to open uploaded file", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Could not read uploaded file"})
			return
		}
		defer f.Close()
		reader = f
	} else {
		// Raw body upload.
		reader = c.Request.Body
	}

	report, err := h.importService.ImportFEC(c.Request.Context(), companyID, reader, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Import failed", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Import failed"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToImportReportResponse(*report))
}
