package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ledgerbooks/bookkeeping_core/internal/apperrors"
	portssvc "github.com/ledgerbooks/bookkeeping_core/internal/core/ports/services"
	"github.com/ledgerbooks/bookkeeping_core/internal/core/services"
	"github.com/ledgerbooks/bookkeeping_core/internal/dto"
	"github.com/ledgerbooks/bookkeeping_core/internal/middleware"
)

// sepaHandler handles SEPA payment file exports.
type sepaHandler struct {
	sepaService portssvc.SEPAExportSvc
}

// registerSEPARoutes registers routes related to payment exports.
func registerSEPARoutes(rg *gin.RouterGroup, sepaService portssvc.SEPAExportSvc) {
	h := &sepaHandler{sepaService: sepaService}
	rg.POST("/payments/sepa", h.exportSEPA)
}

// exportSEPA godoc
// @Summary Build a SEPA credit transfer file
// @Description Validates the whole batch and returns a pain.001.001.03 XML document. A rejected batch reports every invalid row.
// @Tags payments
// @Accept json
// @Produce xml
// @Param companyID path string true "Company ID"
// @Param batch body dto.SEPAExportRequest true "Debtor and payments"
// @Success 200 {string} string "pain.001.001.03 document"
// @Failure 400 {object} map[string]interface{}
// @Security BearerAuth
// @Router /companies/{companyID}/payments/sepa [post]
func (h *sepaHandler) exportSEPA(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("companyID")

	var req dto.SEPAExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	out, err := h.sepaService.BuildPaymentFile(c.Request.Context(), companyID, req)
	if err != nil {
		var batchErr *services.PaymentBatchError
		if errors.As(err, &batchErr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": batchErr.Error(), "rows": batchErr.Rows})
			return
		}
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to build payment file", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build payment file"})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+req.MessageID+`.xml"`)
	c.Data(http.StatusOK, "application/xml", out)
}
