package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	portssvc "github.com/ledgerbooks/bookkeeping_core/internal/core/ports/services"
	"github.com/ledgerbooks/bookkeeping_core/internal/dto"
	"github.com/ledgerbooks/bookkeeping_core/internal/middleware"
)

// reportingHandler handles HTTP requests for financial reports.
type reportingHandler struct {
	reportingService portssvc.ReportingSvc
}

// registerReportingRoutes registers routes related to reports.
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvc) {
	h := &reportingHandler{reportingService: reportingService}

	reports := rg.Group("/reports")
	{
		reports.GET("/trial-balance", h.trialBalance)
		reports.GET("/balance-sheet", h.balanceSheet)
		reports.GET("/income-statement", h.incomeStatement)
	}
}

// parseDateParam reads a yyyy-mm-dd query parameter, defaulting to now.
func parseDateParam(c *gin.Context, name string, fallback time.Time) (time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return fallback, true
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name + ", expected yyyy-mm-dd"})
		return time.Time{}, false
	}
	return t, true
}

// trialBalance godoc
// @Summary Trial balance
// @Description Per-account debit/credit totals over posted entries
// @Tags reports
// @Produce json
// @Param companyID path string true "Company ID"
// @Param asOf query string false "Report date (yyyy-mm-dd, default today)"
// @Success 200 {object} dto.TrialBalanceResponse
// @Security BearerAuth
// @Router /companies/{companyID}/reports/trial-balance [get]
func (h *reportingHandler) trialBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("companyID")

	asOf, ok := parseDateParam(c, "asOf", time.Now())
	if !ok {
		return
	}

	report, err := h.reportingService.GetTrialBalance(c.Request.Context(), companyID, asOf)
	if err != nil {
		logger.Error("Failed to compute trial balance", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute trial balance"})
		return
	}

	c.JSON(http.StatusOK, dto.ToTrialBalanceResponse(*report))
}

// balanceSheet godoc
// @Summary Balance sheet
// @Description Assets, liabilities and equity at a point in time, with the accounting identity check
// @Tags reports
// @Produce json
// @Param companyID path string true "Company ID"
// @Param asOf query string false "Report date (yyyy-mm-dd, default today)"
// @Success 200 {object} dto.BalanceSheetResponse
// @Security BearerAuth
// @Router /companies/{companyID}/reports/balance-sheet [get]
func (h *reportingHandler) balanceSheet(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("companyID")

	asOf, ok := parseDateParam(c, "asOf", time.Now())
	if !ok {
		return
	}

	report, err := h.reportingService.GetBalanceSheet(c.Request.Context(), companyID, asOf)
	if err != nil {
		logger.Error("Failed to compute balance sheet", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute balance sheet"})
		return
	}

	c.JSON(http.StatusOK, dto.ToBalanceSheetResponse(*report))
}

// incomeStatement godoc
// @Summary Income statement
// @Description Revenue and expenses over a period
// @Tags reports
// @Produce json
// @Param companyID path string true "Company ID"
// @Param from query string true "Period start (yyyy-mm-dd)"
// @Param to query string false "Period end (yyyy-mm-dd, default today)"
// @Success 200 {object} dto.IncomeStatementResponse
// @Security BearerAuth
// @Router /companies/{companyID}/reports/income-statement [get]
func (h *reportingHandler) incomeStatement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("companyID")

	from, ok := parseDateParam(c, "from", time.Time{})
	if !ok {
		return
	}
	to, ok := parseDateParam(c, "to", time.Now())
	if !ok {
		return
	}

	report, err := h.reportingService.GetIncomeStatement(c.Request.Context(), companyID, from, to)
	if err != nil {
		logger.Error("Failed to compute income statement", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute income statement"})
		return
	}

	c.JSON(http.StatusOK, dto.ToIncomeStatementResponse(*report))
}
