package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/ecogestor/ecogestor_backend/internal/apperrors"
	"github.com/ecogestor/ecogestor_backend/internal/core/domain"
	portssvc "github.com/ecogestor/ecogestor_backend/internal/core/ports/services"
	"github.com/ecogestor/ecogestor_backend/internal/dto"
	"github.com/ecogestor/ecogestor_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

const (
	defaultPageLimit = 50
	maxPageLimit     = 200
)

// analyticsHandler handles HTTP requests for the financial dashboard views
type analyticsHandler struct {
	analyticsService      portssvc.AnalyticsService
	classificationService portssvc.ClassificationService
}

// newAnalyticsHandler creates a new analyticsHandler
func newAnalyticsHandler(as portssvc.AnalyticsService, cs portssvc.ClassificationService) *analyticsHandler {
	return &analyticsHandler{
		analyticsService:      as,
		classificationService: cs,
	}
}

// RegisterAnalyticsRoutes registers routes related to the analytics dashboard
func RegisterAnalyticsRoutes(rg *gin.RouterGroup, as portssvc.AnalyticsService, cs portssvc.ClassificationService) {
	h := newAnalyticsHandler(as, cs)

	analyticsGroup := rg.Group("/analytics")
	{
		analyticsGroup.GET("/summary", h.getSummary)
		analyticsGroup.GET("/abc", h.getABCAnalysis)
	}
	rg.GET("/transactions", h.listTransactions)
}

// getSummary godoc
// @Summary Dashboard totals and monthly chart series
// @Description Aggregates the cash book into revenue/expense/profit totals and per-month buckets. An optional period filters the snapshot first.
// @Tags analytics
// @Produce json
// @Param periodType query string false "Period granularity (day|month|year)"
// @Param value query string false "Period value (YYYY-MM-DD, YYYY-MM or YYYY)"
// @Success 200 {object} dto.DashboardSummaryResponse
// @Failure 400 {object} map[string]string "Invalid period"
// @Failure 500 {object} map[string]string "Failed to aggregate"
// @Security BearerAuth
// @Router /analytics/summary [get]
func (h *analyticsHandler) getSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var query dto.PeriodQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		logger.Warn("Invalid period query", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid period parameters"})
		return
	}

	summary, err := h.analyticsService.Summary(c.Request.Context(), query.Period())
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to generate dashboard summary", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate dashboard summary"})
		return
	}

	c.JSON(http.StatusOK, dto.ToDashboardSummaryResponse(summary))
}

// getABCAnalysis godoc
// @Summary ABC (Pareto) client revenue classification
// @Description Merges revenue entries and paid invoices per client and returns rows ordered by revenue contribution, with cumulative percentages and A/B/C tiers.
// @Tags analytics
// @Produce json
// @Success 200 {object} dto.ClassificationResponse
// @Failure 500 {object} map[string]string "Failed to classify"
// @Security BearerAuth
// @Router /analytics/abc [get]
func (h *analyticsHandler) getABCAnalysis(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	rows, err := h.classificationService.ABCAnalysis(c.Request.Context())
	if err != nil {
		logger.Error("Failed to run ABC analysis", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to run ABC analysis"})
		return
	}

	c.JSON(http.StatusOK, dto.ToClassificationResponse(rows))
}

// listTransactions godoc
// @Summary Period-filtered cash book entries
// @Description Returns one page of cash book entries inside the resolved period bounds, for the analytics detail table.
// @Tags analytics
// @Produce json
// @Param periodType query string true "Period granularity (day|month|year)"
// @Param value query string true "Period value (YYYY-MM-DD, YYYY-MM or YYYY)"
// @Param limit query int false "Page size" default(50)
// @Param nextToken query string false "Opaque pagination token"
// @Success 200 {object} dto.ListTransactionsResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 500 {object} map[string]string "Failed to list"
// @Security BearerAuth
// @Router /transactions [get]
func (h *analyticsHandler) listTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var query dto.PeriodQuery
	if err := c.ShouldBindQuery(&query); err != nil || query.Period() == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A valid period is required"})
		return
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultPageLimit)))
	if err != nil || limit <= 0 || limit > maxPageLimit {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit"})
		return
	}

	var nextToken *string
	if token := c.Query("nextToken"); token != "" {
		nextToken = &token
	}

	period := query.Period()
	txns, newToken, err := h.analyticsService.ListTransactions(c.Request.Context(), *period, limit, nextToken)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to list transactions", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list transactions"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListTransactionsResponse(txns, newToken))
}

// periodTypeValid is the custom binding rule behind the `periodtype` tag.
func periodTypeValid(value string) bool {
	switch domain.PeriodType(value) {
	case domain.PeriodDay, domain.PeriodMonth, domain.PeriodYear:
		return true
	}
	return false
}
