package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/ecogestor/ecogestor_backend/internal/apperrors"
	portssvc "github.com/ecogestor/ecogestor_backend/internal/core/ports/services"
	"github.com/ecogestor/ecogestor_backend/internal/dto"
	"github.com/ecogestor/ecogestor_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// exportHandler handles HTTP requests for cash book exports
type exportHandler struct {
	exportService portssvc.ExportService
}

// newExportHandler creates a new exportHandler
func newExportHandler(es portssvc.ExportService) *exportHandler {
	return &exportHandler{exportService: es}
}

// RegisterExportRoutes registers export routes; rate limiting is applied by
// the caller since document generation is the most expensive operation here.
func RegisterExportRoutes(rg *gin.RouterGroup, es portssvc.ExportService, extra ...gin.HandlerFunc) {
	h := newExportHandler(es)

	exportGroup := rg.Group("/exports", extra...)
	exportGroup.POST("/cashbook", h.exportCashBook)
}

// exportCashBook godoc
// @Summary Export the cash book for a period
// @Description Generates the period-filtered cash book as a paginated PDF or a print-ready HTML document and streams it back.
// @Tags exports
// @Accept json
// @Produce application/pdf
// @Produce text/html
// @Param request body dto.ExportRequest true "Period and output format"
// @Success 200 {file} file "The export artifact"
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to generate export"
// @Security BearerAuth
// @Router /exports/cashbook [post]
func (h *exportHandler) exportCashBook(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.ExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Invalid export request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid export request: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(
		slog.String("period_type", req.PeriodType),
		slog.String("period_value", req.Value),
		slog.String("format", req.Format),
	)
	logger.Info("Received cash book export request")

	artifact, err := h.exportService.ExportCashBook(c.Request.Context(), userID, req.Period(), portssvc.ExportFormat(req.Format))
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			logger.Warn("Export rejected", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrRenderUnavailable):
			logger.Error("Renderer backend unavailable", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "The export could not be generated"})
		default:
			logger.Error("Failed to generate export", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate export"})
		}
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", artifact.Filename))
	c.Data(http.StatusOK, artifact.ContentType, artifact.Data)
}
