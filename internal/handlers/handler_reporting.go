package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/topvistorias/cash_closing_app/internal/apperrors"
	portssvc "github.com/topvistorias/cash_closing_app/internal/core/ports/services"
	"github.com/topvistorias/cash_closing_app/internal/dto"
	"github.com/topvistorias/cash_closing_app/internal/middleware"
	"github.com/topvistorias/cash_closing_app/internal/utils"
)

// reportingHandler handles HTTP requests for the cross-store dashboard.
type reportingHandler struct {
	reportingService portssvc.ReportingService
}

// newReportingHandler creates a new reportingHandler.
func newReportingHandler(rs portssvc.ReportingService) *reportingHandler {
	return &reportingHandler{
		reportingService: rs,
	}
}

// registerReportingRoutes registers the reporting routes.
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingService) {
	h := newReportingHandler(reportingService)

	reports := rg.Group("/reports")
	{
		reports.GET("/dashboard", h.getDashboard)
	}
}

// getDashboard godoc
// @Summary Cross-store dashboard
// @Description Aggregates closings in the date range into per-store and overall statistics, including each store's live pending-receivable total and net reconciliation value. Administrative users only.
// @Tags reports
// @Produce  json
// @Param   fromDate query string false "Start of closing date range (DD/MM/YYYY)"
// @Param   toDate query string false "End of closing date range (DD/MM/YYYY)"
// @Param   storeID query string false "Restrict to a single store"
// @Success 200 {object} dto.DashboardResponse
// @Failure 400 {object} ErrorResponse "Invalid query parameters"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 403 {object} ErrorResponse "Forbidden (not an administrative user)"
// @Failure 500 {object} ErrorResponse "Failed to build dashboard"
// @Security BearerAuth
// @Router /reports/dashboard [get]
func (h *reportingHandler) getDashboard(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.DashboardParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for Dashboard", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	actor, ok := middleware.GetActorFromGin(c)
	if !ok {
		logger.Error("Actor not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var from, to *time.Time
	if d, ok := utils.ParseDateBR(params.FromDate); ok {
		from = &d
	}
	if d, ok := utils.ParseDateBR(params.ToDate); ok {
		to = &d
	}

	stats, err := h.reportingService.DashboardStats(c.Request.Context(), actor, from, to, params.StoreID)
	if err != nil {
		if errors.Is(err, apperrors.ErrForbidden) {
			logger.Warn("Actor forbidden to view dashboard")
			c.JSON(http.StatusForbidden, ErrorResponse{Error: err.Error()})
			return
		}
		logger.Error("Failed to build dashboard", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to build dashboard"})
		return
	}

	logger.Info("Dashboard built", slog.Int("stores", len(stats.Stores)))
	c.JSON(http.StatusOK, dto.ToDashboardResponse(stats, params.FromDate, params.ToDate))
}
