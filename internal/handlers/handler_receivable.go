package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/topvistorias/cash_closing_app/internal/apperrors"
	portssvc "github.com/topvistorias/cash_closing_app/internal/core/ports/services"
	"github.com/topvistorias/cash_closing_app/internal/core/services"
	"github.com/topvistorias/cash_closing_app/internal/dto"
	"github.com/topvistorias/cash_closing_app/internal/middleware"
)

// receivableHandler handles HTTP requests related to receivables.
type receivableHandler struct {
	receivableService portssvc.ReceivableSvcFacade
}

// newReceivableHandler creates a new receivableHandler.
func newReceivableHandler(rs portssvc.ReceivableSvcFacade) *receivableHandler {
	return &receivableHandler{
		receivableService: rs,
	}
}

// registerReceivableRoutes registers routes related to receivables.
func registerReceivableRoutes(rg *gin.RouterGroup, receivableService portssvc.ReceivableSvcFacade) {
	h := newReceivableHandler(receivableService)

	receivables := rg.Group("/receivables")
	{
		receivables.GET("", h.listReceivables)
		receivables.GET("/pending", h.listPendingReceivables)
		receivables.POST("/:receivableID/writeoff", h.writeOffReceivable)
	}
}

// listReceivables godoc
// @Summary List receivables
// @Description Retrieves receivables for the administrative screen, optionally filtered by store and status
// @Tags receivables
// @Produce  json
// @Param   storeID query string false "Filter by store ID"
// @Param   status query string false "Filter by status" Enums(pending, paid_pending_writeoff, written_off, all)
// @Success 200 {object} dto.ListReceivablesResponse
// @Failure 400 {object} ErrorResponse "Invalid query parameters"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Failure 500 {object} ErrorResponse "Failed to list receivables"
// @Security BearerAuth
// @Router /receivables [get]
func (h *receivableHandler) listReceivables(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListReceivablesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for ListReceivables", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	actor, ok := middleware.GetActorFromGin(c)
	if !ok {
		logger.Error("Actor not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	resp, err := h.receivableService.ListReceivables(c.Request.Context(), actor, params)
	if err != nil {
		if errors.Is(err, apperrors.ErrForbidden) {
			logger.Warn("Actor forbidden to list receivables", slog.String("error", err.Error()))
			c.JSON(http.StatusForbidden, ErrorResponse{Error: err.Error()})
			return
		}
		logger.Error("Failed to list receivables from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list receivables"})
		return
	}

	logger.Info("Receivables listed", slog.Int("count", len(resp.Receivables)))
	c.JSON(http.StatusOK, resp)
}

// listPendingReceivables godoc
// @Summary List a store's pending receivables
// @Description Retrieves the receivables still pending for a store and their outstanding total, as shown on the closing form. Store operators may only query their own store.
// @Tags receivables
// @Produce  json
// @Param   storeID query string false "Store ID (defaults to the caller's store)"
// @Success 200 {object} dto.PendingReceivablesResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 403 {object} ErrorResponse "Forbidden (another store's receivables)"
// @Failure 500 {object} ErrorResponse "Failed to list pending receivables"
// @Security BearerAuth
// @Router /receivables/pending [get]
func (h *receivableHandler) listPendingReceivables(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	actor, ok := middleware.GetActorFromGin(c)
	if !ok {
		logger.Error("Actor not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	storeID := c.Query("storeID")
	if storeID == "" {
		storeID = actor.StoreID
	}

	resp, err := h.receivableService.ListPendingForStore(c.Request.Context(), actor, storeID)
	if err != nil {
		if errors.Is(err, apperrors.ErrForbidden) {
			logger.Warn("Actor forbidden to list pending receivables", slog.String("store_id", storeID))
			c.JSON(http.StatusForbidden, ErrorResponse{Error: err.Error()})
			return
		}
		logger.Error("Failed to list pending receivables", slog.String("store_id", storeID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list pending receivables"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// writeOffReceivable godoc
// @Summary Write off a settled receivable
// @Description Moves a paid_pending_writeoff receivable to written_off, stamping the write-off date and acting user. Administrative users only.
// @Tags receivables
// @Produce  json
// @Param   receivableID path string true "Receivable ID"
// @Success 200 {object} dto.ReceivableResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 403 {object} ErrorResponse "Forbidden (not an administrative user)"
// @Failure 404 {object} ErrorResponse "Receivable not found"
// @Failure 409 {object} ErrorResponse "Receivable is not awaiting write-off"
// @Failure 500 {object} ErrorResponse "Failed to write off receivable"
// @Security BearerAuth
// @Router /receivables/{receivableID}/writeoff [post]
func (h *receivableHandler) writeOffReceivable(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	receivableID := c.Param("receivableID")

	actor, ok := middleware.GetActorFromGin(c)
	if !ok {
		logger.Error("Actor not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("receivable_id", receivableID))
	logger.Info("Received request to write off receivable")

	receivable, err := h.receivableService.WriteOffReceivable(c.Request.Context(), actor, receivableID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			logger.Warn("Receivable not found for write-off")
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Receivable not found"})
		case errors.Is(err, apperrors.ErrForbidden):
			logger.Warn("Actor forbidden to write off receivable")
			c.JSON(http.StatusForbidden, ErrorResponse{Error: err.Error()})
		case errors.Is(err, services.ErrInvalidStateTransition):
			logger.Warn("Invalid state transition for write-off", slog.String("error", err.Error()))
			c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
		default:
			logger.Error("Failed to write off receivable", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to write off receivable"})
		}
		return
	}

	logger.Info("Receivable written off")
	c.JSON(http.StatusOK, dto.ToReceivableResponse(receivable))
}
