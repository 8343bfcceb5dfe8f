package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/topvistorias/cash_closing_app/internal/apperrors"
	portssvc "github.com/topvistorias/cash_closing_app/internal/core/ports/services"
	"github.com/topvistorias/cash_closing_app/internal/core/services"
	"github.com/topvistorias/cash_closing_app/internal/dto"
	"github.com/topvistorias/cash_closing_app/internal/middleware"
)

// ErrorResponse is a generic error response structure for handlers.
type ErrorResponse struct {
	Error string `json:"error"`
}

// closingHandler handles HTTP requests related to cash register closings.
type closingHandler struct {
	closingService portssvc.ClosingSvcFacade
}

// newClosingHandler creates a new closingHandler.
func newClosingHandler(cs portssvc.ClosingSvcFacade) *closingHandler {
	return &closingHandler{
		closingService: cs,
	}
}

// registerClosingRoutes registers routes related to closings.
func registerClosingRoutes(rg *gin.RouterGroup, closingService portssvc.ClosingSvcFacade) {
	h := newClosingHandler(closingService)

	// Submissions and edits are rate limited per IP; one operator never
	// legitimately submits this often.
	rate, _ := limiter.NewRateFromFormatted("30-M")
	writeLimiter := middleware.RateLimit(limiter.New(memory.NewStore(), rate))

	closings := rg.Group("/closings")
	{
		closings.POST("", writeLimiter, h.createClosing)
		closings.PUT("/:closingID", writeLimiter, h.updateClosing)
		closings.GET("/:closingID", h.getClosing)
		closings.GET("", h.listClosings)
	}
}

// createClosing godoc
// @Summary Submit a day's closing
// @Description Persists a closing and its child collections. The closing row is saved first; if any sub-step fails afterwards the response reports status "partial" with the failed step names, and nothing is rolled back.
// @Tags closings
// @Accept  json
// @Produce  json
// @Param   closing body dto.CreateClosingRequest true "Closing form data"
// @Success 201 {object} dto.ClosingSyncResult
// @Failure 400 {object} ErrorResponse "Invalid input format or validation error"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 403 {object} ErrorResponse "Forbidden (another store's closing)"
// @Failure 500 {object} ErrorResponse "Failed to save closing"
// @Security BearerAuth
// @Router /closings [post]
func (h *closingHandler) createClosing(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateClosingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateClosing", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	actor, ok := middleware.GetActorFromGin(c)
	if !ok {
		logger.Error("Actor not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("store_id", req.StoreID), slog.String("closing_date", req.ClosingDate))
	logger.Info("Received request to create closing")

	result, err := h.closingService.CreateClosing(c.Request.Context(), actor, req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrForbidden):
			logger.Warn("Actor forbidden to create closing", slog.String("error", err.Error()))
			c.JSON(http.StatusForbidden, ErrorResponse{Error: err.Error()})
		case errors.Is(err, apperrors.ErrValidation), errors.Is(err, services.ErrDuplicateSettlement):
			logger.Warn("Validation error creating closing", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		default:
			logger.Error("Failed to create closing in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to save closing"})
		}
		return
	}

	logger.Info("Closing created", slog.String("closing_id", result.ClosingID), slog.String("status", result.Status))
	c.JSON(http.StatusCreated, result)
}

// updateClosing godoc
// @Summary Edit an existing closing
// @Description Updates a closing's mutable fields and rewrites its exit collections. Receivables and payments created by the original submission are not touched. Partial failures are reported the same way as on create.
// @Tags closings
// @Accept  json
// @Produce  json
// @Param   closingID path string true "Closing ID"
// @Param   closing body dto.UpdateClosingRequest true "Updated closing form data"
// @Success 200 {object} dto.ClosingSyncResult
// @Failure 400 {object} ErrorResponse "Invalid input format or validation error"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 403 {object} ErrorResponse "Forbidden (another store's closing)"
// @Failure 404 {object} ErrorResponse "Closing not found"
// @Failure 500 {object} ErrorResponse "Failed to update closing"
// @Security BearerAuth
// @Router /closings/{closingID} [put]
func (h *closingHandler) updateClosing(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	closingID := c.Param("closingID")

	var req dto.UpdateClosingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateClosing", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	actor, ok := middleware.GetActorFromGin(c)
	if !ok {
		logger.Error("Actor not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("closing_id", closingID))
	logger.Info("Received request to update closing")

	result, err := h.closingService.UpdateClosing(c.Request.Context(), actor, closingID, req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			logger.Warn("Closing not found for update")
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Closing not found"})
		case errors.Is(err, apperrors.ErrForbidden):
			logger.Warn("Actor forbidden to update closing", slog.String("error", err.Error()))
			c.JSON(http.StatusForbidden, ErrorResponse{Error: err.Error()})
		case errors.Is(err, apperrors.ErrValidation):
			logger.Warn("Validation error updating closing", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		default:
			logger.Error("Failed to update closing in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to update closing"})
		}
		return
	}

	logger.Info("Closing updated", slog.String("status", result.Status))
	c.JSON(http.StatusOK, result)
}

// getClosing godoc
// @Summary Get a closing by ID
// @Description Retrieves a closing together with its exits, originated receivables and received payments
// @Tags closings
// @Produce  json
// @Param   closingID path string true "Closing ID"
// @Success 200 {object} dto.ClosingDetailResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 403 {object} ErrorResponse "Forbidden (another store's closing)"
// @Failure 404 {object} ErrorResponse "Closing not found"
// @Failure 500 {object} ErrorResponse "Failed to retrieve closing"
// @Security BearerAuth
// @Router /closings/{closingID} [get]
func (h *closingHandler) getClosing(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	closingID := c.Param("closingID")

	actor, ok := middleware.GetActorFromGin(c)
	if !ok {
		logger.Error("Actor not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	detail, err := h.closingService.GetClosing(c.Request.Context(), actor, closingID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			logger.Warn("Closing not found", slog.String("closing_id", closingID))
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Closing not found"})
		case errors.Is(err, apperrors.ErrForbidden):
			logger.Warn("Actor forbidden to view closing", slog.String("closing_id", closingID))
			c.JSON(http.StatusForbidden, ErrorResponse{Error: "Forbidden"})
		default:
			logger.Error("Failed to get closing from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve closing"})
		}
		return
	}

	c.JSON(http.StatusOK, detail)
}

// listClosings godoc
// @Summary List closings
// @Description Retrieves a paginated list of closings, newest first. Store operators only see their own store; administrators may filter by store and date range.
// @Tags closings
// @Produce  json
// @Param   storeID query string false "Filter by store ID"
// @Param   fromDate query string false "Start of closing date range (DD/MM/YYYY)"
// @Param   toDate query string false "End of closing date range (DD/MM/YYYY)"
// @Param   limit query int false "Limit number of results" default(20)
// @Param   nextToken query string false "Pagination token from a previous response"
// @Success 200 {object} dto.ListClosingsResponse
// @Failure 400 {object} ErrorResponse "Invalid query parameters"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to list closings"
// @Security BearerAuth
// @Router /closings [get]
func (h *closingHandler) listClosings(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListClosingsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for ListClosings", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	actor, ok := middleware.GetActorFromGin(c)
	if !ok {
		logger.Error("Actor not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	resp, err := h.closingService.ListClosings(c.Request.Context(), actor, params)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error listing closings", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		logger.Error("Failed to list closings from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list closings"})
		return
	}

	logger.Info("Closings listed", slog.Int("count", len(resp.Closings)))
	c.JSON(http.StatusOK, resp)
}
