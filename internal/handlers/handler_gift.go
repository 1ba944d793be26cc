package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/SscSPs/vip_gift_workflow/internal/apperrors"
	portssvc "github.com/SscSPs/vip_gift_workflow/internal/core/ports/services"
	"github.com/SscSPs/vip_gift_workflow/internal/dto"
	"github.com/SscSPs/vip_gift_workflow/internal/middleware"
	"github.com/gin-gonic/gin"
)

// giftHandler handles HTTP requests for reading gifts.
type giftHandler struct {
	giftService portssvc.GiftSvcFacade
}

// newGiftHandler creates a new giftHandler.
func newGiftHandler(giftService portssvc.GiftSvcFacade) *giftHandler {
	return &giftHandler{giftService: giftService}
}

// RegisterGiftRoutes registers the gift read routes.
func RegisterGiftRoutes(rg *gin.RouterGroup, giftService portssvc.GiftSvcFacade) {
	h := newGiftHandler(giftService)

	gifts := rg.Group("/gifts")
	{
		gifts.GET("/:giftID", h.getGift)
		gifts.GET("/:giftID/timeline", h.listTimeline)
	}
}

func parseGiftID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("giftID"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid gift id"})
		return 0, false
	}
	return id, true
}

// getGift godoc
// @Summary Get a gift
// @Description Retrieves the current state of a gift by its ID
// @Tags gifts
// @Produce  json
// @Param   giftID path int true "Gift ID"
// @Success 200 {object} dto.GiftResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid gift id"
// @Failure 404 {object} dto.ErrorResponse "Gift not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to retrieve gift"
// @Security BearerAuth
// @Router /gifts/{giftID} [get]
func (h *giftHandler) getGift(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	giftID, ok := parseGiftID(c)
	if !ok {
		return
	}

	gift, err := h.giftService.GetGiftByID(c.Request.Context(), giftID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "Gift not found"})
			return
		}
		logger.Error("Failed to get gift from service", slog.String("error", err.Error()), slog.Int64("gift_id", giftID))
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to retrieve gift", Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, dto.ToGiftResponse(gift))
}

// listTimeline godoc
// @Summary List a gift's timeline
// @Description Returns the audit trail of a gift, oldest first, with token pagination
// @Tags gifts
// @Produce  json
// @Param   giftID path int true "Gift ID"
// @Param   limit query int false "Page size (1-200)" default(50)
// @Param   nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListTimelineResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid parameters"
// @Failure 404 {object} dto.ErrorResponse "Gift not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to list timeline"
// @Security BearerAuth
// @Router /gifts/{giftID}/timeline [get]
func (h *giftHandler) listTimeline(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	giftID, ok := parseGiftID(c)
	if !ok {
		return
	}

	var params dto.ListTimelineParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.giftService.ListGiftTimeline(c.Request.Context(), giftID, params)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "Gift not found"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
		default:
			logger.Error("Failed to list gift timeline", slog.String("error", err.Error()), slog.Int64("gift_id", giftID))
			c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to list timeline", Error: err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, resp)
}
