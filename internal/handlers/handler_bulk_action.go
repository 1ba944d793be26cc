package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/vip_gift_workflow/internal/apperrors"
	portssvc "github.com/SscSPs/vip_gift_workflow/internal/core/ports/services"
	"github.com/SscSPs/vip_gift_workflow/internal/dto"
	"github.com/SscSPs/vip_gift_workflow/internal/middleware"
	"github.com/gin-gonic/gin"
)

// bulkActionHandler handles HTTP requests related to bulk workflow actions.
type bulkActionHandler struct {
	bulkActionService portssvc.BulkActionSvcFacade
}

// newBulkActionHandler creates a new bulkActionHandler.
func newBulkActionHandler(bulkActionService portssvc.BulkActionSvcFacade) *bulkActionHandler {
	return &bulkActionHandler{bulkActionService: bulkActionService}
}

// RegisterBulkActionRoutes registers the bulk action routes. guards run before the execute handler only.
func RegisterBulkActionRoutes(rg *gin.RouterGroup, bulkActionService portssvc.BulkActionSvcFacade, guards ...gin.HandlerFunc) {
	h := newBulkActionHandler(bulkActionService)

	rg.GET("/bulk-actions", h.listActions)
	rg.POST("/gifts/bulk-actions", append(guards, h.executeBulkAction)...)
}

// executeBulkAction godoc
// @Summary Apply a workflow action to a batch of gifts
// @Description Validates the action against every targeted gift and applies it atomically. Either every gift transitions or none does.
// @Tags gifts
// @Accept  json
// @Produce  json
// @Param   request body dto.BulkActionRequest true "Action, gift ids and action payload"
// @Success 200 {object} dto.BulkActionResponse "Batch committed"
// @Failure 400 {object} dto.ErrorResponse "Invalid input or precondition violations"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "No gifts found or no changes made"
// @Failure 409 {object} dto.ErrorResponse "Gifts changed between validation and mutation"
// @Failure 429 {object} dto.ErrorResponse "Too many requests"
// @Failure 500 {object} dto.ErrorResponse "Transaction failure"
// @Security BearerAuth
// @Router /gifts/bulk-actions [post]
func (h *bulkActionHandler) executeBulkAction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.BulkActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind bulk action request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Unauthorized"})
		return
	}

	domainReq, err := req.ToDomainBulkActionRequest(userID)
	if err != nil {
		logger.Warn("Bulk action request rejected", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
		return
	}
	c.Set(middleware.BulkActionKey, string(domainReq.Action))

	result, err := h.bulkActionService.ExecuteBulkAction(c.Request.Context(), domainReq)
	if err != nil {
		status, body := bulkActionErrorResponse(err)
		if status == http.StatusInternalServerError {
			logger.Error("Bulk action failed", slog.String("error", err.Error()))
		}
		c.JSON(status, body)
		return
	}

	c.JSON(http.StatusOK, dto.ToBulkActionResponse(result))
}

// bulkActionErrorResponse maps engine errors to their HTTP status and envelope.
func bulkActionErrorResponse(err error) (int, dto.ErrorResponse) {
	var precondition *apperrors.PreconditionError
	switch {
	case errors.As(err, &precondition):
		requiresModal := precondition.RequiresModal
		return http.StatusBadRequest, dto.ErrorResponse{
			Message:       precondition.Message,
			InvalidGifts:  precondition.Violations,
			RequiresModal: &requiresModal,
		}
	case errors.Is(err, apperrors.ErrValidation):
		return http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()}
	case errors.Is(err, apperrors.ErrNoChange):
		return http.StatusNotFound, dto.ErrorResponse{Message: "No gifts found or no changes made"}
	case errors.Is(err, apperrors.ErrConcurrentModification):
		return http.StatusConflict, dto.ErrorResponse{Message: err.Error()}
	default:
		return http.StatusInternalServerError, dto.ErrorResponse{
			Message: "Failed to apply bulk action",
			Error:   err.Error(),
		}
	}
}

// listActions godoc
// @Summary List the accepted bulk actions
// @Description Returns every canonical action with its accepted identifiers, required payload fields and legal source statuses.
// @Tags gifts
// @Produce  json
// @Success 200 {array} dto.ActionDescriptorResponse
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Security BearerAuth
// @Router /bulk-actions [get]
func (h *bulkActionHandler) listActions(c *gin.Context) {
	descriptors := h.bulkActionService.ListActions()
	resp := make([]dto.ActionDescriptorResponse, len(descriptors))
	for i, d := range descriptors {
		resp[i] = dto.ActionDescriptorResponse{
			Action:          d.Action,
			Aliases:         dto.AliasesOf(d.Action),
			RequiredPayload: d.RequiredPayload,
			LegalFrom:       d.LegalFrom,
			ToStatus:        d.ToStatus,
			WritesTimeline:  d.WritesTimeline,
		}
	}
	c.JSON(http.StatusOK, resp)
}
