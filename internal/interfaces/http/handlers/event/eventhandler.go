package event

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dggcrm/dggcrm/internal/application/event/usecases"
	"github.com/dggcrm/dggcrm/internal/shared/logger"
	"github.com/dggcrm/dggcrm/internal/shared/utils"
)

type EventHandler struct {
	createEventUC usecases.CreateEventExecutor
	updateEventUC usecases.UpdateEventExecutor
	deleteEventUC usecases.DeleteEventExecutor
	getEventUC    usecases.GetEventExecutor
	listEventsUC  usecases.ListEventsExecutor
	logger        logger.Interface
}

func NewEventHandler(
	createEventUC usecases.CreateEventExecutor,
	updateEventUC usecases.UpdateEventExecutor,
	deleteEventUC usecases.DeleteEventExecutor,
	getEventUC usecases.GetEventExecutor,
	listEventsUC usecases.ListEventsExecutor,
	logger logger.Interface,
) *EventHandler {
	return &EventHandler{
		createEventUC: createEventUC,
		updateEventUC: updateEventUC,
		deleteEventUC: deleteEventUC,
		getEventUC:    getEventUC,
		listEventsUC:  listEventsUC,
		logger:        logger,
	}
}

// CreateEvent handles POST /events
// @Summary Create an event
// @Tags events
// @Accept json
// @Produce json
// @Param event body CreateEventRequest true "Event data"
// @Success 201 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Router /events [post]
func (h *EventHandler) CreateEvent(c *gin.Context) {
	var req CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create event", "error", err)
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	result, err := h.createEventUC.Execute(c.Request.Context(), req.ToCommand())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Event created successfully")
}

// GetEvent handles GET /events/:id
func (h *EventHandler) GetEvent(c *gin.Context) {
	eventID, err := utils.ParseIDParam(c, "id", "event")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.getEventUC.Execute(c.Request.Context(), eventID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// ListEvents handles GET /events
func (h *EventHandler) ListEvents(c *gin.Context) {
	q, err := parseListEventsQuery(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.listEventsUC.Execute(c.Request.Context(), q)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Events, result.Total, result.Page, result.PageSize)
}

// UpdateEvent handles PATCH /events/:id
func (h *EventHandler) UpdateEvent(c *gin.Context) {
	eventID, err := utils.ParseIDParam(c, "id", "event")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for update event", "error", err, "event_id", eventID)
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	result, err := h.updateEventUC.Execute(c.Request.Context(), req.ToCommand(eventID))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Event updated successfully", result)
}

// DeleteEvent handles DELETE /events/:id
func (h *EventHandler) DeleteEvent(c *gin.Context) {
	eventID, err := utils.ParseIDParam(c, "id", "event")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.deleteEventUC.Execute(c.Request.Context(), eventID); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}
