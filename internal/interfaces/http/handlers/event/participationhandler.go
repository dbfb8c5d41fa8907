package event

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dggcrm/dggcrm/internal/application/event/usecases"
	"github.com/dggcrm/dggcrm/internal/shared/logger"
	"github.com/dggcrm/dggcrm/internal/shared/utils"
)

// ParticipationHandler serves contact participation in events.
type ParticipationHandler struct {
	createUC         usecases.CreateParticipationExecutor
	updateUC         usecases.UpdateParticipationExecutor
	deleteUC         usecases.DeleteParticipationExecutor
	getUC            usecases.GetParticipationExecutor
	listUC           usecases.ListParticipationsExecutor
	groupByContactUC usecases.GroupParticipantsByContactExecutor
	logger           logger.Interface
}

func NewParticipationHandler(
	createUC usecases.CreateParticipationExecutor,
	updateUC usecases.UpdateParticipationExecutor,
	deleteUC usecases.DeleteParticipationExecutor,
	getUC usecases.GetParticipationExecutor,
	listUC usecases.ListParticipationsExecutor,
	groupByContactUC usecases.GroupParticipantsByContactExecutor,
	logger logger.Interface,
) *ParticipationHandler {
	return &ParticipationHandler{
		createUC:         createUC,
		updateUC:         updateUC,
		deleteUC:         deleteUC,
		getUC:            getUC,
		listUC:           listUC,
		groupByContactUC: groupByContactUC,
		logger:           logger,
	}
}

// CreateParticipation handles POST /participants
func (h *ParticipationHandler) CreateParticipation(c *gin.Context) {
	var req CreateParticipationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	cmd := usecases.CreateParticipationCommand{
		EventID:   req.EventID,
		ContactID: req.ContactID,
		Status:    req.Status,
		Notes:     req.Notes,
	}
	result, err := h.createUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Participation recorded")
}

// GetParticipation handles GET /participants/:id
func (h *ParticipationHandler) GetParticipation(c *gin.Context) {
	id, err := utils.ParseIDParam(c, "id", "participation")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.getUC.Execute(c.Request.Context(), id)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// ListParticipations handles GET /participants
func (h *ParticipationHandler) ListParticipations(c *gin.Context) {
	q, err := parseListParticipationsQuery(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.listUC.Execute(c.Request.Context(), q)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Participations, result.Total, result.Page, result.PageSize)
}

// UpdateParticipation handles PATCH /participants/:id
func (h *ParticipationHandler) UpdateParticipation(c *gin.Context) {
	id, err := utils.ParseIDParam(c, "id", "participation")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req UpdateParticipationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	cmd := usecases.UpdateParticipationCommand{ParticipationID: id, Status: req.Status, Notes: req.Notes}
	result, err := h.updateUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Participation updated", result)
}

// DeleteParticipation handles DELETE /participants/:id
func (h *ParticipationHandler) DeleteParticipation(c *gin.Context) {
	id, err := utils.ParseIDParam(c, "id", "participation")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.deleteUC.Execute(c.Request.Context(), id); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}

// GroupByContact handles GET /participants/group_by_contact
// @Summary Event counts per contact
// @Tags reports
// @Produce json
// @Param status query string false "Participation status, default attended"
// @Param min_date query string false "Event ended on or after"
// @Param max_date query string false "Event started on or before"
// @Param min_events query int false "Minimum count"
// @Param max_events query int false "Maximum count"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Router /participants/group_by_contact [get]
func (h *ParticipationHandler) GroupByContact(c *gin.Context) {
	q, err := parseGroupParticipantsQuery(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.groupByContactUC.Execute(c.Request.Context(), q)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Rows, result.Total, result.Page, result.PageSize)
}
