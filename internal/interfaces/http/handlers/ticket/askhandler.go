package ticket

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dggcrm/dggcrm/internal/application/ticket/usecases"
	"github.com/dggcrm/dggcrm/internal/shared/logger"
	"github.com/dggcrm/dggcrm/internal/shared/utils"
)

// AskHandler serves the per-contact asks recorded on a ticket and the
// acceptance statistics derived from them.
type AskHandler struct {
	createAskUC       usecases.CreateAskExecutor
	listAsksUC        usecases.ListAsksExecutor
	updateAskUC       usecases.UpdateAskExecutor
	updateAskByKeysUC usecases.UpdateAskByKeysExecutor
	acceptanceRateUC  usecases.GetAcceptanceRateExecutor
	logger            logger.Interface
}

func NewAskHandler(
	createAskUC usecases.CreateAskExecutor,
	listAsksUC usecases.ListAsksExecutor,
	updateAskUC usecases.UpdateAskExecutor,
	updateAskByKeysUC usecases.UpdateAskByKeysExecutor,
	acceptanceRateUC usecases.GetAcceptanceRateExecutor,
	logger logger.Interface,
) *AskHandler {
	return &AskHandler{
		createAskUC:       createAskUC,
		listAsksUC:        listAsksUC,
		updateAskUC:       updateAskUC,
		updateAskByKeysUC: updateAskByKeysUC,
		acceptanceRateUC:  acceptanceRateUC,
		logger:            logger,
	}
}

// ListAsks handles GET /tickets/:id/asks
func (h *AskHandler) ListAsks(c *gin.Context) {
	ticketID, err := parseTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.listAsksUC.Execute(c.Request.Context(), usecases.ListAsksQuery{TicketID: ticketID})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// CreateAsk handles POST /tickets/:id/asks
func (h *AskHandler) CreateAsk(c *gin.Context) {
	ticketID, err := parseTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req CreateAskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	cmd := usecases.CreateAskCommand{
		TicketID:  ticketID,
		ActorID:   utils.GetActorID(c),
		ContactID: req.ContactID,
		Status:    req.Status,
		Notes:     req.Notes,
	}
	result, err := h.createAskUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Ask recorded")
}

// UpdateAsk handles PATCH /tickets/:id/asks/:askId
func (h *AskHandler) UpdateAsk(c *gin.Context) {
	ticketID, err := parseTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	askID, err := utils.ParseIDParam(c, "askId", "ask")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req UpdateAskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	cmd := usecases.UpdateAskCommand{
		TicketID: ticketID,
		AskID:    askID,
		ActorID:  utils.GetActorID(c),
		Status:   req.Status,
		Notes:    req.Notes,
	}
	result, err := h.updateAskUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Ask updated", result)
}

// UpdateAskByKeys handles PUT /tickets/asks/update-by-keys
// @Summary Record a contact response by ticket and contact
// @Description Updates the newest ask for the pair. Never creates one.
// @Tags tickets
// @Accept json
// @Produce json
// @Param body body UpdateAskByKeysRequest true "Keys and new status"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /tickets/asks/update-by-keys [put]
func (h *AskHandler) UpdateAskByKeys(c *gin.Context) {
	var req UpdateAskByKeysRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	cmd := usecases.UpdateAskByKeysCommand{
		ActorID:   utils.GetActorID(c),
		TicketID:  req.TicketID,
		ContactID: req.ContactID,
		Status:    req.Status,
	}
	result, err := h.updateAskByKeysUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Ask updated", result)
}

// AcceptanceRate handles GET /contacts/:id/acceptance-rate
func (h *AskHandler) AcceptanceRate(c *gin.Context) {
	contactID, err := utils.ParseIDParam(c, "id", "contact")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.acceptanceRateUC.Execute(c.Request.Context(), usecases.GetAcceptanceRateQuery{ContactID: contactID})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}
