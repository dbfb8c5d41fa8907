package ticket

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dggcrm/dggcrm/internal/application/ticket/usecases"
	"github.com/dggcrm/dggcrm/internal/shared/logger"
	"github.com/dggcrm/dggcrm/internal/shared/utils"
)

type TicketHandler struct {
	createTicketUC   usecases.CreateTicketExecutor
	updateTicketUC   usecases.UpdateTicketExecutor
	deleteTicketUC   usecases.DeleteTicketExecutor
	getTicketUC      usecases.GetTicketExecutor
	listTicketsUC    usecases.ListTicketsExecutor
	claimTicketUC    usecases.ClaimTicketExecutor
	unclaimTicketUC  usecases.UnclaimTicketExecutor
	assignTicketUC   usecases.AssignTicketExecutor
	addCommentUC     usecases.AddCommentExecutor
	listCommentsUC   usecases.ListCommentsExecutor
	listAuditLogsUC  usecases.ListAuditLogsExecutor
	getTimelineUC    usecases.GetTimelineExecutor
	groupByContactUC usecases.GroupTicketsByContactExecutor
	logger           logger.Interface
}

func NewTicketHandler(
	createTicketUC usecases.CreateTicketExecutor,
	updateTicketUC usecases.UpdateTicketExecutor,
	deleteTicketUC usecases.DeleteTicketExecutor,
	getTicketUC usecases.GetTicketExecutor,
	listTicketsUC usecases.ListTicketsExecutor,
	claimTicketUC usecases.ClaimTicketExecutor,
	unclaimTicketUC usecases.UnclaimTicketExecutor,
	assignTicketUC usecases.AssignTicketExecutor,
	addCommentUC usecases.AddCommentExecutor,
	listCommentsUC usecases.ListCommentsExecutor,
	listAuditLogsUC usecases.ListAuditLogsExecutor,
	getTimelineUC usecases.GetTimelineExecutor,
	groupByContactUC usecases.GroupTicketsByContactExecutor,
	logger logger.Interface,
) *TicketHandler {
	return &TicketHandler{
		createTicketUC:   createTicketUC,
		updateTicketUC:   updateTicketUC,
		deleteTicketUC:   deleteTicketUC,
		getTicketUC:      getTicketUC,
		listTicketsUC:    listTicketsUC,
		claimTicketUC:    claimTicketUC,
		unclaimTicketUC:  unclaimTicketUC,
		assignTicketUC:   assignTicketUC,
		addCommentUC:     addCommentUC,
		listCommentsUC:   listCommentsUC,
		listAuditLogsUC:  listAuditLogsUC,
		getTimelineUC:    getTimelineUC,
		groupByContactUC: groupByContactUC,
		logger:           logger,
	}
}

// CreateTicket handles POST /tickets
// @Summary Create a ticket
// @Description The caller is recorded as reporter and a CREATED audit entry is written.
// @Tags tickets
// @Accept json
// @Produce json
// @Param ticket body CreateTicketRequest true "Ticket data"
// @Success 201 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Router /tickets [post]
func (h *TicketHandler) CreateTicket(c *gin.Context) {
	var req CreateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create ticket", "error", err)
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	result, err := h.createTicketUC.Execute(c.Request.Context(), req.ToCommand(utils.GetActorID(c)))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Ticket created successfully")
}

// GetTicket handles GET /tickets/:id
func (h *TicketHandler) GetTicket(c *gin.Context) {
	ticketID, err := parseTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.getTicketUC.Execute(c.Request.Context(), usecases.GetTicketQuery{TicketID: ticketID})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// ListTickets handles GET /tickets
// @Summary List tickets
// @Tags tickets
// @Produce json
// @Param q query string false "Search in id, title and description"
// @Param ticket_status query string false "Status filter"
// @Param ticket_type query string false "Type filter"
// @Param priority query int false "Priority filter"
// @Param ordering query string false "Comma separated fields, - for descending"
// @Success 200 {object} utils.APIResponse
// @Router /tickets [get]
func (h *TicketHandler) ListTickets(c *gin.Context) {
	q, err := parseListTicketsQuery(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.listTicketsUC.Execute(c.Request.Context(), q)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Tickets, result.Total, result.Page, result.PageSize)
}

// UpdateTicket handles PATCH /tickets/:id
func (h *TicketHandler) UpdateTicket(c *gin.Context) {
	ticketID, err := parseTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req UpdateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for update ticket", "error", err, "ticket_id", ticketID)
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	result, err := h.updateTicketUC.Execute(c.Request.Context(), req.ToCommand(ticketID, utils.GetActorID(c)))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Ticket updated successfully", result)
}

// DeleteTicket handles DELETE /tickets/:id
func (h *TicketHandler) DeleteTicket(c *gin.Context) {
	ticketID, err := parseTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	cmd := usecases.DeleteTicketCommand{TicketID: ticketID, ActorID: utils.GetActorID(c)}
	if err := h.deleteTicketUC.Execute(c.Request.Context(), cmd); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}

// ClaimTicket handles POST /tickets/:id/claim
// @Summary Claim a ticket
// @Description Assigns the ticket to the caller. Claiming your own ticket again is a no-op; a ticket held by someone else is a conflict.
// @Tags tickets
// @Produce json
// @Param id path int true "Ticket ID"
// @Success 200 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Router /tickets/{id}/claim [post]
func (h *TicketHandler) ClaimTicket(c *gin.Context) {
	ticketID, err := parseTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	cmd := usecases.ClaimTicketCommand{TicketID: ticketID, ActorID: utils.GetActorID(c)}
	result, err := h.claimTicketUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Ticket claimed", result)
}

// UnclaimTicket handles POST /tickets/:id/unclaim
func (h *TicketHandler) UnclaimTicket(c *gin.Context) {
	ticketID, err := parseTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	cmd := usecases.UnclaimTicketCommand{TicketID: ticketID, ActorID: utils.GetActorID(c)}
	result, err := h.unclaimTicketUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Ticket unclaimed", result)
}

// AssignTicket handles POST /tickets/:id/assign
// @Summary Assign or unassign a ticket
// @Description assigned_to must be present. null unassigns.
// @Tags tickets
// @Accept json
// @Produce json
// @Param id path int true "Ticket ID"
// @Param body body AssignTicketRequest true "Assignee"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /tickets/{id}/assign [post]
func (h *TicketHandler) AssignTicket(c *gin.Context) {
	ticketID, err := parseTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req AssignTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	cmd := usecases.AssignTicketCommand{
		TicketID:          ticketID,
		ActorID:           utils.GetActorID(c),
		AssignedToPresent: req.AssignedTo.Set,
		AssignedToID:      req.AssignedTo.Value,
	}
	result, err := h.assignTicketUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Ticket assignment updated", result)
}

// AddComment handles POST /tickets/:id/comment
func (h *TicketHandler) AddComment(c *gin.Context) {
	ticketID, err := parseTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req AddCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	cmd := usecases.AddCommentCommand{
		TicketID: ticketID,
		ActorID:  utils.GetActorID(c),
		Message:  req.Message,
	}
	result, err := h.addCommentUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Comment added successfully")
}

// ListComments handles GET /tickets/:id/comments
func (h *TicketHandler) ListComments(c *gin.Context) {
	ticketID, err := parseTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	page, err := utils.ParsePageFilter(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.listCommentsUC.Execute(c.Request.Context(), usecases.ListCommentsQuery{TicketID: ticketID, PageFilter: page})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Comments, result.Total, result.Page, result.PageSize)
}

// ListAuditLogs handles GET /tickets/:id/audit-logs
func (h *TicketHandler) ListAuditLogs(c *gin.Context) {
	ticketID, err := parseTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	page, err := utils.ParsePageFilter(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.listAuditLogsUC.Execute(c.Request.Context(), usecases.ListAuditLogsQuery{TicketID: ticketID, PageFilter: page})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Entries, result.Total, result.Page, result.PageSize)
}

// GetTimeline handles GET /tickets/:id/timeline
// @Summary Ticket timeline
// @Description Audit entries and comments merged newest first.
// @Tags tickets
// @Produce json
// @Param id path int true "Ticket ID"
// @Param mode query string false "all, audit or comments"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Router /tickets/{id}/timeline [get]
func (h *TicketHandler) GetTimeline(c *gin.Context) {
	ticketID, err := parseTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	page, err := utils.ParsePageFilter(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	q := usecases.GetTimelineQuery{
		TicketID:   ticketID,
		Mode:       utils.QueryString(c, "mode"),
		PageFilter: page,
	}
	result, err := h.getTimelineUC.Execute(c.Request.Context(), q)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Items, result.Total, result.Page, result.PageSize)
}

// GroupByContact handles GET /tickets/group_by_contact
// @Summary Ticket counts per contact
// @Tags reports
// @Produce json
// @Param status query string false "Ticket status, default COMPLETED"
// @Param type query string false "Ticket type"
// @Param min_date query string false "Created on or after"
// @Param max_date query string false "Created on or before"
// @Param min_tickets query int false "Minimum count"
// @Param max_tickets query int false "Maximum count"
// @Success 200 {object} utils.APIResponse
// @Router /tickets/group_by_contact [get]
func (h *TicketHandler) GroupByContact(c *gin.Context) {
	q, err := parseGroupByContactQuery(c)
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

func parseTicketID(c *gin.Context) (uint, error) {
	return utils.ParseIDParam(c, "id", "ticket")
}
