package event

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dggcrm/dggcrm/internal/application/event/usecases"
	"github.com/dggcrm/dggcrm/internal/shared/logger"
	"github.com/dggcrm/dggcrm/internal/shared/utils"
)

// UserInEventHandler links staff users to the events they run.
type UserInEventHandler struct {
	addUC    usecases.AddUserToEventExecutor
	removeUC usecases.RemoveUserFromEventExecutor
	getUC    usecases.GetUserInEventExecutor
	listUC   usecases.ListUsersInEventExecutor
	logger   logger.Interface
}

func NewUserInEventHandler(
	addUC usecases.AddUserToEventExecutor,
	removeUC usecases.RemoveUserFromEventExecutor,
	getUC usecases.GetUserInEventExecutor,
	listUC usecases.ListUsersInEventExecutor,
	logger logger.Interface,
) *UserInEventHandler {
	return &UserInEventHandler{
		addUC:    addUC,
		removeUC: removeUC,
		getUC:    getUC,
		listUC:   listUC,
		logger:   logger,
	}
}

// AddUser handles POST /users-in-events
func (h *UserInEventHandler) AddUser(c *gin.Context) {
	var req AddUserToEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	result, err := h.addUC.Execute(c.Request.Context(), usecases.AddUserToEventCommand{UserID: req.UserID, EventID: req.EventID})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "User added to event")
}

// Get handles GET /users-in-events/:id
func (h *UserInEventHandler) Get(c *gin.Context) {
	id, err := utils.ParseIDParam(c, "id", "user in event")
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

// List handles GET /users-in-events
func (h *UserInEventHandler) List(c *gin.Context) {
	base, err := utils.ParseBaseFilter(c, userInEventOrderingFields)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	q := usecases.ListUsersInEventQuery{BaseFilter: base}
	if q.EventID, err = utils.QueryUint(c, "event"); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	if q.UserID, err = utils.QueryUint(c, "user"); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.listUC.Execute(c.Request.Context(), q)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Links, result.Total, result.Page, result.PageSize)
}

// RemoveUser handles DELETE /users-in-events/:id
func (h *UserInEventHandler) RemoveUser(c *gin.Context) {
	id, err := utils.ParseIDParam(c, "id", "user in event")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.removeUC.Execute(c.Request.Context(), id); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}
