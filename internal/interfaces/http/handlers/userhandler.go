package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dggcrm/dggcrm/internal/application/user/usecases"
	"github.com/dggcrm/dggcrm/internal/shared/logger"
	"github.com/dggcrm/dggcrm/internal/shared/utils"
	"github.com/dggcrm/dggcrm/internal/shared/version"
)

var userOrderingFields = map[string]string{
	"id":          "id",
	"username":    "username",
	"email":       "email",
	"date_joined": "created_at",
	"last_login":  "last_login_at",
}

// UserHandler handles HTTP requests for account administration
type UserHandler struct {
	listUsersUC  usecases.ListUsersExecutor
	changeRoleUC usecases.ChangeUserRoleExecutor
	logger       logger.Interface
}

// NewUserHandler creates a new user handler
func NewUserHandler(
	listUsersUC usecases.ListUsersExecutor,
	changeRoleUC usecases.ChangeUserRoleExecutor,
	log logger.Interface,
) *UserHandler {
	return &UserHandler{
		listUsersUC:  listUsersUC,
		changeRoleUC: changeRoleUC,
		logger:       log,
	}
}

// ListUsers handles GET /users
// @Summary List accounts
// @Tags users
// @Produce json
// @Param q query string false "Substring of username, email or name"
// @Param role query string false "Role filter"
// @Param ordering query string false "Ordering, e.g. -date_joined"
// @Success 200 {object} utils.APIResponse
// @Router /users [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	base, err := utils.ParseBaseFilter(c, userOrderingFields)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	q := usecases.ListUsersQuery{
		BaseFilter: base,
		Search:     utils.QueryString(c, "q"),
		Role:       utils.QueryOptional(c, "role"),
	}
	result, err := h.listUsersUC.Execute(c.Request.Context(), q)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Users, result.Total, result.Page, result.PageSize)
}

// ChangeRole handles PATCH /users/:id/role
func (h *UserHandler) ChangeRole(c *gin.Context) {
	actorID, err := utils.RequireActorID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	userID, err := utils.ParseIDParam(c, "id", "user")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req ChangeRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	result, err := h.changeRoleUC.Execute(c.Request.Context(), usecases.ChangeUserRoleCommand{
		ActorID: actorID,
		UserID:  userID,
		Role:    req.Role,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	h.logger.Infow("user role changed", "actor_id", actorID, "user_id", userID, "role", req.Role)
	utils.SuccessResponse(c, http.StatusOK, "Role updated successfully", result)
}

// HealthCheck handles GET /health
func (h *UserHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "dggcrm",
	})
}

// Version handles GET /version to return the build metadata
func (h *UserHandler) Version(c *gin.Context) {
	c.JSON(http.StatusOK, version.Get())
}
