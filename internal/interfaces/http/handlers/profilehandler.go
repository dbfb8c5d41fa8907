package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dggcrm/dggcrm/internal/application/user/usecases"
	"github.com/dggcrm/dggcrm/internal/shared/logger"
	"github.com/dggcrm/dggcrm/internal/shared/utils"
)

// ProfileHandler serves the signed-in account: auth/user and its social
// connections.
type ProfileHandler struct {
	getCurrentUserUC   usecases.GetCurrentUserExecutor
	updateProfileUC    usecases.UpdateProfileExecutor
	deleteConnectionUC usecases.DeleteSocialConnectionExecutor
	logger             logger.Interface
}

func NewProfileHandler(
	getCurrentUserUC usecases.GetCurrentUserExecutor,
	updateProfileUC usecases.UpdateProfileExecutor,
	deleteConnectionUC usecases.DeleteSocialConnectionExecutor,
	logger logger.Interface,
) *ProfileHandler {
	return &ProfileHandler{
		getCurrentUserUC:   getCurrentUserUC,
		updateProfileUC:    updateProfileUC,
		deleteConnectionUC: deleteConnectionUC,
		logger:             logger,
	}
}

// GetUser handles GET /auth/user
// @Summary Get the signed-in account
// @Tags auth
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Router /auth/user [get]
func (h *ProfileHandler) GetUser(c *gin.Context) {
	userID, err := utils.RequireActorID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.getCurrentUserUC.Execute(c.Request.Context(), userID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// UpdateUser handles PATCH /auth/user
func (h *ProfileHandler) UpdateUser(c *gin.Context) {
	userID, err := utils.RequireActorID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for profile update", "error", err, "user_id", userID)
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	result, err := h.updateProfileUC.Execute(c.Request.Context(), req.ToCommand(userID))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Profile updated successfully", result)
}

// DeleteSocialConnection handles DELETE /auth/social/connections/:provider
func (h *ProfileHandler) DeleteSocialConnection(c *gin.Context) {
	userID, err := utils.RequireActorID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	cmd := usecases.DeleteSocialConnectionCommand{UserID: userID, Provider: c.Param("provider")}
	if err := h.deleteConnectionUC.Execute(c.Request.Context(), cmd); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}
