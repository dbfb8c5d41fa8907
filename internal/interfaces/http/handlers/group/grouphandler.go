package group

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dggcrm/dggcrm/internal/application/group/usecases"
	"github.com/dggcrm/dggcrm/internal/shared/logger"
	"github.com/dggcrm/dggcrm/internal/shared/utils"
)

var orderingFields = map[string]string{
	"name":       "name",
	"created_at": "created_at",
}

type GroupRequest struct {
	Name string `json:"name" binding:"required,max=255"`
}

type AddMemberRequest struct {
	ContactID   uint `json:"contact_id" binding:"required"`
	AccessLevel int  `json:"access_level" binding:"min=0"`
}

// GroupHandler serves volunteer groups and their memberships.
type GroupHandler struct {
	createGroupUC  usecases.CreateGroupExecutor
	renameGroupUC  usecases.RenameGroupExecutor
	deleteGroupUC  usecases.DeleteGroupExecutor
	getGroupUC     usecases.GetGroupExecutor
	listGroupsUC   usecases.ListGroupsExecutor
	addMemberUC    usecases.AddMemberExecutor
	removeMemberUC usecases.RemoveMemberExecutor
	listMembersUC  usecases.ListMembersExecutor
	logger         logger.Interface
}

func NewGroupHandler(
	createGroupUC usecases.CreateGroupExecutor,
	renameGroupUC usecases.RenameGroupExecutor,
	deleteGroupUC usecases.DeleteGroupExecutor,
	getGroupUC usecases.GetGroupExecutor,
	listGroupsUC usecases.ListGroupsExecutor,
	addMemberUC usecases.AddMemberExecutor,
	removeMemberUC usecases.RemoveMemberExecutor,
	listMembersUC usecases.ListMembersExecutor,
	logger logger.Interface,
) *GroupHandler {
	return &GroupHandler{
		createGroupUC:  createGroupUC,
		renameGroupUC:  renameGroupUC,
		deleteGroupUC:  deleteGroupUC,
		getGroupUC:     getGroupUC,
		listGroupsUC:   listGroupsUC,
		addMemberUC:    addMemberUC,
		removeMemberUC: removeMemberUC,
		listMembersUC:  listMembersUC,
		logger:         logger,
	}
}

// CreateGroup handles POST /groups
func (h *GroupHandler) CreateGroup(c *gin.Context) {
	var req GroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	result, err := h.createGroupUC.Execute(c.Request.Context(), usecases.CreateGroupCommand{Name: req.Name})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Group created successfully")
}

// GetGroup handles GET /groups/:id
func (h *GroupHandler) GetGroup(c *gin.Context) {
	groupID, err := parseGroupID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.getGroupUC.Execute(c.Request.Context(), groupID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// ListGroups handles GET /groups
func (h *GroupHandler) ListGroups(c *gin.Context) {
	h.listGroups(c, false)
}

// ListGroupsWithCounts handles GET /groups/with-counts
// @Summary List groups with member counts
// @Tags groups
// @Produce json
// @Param q query string false "Substring of the group name"
// @Success 200 {object} utils.APIResponse
// @Router /groups/with-counts [get]
func (h *GroupHandler) ListGroupsWithCounts(c *gin.Context) {
	h.listGroups(c, true)
}

func (h *GroupHandler) listGroups(c *gin.Context, withCounts bool) {
	base, err := utils.ParseBaseFilter(c, orderingFields)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	q := usecases.ListGroupsQuery{
		BaseFilter: base,
		Search:     utils.QueryString(c, "q"),
		WithCounts: withCounts,
	}
	result, err := h.listGroupsUC.Execute(c.Request.Context(), q)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Groups, result.Total, result.Page, result.PageSize)
}

// RenameGroup handles PUT and PATCH /groups/:id
func (h *GroupHandler) RenameGroup(c *gin.Context) {
	groupID, err := parseGroupID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req GroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	result, err := h.renameGroupUC.Execute(c.Request.Context(), usecases.RenameGroupCommand{GroupID: groupID, Name: req.Name})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Group updated successfully", result)
}

// DeleteGroup handles DELETE /groups/:id
func (h *GroupHandler) DeleteGroup(c *gin.Context) {
	groupID, err := parseGroupID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.deleteGroupUC.Execute(c.Request.Context(), groupID); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}

// ListMembers handles GET /groups/:id/members
func (h *GroupHandler) ListMembers(c *gin.Context) {
	groupID, err := parseGroupID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	page, err := utils.ParsePageFilter(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.listMembersUC.Execute(c.Request.Context(), usecases.ListMembersQuery{PageFilter: page, GroupID: groupID})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Members, result.Total, result.Page, result.PageSize)
}

// AddMember handles POST /groups/:id/members
// @Summary Add a contact to a group
// @Tags groups
// @Accept json
// @Produce json
// @Param id path int true "Group ID"
// @Param body body AddMemberRequest true "Member"
// @Success 201 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Router /groups/{id}/members [post]
func (h *GroupHandler) AddMember(c *gin.Context) {
	groupID, err := parseGroupID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	cmd := usecases.AddMemberCommand{GroupID: groupID, ContactID: req.ContactID, AccessLevel: req.AccessLevel}
	result, err := h.addMemberUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Member added")
}

// RemoveMember handles DELETE /groups/:id/members/:contactId
func (h *GroupHandler) RemoveMember(c *gin.Context) {
	groupID, err := parseGroupID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	contactID, err := utils.ParseIDParam(c, "contactId", "contact")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.removeMemberUC.Execute(c.Request.Context(), usecases.RemoveMemberCommand{GroupID: groupID, ContactID: contactID}); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}

func parseGroupID(c *gin.Context) (uint, error) {
	return utils.ParseIDParam(c, "id", "group")
}
