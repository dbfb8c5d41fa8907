package contact

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dggcrm/dggcrm/internal/application/contact/usecases"
	"github.com/dggcrm/dggcrm/internal/shared/logger"
	"github.com/dggcrm/dggcrm/internal/shared/utils"
)

// TagHandler serves the tag catalogue and contact tag assignments.
type TagHandler struct {
	createTagUC       usecases.CreateTagExecutor
	updateTagUC       usecases.UpdateTagExecutor
	deleteTagUC       usecases.DeleteTagExecutor
	getTagUC          usecases.GetTagExecutor
	listTagsUC        usecases.ListTagsExecutor
	assignTagUC       usecases.AssignTagExecutor
	unassignTagUC     usecases.UnassignTagExecutor
	getAssignmentUC   usecases.GetTagAssignmentExecutor
	listAssignmentsUC usecases.ListTagAssignmentsExecutor
	logger            logger.Interface
}

func NewTagHandler(
	createTagUC usecases.CreateTagExecutor,
	updateTagUC usecases.UpdateTagExecutor,
	deleteTagUC usecases.DeleteTagExecutor,
	getTagUC usecases.GetTagExecutor,
	listTagsUC usecases.ListTagsExecutor,
	assignTagUC usecases.AssignTagExecutor,
	unassignTagUC usecases.UnassignTagExecutor,
	getAssignmentUC usecases.GetTagAssignmentExecutor,
	listAssignmentsUC usecases.ListTagAssignmentsExecutor,
	logger logger.Interface,
) *TagHandler {
	return &TagHandler{
		createTagUC:       createTagUC,
		updateTagUC:       updateTagUC,
		deleteTagUC:       deleteTagUC,
		getTagUC:          getTagUC,
		listTagsUC:        listTagsUC,
		assignTagUC:       assignTagUC,
		unassignTagUC:     unassignTagUC,
		getAssignmentUC:   getAssignmentUC,
		listAssignmentsUC: listAssignmentsUC,
		logger:            logger,
	}
}

// CreateTag handles POST /tags
func (h *TagHandler) CreateTag(c *gin.Context) {
	var req CreateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	result, err := h.createTagUC.Execute(c.Request.Context(), usecases.CreateTagCommand{Name: req.Name, Color: req.Color})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Tag created successfully")
}

// GetTag handles GET /tags/:id
func (h *TagHandler) GetTag(c *gin.Context) {
	tagID, err := utils.ParseIDParam(c, "id", "tag")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.getTagUC.Execute(c.Request.Context(), tagID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// ListTags handles GET /tags
func (h *TagHandler) ListTags(c *gin.Context) {
	base, err := utils.ParseBaseFilter(c, tagOrderingFields)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	q := usecases.ListTagsQuery{BaseFilter: base, Search: utils.QueryString(c, "q")}
	result, err := h.listTagsUC.Execute(c.Request.Context(), q)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Tags, result.Total, result.Page, result.PageSize)
}

// UpdateTag handles PATCH /tags/:id
func (h *TagHandler) UpdateTag(c *gin.Context) {
	tagID, err := utils.ParseIDParam(c, "id", "tag")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req UpdateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	cmd := usecases.UpdateTagCommand{TagID: tagID, Name: req.Name, Color: req.Color}
	result, err := h.updateTagUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Tag updated successfully", result)
}

// DeleteTag handles DELETE /tags/:id
func (h *TagHandler) DeleteTag(c *gin.Context) {
	tagID, err := utils.ParseIDParam(c, "id", "tag")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.deleteTagUC.Execute(c.Request.Context(), tagID); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}

// AssignTag handles POST /tag-assignments
// @Summary Tag a contact
// @Description Idempotent. Assigning an existing pair returns the existing row with 200.
// @Tags tags
// @Accept json
// @Produce json
// @Param body body AssignTagRequest true "Contact and tag"
// @Success 200 {object} utils.APIResponse
// @Success 201 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /tag-assignments [post]
func (h *TagHandler) AssignTag(c *gin.Context) {
	var req AssignTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	cmd := usecases.AssignTagCommand{ContactID: req.ContactID, TagID: req.TagID, TagName: req.TagName}
	result, err := h.assignTagUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if result.Created {
		utils.CreatedResponse(c, result.Assignment, "Tag assigned")
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Tag already assigned", result.Assignment)
}

// GetAssignment handles GET /tag-assignments/:id
func (h *TagHandler) GetAssignment(c *gin.Context) {
	assignmentID, err := utils.ParseIDParam(c, "id", "tag assignment")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.getAssignmentUC.Execute(c.Request.Context(), assignmentID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// ListAssignments handles GET /tag-assignments
func (h *TagHandler) ListAssignments(c *gin.Context) {
	page, err := utils.ParsePageFilter(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	q := usecases.ListTagAssignmentsQuery{PageFilter: page, Tag: utils.QueryString(c, "tag")}
	if q.ContactID, err = utils.QueryUint(c, "contact"); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.listAssignmentsUC.Execute(c.Request.Context(), q)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Assignments, result.Total, result.Page, result.PageSize)
}

// UnassignTag handles DELETE /tag-assignments/:id
func (h *TagHandler) UnassignTag(c *gin.Context) {
	assignmentID, err := utils.ParseIDParam(c, "id", "tag assignment")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.unassignTagUC.Execute(c.Request.Context(), assignmentID); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}
