package contact

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dggcrm/dggcrm/internal/application/contact/usecases"
	"github.com/dggcrm/dggcrm/internal/shared/logger"
	"github.com/dggcrm/dggcrm/internal/shared/utils"
)

type ContactHandler struct {
	createContactUC     usecases.CreateContactExecutor
	updateContactUC     usecases.UpdateContactExecutor
	deleteContactUC     usecases.DeleteContactExecutor
	getContactUC        usecases.GetContactExecutor
	listContactsUC      usecases.ListContactsExecutor
	listWithRelationsUC usecases.ListContactsWithRelationsExecutor
	upsertPersonUC      usecases.UpsertPersonWithTagsExecutor
	appendActivityUC    usecases.AppendActivityExecutor
	listActivitiesUC    usecases.ListActivitiesExecutor
	logger              logger.Interface
}

func NewContactHandler(
	createContactUC usecases.CreateContactExecutor,
	updateContactUC usecases.UpdateContactExecutor,
	deleteContactUC usecases.DeleteContactExecutor,
	getContactUC usecases.GetContactExecutor,
	listContactsUC usecases.ListContactsExecutor,
	listWithRelationsUC usecases.ListContactsWithRelationsExecutor,
	upsertPersonUC usecases.UpsertPersonWithTagsExecutor,
	appendActivityUC usecases.AppendActivityExecutor,
	listActivitiesUC usecases.ListActivitiesExecutor,
	logger logger.Interface,
) *ContactHandler {
	return &ContactHandler{
		createContactUC:     createContactUC,
		updateContactUC:     updateContactUC,
		deleteContactUC:     deleteContactUC,
		getContactUC:        getContactUC,
		listContactsUC:      listContactsUC,
		listWithRelationsUC: listWithRelationsUC,
		upsertPersonUC:      upsertPersonUC,
		appendActivityUC:    appendActivityUC,
		listActivitiesUC:    listActivitiesUC,
		logger:              logger,
	}
}

// CreateContact handles POST /contacts
func (h *ContactHandler) CreateContact(c *gin.Context) {
	var req CreateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create contact", "error", err)
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	result, err := h.createContactUC.Execute(c.Request.Context(), req.ToCommand())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Contact created successfully")
}

// GetContact handles GET /contacts/:id
func (h *ContactHandler) GetContact(c *gin.Context) {
	contactID, err := parseContactID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.getContactUC.Execute(c.Request.Context(), contactID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// ListContacts handles GET /contacts and GET /contacts/search
// @Summary List or search contacts
// @Tags contacts
// @Produce json
// @Param q query string false "Substring of name, email, discord id, phone or note"
// @Param tag query string false "Tag id or name"
// @Param group query int false "Group id"
// @Param created_after query string false "RFC3339 or YYYY-MM-DD"
// @Param created_before query string false "RFC3339 or YYYY-MM-DD"
// @Param ordering query string false "id, full_name, created_at, modified_at"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Router /contacts [get]
func (h *ContactHandler) ListContacts(c *gin.Context) {
	q, err := parseListContactsQuery(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.listContactsUC.Execute(c.Request.Context(), q)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Contacts, result.Total, result.Page, result.PageSize)
}

// ListWithRelations handles GET /contacts/with-relations
func (h *ContactHandler) ListWithRelations(c *gin.Context) {
	q, err := parseListContactsQuery(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.listWithRelationsUC.Execute(c.Request.Context(), q)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Contacts, result.Total, result.Page, result.PageSize)
}

// UpdateContact handles PATCH /contacts/:id
func (h *ContactHandler) UpdateContact(c *gin.Context) {
	contactID, err := parseContactID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req UpdateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for update contact", "error", err, "contact_id", contactID)
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	result, err := h.updateContactUC.Execute(c.Request.Context(), req.ToCommand(contactID))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Contact updated successfully", result)
}

// DeleteContact handles DELETE /contacts/:id
func (h *ContactHandler) DeleteContact(c *gin.Context) {
	contactID, err := parseContactID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.deleteContactUC.Execute(c.Request.Context(), contactID); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}

// UpsertPersonAndTags handles POST /contacts/person-and-tags
// @Summary Upsert a contact by Discord id and replace its tags
// @Description Runs in one transaction. Existing tag assignments are removed and the given set inserted.
// @Tags contacts
// @Accept json
// @Produce json
// @Param body body PersonAndTagsRequest true "Contact and tag names"
// @Success 200 {object} utils.APIResponse
// @Success 201 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Router /contacts/person-and-tags [post]
func (h *ContactHandler) UpsertPersonAndTags(c *gin.Context) {
	var req PersonAndTagsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	cmd := usecases.UpsertPersonWithTagsCommand{
		DiscordID: req.DiscordID,
		FullName:  req.FullName,
		Email:     req.Email,
		Phone:     req.Phone,
		Note:      req.Note,
		Tags:      req.Tags,
	}
	result, err := h.upsertPersonUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if result.Created {
		utils.CreatedResponse(c, result, "Contact created")
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Contact updated", result)
}

// ListActivities handles GET /contacts/:id/activities
func (h *ContactHandler) ListActivities(c *gin.Context) {
	contactID, err := parseContactID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	page, err := utils.ParsePageFilter(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	q := usecases.ListActivitiesQuery{
		PageFilter:   page,
		ContactID:    contactID,
		ActivityType: utils.QueryString(c, "activity_type"),
	}
	result, err := h.listActivitiesUC.Execute(c.Request.Context(), q)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Activities, result.Total, result.Page, result.PageSize)
}

// AppendActivity handles POST /contacts/:id/activities
func (h *ContactHandler) AppendActivity(c *gin.Context) {
	contactID, err := parseContactID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req AppendActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	cmd := usecases.AppendActivityCommand{
		ContactID:    contactID,
		ActivityType: req.ActivityType,
		Data:         req.Data,
	}
	result, err := h.appendActivityUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Activity recorded")
}

func parseContactID(c *gin.Context) (uint, error) {
	return utils.ParseIDParam(c, "id", "contact")
}
