package ticket

import (
	"github.com/gin-gonic/gin"

	"github.com/dggcrm/dggcrm/internal/application/ticket/usecases"
	"github.com/dggcrm/dggcrm/internal/shared/utils"
)

// orderingFields whitelists the ticket list ordering parameter.
var orderingFields = map[string]string{
	"id":          "id",
	"priority":    "priority",
	"created_at":  "created_at",
	"modified_at": "modified_at",
	"status":      "status",
	"type":        "type",
}

type CreateTicketRequest struct {
	Status       *string `json:"ticket_status"`
	Type         *string `json:"ticket_type"`
	Priority     *int    `json:"priority" binding:"omitempty,min=0,max=5"`
	Title        string  `json:"title" binding:"max=255"`
	Description  string  `json:"description"`
	EventID      *uint   `json:"event"`
	ContactID    *uint   `json:"contact"`
	AssignedToID *uint   `json:"assigned_to"`
}

func (r CreateTicketRequest) ToCommand(actorID *uint) usecases.CreateTicketCommand {
	return usecases.CreateTicketCommand{
		ActorID:      actorID,
		Status:       r.Status,
		Type:         r.Type,
		Priority:     r.Priority,
		Title:        r.Title,
		Description:  r.Description,
		EventID:      r.EventID,
		ContactID:    r.ContactID,
		AssignedToID: r.AssignedToID,
	}
}

// UpdateTicketRequest is a partial update. A reference sent as null is
// cleared; one left out is kept.
type UpdateTicketRequest struct {
	Status      *string              `json:"ticket_status"`
	Type        *string              `json:"ticket_type"`
	Priority    *int                 `json:"priority" binding:"omitempty,min=0,max=5"`
	Title       *string              `json:"title" binding:"omitempty,max=255"`
	Description *string              `json:"description"`
	EventID     utils.Optional[uint] `json:"event"`
	ContactID   utils.Optional[uint] `json:"contact"`
	AssignedTo  utils.Optional[uint] `json:"assigned_to"`
}

func (r UpdateTicketRequest) ToCommand(ticketID uint, actorID *uint) usecases.UpdateTicketCommand {
	return usecases.UpdateTicketCommand{
		TicketID:        ticketID,
		ActorID:         actorID,
		Status:          r.Status,
		Type:            r.Type,
		Priority:        r.Priority,
		Title:           r.Title,
		Description:     r.Description,
		EventID:         r.EventID.Value,
		ClearEvent:      r.EventID.IsNull(),
		ContactID:       r.ContactID.Value,
		ClearContact:    r.ContactID.IsNull(),
		AssignedToID:    r.AssignedTo.Value,
		ClearAssignedTo: r.AssignedTo.IsNull(),
	}
}

// AssignTicketRequest requires assigned_to to be present; null unassigns.
type AssignTicketRequest struct {
	AssignedTo utils.Optional[uint] `json:"assigned_to"`
}

type AddCommentRequest struct {
	Message string `json:"message" binding:"required"`
}

type CreateAskRequest struct {
	ContactID *uint   `json:"contact"`
	Status    *string `json:"status"`
	Notes     string  `json:"notes"`
}

type UpdateAskRequest struct {
	Status *string `json:"status"`
	Notes  *string `json:"notes"`
}

// UpdateAskByKeysRequest identifies an ask by its ticket and contact.
// Presence of every key is checked by the use case.
type UpdateAskByKeysRequest struct {
	TicketID  *uint   `json:"ticket_id"`
	ContactID *uint   `json:"contact_id"`
	Status    *string `json:"status"`
}

func parseListTicketsQuery(c *gin.Context) (usecases.ListTicketsQuery, error) {
	base, err := utils.ParseBaseFilter(c, orderingFields)
	if err != nil {
		return usecases.ListTicketsQuery{}, err
	}
	q := usecases.ListTicketsQuery{
		BaseFilter: base,
		Search:     utils.QueryString(c, "q"),
		Status:     utils.QueryOptional(c, "ticket_status"),
		Type:       utils.QueryOptional(c, "ticket_type"),
	}
	if q.Status == nil {
		q.Status = utils.QueryOptional(c, "status")
	}
	if q.Type == nil {
		q.Type = utils.QueryOptional(c, "type")
	}
	if q.Priority, err = utils.QueryInt(c, "priority"); err != nil {
		return q, err
	}
	if q.AssignedToID, err = utils.QueryUint(c, "assigned_to"); err != nil {
		return q, err
	}
	if q.ReportedByID, err = utils.QueryUint(c, "reported_by"); err != nil {
		return q, err
	}
	if q.EventID, err = utils.QueryUint(c, "event"); err != nil {
		return q, err
	}
	if q.ContactID, err = utils.QueryUint(c, "contact"); err != nil {
		return q, err
	}
	if q.CreatedAfter, err = utils.QueryTime(c, "created_after", false); err != nil {
		return q, err
	}
	if q.CreatedBefore, err = utils.QueryTime(c, "created_before", true); err != nil {
		return q, err
	}
	return q, nil
}

func parseGroupByContactQuery(c *gin.Context) (usecases.GroupTicketsByContactQuery, error) {
	page, err := utils.ParsePageFilter(c)
	if err != nil {
		return usecases.GroupTicketsByContactQuery{}, err
	}
	q := usecases.GroupTicketsByContactQuery{
		PageFilter: page,
		Status:     utils.QueryString(c, "status"),
		Type:       utils.QueryOptional(c, "type"),
	}
	if q.MinDate, err = utils.QueryTime(c, "min_date", false); err != nil {
		return q, err
	}
	if q.MaxDate, err = utils.QueryTime(c, "max_date", true); err != nil {
		return q, err
	}
	if q.MinTickets, err = utils.QueryInt(c, "min_tickets"); err != nil {
		return q, err
	}
	if q.MaxTickets, err = utils.QueryInt(c, "max_tickets"); err != nil {
		return q, err
	}
	return q, nil
}
