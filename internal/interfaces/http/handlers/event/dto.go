package event

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dggcrm/dggcrm/internal/application/event/usecases"
	"github.com/dggcrm/dggcrm/internal/shared/utils"
)

var eventOrderingFields = map[string]string{
	"created_at":  "created_at",
	"modified_at": "modified_at",
	"status":      "status",
	"starts_at":   "starts_at",
}

// Participation lists join contacts, so columns carry the table alias.
var participationOrderingFields = map[string]string{
	"created_at":  "p.created_at",
	"modified_at": "p.modified_at",
	"status":      "p.status",
}

var userInEventOrderingFields = map[string]string{
	"joined_at": "ue.joined_at",
}

type CreateEventRequest struct {
	Name            string     `json:"name" binding:"required,max=100"`
	Description     string     `json:"description"`
	LocationName    string     `json:"location_name" binding:"max=255"`
	LocationAddress string     `json:"location_address" binding:"max=255"`
	StartsAt        *time.Time `json:"starts_at"`
	EndsAt          *time.Time `json:"ends_at"`
	Status          string     `json:"status"`
}

func (r CreateEventRequest) ToCommand() usecases.CreateEventCommand {
	return usecases.CreateEventCommand{
		Name:            r.Name,
		Description:     r.Description,
		LocationName:    r.LocationName,
		LocationAddress: r.LocationAddress,
		StartsAt:        r.StartsAt,
		EndsAt:          r.EndsAt,
		Status:          r.Status,
	}
}

// UpdateEventRequest is a partial update; starts_at and ends_at accept null.
type UpdateEventRequest struct {
	Name            *string                   `json:"name" binding:"omitempty,max=100"`
	Description     *string                   `json:"description"`
	LocationName    *string                   `json:"location_name" binding:"omitempty,max=255"`
	LocationAddress *string                   `json:"location_address" binding:"omitempty,max=255"`
	StartsAt        utils.Optional[time.Time] `json:"starts_at"`
	EndsAt          utils.Optional[time.Time] `json:"ends_at"`
	Status          *string                   `json:"status"`
}

func (r UpdateEventRequest) ToCommand(eventID uint) usecases.UpdateEventCommand {
	return usecases.UpdateEventCommand{
		EventID:         eventID,
		Name:            r.Name,
		Description:     r.Description,
		LocationName:    r.LocationName,
		LocationAddress: r.LocationAddress,
		StartsAt:        r.StartsAt.Value,
		ClearStartsAt:   r.StartsAt.IsNull(),
		EndsAt:          r.EndsAt.Value,
		ClearEndsAt:     r.EndsAt.IsNull(),
		Status:          r.Status,
	}
}

type CreateParticipationRequest struct {
	EventID   uint   `json:"event" binding:"required"`
	ContactID uint   `json:"contact" binding:"required"`
	Status    string `json:"status"`
	Notes     string `json:"notes"`
}

type UpdateParticipationRequest struct {
	Status *string `json:"status"`
	Notes  *string `json:"notes"`
}

type AddUserToEventRequest struct {
	UserID  uint `json:"user" binding:"required"`
	EventID uint `json:"event" binding:"required"`
}

func parseListEventsQuery(c *gin.Context) (usecases.ListEventsQuery, error) {
	base, err := utils.ParseBaseFilter(c, eventOrderingFields)
	if err != nil {
		return usecases.ListEventsQuery{}, err
	}
	q := usecases.ListEventsQuery{
		BaseFilter: base,
		Search:     utils.QueryString(c, "q"),
		Status:     utils.QueryOptional(c, "status"),
	}
	if q.StartsAfter, err = utils.QueryTime(c, "starts_after", false); err != nil {
		return q, err
	}
	if q.StartsBefore, err = utils.QueryTime(c, "starts_before", true); err != nil {
		return q, err
	}
	return q, nil
}

func parseListParticipationsQuery(c *gin.Context) (usecases.ListParticipationsQuery, error) {
	base, err := utils.ParseBaseFilter(c, participationOrderingFields)
	if err != nil {
		return usecases.ListParticipationsQuery{}, err
	}
	q := usecases.ListParticipationsQuery{
		BaseFilter: base,
		Search:     utils.QueryString(c, "q"),
		Status:     utils.QueryOptional(c, "status"),
	}
	if q.EventID, err = utils.QueryUint(c, "event"); err != nil {
		return q, err
	}
	if q.ContactID, err = utils.QueryUint(c, "contact"); err != nil {
		return q, err
	}
	return q, nil
}

func parseGroupParticipantsQuery(c *gin.Context) (usecases.GroupParticipantsByContactQuery, error) {
	page, err := utils.ParsePageFilter(c)
	if err != nil {
		return usecases.GroupParticipantsByContactQuery{}, err
	}
	q := usecases.GroupParticipantsByContactQuery{
		PageFilter: page,
		Status:     utils.QueryString(c, "status"),
	}
	if q.MinDate, err = utils.QueryTime(c, "min_date", false); err != nil {
		return q, err
	}
	if q.MaxDate, err = utils.QueryTime(c, "max_date", true); err != nil {
		return q, err
	}
	if q.MinEvents, err = utils.QueryInt(c, "min_events"); err != nil {
		return q, err
	}
	if q.MaxEvents, err = utils.QueryInt(c, "max_events"); err != nil {
		return q, err
	}
	return q, nil
}
