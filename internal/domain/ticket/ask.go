package ticket

import (
	"fmt"
	"time"

	vo "github.com/dggcrm/dggcrm/internal/domain/ticket/valueobjects"
	"github.com/dggcrm/dggcrm/internal/shared/biztime"
)

// Ask is one outreach attempt on a ticket and the contact's answer to it.
type Ask struct {
	ID        uint
	TicketID  uint
	ContactID *uint
	Status    vo.AskStatus
	Notes     string
	CreatedAt time.Time
	EditedAt  *time.Time
}

func NewAsk(ticketID uint, contactID *uint, status vo.AskStatus, notes string) (*Ask, error) {
	if ticketID == 0 {
		return nil, fmt.Errorf("ticket ID is required")
	}
	if status == "" {
		status = vo.AskUnknown
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid ask status: %s", status)
	}
	return &Ask{
		TicketID:  ticketID,
		ContactID: contactID,
		Status:    status,
		Notes:     notes,
		CreatedAt: biztime.NowUTC(),
	}, nil
}

// Respond records a new status and/or notes and stamps EditedAt. It returns
// the previous status.
func (a *Ask) Respond(status *vo.AskStatus, notes *string) (vo.AskStatus, error) {
	previous := a.Status
	if status != nil {
		if !status.IsValid() {
			return previous, fmt.Errorf("invalid ask status: %s", *status)
		}
		a.Status = *status
	}
	if notes != nil {
		a.Notes = *notes
	}
	now := biztime.NowUTC()
	a.EditedAt = &now
	return previous, nil
}
