package event

import (
	"fmt"
	"time"

	"github.com/dggcrm/dggcrm/internal/shared/biztime"
)

// Participation is a contact's commitment to an event. The (event, contact)
// pair is unique.
type Participation struct {
	ID         uint
	EventID    uint
	ContactID  uint
	Status     CommitmentStatus
	Notes      string
	CreatedAt  time.Time
	ModifiedAt time.Time

	// Filled by reads that join the event and contact.
	EventName       string
	ContactFullName string
}

func NewParticipation(eventID, contactID uint, status CommitmentStatus, notes string) (*Participation, error) {
	if eventID == 0 {
		return nil, fmt.Errorf("event ID is required")
	}
	if contactID == 0 {
		return nil, fmt.Errorf("contact ID is required")
	}
	if status == "" {
		status = CommitmentUnknown
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid commitment status: %s", status)
	}
	now := biztime.NowUTC()
	return &Participation{
		EventID:    eventID,
		ContactID:  contactID,
		Status:     status,
		Notes:      notes,
		CreatedAt:  now,
		ModifiedAt: now,
	}, nil
}

// Update changes status and/or notes; nil arguments are left unchanged.
func (p *Participation) Update(status *CommitmentStatus, notes *string) error {
	if status != nil {
		if !status.IsValid() {
			return fmt.Errorf("invalid commitment status: %s", *status)
		}
		p.Status = *status
	}
	if notes != nil {
		p.Notes = *notes
	}
	p.ModifiedAt = biztime.NowUTC()
	return nil
}

// UserInEvent links a staff account to an event it works on.
type UserInEvent struct {
	ID       uint
	UserID   uint
	EventID  uint
	JoinedAt time.Time

	UserUsername string
	EventName    string
}

func NewUserInEvent(userID, eventID uint) (*UserInEvent, error) {
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}
	if eventID == 0 {
		return nil, fmt.Errorf("event ID is required")
	}
	return &UserInEvent{
		UserID:   userID,
		EventID:  eventID,
		JoinedAt: biztime.NowUTC(),
	}, nil
}
