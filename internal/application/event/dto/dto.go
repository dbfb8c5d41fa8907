package dto

import (
	"time"

	"github.com/dggcrm/dggcrm/internal/domain/event"
	"github.com/dggcrm/dggcrm/internal/domain/shared"
	"github.com/dggcrm/dggcrm/internal/shared/mapper"
)

type EventDTO struct {
	ID              uint       `json:"id"`
	Name            string     `json:"name"`
	Description     string     `json:"description"`
	LocationName    string     `json:"location_name"`
	LocationAddress string     `json:"location_address"`
	StartsAt        *time.Time `json:"starts_at"`
	EndsAt          *time.Time `json:"ends_at"`
	Status          string     `json:"status"`
	StatusDisplay   string     `json:"status_display"`
	CreatedAt       time.Time  `json:"created_at"`
	ModifiedAt      time.Time  `json:"modified_at"`
}

type ParticipationDTO struct {
	ID              uint      `json:"id"`
	EventID         uint      `json:"event"`
	EventName       string    `json:"event_name,omitempty"`
	ContactID       uint      `json:"contact"`
	ContactFullName string    `json:"contact_full_name,omitempty"`
	Status          string    `json:"status"`
	StatusDisplay   string    `json:"status_display"`
	Notes           string    `json:"notes"`
	CreatedAt       time.Time `json:"created_at"`
	ModifiedAt      time.Time `json:"modified_at"`
}

type UserInEventDTO struct {
	ID           uint      `json:"id"`
	UserID       uint      `json:"user"`
	UserUsername string    `json:"user_username,omitempty"`
	EventID      uint      `json:"event"`
	EventName    string    `json:"event_name,omitempty"`
	JoinedAt     time.Time `json:"joined_at"`
}

type ContactEventCountDTO struct {
	ContactID  uint   `json:"contact_id"`
	FullName   string `json:"full_name"`
	EventCount int64  `json:"event_count"`
}

func ToEventDTO(e *event.Event) *EventDTO {
	if e == nil {
		return nil
	}
	return &EventDTO{
		ID:              e.ID(),
		Name:            e.Name(),
		Description:     e.Description(),
		LocationName:    e.LocationName(),
		LocationAddress: e.LocationAddress(),
		StartsAt:        e.StartsAt(),
		EndsAt:          e.EndsAt(),
		Status:          e.Status().String(),
		StatusDisplay:   e.Status().Label(),
		CreatedAt:       e.CreatedAt(),
		ModifiedAt:      e.ModifiedAt(),
	}
}

func ToEventDTOs(events []*event.Event) []*EventDTO {
	return mapper.MapSlice(events, ToEventDTO)
}

func ToParticipationDTO(p *event.Participation) *ParticipationDTO {
	return &ParticipationDTO{
		ID:              p.ID,
		EventID:         p.EventID,
		EventName:       p.EventName,
		ContactID:       p.ContactID,
		ContactFullName: p.ContactFullName,
		Status:          p.Status.String(),
		StatusDisplay:   p.Status.Label(),
		Notes:           p.Notes,
		CreatedAt:       p.CreatedAt,
		ModifiedAt:      p.ModifiedAt,
	}
}

func ToParticipationDTOs(list []*event.Participation) []*ParticipationDTO {
	return mapper.MapSlice(list, ToParticipationDTO)
}

func ToUserInEventDTO(u *event.UserInEvent) *UserInEventDTO {
	return &UserInEventDTO{
		ID:           u.ID,
		UserID:       u.UserID,
		UserUsername: u.UserUsername,
		EventID:      u.EventID,
		EventName:    u.EventName,
		JoinedAt:     u.JoinedAt,
	}
}

func ToUserInEventDTOs(list []*event.UserInEvent) []*UserInEventDTO {
	return mapper.MapSlice(list, ToUserInEventDTO)
}

func ToContactEventCountDTOs(rows []shared.ContactCount) []ContactEventCountDTO {
	out := make([]ContactEventCountDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, ContactEventCountDTO{
			ContactID:  r.ContactID,
			FullName:   r.FullName,
			EventCount: r.Count,
		})
	}
	return out
}
