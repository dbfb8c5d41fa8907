package event

import (
	"context"
	"time"

	"github.com/dggcrm/dggcrm/internal/domain/shared"
	"github.com/dggcrm/dggcrm/internal/shared/query"
)

type Repository interface {
	Create(ctx context.Context, e *Event) error
	Update(ctx context.Context, e *Event) error
	Delete(ctx context.Context, id uint) error
	GetByID(ctx context.Context, id uint) (*Event, error)
	List(ctx context.Context, filter EventFilter) ([]*Event, int64, error)
}

type EventFilter struct {
	query.BaseFilter
	Query        string
	Status       *Status
	StartsAfter  *time.Time
	StartsBefore *time.Time
}

type ParticipationRepository interface {
	Create(ctx context.Context, p *Participation) error
	Update(ctx context.Context, p *Participation) error
	Delete(ctx context.Context, id uint) error
	GetByID(ctx context.Context, id uint) (*Participation, error)
	List(ctx context.Context, filter ParticipationFilter) ([]*Participation, int64, error)
	ListByContacts(ctx context.Context, contactIDs []uint) (map[uint][]*Participation, error)
	CountByContact(ctx context.Context, filter ContactParticipationCountFilter) ([]shared.ContactCount, int64, error)
}

// ParticipationFilter lists participations. Query matches the contact's name
// and email and the participation notes.
type ParticipationFilter struct {
	query.BaseFilter
	Query     string
	EventID   *uint
	ContactID *uint
	Status    *CommitmentStatus
}

// ContactParticipationCountFilter counts participations in Status per
// contact. Dates.From keeps events ending (or, without an end, starting) on
// or after it; Dates.To keeps events starting on or before it.
type ContactParticipationCountFilter struct {
	shared.GroupByContactFilter
	Status CommitmentStatus
}

type UserInEventRepository interface {
	Create(ctx context.Context, u *UserInEvent) error
	Delete(ctx context.Context, id uint) error
	GetByID(ctx context.Context, id uint) (*UserInEvent, error)
	List(ctx context.Context, filter UserInEventFilter) ([]*UserInEvent, int64, error)
}

type UserInEventFilter struct {
	query.BaseFilter
	EventID *uint
	UserID  *uint
}
