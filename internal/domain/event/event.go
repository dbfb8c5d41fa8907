package event

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dggcrm/dggcrm/internal/shared/biztime"
)

const maxNameLength = 100

type Event struct {
	id              uint
	name            string
	description     string
	locationName    string
	locationAddress string
	startsAt        *time.Time
	endsAt          *time.Time
	status          Status
	createdAt       time.Time
	modifiedAt      time.Time
}

// Fields holds the writable fields of an event.
type Fields struct {
	Name            string
	Description     string
	LocationName    string
	LocationAddress string
	StartsAt        *time.Time
	EndsAt          *time.Time
	Status          Status
}

func (f Fields) validate() error {
	if utf8.RuneCountInString(f.Name) > maxNameLength {
		return fmt.Errorf("name exceeds maximum length of %d characters", maxNameLength)
	}
	if !f.Status.IsValid() {
		return fmt.Errorf("invalid event status: %s", f.Status)
	}
	if f.StartsAt != nil && f.EndsAt != nil && f.EndsAt.Before(*f.StartsAt) {
		return fmt.Errorf("ends_at must not be before starts_at")
	}
	return nil
}

func NewEvent(f Fields) (*Event, error) {
	f.Name = strings.TrimSpace(f.Name)
	if f.Status == "" {
		f.Status = StatusDraft
	}
	if err := f.validate(); err != nil {
		return nil, err
	}

	now := biztime.NowUTC()
	e := &Event{createdAt: now, modifiedAt: now}
	e.set(f)
	return e, nil
}

func ReconstructEvent(id uint, f Fields, createdAt, modifiedAt time.Time) (*Event, error) {
	if id == 0 {
		return nil, fmt.Errorf("event ID cannot be zero")
	}
	e := &Event{id: id, createdAt: createdAt, modifiedAt: modifiedAt}
	e.set(f)
	return e, nil
}

func (e *Event) set(f Fields) {
	e.name = f.Name
	e.description = f.Description
	e.locationName = f.LocationName
	e.locationAddress = f.LocationAddress
	e.startsAt = utcPtr(f.StartsAt)
	e.endsAt = utcPtr(f.EndsAt)
	e.status = f.Status
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}

func (e *Event) ID() uint {
	return e.id
}

func (e *Event) Name() string {
	return e.name
}

func (e *Event) Description() string {
	return e.description
}

func (e *Event) LocationName() string {
	return e.locationName
}

func (e *Event) LocationAddress() string {
	return e.locationAddress
}

func (e *Event) StartsAt() *time.Time {
	return e.startsAt
}

func (e *Event) EndsAt() *time.Time {
	return e.endsAt
}

func (e *Event) Status() Status {
	return e.status
}

func (e *Event) CreatedAt() time.Time {
	return e.createdAt
}

func (e *Event) ModifiedAt() time.Time {
	return e.modifiedAt
}

func (e *Event) Fields() Fields {
	return Fields{
		Name:            e.name,
		Description:     e.description,
		LocationName:    e.locationName,
		LocationAddress: e.locationAddress,
		StartsAt:        e.startsAt,
		EndsAt:          e.endsAt,
		Status:          e.status,
	}
}

func (e *Event) SetID(id uint) error {
	if e.id != 0 {
		return fmt.Errorf("event ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("event ID cannot be zero")
	}
	e.id = id
	return nil
}

// Patch is a partial update. ClearStartsAt/ClearEndsAt null the times.
type Patch struct {
	Name            *string
	Description     *string
	LocationName    *string
	LocationAddress *string
	StartsAt        *time.Time
	ClearStartsAt   bool
	EndsAt          *time.Time
	ClearEndsAt     bool
	Status          *Status
}

func (e *Event) Apply(p Patch) error {
	f := e.Fields()
	if p.Name != nil {
		f.Name = strings.TrimSpace(*p.Name)
	}
	if p.Description != nil {
		f.Description = *p.Description
	}
	if p.LocationName != nil {
		f.LocationName = *p.LocationName
	}
	if p.LocationAddress != nil {
		f.LocationAddress = *p.LocationAddress
	}
	if p.ClearStartsAt {
		f.StartsAt = nil
	} else if p.StartsAt != nil {
		f.StartsAt = p.StartsAt
	}
	if p.ClearEndsAt {
		f.EndsAt = nil
	} else if p.EndsAt != nil {
		f.EndsAt = p.EndsAt
	}
	if p.Status != nil {
		f.Status = *p.Status
	}
	if err := f.validate(); err != nil {
		return err
	}
	e.set(f)
	e.modifiedAt = biztime.NowUTC()
	return nil
}
