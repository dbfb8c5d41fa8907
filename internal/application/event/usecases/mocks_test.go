package usecases

import (
	"context"

	"github.com/dggcrm/dggcrm/internal/domain/contact"
	"github.com/dggcrm/dggcrm/internal/domain/event"
	"github.com/dggcrm/dggcrm/internal/domain/shared"
	"github.com/dggcrm/dggcrm/internal/domain/user"
	"github.com/dggcrm/dggcrm/internal/shared/errors"
)

type mockEventRepository struct {
	ListFunc func(ctx context.Context, filter event.EventFilter) ([]*event.Event, int64, error)

	events []*event.Event
}

func (m *mockEventRepository) Create(_ context.Context, e *event.Event) error {
	if err := e.SetID(uint(len(m.events) + 1)); err != nil {
		return err
	}
	m.events = append(m.events, e)
	return nil
}

func (m *mockEventRepository) Update(context.Context, *event.Event) error {
	return nil
}

func (m *mockEventRepository) Delete(ctx context.Context, id uint) error {
	_, err := m.GetByID(ctx, id)
	return err
}

func (m *mockEventRepository) GetByID(_ context.Context, id uint) (*event.Event, error) {
	for _, e := range m.events {
		if e.ID() == id {
			return e, nil
		}
	}
	return nil, errors.NewNotFoundError("event not found")
}

func (m *mockEventRepository) List(ctx context.Context, filter event.EventFilter) ([]*event.Event, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return m.events, int64(len(m.events)), nil
}

type mockParticipationRepository struct {
	CountByContactFunc func(ctx context.Context, filter event.ContactParticipationCountFilter) ([]shared.ContactCount, int64, error)

	rows []*event.Participation
}

func (m *mockParticipationRepository) Create(_ context.Context, p *event.Participation) error {
	for _, r := range m.rows {
		if r.EventID == p.EventID && r.ContactID == p.ContactID {
			return errors.NewConflictError("participation already exists")
		}
	}
	p.ID = uint(len(m.rows) + 1)
	m.rows = append(m.rows, p)
	return nil
}

func (m *mockParticipationRepository) Update(context.Context, *event.Participation) error {
	return nil
}

func (m *mockParticipationRepository) Delete(_ context.Context, id uint) error {
	for i, r := range m.rows {
		if r.ID == id {
			m.rows = append(m.rows[:i], m.rows[i+1:]...)
			return nil
		}
	}
	return errors.NewNotFoundError("participation not found")
}

func (m *mockParticipationRepository) GetByID(_ context.Context, id uint) (*event.Participation, error) {
	for _, r := range m.rows {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, errors.NewNotFoundError("participation not found")
}

func (m *mockParticipationRepository) List(_ context.Context, filter event.ParticipationFilter) ([]*event.Participation, int64, error) {
	var out []*event.Participation
	for _, r := range m.rows {
		if filter.Status != nil && r.Status != *filter.Status {
			continue
		}
		out = append(out, r)
	}
	return out, int64(len(out)), nil
}

func (m *mockParticipationRepository) ListByContacts(context.Context, []uint) (map[uint][]*event.Participation, error) {
	return map[uint][]*event.Participation{}, nil
}

func (m *mockParticipationRepository) CountByContact(ctx context.Context, filter event.ContactParticipationCountFilter) ([]shared.ContactCount, int64, error) {
	if m.CountByContactFunc != nil {
		return m.CountByContactFunc(ctx, filter)
	}
	return nil, 0, nil
}

type mockUserInEventRepository struct {
	event.UserInEventRepository
	created []*event.UserInEvent
}

func (m *mockUserInEventRepository) Create(_ context.Context, u *event.UserInEvent) error {
	u.ID = uint(len(m.created) + 1)
	m.created = append(m.created, u)
	return nil
}

type mockContactRepository struct {
	contact.Repository
	names map[uint]string
}

func (m *mockContactRepository) GetByID(_ context.Context, id uint) (*contact.Contact, error) {
	name, ok := m.names[id]
	if !ok {
		return nil, errors.NewNotFoundError("contact not found")
	}
	return contact.NewContact(contact.Fields{FullName: name})
}

type mockUserRepository struct {
	user.Repository
	users map[uint]*user.User
}

func (m *mockUserRepository) GetByID(_ context.Context, id uint) (*user.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, errors.NewNotFoundError("user not found")
	}
	return u, nil
}
