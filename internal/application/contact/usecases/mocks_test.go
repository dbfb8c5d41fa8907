package usecases

import (
	"context"
	"sort"

	"github.com/dggcrm/dggcrm/internal/domain/contact"
	"github.com/dggcrm/dggcrm/internal/domain/event"
	"github.com/dggcrm/dggcrm/internal/domain/group"
	"github.com/dggcrm/dggcrm/internal/shared/errors"
)

type mockTransactor struct {
	calls int
}

func (m *mockTransactor) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	return fn(ctx)
}

// mockContactRepository keeps contacts in insertion order.
type mockContactRepository struct {
	ListFunc func(ctx context.Context, filter contact.ContactFilter) ([]*contact.Contact, int64, error)

	contacts []*contact.Contact
	nextID   uint
}

func (m *mockContactRepository) Create(_ context.Context, c *contact.Contact) error {
	m.nextID++
	if err := c.SetID(m.nextID); err != nil {
		return err
	}
	m.contacts = append(m.contacts, c)
	return nil
}

func (m *mockContactRepository) Update(context.Context, *contact.Contact) error {
	return nil
}

func (m *mockContactRepository) Delete(_ context.Context, id uint) error {
	for i, c := range m.contacts {
		if c.ID() == id {
			m.contacts = append(m.contacts[:i], m.contacts[i+1:]...)
			return nil
		}
	}
	return errors.NewNotFoundError("contact not found")
}

func (m *mockContactRepository) GetByID(_ context.Context, id uint) (*contact.Contact, error) {
	for _, c := range m.contacts {
		if c.ID() == id {
			return c, nil
		}
	}
	return nil, errors.NewNotFoundError("contact not found")
}

func (m *mockContactRepository) GetByDiscordID(_ context.Context, discordID string) (*contact.Contact, error) {
	for _, c := range m.contacts {
		if c.DiscordID() == discordID {
			return c, nil
		}
	}
	return nil, errors.NewNotFoundError("contact not found")
}

func (m *mockContactRepository) List(ctx context.Context, filter contact.ContactFilter) ([]*contact.Contact, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return m.contacts, int64(len(m.contacts)), nil
}

type mockTagRepository struct {
	ListByContactsFunc func(ctx context.Context, contactIDs []uint) (map[uint][]*contact.Tag, error)

	tags   []*contact.Tag
	nextID uint
}

func (m *mockTagRepository) Create(_ context.Context, t *contact.Tag) error {
	for _, existing := range m.tags {
		if contact.FoldTagName(existing.Name()) == contact.FoldTagName(t.Name()) {
			return errors.NewConflictError("tag already exists")
		}
	}
	m.nextID++
	if err := t.SetID(m.nextID); err != nil {
		return err
	}
	m.tags = append(m.tags, t)
	return nil
}

func (m *mockTagRepository) Update(context.Context, *contact.Tag) error {
	return nil
}

func (m *mockTagRepository) Delete(_ context.Context, id uint) error {
	for i, t := range m.tags {
		if t.ID() == id {
			m.tags = append(m.tags[:i], m.tags[i+1:]...)
			return nil
		}
	}
	return errors.NewNotFoundError("tag not found")
}

func (m *mockTagRepository) GetByID(_ context.Context, id uint) (*contact.Tag, error) {
	for _, t := range m.tags {
		if t.ID() == id {
			return t, nil
		}
	}
	return nil, errors.NewNotFoundError("tag not found")
}

func (m *mockTagRepository) GetByName(_ context.Context, name string) (*contact.Tag, error) {
	for _, t := range m.tags {
		if contact.FoldTagName(t.Name()) == contact.FoldTagName(name) {
			return t, nil
		}
	}
	return nil, errors.NewNotFoundError("tag not found")
}

func (m *mockTagRepository) GetOrCreate(ctx context.Context, name string) (*contact.Tag, bool, error) {
	if t, err := m.GetByName(ctx, name); err == nil {
		return t, false, nil
	}
	t, err := contact.NewTag(name, "")
	if err != nil {
		return nil, false, err
	}
	if err := m.Create(ctx, t); err != nil {
		return nil, false, err
	}
	return t, true, nil
}

func (m *mockTagRepository) List(context.Context, contact.TagFilter) ([]*contact.Tag, int64, error) {
	return m.tags, int64(len(m.tags)), nil
}

func (m *mockTagRepository) ListByContacts(ctx context.Context, contactIDs []uint) (map[uint][]*contact.Tag, error) {
	if m.ListByContactsFunc != nil {
		return m.ListByContactsFunc(ctx, contactIDs)
	}
	return map[uint][]*contact.Tag{}, nil
}

type mockTagAssignmentRepository struct {
	ReplaceFunc func(ctx context.Context, contactID uint, tagIDs []uint) error

	rows   []*contact.TagAssignment
	nextID uint
}

func (m *mockTagAssignmentRepository) Assign(_ context.Context, contactID, tagID uint) (*contact.TagAssignment, bool, error) {
	for _, r := range m.rows {
		if r.ContactID == contactID && r.TagID == tagID {
			return r, false, nil
		}
	}
	m.nextID++
	r := &contact.TagAssignment{ID: m.nextID, ContactID: contactID, TagID: tagID}
	m.rows = append(m.rows, r)
	return r, true, nil
}

func (m *mockTagAssignmentRepository) GetByID(_ context.Context, id uint) (*contact.TagAssignment, error) {
	for _, r := range m.rows {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, errors.NewNotFoundError("tag assignment not found")
}

func (m *mockTagAssignmentRepository) Delete(_ context.Context, id uint) error {
	for i, r := range m.rows {
		if r.ID == id {
			m.rows = append(m.rows[:i], m.rows[i+1:]...)
			return nil
		}
	}
	return errors.NewNotFoundError("tag assignment not found")
}

func (m *mockTagAssignmentRepository) List(_ context.Context, filter contact.TagAssignmentFilter) ([]*contact.TagAssignment, int64, error) {
	var out []*contact.TagAssignment
	for _, r := range m.rows {
		if filter.ContactID != nil && r.ContactID != *filter.ContactID {
			continue
		}
		if filter.TagID != nil && r.TagID != *filter.TagID {
			continue
		}
		out = append(out, r)
	}
	return out, int64(len(out)), nil
}

func (m *mockTagAssignmentRepository) Replace(ctx context.Context, contactID uint, tagIDs []uint) error {
	if m.ReplaceFunc != nil {
		return m.ReplaceFunc(ctx, contactID, tagIDs)
	}
	kept := m.rows[:0]
	for _, r := range m.rows {
		if r.ContactID != contactID {
			kept = append(kept, r)
		}
	}
	m.rows = kept
	for _, id := range tagIDs {
		m.nextID++
		m.rows = append(m.rows, &contact.TagAssignment{ID: m.nextID, ContactID: contactID, TagID: id})
	}
	return nil
}

// tagIDsOf returns the sorted tag IDs assigned to the contact.
func (m *mockTagAssignmentRepository) tagIDsOf(contactID uint) []uint {
	var ids []uint
	for _, r := range m.rows {
		if r.ContactID == contactID {
			ids = append(ids, r.TagID)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

type mockActivityRepository struct {
	activities []*contact.Activity
}

func (m *mockActivityRepository) Append(_ context.Context, a *contact.Activity) error {
	a.ID = uint(len(m.activities) + 1)
	m.activities = append(m.activities, a)
	return nil
}

func (m *mockActivityRepository) ListByContact(_ context.Context, contactID uint, filter contact.ActivityFilter) ([]*contact.Activity, int64, error) {
	var out []*contact.Activity
	for i := len(m.activities) - 1; i >= 0; i-- {
		a := m.activities[i]
		if a.ContactID != contactID {
			continue
		}
		if filter.Type != nil && a.Type != *filter.Type {
			continue
		}
		out = append(out, a)
	}
	return out, int64(len(out)), nil
}

type mockParticipationRepository struct {
	event.ParticipationRepository
	byContact map[uint][]*event.Participation
}

func (m *mockParticipationRepository) ListByContacts(context.Context, []uint) (map[uint][]*event.Participation, error) {
	return m.byContact, nil
}

type mockMembershipRepository struct {
	group.MembershipRepository
	byContact map[uint][]*group.Membership
}

func (m *mockMembershipRepository) ListByContacts(context.Context, []uint) (map[uint][]*group.Membership, error) {
	return m.byContact, nil
}
