package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dggcrm/dggcrm/internal/domain/contact"
	"github.com/dggcrm/dggcrm/internal/domain/group"
	"github.com/dggcrm/dggcrm/internal/shared/errors"
	"github.com/dggcrm/dggcrm/internal/shared/logger"
	"github.com/dggcrm/dggcrm/internal/shared/query"
)

type mockGroupRepository struct {
	groups []*group.Group
	counts map[uint]int64
}

func (m *mockGroupRepository) Create(_ context.Context, g *group.Group) error {
	for _, existing := range m.groups {
		if existing.Name() == g.Name() {
			return errors.NewConflictError("group already exists")
		}
	}
	if err := g.SetID(uint(len(m.groups) + 1)); err != nil {
		return err
	}
	m.groups = append(m.groups, g)
	return nil
}

func (m *mockGroupRepository) Update(context.Context, *group.Group) error {
	return nil
}

func (m *mockGroupRepository) Delete(ctx context.Context, id uint) error {
	_, err := m.GetByID(ctx, id)
	return err
}

func (m *mockGroupRepository) GetByID(_ context.Context, id uint) (*group.Group, error) {
	for _, g := range m.groups {
		if g.ID() == id {
			return g, nil
		}
	}
	return nil, errors.NewNotFoundError("group not found")
}

func (m *mockGroupRepository) List(context.Context, group.GroupFilter) ([]*group.Group, int64, error) {
	return m.groups, int64(len(m.groups)), nil
}

func (m *mockGroupRepository) ListWithCounts(context.Context, group.GroupFilter) ([]group.WithCount, int64, error) {
	out := make([]group.WithCount, 0, len(m.groups))
	for _, g := range m.groups {
		out = append(out, group.WithCount{Group: g, MemberCount: m.counts[g.ID()]})
	}
	return out, int64(len(out)), nil
}

type mockMembershipRepository struct {
	rows []*group.Membership
}

func (m *mockMembershipRepository) Create(_ context.Context, mem *group.Membership) error {
	for _, r := range m.rows {
		if r.GroupID == mem.GroupID && r.ContactID == mem.ContactID {
			return errors.NewConflictError("membership already exists")
		}
	}
	mem.ID = uint(len(m.rows) + 1)
	m.rows = append(m.rows, mem)
	return nil
}

func (m *mockMembershipRepository) DeleteByContact(_ context.Context, groupID, contactID uint) error {
	for i, r := range m.rows {
		if r.GroupID == groupID && r.ContactID == contactID {
			m.rows = append(m.rows[:i], m.rows[i+1:]...)
			return nil
		}
	}
	return errors.NewNotFoundError("membership not found")
}

func (m *mockMembershipRepository) ListByGroup(_ context.Context, groupID uint, _ query.PageFilter) ([]*group.Membership, int64, error) {
	var out []*group.Membership
	for _, r := range m.rows {
		if r.GroupID == groupID {
			out = append(out, r)
		}
	}
	return out, int64(len(out)), nil
}

func (m *mockMembershipRepository) ListByContacts(context.Context, []uint) (map[uint][]*group.Membership, error) {
	return map[uint][]*group.Membership{}, nil
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

func seededGroups(t *testing.T, names ...string) *mockGroupRepository {
	t.Helper()
	repo := &mockGroupRepository{counts: map[uint]int64{}}
	uc := NewCreateGroupUseCase(repo, logger.NewNopLogger())
	for _, n := range names {
		_, err := uc.Execute(context.Background(), CreateGroupCommand{Name: n})
		require.NoError(t, err)
	}
	return repo
}

func TestCreateGroupUseCase(t *testing.T) {
	repo := seededGroups(t, "Drivers")
	uc := NewCreateGroupUseCase(repo, logger.NewNopLogger())

	_, err := uc.Execute(context.Background(), CreateGroupCommand{Name: "Drivers"})
	assert.True(t, errors.IsConflictError(err))

	_, err = uc.Execute(context.Background(), CreateGroupCommand{Name: "   "})
	assert.True(t, errors.IsValidationError(err))
}

func TestListGroupsUseCase_WithCounts(t *testing.T) {
	repo := seededGroups(t, "Drivers", "Phone bank")
	repo.counts[1] = 3
	uc := NewListGroupsUseCase(repo, logger.NewNopLogger())

	plain, err := uc.Execute(context.Background(), ListGroupsQuery{})
	require.NoError(t, err)
	assert.Nil(t, plain.Groups[0].MemberCount)

	counted, err := uc.Execute(context.Background(), ListGroupsQuery{WithCounts: true})
	require.NoError(t, err)
	require.Len(t, counted.Groups, 2)
	assert.Equal(t, int64(3), *counted.Groups[0].MemberCount)
	assert.Equal(t, int64(0), *counted.Groups[1].MemberCount)
}

func TestMembers(t *testing.T) {
	groups := seededGroups(t, "Drivers")
	members := &mockMembershipRepository{}
	contacts := &mockContactRepository{names: map[uint]string{4: "Jane Doe"}}
	add := NewAddMemberUseCase(groups, members, contacts, logger.NewNopLogger())
	remove := NewRemoveMemberUseCase(members, logger.NewNopLogger())
	list := NewListMembersUseCase(groups, members, logger.NewNopLogger())
	ctx := context.Background()

	m, err := add.Execute(ctx, AddMemberCommand{GroupID: 1, ContactID: 4})
	require.NoError(t, err)
	assert.Equal(t, 1, m.AccessLevel)
	assert.Equal(t, "View", m.AccessLevelDisplay)
	assert.Equal(t, "Jane Doe", m.ContactFullName)

	_, err = add.Execute(ctx, AddMemberCommand{GroupID: 1, ContactID: 4, AccessLevel: 2})
	assert.True(t, errors.IsConflictError(err))

	_, err = add.Execute(ctx, AddMemberCommand{GroupID: 1, ContactID: 5})
	assert.True(t, errors.IsValidationError(err))

	_, err = add.Execute(ctx, AddMemberCommand{GroupID: 2, ContactID: 4})
	assert.True(t, errors.IsNotFoundError(err))

	page, err := list.Execute(ctx, ListMembersQuery{GroupID: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Total)

	require.NoError(t, remove.Execute(ctx, RemoveMemberCommand{GroupID: 1, ContactID: 4}))
	err = remove.Execute(ctx, RemoveMemberCommand{GroupID: 1, ContactID: 4})
	assert.True(t, errors.IsNotFoundError(err))
}
