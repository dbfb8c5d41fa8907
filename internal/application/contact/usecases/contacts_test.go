package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dggcrm/dggcrm/internal/domain/contact"
	"github.com/dggcrm/dggcrm/internal/domain/event"
	"github.com/dggcrm/dggcrm/internal/domain/group"
	"github.com/dggcrm/dggcrm/internal/shared/errors"
	"github.com/dggcrm/dggcrm/internal/shared/logger"
)

func TestCreateAndUpdateContact(t *testing.T) {
	contacts := &mockContactRepository{}
	create := NewCreateContactUseCase(contacts, logger.NewNopLogger())
	update := NewUpdateContactUseCase(contacts, logger.NewNopLogger())

	created, err := create.Execute(context.Background(), CreateContactCommand{FullName: " Jane Doe ", Email: "jane@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", created.FullName)

	updated, err := update.Execute(context.Background(), UpdateContactCommand{ContactID: created.ID, Phone: strPtr("555-0100")})
	require.NoError(t, err)
	assert.Equal(t, "555-0100", updated.Phone)
	assert.Equal(t, "jane@example.com", updated.Email)

	_, err = update.Execute(context.Background(), UpdateContactCommand{ContactID: 42})
	assert.True(t, errors.IsNotFoundError(err))
}

func TestListContactsUseCase_BuildsFilter(t *testing.T) {
	var got contact.ContactFilter
	contacts := &mockContactRepository{
		ListFunc: func(_ context.Context, f contact.ContactFilter) ([]*contact.Contact, int64, error) {
			got = f
			return nil, 0, nil
		},
	}
	uc := NewListContactsUseCase(contacts, logger.NewNopLogger())

	result, err := uc.Execute(context.Background(), ListContactsQuery{Search: "jane", Tag: "Volunteer", GroupID: uintPtr(3)})

	require.NoError(t, err)
	assert.Equal(t, "jane", got.Query)
	assert.Nil(t, got.TagID)
	require.NotNil(t, got.TagName)
	assert.Equal(t, "Volunteer", *got.TagName)
	assert.Equal(t, uint(3), *got.GroupID)
	assert.Equal(t, 1, result.Page)
	assert.Equal(t, 20, result.PageSize)
}

func TestListContactsUseCase_RejectsInvertedRange(t *testing.T) {
	uc := NewListContactsUseCase(&mockContactRepository{}, logger.NewNopLogger())
	after := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	before := after.AddDate(0, 0, -1)

	_, err := uc.Execute(context.Background(), ListContactsQuery{CreatedAfter: &after, CreatedBefore: &before})

	assert.True(t, errors.IsValidationError(err))
}

func TestListContactsWithRelationsUseCase(t *testing.T) {
	contacts := &mockContactRepository{}
	jane := seededContact(t, contacts, "Jane Doe")
	john := seededContact(t, contacts, "John Roe")

	tag, err := contact.ReconstructTag(1, "Driver", "#ff0000", time.Now(), time.Now())
	require.NoError(t, err)
	tags := &mockTagRepository{
		ListByContactsFunc: func(_ context.Context, ids []uint) (map[uint][]*contact.Tag, error) {
			assert.ElementsMatch(t, []uint{jane.ID(), john.ID()}, ids)
			return map[uint][]*contact.Tag{jane.ID(): {tag}}, nil
		},
	}
	parts := &mockParticipationRepository{byContact: map[uint][]*event.Participation{
		jane.ID(): {{ID: 4, EventID: 2, ContactID: jane.ID(), Status: event.CommitmentAttended, EventName: "Canvass"}},
	}}
	members := &mockMembershipRepository{byContact: map[uint][]*group.Membership{
		john.ID(): {{ID: 1, GroupID: 5, ContactID: john.ID(), AccessLevel: group.AccessEdit, GroupName: "Leads"}},
	}}
	uc := NewListContactsWithRelationsUseCase(contacts, tags, parts, members, logger.NewNopLogger())

	result, err := uc.Execute(context.Background(), ListContactsQuery{})

	require.NoError(t, err)
	require.Len(t, result.Contacts, 2)
	assert.Equal(t, "Driver", result.Contacts[0].Tags[0].Name)
	assert.Equal(t, "attended", result.Contacts[0].Participations[0].Status)
	assert.Empty(t, result.Contacts[0].Groups)
	assert.NotNil(t, result.Contacts[1].Tags)
	assert.Equal(t, 2, result.Contacts[1].Groups[0].AccessLevel)
}

func TestActivities(t *testing.T) {
	contacts := &mockContactRepository{}
	jane := seededContact(t, contacts, "Jane Doe")
	activities := &mockActivityRepository{}
	appendUC := NewAppendActivityUseCase(contacts, activities, logger.NewNopLogger())
	listUC := NewListActivitiesUseCase(contacts, activities, logger.NewNopLogger())
	ctx := context.Background()

	a, err := appendUC.Execute(ctx, AppendActivityCommand{ContactID: jane.ID(), ActivityType: "accomplishment", Data: map[string]interface{}{"event": "Canvass"}})
	require.NoError(t, err)
	assert.Equal(t, "accomplishment", a.ActivityType)

	b, err := appendUC.Execute(ctx, AppendActivityCommand{ContactID: jane.ID()})
	require.NoError(t, err)
	assert.Equal(t, "misc", b.ActivityType)
	assert.NotNil(t, b.Data)

	_, err = appendUC.Execute(ctx, AppendActivityCommand{ContactID: jane.ID(), ActivityType: "gossip"})
	assert.True(t, errors.IsValidationError(err))

	_, err = appendUC.Execute(ctx, AppendActivityCommand{ContactID: 77})
	assert.True(t, errors.IsNotFoundError(err))

	list, err := listUC.Execute(ctx, ListActivitiesQuery{ContactID: jane.ID()})
	require.NoError(t, err)
	require.Len(t, list.Activities, 2)
	assert.Equal(t, b.ID, list.Activities[0].ID, "newest first")

	filtered, err := listUC.Execute(ctx, ListActivitiesQuery{ContactID: jane.ID(), ActivityType: "accomplishment"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), filtered.Total)
}
