package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dggcrm/dggcrm/internal/domain/event"
	"github.com/dggcrm/dggcrm/internal/domain/shared"
	"github.com/dggcrm/dggcrm/internal/domain/user"
	"github.com/dggcrm/dggcrm/internal/shared/authorization"
	"github.com/dggcrm/dggcrm/internal/shared/errors"
	"github.com/dggcrm/dggcrm/internal/shared/logger"
)

func intPtr(v int) *int {
	return &v
}

func strPtr(v string) *string {
	return &v
}

func TestCreateEventUseCase(t *testing.T) {
	events := &mockEventRepository{}
	uc := NewCreateEventUseCase(events, logger.NewNopLogger())
	start := time.Date(2024, 5, 4, 10, 0, 0, 0, time.UTC)

	result, err := uc.Execute(context.Background(), CreateEventCommand{Name: "Canvass", StartsAt: &start})
	require.NoError(t, err)
	assert.Equal(t, "draft", result.Status)
	assert.Equal(t, "Draft", result.StatusDisplay)

	end := start.Add(-time.Hour)
	_, err = uc.Execute(context.Background(), CreateEventCommand{Name: "Backwards", StartsAt: &start, EndsAt: &end})
	assert.True(t, errors.IsValidationError(err))

	_, err = uc.Execute(context.Background(), CreateEventCommand{Name: "Odd", Status: "postponed"})
	assert.True(t, errors.IsValidationError(err))
}

func TestUpdateEventUseCase_ClearsTimes(t *testing.T) {
	events := &mockEventRepository{}
	start := time.Date(2024, 5, 4, 10, 0, 0, 0, time.UTC)
	_, err := NewCreateEventUseCase(events, logger.NewNopLogger()).Execute(context.Background(), CreateEventCommand{Name: "Canvass", StartsAt: &start})
	require.NoError(t, err)
	uc := NewUpdateEventUseCase(events, logger.NewNopLogger())

	result, err := uc.Execute(context.Background(), UpdateEventCommand{EventID: 1, ClearStartsAt: true, Status: strPtr("scheduled")})

	require.NoError(t, err)
	assert.Nil(t, result.StartsAt)
	assert.Equal(t, "scheduled", result.Status)

	_, err = uc.Execute(context.Background(), UpdateEventCommand{EventID: 9})
	assert.True(t, errors.IsNotFoundError(err))
}

func TestListEventsUseCase_StatusFilter(t *testing.T) {
	var got event.EventFilter
	events := &mockEventRepository{
		ListFunc: func(_ context.Context, f event.EventFilter) ([]*event.Event, int64, error) {
			got = f
			return nil, 0, nil
		},
	}
	uc := NewListEventsUseCase(events, logger.NewNopLogger())

	_, err := uc.Execute(context.Background(), ListEventsQuery{Status: strPtr("completed")})
	require.NoError(t, err)
	assert.Equal(t, event.StatusCompleted, *got.Status)

	_, err = uc.Execute(context.Background(), ListEventsQuery{Status: strPtr("done")})
	assert.True(t, errors.IsValidationError(err))
}

func TestCreateParticipationUseCase(t *testing.T) {
	events := &mockEventRepository{}
	_, err := NewCreateEventUseCase(events, logger.NewNopLogger()).Execute(context.Background(), CreateEventCommand{Name: "Canvass"})
	require.NoError(t, err)
	parts := &mockParticipationRepository{}
	contacts := &mockContactRepository{names: map[uint]string{7: "Jane Doe"}}
	uc := NewCreateParticipationUseCase(parts, events, contacts, logger.NewNopLogger())

	result, err := uc.Execute(context.Background(), CreateParticipationCommand{EventID: 1, ContactID: 7, Status: "committed"})
	require.NoError(t, err)
	assert.Equal(t, "Canvass", result.EventName)
	assert.Equal(t, "Jane Doe", result.ContactFullName)

	_, err = uc.Execute(context.Background(), CreateParticipationCommand{EventID: 1, ContactID: 7})
	assert.True(t, errors.IsConflictError(err))

	_, err = uc.Execute(context.Background(), CreateParticipationCommand{EventID: 1, ContactID: 8})
	assert.True(t, errors.IsValidationError(err))

	_, err = uc.Execute(context.Background(), CreateParticipationCommand{EventID: 2, ContactID: 7})
	assert.True(t, errors.IsValidationError(err))
}

func TestUpdateParticipationUseCase(t *testing.T) {
	parts := &mockParticipationRepository{}
	p, err := event.NewParticipation(1, 7, event.CommitmentCommitted, "")
	require.NoError(t, err)
	require.NoError(t, parts.Create(context.Background(), p))
	uc := NewUpdateParticipationUseCase(parts, logger.NewNopLogger())

	result, err := uc.Execute(context.Background(), UpdateParticipationCommand{ParticipationID: p.ID, Status: strPtr("attended"), Notes: strPtr("brought snacks")})
	require.NoError(t, err)
	assert.Equal(t, "attended", result.Status)
	assert.Equal(t, "brought snacks", result.Notes)

	_, err = uc.Execute(context.Background(), UpdateParticipationCommand{ParticipationID: p.ID, Status: strPtr("present")})
	assert.True(t, errors.IsValidationError(err))
}

func TestGroupParticipantsByContactUseCase(t *testing.T) {
	var got event.ContactParticipationCountFilter
	parts := &mockParticipationRepository{
		CountByContactFunc: func(_ context.Context, f event.ContactParticipationCountFilter) ([]shared.ContactCount, int64, error) {
			got = f
			return []shared.ContactCount{{ContactID: 3, FullName: "Jane Doe", Count: 4}}, 1, nil
		},
	}
	uc := NewGroupParticipantsByContactUseCase(parts, logger.NewNopLogger())
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	result, err := uc.Execute(context.Background(), GroupParticipantsByContactQuery{MinEvents: intPtr(2), MinDate: &from})

	require.NoError(t, err)
	assert.Equal(t, event.CommitmentAttended, got.Status)
	assert.Equal(t, int64(2), got.Bounds.Min)
	assert.Nil(t, got.Bounds.Max)
	assert.Equal(t, from, *got.Dates.From)
	require.Len(t, result.Rows, 1)
	assert.Equal(t, int64(4), result.Rows[0].EventCount)
}

func TestGroupParticipantsByContactUseCase_Validation(t *testing.T) {
	uc := NewGroupParticipantsByContactUseCase(&mockParticipationRepository{}, logger.NewNopLogger())

	tests := []GroupParticipantsByContactQuery{
		{Status: "present"},
		{MinEvents: intPtr(3), MaxEvents: intPtr(1)},
		{MinEvents: intPtr(-1)},
	}
	for _, q := range tests {
		_, err := uc.Execute(context.Background(), q)
		assert.True(t, errors.IsValidationError(err), "query %+v", q)
	}
}

func TestAddUserToEventUseCase(t *testing.T) {
	events := &mockEventRepository{}
	_, err := NewCreateEventUseCase(events, logger.NewNopLogger()).Execute(context.Background(), CreateEventCommand{Name: "Canvass"})
	require.NoError(t, err)
	staff, err := user.ReconstructUser(user.Params{ID: 2, Username: "alex", Email: "alex@example.com", Role: authorization.RoleOrganizer})
	require.NoError(t, err)
	links := &mockUserInEventRepository{}
	uc := NewAddUserToEventUseCase(links, events, &mockUserRepository{users: map[uint]*user.User{2: staff}}, logger.NewNopLogger())

	result, err := uc.Execute(context.Background(), AddUserToEventCommand{UserID: 2, EventID: 1})
	require.NoError(t, err)
	assert.Equal(t, "alex", result.UserUsername)
	assert.Equal(t, "Canvass", result.EventName)

	_, err = uc.Execute(context.Background(), AddUserToEventCommand{UserID: 3, EventID: 1})
	assert.True(t, errors.IsValidationError(err))
	assert.Len(t, links.created, 1)
}
