package event

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	eventdto "github.com/dggcrm/dggcrm/internal/application/event/dto"
	"github.com/dggcrm/dggcrm/internal/application/event/usecases"
	"github.com/dggcrm/dggcrm/internal/interfaces/http/handlers/testutil"
)

type mockUpdateEventUC struct {
	got usecases.UpdateEventCommand
}

func (m *mockUpdateEventUC) Execute(_ context.Context, cmd usecases.UpdateEventCommand) (*eventdto.EventDTO, error) {
	m.got = cmd
	return &eventdto.EventDTO{ID: cmd.EventID}, nil
}

type mockCreateEventUC struct {
	calls int
}

func (m *mockCreateEventUC) Execute(_ context.Context, cmd usecases.CreateEventCommand) (*eventdto.EventDTO, error) {
	m.calls++
	return &eventdto.EventDTO{ID: 1, Name: cmd.Name}, nil
}

type mockListParticipationsUC struct {
	got   usecases.ListParticipationsQuery
	calls int
}

func (m *mockListParticipationsUC) Execute(_ context.Context, q usecases.ListParticipationsQuery) (*usecases.ListParticipationsResult, error) {
	m.calls++
	m.got = q
	return &usecases.ListParticipationsResult{Participations: []*eventdto.ParticipationDTO{}, Page: 1, PageSize: 20}, nil
}

type mockGroupParticipantsUC struct {
	got usecases.GroupParticipantsByContactQuery
}

func (m *mockGroupParticipantsUC) Execute(_ context.Context, q usecases.GroupParticipantsByContactQuery) (*usecases.GroupParticipantsByContactResult, error) {
	m.got = q
	return &usecases.GroupParticipantsByContactResult{
		Rows:     []eventdto.ContactEventCountDTO{{ContactID: 2, FullName: "Jane Doe", EventCount: 4}},
		Total:    1,
		Page:     1,
		PageSize: 20,
	}, nil
}

type mockListUsersInEventUC struct {
	got usecases.ListUsersInEventQuery
}

func (m *mockListUsersInEventUC) Execute(_ context.Context, q usecases.ListUsersInEventQuery) (*usecases.ListUsersInEventResult, error) {
	m.got = q
	return &usecases.ListUsersInEventResult{Links: []*eventdto.UserInEventDTO{}, Page: 1, PageSize: 20}, nil
}

func TestEventHandler_UpdateEvent_NullClearsSchedule(t *testing.T) {
	mockUC := &mockUpdateEventUC{}
	handler := NewEventHandler(nil, mockUC, nil, nil, nil, testutil.NewMockLogger())

	body := json.RawMessage(`{"starts_at": null, "ends_at": "2025-03-01T18:00:00Z", "name": "Phone bank"}`)
	c, w := testutil.NewTestContext(http.MethodPatch, "/api/events/7", body)
	testutil.SetURLParam(c, "id", "7")

	handler.UpdateEvent(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, uint(7), mockUC.got.EventID)
	assert.True(t, mockUC.got.ClearStartsAt)
	assert.Nil(t, mockUC.got.StartsAt)
	assert.False(t, mockUC.got.ClearEndsAt)
	require.NotNil(t, mockUC.got.EndsAt)
	assert.Equal(t, 18, mockUC.got.EndsAt.Hour())
	assert.Equal(t, "Phone bank", *mockUC.got.Name)
}

func TestEventHandler_GetEvent_InvalidID(t *testing.T) {
	handler := NewEventHandler(nil, nil, nil, nil, nil, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodGet, "/api/events/abc", nil)
	testutil.SetURLParam(c, "id", "abc")

	handler.GetEvent(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestParticipationHandler_ListParticipations(t *testing.T) {
	mockUC := &mockListParticipationsUC{}
	handler := NewParticipationHandler(nil, nil, nil, nil, mockUC, nil, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodGet, "/api/participants", nil)
	testutil.SetQueryParams(c, map[string]string{"event": "5", "status": "attended", "ordering": "-created_at"})

	handler.ListParticipations(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, uint(5), *mockUC.got.EventID)
	assert.Equal(t, "attended", *mockUC.got.Status)
	assert.Equal(t, "p.created_at DESC", mockUC.got.OrderClause())

	c, w = testutil.NewTestContext(http.MethodGet, "/api/participants", nil)
	testutil.SetQueryParams(c, map[string]string{"contact": "-1"})
	handler.ListParticipations(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 1, mockUC.calls)
}

func TestParticipationHandler_GroupByContact(t *testing.T) {
	mockUC := &mockGroupParticipantsUC{}
	handler := NewParticipationHandler(nil, nil, nil, nil, nil, mockUC, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodGet, "/api/participants/group_by_contact", nil)
	testutil.SetQueryParams(c, map[string]string{"min_events": "3", "max_date": "2025-12-31"})

	handler.GroupByContact(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 3, *mockUC.got.MinEvents)
	assert.Nil(t, mockUC.got.MaxEvents)
	require.NotNil(t, mockUC.got.MaxDate)
	assert.Empty(t, mockUC.got.Status)
	assert.Contains(t, w.Body.String(), `"event_count":4`)
}

func TestUserInEventHandler_List_OrdersByJoinedAt(t *testing.T) {
	mockUC := &mockListUsersInEventUC{}
	handler := NewUserInEventHandler(nil, nil, nil, mockUC, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodGet, "/api/users-in-events", nil)
	testutil.SetQueryParams(c, map[string]string{"user": "3", "ordering": "-joined_at"})

	handler.List(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, uint(3), *mockUC.got.UserID)
	assert.Nil(t, mockUC.got.EventID)
	assert.Equal(t, "ue.joined_at DESC", mockUC.got.OrderClause())
}

func TestEventHandler_CreateEvent_NameLimit(t *testing.T) {
	mockUC := &mockCreateEventUC{}
	handler := NewEventHandler(mockUC, nil, nil, nil, nil, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodPost, "/api/events", map[string]string{"name": strings.Repeat("日", 100)})
	handler.CreateEvent(c)
	assert.Equal(t, http.StatusCreated, w.Code)

	c, w = testutil.NewTestContext(http.MethodPost, "/api/events", map[string]string{"name": strings.Repeat("e", 101)})
	handler.CreateEvent(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 1, mockUC.calls)
}
