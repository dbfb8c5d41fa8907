package ticket

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ticketdto "github.com/dggcrm/dggcrm/internal/application/ticket/dto"
	"github.com/dggcrm/dggcrm/internal/application/ticket/usecases"
	"github.com/dggcrm/dggcrm/internal/interfaces/http/handlers/testutil"
	"github.com/dggcrm/dggcrm/internal/shared/errors"
)

// =====================================================================
// Mock use cases
// =====================================================================

type mockCreateTicketUC struct {
	got    usecases.CreateTicketCommand
	result *ticketdto.TicketDTO
	err    error
}

func (m *mockCreateTicketUC) Execute(_ context.Context, cmd usecases.CreateTicketCommand) (*ticketdto.TicketDTO, error) {
	m.got = cmd
	return m.result, m.err
}

type mockUpdateTicketUC struct {
	got    usecases.UpdateTicketCommand
	result *ticketdto.TicketDTO
	err    error
}

func (m *mockUpdateTicketUC) Execute(_ context.Context, cmd usecases.UpdateTicketCommand) (*ticketdto.TicketDTO, error) {
	m.got = cmd
	return m.result, m.err
}

type mockListTicketsUC struct {
	got    usecases.ListTicketsQuery
	result *usecases.ListTicketsResult
	err    error
}

func (m *mockListTicketsUC) Execute(_ context.Context, q usecases.ListTicketsQuery) (*usecases.ListTicketsResult, error) {
	m.got = q
	return m.result, m.err
}

type mockClaimTicketUC struct {
	got    usecases.ClaimTicketCommand
	result *ticketdto.TicketDTO
	err    error
}

func (m *mockClaimTicketUC) Execute(_ context.Context, cmd usecases.ClaimTicketCommand) (*ticketdto.TicketDTO, error) {
	m.got = cmd
	return m.result, m.err
}

type mockUnclaimTicketUC struct {
	err error
}

func (m *mockUnclaimTicketUC) Execute(_ context.Context, _ usecases.UnclaimTicketCommand) (*ticketdto.TicketDTO, error) {
	return nil, m.err
}

type mockAssignTicketUC struct {
	got    usecases.AssignTicketCommand
	result *ticketdto.TicketDTO
	err    error
}

func (m *mockAssignTicketUC) Execute(_ context.Context, cmd usecases.AssignTicketCommand) (*ticketdto.TicketDTO, error) {
	m.got = cmd
	return m.result, m.err
}

type mockGroupByContactUC struct {
	got    usecases.GroupTicketsByContactQuery
	result *usecases.GroupTicketsByContactResult
	err    error
}

func (m *mockGroupByContactUC) Execute(_ context.Context, q usecases.GroupTicketsByContactQuery) (*usecases.GroupTicketsByContactResult, error) {
	m.got = q
	return m.result, m.err
}

type mockTimelineUC struct {
	got    usecases.GetTimelineQuery
	result *usecases.GetTimelineResult
	err    error
}

func (m *mockTimelineUC) Execute(_ context.Context, q usecases.GetTimelineQuery) (*usecases.GetTimelineResult, error) {
	m.got = q
	return m.result, m.err
}

type mockUpdateAskByKeysUC struct {
	got    usecases.UpdateAskByKeysCommand
	result *ticketdto.AskDTO
	err    error
}

func (m *mockUpdateAskByKeysUC) Execute(_ context.Context, cmd usecases.UpdateAskByKeysCommand) (*ticketdto.AskDTO, error) {
	m.got = cmd
	return m.result, m.err
}

// =====================================================================
// Test helper
// =====================================================================

type testDeps struct {
	createTicketUC   usecases.CreateTicketExecutor
	updateTicketUC   usecases.UpdateTicketExecutor
	listTicketsUC    usecases.ListTicketsExecutor
	claimTicketUC    usecases.ClaimTicketExecutor
	unclaimTicketUC  usecases.UnclaimTicketExecutor
	assignTicketUC   usecases.AssignTicketExecutor
	getTimelineUC    usecases.GetTimelineExecutor
	groupByContactUC usecases.GroupTicketsByContactExecutor
}

func newTestTicketHandler(deps testDeps) *TicketHandler {
	return NewTicketHandler(
		deps.createTicketUC,
		deps.updateTicketUC,
		nil,
		nil,
		deps.listTicketsUC,
		deps.claimTicketUC,
		deps.unclaimTicketUC,
		deps.assignTicketUC,
		nil,
		nil,
		nil,
		deps.getTimelineUC,
		deps.groupByContactUC,
		testutil.NewMockLogger(),
	)
}

func parseError(t *testing.T, body []byte) *testutil.ErrorInfo {
	t.Helper()
	var resp testutil.APIResponse
	require.NoError(t, json.Unmarshal(body, &resp))
	require.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	return resp.Error
}

// =====================================================================
// Tests
// =====================================================================

func TestTicketHandler_CreateTicket_RecordsReporter(t *testing.T) {
	mockUC := &mockCreateTicketUC{result: &ticketdto.TicketDTO{ID: 1, Status: "OPEN", CreatedAt: time.Now().UTC()}}
	handler := newTestTicketHandler(testDeps{createTicketUC: mockUC})

	c, w := testutil.NewTestContext(http.MethodPost, "/api/tickets", map[string]interface{}{
		"title":       "Call Jane",
		"ticket_type": "RECRUIT",
		"priority":    1,
	})
	testutil.SetAuthContext(c, 9, "organizer")

	handler.CreateTicket(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, mockUC.got.ActorID)
	assert.Equal(t, uint(9), *mockUC.got.ActorID)
	assert.Equal(t, "Call Jane", mockUC.got.Title)
	require.NotNil(t, mockUC.got.Type)
	assert.Equal(t, "RECRUIT", *mockUC.got.Type)
}

func TestTicketHandler_CreateTicket_PriorityOutOfRange(t *testing.T) {
	mockUC := &mockCreateTicketUC{}
	handler := newTestTicketHandler(testDeps{createTicketUC: mockUC})

	c, w := testutil.NewTestContext(http.MethodPost, "/api/tickets", map[string]interface{}{"priority": 9})
	testutil.SetAuthContext(c, 9, "organizer")

	handler.CreateTicket(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "validation_error", parseError(t, w.Body.Bytes()).Type)
}

func TestTicketHandler_UpdateTicket_NullClearsReference(t *testing.T) {
	mockUC := &mockUpdateTicketUC{result: &ticketdto.TicketDTO{ID: 3}}
	handler := newTestTicketHandler(testDeps{updateTicketUC: mockUC})

	c, w := testutil.NewTestContext(http.MethodPatch, "/api/tickets/3", map[string]interface{}{
		"contact":     nil,
		"assigned_to": 4,
	})
	testutil.SetURLParam(c, "id", "3")

	handler.UpdateTicket(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, mockUC.got.ClearContact)
	assert.False(t, mockUC.got.ClearEvent)
	assert.Nil(t, mockUC.got.EventID)
	require.NotNil(t, mockUC.got.AssignedToID)
	assert.Equal(t, uint(4), *mockUC.got.AssignedToID)
}

func TestTicketHandler_ListTickets_Filters(t *testing.T) {
	mockUC := &mockListTicketsUC{result: &usecases.ListTicketsResult{Tickets: []*ticketdto.TicketDTO{}, Page: 2, PageSize: 10}}
	handler := newTestTicketHandler(testDeps{listTicketsUC: mockUC})

	c, w := testutil.NewTestContext(http.MethodGet, "/api/tickets", nil)
	testutil.SetQueryParams(c, map[string]string{
		"q":             "jane",
		"ticket_status": "OPEN",
		"contact":       "12",
		"page":          "2",
		"page_size":     "10",
		"ordering":      "-priority",
	})

	handler.ListTickets(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "jane", mockUC.got.Search)
	assert.Equal(t, "OPEN", *mockUC.got.Status)
	assert.Equal(t, uint(12), *mockUC.got.ContactID)
	assert.Equal(t, "priority DESC", mockUC.got.OrderClause())

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	var data testutil.ListData
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	assert.JSONEq(t, "[]", string(data.Results))
	assert.Equal(t, 2, data.Page)
}

func TestTicketHandler_ListTickets_BadInput(t *testing.T) {
	for name, params := range map[string]map[string]string{
		"unknown ordering": {"ordering": "password"},
		"bad contact":      {"contact": "abc"},
		"bad date":         {"created_after": "last week"},
	} {
		t.Run(name, func(t *testing.T) {
			mockUC := &mockListTicketsUC{}
			handler := newTestTicketHandler(testDeps{listTicketsUC: mockUC})
			c, w := testutil.NewTestContext(http.MethodGet, "/api/tickets", nil)
			testutil.SetQueryParams(c, params)

			handler.ListTickets(c)

			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestTicketHandler_ClaimTicket(t *testing.T) {
	mockUC := &mockClaimTicketUC{result: &ticketdto.TicketDTO{ID: 5}}
	handler := newTestTicketHandler(testDeps{claimTicketUC: mockUC})

	c, w := testutil.NewTestContext(http.MethodPost, "/api/tickets/5/claim", nil)
	testutil.SetURLParam(c, "id", "5")
	testutil.SetAuthContext(c, 2, "organizer")

	handler.ClaimTicket(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, uint(5), mockUC.got.TicketID)
	assert.Equal(t, uint(2), *mockUC.got.ActorID)
}

func TestTicketHandler_ClaimTicket_HeldByOther(t *testing.T) {
	mockUC := &mockClaimTicketUC{err: errors.NewConflictError("ticket is assigned to another user")}
	handler := newTestTicketHandler(testDeps{claimTicketUC: mockUC})

	c, w := testutil.NewTestContext(http.MethodPost, "/api/tickets/5/claim", nil)
	testutil.SetURLParam(c, "id", "5")
	testutil.SetAuthContext(c, 2, "organizer")

	handler.ClaimTicket(c)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestTicketHandler_UnclaimTicket_NotAssignee(t *testing.T) {
	handler := newTestTicketHandler(testDeps{unclaimTicketUC: &mockUnclaimTicketUC{err: errors.NewForbiddenError("only the assignee can unclaim")}})

	c, w := testutil.NewTestContext(http.MethodPost, "/api/tickets/5/unclaim", nil)
	testutil.SetURLParam(c, "id", "5")
	testutil.SetAuthContext(c, 3, "organizer")

	handler.UnclaimTicket(c)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "forbidden", parseError(t, w.Body.Bytes()).Type)
}

func TestTicketHandler_AssignTicket_FieldPresence(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		wantPresent bool
		wantID      *uint
	}{
		{name: "absent", body: `{}`, wantPresent: false},
		{name: "null unassigns", body: `{"assigned_to": null}`, wantPresent: true},
		{name: "user id", body: `{"assigned_to": 7}`, wantPresent: true, wantID: func() *uint { v := uint(7); return &v }()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUC := &mockAssignTicketUC{result: &ticketdto.TicketDTO{ID: 1}}
			handler := newTestTicketHandler(testDeps{assignTicketUC: mockUC})

			c, w := testutil.NewTestContext(http.MethodPost, "/api/tickets/1/assign", json.RawMessage(tt.body))
			testutil.SetURLParam(c, "id", "1")

			handler.AssignTicket(c)

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tt.wantPresent, mockUC.got.AssignedToPresent)
			assert.Equal(t, tt.wantID, mockUC.got.AssignedToID)
		})
	}
}

func TestTicketHandler_GroupByContact_ParsesBounds(t *testing.T) {
	mockUC := &mockGroupByContactUC{result: &usecases.GroupTicketsByContactResult{
		Rows:     []ticketdto.ContactTicketCountDTO{{ContactID: 1, FullName: "Jane Doe", TicketCount: 3}},
		Total:    1,
		Page:     1,
		PageSize: 20,
	}}
	handler := newTestTicketHandler(testDeps{groupByContactUC: mockUC})

	c, w := testutil.NewTestContext(http.MethodGet, "/api/tickets/group_by_contact", nil)
	testutil.SetQueryParams(c, map[string]string{
		"min_tickets": "2",
		"max_tickets": "5",
		"min_date":    "2025-01-01",
		"type":        "RECRUIT",
	})

	handler.GroupByContact(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 2, *mockUC.got.MinTickets)
	assert.Equal(t, 5, *mockUC.got.MaxTickets)
	assert.Equal(t, "RECRUIT", *mockUC.got.Type)
	assert.Empty(t, mockUC.got.Status)
	require.NotNil(t, mockUC.got.MinDate)
	assert.Equal(t, 2025, mockUC.got.MinDate.Year())
	assert.Contains(t, w.Body.String(), `"ticket_count":3`)
}

func TestTicketHandler_GetTimeline_PassesMode(t *testing.T) {
	mockUC := &mockTimelineUC{err: errors.NewValidationError("invalid mode")}
	handler := newTestTicketHandler(testDeps{getTimelineUC: mockUC})

	c, w := testutil.NewTestContext(http.MethodGet, "/api/tickets/4/timeline", nil)
	testutil.SetURLParam(c, "id", "4")
	testutil.SetQueryParams(c, map[string]string{"mode": "everything"})

	handler.GetTimeline(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "everything", mockUC.got.Mode)
	assert.Equal(t, uint(4), mockUC.got.TicketID)
}

func TestAskHandler_UpdateAskByKeys(t *testing.T) {
	mockUC := &mockUpdateAskByKeysUC{err: errors.NewNotFoundError("ask not found")}
	handler := NewAskHandler(nil, nil, nil, mockUC, nil, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodPut, "/api/tickets/asks/update-by-keys", map[string]interface{}{
		"ticket_id":  1,
		"contact_id": 2,
		"status":     "agreed",
	})
	testutil.SetAuthContext(c, 8, "organizer")

	handler.UpdateAskByKeys(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, uint(1), *mockUC.got.TicketID)
	assert.Equal(t, uint(2), *mockUC.got.ContactID)
	assert.Equal(t, "agreed", *mockUC.got.Status)
	assert.Equal(t, uint(8), *mockUC.got.ActorID)
}
