package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dggcrm/dggcrm/internal/domain/contact"
	"github.com/dggcrm/dggcrm/internal/domain/ticket"
	vo "github.com/dggcrm/dggcrm/internal/domain/ticket/valueobjects"
	"github.com/dggcrm/dggcrm/internal/domain/user"
	"github.com/dggcrm/dggcrm/internal/shared/errors"
	"github.com/dggcrm/dggcrm/internal/shared/logger"
)

func newCreateUseCase(repo *mockTicketRepository, audits *mockAuditLogRepository, contacts *mockContactRepository) *CreateTicketUseCase {
	if contacts == nil {
		contacts = &mockContactRepository{}
	}
	return NewCreateTicketUseCase(
		repo,
		audits,
		&mockEventRepository{},
		contacts,
		&mockUserRepository{users: map[uint]*user.User{}},
		&mockTransactor{},
		logger.NewNopLogger(),
	)
}

func TestCreateTicketUseCase_Defaults(t *testing.T) {
	var saved *ticket.Ticket
	repo := &mockTicketRepository{
		CreateFunc: func(_ context.Context, tk *ticket.Ticket) error {
			saved = tk
			return tk.SetID(42)
		},
	}
	audits := &mockAuditLogRepository{}
	uc := newCreateUseCase(repo, audits, nil)

	result, err := uc.Execute(context.Background(), CreateTicketCommand{
		ActorID: uintPtr(5),
		Title:   "Introduce Jane",
	})

	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, uint(42), result.ID)
	assert.Equal(t, "OPEN", result.Status)
	assert.Equal(t, "UNKNOWN", result.Type)
	assert.Equal(t, vo.DefaultPriority, result.Priority)
	require.NotNil(t, result.ReportedByID)
	assert.Equal(t, uint(5), *result.ReportedByID)

	require.Len(t, audits.entries, 1)
	assert.Equal(t, vo.LogCreated, audits.entries[0].LogType)
	assert.Equal(t, uint(42), audits.entries[0].TicketID)
}

func TestCreateTicketUseCase_ValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		cmd  CreateTicketCommand
	}{
		{name: "unknown status", cmd: CreateTicketCommand{Status: strPtr("DONE")}},
		{name: "unknown type", cmd: CreateTicketCommand{Type: strPtr("recruit")}},
		{name: "priority too high", cmd: CreateTicketCommand{Priority: intPtr(6)}},
		{name: "priority negative", cmd: CreateTicketCommand{Priority: intPtr(-1)}},
		{name: "missing contact", cmd: CreateTicketCommand{ContactID: uintPtr(9)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockTicketRepository{}
			audits := &mockAuditLogRepository{}
			uc := newCreateUseCase(repo, audits, nil)

			_, err := uc.Execute(context.Background(), tt.cmd)

			require.Error(t, err)
			assert.True(t, errors.IsValidationError(err), "got %v", err)
			assert.Empty(t, audits.entries)
		})
	}
}

func TestCreateTicketUseCase_WithExistingContact(t *testing.T) {
	contacts := &mockContactRepository{
		GetByIDFunc: func(_ context.Context, id uint) (*contact.Contact, error) {
			return contact.NewContact(contact.Fields{FullName: "Jane Doe"})
		},
	}
	uc := newCreateUseCase(&mockTicketRepository{}, &mockAuditLogRepository{}, contacts)

	result, err := uc.Execute(context.Background(), CreateTicketCommand{ContactID: uintPtr(9), Type: strPtr("RECRUIT")})

	require.NoError(t, err)
	assert.Equal(t, uint(9), *result.ContactID)
	assert.Equal(t, "RECRUIT", result.Type)
}

func TestUpdateTicketUseCase_AuditsStatusSeparately(t *testing.T) {
	tk := existingTicket(t, 3, nil)
	repo := ticketStore(tk)
	audits := &mockAuditLogRepository{}
	uc := NewUpdateTicketUseCase(repo, audits, &mockEventRepository{}, &mockContactRepository{},
		&mockUserRepository{}, &mockTransactor{}, logger.NewNopLogger())

	result, err := uc.Execute(context.Background(), UpdateTicketCommand{
		TicketID: 3,
		ActorID:  uintPtr(1),
		Status:   strPtr("IN_PROGRESS"),
		Priority: intPtr(0),
	})

	require.NoError(t, err)
	assert.Equal(t, "IN_PROGRESS", result.Status)
	assert.Equal(t, 0, result.Priority)
	require.Len(t, audits.entries, 2)
	assert.Equal(t, vo.LogStatus, audits.entries[0].LogType)
	assert.Equal(t, "OPEN", audits.entries[0].Data["from"])
	assert.Equal(t, "IN_PROGRESS", audits.entries[0].Data["to"])
	assert.Equal(t, vo.LogUpdated, audits.entries[1].LogType)
	assert.Contains(t, audits.entries[1].Data["changes"], "priority")
}

func TestUpdateTicketUseCase_NoChangesWritesNothing(t *testing.T) {
	tk := existingTicket(t, 3, nil)
	repo := ticketStore(tk)
	audits := &mockAuditLogRepository{}
	uc := NewUpdateTicketUseCase(repo, audits, &mockEventRepository{}, &mockContactRepository{},
		&mockUserRepository{}, &mockTransactor{}, logger.NewNopLogger())

	_, err := uc.Execute(context.Background(), UpdateTicketCommand{TicketID: 3, Status: strPtr("OPEN")})

	require.NoError(t, err)
	assert.Empty(t, repo.updated)
	assert.Empty(t, audits.entries)
}

func TestUpdateTicketUseCase_InvalidStatusRejected(t *testing.T) {
	tk := existingTicket(t, 3, nil)
	uc := NewUpdateTicketUseCase(ticketStore(tk), &mockAuditLogRepository{}, &mockEventRepository{},
		&mockContactRepository{}, &mockUserRepository{}, &mockTransactor{}, logger.NewNopLogger())

	_, err := uc.Execute(context.Background(), UpdateTicketCommand{TicketID: 3, Status: strPtr("open")})

	assert.True(t, errors.IsValidationError(err))
	assert.Equal(t, vo.StatusOpen, tk.Status())
}

func TestListTicketsUseCase_ParsesFilters(t *testing.T) {
	var got ticket.TicketFilter
	repo := &mockTicketRepository{
		ListFunc: func(_ context.Context, f ticket.TicketFilter) ([]*ticket.Ticket, int64, error) {
			got = f
			return nil, 0, nil
		},
	}
	uc := NewListTicketsUseCase(repo, logger.NewNopLogger())

	q := ListTicketsQuery{Search: "jane", Status: strPtr("TODO"), Priority: intPtr(2)}
	q.Page = 2
	q.PageSize = 10
	result, err := uc.Execute(context.Background(), q)

	require.NoError(t, err)
	assert.Empty(t, result.Tickets)
	assert.NotNil(t, result.Tickets)
	assert.Equal(t, 2, result.Page)
	assert.Equal(t, "jane", got.Query)
	assert.Equal(t, vo.StatusTodo, *got.Status)
	assert.Equal(t, vo.Priority(2), *got.Priority)

	_, err = uc.Execute(context.Background(), ListTicketsQuery{Priority: intPtr(9)})
	assert.True(t, errors.IsValidationError(err))
}

func TestDeleteTicketUseCase_NotFound(t *testing.T) {
	repo := &mockTicketRepository{
		DeleteFunc: func(context.Context, uint) error {
			return errors.NewNotFoundError("ticket not found")
		},
	}
	uc := NewDeleteTicketUseCase(repo, logger.NewNopLogger())

	err := uc.Execute(context.Background(), DeleteTicketCommand{TicketID: 1})

	assert.True(t, errors.IsNotFoundError(err))
}
