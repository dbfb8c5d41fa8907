package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dggcrm/dggcrm/internal/domain/ticket"
	vo "github.com/dggcrm/dggcrm/internal/domain/ticket/valueobjects"
	"github.com/dggcrm/dggcrm/internal/shared/errors"
	"github.com/dggcrm/dggcrm/internal/shared/logger"
)

func uintPtr(v uint) *uint {
	return &v
}

func strPtr(v string) *string {
	return &v
}

func intPtr(v int) *int {
	return &v
}

func existingTicket(t *testing.T, id uint, assignedTo *uint) *ticket.Ticket {
	t.Helper()
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	tk, err := ticket.ReconstructTicket(ticket.TicketParams{
		ID:           id,
		Status:       vo.StatusOpen,
		Type:         vo.TypeRecruit,
		Priority:     vo.DefaultPriority,
		Title:        "Call volunteer",
		AssignedToID: assignedTo,
		CreatedAt:    now,
		ModifiedAt:   now,
	})
	require.NoError(t, err)
	return tk
}

func ticketStore(tk *ticket.Ticket) *mockTicketRepository {
	return &mockTicketRepository{
		GetByIDFunc: func(_ context.Context, id uint) (*ticket.Ticket, error) {
			if id != tk.ID() {
				return nil, errors.NewNotFoundError("ticket not found")
			}
			return tk, nil
		},
	}
}

func TestClaimTicketUseCase_ClaimsUnassignedTicket(t *testing.T) {
	tk := existingTicket(t, 7, nil)
	repo := ticketStore(tk)
	audits := &mockAuditLogRepository{}
	tx := &mockTransactor{}
	uc := NewClaimTicketUseCase(repo, audits, tx, logger.NewNopLogger())

	result, err := uc.Execute(context.Background(), ClaimTicketCommand{TicketID: 7, ActorID: uintPtr(3)})

	require.NoError(t, err)
	require.NotNil(t, result.AssignedToID)
	assert.Equal(t, uint(3), *result.AssignedToID)
	assert.Equal(t, 1, tx.calls)
	require.Len(t, audits.entries, 1)
	assert.Equal(t, vo.LogClaim, audits.entries[0].LogType)
	assert.Equal(t, uint(3), *audits.entries[0].ActorID)
}

func TestClaimTicketUseCase_ReclaimBySameUserIsIdempotent(t *testing.T) {
	tk := existingTicket(t, 7, uintPtr(3))
	repo := ticketStore(tk)
	audits := &mockAuditLogRepository{}
	uc := NewClaimTicketUseCase(repo, audits, &mockTransactor{}, logger.NewNopLogger())

	_, err := uc.Execute(context.Background(), ClaimTicketCommand{TicketID: 7, ActorID: uintPtr(3)})

	require.NoError(t, err)
	assert.Empty(t, audits.entries)
	assert.Empty(t, repo.updated)
}

func TestClaimTicketUseCase_ClaimedByOtherIsConflict(t *testing.T) {
	tk := existingTicket(t, 7, uintPtr(3))
	uc := NewClaimTicketUseCase(ticketStore(tk), &mockAuditLogRepository{}, &mockTransactor{}, logger.NewNopLogger())

	_, err := uc.Execute(context.Background(), ClaimTicketCommand{TicketID: 7, ActorID: uintPtr(4)})

	require.Error(t, err)
	assert.True(t, errors.IsConflictError(err))
	assert.Equal(t, uint(3), *tk.AssignedToID())
}

func TestClaimTicketUseCase_RequiresActor(t *testing.T) {
	uc := NewClaimTicketUseCase(&mockTicketRepository{}, &mockAuditLogRepository{}, &mockTransactor{}, logger.NewNopLogger())

	_, err := uc.Execute(context.Background(), ClaimTicketCommand{TicketID: 7})

	assert.True(t, errors.IsUnauthorizedError(err))
}

func TestClaimTicketUseCase_MissingTicket(t *testing.T) {
	uc := NewClaimTicketUseCase(&mockTicketRepository{}, &mockAuditLogRepository{}, &mockTransactor{}, logger.NewNopLogger())

	_, err := uc.Execute(context.Background(), ClaimTicketCommand{TicketID: 99, ActorID: uintPtr(1)})

	assert.True(t, errors.IsNotFoundError(err))
}

func TestUnclaimTicketUseCase(t *testing.T) {
	t.Run("other user is forbidden", func(t *testing.T) {
		tk := existingTicket(t, 7, uintPtr(3))
		audits := &mockAuditLogRepository{}
		uc := NewUnclaimTicketUseCase(ticketStore(tk), audits, &mockTransactor{}, logger.NewNopLogger())

		_, err := uc.Execute(context.Background(), UnclaimTicketCommand{TicketID: 7, ActorID: uintPtr(4)})

		require.Error(t, err)
		assert.True(t, errors.IsForbiddenError(err))
		assert.False(t, errors.IsNotFoundError(err))
		assert.Empty(t, audits.entries)
	})

	t.Run("assignee releases the ticket", func(t *testing.T) {
		tk := existingTicket(t, 7, uintPtr(3))
		audits := &mockAuditLogRepository{}
		uc := NewUnclaimTicketUseCase(ticketStore(tk), audits, &mockTransactor{}, logger.NewNopLogger())

		result, err := uc.Execute(context.Background(), UnclaimTicketCommand{TicketID: 7, ActorID: uintPtr(3)})

		require.NoError(t, err)
		assert.Nil(t, result.AssignedToID)
		require.Len(t, audits.entries, 1)
		assert.Equal(t, vo.LogUnclaimed, audits.entries[0].LogType)
	})

	t.Run("unassigned ticket is forbidden", func(t *testing.T) {
		tk := existingTicket(t, 7, nil)
		uc := NewUnclaimTicketUseCase(ticketStore(tk), &mockAuditLogRepository{}, &mockTransactor{}, logger.NewNopLogger())

		_, err := uc.Execute(context.Background(), UnclaimTicketCommand{TicketID: 7, ActorID: uintPtr(3)})

		assert.True(t, errors.IsForbiddenError(err))
	})
}

func TestClaimThenUnclaimByAnotherUser(t *testing.T) {
	tk := existingTicket(t, 1, nil)
	repo := ticketStore(tk)
	audits := &mockAuditLogRepository{}
	claim := NewClaimTicketUseCase(repo, audits, &mockTransactor{}, logger.NewNopLogger())
	unclaim := NewUnclaimTicketUseCase(repo, audits, &mockTransactor{}, logger.NewNopLogger())
	ctx := context.Background()

	_, err := claim.Execute(ctx, ClaimTicketCommand{TicketID: 1, ActorID: uintPtr(10)})
	require.NoError(t, err)

	_, err = unclaim.Execute(ctx, UnclaimTicketCommand{TicketID: 1, ActorID: uintPtr(20)})
	assert.True(t, errors.IsForbiddenError(err))

	_, err = unclaim.Execute(ctx, UnclaimTicketCommand{TicketID: 1, ActorID: uintPtr(10)})
	require.NoError(t, err)
	assert.Nil(t, tk.AssignedToID())
}
