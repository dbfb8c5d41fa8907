package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dggcrm/dggcrm/internal/domain/contact"
	"github.com/dggcrm/dggcrm/internal/domain/shared"
	"github.com/dggcrm/dggcrm/internal/domain/ticket"
	vo "github.com/dggcrm/dggcrm/internal/domain/ticket/valueobjects"
	"github.com/dggcrm/dggcrm/internal/shared/constants"
	"github.com/dggcrm/dggcrm/internal/shared/errors"
	"github.com/dggcrm/dggcrm/internal/shared/logger"
	"github.com/dggcrm/dggcrm/internal/shared/services/markdown"
)

func TestGetTimelineUseCase_MergesThenPages(t *testing.T) {
	tk := existingTicket(t, 1, nil)
	base := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

	audits := &mockAuditLogRepository{}
	for i, lt := range []vo.AuditLogType{vo.LogCreated, vo.LogClaim} {
		e, err := ticket.NewAuditEntry(1, lt, lt.Label(), uintPtr(2), nil)
		require.NoError(t, err)
		e.CreatedAt = base.Add(time.Duration(i*2) * time.Minute)
		require.NoError(t, audits.Append(context.Background(), e))
	}
	comments := &mockCommentRepository{}
	c, err := ticket.NewComment(1, nil, "**called** them")
	require.NoError(t, err)
	c.CreatedAt = base.Add(time.Minute)
	require.NoError(t, comments.Create(context.Background(), c))

	uc := NewGetTimelineUseCase(ticketStore(tk), audits, comments, markdown.NewMarkdownService(), logger.NewNopLogger())

	q := GetTimelineQuery{TicketID: 1}
	q.PageSize = 2
	result, err := uc.Execute(context.Background(), q)
	require.NoError(t, err)
	assert.Equal(t, int64(3), result.Total)
	require.Len(t, result.Items, 2)
	assert.Equal(t, "audit", result.Items[0].Type)
	assert.Equal(t, "CLAIM", result.Items[0].LogType)
	assert.Equal(t, "comment", result.Items[1].Type)
	assert.Equal(t, constants.SystemActorDisplay, result.Items[1].ActorDisplay)
	assert.Contains(t, result.Items[1].MessageHTML, "<strong>called</strong>")

	q.Page = 2
	result, err = uc.Execute(context.Background(), q)
	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	assert.Equal(t, "CREATED", result.Items[0].LogType)
}

func TestGetTimelineUseCase_Modes(t *testing.T) {
	tk := existingTicket(t, 1, nil)
	audits := &mockAuditLogRepository{}
	e, err := ticket.NewAuditEntry(1, vo.LogCreated, "", nil, nil)
	require.NoError(t, err)
	require.NoError(t, audits.Append(context.Background(), e))
	comments := &mockCommentRepository{}
	c, err := ticket.NewComment(1, uintPtr(4), "hi")
	require.NoError(t, err)
	require.NoError(t, comments.Create(context.Background(), c))

	uc := NewGetTimelineUseCase(ticketStore(tk), audits, comments, markdown.NewMarkdownService(), logger.NewNopLogger())

	result, err := uc.Execute(context.Background(), GetTimelineQuery{TicketID: 1, Mode: "comments"})
	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	assert.Equal(t, "comment", result.Items[0].Type)

	result, err = uc.Execute(context.Background(), GetTimelineQuery{TicketID: 1, Mode: "audit"})
	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	assert.Equal(t, "audit", result.Items[0].Type)

	_, err = uc.Execute(context.Background(), GetTimelineQuery{TicketID: 1, Mode: "everything"})
	assert.True(t, errors.IsValidationError(err))
}

func TestGroupTicketsByContactUseCase(t *testing.T) {
	var got ticket.ContactTicketCountFilter
	repo := &mockTicketRepository{
		CountByContactFunc: func(_ context.Context, f ticket.ContactTicketCountFilter) ([]shared.ContactCount, int64, error) {
			got = f
			return []shared.ContactCount{
				{ContactID: 4, FullName: "Jane Doe", Count: 5},
				{ContactID: 2, FullName: "John Roe", Count: 2},
			}, 2, nil
		},
	}
	uc := NewGroupTicketsByContactUseCase(repo, logger.NewNopLogger())

	result, err := uc.Execute(context.Background(), GroupTicketsByContactQuery{MinTickets: intPtr(2), MaxTickets: intPtr(5)})

	require.NoError(t, err)
	assert.Equal(t, vo.StatusCompleted, got.Status)
	assert.Equal(t, int64(2), got.Bounds.Min)
	assert.Equal(t, int64(5), *got.Bounds.Max)
	require.Len(t, result.Rows, 2)
	assert.Equal(t, int64(5), result.Rows[0].TicketCount)
	assert.Equal(t, "Jane Doe", result.Rows[0].FullName)
}

func TestGroupTicketsByContactUseCase_Validation(t *testing.T) {
	uc := NewGroupTicketsByContactUseCase(&mockTicketRepository{}, logger.NewNopLogger())
	later := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	earlier := later.AddDate(0, -1, 0)

	tests := []GroupTicketsByContactQuery{
		{Status: "done"},
		{Type: strPtr("x")},
		{MinTickets: intPtr(5), MaxTickets: intPtr(2)},
		{MinDate: &later, MaxDate: &earlier},
	}
	for _, q := range tests {
		_, err := uc.Execute(context.Background(), q)
		assert.True(t, errors.IsValidationError(err), "query %+v", q)
	}
}

func TestGetAcceptanceRateUseCase(t *testing.T) {
	contacts := &mockContactRepository{
		GetByIDFunc: func(_ context.Context, id uint) (*contact.Contact, error) {
			if id != 1 {
				return nil, errors.NewNotFoundError("contact not found")
			}
			return contact.NewContact(contact.Fields{FullName: "Jane Doe"})
		},
	}
	asks := &mockAskRepository{
		CountOutcomesFunc: func(context.Context, uint) ([]ticket.AskOutcomeCount, error) {
			return []ticket.AskOutcomeCount{
				{Type: vo.TypeRecruit, Status: vo.AskAgreed, Count: 2},
				{Type: vo.TypeRecruit, Status: vo.AskGhosted, Count: 1},
			}, nil
		},
	}
	uc := NewGetAcceptanceRateUseCase(contacts, asks, logger.NewNopLogger())

	result, err := uc.Execute(context.Background(), GetAcceptanceRateQuery{ContactID: 1})
	require.NoError(t, err)

	byType := map[string]float64{}
	for _, r := range result.Rates {
		byType[r.TicketType] = r.AcceptancePercentage
	}
	assert.Equal(t, 66.67, byType["RECRUIT"])
	assert.Equal(t, constants.AcceptanceRateNeverOffered, byType["CONFIRM"])
	assert.Equal(t, 66.67, byType[ticket.OverallRateKey])

	_, err = uc.Execute(context.Background(), GetAcceptanceRateQuery{ContactID: 2})
	assert.True(t, errors.IsNotFoundError(err))
}
