package usecases

import (
	"context"

	"github.com/dggcrm/dggcrm/internal/application/ticket/dto"
)

type CreateTicketExecutor interface {
	Execute(ctx context.Context, cmd CreateTicketCommand) (*dto.TicketDTO, error)
}

type UpdateTicketExecutor interface {
	Execute(ctx context.Context, cmd UpdateTicketCommand) (*dto.TicketDTO, error)
}

type DeleteTicketExecutor interface {
	Execute(ctx context.Context, cmd DeleteTicketCommand) error
}

type GetTicketExecutor interface {
	Execute(ctx context.Context, query GetTicketQuery) (*dto.TicketDTO, error)
}

type ListTicketsExecutor interface {
	Execute(ctx context.Context, query ListTicketsQuery) (*ListTicketsResult, error)
}

type ClaimTicketExecutor interface {
	Execute(ctx context.Context, cmd ClaimTicketCommand) (*dto.TicketDTO, error)
}

type UnclaimTicketExecutor interface {
	Execute(ctx context.Context, cmd UnclaimTicketCommand) (*dto.TicketDTO, error)
}

type AssignTicketExecutor interface {
	Execute(ctx context.Context, cmd AssignTicketCommand) (*dto.TicketDTO, error)
}

type AddCommentExecutor interface {
	Execute(ctx context.Context, cmd AddCommentCommand) (*dto.CommentDTO, error)
}

type ListCommentsExecutor interface {
	Execute(ctx context.Context, query ListCommentsQuery) (*ListCommentsResult, error)
}

type ListAuditLogsExecutor interface {
	Execute(ctx context.Context, query ListAuditLogsQuery) (*ListAuditLogsResult, error)
}

type CreateAskExecutor interface {
	Execute(ctx context.Context, cmd CreateAskCommand) (*dto.AskDTO, error)
}

type ListAsksExecutor interface {
	Execute(ctx context.Context, query ListAsksQuery) ([]*dto.AskDTO, error)
}

type UpdateAskExecutor interface {
	Execute(ctx context.Context, cmd UpdateAskCommand) (*dto.AskDTO, error)
}

type UpdateAskByKeysExecutor interface {
	Execute(ctx context.Context, cmd UpdateAskByKeysCommand) (*dto.AskDTO, error)
}

type GetTimelineExecutor interface {
	Execute(ctx context.Context, query GetTimelineQuery) (*GetTimelineResult, error)
}

type GroupTicketsByContactExecutor interface {
	Execute(ctx context.Context, query GroupTicketsByContactQuery) (*GroupTicketsByContactResult, error)
}

type GetAcceptanceRateExecutor interface {
	Execute(ctx context.Context, query GetAcceptanceRateQuery) (*dto.AcceptanceStatsDTO, error)
}

// AssignmentNotifier tells a user that a ticket was assigned to them.
type AssignmentNotifier interface {
	NotifyTicketAssigned(ctx context.Context, to, assigneeName string, ticketID uint, title string) error
}
