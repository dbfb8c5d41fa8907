package usecases

import (
	"context"
	"time"

	"github.com/dggcrm/dggcrm/internal/application/ticket/dto"
	"github.com/dggcrm/dggcrm/internal/domain/ticket"
	"github.com/dggcrm/dggcrm/internal/shared/errors"
	"github.com/dggcrm/dggcrm/internal/shared/logger"
	"github.com/dggcrm/dggcrm/internal/shared/query"
)

type GetTicketQuery struct {
	TicketID uint
}

type GetTicketUseCase struct {
	ticketRepo ticket.TicketRepository
	logger     logger.Interface
}

func NewGetTicketUseCase(ticketRepo ticket.TicketRepository, logger logger.Interface) *GetTicketUseCase {
	return &GetTicketUseCase{
		ticketRepo: ticketRepo,
		logger:     logger,
	}
}

func (uc *GetTicketUseCase) Execute(ctx context.Context, q GetTicketQuery) (*dto.TicketDTO, error) {
	t, err := uc.ticketRepo.GetByID(ctx, q.TicketID)
	if err != nil {
		return nil, err
	}
	return dto.ToTicketDTO(t), nil
}

type DeleteTicketCommand struct {
	TicketID uint
	ActorID  *uint
}

type DeleteTicketUseCase struct {
	ticketRepo ticket.TicketRepository
	logger     logger.Interface
}

func NewDeleteTicketUseCase(ticketRepo ticket.TicketRepository, logger logger.Interface) *DeleteTicketUseCase {
	return &DeleteTicketUseCase{
		ticketRepo: ticketRepo,
		logger:     logger,
	}
}

func (uc *DeleteTicketUseCase) Execute(ctx context.Context, cmd DeleteTicketCommand) error {
	if err := uc.ticketRepo.Delete(ctx, cmd.TicketID); err != nil {
		uc.logger.Errorw("failed to delete ticket", "ticket_id", cmd.TicketID, "error", err)
		return err
	}
	uc.logger.Infow("ticket deleted", "ticket_id", cmd.TicketID, "actor_id", cmd.ActorID)
	return nil
}

type ListTicketsQuery struct {
	query.BaseFilter
	Search        string
	Status        *string
	Type          *string
	Priority      *int
	AssignedToID  *uint
	ReportedByID  *uint
	EventID       *uint
	ContactID     *uint
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
}

type ListTicketsResult struct {
	Tickets  []*dto.TicketDTO
	Total    int64
	Page     int
	PageSize int
}

type ListTicketsUseCase struct {
	ticketRepo ticket.TicketRepository
	logger     logger.Interface
}

func NewListTicketsUseCase(ticketRepo ticket.TicketRepository, logger logger.Interface) *ListTicketsUseCase {
	return &ListTicketsUseCase{
		ticketRepo: ticketRepo,
		logger:     logger,
	}
}

func (uc *ListTicketsUseCase) Execute(ctx context.Context, q ListTicketsQuery) (*ListTicketsResult, error) {
	status, err := parseStatus(q.Status)
	if err != nil {
		return nil, err
	}
	ticketType, err := parseType(q.Type)
	if err != nil {
		return nil, err
	}
	priority, err := parsePriority(q.Priority)
	if err != nil {
		return nil, err
	}
	if q.CreatedAfter != nil && q.CreatedBefore != nil && q.CreatedBefore.Before(*q.CreatedAfter) {
		return nil, errors.NewValidationError("created_before is before created_after")
	}

	filter := ticket.TicketFilter{
		BaseFilter:    q.BaseFilter,
		Query:         q.Search,
		Status:        status,
		Type:          ticketType,
		Priority:      priority,
		AssignedToID:  q.AssignedToID,
		ReportedByID:  q.ReportedByID,
		EventID:       q.EventID,
		ContactID:     q.ContactID,
		CreatedAfter:  q.CreatedAfter,
		CreatedBefore: q.CreatedBefore,
	}
	tickets, total, err := uc.ticketRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list tickets", "error", err)
		return nil, err
	}

	return &ListTicketsResult{
		Tickets:  dto.ToTicketDTOs(tickets),
		Total:    total,
		Page:     pageNumber(q.PageFilter),
		PageSize: q.Limit(),
	}, nil
}

// pageNumber is the 1-based page actually served.
func pageNumber(p query.PageFilter) int {
	if p.Page < 1 {
		return 1
	}
	return p.Page
}
