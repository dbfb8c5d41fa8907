package usecases

import (
	"context"

	"github.com/dggcrm/dggcrm/internal/application/ticket/dto"
	"github.com/dggcrm/dggcrm/internal/domain/contact"
	"github.com/dggcrm/dggcrm/internal/domain/event"
	"github.com/dggcrm/dggcrm/internal/domain/ticket"
	vo "github.com/dggcrm/dggcrm/internal/domain/ticket/valueobjects"
	"github.com/dggcrm/dggcrm/internal/domain/user"
	"github.com/dggcrm/dggcrm/internal/shared/db"
	"github.com/dggcrm/dggcrm/internal/shared/errors"
	"github.com/dggcrm/dggcrm/internal/shared/logger"
)

type CreateTicketCommand struct {
	ActorID      *uint
	Status       *string
	Type         *string
	Priority     *int
	Title        string
	Description  string
	EventID      *uint
	ContactID    *uint
	AssignedToID *uint
}

type CreateTicketUseCase struct {
	ticketRepo ticket.TicketRepository
	auditRepo  ticket.AuditLogRepository
	refs       referenceChecker
	txMgr      db.Transactor
	logger     logger.Interface
}

func NewCreateTicketUseCase(
	ticketRepo ticket.TicketRepository,
	auditRepo ticket.AuditLogRepository,
	eventRepo event.Repository,
	contactRepo contact.Repository,
	userRepo user.Repository,
	txMgr db.Transactor,
	logger logger.Interface,
) *CreateTicketUseCase {
	return &CreateTicketUseCase{
		ticketRepo: ticketRepo,
		auditRepo:  auditRepo,
		refs:       referenceChecker{events: eventRepo, contacts: contactRepo, users: userRepo},
		txMgr:      txMgr,
		logger:     logger,
	}
}

func (uc *CreateTicketUseCase) Execute(ctx context.Context, cmd CreateTicketCommand) (*dto.TicketDTO, error) {
	uc.logger.Infow("executing create ticket use case", "title", cmd.Title, "actor_id", cmd.ActorID)

	params, err := uc.buildParams(cmd)
	if err != nil {
		return nil, err
	}

	newTicket, err := ticket.NewTicket(params)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	err = uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.refs.check(txCtx, cmd.EventID, cmd.ContactID, cmd.AssignedToID); err != nil {
			return err
		}
		if err := uc.ticketRepo.Create(txCtx, newTicket); err != nil {
			return err
		}
		return appendAudit(txCtx, uc.auditRepo, newTicket.ID(), vo.LogCreated, "", cmd.ActorID, map[string]interface{}{
			"ticket_status": newTicket.Status().String(),
			"ticket_type":   newTicket.Type().String(),
			"priority":      newTicket.Priority().Int(),
		})
	})
	if err != nil {
		uc.logger.Errorw("failed to create ticket", "error", err)
		return nil, err
	}

	uc.logger.Infow("ticket created successfully", "ticket_id", newTicket.ID())
	return dto.ToTicketDTO(newTicket), nil
}

func (uc *CreateTicketUseCase) buildParams(cmd CreateTicketCommand) (ticket.TicketParams, error) {
	status, err := parseStatus(cmd.Status)
	if err != nil {
		return ticket.TicketParams{}, err
	}
	ticketType, err := parseType(cmd.Type)
	if err != nil {
		return ticket.TicketParams{}, err
	}
	priority, err := parsePriority(cmd.Priority)
	if err != nil {
		return ticket.TicketParams{}, err
	}

	params := ticket.TicketParams{
		Priority:     vo.DefaultPriority,
		Title:        cmd.Title,
		Description:  cmd.Description,
		EventID:      cmd.EventID,
		ContactID:    cmd.ContactID,
		AssignedToID: cmd.AssignedToID,
		ReportedByID: cmd.ActorID,
	}
	if status != nil {
		params.Status = *status
	}
	if ticketType != nil {
		params.Type = *ticketType
	}
	if priority != nil {
		params.Priority = *priority
	}
	return params, nil
}
