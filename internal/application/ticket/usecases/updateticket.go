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

// UpdateTicketCommand is a partial update. The Clear flags null out a
// reference; they win over a value given for the same field.
type UpdateTicketCommand struct {
	TicketID        uint
	ActorID         *uint
	Status          *string
	Type            *string
	Priority        *int
	Title           *string
	Description     *string
	EventID         *uint
	ClearEvent      bool
	ContactID       *uint
	ClearContact    bool
	AssignedToID    *uint
	ClearAssignedTo bool
}

type UpdateTicketUseCase struct {
	ticketRepo ticket.TicketRepository
	auditRepo  ticket.AuditLogRepository
	refs       referenceChecker
	txMgr      db.Transactor
	logger     logger.Interface
}

func NewUpdateTicketUseCase(
	ticketRepo ticket.TicketRepository,
	auditRepo ticket.AuditLogRepository,
	eventRepo event.Repository,
	contactRepo contact.Repository,
	userRepo user.Repository,
	txMgr db.Transactor,
	logger logger.Interface,
) *UpdateTicketUseCase {
	return &UpdateTicketUseCase{
		ticketRepo: ticketRepo,
		auditRepo:  auditRepo,
		refs:       referenceChecker{events: eventRepo, contacts: contactRepo, users: userRepo},
		txMgr:      txMgr,
		logger:     logger,
	}
}

func (uc *UpdateTicketUseCase) Execute(ctx context.Context, cmd UpdateTicketCommand) (*dto.TicketDTO, error) {
	uc.logger.Infow("executing update ticket use case", "ticket_id", cmd.TicketID, "actor_id", cmd.ActorID)

	patch, err := uc.buildPatch(cmd)
	if err != nil {
		return nil, err
	}

	var updated *ticket.Ticket
	err = uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		t, err := uc.ticketRepo.GetByIDForUpdate(txCtx, cmd.TicketID)
		if err != nil {
			return err
		}
		if err := uc.refs.check(txCtx, patch.EventID, patch.ContactID, patch.AssignedToID); err != nil {
			return err
		}

		changes, err := t.Apply(patch)
		if err != nil {
			return errors.NewValidationError(err.Error())
		}
		updated = t
		if len(changes) == 0 {
			return nil
		}

		if err := uc.ticketRepo.Update(txCtx, t); err != nil {
			return err
		}
		return uc.audit(txCtx, t.ID(), cmd.ActorID, changes)
	})
	if err != nil {
		uc.logger.Errorw("failed to update ticket", "ticket_id", cmd.TicketID, "error", err)
		return nil, err
	}

	uc.logger.Infow("ticket updated successfully", "ticket_id", cmd.TicketID)
	return dto.ToTicketDTO(updated), nil
}

// audit records a status change as STATUS and every other change as one
// UPDATED entry.
func (uc *UpdateTicketUseCase) audit(ctx context.Context, ticketID uint, actorID *uint, changes []ticket.Change) error {
	var rest []ticket.Change
	for _, c := range changes {
		if c.Field != "ticket_status" {
			rest = append(rest, c)
			continue
		}
		data := map[string]interface{}{"from": c.From, "to": c.To}
		if err := appendAudit(ctx, uc.auditRepo, ticketID, vo.LogStatus, "", actorID, data); err != nil {
			return err
		}
	}
	if len(rest) == 0 {
		return nil
	}
	return appendAudit(ctx, uc.auditRepo, ticketID, vo.LogUpdated, "", actorID, ticket.ChangesData(rest))
}

func (uc *UpdateTicketUseCase) buildPatch(cmd UpdateTicketCommand) (ticket.Patch, error) {
	status, err := parseStatus(cmd.Status)
	if err != nil {
		return ticket.Patch{}, err
	}
	ticketType, err := parseType(cmd.Type)
	if err != nil {
		return ticket.Patch{}, err
	}
	priority, err := parsePriority(cmd.Priority)
	if err != nil {
		return ticket.Patch{}, err
	}

	patch := ticket.Patch{
		Status:          status,
		Type:            ticketType,
		Priority:        priority,
		Title:           cmd.Title,
		Description:     cmd.Description,
		EventID:         cmd.EventID,
		ClearEvent:      cmd.ClearEvent,
		ContactID:       cmd.ContactID,
		ClearContact:    cmd.ClearContact,
		AssignedToID:    cmd.AssignedToID,
		ClearAssignedTo: cmd.ClearAssignedTo,
	}
	if patch.ClearEvent {
		patch.EventID = nil
	}
	if patch.ClearContact {
		patch.ContactID = nil
	}
	if patch.ClearAssignedTo {
		patch.AssignedToID = nil
	}
	return patch, nil
}
