package usecases

import (
	"context"
	stderrors "errors"

	"github.com/dggcrm/dggcrm/internal/application/ticket/dto"
	"github.com/dggcrm/dggcrm/internal/domain/ticket"
	vo "github.com/dggcrm/dggcrm/internal/domain/ticket/valueobjects"
	"github.com/dggcrm/dggcrm/internal/shared/db"
	"github.com/dggcrm/dggcrm/internal/shared/errors"
	"github.com/dggcrm/dggcrm/internal/shared/logger"
)

type ClaimTicketCommand struct {
	TicketID uint
	ActorID  *uint
}

type ClaimTicketUseCase struct {
	ticketRepo ticket.TicketRepository
	auditRepo  ticket.AuditLogRepository
	txMgr      db.Transactor
	logger     logger.Interface
}

func NewClaimTicketUseCase(
	ticketRepo ticket.TicketRepository,
	auditRepo ticket.AuditLogRepository,
	txMgr db.Transactor,
	logger logger.Interface,
) *ClaimTicketUseCase {
	return &ClaimTicketUseCase{
		ticketRepo: ticketRepo,
		auditRepo:  auditRepo,
		txMgr:      txMgr,
		logger:     logger,
	}
}

// Execute assigns the ticket to the actor. Claiming a ticket the actor
// already holds succeeds without a new audit entry; claiming one held by
// someone else is a conflict until it is released.
func (uc *ClaimTicketUseCase) Execute(ctx context.Context, cmd ClaimTicketCommand) (*dto.TicketDTO, error) {
	if cmd.ActorID == nil {
		return nil, errors.NewUnauthorizedError("authentication required to claim a ticket")
	}
	actorID := *cmd.ActorID

	var claimed *ticket.Ticket
	err := uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		t, err := uc.ticketRepo.GetByIDForUpdate(txCtx, cmd.TicketID)
		if err != nil {
			return err
		}

		changed, err := t.Claim(actorID)
		if err != nil {
			if stderrors.Is(err, ticket.ErrClaimedByOther) {
				return errors.NewConflictError(err.Error())
			}
			return err
		}
		claimed = t
		if !changed {
			return nil
		}

		if err := uc.ticketRepo.Update(txCtx, t); err != nil {
			return err
		}
		return appendAudit(txCtx, uc.auditRepo, t.ID(), vo.LogClaim, "", cmd.ActorID, map[string]interface{}{
			"assigned_to": actorID,
		})
	})
	if err != nil {
		uc.logger.Warnw("failed to claim ticket", "ticket_id", cmd.TicketID, "actor_id", actorID, "error", err)
		return nil, err
	}

	uc.logger.Infow("ticket claimed", "ticket_id", cmd.TicketID, "actor_id", actorID)
	return dto.ToTicketDTO(claimed), nil
}

type UnclaimTicketCommand struct {
	TicketID uint
	ActorID  *uint
}

type UnclaimTicketUseCase struct {
	ticketRepo ticket.TicketRepository
	auditRepo  ticket.AuditLogRepository
	txMgr      db.Transactor
	logger     logger.Interface
}

func NewUnclaimTicketUseCase(
	ticketRepo ticket.TicketRepository,
	auditRepo ticket.AuditLogRepository,
	txMgr db.Transactor,
	logger logger.Interface,
) *UnclaimTicketUseCase {
	return &UnclaimTicketUseCase{
		ticketRepo: ticketRepo,
		auditRepo:  auditRepo,
		txMgr:      txMgr,
		logger:     logger,
	}
}

func (uc *UnclaimTicketUseCase) Execute(ctx context.Context, cmd UnclaimTicketCommand) (*dto.TicketDTO, error) {
	if cmd.ActorID == nil {
		return nil, errors.NewUnauthorizedError("authentication required to unclaim a ticket")
	}
	actorID := *cmd.ActorID

	var released *ticket.Ticket
	err := uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		t, err := uc.ticketRepo.GetByIDForUpdate(txCtx, cmd.TicketID)
		if err != nil {
			return err
		}
		if err := t.Unclaim(actorID); err != nil {
			if stderrors.Is(err, ticket.ErrNotAssignee) {
				return errors.NewForbiddenError(err.Error())
			}
			return err
		}
		released = t

		if err := uc.ticketRepo.Update(txCtx, t); err != nil {
			return err
		}
		return appendAudit(txCtx, uc.auditRepo, t.ID(), vo.LogUnclaimed, "", cmd.ActorID, map[string]interface{}{
			"previous_assignee": actorID,
		})
	})
	if err != nil {
		uc.logger.Warnw("failed to unclaim ticket", "ticket_id", cmd.TicketID, "actor_id", actorID, "error", err)
		return nil, err
	}

	uc.logger.Infow("ticket unclaimed", "ticket_id", cmd.TicketID, "actor_id", actorID)
	return dto.ToTicketDTO(released), nil
}
