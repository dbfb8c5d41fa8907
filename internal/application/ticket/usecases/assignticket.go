package usecases

import (
	"context"
	"time"

	"github.com/dggcrm/dggcrm/internal/application/ticket/dto"
	"github.com/dggcrm/dggcrm/internal/domain/ticket"
	vo "github.com/dggcrm/dggcrm/internal/domain/ticket/valueobjects"
	"github.com/dggcrm/dggcrm/internal/domain/user"
	"github.com/dggcrm/dggcrm/internal/shared/db"
	"github.com/dggcrm/dggcrm/internal/shared/errors"
	"github.com/dggcrm/dggcrm/internal/shared/goroutine"
	"github.com/dggcrm/dggcrm/internal/shared/logger"
)

const notifyTimeout = 30 * time.Second

// AssignTicketCommand sets the assignee. AssignedToPresent reports whether
// the field was in the request at all; a present null unassigns.
type AssignTicketCommand struct {
	TicketID          uint
	ActorID           *uint
	AssignedToPresent bool
	AssignedToID      *uint
}

type AssignTicketUseCase struct {
	ticketRepo ticket.TicketRepository
	userRepo   user.Repository
	auditRepo  ticket.AuditLogRepository
	txMgr      db.Transactor
	notifier   AssignmentNotifier
	logger     logger.Interface
}

func NewAssignTicketUseCase(
	ticketRepo ticket.TicketRepository,
	userRepo user.Repository,
	auditRepo ticket.AuditLogRepository,
	txMgr db.Transactor,
	notifier AssignmentNotifier,
	logger logger.Interface,
) *AssignTicketUseCase {
	return &AssignTicketUseCase{
		ticketRepo: ticketRepo,
		userRepo:   userRepo,
		auditRepo:  auditRepo,
		txMgr:      txMgr,
		notifier:   notifier,
		logger:     logger,
	}
}

func (uc *AssignTicketUseCase) Execute(ctx context.Context, cmd AssignTicketCommand) (*dto.TicketDTO, error) {
	uc.logger.Infow("executing assign ticket use case", "ticket_id", cmd.TicketID, "assigned_to", cmd.AssignedToID)

	if !cmd.AssignedToPresent {
		return nil, errors.NewValidationError("assigned_to is required")
	}

	var (
		assigned *ticket.Ticket
		assignee *user.User
		changed  bool
	)
	err := uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		t, err := uc.ticketRepo.GetByIDForUpdate(txCtx, cmd.TicketID)
		if err != nil {
			return err
		}
		if cmd.AssignedToID != nil {
			u, err := uc.userRepo.GetByID(txCtx, *cmd.AssignedToID)
			if err != nil {
				return err
			}
			assignee = u
		}

		previous := t.AssignTo(cmd.AssignedToID)
		assigned = t
		if sameAssignee(previous, cmd.AssignedToID) {
			return nil
		}
		changed = true

		if err := uc.ticketRepo.Update(txCtx, t); err != nil {
			return err
		}
		return appendAudit(txCtx, uc.auditRepo, t.ID(), vo.LogAssigned, "", cmd.ActorID, map[string]interface{}{
			"from": uintOrNil(previous),
			"to":   uintOrNil(cmd.AssignedToID),
		})
	})
	if err != nil {
		uc.logger.Errorw("failed to assign ticket", "ticket_id", cmd.TicketID, "error", err)
		return nil, err
	}

	if changed && assignee != nil {
		uc.notify(assignee, assigned)
	}

	uc.logger.Infow("ticket assignment updated", "ticket_id", cmd.TicketID, "assigned_to", cmd.AssignedToID)
	return dto.ToTicketDTO(assigned), nil
}

// notify sends the assignment mail in the background; a delivery failure is
// logged and never fails the request.
func (uc *AssignTicketUseCase) notify(assignee *user.User, t *ticket.Ticket) {
	if uc.notifier == nil || assignee.Email() == "" {
		return
	}
	to, name, ticketID, title := assignee.Email(), assignee.DisplayName(), t.ID(), t.Title()
	goroutine.SafeGo(uc.logger, "ticket-assignment-notify", func() {
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()
		if err := uc.notifier.NotifyTicketAssigned(ctx, to, name, ticketID, title); err != nil {
			uc.logger.Warnw("failed to send assignment notification", "ticket_id", ticketID, "error", err)
		}
	})
}

func sameAssignee(a, b *uint) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func uintOrNil(v *uint) interface{} {
	if v == nil {
		return nil
	}
	return *v
}
