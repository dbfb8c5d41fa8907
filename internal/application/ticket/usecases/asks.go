package usecases

import (
	"context"
	"fmt"

	"github.com/dggcrm/dggcrm/internal/application/ticket/dto"
	"github.com/dggcrm/dggcrm/internal/domain/contact"
	"github.com/dggcrm/dggcrm/internal/domain/ticket"
	vo "github.com/dggcrm/dggcrm/internal/domain/ticket/valueobjects"
	"github.com/dggcrm/dggcrm/internal/shared/db"
	"github.com/dggcrm/dggcrm/internal/shared/errors"
	"github.com/dggcrm/dggcrm/internal/shared/logger"
)

type CreateAskCommand struct {
	TicketID  uint
	ActorID   *uint
	ContactID *uint
	Status    *string
	Notes     string
}

type CreateAskUseCase struct {
	ticketRepo  ticket.TicketRepository
	askRepo     ticket.AskRepository
	contactRepo contact.Repository
	logger      logger.Interface
}

func NewCreateAskUseCase(
	ticketRepo ticket.TicketRepository,
	askRepo ticket.AskRepository,
	contactRepo contact.Repository,
	logger logger.Interface,
) *CreateAskUseCase {
	return &CreateAskUseCase{
		ticketRepo:  ticketRepo,
		askRepo:     askRepo,
		contactRepo: contactRepo,
		logger:      logger,
	}
}

func (uc *CreateAskUseCase) Execute(ctx context.Context, cmd CreateAskCommand) (*dto.AskDTO, error) {
	status, err := parseAskStatus(cmd.Status)
	if err != nil {
		return nil, err
	}

	if _, err := uc.ticketRepo.GetByID(ctx, cmd.TicketID); err != nil {
		return nil, err
	}
	if cmd.ContactID != nil {
		if _, err := uc.contactRepo.GetByID(ctx, *cmd.ContactID); err != nil {
			return nil, missingReference(err, "contact", *cmd.ContactID)
		}
	}

	var initial vo.AskStatus
	if status != nil {
		initial = *status
	}
	ask, err := ticket.NewAsk(cmd.TicketID, cmd.ContactID, initial, cmd.Notes)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if err := uc.askRepo.Create(ctx, ask); err != nil {
		uc.logger.Errorw("failed to create ask", "ticket_id", cmd.TicketID, "error", err)
		return nil, err
	}

	uc.logger.Infow("ask created", "ticket_id", cmd.TicketID, "ask_id", ask.ID, "actor_id", cmd.ActorID)
	return dto.ToAskDTO(ask), nil
}

type ListAsksQuery struct {
	TicketID uint
}

type ListAsksUseCase struct {
	ticketRepo ticket.TicketRepository
	askRepo    ticket.AskRepository
	logger     logger.Interface
}

func NewListAsksUseCase(ticketRepo ticket.TicketRepository, askRepo ticket.AskRepository, logger logger.Interface) *ListAsksUseCase {
	return &ListAsksUseCase{
		ticketRepo: ticketRepo,
		askRepo:    askRepo,
		logger:     logger,
	}
}

func (uc *ListAsksUseCase) Execute(ctx context.Context, q ListAsksQuery) ([]*dto.AskDTO, error) {
	if _, err := uc.ticketRepo.GetByID(ctx, q.TicketID); err != nil {
		return nil, err
	}
	asks, err := uc.askRepo.ListByTicket(ctx, q.TicketID)
	if err != nil {
		uc.logger.Errorw("failed to list asks", "ticket_id", q.TicketID, "error", err)
		return nil, err
	}
	return dto.ToAskDTOs(asks), nil
}

// respondToAsk applies a response and records CONTACT_RESPONSE when the
// status moved. It must run inside a transaction.
func respondToAsk(ctx context.Context, askRepo ticket.AskRepository, auditRepo ticket.AuditLogRepository, ask *ticket.Ask, actorID *uint, status *vo.AskStatus, notes *string) error {
	previous, err := ask.Respond(status, notes)
	if err != nil {
		return errors.NewValidationError(err.Error())
	}
	if err := askRepo.Update(ctx, ask); err != nil {
		return err
	}
	if previous == ask.Status {
		return nil
	}

	data := map[string]interface{}{
		"ask_id": ask.ID,
		"from":   previous.String(),
		"to":     ask.Status.String(),
	}
	message := fmt.Sprintf("%s: %s", vo.LogContactResponse.Label(), ask.Status.Label())
	if ask.ContactID != nil {
		data["contact_id"] = *ask.ContactID
	}
	return appendAudit(ctx, auditRepo, ask.TicketID, vo.LogContactResponse, message, actorID, data)
}

type UpdateAskCommand struct {
	TicketID uint
	AskID    uint
	ActorID  *uint
	Status   *string
	Notes    *string
}

type UpdateAskUseCase struct {
	askRepo   ticket.AskRepository
	auditRepo ticket.AuditLogRepository
	txMgr     db.Transactor
	logger    logger.Interface
}

func NewUpdateAskUseCase(
	askRepo ticket.AskRepository,
	auditRepo ticket.AuditLogRepository,
	txMgr db.Transactor,
	logger logger.Interface,
) *UpdateAskUseCase {
	return &UpdateAskUseCase{
		askRepo:   askRepo,
		auditRepo: auditRepo,
		txMgr:     txMgr,
		logger:    logger,
	}
}

func (uc *UpdateAskUseCase) Execute(ctx context.Context, cmd UpdateAskCommand) (*dto.AskDTO, error) {
	status, err := parseAskStatus(cmd.Status)
	if err != nil {
		return nil, err
	}

	var updated *ticket.Ask
	err = uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		ask, err := uc.askRepo.GetByID(txCtx, cmd.AskID)
		if err != nil {
			return err
		}
		if ask.TicketID != cmd.TicketID {
			return errors.NewNotFoundError("ask not found")
		}
		updated = ask
		return respondToAsk(txCtx, uc.askRepo, uc.auditRepo, ask, cmd.ActorID, status, cmd.Notes)
	})
	if err != nil {
		uc.logger.Errorw("failed to update ask", "ask_id", cmd.AskID, "error", err)
		return nil, err
	}
	return dto.ToAskDTO(updated), nil
}

// UpdateAskByKeysCommand identifies an ask by ticket and contact instead of
// its own ID. All three fields are required.
type UpdateAskByKeysCommand struct {
	ActorID   *uint
	TicketID  *uint
	ContactID *uint
	Status    *string
}

type UpdateAskByKeysUseCase struct {
	askRepo   ticket.AskRepository
	auditRepo ticket.AuditLogRepository
	txMgr     db.Transactor
	logger    logger.Interface
}

func NewUpdateAskByKeysUseCase(
	askRepo ticket.AskRepository,
	auditRepo ticket.AuditLogRepository,
	txMgr db.Transactor,
	logger logger.Interface,
) *UpdateAskByKeysUseCase {
	return &UpdateAskByKeysUseCase{
		askRepo:   askRepo,
		auditRepo: auditRepo,
		txMgr:     txMgr,
		logger:    logger,
	}
}

// Execute updates the newest ask for the pair. A missing pair is not found;
// no ask is ever created here.
func (uc *UpdateAskByKeysUseCase) Execute(ctx context.Context, cmd UpdateAskByKeysCommand) (*dto.AskDTO, error) {
	if cmd.TicketID == nil || cmd.ContactID == nil || cmd.Status == nil {
		return nil, errors.NewValidationError("ticket_id, contact_id and status are required")
	}
	status, err := parseAskStatus(cmd.Status)
	if err != nil {
		return nil, err
	}

	var updated *ticket.Ask
	err = uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		ask, err := uc.askRepo.FindLatest(txCtx, *cmd.TicketID, *cmd.ContactID)
		if err != nil {
			return err
		}
		updated = ask
		return respondToAsk(txCtx, uc.askRepo, uc.auditRepo, ask, cmd.ActorID, status, nil)
	})
	if err != nil {
		uc.logger.Warnw("failed to update ask by keys",
			"ticket_id", *cmd.TicketID,
			"contact_id", *cmd.ContactID,
			"error", err)
		return nil, err
	}

	uc.logger.Infow("ask updated by keys", "ask_id", updated.ID, "status", updated.Status)
	return dto.ToAskDTO(updated), nil
}
