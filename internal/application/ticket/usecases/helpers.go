package usecases

import (
	"context"
	"fmt"

	"github.com/dggcrm/dggcrm/internal/domain/contact"
	"github.com/dggcrm/dggcrm/internal/domain/event"
	"github.com/dggcrm/dggcrm/internal/domain/ticket"
	vo "github.com/dggcrm/dggcrm/internal/domain/ticket/valueobjects"
	"github.com/dggcrm/dggcrm/internal/domain/user"
	"github.com/dggcrm/dggcrm/internal/shared/errors"
)

// appendAudit writes one audit entry using the label of logType as message
// when none is given.
func appendAudit(ctx context.Context, repo ticket.AuditLogRepository, ticketID uint, logType vo.AuditLogType, message string, actorID *uint, data map[string]interface{}) error {
	if message == "" {
		message = logType.Label()
	}
	entry, err := ticket.NewAuditEntry(ticketID, logType, message, actorID, data)
	if err != nil {
		return errors.NewInternalError("failed to build audit entry", err.Error())
	}
	return repo.Append(ctx, entry)
}

// referenceChecker verifies that the rows a ticket points at exist, so that
// a bad reference is a validation error rather than a foreign key failure.
type referenceChecker struct {
	events   event.Repository
	contacts contact.Repository
	users    user.Repository
}

func (r referenceChecker) check(ctx context.Context, eventID, contactID, userID *uint) error {
	if eventID != nil {
		if _, err := r.events.GetByID(ctx, *eventID); err != nil {
			return missingReference(err, "event", *eventID)
		}
	}
	if contactID != nil {
		if _, err := r.contacts.GetByID(ctx, *contactID); err != nil {
			return missingReference(err, "contact", *contactID)
		}
	}
	if userID != nil {
		ok, err := r.users.Exists(ctx, *userID)
		if err != nil {
			return err
		}
		if !ok {
			return errors.NewValidationError(fmt.Sprintf("user %d does not exist", *userID))
		}
	}
	return nil
}

func missingReference(err error, entity string, id uint) error {
	if errors.IsNotFoundError(err) {
		return errors.NewValidationError(fmt.Sprintf("%s %d does not exist", entity, id))
	}
	return err
}

func parseStatus(raw *string) (*vo.TicketStatus, error) {
	if raw == nil {
		return nil, nil
	}
	s, err := vo.NewTicketStatus(*raw)
	if err != nil {
		return nil, errors.NewValidationError("invalid ticket_status", err.Error())
	}
	return &s, nil
}

func parseType(raw *string) (*vo.TicketType, error) {
	if raw == nil {
		return nil, nil
	}
	t, err := vo.NewTicketType(*raw)
	if err != nil {
		return nil, errors.NewValidationError("invalid ticket_type", err.Error())
	}
	return &t, nil
}

func parsePriority(raw *int) (*vo.Priority, error) {
	if raw == nil {
		return nil, nil
	}
	p, err := vo.NewPriority(*raw)
	if err != nil {
		return nil, errors.NewValidationError("invalid priority", err.Error())
	}
	return &p, nil
}

func parseAskStatus(raw *string) (*vo.AskStatus, error) {
	if raw == nil {
		return nil, nil
	}
	s, err := vo.NewAskStatus(*raw)
	if err != nil {
		return nil, errors.NewValidationError("invalid status", err.Error())
	}
	return &s, nil
}
