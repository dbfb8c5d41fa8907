package ticket

import (
	"context"
	"time"

	"github.com/dggcrm/dggcrm/internal/domain/shared"
	vo "github.com/dggcrm/dggcrm/internal/domain/ticket/valueobjects"
	"github.com/dggcrm/dggcrm/internal/shared/query"
)

type TicketRepository interface {
	Create(ctx context.Context, t *Ticket) error
	Update(ctx context.Context, t *Ticket) error
	Delete(ctx context.Context, id uint) error
	GetByID(ctx context.Context, id uint) (*Ticket, error)
	// GetByIDForUpdate locks the row for the rest of the transaction where
	// the database supports it.
	GetByIDForUpdate(ctx context.Context, id uint) (*Ticket, error)
	List(ctx context.Context, filter TicketFilter) ([]*Ticket, int64, error)
	CountByContact(ctx context.Context, filter ContactTicketCountFilter) ([]shared.ContactCount, int64, error)
}

// TicketFilter lists tickets. Query matches title/description, or the ID
// when it is all digits.
type TicketFilter struct {
	query.BaseFilter
	Query         string
	Status        *vo.TicketStatus
	Type          *vo.TicketType
	Priority      *vo.Priority
	AssignedToID  *uint
	ReportedByID  *uint
	EventID       *uint
	ContactID     *uint
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
}

// ContactTicketCountFilter counts, per contact, the tickets in Status among
// that contact's tickets (optionally of Type, created within Dates).
type ContactTicketCountFilter struct {
	shared.GroupByContactFilter
	Status vo.TicketStatus
	Type   *vo.TicketType
}

type CommentRepository interface {
	Create(ctx context.Context, c *Comment) error
	ListByTicket(ctx context.Context, ticketID uint, page query.PageFilter) ([]*Comment, int64, error)
	ListAllByTicket(ctx context.Context, ticketID uint) ([]*Comment, error)
}

type AskRepository interface {
	Create(ctx context.Context, a *Ask) error
	Update(ctx context.Context, a *Ask) error
	GetByID(ctx context.Context, id uint) (*Ask, error)
	// FindLatest returns the newest ask for the pair, or a not-found error.
	FindLatest(ctx context.Context, ticketID, contactID uint) (*Ask, error)
	ListByTicket(ctx context.Context, ticketID uint) ([]*Ask, error)
	CountOutcomes(ctx context.Context, contactID uint) ([]AskOutcomeCount, error)
}

type AuditLogRepository interface {
	Append(ctx context.Context, e *AuditEntry) error
	ListByTicket(ctx context.Context, ticketID uint, page query.PageFilter) ([]*AuditEntry, int64, error)
	ListAllByTicket(ctx context.Context, ticketID uint) ([]*AuditEntry, error)
}
