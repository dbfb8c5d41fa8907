package ticket

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	vo "github.com/dggcrm/dggcrm/internal/domain/ticket/valueobjects"
	"github.com/dggcrm/dggcrm/internal/shared/biztime"
)

const maxTitleLength = 255

var (
	// ErrClaimedByOther is returned when claiming a ticket someone else holds.
	ErrClaimedByOther = errors.New("ticket is already claimed by another user")
	// ErrNotAssignee is returned when a user other than the assignee unclaims.
	ErrNotAssignee = errors.New("only the current assignee can unclaim this ticket")
)

type Ticket struct {
	id           uint
	status       vo.TicketStatus
	ticketType   vo.TicketType
	priority     vo.Priority
	title        string
	description  string
	eventID      *uint
	contactID    *uint
	assignedToID *uint
	reportedByID *uint
	createdAt    time.Time
	modifiedAt   time.Time
}

// TicketParams carries every persisted field; used by NewTicket (ID and
// timestamps ignored) and ReconstructTicket.
type TicketParams struct {
	ID           uint
	Status       vo.TicketStatus
	Type         vo.TicketType
	Priority     vo.Priority
	Title        string
	Description  string
	EventID      *uint
	ContactID    *uint
	AssignedToID *uint
	ReportedByID *uint
	CreatedAt    time.Time
	ModifiedAt   time.Time
}

// NewTicket validates p and fills defaults for empty status and type.
func NewTicket(p TicketParams) (*Ticket, error) {
	if p.Status == "" {
		p.Status = vo.StatusOpen
	}
	if p.Type == "" {
		p.Type = vo.TypeUnknown
	}
	if err := validateFields(p.Status, p.Type, p.Priority, p.Title); err != nil {
		return nil, err
	}

	now := biztime.NowUTC()
	return &Ticket{
		status:       p.Status,
		ticketType:   p.Type,
		priority:     p.Priority,
		title:        strings.TrimSpace(p.Title),
		description:  p.Description,
		eventID:      p.EventID,
		contactID:    p.ContactID,
		assignedToID: p.AssignedToID,
		reportedByID: p.ReportedByID,
		createdAt:    now,
		modifiedAt:   now,
	}, nil
}

func ReconstructTicket(p TicketParams) (*Ticket, error) {
	if p.ID == 0 {
		return nil, fmt.Errorf("ticket ID cannot be zero")
	}
	if err := validateFields(p.Status, p.Type, p.Priority, p.Title); err != nil {
		return nil, err
	}
	return &Ticket{
		id:           p.ID,
		status:       p.Status,
		ticketType:   p.Type,
		priority:     p.Priority,
		title:        p.Title,
		description:  p.Description,
		eventID:      p.EventID,
		contactID:    p.ContactID,
		assignedToID: p.AssignedToID,
		reportedByID: p.ReportedByID,
		createdAt:    p.CreatedAt,
		modifiedAt:   p.ModifiedAt,
	}, nil
}

func validateFields(status vo.TicketStatus, ticketType vo.TicketType, priority vo.Priority, title string) error {
	if !status.IsValid() {
		return fmt.Errorf("invalid ticket status: %s", status)
	}
	if !ticketType.IsValid() {
		return fmt.Errorf("invalid ticket type: %s", ticketType)
	}
	if !priority.IsValid() {
		return fmt.Errorf("priority must be between %d and %d", vo.MinPriority, vo.MaxPriority)
	}
	if utf8.RuneCountInString(title) > maxTitleLength {
		return fmt.Errorf("title exceeds maximum length of %d characters", maxTitleLength)
	}
	return nil
}

func (t *Ticket) ID() uint {
	return t.id
}

func (t *Ticket) Status() vo.TicketStatus {
	return t.status
}

func (t *Ticket) Type() vo.TicketType {
	return t.ticketType
}

func (t *Ticket) Priority() vo.Priority {
	return t.priority
}

func (t *Ticket) Title() string {
	return t.title
}

func (t *Ticket) Description() string {
	return t.description
}

func (t *Ticket) EventID() *uint {
	return t.eventID
}

func (t *Ticket) ContactID() *uint {
	return t.contactID
}

func (t *Ticket) AssignedToID() *uint {
	return t.assignedToID
}

func (t *Ticket) ReportedByID() *uint {
	return t.reportedByID
}

func (t *Ticket) CreatedAt() time.Time {
	return t.createdAt
}

func (t *Ticket) ModifiedAt() time.Time {
	return t.modifiedAt
}

func (t *Ticket) SetID(id uint) error {
	if t.id != 0 {
		return fmt.Errorf("ticket ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("ticket ID cannot be zero")
	}
	t.id = id
	return nil
}

// IsAssignedTo reports whether userID currently holds the ticket.
func (t *Ticket) IsAssignedTo(userID uint) bool {
	return t.assignedToID != nil && *t.assignedToID == userID
}

// Claim assigns the ticket to actorID. It returns changed=false when the
// actor already holds it, and ErrClaimedByOther when another user does.
func (t *Ticket) Claim(actorID uint) (changed bool, err error) {
	if t.assignedToID != nil {
		if *t.assignedToID == actorID {
			return false, nil
		}
		return false, ErrClaimedByOther
	}
	id := actorID
	t.assignedToID = &id
	t.touch()
	return true, nil
}

// Unclaim releases the ticket. Only the current assignee may do so.
func (t *Ticket) Unclaim(actorID uint) error {
	if !t.IsAssignedTo(actorID) {
		return ErrNotAssignee
	}
	t.assignedToID = nil
	t.touch()
	return nil
}

// AssignTo sets or clears the assignee and returns the previous one.
func (t *Ticket) AssignTo(userID *uint) (previous *uint) {
	previous = t.assignedToID
	if userID == nil {
		t.assignedToID = nil
	} else {
		id := *userID
		t.assignedToID = &id
	}
	t.touch()
	return previous
}

// Patch is a partial update; nil fields are left unchanged. The Clear flags
// null out an optional reference.
type Patch struct {
	Status          *vo.TicketStatus
	Type            *vo.TicketType
	Priority        *vo.Priority
	Title           *string
	Description     *string
	EventID         *uint
	ClearEvent      bool
	ContactID       *uint
	ClearContact    bool
	AssignedToID    *uint
	ClearAssignedTo bool
}

// Change records one modified field for the audit log.
type Change struct {
	Field string
	From  interface{}
	To    interface{}
}

// Apply validates and applies the patch, returning the list of fields that
// actually changed. Nothing is modified when validation fails.
func (t *Ticket) Apply(p Patch) ([]Change, error) {
	next := *t
	var changes []Change

	if p.Status != nil && *p.Status != next.status {
		changes = append(changes, Change{Field: "ticket_status", From: next.status.String(), To: p.Status.String()})
		next.status = *p.Status
	}
	if p.Type != nil && *p.Type != next.ticketType {
		changes = append(changes, Change{Field: "ticket_type", From: next.ticketType.String(), To: p.Type.String()})
		next.ticketType = *p.Type
	}
	if p.Priority != nil && *p.Priority != next.priority {
		changes = append(changes, Change{Field: "priority", From: next.priority.Int(), To: p.Priority.Int()})
		next.priority = *p.Priority
	}
	if p.Title != nil && *p.Title != next.title {
		changes = append(changes, Change{Field: "title", From: next.title, To: *p.Title})
		next.title = *p.Title
	}
	if p.Description != nil && *p.Description != next.description {
		changes = append(changes, Change{Field: "description", From: next.description, To: *p.Description})
		next.description = *p.Description
	}
	if ref, change := applyRef("event", next.eventID, p.EventID, p.ClearEvent); change != nil {
		changes = append(changes, *change)
		next.eventID = ref
	}
	if ref, change := applyRef("contact", next.contactID, p.ContactID, p.ClearContact); change != nil {
		changes = append(changes, *change)
		next.contactID = ref
	}
	if ref, change := applyRef("assigned_to", next.assignedToID, p.AssignedToID, p.ClearAssignedTo); change != nil {
		changes = append(changes, *change)
		next.assignedToID = ref
	}

	if err := validateFields(next.status, next.ticketType, next.priority, next.title); err != nil {
		return nil, err
	}
	if len(changes) > 0 {
		next.touch()
	}
	*t = next
	return changes, nil
}

func applyRef(field string, current, value *uint, clear bool) (*uint, *Change) {
	switch {
	case clear && current != nil:
		return nil, &Change{Field: field, From: *current, To: nil}
	case value != nil && (current == nil || *current != *value):
		id := *value
		var from interface{}
		if current != nil {
			from = *current
		}
		return &id, &Change{Field: field, From: from, To: id}
	default:
		return current, nil
	}
}

func (t *Ticket) touch() {
	t.modifiedAt = biztime.NowUTC()
}
