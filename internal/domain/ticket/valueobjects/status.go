package valueobjects

import "fmt"

// TicketStatus is the workflow state of a ticket.
type TicketStatus string

const (
	StatusOpen       TicketStatus = "OPEN"
	StatusTodo       TicketStatus = "TODO"
	StatusInProgress TicketStatus = "IN_PROGRESS"
	StatusBlocked    TicketStatus = "BLOCKED"
	StatusCompleted  TicketStatus = "COMPLETED"
	StatusCanceled   TicketStatus = "CANCELED"
)

var validTicketStatuses = map[TicketStatus]bool{
	StatusOpen:       true,
	StatusTodo:       true,
	StatusInProgress: true,
	StatusBlocked:    true,
	StatusCompleted:  true,
	StatusCanceled:   true,
}

func (s TicketStatus) String() string {
	return string(s)
}

func (s TicketStatus) IsValid() bool {
	return validTicketStatuses[s]
}

func NewTicketStatus(value string) (TicketStatus, error) {
	s := TicketStatus(value)
	if !s.IsValid() {
		return "", fmt.Errorf("invalid ticket status: %s", value)
	}
	return s, nil
}

var ticketStatusLabels = map[TicketStatus]string{
	StatusOpen:       "Open",
	StatusTodo:       "To Do",
	StatusInProgress: "In Progress",
	StatusBlocked:    "Blocked",
	StatusCompleted:  "Completed",
	StatusCanceled:   "Canceled",
}

// Label is the human readable name shown next to the code.
func (s TicketStatus) Label() string {
	return ticketStatusLabels[s]
}
