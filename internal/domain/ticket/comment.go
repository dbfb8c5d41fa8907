package ticket

import (
	"fmt"
	"strings"
	"time"

	"github.com/dggcrm/dggcrm/internal/shared/biztime"
)

// Comment is a free-text note on a ticket. A nil AuthorID means the system
// or an anonymous caller wrote it.
type Comment struct {
	ID         uint
	TicketID   uint
	AuthorID   *uint
	Message    string
	CreatedAt  time.Time
	ModifiedAt time.Time

	// AuthorUsername is filled by reads that join the author.
	AuthorUsername string
}

func NewComment(ticketID uint, authorID *uint, message string) (*Comment, error) {
	if ticketID == 0 {
		return nil, fmt.Errorf("ticket ID is required")
	}
	if strings.TrimSpace(message) == "" {
		return nil, fmt.Errorf("message cannot be empty")
	}

	now := biztime.NowUTC()
	return &Comment{
		TicketID:   ticketID,
		AuthorID:   authorID,
		Message:    message,
		CreatedAt:  now,
		ModifiedAt: now,
	}, nil
}
