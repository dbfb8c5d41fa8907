package ticket

import (
	"fmt"
	"time"

	vo "github.com/dggcrm/dggcrm/internal/domain/ticket/valueobjects"
	"github.com/dggcrm/dggcrm/internal/shared/biztime"
)

// AuditEntry is an append-only record of something that happened to a ticket.
type AuditEntry struct {
	ID        uint
	TicketID  uint
	LogType   vo.AuditLogType
	Message   string
	ActorID   *uint
	Data      map[string]interface{}
	CreatedAt time.Time

	// ActorUsername is filled by reads that join the actor.
	ActorUsername string
}

func NewAuditEntry(ticketID uint, logType vo.AuditLogType, message string, actorID *uint, data map[string]interface{}) (*AuditEntry, error) {
	if ticketID == 0 {
		return nil, fmt.Errorf("ticket ID is required")
	}
	if !logType.IsValid() {
		return nil, fmt.Errorf("invalid audit log type: %s", logType)
	}
	if data == nil {
		data = map[string]interface{}{}
	}
	return &AuditEntry{
		TicketID:  ticketID,
		LogType:   logType,
		Message:   message,
		ActorID:   actorID,
		Data:      data,
		CreatedAt: biztime.NowUTC(),
	}, nil
}

// ChangesData converts field changes to the audit data payload.
func ChangesData(changes []Change) map[string]interface{} {
	fields := make(map[string]interface{}, len(changes))
	for _, c := range changes {
		fields[c.Field] = map[string]interface{}{"from": c.From, "to": c.To}
	}
	return map[string]interface{}{"changes": fields}
}
