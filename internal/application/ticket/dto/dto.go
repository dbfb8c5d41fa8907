package dto

import (
	"time"

	"github.com/dggcrm/dggcrm/internal/domain/shared"
	"github.com/dggcrm/dggcrm/internal/domain/ticket"
	"github.com/dggcrm/dggcrm/internal/shared/mapper"
)

type TicketDTO struct {
	ID            uint      `json:"id"`
	Status        string    `json:"ticket_status"`
	StatusDisplay string    `json:"status_display"`
	Type          string    `json:"ticket_type"`
	TypeDisplay   string    `json:"type_display"`
	Priority      int       `json:"priority"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	EventID       *uint     `json:"event"`
	ContactID     *uint     `json:"contact"`
	AssignedToID  *uint     `json:"assigned_to"`
	ReportedByID  *uint     `json:"reported_by"`
	CreatedAt     time.Time `json:"created_at"`
	ModifiedAt    time.Time `json:"modified_at"`
}

type CommentDTO struct {
	ID             uint      `json:"id"`
	TicketID       uint      `json:"ticket"`
	AuthorID       *uint     `json:"author"`
	AuthorUsername string    `json:"author_username"`
	Message        string    `json:"message"`
	MessageHTML    string    `json:"message_html"`
	CreatedAt      time.Time `json:"created_at"`
	ModifiedAt     time.Time `json:"modified_at"`
}

type AskDTO struct {
	ID            uint       `json:"id"`
	TicketID      uint       `json:"ticket"`
	ContactID     *uint      `json:"contact"`
	Status        string     `json:"status"`
	StatusDisplay string     `json:"status_display"`
	Notes         string     `json:"notes"`
	CreatedAt     time.Time  `json:"created_at"`
	EditedAt      *time.Time `json:"edited_at"`
}

type AuditLogDTO struct {
	ID            uint                   `json:"id"`
	TicketID      uint                   `json:"ticket"`
	LogType       string                 `json:"log_type"`
	LogDisplay    string                 `json:"log_display"`
	Message       string                 `json:"message"`
	ActorID       *uint                  `json:"actor"`
	ActorUsername string                 `json:"actor_username"`
	Data          map[string]interface{} `json:"data"`
	CreatedAt     time.Time              `json:"created_at"`
}

type TimelineItemDTO struct {
	Type         string                 `json:"type"`
	ID           uint                   `json:"id"`
	CreatedAt    time.Time              `json:"created_at"`
	ActorDisplay string                 `json:"actor_display"`
	ActorID      *uint                  `json:"actor_id"`
	Message      string                 `json:"message"`
	MessageHTML  string                 `json:"message_html,omitempty"`
	LogType      string                 `json:"log_type,omitempty"`
	Changes      map[string]interface{} `json:"changes,omitempty"`
}

type ContactTicketCountDTO struct {
	ContactID   uint   `json:"contact_id"`
	FullName    string `json:"full_name"`
	TicketCount int64  `json:"ticket_count"`
}

type AcceptanceRateDTO struct {
	TicketType           string  `json:"ticket_type"`
	Accepted             int64   `json:"accepted"`
	Rejected             int64   `json:"rejected"`
	Total                int64   `json:"total"`
	AcceptancePercentage float64 `json:"acceptance_percentage"`
}

type AcceptanceStatsDTO struct {
	ContactID uint                `json:"contact_id"`
	Rates     []AcceptanceRateDTO `json:"rates"`
}

func ToTicketDTO(t *ticket.Ticket) *TicketDTO {
	if t == nil {
		return nil
	}
	return &TicketDTO{
		ID:            t.ID(),
		Status:        t.Status().String(),
		StatusDisplay: t.Status().Label(),
		Type:          t.Type().String(),
		TypeDisplay:   t.Type().Label(),
		Priority:      t.Priority().Int(),
		Title:         t.Title(),
		Description:   t.Description(),
		EventID:       t.EventID(),
		ContactID:     t.ContactID(),
		AssignedToID:  t.AssignedToID(),
		ReportedByID:  t.ReportedByID(),
		CreatedAt:     t.CreatedAt(),
		ModifiedAt:    t.ModifiedAt(),
	}
}

func ToTicketDTOs(tickets []*ticket.Ticket) []*TicketDTO {
	return mapper.MapSlice(tickets, ToTicketDTO)
}

// ToCommentDTO converts a comment; html is its rendered message.
func ToCommentDTO(c *ticket.Comment, html string) *CommentDTO {
	return &CommentDTO{
		ID:             c.ID,
		TicketID:       c.TicketID,
		AuthorID:       c.AuthorID,
		AuthorUsername: c.AuthorUsername,
		Message:        c.Message,
		MessageHTML:    html,
		CreatedAt:      c.CreatedAt,
		ModifiedAt:     c.ModifiedAt,
	}
}

func ToAskDTO(a *ticket.Ask) *AskDTO {
	return &AskDTO{
		ID:            a.ID,
		TicketID:      a.TicketID,
		ContactID:     a.ContactID,
		Status:        a.Status.String(),
		StatusDisplay: a.Status.Label(),
		Notes:         a.Notes,
		CreatedAt:     a.CreatedAt,
		EditedAt:      a.EditedAt,
	}
}

func ToAskDTOs(asks []*ticket.Ask) []*AskDTO {
	return mapper.MapSlice(asks, ToAskDTO)
}

func ToAuditLogDTO(e *ticket.AuditEntry) *AuditLogDTO {
	return &AuditLogDTO{
		ID:            e.ID,
		TicketID:      e.TicketID,
		LogType:       e.LogType.String(),
		LogDisplay:    e.LogType.Label(),
		Message:       e.Message,
		ActorID:       e.ActorID,
		ActorUsername: e.ActorUsername,
		Data:          e.Data,
		CreatedAt:     e.CreatedAt,
	}
}

func ToAuditLogDTOs(entries []*ticket.AuditEntry) []*AuditLogDTO {
	return mapper.MapSlice(entries, ToAuditLogDTO)
}

// ToTimelineItemDTO converts a timeline item; render is applied to comment
// bodies only.
func ToTimelineItemDTO(item ticket.TimelineItem, render func(string) string) TimelineItemDTO {
	out := TimelineItemDTO{
		Type:         item.Kind,
		ID:           item.ID,
		CreatedAt:    item.CreatedAt,
		ActorDisplay: item.ActorDisplay,
		ActorID:      item.ActorID,
		Message:      item.Message,
		LogType:      item.LogType,
		Changes:      item.Changes,
	}
	if item.Comment != nil && render != nil {
		out.MessageHTML = render(item.Comment.Message)
	}
	return out
}

func ToContactTicketCountDTOs(rows []shared.ContactCount) []ContactTicketCountDTO {
	out := make([]ContactTicketCountDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, ContactTicketCountDTO{
			ContactID:   r.ContactID,
			FullName:    r.FullName,
			TicketCount: r.Count,
		})
	}
	return out
}

func ToAcceptanceStatsDTO(contactID uint, rates []ticket.AcceptanceRate) *AcceptanceStatsDTO {
	out := &AcceptanceStatsDTO{
		ContactID: contactID,
		Rates:     make([]AcceptanceRateDTO, 0, len(rates)),
	}
	for _, r := range rates {
		out.Rates = append(out.Rates, AcceptanceRateDTO{
			TicketType:           r.Type,
			Accepted:             r.Accepted,
			Rejected:             r.Rejected,
			Total:                r.Total,
			AcceptancePercentage: r.Percentage,
		})
	}
	return out
}
