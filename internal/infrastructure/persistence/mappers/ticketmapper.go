package mappers

import (
	"github.com/dggcrm/dggcrm/internal/domain/ticket"
	vo "github.com/dggcrm/dggcrm/internal/domain/ticket/valueobjects"
	"github.com/dggcrm/dggcrm/internal/infrastructure/persistence/models"
)

// TicketMapper handles the conversion between ticket domain entities and persistence models.
type TicketMapper interface {
	ToModel(t *ticket.Ticket) *models.TicketModel
	ToDomain(model *models.TicketModel) (*ticket.Ticket, error)
	ToDomainList(list []models.TicketModel) ([]*ticket.Ticket, error)
}

type TicketMapperImpl struct{}

func NewTicketMapper() TicketMapper {
	return &TicketMapperImpl{}
}

func (m *TicketMapperImpl) ToModel(t *ticket.Ticket) *models.TicketModel {
	if t == nil {
		return nil
	}
	return &models.TicketModel{
		ID:           t.ID(),
		TicketStatus: t.Status().String(),
		TicketType:   t.Type().String(),
		Priority:     t.Priority().Int(),
		Title:        t.Title(),
		Description:  t.Description(),
		EventID:      t.EventID(),
		ContactID:    t.ContactID(),
		AssignedToID: t.AssignedToID(),
		ReportedByID: t.ReportedByID(),
		CreatedAt:    t.CreatedAt(),
		ModifiedAt:   t.ModifiedAt(),
	}
}

func (m *TicketMapperImpl) ToDomain(model *models.TicketModel) (*ticket.Ticket, error) {
	if model == nil {
		return nil, nil
	}
	return ticket.ReconstructTicket(ticket.TicketParams{
		ID:           model.ID,
		Status:       vo.TicketStatus(model.TicketStatus),
		Type:         vo.TicketType(model.TicketType),
		Priority:     vo.Priority(model.Priority),
		Title:        model.Title,
		Description:  model.Description,
		EventID:      model.EventID,
		ContactID:    model.ContactID,
		AssignedToID: model.AssignedToID,
		ReportedByID: model.ReportedByID,
		CreatedAt:    model.CreatedAt.UTC(),
		ModifiedAt:   model.ModifiedAt.UTC(),
	})
}

func (m *TicketMapperImpl) ToDomainList(list []models.TicketModel) ([]*ticket.Ticket, error) {
	out := make([]*ticket.Ticket, 0, len(list))
	for i := range list {
		t, err := m.ToDomain(&list[i])
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

func CommentToModel(c *ticket.Comment) *models.TicketCommentModel {
	return &models.TicketCommentModel{
		ID:         c.ID,
		TicketID:   c.TicketID,
		AuthorID:   c.AuthorID,
		Message:    c.Message,
		CreatedAt:  c.CreatedAt,
		ModifiedAt: c.ModifiedAt,
	}
}

func CommentToDomain(model *models.TicketCommentModel) *ticket.Comment {
	return &ticket.Comment{
		ID:         model.ID,
		TicketID:   model.TicketID,
		AuthorID:   model.AuthorID,
		Message:    model.Message,
		CreatedAt:  model.CreatedAt.UTC(),
		ModifiedAt: model.ModifiedAt.UTC(),
	}
}

func AskToModel(a *ticket.Ask) *models.TicketAskModel {
	return &models.TicketAskModel{
		ID:        a.ID,
		TicketID:  a.TicketID,
		ContactID: a.ContactID,
		Status:    a.Status.String(),
		Notes:     a.Notes,
		CreatedAt: a.CreatedAt,
		EditedAt:  a.EditedAt,
	}
}

func AskToDomain(model *models.TicketAskModel) *ticket.Ask {
	return &ticket.Ask{
		ID:        model.ID,
		TicketID:  model.TicketID,
		ContactID: model.ContactID,
		Status:    vo.AskStatus(model.Status),
		Notes:     model.Notes,
		CreatedAt: model.CreatedAt.UTC(),
		EditedAt:  model.EditedAt,
	}
}

func AuditEntryToModel(e *ticket.AuditEntry) *models.TicketAuditLogModel {
	return &models.TicketAuditLogModel{
		ID:        e.ID,
		TicketID:  e.TicketID,
		LogType:   e.LogType.String(),
		Message:   e.Message,
		ActorID:   e.ActorID,
		Data:      e.Data,
		CreatedAt: e.CreatedAt,
	}
}

func AuditEntryToDomain(model *models.TicketAuditLogModel) *ticket.AuditEntry {
	data := map[string]interface{}(model.Data)
	if data == nil {
		data = map[string]interface{}{}
	}
	return &ticket.AuditEntry{
		ID:        model.ID,
		TicketID:  model.TicketID,
		LogType:   vo.AuditLogType(model.LogType),
		Message:   model.Message,
		ActorID:   model.ActorID,
		Data:      data,
		CreatedAt: model.CreatedAt.UTC(),
	}
}
