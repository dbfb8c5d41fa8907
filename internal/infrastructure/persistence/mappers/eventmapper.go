package mappers

import (
	"github.com/dggcrm/dggcrm/internal/domain/event"
	"github.com/dggcrm/dggcrm/internal/infrastructure/persistence/models"
)

// EventMapper handles the conversion between event domain entities and persistence models.
type EventMapper interface {
	ToModel(e *event.Event) *models.EventModel
	ToDomain(model *models.EventModel) (*event.Event, error)
	ToDomainList(list []models.EventModel) ([]*event.Event, error)
}

type EventMapperImpl struct{}

func NewEventMapper() EventMapper {
	return &EventMapperImpl{}
}

func (m *EventMapperImpl) ToModel(e *event.Event) *models.EventModel {
	if e == nil {
		return nil
	}
	return &models.EventModel{
		ID:              e.ID(),
		Name:            e.Name(),
		Description:     e.Description(),
		LocationName:    e.LocationName(),
		LocationAddress: e.LocationAddress(),
		StartsAt:        e.StartsAt(),
		EndsAt:          e.EndsAt(),
		EventStatus:     e.Status().String(),
		CreatedAt:       e.CreatedAt(),
		ModifiedAt:      e.ModifiedAt(),
	}
}

func (m *EventMapperImpl) ToDomain(model *models.EventModel) (*event.Event, error) {
	if model == nil {
		return nil, nil
	}
	return event.ReconstructEvent(model.ID, event.Fields{
		Name:            model.Name,
		Description:     model.Description,
		LocationName:    model.LocationName,
		LocationAddress: model.LocationAddress,
		StartsAt:        model.StartsAt,
		EndsAt:          model.EndsAt,
		Status:          event.Status(model.EventStatus),
	}, model.CreatedAt.UTC(), model.ModifiedAt.UTC())
}

func (m *EventMapperImpl) ToDomainList(list []models.EventModel) ([]*event.Event, error) {
	out := make([]*event.Event, 0, len(list))
	for i := range list {
		e, err := m.ToDomain(&list[i])
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

// ParticipationToModel converts a participation to its persistence model.
func ParticipationToModel(p *event.Participation) *models.EventParticipationModel {
	return &models.EventParticipationModel{
		ID:         p.ID,
		EventID:    p.EventID,
		ContactID:  p.ContactID,
		Status:     p.Status.String(),
		Notes:      p.Notes,
		CreatedAt:  p.CreatedAt,
		ModifiedAt: p.ModifiedAt,
	}
}

// ParticipationToDomain converts a persistence model to a participation.
func ParticipationToDomain(model *models.EventParticipationModel) *event.Participation {
	return &event.Participation{
		ID:         model.ID,
		EventID:    model.EventID,
		ContactID:  model.ContactID,
		Status:     event.CommitmentStatus(model.Status),
		Notes:      model.Notes,
		CreatedAt:  model.CreatedAt.UTC(),
		ModifiedAt: model.ModifiedAt.UTC(),
	}
}
