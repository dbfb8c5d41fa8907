package mappers

import (
	"github.com/dggcrm/dggcrm/internal/domain/contact"
	"github.com/dggcrm/dggcrm/internal/infrastructure/persistence/models"
)

// ContactMapper handles the conversion between contact domain entities and persistence models.
type ContactMapper interface {
	ToModel(c *contact.Contact) *models.ContactModel
	ToDomain(model *models.ContactModel) (*contact.Contact, error)
	ToDomainList(list []models.ContactModel) ([]*contact.Contact, error)
}

type ContactMapperImpl struct{}

func NewContactMapper() ContactMapper {
	return &ContactMapperImpl{}
}

func (m *ContactMapperImpl) ToModel(c *contact.Contact) *models.ContactModel {
	if c == nil {
		return nil
	}
	return &models.ContactModel{
		ID:         c.ID(),
		FullName:   c.FullName(),
		DiscordID:  c.DiscordID(),
		Email:      c.Email(),
		Phone:      c.Phone(),
		Note:       c.Note(),
		CreatedAt:  c.CreatedAt(),
		ModifiedAt: c.ModifiedAt(),
	}
}

func (m *ContactMapperImpl) ToDomain(model *models.ContactModel) (*contact.Contact, error) {
	if model == nil {
		return nil, nil
	}
	return contact.ReconstructContact(model.ID, contact.Fields{
		FullName:  model.FullName,
		DiscordID: model.DiscordID,
		Email:     model.Email,
		Phone:     model.Phone,
		Note:      model.Note,
	}, model.CreatedAt.UTC(), model.ModifiedAt.UTC())
}

func (m *ContactMapperImpl) ToDomainList(list []models.ContactModel) ([]*contact.Contact, error) {
	out := make([]*contact.Contact, 0, len(list))
	for i := range list {
		c, err := m.ToDomain(&list[i])
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

// TagMapper handles the conversion between tag domain entities and persistence models.
type TagMapper interface {
	ToModel(t *contact.Tag) *models.TagModel
	ToDomain(model *models.TagModel) (*contact.Tag, error)
	ToDomainList(list []models.TagModel) ([]*contact.Tag, error)
}

type TagMapperImpl struct{}

func NewTagMapper() TagMapper {
	return &TagMapperImpl{}
}

func (m *TagMapperImpl) ToModel(t *contact.Tag) *models.TagModel {
	if t == nil {
		return nil
	}
	return &models.TagModel{
		ID:         t.ID(),
		Name:       t.Name(),
		Color:      t.Color(),
		CreatedAt:  t.CreatedAt(),
		ModifiedAt: t.ModifiedAt(),
	}
}

func (m *TagMapperImpl) ToDomain(model *models.TagModel) (*contact.Tag, error) {
	if model == nil {
		return nil, nil
	}
	return contact.ReconstructTag(model.ID, model.Name, model.Color, model.CreatedAt.UTC(), model.ModifiedAt.UTC())
}

func (m *TagMapperImpl) ToDomainList(list []models.TagModel) ([]*contact.Tag, error) {
	out := make([]*contact.Tag, 0, len(list))
	for i := range list {
		t, err := m.ToDomain(&list[i])
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

// ActivityToModel converts a contact activity to its persistence model.
func ActivityToModel(a *contact.Activity) *models.ContactActivityModel {
	return &models.ContactActivityModel{
		ID:           a.ID,
		ContactID:    a.ContactID,
		ActivityType: a.Type.String(),
		Data:         a.Data,
		CreatedAt:    a.CreatedAt,
	}
}

// ActivityToDomain converts a persistence model to a contact activity.
func ActivityToDomain(model *models.ContactActivityModel) *contact.Activity {
	data := map[string]interface{}(model.Data)
	if data == nil {
		data = map[string]interface{}{}
	}
	return &contact.Activity{
		ID:        model.ID,
		ContactID: model.ContactID,
		Type:      contact.ActivityType(model.ActivityType),
		Data:      data,
		CreatedAt: model.CreatedAt.UTC(),
	}
}
