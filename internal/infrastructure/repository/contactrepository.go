package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/dggcrm/dggcrm/internal/domain/contact"
	"github.com/dggcrm/dggcrm/internal/infrastructure/persistence/mappers"
	"github.com/dggcrm/dggcrm/internal/infrastructure/persistence/models"
	"github.com/dggcrm/dggcrm/internal/shared/constants"
	"github.com/dggcrm/dggcrm/internal/shared/db"
	"github.com/dggcrm/dggcrm/internal/shared/query"
)

var defaultContactOrder = []query.OrderTerm{{Column: "created_at", Desc: true}}

type ContactRepository struct {
	db     *gorm.DB
	mapper mappers.ContactMapper
}

func NewContactRepository(db *gorm.DB) *ContactRepository {
	return &ContactRepository{
		db:     db,
		mapper: mappers.NewContactMapper(),
	}
}

func (r *ContactRepository) Create(ctx context.Context, c *contact.Contact) error {
	model := r.mapper.ToModel(c)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return createErr(err, "contact")
	}

	return c.SetID(model.ID)
}

func (r *ContactRepository) Update(ctx context.Context, c *contact.Contact) error {
	model := r.mapper.ToModel(c)
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.
		Model(&models.ContactModel{}).
		Where("id = ?", model.ID).
		Select("*").
		Omit("id", "created_at").
		Updates(model)
	if result.Error != nil {
		return updateErr(result.Error, "contact")
	}
	if result.RowsAffected == 0 {
		return notFoundOr(gorm.ErrRecordNotFound, "contact")
	}
	return nil
}

// Delete removes the contact with its tag assignments, activities,
// participations and memberships. Tickets and asks keep their rows with the
// contact reference cleared.
func (r *ContactRepository) Delete(ctx context.Context, id uint) error {
	return db.GetTxFromContext(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		for _, m := range []interface{}{
			&models.TagAssignmentModel{},
			&models.ContactActivityModel{},
			&models.EventParticipationModel{},
			&models.GroupMembershipModel{},
		} {
			if err := tx.Where("contact_id = ?", id).Delete(m).Error; err != nil {
				return fmt.Errorf("failed to delete contact relations: %w", err)
			}
		}
		for _, m := range []interface{}{&models.TicketModel{}, &models.TicketAskModel{}} {
			if err := tx.Model(m).Where("contact_id = ?", id).Update("contact_id", nil).Error; err != nil {
				return fmt.Errorf("failed to detach contact: %w", err)
			}
		}
		return deleteResult(tx.Delete(&models.ContactModel{}, id), "contact")
	})
}

func (r *ContactRepository) GetByID(ctx context.Context, id uint) (*contact.Contact, error) {
	var model models.ContactModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.First(&model, id).Error; err != nil {
		return nil, notFoundOr(err, "contact")
	}
	return r.mapper.ToDomain(&model)
}

func (r *ContactRepository) GetByDiscordID(ctx context.Context, discordID string) (*contact.Contact, error) {
	var model models.ContactModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Where("discord_id = ?", discordID).
		Order("id ASC").
		First(&model).Error; err != nil {
		return nil, notFoundOr(err, "contact")
	}
	return r.mapper.ToDomain(&model)
}

func (r *ContactRepository) List(ctx context.Context, filter contact.ContactFilter) ([]*contact.Contact, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	q := tx.Model(&models.ContactModel{}).
		Scopes(
			db.ContainsFold(filter.Query, "full_name", "email", "discord_id", "phone", "note"),
			db.TimeBetween("created_at", filter.CreatedAfter, filter.CreatedBefore),
		)

	switch {
	case filter.TagID != nil:
		q = q.Where("id IN (?)", tx.Session(&gorm.Session{NewDB: true}).
			Table(constants.TableTagAssignments).
			Select("contact_id").
			Where("tag_id = ?", *filter.TagID))
	case filter.TagName != nil:
		q = q.Where("id IN (?)", tx.Session(&gorm.Session{NewDB: true}).
			Table(constants.TableTagAssignments+" AS ta").
			Select("ta.contact_id").
			Joins("JOIN "+constants.TableTags+" AS tg ON tg.id = ta.tag_id").
			Where("LOWER(tg.name) = ?", contact.FoldTagName(*filter.TagName)))
	}
	if filter.GroupID != nil {
		q = q.Where("id IN (?)", tx.Session(&gorm.Session{NewDB: true}).
			Table(constants.TableGroupMemberships).
			Select("contact_id").
			Where("group_id = ?", *filter.GroupID))
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count contacts: %w", err)
	}

	var list []models.ContactModel
	if err := q.
		Scopes(db.Ordered(filter.SortFilter.OrDefault(defaultContactOrder...), "id"), db.Paginate(filter.PageFilter)).
		Find(&list).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list contacts: %w", err)
	}

	contacts, err := r.mapper.ToDomainList(list)
	if err != nil {
		return nil, 0, err
	}
	return contacts, total, nil
}

type ActivityRepository struct {
	db *gorm.DB
}

func NewActivityRepository(db *gorm.DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

func (r *ActivityRepository) Append(ctx context.Context, a *contact.Activity) error {
	model := mappers.ActivityToModel(a)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to append contact activity: %w", err)
	}
	a.ID = model.ID
	return nil
}

func (r *ActivityRepository) ListByContact(ctx context.Context, contactID uint, filter contact.ActivityFilter) ([]*contact.Activity, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	q := tx.Model(&models.ContactActivityModel{}).Where("contact_id = ?", contactID)
	if filter.Type != nil {
		q = q.Where("activity_type = ?", filter.Type.String())
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count contact activities: %w", err)
	}

	var list []models.ContactActivityModel
	if err := q.
		Order("created_at DESC").
		Order("id DESC").
		Scopes(db.Paginate(filter.PageFilter)).
		Find(&list).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list contact activities: %w", err)
	}

	out := make([]*contact.Activity, 0, len(list))
	for i := range list {
		out = append(out, mappers.ActivityToDomain(&list[i]))
	}
	return out, total, nil
}
