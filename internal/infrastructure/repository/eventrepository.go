package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/dggcrm/dggcrm/internal/domain/event"
	"github.com/dggcrm/dggcrm/internal/domain/shared"
	"github.com/dggcrm/dggcrm/internal/infrastructure/persistence/mappers"
	"github.com/dggcrm/dggcrm/internal/infrastructure/persistence/models"
	"github.com/dggcrm/dggcrm/internal/shared/constants"
	"github.com/dggcrm/dggcrm/internal/shared/db"
	"github.com/dggcrm/dggcrm/internal/shared/query"
)

var (
	defaultEventOrder         = []query.OrderTerm{{Column: "created_at", Desc: true}}
	defaultParticipationOrder = []query.OrderTerm{{Column: "p.created_at", Desc: true}}
	defaultUserInEventOrder   = []query.OrderTerm{{Column: "ue.joined_at", Desc: true}}
)

type EventRepository struct {
	db     *gorm.DB
	mapper mappers.EventMapper
}

func NewEventRepository(db *gorm.DB) *EventRepository {
	return &EventRepository{
		db:     db,
		mapper: mappers.NewEventMapper(),
	}
}

func (r *EventRepository) Create(ctx context.Context, e *event.Event) error {
	model := r.mapper.ToModel(e)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return createErr(err, "event")
	}
	return e.SetID(model.ID)
}

func (r *EventRepository) Update(ctx context.Context, e *event.Event) error {
	model := r.mapper.ToModel(e)
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.
		Model(&models.EventModel{}).
		Where("id = ?", model.ID).
		Select("*").
		Omit("id", "created_at").
		Updates(model)
	if result.Error != nil {
		return updateErr(result.Error, "event")
	}
	if result.RowsAffected == 0 {
		return notFoundOr(gorm.ErrRecordNotFound, "event")
	}
	return nil
}

// Delete removes the event with its participations and staff links; tickets
// referencing it are kept with the event cleared.
func (r *EventRepository) Delete(ctx context.Context, id uint) error {
	return db.GetTxFromContext(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		for _, m := range []interface{}{&models.EventParticipationModel{}, &models.UserInEventModel{}} {
			if err := tx.Where("event_id = ?", id).Delete(m).Error; err != nil {
				return fmt.Errorf("failed to delete event relations: %w", err)
			}
		}
		if err := tx.Model(&models.TicketModel{}).Where("event_id = ?", id).Update("event_id", nil).Error; err != nil {
			return fmt.Errorf("failed to detach event from tickets: %w", err)
		}
		return deleteResult(tx.Delete(&models.EventModel{}, id), "event")
	})
}

func (r *EventRepository) GetByID(ctx context.Context, id uint) (*event.Event, error) {
	var model models.EventModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.First(&model, id).Error; err != nil {
		return nil, notFoundOr(err, "event")
	}
	return r.mapper.ToDomain(&model)
}

func (r *EventRepository) List(ctx context.Context, filter event.EventFilter) ([]*event.Event, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	q := tx.Model(&models.EventModel{}).
		Scopes(
			db.ContainsFold(filter.Query, "name", "description", "location_name", "location_address"),
			db.TimeBetween("starts_at", filter.StartsAfter, filter.StartsBefore),
		)
	if filter.Status != nil {
		q = q.Where("event_status = ?", filter.Status.String())
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count events: %w", err)
	}

	var list []models.EventModel
	if err := q.
		Scopes(db.Ordered(filter.SortFilter.OrDefault(defaultEventOrder...), "id"), db.Paginate(filter.PageFilter)).
		Find(&list).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list events: %w", err)
	}

	events, err := r.mapper.ToDomainList(list)
	if err != nil {
		return nil, 0, err
	}
	return events, total, nil
}

type ParticipationRepository struct {
	db *gorm.DB
}

func NewParticipationRepository(db *gorm.DB) *ParticipationRepository {
	return &ParticipationRepository{db: db}
}

type participationRow struct {
	models.EventParticipationModel
	EventName       string
	ContactFullName string
}

func (row *participationRow) toDomain() *event.Participation {
	p := mappers.ParticipationToDomain(&row.EventParticipationModel)
	p.EventName = row.EventName
	p.ContactFullName = row.ContactFullName
	return p
}

func (r *ParticipationRepository) joined(tx *gorm.DB) *gorm.DB {
	return tx.
		Table(constants.TableEventParticipations + " AS p").
		Select("p.*, e.name AS event_name, c.full_name AS contact_full_name").
		Joins("JOIN " + constants.TableEvents + " AS e ON e.id = p.event_id").
		Joins("JOIN " + constants.TableContacts + " AS c ON c.id = p.contact_id")
}

func (r *ParticipationRepository) Create(ctx context.Context, p *event.Participation) error {
	model := mappers.ParticipationToModel(p)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return createErr(err, "participation")
	}
	p.ID = model.ID
	return nil
}

func (r *ParticipationRepository) Update(ctx context.Context, p *event.Participation) error {
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.
		Model(&models.EventParticipationModel{}).
		Where("id = ?", p.ID).
		Updates(map[string]interface{}{
			"status":      p.Status.String(),
			"notes":       p.Notes,
			"modified_at": p.ModifiedAt,
		})
	if result.Error != nil {
		return updateErr(result.Error, "participation")
	}
	if result.RowsAffected == 0 {
		return notFoundOr(gorm.ErrRecordNotFound, "participation")
	}
	return nil
}

func (r *ParticipationRepository) Delete(ctx context.Context, id uint) error {
	tx := db.GetTxFromContext(ctx, r.db)
	return deleteResult(tx.Delete(&models.EventParticipationModel{}, id), "participation")
}

func (r *ParticipationRepository) GetByID(ctx context.Context, id uint) (*event.Participation, error) {
	var row participationRow
	tx := db.GetTxFromContext(ctx, r.db)

	if err := r.joined(tx).Where("p.id = ?", id).Take(&row).Error; err != nil {
		return nil, notFoundOr(err, "participation")
	}
	return row.toDomain(), nil
}

func (r *ParticipationRepository) List(ctx context.Context, filter event.ParticipationFilter) ([]*event.Participation, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	q := r.joined(tx).Scopes(db.ContainsFold(filter.Query, "c.full_name", "c.email", "p.notes"))
	if filter.EventID != nil {
		q = q.Where("p.event_id = ?", *filter.EventID)
	}
	if filter.ContactID != nil {
		q = q.Where("p.contact_id = ?", *filter.ContactID)
	}
	if filter.Status != nil {
		q = q.Where("p.status = ?", filter.Status.String())
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count participations: %w", err)
	}

	var rows []participationRow
	if err := q.
		Scopes(db.Ordered(filter.SortFilter.OrDefault(defaultParticipationOrder...), "p.id"), db.Paginate(filter.PageFilter)).
		Scan(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list participations: %w", err)
	}

	out := make([]*event.Participation, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toDomain())
	}
	return out, total, nil
}

func (r *ParticipationRepository) ListByContacts(ctx context.Context, contactIDs []uint) (map[uint][]*event.Participation, error) {
	out := make(map[uint][]*event.Participation, len(contactIDs))
	if len(contactIDs) == 0 {
		return out, nil
	}

	var rows []participationRow
	tx := db.GetTxFromContext(ctx, r.db)
	if err := r.joined(tx).
		Where("p.contact_id IN ?", uniqueUints(contactIDs)).
		Order("p.created_at DESC").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list contact participations: %w", err)
	}
	for i := range rows {
		p := rows[i].toDomain()
		out[p.ContactID] = append(out[p.ContactID], p)
	}
	return out, nil
}

type contactCountRow struct {
	ContactID uint
	FullName  string
	Total     int64
}

func toContactCounts(rows []contactCountRow) []shared.ContactCount {
	out := make([]shared.ContactCount, 0, len(rows))
	for _, r := range rows {
		out = append(out, shared.ContactCount{ContactID: r.ContactID, FullName: r.FullName, Count: r.Total})
	}
	return out
}

// CountByContact counts, per contact, the participations in the requested
// status whose event overlaps the date window.
func (r *ParticipationRepository) CountByContact(ctx context.Context, filter event.ContactParticipationCountFilter) ([]shared.ContactCount, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	grouped := func() *gorm.DB {
		q := tx.Session(&gorm.Session{NewDB: true}).
			Table(constants.TableEventParticipations+" AS p").
			Select("p.contact_id AS contact_id, c.full_name AS full_name, COUNT(*) AS total").
			Joins("JOIN "+constants.TableEvents+" AS e ON e.id = p.event_id").
			Joins("JOIN "+constants.TableContacts+" AS c ON c.id = p.contact_id").
			Where("p.status = ?", filter.Status.String())
		if from := filter.Dates.From; from != nil {
			q = q.Where("((e.ends_at IS NOT NULL AND e.ends_at >= ?) OR (e.ends_at IS NULL AND e.starts_at >= ?))", *from, *from)
		}
		if to := filter.Dates.To; to != nil {
			q = q.Where("e.starts_at <= ?", *to)
		}
		q = q.Group("p.contact_id, c.full_name").Having("COUNT(*) >= ?", filter.Bounds.Min)
		if filter.Bounds.Max != nil {
			q = q.Having("COUNT(*) <= ?", *filter.Bounds.Max)
		}
		return q
	}

	var total int64
	if err := tx.Session(&gorm.Session{NewDB: true}).
		Table("(?) AS grouped", grouped()).
		Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count participation groups: %w", err)
	}

	var rows []contactCountRow
	if err := grouped().
		Order("total DESC").
		Order("p.contact_id ASC").
		Scopes(db.Paginate(filter.PageFilter)).
		Scan(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to group participations by contact: %w", err)
	}
	return toContactCounts(rows), total, nil
}

type UserInEventRepository struct {
	db *gorm.DB
}

func NewUserInEventRepository(db *gorm.DB) *UserInEventRepository {
	return &UserInEventRepository{db: db}
}

type userInEventRow struct {
	ID           uint
	UserID       uint
	EventID      uint
	JoinedAt     time.Time
	UserUsername string
	EventName    string
}

func (row *userInEventRow) toDomain() *event.UserInEvent {
	return &event.UserInEvent{
		ID:           row.ID,
		UserID:       row.UserID,
		EventID:      row.EventID,
		JoinedAt:     row.JoinedAt.UTC(),
		UserUsername: row.UserUsername,
		EventName:    row.EventName,
	}
}

func (r *UserInEventRepository) joined(tx *gorm.DB) *gorm.DB {
	return tx.
		Table(constants.TableUsersInEvents + " AS ue").
		Select("ue.id, ue.user_id, ue.event_id, ue.joined_at, u.username AS user_username, e.name AS event_name").
		Joins("JOIN " + constants.TableUsers + " AS u ON u.id = ue.user_id").
		Joins("JOIN " + constants.TableEvents + " AS e ON e.id = ue.event_id")
}

func (r *UserInEventRepository) Create(ctx context.Context, u *event.UserInEvent) error {
	model := &models.UserInEventModel{
		UserID:   u.UserID,
		EventID:  u.EventID,
		JoinedAt: u.JoinedAt,
	}
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return createErr(err, "user in event")
	}
	u.ID = model.ID
	return nil
}

func (r *UserInEventRepository) Delete(ctx context.Context, id uint) error {
	tx := db.GetTxFromContext(ctx, r.db)
	return deleteResult(tx.Delete(&models.UserInEventModel{}, id), "user in event")
}

func (r *UserInEventRepository) GetByID(ctx context.Context, id uint) (*event.UserInEvent, error) {
	var row userInEventRow
	tx := db.GetTxFromContext(ctx, r.db)

	if err := r.joined(tx).Where("ue.id = ?", id).Take(&row).Error; err != nil {
		return nil, notFoundOr(err, "user in event")
	}
	return row.toDomain(), nil
}

func (r *UserInEventRepository) List(ctx context.Context, filter event.UserInEventFilter) ([]*event.UserInEvent, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	q := r.joined(tx)
	if filter.EventID != nil {
		q = q.Where("ue.event_id = ?", *filter.EventID)
	}
	if filter.UserID != nil {
		q = q.Where("ue.user_id = ?", *filter.UserID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count users in events: %w", err)
	}

	var rows []userInEventRow
	if err := q.
		Scopes(db.Ordered(filter.SortFilter.OrDefault(defaultUserInEventOrder...), "ue.id"), db.Paginate(filter.PageFilter)).
		Scan(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list users in events: %w", err)
	}

	out := make([]*event.UserInEvent, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toDomain())
	}
	return out, total, nil
}
