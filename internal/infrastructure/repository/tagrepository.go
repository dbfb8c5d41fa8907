package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/dggcrm/dggcrm/internal/domain/contact"
	"github.com/dggcrm/dggcrm/internal/infrastructure/persistence/mappers"
	"github.com/dggcrm/dggcrm/internal/infrastructure/persistence/models"
	"github.com/dggcrm/dggcrm/internal/shared/biztime"
	"github.com/dggcrm/dggcrm/internal/shared/constants"
	"github.com/dggcrm/dggcrm/internal/shared/db"
	apperrors "github.com/dggcrm/dggcrm/internal/shared/errors"
	"github.com/dggcrm/dggcrm/internal/shared/query"
)

var defaultTagOrder = []query.OrderTerm{{Column: "name"}}

type TagRepository struct {
	db     *gorm.DB
	mapper mappers.TagMapper
}

func NewTagRepository(db *gorm.DB) *TagRepository {
	return &TagRepository{
		db:     db,
		mapper: mappers.NewTagMapper(),
	}
}

// ensureNameFree rejects a name that differs from an existing tag only by
// case, since lookups by name fold case.
func (r *TagRepository) ensureNameFree(tx *gorm.DB, name string, exceptID uint) error {
	var count int64
	if err := tx.Model(&models.TagModel{}).
		Where("LOWER(name) = ? AND id <> ?", contact.FoldTagName(name), exceptID).
		Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check tag name: %w", err)
	}
	if count > 0 {
		return apperrors.NewConflictError("tag already exists", name)
	}
	return nil
}

func (r *TagRepository) Create(ctx context.Context, t *contact.Tag) error {
	model := r.mapper.ToModel(t)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := r.ensureNameFree(tx, model.Name, 0); err != nil {
		return err
	}
	if err := tx.Create(model).Error; err != nil {
		return createErr(err, "tag")
	}
	return t.SetID(model.ID)
}

func (r *TagRepository) Update(ctx context.Context, t *contact.Tag) error {
	model := r.mapper.ToModel(t)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := r.ensureNameFree(tx, model.Name, model.ID); err != nil {
		return err
	}
	result := tx.
		Model(&models.TagModel{}).
		Where("id = ?", model.ID).
		Select("*").
		Omit("id", "created_at").
		Updates(model)
	if result.Error != nil {
		return updateErr(result.Error, "tag")
	}
	if result.RowsAffected == 0 {
		return notFoundOr(gorm.ErrRecordNotFound, "tag")
	}
	return nil
}

// Delete removes the tag and every assignment of it.
func (r *TagRepository) Delete(ctx context.Context, id uint) error {
	return db.GetTxFromContext(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("tag_id = ?", id).Delete(&models.TagAssignmentModel{}).Error; err != nil {
			return fmt.Errorf("failed to delete tag assignments: %w", err)
		}
		return deleteResult(tx.Delete(&models.TagModel{}, id), "tag")
	})
}

func (r *TagRepository) GetByID(ctx context.Context, id uint) (*contact.Tag, error) {
	var model models.TagModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.First(&model, id).Error; err != nil {
		return nil, notFoundOr(err, "tag")
	}
	return r.mapper.ToDomain(&model)
}

func (r *TagRepository) GetByName(ctx context.Context, name string) (*contact.Tag, error) {
	var model models.TagModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Where("LOWER(name) = ?", contact.FoldTagName(name)).
		Order("id ASC").
		First(&model).Error; err != nil {
		return nil, notFoundOr(err, "tag")
	}
	return r.mapper.ToDomain(&model)
}

func (r *TagRepository) GetOrCreate(ctx context.Context, name string) (*contact.Tag, bool, error) {
	existing, err := r.GetByName(ctx, name)
	if err == nil {
		return existing, false, nil
	}
	if !apperrors.IsNotFoundError(err) {
		return nil, false, err
	}

	t, err := contact.NewTag(name, "")
	if err != nil {
		return nil, false, apperrors.NewValidationError(err.Error())
	}
	if err := r.Create(ctx, t); err != nil {
		// Lost a race with a concurrent create of the same name.
		if apperrors.IsConflictError(err) {
			existing, getErr := r.GetByName(ctx, name)
			return existing, false, getErr
		}
		return nil, false, err
	}
	return t, true, nil
}

func (r *TagRepository) List(ctx context.Context, filter contact.TagFilter) ([]*contact.Tag, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	q := tx.Model(&models.TagModel{}).Scopes(db.ContainsFold(filter.Query, "name"))

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count tags: %w", err)
	}

	var list []models.TagModel
	if err := q.
		Scopes(db.Ordered(filter.SortFilter.OrDefault(defaultTagOrder...), "id"), db.Paginate(filter.PageFilter)).
		Find(&list).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list tags: %w", err)
	}

	tags, err := r.mapper.ToDomainList(list)
	if err != nil {
		return nil, 0, err
	}
	return tags, total, nil
}

func (r *TagRepository) ListByContacts(ctx context.Context, contactIDs []uint) (map[uint][]*contact.Tag, error) {
	out := make(map[uint][]*contact.Tag, len(contactIDs))
	if len(contactIDs) == 0 {
		return out, nil
	}

	type row struct {
		models.TagModel
		ContactID uint
	}
	var rows []row
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.
		Table(constants.TableTags+" AS tags").
		Select("tags.*, ta.contact_id AS contact_id").
		Joins("JOIN "+constants.TableTagAssignments+" AS ta ON ta.tag_id = tags.id").
		Where("ta.contact_id IN ?", uniqueUints(contactIDs)).
		Order("tags.name ASC").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list contact tags: %w", err)
	}

	for i := range rows {
		t, err := r.mapper.ToDomain(&rows[i].TagModel)
		if err != nil {
			return nil, err
		}
		out[rows[i].ContactID] = append(out[rows[i].ContactID], t)
	}
	return out, nil
}

type TagAssignmentRepository struct {
	db *gorm.DB
}

func NewTagAssignmentRepository(db *gorm.DB) *TagAssignmentRepository {
	return &TagAssignmentRepository{db: db}
}

type tagAssignmentRow struct {
	ID        uint
	ContactID uint
	TagID     uint
	CreatedAt time.Time
	TagName   string
	TagColor  string
}

func (row *tagAssignmentRow) toDomain() *contact.TagAssignment {
	return &contact.TagAssignment{
		ID:        row.ID,
		ContactID: row.ContactID,
		TagID:     row.TagID,
		CreatedAt: row.CreatedAt.UTC(),
		TagName:   row.TagName,
		TagColor:  row.TagColor,
	}
}

func (r *TagAssignmentRepository) joined(tx *gorm.DB) *gorm.DB {
	return tx.
		Table(constants.TableTagAssignments + " AS ta").
		Select("ta.id, ta.contact_id, ta.tag_id, ta.created_at, tg.name AS tag_name, tg.color AS tag_color").
		Joins("JOIN " + constants.TableTags + " AS tg ON tg.id = ta.tag_id")
}

// Assign inserts the pair unless it already exists; created reports whether
// a new row was written.
func (r *TagAssignmentRepository) Assign(ctx context.Context, contactID, tagID uint) (*contact.TagAssignment, bool, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	model := &models.TagAssignmentModel{
		ContactID: contactID,
		TagID:     tagID,
		CreatedAt: biztime.NowUTC(),
	}

	result := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "contact_id"}, {Name: "tag_id"}},
		DoNothing: true,
	}).Create(model)
	if result.Error != nil {
		return nil, false, fmt.Errorf("failed to assign tag: %w", result.Error)
	}

	var row tagAssignmentRow
	if err := r.joined(tx).
		Where("ta.contact_id = ? AND ta.tag_id = ?", contactID, tagID).
		Take(&row).Error; err != nil {
		return nil, false, notFoundOr(err, "tag assignment")
	}
	return row.toDomain(), result.RowsAffected > 0, nil
}

func (r *TagAssignmentRepository) GetByID(ctx context.Context, id uint) (*contact.TagAssignment, error) {
	var row tagAssignmentRow
	tx := db.GetTxFromContext(ctx, r.db)

	if err := r.joined(tx).Where("ta.id = ?", id).Take(&row).Error; err != nil {
		return nil, notFoundOr(err, "tag assignment")
	}
	return row.toDomain(), nil
}

func (r *TagAssignmentRepository) Delete(ctx context.Context, id uint) error {
	tx := db.GetTxFromContext(ctx, r.db)
	return deleteResult(tx.Delete(&models.TagAssignmentModel{}, id), "tag assignment")
}

func (r *TagAssignmentRepository) List(ctx context.Context, filter contact.TagAssignmentFilter) ([]*contact.TagAssignment, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	q := r.joined(tx)
	if filter.ContactID != nil {
		q = q.Where("ta.contact_id = ?", *filter.ContactID)
	}
	if filter.TagID != nil {
		q = q.Where("ta.tag_id = ?", *filter.TagID)
	}
	if filter.TagName != nil {
		q = q.Where("LOWER(tg.name) = ?", contact.FoldTagName(*filter.TagName))
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count tag assignments: %w", err)
	}

	var rows []tagAssignmentRow
	if err := q.
		Order("ta.created_at DESC").
		Order("ta.id DESC").
		Scopes(db.Paginate(filter.PageFilter)).
		Scan(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list tag assignments: %w", err)
	}

	out := make([]*contact.TagAssignment, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toDomain())
	}
	return out, total, nil
}

func (r *TagAssignmentRepository) Replace(ctx context.Context, contactID uint, tagIDs []uint) error {
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Where("contact_id = ?", contactID).Delete(&models.TagAssignmentModel{}).Error; err != nil {
		return fmt.Errorf("failed to clear tag assignments: %w", err)
	}

	ids := uniqueUints(tagIDs)
	if len(ids) == 0 {
		return nil
	}
	now := biztime.NowUTC()
	rows := make([]models.TagAssignmentModel, 0, len(ids))
	for _, id := range ids {
		rows = append(rows, models.TagAssignmentModel{ContactID: contactID, TagID: id, CreatedAt: now})
	}
	if err := tx.Create(&rows).Error; err != nil {
		return fmt.Errorf("failed to insert tag assignments: %w", err)
	}
	return nil
}
