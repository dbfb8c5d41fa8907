package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/dggcrm/dggcrm/internal/domain/group"
	"github.com/dggcrm/dggcrm/internal/infrastructure/persistence/mappers"
	"github.com/dggcrm/dggcrm/internal/infrastructure/persistence/models"
	"github.com/dggcrm/dggcrm/internal/shared/constants"
	"github.com/dggcrm/dggcrm/internal/shared/db"
	"github.com/dggcrm/dggcrm/internal/shared/query"
)

var defaultGroupOrder = []query.OrderTerm{{Column: "created_at", Desc: true}}

type GroupRepository struct {
	db     *gorm.DB
	mapper mappers.GroupMapper
}

func NewGroupRepository(db *gorm.DB) *GroupRepository {
	return &GroupRepository{
		db:     db,
		mapper: mappers.NewGroupMapper(),
	}
}

func (r *GroupRepository) Create(ctx context.Context, g *group.Group) error {
	model := r.mapper.ToModel(g)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return createErr(err, "group")
	}
	return g.SetID(model.ID)
}

func (r *GroupRepository) Update(ctx context.Context, g *group.Group) error {
	model := r.mapper.ToModel(g)
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.
		Model(&models.GroupModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"name":        model.Name,
			"modified_at": model.ModifiedAt,
		})
	if result.Error != nil {
		return updateErr(result.Error, "group")
	}
	if result.RowsAffected == 0 {
		return notFoundOr(gorm.ErrRecordNotFound, "group")
	}
	return nil
}

// Delete removes the group and its memberships.
func (r *GroupRepository) Delete(ctx context.Context, id uint) error {
	return db.GetTxFromContext(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("group_id = ?", id).Delete(&models.GroupMembershipModel{}).Error; err != nil {
			return fmt.Errorf("failed to delete group memberships: %w", err)
		}
		return deleteResult(tx.Delete(&models.GroupModel{}, id), "group")
	})
}

func (r *GroupRepository) GetByID(ctx context.Context, id uint) (*group.Group, error) {
	var model models.GroupModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.First(&model, id).Error; err != nil {
		return nil, notFoundOr(err, "group")
	}
	return r.mapper.ToDomain(&model)
}

func (r *GroupRepository) List(ctx context.Context, filter group.GroupFilter) ([]*group.Group, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	q := tx.Model(&models.GroupModel{}).Scopes(db.ContainsFold(filter.Query, "name"))

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count groups: %w", err)
	}

	var list []models.GroupModel
	if err := q.
		Scopes(db.Ordered(filter.SortFilter.OrDefault(defaultGroupOrder...), "id"), db.Paginate(filter.PageFilter)).
		Find(&list).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list groups: %w", err)
	}

	out := make([]*group.Group, 0, len(list))
	for i := range list {
		g, err := r.mapper.ToDomain(&list[i])
		if err != nil {
			return nil, 0, err
		}
		out = append(out, g)
	}
	return out, total, nil
}

// ListWithCounts pages groups like List and attaches each group's member
// count with one grouped query.
func (r *GroupRepository) ListWithCounts(ctx context.Context, filter group.GroupFilter) ([]group.WithCount, int64, error) {
	groups, total, err := r.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	ids := make([]uint, 0, len(groups))
	for _, g := range groups {
		ids = append(ids, g.ID())
	}

	counts := make(map[uint]int64, len(ids))
	if len(ids) > 0 {
		type row struct {
			GroupID uint
			Total   int64
		}
		var rows []row
		tx := db.GetTxFromContext(ctx, r.db)
		if err := tx.
			Table(constants.TableGroupMemberships).
			Select("group_id, COUNT(*) AS total").
			Where("group_id IN ?", ids).
			Group("group_id").
			Scan(&rows).Error; err != nil {
			return nil, 0, fmt.Errorf("failed to count group members: %w", err)
		}
		for _, row := range rows {
			counts[row.GroupID] = row.Total
		}
	}

	out := make([]group.WithCount, 0, len(groups))
	for _, g := range groups {
		out = append(out, group.WithCount{Group: g, MemberCount: counts[g.ID()]})
	}
	return out, total, nil
}

type MembershipRepository struct {
	db *gorm.DB
}

func NewMembershipRepository(db *gorm.DB) *MembershipRepository {
	return &MembershipRepository{db: db}
}

type membershipRow struct {
	models.GroupMembershipModel
	GroupName       string
	ContactFullName string
}

func (row *membershipRow) toDomain() *group.Membership {
	m := mappers.MembershipToDomain(&row.GroupMembershipModel)
	m.GroupName = row.GroupName
	m.ContactFullName = row.ContactFullName
	return m
}

func (r *MembershipRepository) joined(tx *gorm.DB) *gorm.DB {
	return tx.
		Table(constants.TableGroupMemberships + " AS gm").
		Select("gm.*, g.name AS group_name, c.full_name AS contact_full_name").
		Joins("JOIN " + constants.TableGroups + " AS g ON g.id = gm.group_id").
		Joins("JOIN " + constants.TableContacts + " AS c ON c.id = gm.contact_id")
}

func (r *MembershipRepository) Create(ctx context.Context, m *group.Membership) error {
	model := mappers.MembershipToModel(m)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return createErr(err, "membership")
	}
	m.ID = model.ID
	return nil
}

func (r *MembershipRepository) DeleteByContact(ctx context.Context, groupID, contactID uint) error {
	tx := db.GetTxFromContext(ctx, r.db)
	return deleteResult(
		tx.Where("group_id = ? AND contact_id = ?", groupID, contactID).Delete(&models.GroupMembershipModel{}),
		"membership",
	)
}

func (r *MembershipRepository) ListByGroup(ctx context.Context, groupID uint, page query.PageFilter) ([]*group.Membership, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	q := r.joined(tx).Where("gm.group_id = ?", groupID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count memberships: %w", err)
	}

	var rows []membershipRow
	if err := q.
		Order("c.full_name ASC").
		Order("gm.id ASC").
		Scopes(db.Paginate(page)).
		Scan(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list memberships: %w", err)
	}

	out := make([]*group.Membership, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toDomain())
	}
	return out, total, nil
}

func (r *MembershipRepository) ListByContacts(ctx context.Context, contactIDs []uint) (map[uint][]*group.Membership, error) {
	out := make(map[uint][]*group.Membership, len(contactIDs))
	if len(contactIDs) == 0 {
		return out, nil
	}

	var rows []membershipRow
	tx := db.GetTxFromContext(ctx, r.db)
	if err := r.joined(tx).
		Where("gm.contact_id IN ?", uniqueUints(contactIDs)).
		Order("g.name ASC").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list contact memberships: %w", err)
	}
	for i := range rows {
		m := rows[i].toDomain()
		out[m.ContactID] = append(out[m.ContactID], m)
	}
	return out, nil
}
