package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/dggcrm/dggcrm/internal/domain/shared"
	"github.com/dggcrm/dggcrm/internal/domain/ticket"
	vo "github.com/dggcrm/dggcrm/internal/domain/ticket/valueobjects"
	"github.com/dggcrm/dggcrm/internal/infrastructure/persistence/mappers"
	"github.com/dggcrm/dggcrm/internal/infrastructure/persistence/models"
	"github.com/dggcrm/dggcrm/internal/shared/constants"
	"github.com/dggcrm/dggcrm/internal/shared/db"
	"github.com/dggcrm/dggcrm/internal/shared/query"
)

// Lowest priority number first, newest first within a priority.
var defaultTicketOrder = []query.OrderTerm{
	{Column: "priority"},
	{Column: "created_at", Desc: true},
}

type TicketRepository struct {
	db     *gorm.DB
	mapper mappers.TicketMapper
}

func NewTicketRepository(db *gorm.DB) *TicketRepository {
	return &TicketRepository{
		db:     db,
		mapper: mappers.NewTicketMapper(),
	}
}

func (r *TicketRepository) Create(ctx context.Context, t *ticket.Ticket) error {
	model := r.mapper.ToModel(t)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return createErr(err, "ticket")
	}
	return t.SetID(model.ID)
}

func (r *TicketRepository) Update(ctx context.Context, t *ticket.Ticket) error {
	model := r.mapper.ToModel(t)
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.
		Model(&models.TicketModel{}).
		Where("id = ?", model.ID).
		Select("*").
		Omit("id", "created_at").
		Updates(model)
	if result.Error != nil {
		return updateErr(result.Error, "ticket")
	}
	if result.RowsAffected == 0 {
		return notFoundOr(gorm.ErrRecordNotFound, "ticket")
	}
	return nil
}

// Delete removes the ticket with its comments, asks and audit log.
func (r *TicketRepository) Delete(ctx context.Context, id uint) error {
	return db.GetTxFromContext(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		for _, m := range []interface{}{
			&models.TicketCommentModel{},
			&models.TicketAskModel{},
			&models.TicketAuditLogModel{},
		} {
			if err := tx.Where("ticket_id = ?", id).Delete(m).Error; err != nil {
				return fmt.Errorf("failed to delete ticket relations: %w", err)
			}
		}
		return deleteResult(tx.Delete(&models.TicketModel{}, id), "ticket")
	})
}

func (r *TicketRepository) GetByID(ctx context.Context, id uint) (*ticket.Ticket, error) {
	var model models.TicketModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.First(&model, id).Error; err != nil {
		return nil, notFoundOr(err, "ticket")
	}
	return r.mapper.ToDomain(&model)
}

// GetByIDForUpdate reads the ticket with SELECT ... FOR UPDATE. The sqlite
// dialect drops the locking clause; its single writer serializes instead.
func (r *TicketRepository) GetByIDForUpdate(ctx context.Context, id uint) (*ticket.Ticket, error) {
	var model models.TicketModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&model, id).Error; err != nil {
		return nil, notFoundOr(err, "ticket")
	}
	return r.mapper.ToDomain(&model)
}

func (r *TicketRepository) List(ctx context.Context, filter ticket.TicketFilter) ([]*ticket.Ticket, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	q := tx.Model(&models.TicketModel{}).
		Scopes(
			db.MatchIDOrContains(filter.Query, "id", "title", "description"),
			db.TimeBetween("created_at", filter.CreatedAfter, filter.CreatedBefore),
		)

	if filter.Status != nil {
		q = q.Where("ticket_status = ?", filter.Status.String())
	}
	if filter.Type != nil {
		q = q.Where("ticket_type = ?", filter.Type.String())
	}
	if filter.Priority != nil {
		q = q.Where("priority = ?", filter.Priority.Int())
	}
	if filter.AssignedToID != nil {
		q = q.Where("assigned_to_id = ?", *filter.AssignedToID)
	}
	if filter.ReportedByID != nil {
		q = q.Where("reported_by_id = ?", *filter.ReportedByID)
	}
	if filter.EventID != nil {
		q = q.Where("event_id = ?", *filter.EventID)
	}
	if filter.ContactID != nil {
		q = q.Where("contact_id = ?", *filter.ContactID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count tickets: %w", err)
	}

	var list []models.TicketModel
	if err := q.
		Scopes(db.Ordered(filter.SortFilter.OrDefault(defaultTicketOrder...), "id"), db.Paginate(filter.PageFilter)).
		Find(&list).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list tickets: %w", err)
	}

	tickets, err := r.mapper.ToDomainList(list)
	if err != nil {
		return nil, 0, err
	}
	return tickets, total, nil
}

// CountByContact counts, for every contact that has tickets in scope, how
// many of them are in the requested status. Contacts whose tickets are all
// in other statuses appear with a zero count.
func (r *TicketRepository) CountByContact(ctx context.Context, filter ticket.ContactTicketCountFilter) ([]shared.ContactCount, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	const matching = "SUM(CASE WHEN t.ticket_status = ? THEN 1 ELSE 0 END)"
	status := filter.Status.String()

	grouped := func() *gorm.DB {
		q := tx.Session(&gorm.Session{NewDB: true}).
			Table(constants.TableTickets+" AS t").
			Select("t.contact_id AS contact_id, c.full_name AS full_name, "+matching+" AS total", status).
			Joins("JOIN "+constants.TableContacts+" AS c ON c.id = t.contact_id").
			Where("t.contact_id IS NOT NULL").
			Scopes(db.TimeBetween("t.created_at", filter.Dates.From, filter.Dates.To))
		if filter.Type != nil {
			q = q.Where("t.ticket_type = ?", filter.Type.String())
		}
		q = q.Group("t.contact_id, c.full_name").Having(matching+" >= ?", status, filter.Bounds.Min)
		if filter.Bounds.Max != nil {
			q = q.Having(matching+" <= ?", status, *filter.Bounds.Max)
		}
		return q
	}

	var total int64
	if err := tx.Session(&gorm.Session{NewDB: true}).
		Table("(?) AS grouped", grouped()).
		Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count ticket groups: %w", err)
	}

	var rows []contactCountRow
	if err := grouped().
		Order("total DESC").
		Order("t.contact_id ASC").
		Scopes(db.Paginate(filter.PageFilter)).
		Scan(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to group tickets by contact: %w", err)
	}
	return toContactCounts(rows), total, nil
}

type CommentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

type commentRow struct {
	models.TicketCommentModel
	AuthorUsername string
}

func (r *CommentRepository) joined(tx *gorm.DB) *gorm.DB {
	return tx.
		Table(constants.TableTicketComments + " AS tc").
		Select("tc.*, COALESCE(u.username, '') AS author_username").
		Joins("LEFT JOIN " + constants.TableUsers + " AS u ON u.id = tc.author_id")
}

func (r *CommentRepository) Create(ctx context.Context, c *ticket.Comment) error {
	model := mappers.CommentToModel(c)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}
	c.ID = model.ID

	if c.AuthorID != nil {
		var usernames []string
		if err := tx.Table(constants.TableUsers).
			Where("id = ?", *c.AuthorID).
			Pluck("username", &usernames).Error; err != nil {
			return fmt.Errorf("failed to load comment author: %w", err)
		}
		if len(usernames) > 0 {
			c.AuthorUsername = usernames[0]
		}
	}
	return nil
}

func (r *CommentRepository) ListByTicket(ctx context.Context, ticketID uint, page query.PageFilter) ([]*ticket.Comment, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	q := r.joined(tx).Where("tc.ticket_id = ?", ticketID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count comments: %w", err)
	}

	var rows []commentRow
	if err := q.
		Order("tc.created_at DESC").
		Order("tc.id DESC").
		Scopes(db.Paginate(page)).
		Scan(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list comments: %w", err)
	}
	return commentsToDomain(rows), total, nil
}

func (r *CommentRepository) ListAllByTicket(ctx context.Context, ticketID uint) ([]*ticket.Comment, error) {
	var rows []commentRow
	tx := db.GetTxFromContext(ctx, r.db)

	if err := r.joined(tx).
		Where("tc.ticket_id = ?", ticketID).
		Order("tc.created_at DESC").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	return commentsToDomain(rows), nil
}

func commentsToDomain(rows []commentRow) []*ticket.Comment {
	out := make([]*ticket.Comment, 0, len(rows))
	for i := range rows {
		c := mappers.CommentToDomain(&rows[i].TicketCommentModel)
		c.AuthorUsername = rows[i].AuthorUsername
		out = append(out, c)
	}
	return out
}

type AskRepository struct {
	db *gorm.DB
}

func NewAskRepository(db *gorm.DB) *AskRepository {
	return &AskRepository{db: db}
}

func (r *AskRepository) Create(ctx context.Context, a *ticket.Ask) error {
	model := mappers.AskToModel(a)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to create ask: %w", err)
	}
	a.ID = model.ID
	return nil
}

func (r *AskRepository) Update(ctx context.Context, a *ticket.Ask) error {
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.
		Model(&models.TicketAskModel{}).
		Where("id = ?", a.ID).
		Updates(map[string]interface{}{
			"status":    a.Status.String(),
			"notes":     a.Notes,
			"edited_at": a.EditedAt,
		})
	if result.Error != nil {
		return updateErr(result.Error, "ask")
	}
	if result.RowsAffected == 0 {
		return notFoundOr(gorm.ErrRecordNotFound, "ask")
	}
	return nil
}

func (r *AskRepository) GetByID(ctx context.Context, id uint) (*ticket.Ask, error) {
	var model models.TicketAskModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.First(&model, id).Error; err != nil {
		return nil, notFoundOr(err, "ask")
	}
	return mappers.AskToDomain(&model), nil
}

func (r *AskRepository) FindLatest(ctx context.Context, ticketID, contactID uint) (*ticket.Ask, error) {
	var model models.TicketAskModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Where("ticket_id = ? AND contact_id = ?", ticketID, contactID).
		Order("created_at DESC").
		Order("id DESC").
		Take(&model).Error; err != nil {
		return nil, notFoundOr(err, "ask")
	}
	return mappers.AskToDomain(&model), nil
}

func (r *AskRepository) ListByTicket(ctx context.Context, ticketID uint) ([]*ticket.Ask, error) {
	var list []models.TicketAskModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Where("ticket_id = ?", ticketID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to list asks: %w", err)
	}

	out := make([]*ticket.Ask, 0, len(list))
	for i := range list {
		out = append(out, mappers.AskToDomain(&list[i]))
	}
	return out, nil
}

// CountOutcomes returns the number of asks to the contact per ticket type and
// ask status.
func (r *AskRepository) CountOutcomes(ctx context.Context, contactID uint) ([]ticket.AskOutcomeCount, error) {
	type row struct {
		TicketType string
		Status     string
		Total      int64
	}
	var rows []row
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Table(constants.TableTicketAsks+" AS a").
		Select("t.ticket_type AS ticket_type, a.status AS status, COUNT(*) AS total").
		Joins("JOIN "+constants.TableTickets+" AS t ON t.id = a.ticket_id").
		Where("a.contact_id = ?", contactID).
		Group("t.ticket_type, a.status").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to count ask outcomes: %w", err)
	}

	out := make([]ticket.AskOutcomeCount, 0, len(rows))
	for _, r := range rows {
		out = append(out, ticket.AskOutcomeCount{
			Type:   vo.TicketType(r.TicketType),
			Status: vo.AskStatus(r.Status),
			Count:  r.Total,
		})
	}
	return out, nil
}

type AuditLogRepository struct {
	db *gorm.DB
}

func NewAuditLogRepository(db *gorm.DB) *AuditLogRepository {
	return &AuditLogRepository{db: db}
}

type auditRow struct {
	models.TicketAuditLogModel
	ActorUsername string
}

func (r *AuditLogRepository) joined(tx *gorm.DB) *gorm.DB {
	return tx.
		Table(constants.TableTicketAuditLogs + " AS al").
		Select("al.*, COALESCE(u.username, '') AS actor_username").
		Joins("LEFT JOIN " + constants.TableUsers + " AS u ON u.id = al.actor_id")
}

func (r *AuditLogRepository) Append(ctx context.Context, e *ticket.AuditEntry) error {
	model := mappers.AuditEntryToModel(e)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to append audit log: %w", err)
	}
	e.ID = model.ID
	return nil
}

func (r *AuditLogRepository) ListByTicket(ctx context.Context, ticketID uint, page query.PageFilter) ([]*ticket.AuditEntry, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	q := r.joined(tx).Where("al.ticket_id = ?", ticketID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count audit logs: %w", err)
	}

	var rows []auditRow
	if err := q.
		Order("al.created_at DESC").
		Order("al.id DESC").
		Scopes(db.Paginate(page)).
		Scan(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list audit logs: %w", err)
	}
	return auditToDomain(rows), total, nil
}

func (r *AuditLogRepository) ListAllByTicket(ctx context.Context, ticketID uint) ([]*ticket.AuditEntry, error) {
	var rows []auditRow
	tx := db.GetTxFromContext(ctx, r.db)

	if err := r.joined(tx).
		Where("al.ticket_id = ?", ticketID).
		Order("al.created_at DESC").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list audit logs: %w", err)
	}
	return auditToDomain(rows), nil
}

func auditToDomain(rows []auditRow) []*ticket.AuditEntry {
	out := make([]*ticket.AuditEntry, 0, len(rows))
	for i := range rows {
		e := mappers.AuditEntryToDomain(&rows[i].TicketAuditLogModel)
		e.ActorUsername = rows[i].ActorUsername
		out = append(out, e)
	}
	return out
}
