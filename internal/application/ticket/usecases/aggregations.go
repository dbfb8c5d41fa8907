package usecases

import (
	"context"
	"time"

	"github.com/dggcrm/dggcrm/internal/application/ticket/dto"
	"github.com/dggcrm/dggcrm/internal/domain/contact"
	"github.com/dggcrm/dggcrm/internal/domain/shared"
	"github.com/dggcrm/dggcrm/internal/domain/ticket"
	vo "github.com/dggcrm/dggcrm/internal/domain/ticket/valueobjects"
	"github.com/dggcrm/dggcrm/internal/shared/errors"
	"github.com/dggcrm/dggcrm/internal/shared/logger"
	"github.com/dggcrm/dggcrm/internal/shared/query"
	"github.com/dggcrm/dggcrm/internal/shared/services/markdown"
)

type GetTimelineQuery struct {
	TicketID uint
	Mode     string
	query.PageFilter
}

type GetTimelineResult struct {
	Items    []dto.TimelineItemDTO
	Total    int64
	Page     int
	PageSize int
}

type GetTimelineUseCase struct {
	ticketRepo  ticket.TicketRepository
	auditRepo   ticket.AuditLogRepository
	commentRepo ticket.CommentRepository
	markdown    markdown.MarkdownService
	logger      logger.Interface
}

func NewGetTimelineUseCase(
	ticketRepo ticket.TicketRepository,
	auditRepo ticket.AuditLogRepository,
	commentRepo ticket.CommentRepository,
	markdownService markdown.MarkdownService,
	logger logger.Interface,
) *GetTimelineUseCase {
	return &GetTimelineUseCase{
		ticketRepo:  ticketRepo,
		auditRepo:   auditRepo,
		commentRepo: commentRepo,
		markdown:    markdownService,
		logger:      logger,
	}
}

// Execute merges both sources before paging so that a page boundary never
// depends on how the items were split between them.
func (uc *GetTimelineUseCase) Execute(ctx context.Context, q GetTimelineQuery) (*GetTimelineResult, error) {
	mode, err := ticket.ParseTimelineMode(q.Mode)
	if err != nil {
		return nil, errors.NewValidationError("invalid mode", err.Error())
	}
	if _, err := uc.ticketRepo.GetByID(ctx, q.TicketID); err != nil {
		return nil, err
	}

	var (
		audits   []*ticket.AuditEntry
		comments []*ticket.Comment
	)
	if mode.IncludesAudit() {
		if audits, err = uc.auditRepo.ListAllByTicket(ctx, q.TicketID); err != nil {
			uc.logger.Errorw("failed to load audit logs", "ticket_id", q.TicketID, "error", err)
			return nil, err
		}
	}
	if mode.IncludesComments() {
		if comments, err = uc.commentRepo.ListAllByTicket(ctx, q.TicketID); err != nil {
			uc.logger.Errorw("failed to load comments", "ticket_id", q.TicketID, "error", err)
			return nil, err
		}
	}

	merged := ticket.MergeTimeline(audits, comments, mode)
	page := ticket.PageTimeline(merged, q.PageFilter)

	items := make([]dto.TimelineItemDTO, 0, len(page))
	for _, item := range page {
		items = append(items, dto.ToTimelineItemDTO(item, uc.markdown.Render))
	}
	return &GetTimelineResult{
		Items:    items,
		Total:    int64(len(merged)),
		Page:     pageNumber(q.PageFilter),
		PageSize: q.Limit(),
	}, nil
}

// GroupTicketsByContactQuery counts, per contact, the tickets in Status
// (COMPLETED when empty).
type GroupTicketsByContactQuery struct {
	query.PageFilter
	Status     string
	Type       *string
	MinDate    *time.Time
	MaxDate    *time.Time
	MinTickets *int
	MaxTickets *int
}

type GroupTicketsByContactResult struct {
	Rows     []dto.ContactTicketCountDTO
	Total    int64
	Page     int
	PageSize int
}

type GroupTicketsByContactUseCase struct {
	ticketRepo ticket.TicketRepository
	logger     logger.Interface
}

func NewGroupTicketsByContactUseCase(ticketRepo ticket.TicketRepository, logger logger.Interface) *GroupTicketsByContactUseCase {
	return &GroupTicketsByContactUseCase{
		ticketRepo: ticketRepo,
		logger:     logger,
	}
}

func (uc *GroupTicketsByContactUseCase) Execute(ctx context.Context, q GroupTicketsByContactQuery) (*GroupTicketsByContactResult, error) {
	status := vo.StatusCompleted
	if q.Status != "" {
		parsed, err := vo.NewTicketStatus(q.Status)
		if err != nil {
			return nil, errors.NewValidationError("invalid status", err.Error())
		}
		status = parsed
	}
	ticketType, err := parseType(q.Type)
	if err != nil {
		return nil, err
	}
	base, err := shared.NewGroupByContactFilter(q.PageFilter, q.MinTickets, q.MaxTickets, q.MinDate, q.MaxDate)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	rows, total, err := uc.ticketRepo.CountByContact(ctx, ticket.ContactTicketCountFilter{
		GroupByContactFilter: base,
		Status:               status,
		Type:                 ticketType,
	})
	if err != nil {
		uc.logger.Errorw("failed to group tickets by contact", "error", err)
		return nil, err
	}

	return &GroupTicketsByContactResult{
		Rows:     dto.ToContactTicketCountDTOs(rows),
		Total:    total,
		Page:     pageNumber(q.PageFilter),
		PageSize: q.Limit(),
	}, nil
}

type GetAcceptanceRateQuery struct {
	ContactID uint
}

type GetAcceptanceRateUseCase struct {
	contactRepo contact.Repository
	askRepo     ticket.AskRepository
	logger      logger.Interface
}

func NewGetAcceptanceRateUseCase(contactRepo contact.Repository, askRepo ticket.AskRepository, logger logger.Interface) *GetAcceptanceRateUseCase {
	return &GetAcceptanceRateUseCase{
		contactRepo: contactRepo,
		askRepo:     askRepo,
		logger:      logger,
	}
}

func (uc *GetAcceptanceRateUseCase) Execute(ctx context.Context, q GetAcceptanceRateQuery) (*dto.AcceptanceStatsDTO, error) {
	if _, err := uc.contactRepo.GetByID(ctx, q.ContactID); err != nil {
		return nil, err
	}

	counts, err := uc.askRepo.CountOutcomes(ctx, q.ContactID)
	if err != nil {
		uc.logger.Errorw("failed to count ask outcomes", "contact_id", q.ContactID, "error", err)
		return nil, err
	}
	return dto.ToAcceptanceStatsDTO(q.ContactID, ticket.ComputeAcceptanceRates(counts)), nil
}
