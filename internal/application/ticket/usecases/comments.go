package usecases

import (
	"context"

	"github.com/dggcrm/dggcrm/internal/application/ticket/dto"
	"github.com/dggcrm/dggcrm/internal/domain/ticket"
	"github.com/dggcrm/dggcrm/internal/shared/errors"
	"github.com/dggcrm/dggcrm/internal/shared/logger"
	"github.com/dggcrm/dggcrm/internal/shared/query"
	"github.com/dggcrm/dggcrm/internal/shared/services/markdown"
)

// AddCommentCommand adds a comment. A nil ActorID records a system comment.
type AddCommentCommand struct {
	TicketID uint
	ActorID  *uint
	Message  string
}

type AddCommentUseCase struct {
	ticketRepo  ticket.TicketRepository
	commentRepo ticket.CommentRepository
	markdown    markdown.MarkdownService
	logger      logger.Interface
}

func NewAddCommentUseCase(
	ticketRepo ticket.TicketRepository,
	commentRepo ticket.CommentRepository,
	markdownService markdown.MarkdownService,
	logger logger.Interface,
) *AddCommentUseCase {
	return &AddCommentUseCase{
		ticketRepo:  ticketRepo,
		commentRepo: commentRepo,
		markdown:    markdownService,
		logger:      logger,
	}
}

func (uc *AddCommentUseCase) Execute(ctx context.Context, cmd AddCommentCommand) (*dto.CommentDTO, error) {
	uc.logger.Infow("executing add comment use case", "ticket_id", cmd.TicketID, "actor_id", cmd.ActorID)

	if _, err := uc.ticketRepo.GetByID(ctx, cmd.TicketID); err != nil {
		return nil, err
	}

	comment, err := ticket.NewComment(cmd.TicketID, cmd.ActorID, cmd.Message)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if err := uc.commentRepo.Create(ctx, comment); err != nil {
		uc.logger.Errorw("failed to save comment", "ticket_id", cmd.TicketID, "error", err)
		return nil, err
	}

	uc.logger.Infow("comment added", "ticket_id", cmd.TicketID, "comment_id", comment.ID)
	return dto.ToCommentDTO(comment, uc.markdown.Render(comment.Message)), nil
}

type ListCommentsQuery struct {
	TicketID uint
	query.PageFilter
}

type ListCommentsResult struct {
	Comments []*dto.CommentDTO
	Total    int64
	Page     int
	PageSize int
}

type ListCommentsUseCase struct {
	ticketRepo  ticket.TicketRepository
	commentRepo ticket.CommentRepository
	markdown    markdown.MarkdownService
	logger      logger.Interface
}

func NewListCommentsUseCase(
	ticketRepo ticket.TicketRepository,
	commentRepo ticket.CommentRepository,
	markdownService markdown.MarkdownService,
	logger logger.Interface,
) *ListCommentsUseCase {
	return &ListCommentsUseCase{
		ticketRepo:  ticketRepo,
		commentRepo: commentRepo,
		markdown:    markdownService,
		logger:      logger,
	}
}

func (uc *ListCommentsUseCase) Execute(ctx context.Context, q ListCommentsQuery) (*ListCommentsResult, error) {
	if _, err := uc.ticketRepo.GetByID(ctx, q.TicketID); err != nil {
		return nil, err
	}

	comments, total, err := uc.commentRepo.ListByTicket(ctx, q.TicketID, q.PageFilter)
	if err != nil {
		uc.logger.Errorw("failed to list comments", "ticket_id", q.TicketID, "error", err)
		return nil, err
	}

	out := make([]*dto.CommentDTO, 0, len(comments))
	for _, c := range comments {
		out = append(out, dto.ToCommentDTO(c, uc.markdown.Render(c.Message)))
	}
	return &ListCommentsResult{
		Comments: out,
		Total:    total,
		Page:     pageNumber(q.PageFilter),
		PageSize: q.Limit(),
	}, nil
}

type ListAuditLogsQuery struct {
	TicketID uint
	query.PageFilter
}

type ListAuditLogsResult struct {
	Entries  []*dto.AuditLogDTO
	Total    int64
	Page     int
	PageSize int
}

type ListAuditLogsUseCase struct {
	ticketRepo ticket.TicketRepository
	auditRepo  ticket.AuditLogRepository
	logger     logger.Interface
}

func NewListAuditLogsUseCase(
	ticketRepo ticket.TicketRepository,
	auditRepo ticket.AuditLogRepository,
	logger logger.Interface,
) *ListAuditLogsUseCase {
	return &ListAuditLogsUseCase{
		ticketRepo: ticketRepo,
		auditRepo:  auditRepo,
		logger:     logger,
	}
}

func (uc *ListAuditLogsUseCase) Execute(ctx context.Context, q ListAuditLogsQuery) (*ListAuditLogsResult, error) {
	if _, err := uc.ticketRepo.GetByID(ctx, q.TicketID); err != nil {
		return nil, err
	}

	entries, total, err := uc.auditRepo.ListByTicket(ctx, q.TicketID, q.PageFilter)
	if err != nil {
		uc.logger.Errorw("failed to list audit logs", "ticket_id", q.TicketID, "error", err)
		return nil, err
	}
	return &ListAuditLogsResult{
		Entries:  dto.ToAuditLogDTOs(entries),
		Total:    total,
		Page:     pageNumber(q.PageFilter),
		PageSize: q.Limit(),
	}, nil
}
