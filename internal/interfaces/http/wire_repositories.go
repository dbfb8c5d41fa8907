package http

import (
	"gorm.io/gorm"

	"github.com/dggcrm/dggcrm/internal/domain/contact"
	"github.com/dggcrm/dggcrm/internal/domain/event"
	"github.com/dggcrm/dggcrm/internal/domain/group"
	"github.com/dggcrm/dggcrm/internal/domain/ticket"
	"github.com/dggcrm/dggcrm/internal/domain/user"
	"github.com/dggcrm/dggcrm/internal/infrastructure/repository"
	"github.com/dggcrm/dggcrm/internal/shared/db"
	"github.com/dggcrm/dggcrm/internal/shared/logger"
)

// repositories holds all repository instances used by the application.
type repositories struct {
	txMgr db.Transactor

	userRepo   user.Repository
	socialRepo user.SocialAccountRepository
	emailRepo  user.EmailAddressRepository

	contactRepo    contact.Repository
	activityRepo   contact.ActivityRepository
	tagRepo        contact.TagRepository
	assignmentRepo contact.TagAssignmentRepository

	eventRepo         event.Repository
	participationRepo event.ParticipationRepository
	userInEventRepo   event.UserInEventRepository

	groupRepo      group.Repository
	membershipRepo group.MembershipRepository

	ticketRepo  ticket.TicketRepository
	commentRepo ticket.CommentRepository
	askRepo     ticket.AskRepository
	auditRepo   ticket.AuditLogRepository
}

func newRepositories(database *gorm.DB, log logger.Interface) *repositories {
	return &repositories{
		txMgr: db.NewTransactionManager(database),

		userRepo:   repository.NewUserRepository(database, log),
		socialRepo: repository.NewSocialAccountRepository(database),
		emailRepo:  repository.NewEmailAddressRepository(database),

		contactRepo:    repository.NewContactRepository(database),
		activityRepo:   repository.NewActivityRepository(database),
		tagRepo:        repository.NewTagRepository(database),
		assignmentRepo: repository.NewTagAssignmentRepository(database),

		eventRepo:         repository.NewEventRepository(database),
		participationRepo: repository.NewParticipationRepository(database),
		userInEventRepo:   repository.NewUserInEventRepository(database),

		groupRepo:      repository.NewGroupRepository(database),
		membershipRepo: repository.NewMembershipRepository(database),

		ticketRepo:  repository.NewTicketRepository(database),
		commentRepo: repository.NewCommentRepository(database),
		askRepo:     repository.NewAskRepository(database),
		auditRepo:   repository.NewAuditLogRepository(database),
	}
}
