package usecases

import (
	"context"
	"strings"

	"github.com/dggcrm/dggcrm/internal/application/contact/dto"
	"github.com/dggcrm/dggcrm/internal/domain/contact"
	"github.com/dggcrm/dggcrm/internal/shared/db"
	"github.com/dggcrm/dggcrm/internal/shared/errors"
	"github.com/dggcrm/dggcrm/internal/shared/logger"
)

// UpsertPersonWithTagsCommand identifies the person by DiscordID. Every
// scalar field is written as given and Tags becomes the full tag set.
type UpsertPersonWithTagsCommand struct {
	DiscordID string
	FullName  string
	Email     string
	Phone     string
	Note      string
	Tags      []string
}

type UpsertPersonWithTagsUseCase struct {
	contactRepo    contact.Repository
	tagRepo        contact.TagRepository
	assignmentRepo contact.TagAssignmentRepository
	txMgr          db.Transactor
	logger         logger.Interface
}

func NewUpsertPersonWithTagsUseCase(
	contactRepo contact.Repository,
	tagRepo contact.TagRepository,
	assignmentRepo contact.TagAssignmentRepository,
	txMgr db.Transactor,
	logger logger.Interface,
) *UpsertPersonWithTagsUseCase {
	return &UpsertPersonWithTagsUseCase{
		contactRepo:    contactRepo,
		tagRepo:        tagRepo,
		assignmentRepo: assignmentRepo,
		txMgr:          txMgr,
		logger:         logger,
	}
}

func (uc *UpsertPersonWithTagsUseCase) Execute(ctx context.Context, cmd UpsertPersonWithTagsCommand) (*dto.ContactWithTagsDTO, error) {
	discordID := strings.TrimSpace(cmd.DiscordID)
	if discordID == "" {
		return nil, errors.NewValidationError("discord_id is required")
	}

	fields := contact.Fields{
		FullName:  cmd.FullName,
		DiscordID: discordID,
		Email:     cmd.Email,
		Phone:     cmd.Phone,
		Note:      cmd.Note,
	}

	var (
		person  *contact.Contact
		tags    []*contact.Tag
		created bool
	)
	err := uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		existing, err := uc.contactRepo.GetByDiscordID(txCtx, discordID)
		switch {
		case err == nil:
			if err := existing.Overwrite(fields); err != nil {
				return errors.NewValidationError(err.Error())
			}
			if err := uc.contactRepo.Update(txCtx, existing); err != nil {
				return err
			}
			person = existing
		case errors.IsNotFoundError(err):
			fresh, err := contact.NewContact(fields)
			if err != nil {
				return errors.NewValidationError(err.Error())
			}
			if err := uc.contactRepo.Create(txCtx, fresh); err != nil {
				return err
			}
			person = fresh
			created = true
		default:
			return err
		}

		names := contact.UniqueTagNames(cmd.Tags)
		tags = make([]*contact.Tag, 0, len(names))
		tagIDs := make([]uint, 0, len(names))
		for _, name := range names {
			t, _, err := uc.tagRepo.GetOrCreate(txCtx, name)
			if err != nil {
				return err
			}
			tags = append(tags, t)
			tagIDs = append(tagIDs, t.ID())
		}

		return uc.assignmentRepo.Replace(txCtx, person.ID(), tagIDs)
	})
	if err != nil {
		uc.logger.Errorw("failed to upsert person with tags", "discord_id", discordID, "error", err)
		return nil, err
	}

	uc.logger.Infow("person upserted",
		"contact_id", person.ID(),
		"created", created,
		"tag_count", len(tags),
	)

	return &dto.ContactWithTagsDTO{
		ContactDTO: *dto.ToContactDTO(person),
		Tags:       dto.ToTagDTOs(tags),
		Created:    created,
	}, nil
}
