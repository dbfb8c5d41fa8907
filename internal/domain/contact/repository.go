package contact

import (
	"context"
	"time"

	"github.com/dggcrm/dggcrm/internal/shared/query"
)

type Repository interface {
	Create(ctx context.Context, c *Contact) error
	Update(ctx context.Context, c *Contact) error
	Delete(ctx context.Context, id uint) error
	GetByID(ctx context.Context, id uint) (*Contact, error)
	// GetByDiscordID returns the oldest contact with the ID, or a not-found error.
	GetByDiscordID(ctx context.Context, discordID string) (*Contact, error)
	List(ctx context.Context, filter ContactFilter) ([]*Contact, int64, error)
}

// ContactFilter lists contacts. Tag matches by ID when TagID is set, else by
// case-insensitive exact TagName.
type ContactFilter struct {
	query.BaseFilter
	Query         string
	TagID         *uint
	TagName       *string
	GroupID       *uint
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
}

type TagRepository interface {
	Create(ctx context.Context, t *Tag) error
	Update(ctx context.Context, t *Tag) error
	Delete(ctx context.Context, id uint) error
	GetByID(ctx context.Context, id uint) (*Tag, error)
	// GetByName matches case-insensitively.
	GetByName(ctx context.Context, name string) (*Tag, error)
	// GetOrCreate returns the tag matching name case-insensitively, creating
	// it with the default color when missing.
	GetOrCreate(ctx context.Context, name string) (*Tag, bool, error)
	List(ctx context.Context, filter TagFilter) ([]*Tag, int64, error)
	// ListByContacts returns each contact's tags ordered by name.
	ListByContacts(ctx context.Context, contactIDs []uint) (map[uint][]*Tag, error)
}

type TagFilter struct {
	query.BaseFilter
	Query string
}

type TagAssignmentRepository interface {
	// Assign links the pair, returning the existing row when already linked.
	Assign(ctx context.Context, contactID, tagID uint) (*TagAssignment, bool, error)
	GetByID(ctx context.Context, id uint) (*TagAssignment, error)
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, filter TagAssignmentFilter) ([]*TagAssignment, int64, error)
	// Replace deletes every assignment of the contact and inserts tagIDs.
	Replace(ctx context.Context, contactID uint, tagIDs []uint) error
}

type TagAssignmentFilter struct {
	query.PageFilter
	ContactID *uint
	TagID     *uint
	TagName   *string
}

type ActivityRepository interface {
	Append(ctx context.Context, a *Activity) error
	ListByContact(ctx context.Context, contactID uint, filter ActivityFilter) ([]*Activity, int64, error)
}

type ActivityFilter struct {
	query.PageFilter
	Type *ActivityType
}
