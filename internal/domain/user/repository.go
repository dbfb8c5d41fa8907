package user

import (
	"context"

	"github.com/dggcrm/dggcrm/internal/shared/authorization"
	"github.com/dggcrm/dggcrm/internal/shared/query"
)

type Repository interface {
	Create(ctx context.Context, u *User) error
	Update(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id uint) (*User, error)
	// GetByEmail matches the primary email case-insensitively.
	GetByEmail(ctx context.Context, email string) (*User, error)
	// GetByVerifiedEmail matches a verified secondary address.
	GetByVerifiedEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context, filter UserFilter) ([]*User, int64, error)
	Exists(ctx context.Context, id uint) (bool, error)
}

type UserFilter struct {
	query.BaseFilter
	Query string
	Role  *authorization.UserRole
}

type SocialAccountRepository interface {
	Create(ctx context.Context, a *SocialAccount) error
	Update(ctx context.Context, a *SocialAccount) error
	GetByProviderUID(ctx context.Context, provider Provider, uid string) (*SocialAccount, error)
	ListByUser(ctx context.Context, userID uint) ([]*SocialAccount, error)
	// DeleteByUserProvider returns a not-found error when nothing was linked.
	DeleteByUserProvider(ctx context.Context, userID uint, provider Provider) error
}

type EmailAddressRepository interface {
	Create(ctx context.Context, e *EmailAddress) error
	ListByUser(ctx context.Context, userID uint) ([]*EmailAddress, error)
}
