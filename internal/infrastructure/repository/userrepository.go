package repository

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/dggcrm/dggcrm/internal/domain/user"
	"github.com/dggcrm/dggcrm/internal/infrastructure/persistence/mappers"
	"github.com/dggcrm/dggcrm/internal/infrastructure/persistence/models"
	"github.com/dggcrm/dggcrm/internal/shared/db"
	"github.com/dggcrm/dggcrm/internal/shared/logger"
	"github.com/dggcrm/dggcrm/internal/shared/query"
)

var defaultUserOrder = []query.OrderTerm{{Column: "username"}}

// UserRepository implements user.Repository with GORM.
type UserRepository struct {
	db     *gorm.DB
	mapper mappers.UserMapper
	logger logger.Interface
}

func NewUserRepository(db *gorm.DB, logger logger.Interface) *UserRepository {
	return &UserRepository{
		db:     db,
		mapper: mappers.NewUserMapper(),
		logger: logger,
	}
}

func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	model := r.mapper.ToModel(u)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return createErr(err, "user")
	}
	if err := u.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set user ID: %w", err)
	}

	r.logger.Infow("user created", "id", model.ID, "username", model.Username)
	return nil
}

func (r *UserRepository) Update(ctx context.Context, u *user.User) error {
	model := r.mapper.ToModel(u)
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.
		Model(&models.UserModel{}).
		Where("id = ?", model.ID).
		Select("*").
		Omit("id", "created_at").
		Updates(model)
	if result.Error != nil {
		return updateErr(result.Error, "user")
	}
	if result.RowsAffected == 0 {
		return notFoundOr(gorm.ErrRecordNotFound, "user")
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id uint) (*user.User, error) {
	var model models.UserModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.First(&model, id).Error; err != nil {
		return nil, notFoundOr(err, "user")
	}
	return r.mapper.ToDomain(&model)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	var model models.UserModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Where("LOWER(email) = ?", strings.ToLower(strings.TrimSpace(email))).
		Take(&model).Error; err != nil {
		return nil, notFoundOr(err, "user")
	}
	return r.mapper.ToDomain(&model)
}

func (r *UserRepository) GetByVerifiedEmail(ctx context.Context, email string) (*user.User, error) {
	var model models.UserModel
	tx := db.GetTxFromContext(ctx, r.db)

	sub := tx.Session(&gorm.Session{NewDB: true}).
		Model(&models.UserEmailAddressModel{}).
		Select("user_id").
		Where("LOWER(email) = ? AND verified = ?", strings.ToLower(strings.TrimSpace(email)), true)
	if err := tx.
		Where("id IN (?)", sub).
		Order("id ASC").
		First(&model).Error; err != nil {
		return nil, notFoundOr(err, "user")
	}
	return r.mapper.ToDomain(&model)
}

func (r *UserRepository) List(ctx context.Context, filter user.UserFilter) ([]*user.User, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	q := tx.Model(&models.UserModel{}).
		Scopes(db.ContainsFold(filter.Query, "username", "email", "first_name", "last_name"))
	if filter.Role != nil {
		q = q.Where("role = ?", filter.Role.String())
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	var list []models.UserModel
	if err := q.
		Scopes(db.Ordered(filter.SortFilter.OrDefault(defaultUserOrder...), "id"), db.Paginate(filter.PageFilter)).
		Find(&list).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}

	users, err := r.mapper.ToDomainList(list)
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

func (r *UserRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Model(&models.UserModel{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check user existence: %w", err)
	}
	return count > 0, nil
}

type SocialAccountRepository struct {
	db *gorm.DB
}

func NewSocialAccountRepository(db *gorm.DB) *SocialAccountRepository {
	return &SocialAccountRepository{db: db}
}

func (r *SocialAccountRepository) Create(ctx context.Context, a *user.SocialAccount) error {
	model := mappers.SocialAccountToModel(a)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return createErr(err, "social account")
	}
	a.ID = model.ID
	return nil
}

func (r *SocialAccountRepository) Update(ctx context.Context, a *user.SocialAccount) error {
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.
		Model(&models.SocialAccountModel{}).
		Where("id = ?", a.ID).
		Update("last_login_at", a.LastLoginAt)
	if result.Error != nil {
		return updateErr(result.Error, "social account")
	}
	if result.RowsAffected == 0 {
		return notFoundOr(gorm.ErrRecordNotFound, "social account")
	}
	return nil
}

func (r *SocialAccountRepository) GetByProviderUID(ctx context.Context, provider user.Provider, uid string) (*user.SocialAccount, error) {
	var model models.SocialAccountModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Where("provider = ? AND uid = ?", provider.String(), uid).
		Take(&model).Error; err != nil {
		return nil, notFoundOr(err, "social account")
	}
	return mappers.SocialAccountToDomain(&model), nil
}

func (r *SocialAccountRepository) ListByUser(ctx context.Context, userID uint) ([]*user.SocialAccount, error) {
	var list []models.SocialAccountModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Where("user_id = ?", userID).Order("provider ASC").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to list social accounts: %w", err)
	}

	out := make([]*user.SocialAccount, 0, len(list))
	for i := range list {
		out = append(out, mappers.SocialAccountToDomain(&list[i]))
	}
	return out, nil
}

func (r *SocialAccountRepository) DeleteByUserProvider(ctx context.Context, userID uint, provider user.Provider) error {
	tx := db.GetTxFromContext(ctx, r.db)
	return deleteResult(
		tx.Where("user_id = ? AND provider = ?", userID, provider.String()).Delete(&models.SocialAccountModel{}),
		"social account",
	)
}

type EmailAddressRepository struct {
	db *gorm.DB
}

func NewEmailAddressRepository(db *gorm.DB) *EmailAddressRepository {
	return &EmailAddressRepository{db: db}
}

func (r *EmailAddressRepository) Create(ctx context.Context, e *user.EmailAddress) error {
	model := &models.UserEmailAddressModel{
		UserID:   e.UserID,
		Email:    strings.ToLower(strings.TrimSpace(e.Email)),
		Verified: e.Verified,
		Primary:  e.Primary,
	}
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return createErr(err, "email address")
	}
	e.ID = model.ID
	return nil
}

func (r *EmailAddressRepository) ListByUser(ctx context.Context, userID uint) ([]*user.EmailAddress, error) {
	var list []models.UserEmailAddressModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Where("user_id = ?", userID).Order("is_primary DESC").Order("id ASC").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to list email addresses: %w", err)
	}

	out := make([]*user.EmailAddress, 0, len(list))
	for i := range list {
		out = append(out, mappers.EmailAddressToDomain(&list[i]))
	}
	return out, nil
}
