package usecases

import (
	"context"
	"strings"

	"github.com/dggcrm/dggcrm/internal/domain/user"
	"github.com/dggcrm/dggcrm/internal/infrastructure/auth"
	"github.com/dggcrm/dggcrm/internal/shared/biztime"
	"github.com/dggcrm/dggcrm/internal/shared/constants"
	"github.com/dggcrm/dggcrm/internal/shared/db"
	"github.com/dggcrm/dggcrm/internal/shared/errors"
	"github.com/dggcrm/dggcrm/internal/shared/logger"
)

type HandleOAuthCallbackCommand struct {
	Provider string
	Code     string
	State    string
}

type HandleOAuthCallbackResult struct {
	User         *user.User
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64
	// Linked is true when this login attached a new social account.
	Linked bool
}

// HandleOAuthCallbackUseCase completes a social login. It only signs in
// existing accounts: the provider identity is matched by social account,
// then primary email, then a verified secondary email.
type HandleOAuthCallbackUseCase struct {
	userRepo   user.Repository
	socialRepo user.SocialAccountRepository
	clients    OAuthClientProvider
	stateStore StateStore
	jwtService JWTService
	txMgr      db.Transactor
	logger     logger.Interface
}

func NewHandleOAuthCallbackUseCase(
	userRepo user.Repository,
	socialRepo user.SocialAccountRepository,
	clients OAuthClientProvider,
	stateStore StateStore,
	jwtService JWTService,
	txMgr db.Transactor,
	logger logger.Interface,
) *HandleOAuthCallbackUseCase {
	return &HandleOAuthCallbackUseCase{
		userRepo:   userRepo,
		socialRepo: socialRepo,
		clients:    clients,
		stateStore: stateStore,
		jwtService: jwtService,
		txMgr:      txMgr,
		logger:     logger,
	}
}

func (uc *HandleOAuthCallbackUseCase) Execute(ctx context.Context, cmd HandleOAuthCallbackCommand) (*HandleOAuthCallbackResult, error) {
	provider, err := user.NewProvider(cmd.Provider)
	if err != nil {
		return nil, errors.NewOAuthError(cmd.Provider, string(constants.SocialErrorUnsupported))
	}
	if cmd.Code == "" {
		return nil, errors.NewOAuthError(cmd.Provider, string(constants.SocialErrorMissingCode))
	}

	stateInfo, err := uc.stateStore.VerifyAndGet(ctx, cmd.State)
	if err != nil || stateInfo.Provider != cmd.Provider {
		uc.logger.Warnw("invalid or expired OAuth state", "provider", cmd.Provider, "error", err)
		return nil, errors.NewOAuthError(cmd.Provider, string(constants.SocialErrorInvalidState))
	}

	client, err := uc.clients.Client(cmd.Provider)
	if err != nil {
		return nil, errors.NewOAuthError(cmd.Provider, string(constants.SocialErrorUnsupported), err.Error())
	}

	accessToken, err := client.ExchangeCode(ctx, cmd.Code, stateInfo.CodeVerifier)
	if err != nil {
		uc.logger.Errorw("failed to exchange code", "error", err, "provider", cmd.Provider)
		return nil, errors.NewOAuthError(cmd.Provider, string(constants.SocialErrorProviderError), err.Error())
	}

	info, err := client.GetUserInfo(ctx, accessToken)
	if err != nil {
		uc.logger.Errorw("failed to get user info", "error", err, "provider", cmd.Provider)
		return nil, errors.NewOAuthError(cmd.Provider, string(constants.SocialErrorProviderError), err.Error())
	}
	email := strings.TrimSpace(info.Email)
	if email == "" {
		return nil, errors.NewLoginNotAllowedError(string(constants.SocialErrorNoEmail), "")
	}

	var (
		account *user.User
		linked  bool
	)
	err = uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		resolved, isNew, err := uc.resolveAccount(txCtx, provider, info, email)
		if err != nil {
			return err
		}
		account, linked = resolved, isNew
		account.RecordLogin()
		return uc.userRepo.Update(txCtx, account)
	})
	if err != nil {
		if errors.ShouldLogAuthError(err) {
			uc.logger.Errorw("OAuth login failed", "provider", cmd.Provider, "error", err)
		}
		return nil, err
	}

	tokens, err := uc.jwtService.Generate(account.ID(), account.Role())
	if err != nil {
		uc.logger.Errorw("failed to generate JWT tokens", "error", err)
		return nil, errors.NewInternalError("failed to generate tokens")
	}

	uc.logger.Infow("OAuth login successful",
		"user_id", account.ID(),
		"provider", cmd.Provider,
		"linked", linked,
	)

	return &HandleOAuthCallbackResult{
		User:         account,
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		ExpiresIn:    tokens.ExpiresIn,
		Linked:       linked,
	}, nil
}

func (uc *HandleOAuthCallbackUseCase) resolveAccount(ctx context.Context, provider user.Provider, info *auth.OAuthUserInfo, email string) (*user.User, bool, error) {
	social, err := uc.socialRepo.GetByProviderUID(ctx, provider, info.ProviderID)
	switch {
	case err == nil:
		u, err := uc.userRepo.GetByID(ctx, social.UserID)
		if err != nil {
			return nil, false, err
		}
		now := biztime.NowUTC()
		social.LastLoginAt = &now
		if err := uc.socialRepo.Update(ctx, social); err != nil {
			uc.logger.Warnw("failed to update social account", "error", err, "social_account_id", social.ID)
		}
		return u, false, nil
	case !errors.IsNotFoundError(err):
		return nil, false, err
	}

	u, err := uc.userRepo.GetByEmail(ctx, email)
	if errors.IsNotFoundError(err) {
		u, err = uc.userRepo.GetByVerifiedEmail(ctx, email)
	}
	if errors.IsNotFoundError(err) {
		return nil, false, errors.NewLoginNotAllowedError(string(constants.SocialErrorNoUser), email)
	}
	if err != nil {
		return nil, false, err
	}

	now := biztime.NowUTC()
	link := &user.SocialAccount{
		UserID:      u.ID(),
		Provider:    provider,
		UID:         info.ProviderID,
		LastLoginAt: &now,
		CreatedAt:   now,
	}
	if err := uc.socialRepo.Create(ctx, link); err != nil {
		return nil, false, err
	}
	return u, true, nil
}
