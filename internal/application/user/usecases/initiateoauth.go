package usecases

import (
	"context"
	"fmt"

	"github.com/dggcrm/dggcrm/internal/domain/user"
	"github.com/dggcrm/dggcrm/internal/infrastructure/auth"
	"github.com/dggcrm/dggcrm/internal/infrastructure/cache"
	"github.com/dggcrm/dggcrm/internal/shared/biztime"
	"github.com/dggcrm/dggcrm/internal/shared/constants"
	"github.com/dggcrm/dggcrm/internal/shared/errors"
	"github.com/dggcrm/dggcrm/internal/shared/logger"
)

type InitiateOAuthCommand struct {
	Provider string
}

type InitiateOAuthResult struct {
	AuthURL string
	State   string
}

type InitiateOAuthUseCase struct {
	clients    OAuthClientProvider
	stateStore StateStore
	logger     logger.Interface
}

func NewInitiateOAuthUseCase(clients OAuthClientProvider, stateStore StateStore, logger logger.Interface) *InitiateOAuthUseCase {
	return &InitiateOAuthUseCase{
		clients:    clients,
		stateStore: stateStore,
		logger:     logger,
	}
}

func (uc *InitiateOAuthUseCase) Execute(ctx context.Context, cmd InitiateOAuthCommand) (*InitiateOAuthResult, error) {
	if _, err := user.NewProvider(cmd.Provider); err != nil {
		return nil, errors.NewOAuthError(cmd.Provider, string(constants.SocialErrorUnsupported))
	}
	client, err := uc.clients.Client(cmd.Provider)
	if err != nil {
		return nil, errors.NewOAuthError(cmd.Provider, string(constants.SocialErrorUnsupported), err.Error())
	}

	state, err := auth.GenerateState()
	if err != nil {
		uc.logger.Errorw("failed to generate state", "error", err)
		return nil, fmt.Errorf("failed to generate state: %w", err)
	}

	authURL, codeVerifier, err := client.GetAuthURL(state)
	if err != nil {
		uc.logger.Errorw("failed to get auth URL", "error", err, "provider", cmd.Provider)
		return nil, fmt.Errorf("failed to get auth URL: %w", err)
	}

	info := cache.StateInfo{
		Provider:     cmd.Provider,
		CodeVerifier: codeVerifier,
		CreatedAt:    biztime.NowUTC(),
	}
	if err := uc.stateStore.Set(ctx, state, info); err != nil {
		uc.logger.Errorw("failed to store OAuth state", "error", err)
		return nil, fmt.Errorf("failed to store state: %w", err)
	}

	uc.logger.Infow("OAuth login initiated", "provider", cmd.Provider)

	return &InitiateOAuthResult{
		AuthURL: authURL,
		State:   state,
	}, nil
}
