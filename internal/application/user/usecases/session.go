package usecases

import (
	"context"

	"github.com/dggcrm/dggcrm/internal/domain/user"
	"github.com/dggcrm/dggcrm/internal/shared/errors"
	"github.com/dggcrm/dggcrm/internal/shared/logger"
)

type RefreshTokenCommand struct {
	RefreshToken string
}

type RefreshTokenResult struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64
}

// RefreshTokenUseCase rotates the token pair. The role is re-read from the
// account so role changes apply on the next refresh.
type RefreshTokenUseCase struct {
	userRepo   user.Repository
	jwtService JWTService
	logger     logger.Interface
}

func NewRefreshTokenUseCase(userRepo user.Repository, jwtService JWTService, logger logger.Interface) *RefreshTokenUseCase {
	return &RefreshTokenUseCase{
		userRepo:   userRepo,
		jwtService: jwtService,
		logger:     logger,
	}
}

func (uc *RefreshTokenUseCase) Execute(ctx context.Context, cmd RefreshTokenCommand) (*RefreshTokenResult, error) {
	if cmd.RefreshToken == "" {
		return nil, errors.NewTokenInvalidError("refresh token")
	}
	claims, err := uc.jwtService.VerifyRefresh(cmd.RefreshToken)
	if err != nil {
		return nil, errors.NewTokenInvalidError("refresh token")
	}

	u, err := uc.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.IsNotFoundError(err) {
			uc.logger.Warnw("user not found during token refresh", "user_id", claims.UserID)
			return nil, errors.NewTokenInvalidError("refresh token")
		}
		return nil, err
	}

	tokens, err := uc.jwtService.Generate(u.ID(), u.Role())
	if err != nil {
		uc.logger.Errorw("failed to refresh token", "error", err)
		return nil, errors.NewInternalError("failed to refresh token")
	}

	uc.logger.Infow("token refreshed successfully", "user_id", u.ID())

	return &RefreshTokenResult{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		ExpiresIn:    tokens.ExpiresIn,
	}, nil
}

type LogoutCommand struct {
	UserID *uint
}

// LogoutUseCase records the logout. Tokens are stateless, so the session
// ends when the handler clears the auth cookies.
type LogoutUseCase struct {
	logger logger.Interface
}

func NewLogoutUseCase(logger logger.Interface) *LogoutUseCase {
	return &LogoutUseCase{logger: logger}
}

func (uc *LogoutUseCase) Execute(_ context.Context, cmd LogoutCommand) error {
	uc.logger.Infow("user logged out", "user_id", cmd.UserID)
	return nil
}
