package usecases

import (
	"context"

	"github.com/dggcrm/dggcrm/internal/application/user/dto"
	"github.com/dggcrm/dggcrm/internal/infrastructure/auth"
	"github.com/dggcrm/dggcrm/internal/infrastructure/cache"
	"github.com/dggcrm/dggcrm/internal/shared/authorization"
)

// OAuthClientProvider resolves the configured client for a provider name.
type OAuthClientProvider interface {
	Client(provider string) (auth.OAuthClient, error)
}

// StateStore keeps OAuth state and the PKCE verifier between redirect and
// callback.
type StateStore interface {
	Set(ctx context.Context, state string, info cache.StateInfo) error
	VerifyAndGet(ctx context.Context, state string) (*cache.StateInfo, error)
}

type JWTService interface {
	Generate(userID uint, role authorization.UserRole) (*auth.TokenPair, error)
	VerifyRefresh(tokenString string) (*auth.Claims, error)
}

// RoleSyncer mirrors account roles into the policy enforcer.
type RoleSyncer interface {
	SetUserRole(userID uint, role authorization.UserRole) error
}

type InitiateOAuthExecutor interface {
	Execute(ctx context.Context, cmd InitiateOAuthCommand) (*InitiateOAuthResult, error)
}

type HandleOAuthCallbackExecutor interface {
	Execute(ctx context.Context, cmd HandleOAuthCallbackCommand) (*HandleOAuthCallbackResult, error)
}

type RefreshTokenExecutor interface {
	Execute(ctx context.Context, cmd RefreshTokenCommand) (*RefreshTokenResult, error)
}

type LogoutExecutor interface {
	Execute(ctx context.Context, cmd LogoutCommand) error
}

type GetCurrentUserExecutor interface {
	Execute(ctx context.Context, userID uint) (*dto.UserDTO, error)
}

type UpdateProfileExecutor interface {
	Execute(ctx context.Context, cmd UpdateProfileCommand) (*dto.UserDTO, error)
}

type DeleteSocialConnectionExecutor interface {
	Execute(ctx context.Context, cmd DeleteSocialConnectionCommand) error
}

type ListUsersExecutor interface {
	Execute(ctx context.Context, query ListUsersQuery) (*ListUsersResult, error)
}

type ChangeUserRoleExecutor interface {
	Execute(ctx context.Context, cmd ChangeUserRoleCommand) (*dto.UserDTO, error)
}
