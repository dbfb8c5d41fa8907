package usecases

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dggcrm/dggcrm/internal/domain/user"
	"github.com/dggcrm/dggcrm/internal/shared/authorization"
	"github.com/dggcrm/dggcrm/internal/shared/errors"
	"github.com/dggcrm/dggcrm/internal/shared/logger"
)

func seededUsers(t *testing.T) *mockUserRepository {
	t.Helper()
	repo := &mockUserRepository{users: map[uint]*user.User{}}
	for id, role := range map[uint]authorization.UserRole{
		1: authorization.RoleAdmin,
		2: authorization.RoleOrganizer,
		3: authorization.RoleNeedsApproval,
	} {
		u, err := user.ReconstructUser(user.Params{ID: id, Username: fmt.Sprintf("user%d", id), Role: role})
		require.NoError(t, err)
		repo.users[id] = u
	}
	return repo
}

func strPtr(s string) *string { return &s }

func TestGetCurrentUserUseCase_IncludesConnections(t *testing.T) {
	users := seededUsers(t)
	emails := &mockEmailAddressRepository{addresses: []*user.EmailAddress{
		{ID: 1, UserID: 2, Email: "org@example.com", Verified: true, Primary: true},
		{ID: 2, UserID: 3, Email: "other@example.com"},
	}}
	socials := &mockSocialAccountRepository{accounts: []*user.SocialAccount{
		{ID: 1, UserID: 2, Provider: user.ProviderDiscord, UID: "d-1"},
	}}
	uc := NewGetCurrentUserUseCase(users, emails, socials, logger.NewNopLogger())

	got, err := uc.Execute(context.Background(), 2)

	require.NoError(t, err)
	assert.Equal(t, "organizer", got.Role)
	require.Len(t, got.EmailAddresses, 1)
	assert.Equal(t, "org@example.com", got.EmailAddresses[0].Email)
	require.Len(t, got.SocialAccounts, 1)
	assert.Equal(t, "discord", got.SocialAccounts[0].Provider)

	_, err = uc.Execute(context.Background(), 42)
	assert.True(t, errors.IsNotFoundError(err))
}

func TestUpdateProfileUseCase(t *testing.T) {
	users := seededUsers(t)
	uc := NewUpdateProfileUseCase(users, &mockEmailAddressRepository{}, &mockSocialAccountRepository{}, logger.NewNopLogger())

	got, err := uc.Execute(context.Background(), UpdateProfileCommand{
		UserID:    2,
		FirstName: strPtr("  Ada "),
		LastName:  strPtr("Lovelace"),
	})
	require.NoError(t, err)
	assert.Equal(t, "user2", got.Username)
	assert.Equal(t, "Ada Lovelace", got.DisplayName)
	assert.Equal(t, 1, users.updated)

	_, err = uc.Execute(context.Background(), UpdateProfileCommand{UserID: 2, Username: strPtr("   ")})
	assert.True(t, errors.IsValidationError(err))

	_, err = uc.Execute(context.Background(), UpdateProfileCommand{UserID: 2, LastName: strPtr(strings.Repeat("x", 200))})
	assert.True(t, errors.IsValidationError(err))
	assert.Equal(t, 1, users.updated)
}

func TestDeleteSocialConnectionUseCase(t *testing.T) {
	socials := &mockSocialAccountRepository{accounts: []*user.SocialAccount{
		{ID: 1, UserID: 2, Provider: user.ProviderGoogle, UID: "g-1"},
		{ID: 2, UserID: 3, Provider: user.ProviderGoogle, UID: "g-2"},
	}}
	uc := NewDeleteSocialConnectionUseCase(socials, logger.NewNopLogger())

	require.NoError(t, uc.Execute(context.Background(), DeleteSocialConnectionCommand{UserID: 2, Provider: "google"}))
	require.Len(t, socials.accounts, 1)
	assert.Equal(t, uint(3), socials.accounts[0].UserID)

	err := uc.Execute(context.Background(), DeleteSocialConnectionCommand{UserID: 2, Provider: "google"})
	assert.True(t, errors.IsNotFoundError(err))

	err = uc.Execute(context.Background(), DeleteSocialConnectionCommand{UserID: 2, Provider: "twitter"})
	assert.True(t, errors.IsNotFoundError(err))
}

func TestListUsersUseCase_RoleFilter(t *testing.T) {
	uc := NewListUsersUseCase(seededUsers(t), logger.NewNopLogger())

	res, err := uc.Execute(context.Background(), ListUsersQuery{Role: strPtr("needs_approval")})
	require.NoError(t, err)
	require.Len(t, res.Users, 1)
	assert.Equal(t, uint(3), res.Users[0].ID)
	assert.Equal(t, 1, res.Page)
	assert.Equal(t, 20, res.PageSize)

	_, err = uc.Execute(context.Background(), ListUsersQuery{Role: strPtr("superuser")})
	assert.True(t, errors.IsValidationError(err))
}

func TestChangeUserRoleUseCase(t *testing.T) {
	tests := []struct {
		name       string
		cmd        ChangeUserRoleCommand
		wantErr    func(error) bool
		wantRole   authorization.UserRole
		wantSynced bool
	}{
		{
			name:       "approves a pending user",
			cmd:        ChangeUserRoleCommand{ActorID: 1, UserID: 3, Role: "organizer"},
			wantRole:   authorization.RoleOrganizer,
			wantSynced: true,
		},
		{
			name:    "rejects unknown role",
			cmd:     ChangeUserRoleCommand{ActorID: 1, UserID: 3, Role: "owner"},
			wantErr: errors.IsValidationError,
		},
		{
			name:    "admin cannot demote themselves",
			cmd:     ChangeUserRoleCommand{ActorID: 1, UserID: 1, Role: "organizer"},
			wantErr: errors.IsValidationError,
		},
		{
			name:    "missing user",
			cmd:     ChangeUserRoleCommand{ActorID: 1, UserID: 99, Role: "admin"},
			wantErr: errors.IsNotFoundError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := seededUsers(t)
			syncer := &recordingRoleSyncer{}
			uc := NewChangeUserRoleUseCase(users, syncer, logger.NewNopLogger())

			got, err := uc.Execute(context.Background(), tt.cmd)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, tt.wantErr(err), "unexpected error: %v", err)
				assert.Empty(t, syncer.calls)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantRole.String(), got.Role)
			assert.Equal(t, tt.wantRole, users.users[tt.cmd.UserID].Role())
			if tt.wantSynced {
				assert.Equal(t, tt.wantRole, syncer.calls[tt.cmd.UserID])
			}
		})
	}
}
