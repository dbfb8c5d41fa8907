package usecases

import (
	"context"
	"fmt"
	"strings"

	"github.com/dggcrm/dggcrm/internal/domain/user"
	"github.com/dggcrm/dggcrm/internal/infrastructure/auth"
	"github.com/dggcrm/dggcrm/internal/shared/authorization"
	"github.com/dggcrm/dggcrm/internal/shared/errors"
)

type mockTransactor struct{}

func (mockTransactor) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type mockUserRepository struct {
	users         map[uint]*user.User
	verifiedEmail map[string]uint
	updated       int
}

func (m *mockUserRepository) Create(_ context.Context, u *user.User) error {
	if err := u.SetID(uint(len(m.users) + 1)); err != nil {
		return err
	}
	m.users[u.ID()] = u
	return nil
}

func (m *mockUserRepository) Update(context.Context, *user.User) error {
	m.updated++
	return nil
}

func (m *mockUserRepository) GetByID(_ context.Context, id uint) (*user.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, errors.NewNotFoundError("user not found")
}

func (m *mockUserRepository) GetByEmail(_ context.Context, email string) (*user.User, error) {
	for _, u := range m.users {
		if strings.EqualFold(u.Email(), email) {
			return u, nil
		}
	}
	return nil, errors.NewNotFoundError("user not found")
}

func (m *mockUserRepository) GetByVerifiedEmail(ctx context.Context, email string) (*user.User, error) {
	if id, ok := m.verifiedEmail[strings.ToLower(email)]; ok {
		return m.GetByID(ctx, id)
	}
	return nil, errors.NewNotFoundError("user not found")
}

func (m *mockUserRepository) List(_ context.Context, filter user.UserFilter) ([]*user.User, int64, error) {
	var out []*user.User
	for _, u := range m.users {
		if filter.Role != nil && u.Role() != *filter.Role {
			continue
		}
		out = append(out, u)
	}
	return out, int64(len(out)), nil
}

func (m *mockUserRepository) Exists(_ context.Context, id uint) (bool, error) {
	_, ok := m.users[id]
	return ok, nil
}

type mockSocialAccountRepository struct {
	accounts []*user.SocialAccount
}

func (m *mockSocialAccountRepository) Create(_ context.Context, a *user.SocialAccount) error {
	a.ID = uint(len(m.accounts) + 1)
	m.accounts = append(m.accounts, a)
	return nil
}

func (m *mockSocialAccountRepository) Update(context.Context, *user.SocialAccount) error {
	return nil
}

func (m *mockSocialAccountRepository) GetByProviderUID(_ context.Context, provider user.Provider, uid string) (*user.SocialAccount, error) {
	for _, a := range m.accounts {
		if a.Provider == provider && a.UID == uid {
			return a, nil
		}
	}
	return nil, errors.NewNotFoundError("social account not found")
}

func (m *mockSocialAccountRepository) ListByUser(_ context.Context, userID uint) ([]*user.SocialAccount, error) {
	var out []*user.SocialAccount
	for _, a := range m.accounts {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *mockSocialAccountRepository) DeleteByUserProvider(_ context.Context, userID uint, provider user.Provider) error {
	for i, a := range m.accounts {
		if a.UserID == userID && a.Provider == provider {
			m.accounts = append(m.accounts[:i], m.accounts[i+1:]...)
			return nil
		}
	}
	return errors.NewNotFoundError("social connection not found")
}

type mockEmailAddressRepository struct {
	addresses []*user.EmailAddress
}

func (m *mockEmailAddressRepository) Create(_ context.Context, e *user.EmailAddress) error {
	m.addresses = append(m.addresses, e)
	return nil
}

func (m *mockEmailAddressRepository) ListByUser(_ context.Context, userID uint) ([]*user.EmailAddress, error) {
	var out []*user.EmailAddress
	for _, e := range m.addresses {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

// fakeOAuthClient returns a fixed identity for the code "good".
type fakeOAuthClient struct {
	info         *auth.OAuthUserInfo
	gotVerifier  string
	exchangeFail bool
}

func (f *fakeOAuthClient) GetAuthURL(state string) (string, string, error) {
	return "https://provider.example/auth?state=" + state, "verifier-" + state, nil
}

func (f *fakeOAuthClient) ExchangeCode(_ context.Context, code, codeVerifier string) (string, error) {
	f.gotVerifier = codeVerifier
	if f.exchangeFail || code != "good" {
		return "", fmt.Errorf("invalid_grant")
	}
	return "provider-token", nil
}

func (f *fakeOAuthClient) GetUserInfo(context.Context, string) (*auth.OAuthUserInfo, error) {
	return f.info, nil
}

type fakeClients map[string]auth.OAuthClient

func (f fakeClients) Client(provider string) (auth.OAuthClient, error) {
	c, ok := f[provider]
	if !ok {
		return nil, fmt.Errorf("provider %s is not configured", provider)
	}
	return c, nil
}

type recordingRoleSyncer struct {
	calls map[uint]authorization.UserRole
}

func (r *recordingRoleSyncer) SetUserRole(userID uint, role authorization.UserRole) error {
	if r.calls == nil {
		r.calls = map[uint]authorization.UserRole{}
	}
	r.calls[userID] = role
	return nil
}
