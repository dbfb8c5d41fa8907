package auth

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dggcrm/dggcrm/internal/shared/authorization"
	"github.com/dggcrm/dggcrm/internal/shared/config"
	"github.com/dggcrm/dggcrm/internal/shared/logger"
)

func TestJWTService_GenerateAndVerify(t *testing.T) {
	svc := NewJWTService("test-secret", 15, 7)

	pair, err := svc.Generate(42, authorization.RoleOrganizer)
	require.NoError(t, err)
	assert.Equal(t, int64(900), pair.ExpiresIn)

	claims, err := svc.VerifyAccess(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, authorization.RoleOrganizer, claims.Role)
	assert.Equal(t, "42", claims.Subject)

	_, err = svc.VerifyAccess(pair.RefreshToken)
	assert.Error(t, err, "refresh token must not pass as access token")

	refresh, err := svc.VerifyRefresh(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, TokenTypeRefresh, refresh.TokenType)
}

func TestJWTService_RejectsForeignSecret(t *testing.T) {
	pair, err := NewJWTService("one", 15, 7).Generate(1, authorization.RoleAdmin)
	require.NoError(t, err)

	_, err = NewJWTService("two", 15, 7).Verify(pair.AccessToken)
	assert.Error(t, err)
}

func TestGeneratePKCEParams(t *testing.T) {
	verifier, challenge, err := generatePKCEParams()
	require.NoError(t, err)

	sum := sha256.Sum256([]byte(verifier))
	assert.Equal(t, base64.RawURLEncoding.EncodeToString(sum[:]), challenge)
}

func TestDiscordClient_AuthURLAndUserInfo(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"123","username":"jane","global_name":"Jane D","email":"Jane@Example.com","verified":true}`))
	}))
	defer srv.Close()

	c := NewDiscordOAuthClient(OAuthClientConfig{ClientID: "cid", ClientSecret: "sec", RedirectURL: "http://localhost/cb"})
	c.userInfoURL = srv.URL

	authURL, verifier, err := c.GetAuthURL("state-1")
	require.NoError(t, err)
	assert.NotEmpty(t, verifier)
	u, err := url.Parse(authURL)
	require.NoError(t, err)
	assert.Equal(t, "discord.com", u.Host)
	assert.Equal(t, "state-1", u.Query().Get("state"))
	assert.Equal(t, "S256", u.Query().Get("code_challenge_method"))

	info, err := c.GetUserInfo(context.Background(), "tok")
	require.NoError(t, err)
	assert.Equal(t, "123", info.ProviderID)
	assert.Equal(t, "Jane D", info.Name)
	assert.True(t, info.EmailVerified)
	assert.Equal(t, "discord", info.Provider)
}

func TestGoogleClient_UserInfoError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "nope", http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := NewGoogleOAuthClient(OAuthClientConfig{ClientID: "cid", ClientSecret: "sec"})
	c.userInfoURL = srv.URL

	_, err := c.GetUserInfo(context.Background(), "tok")
	assert.Error(t, err)
}

func TestOAuthServiceManager(t *testing.T) {
	m := NewOAuthServiceManager(config.OAuthConfig{
		Google: config.OAuthProviderConfig{ClientID: "g", ClientSecret: "s"},
	}, "http://api.local/", logger.NewNopLogger())

	assert.True(t, m.IsEnabled("google"))
	assert.False(t, m.IsEnabled("discord"))

	_, err := m.Client("discord")
	assert.ErrorIs(t, err, ErrOAuthNotConfigured)

	c, err := m.Client("google")
	require.NoError(t, err)
	g := c.(*GoogleOAuthClient)
	assert.Equal(t, "http://api.local/api/auth/oauth/google/callback", g.config.RedirectURL)
}
