package auth

import (
	"context"
	"net/http"

	"golang.org/x/oauth2"
)

const discordUserInfoURL = "https://discord.com/api/users/@me"

// DiscordEndpoint is Discord's OAuth2 endpoint.
var DiscordEndpoint = oauth2.Endpoint{
	AuthURL:   "https://discord.com/oauth2/authorize",
	TokenURL:  "https://discord.com/api/oauth2/token",
	AuthStyle: oauth2.AuthStyleInParams,
}

type DiscordOAuthClient struct {
	config      *oauth2.Config
	userInfoURL string
	httpClient  *http.Client
}

type discordUser struct {
	ID         string `json:"id"`
	Username   string `json:"username"`
	GlobalName string `json:"global_name"`
	Email      string `json:"email"`
	Verified   bool   `json:"verified"`
}

func NewDiscordOAuthClient(cfg OAuthClientConfig) *DiscordOAuthClient {
	return &DiscordOAuthClient{
		config: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       []string{"identify", "email"},
			Endpoint:     DiscordEndpoint,
		},
		userInfoURL: discordUserInfoURL,
		httpClient:  &http.Client{Timeout: httpClientTimeout},
	}
}

func (c *DiscordOAuthClient) GetAuthURL(state string) (string, string, error) {
	return pkceAuthURL(c.config, state)
}

func (c *DiscordOAuthClient) ExchangeCode(ctx context.Context, code string, codeVerifier string) (string, error) {
	return exchangeWithVerifier(ctx, c.config, code, codeVerifier)
}

func (c *DiscordOAuthClient) GetUserInfo(ctx context.Context, accessToken string) (*OAuthUserInfo, error) {
	var du discordUser
	if err := fetchJSON(ctx, c.httpClient, c.userInfoURL, accessToken, &du); err != nil {
		return nil, err
	}

	name := du.GlobalName
	if name == "" {
		name = du.Username
	}
	return &OAuthUserInfo{
		Email:         du.Email,
		Name:          name,
		EmailVerified: du.Verified,
		Provider:      "discord",
		ProviderID:    du.ID,
	}, nil
}
