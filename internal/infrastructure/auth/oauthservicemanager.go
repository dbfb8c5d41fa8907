package auth

import (
	"errors"
	"strings"

	"github.com/dggcrm/dggcrm/internal/shared/config"
	"github.com/dggcrm/dggcrm/internal/shared/logger"
)

// ErrOAuthNotConfigured is returned when OAuth client is not configured
var ErrOAuthNotConfigured = errors.New("oauth provider not configured")

// OAuthServiceManager holds the configured social login clients by provider name.
type OAuthServiceManager struct {
	clients map[string]OAuthClient
	logger  logger.Interface
}

// NewOAuthServiceManager builds clients for every provider with credentials.
// A provider without an explicit redirect URL calls back to
// {baseURL}/api/auth/oauth/{provider}/callback.
func NewOAuthServiceManager(cfg config.OAuthConfig, baseURL string, logger logger.Interface) *OAuthServiceManager {
	m := &OAuthServiceManager{
		clients: make(map[string]OAuthClient),
		logger:  logger,
	}

	if cfg.Google.IsConfigured() {
		redirectURL := redirectURLFor(cfg.Google, baseURL, "google")
		m.clients["google"] = NewGoogleOAuthClient(OAuthClientConfig{
			ClientID:     cfg.Google.ClientID,
			ClientSecret: cfg.Google.ClientSecret,
			RedirectURL:  redirectURL,
		})
		logger.Infow("google oauth client initialized", "redirect_url", redirectURL)
	} else {
		logger.Debugw("google oauth client not configured")
	}

	if cfg.Discord.IsConfigured() {
		redirectURL := redirectURLFor(cfg.Discord, baseURL, "discord")
		m.clients["discord"] = NewDiscordOAuthClient(OAuthClientConfig{
			ClientID:     cfg.Discord.ClientID,
			ClientSecret: cfg.Discord.ClientSecret,
			RedirectURL:  redirectURL,
		})
		logger.Infow("discord oauth client initialized", "redirect_url", redirectURL)
	} else {
		logger.Debugw("discord oauth client not configured")
	}

	return m
}

func redirectURLFor(p config.OAuthProviderConfig, baseURL, provider string) string {
	if p.RedirectURL != "" {
		return p.RedirectURL
	}
	return strings.TrimRight(baseURL, "/") + "/api/auth/oauth/" + provider + "/callback"
}

// Register adds or replaces the client for provider.
func (m *OAuthServiceManager) Register(provider string, client OAuthClient) {
	m.clients[provider] = client
}

// Client returns the client for provider, or ErrOAuthNotConfigured.
func (m *OAuthServiceManager) Client(provider string) (OAuthClient, error) {
	c, ok := m.clients[provider]
	if !ok {
		return nil, ErrOAuthNotConfigured
	}
	return c, nil
}

func (m *OAuthServiceManager) IsEnabled(provider string) bool {
	_, ok := m.clients[provider]
	return ok
}
