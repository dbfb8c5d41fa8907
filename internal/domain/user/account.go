package user

import (
	"fmt"
	"time"
)

// Provider identifies a social login provider.
type Provider string

const (
	ProviderGoogle  Provider = "google"
	ProviderDiscord Provider = "discord"
)

func (p Provider) String() string {
	return string(p)
}

func (p Provider) IsValid() bool {
	return p == ProviderGoogle || p == ProviderDiscord
}

func NewProvider(value string) (Provider, error) {
	p := Provider(value)
	if !p.IsValid() {
		return "", fmt.Errorf("unsupported provider: %s", value)
	}
	return p, nil
}

// SocialAccount links a provider identity (Provider, UID) to a user.
type SocialAccount struct {
	ID          uint
	UserID      uint
	Provider    Provider
	UID         string
	LastLoginAt *time.Time
	CreatedAt   time.Time
}

// EmailAddress is an additional address known for a user. Only verified
// addresses may be used to match a social login.
type EmailAddress struct {
	ID       uint
	UserID   uint
	Email    string
	Verified bool
	Primary  bool
}
