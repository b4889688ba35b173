package auth

import (
	"context"
	"time"
)

// Token holds the OAuth credentials returned by a provider.
type Token struct {
	AccessToken  string
	RefreshToken string
	Expiry       time.Time
}

// UserInfo is the identity a provider reports for a signed-in user.
type UserInfo struct {
	ID       string
	Email    string
	Username string
}

// Provider defines the interface each OAuth provider must implement.
type Provider interface {
	// Name is the path segment the provider is served under.
	Name() string
	// AuthURL returns the URL to redirect the user to for authorization.
	AuthURL(state string) string
	// Exchange converts an authorization code into a Token.
	Exchange(ctx context.Context, code string) (*Token, error)
	// UserInfo fetches the identity behind an access token.
	UserInfo(ctx context.Context, accessToken string) (*UserInfo, error)
}
