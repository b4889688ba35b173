package auth

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/gsarma/algodojo/internal/store"
)

var (
	ErrUnknownProvider    = errors.New("unsupported provider")
	ErrRedirectNotAllowed = errors.New("redirect_uri is not allowed")
	ErrProviderFailure    = errors.New("provider request failed")
)

// Profiles creates or refreshes the profile behind an OAuth identity.
type Profiles interface {
	UpsertProfile(ctx context.Context, arg store.UpsertProfileParams) (store.Profile, error)
}

// Principal is the authenticated caller of a request.
type Principal struct {
	UserID    uuid.UUID
	TokenID   string
	ExpiresAt time.Time
}

type Service struct {
	providers map[string]Provider
	state     *StateCodec
	tokens    *TokenIssuer
	revoked   *RevocationList
	profiles  Profiles
	origins   map[string]bool
	logger    *zap.Logger
}

type ServiceOption func(*Service)

// WithAllowedOrigins sets the origins (scheme://host[:port]) login redirects
// may point at. A service without any rejects every redirect.
func WithAllowedOrigins(origins ...string) ServiceOption {
	return func(s *Service) {
		for _, o := range origins {
			if o = strings.TrimRight(o, "/"); o != "" {
				s.origins[o] = true
			}
		}
	}
}

func WithServiceLogger(l *zap.Logger) ServiceOption {
	return func(s *Service) {
		s.logger = l
	}
}

// WithProviders registers OAuth providers by name.
func WithProviders(providers ...Provider) ServiceOption {
	return func(s *Service) {
		for _, p := range providers {
			s.providers[p.Name()] = p
		}
	}
}

// NewService wires sign-in, session tokens and revocation. revoked may be
// nil, in which case sign-out cannot be enforced.
func NewService(state *StateCodec, tokens *TokenIssuer, revoked *RevocationList, profiles Profiles, opts ...ServiceOption) *Service {
	s := &Service{
		providers: make(map[string]Provider),
		state:     state,
		tokens:    tokens,
		revoked:   revoked,
		profiles:  profiles,
		origins:   make(map[string]bool),
		logger:    zap.NewNop(),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *Service) provider(name string) (Provider, error) {
	p, ok := s.providers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, name)
	}
	return p, nil
}

func (s *Service) checkRedirect(redirectURI string) error {
	u, err := url.Parse(redirectURI)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return ErrRedirectNotAllowed
	}
	if !s.origins[u.Scheme+"://"+u.Host] {
		return ErrRedirectNotAllowed
	}
	return nil
}

// LoginURL returns the provider URL that starts sign-in. After the callback
// the browser is sent to redirectURI.
func (s *Service) LoginURL(providerName, redirectURI string) (string, error) {
	p, err := s.provider(providerName)
	if err != nil {
		return "", err
	}
	if err := s.checkRedirect(redirectURI); err != nil {
		return "", err
	}
	state, err := s.state.Encode(providerName, redirectURI)
	if err != nil {
		return "", fmt.Errorf("failed to generate state: %w", err)
	}
	return p.AuthURL(state), nil
}

// Complete finishes the OAuth flow: it exchanges code, upserts the profile
// and returns the redirect URL carrying the session token in its fragment.
func (s *Service) Complete(ctx context.Context, providerName, code, stateParam string) (string, error) {
	p, err := s.provider(providerName)
	if err != nil {
		return "", err
	}
	state, err := s.state.Decode(providerName, stateParam)
	if err != nil {
		return "", err
	}
	if err := s.checkRedirect(state.RedirectURI); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidState, err)
	}

	token, err := p.Exchange(ctx, code)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrProviderFailure, err)
	}
	info, err := p.UserInfo(ctx, token.AccessToken)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrProviderFailure, err)
	}

	profile, err := s.profiles.UpsertProfile(ctx, store.UpsertProfileParams{
		AuthProvider: providerName,
		AuthSubject:  info.ID,
		Email:        optional(info.Email),
		Username:     optional(info.Username),
	})
	if err != nil {
		return "", fmt.Errorf("upsert profile: %w", err)
	}

	session, _, err := s.tokens.Issue(profile.ID)
	if err != nil {
		return "", err
	}
	s.logger.Info("user signed in",
		zap.String("provider", providerName),
		zap.String("user_id", profile.ID.String()),
	)
	return state.RedirectURI + "#token=" + url.QueryEscape(session), nil
}

// Authenticate verifies a session token and checks it was not signed out.
func (s *Service) Authenticate(ctx context.Context, raw string) (*Principal, error) {
	claims, err := s.tokens.Parse(raw)
	if err != nil {
		return nil, err
	}
	userID, err := claims.UserID()
	if err != nil {
		return nil, err
	}
	if s.revoked != nil {
		revoked, err := s.revoked.IsRevoked(ctx, claims.ID)
		if err != nil {
			return nil, fmt.Errorf("check revocation: %w", err)
		}
		if revoked {
			return nil, ErrRevoked
		}
	}
	return &Principal{
		UserID:    userID,
		TokenID:   claims.ID,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// Logout revokes the principal's session token.
func (s *Service) Logout(ctx context.Context, p *Principal) error {
	if s.revoked == nil {
		return nil
	}
	if err := s.revoked.Revoke(ctx, p.TokenID, p.ExpiresAt); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	return nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
