package auth

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/gsarma/algodojo/internal/crypto"
)

// ErrInvalidState is returned for a state parameter that fails to open,
// is incomplete or has expired.
var ErrInvalidState = errors.New("invalid state")

// StatePayload is sealed into the OAuth state parameter.
type StatePayload struct {
	Provider    string    `json:"provider"`
	RedirectURI string    `json:"redirect_uri"`
	Nonce       string    `json:"nonce"`
	IssuedAt    time.Time `json:"iat"`
}

// StateCodec seals and opens state parameters.
type StateCodec struct {
	sealer *crypto.Sealer
	ttl    time.Duration
	now    func() time.Time
}

func NewStateCodec(sealer *crypto.Sealer, ttl time.Duration) *StateCodec {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &StateCodec{sealer: sealer, ttl: ttl, now: time.Now}
}

// Encode seals a fresh StatePayload for provider and redirectURI.
func (s *StateCodec) Encode(provider, redirectURI string) (string, error) {
	nonce, err := generateNonce()
	if err != nil {
		return "", fmt.Errorf("generating nonce: %w", err)
	}
	b, err := json.Marshal(StatePayload{
		Provider:    provider,
		RedirectURI: redirectURI,
		Nonce:       nonce,
		IssuedAt:    s.now().UTC(),
	})
	if err != nil {
		return "", err
	}
	return s.sealer.SealString(b)
}

// Decode opens a state parameter issued for provider.
func (s *StateCodec) Decode(provider, state string) (*StatePayload, error) {
	b, err := s.sealer.OpenString(state)
	if err != nil {
		return nil, ErrInvalidState
	}
	var payload StatePayload
	if err := json.Unmarshal(b, &payload); err != nil {
		return nil, ErrInvalidState
	}
	if payload.Provider != provider || payload.RedirectURI == "" || payload.Nonce == "" {
		return nil, ErrInvalidState
	}
	if s.now().Sub(payload.IssuedAt) > s.ttl {
		return nil, ErrInvalidState
	}
	return &payload, nil
}

func generateNonce() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}
