package auth

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const revokedKeyPrefix = "auth:revoked:"

// RevocationList records signed-out session tokens in Redis until they
// would have expired anyway.
type RevocationList struct {
	client  redis.UniversalClient
	timeout time.Duration
}

func NewRevocationList(client redis.UniversalClient, timeout time.Duration) *RevocationList {
	if timeout <= 0 {
		timeout = time.Second
	}
	return &RevocationList{client: client, timeout: timeout}
}

// Revoke marks token id jti as revoked until expiresAt.
func (r *RevocationList) Revoke(ctx context.Context, jti string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	return r.client.Set(ctx, revokedKeyPrefix+jti, 1, ttl).Err()
}

// IsRevoked reports whether jti was revoked.
func (r *RevocationList) IsRevoked(ctx context.Context, jti string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	n, err := r.client.Exists(ctx, revokedKeyPrefix+jti).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
