package editor

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisDrafts keeps drafts per user in Redis. Each draft is a plain string
// key; a sorted set per user scores keys by last use so the oldest can be
// trimmed once the user exceeds the capacity.
type RedisDrafts struct {
	client   redis.UniversalClient
	capacity int
}

// NewRedisDrafts creates a Redis backed draft store.
func NewRedisDrafts(client redis.UniversalClient, capacity int) *RedisDrafts {
	if capacity <= 0 {
		capacity = DefaultDraftCapacity
	}
	return &RedisDrafts{client: client, capacity: capacity}
}

// ForUser scopes the store to one user.
func (r *RedisDrafts) ForUser(userID string) DraftStore {
	return &userDrafts{parent: r, prefix: "drafts:" + userID + ":"}
}

type userDrafts struct {
	parent *RedisDrafts
	prefix string
}

func (u *userDrafts) indexKey() string { return u.prefix + "index" }
func (u *userDrafts) seqKey() string   { return u.prefix + "seq" }
func (u *userDrafts) dataKey(key string) string {
	return u.prefix + key
}

func (u *userDrafts) Load(ctx context.Context, key string) (string, error) {
	rdb := u.parent.client
	source, err := rdb.Get(ctx, u.dataKey(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrDraftNotFound
	}
	if err != nil {
		return "", fmt.Errorf("load draft: %w", err)
	}
	if err := u.touch(ctx, key); err != nil {
		return "", err
	}
	return source, nil
}

func (u *userDrafts) Save(ctx context.Context, key, source string) error {
	rdb := u.parent.client
	seq, err := rdb.Incr(ctx, u.seqKey()).Result()
	if err != nil {
		return fmt.Errorf("save draft: %w", err)
	}
	_, err = rdb.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Set(ctx, u.dataKey(key), source, 0)
		p.ZAdd(ctx, u.indexKey(), redis.Z{Score: float64(seq), Member: key})
		return nil
	})
	if err != nil {
		return fmt.Errorf("save draft: %w", err)
	}
	return u.trim(ctx)
}

func (u *userDrafts) touch(ctx context.Context, key string) error {
	rdb := u.parent.client
	seq, err := rdb.Incr(ctx, u.seqKey()).Result()
	if err != nil {
		return fmt.Errorf("touch draft: %w", err)
	}
	if err := rdb.ZAddXX(ctx, u.indexKey(), redis.Z{Score: float64(seq), Member: key}).Err(); err != nil {
		return fmt.Errorf("touch draft: %w", err)
	}
	return nil
}

func (u *userDrafts) trim(ctx context.Context) error {
	rdb := u.parent.client
	n, err := rdb.ZCard(ctx, u.indexKey()).Result()
	if err != nil {
		return fmt.Errorf("trim drafts: %w", err)
	}
	excess := n - int64(u.parent.capacity)
	if excess <= 0 {
		return nil
	}
	victims, err := rdb.ZRange(ctx, u.indexKey(), 0, excess-1).Result()
	if err != nil {
		return fmt.Errorf("trim drafts: %w", err)
	}
	_, err = rdb.TxPipelined(ctx, func(p redis.Pipeliner) error {
		for _, key := range victims {
			p.Del(ctx, u.dataKey(key))
			p.ZRem(ctx, u.indexKey(), key)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("trim drafts: %w", err)
	}
	return nil
}
