package leaderboard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/gsarma/algodojo/internal/store"
)

// ErrUnknownSort is returned for a sort key that is not a profile counter.
var ErrUnknownSort = errors.New("unknown sort key")

// Sort is the profile counter a leaderboard is ordered by.
type Sort string

const (
	BySolved Sort = "solved_count"
	ByEasy   Sort = "easy_solved"
	ByMedium Sort = "medium_solved"
	ByHard   Sort = "hard_solved"
)

var Sorts = []Sort{BySolved, ByEasy, ByMedium, ByHard}

// ParseSort validates s. An empty string selects BySolved.
func ParseSort(s string) (Sort, error) {
	if s == "" {
		return BySolved, nil
	}
	for _, v := range Sorts {
		if string(v) == s {
			return v, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSort, s)
}

// DefaultSize is the number of entries kept per leaderboard.
const DefaultSize = 50

// Source reads ranked profiles from the database.
type Source interface {
	Leaderboard(ctx context.Context, arg store.LeaderboardParams) ([]store.LeaderboardRow, error)
}

// Board serves leaderboards from Redis snapshots, falling back to the
// database when a snapshot is missing or Redis is unavailable.
type Board struct {
	src    Source
	rdb    redis.UniversalClient
	size   int
	ttl    time.Duration
	logger *zap.Logger
}

type Option func(*Board)

func WithSize(n int) Option {
	return func(b *Board) {
		if n > 0 {
			b.size = n
		}
	}
}

// WithTTL sets how long a snapshot stays valid without a refresh.
func WithTTL(d time.Duration) Option {
	return func(b *Board) {
		b.ttl = d
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(b *Board) {
		b.logger = l
	}
}

func New(src Source, rdb redis.UniversalClient, opts ...Option) *Board {
	b := &Board{
		src:    src,
		rdb:    rdb,
		size:   DefaultSize,
		ttl:    5 * time.Minute,
		logger: zap.NewNop(),
	}
	for _, o := range opts {
		o(b)
	}
	return b
}

func snapshotKey(s Sort) string {
	return "leaderboard:" + string(s)
}

// Name implements worker.Task.
func (b *Board) Name() string { return "leaderboard-refresh" }

// Run implements worker.Task.
func (b *Board) Run(ctx context.Context) error { return b.Refresh(ctx) }

// Refresh rebuilds every snapshot from the database.
func (b *Board) Refresh(ctx context.Context) error {
	for _, s := range Sorts {
		rows, err := b.load(ctx, s)
		if err != nil {
			return err
		}
		if err := b.save(ctx, s, rows); err != nil {
			return err
		}
	}
	return nil
}

// Top returns up to limit entries ordered by s, highest first.
func (b *Board) Top(ctx context.Context, s Sort, limit int) ([]store.LeaderboardRow, error) {
	if limit <= 0 || limit > b.size {
		limit = b.size
	}

	rows, err := b.cached(ctx, s)
	switch {
	case err == nil:
	case errors.Is(err, redis.Nil):
		rows, err = b.load(ctx, s)
		if err != nil {
			return nil, err
		}
		if err := b.save(ctx, s, rows); err != nil {
			b.logger.Warn("failed to cache leaderboard", zap.String("sort", string(s)), zap.Error(err))
		}
	default:
		b.logger.Warn("leaderboard cache unavailable", zap.String("sort", string(s)), zap.Error(err))
		rows, err = b.load(ctx, s)
		if err != nil {
			return nil, err
		}
	}

	if len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}

func (b *Board) load(ctx context.Context, s Sort) ([]store.LeaderboardRow, error) {
	rows, err := b.src.Leaderboard(ctx, store.LeaderboardParams{SortBy: string(s), Limit: int32(b.size)})
	if err != nil {
		return nil, fmt.Errorf("load leaderboard %s: %w", s, err)
	}
	return rows, nil
}

func (b *Board) cached(ctx context.Context, s Sort) ([]store.LeaderboardRow, error) {
	raw, err := b.rdb.Get(ctx, snapshotKey(s)).Bytes()
	if err != nil {
		return nil, err
	}
	var rows []store.LeaderboardRow
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, redis.Nil
	}
	return rows, nil
}

func (b *Board) save(ctx context.Context, s Sort, rows []store.LeaderboardRow) error {
	raw, err := json.Marshal(rows)
	if err != nil {
		return err
	}
	if err := b.rdb.Set(ctx, snapshotKey(s), raw, b.ttl).Err(); err != nil {
		return fmt.Errorf("save leaderboard %s: %w", s, err)
	}
	return nil
}
