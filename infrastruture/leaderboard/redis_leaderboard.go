// Package leaderboard keeps per-board best step counts in Redis sorted sets.
package leaderboard

import (
	"context"
	"errors"
	"time"

	dmn "github.com/beka-birhanu/mazebot/domain"
	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "leaderboard:"

// ErrInvalidSteps is returned when recording a non-positive step count.
var ErrInvalidSteps = errors.New("steps must be positive")

// RedisLeaderboard stores one sorted set per board, scored by steps.
type RedisLeaderboard struct {
	client *redis.Client
	locker *redsync.Redsync
	ttl    time.Duration
}

// NewRedisLeaderboard initializes a RedisLeaderboard. A zero ttl keeps boards forever.
func NewRedisLeaderboard(client *redis.Client, ttl time.Duration) *RedisLeaderboard {
	pool := goredis.NewPool(client)
	return &RedisLeaderboard{
		client: client,
		locker: redsync.New(pool),
		ttl:    ttl,
	}
}

// Record stores steps for learner on board when it beats their previous best.
func (l *RedisLeaderboard) Record(ctx context.Context, board, learner string, steps int) (bool, error) {
	if steps <= 0 {
		return false, ErrInvalidSteps
	}
	key := keyPrefix + board

	mutex := l.locker.NewMutex(key + ":record_lock")
	if err := mutex.LockContext(ctx); err != nil {
		return false, err
	}
	defer func() {
		_, _ = mutex.UnlockContext(ctx)
	}()

	best, err := l.client.ZScore(ctx, key, learner).Result()
	switch {
	case errors.Is(err, redis.Nil):
	case err != nil:
		return false, err
	case int(best) <= steps:
		return false, nil
	}

	if err := l.client.ZAdd(ctx, key, redis.Z{Score: float64(steps), Member: learner}).Err(); err != nil {
		return false, err
	}

	if l.ttl > 0 {
		// Set expiration only if it's not already set
		ttl, err := l.client.TTL(ctx, key).Result()
		if err == nil && ttl == -1 {
			_ = l.client.Expire(ctx, key, l.ttl).Err()
		}
	}
	return true, nil
}

// Top returns up to limit standings on board, fewest steps first.
func (l *RedisLeaderboard) Top(ctx context.Context, board string, limit int64) ([]dmn.Standing, error) {
	if limit <= 0 {
		return []dmn.Standing{}, nil
	}
	entries, err := l.client.ZRangeWithScores(ctx, keyPrefix+board, 0, limit-1).Result()
	if err != nil {
		return nil, err
	}

	standings := make([]dmn.Standing, 0, len(entries))
	for _, e := range entries {
		member, ok := e.Member.(string)
		if !ok {
			continue
		}
		standings = append(standings, dmn.Standing{Learner: member, Steps: int(e.Score)})
	}
	return standings, nil
}

// Count returns the number of learners ranked on board.
func (l *RedisLeaderboard) Count(ctx context.Context, board string) int64 {
	return l.client.ZCard(ctx, keyPrefix+board).Val()
}
