package redis

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/pawcrate/pawcrate-backend/internal/logger"
)

// SweepLock is a process-wide mutex around the feedback sweep so a retried
// cron trigger cannot run two sweeps at once across instances. The per-row
// claim in the repo already guarantees correctness; this avoids the wasted
// duplicate selection work.
type SweepLock interface {
	TryLock(ctx context.Context) (bool, func(), error)
	Close() error
}

type sweepLock struct {
	log *logger.Logger
	rdb *goredis.Client
	key string
	ttl time.Duration
}

func NewSweepLock(log *logger.Logger) (SweepLock, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}

	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}
	key := strings.TrimSpace(os.Getenv("REDIS_SWEEP_LOCK_KEY"))
	if key == "" {
		key = "feedback_sweep_lock"
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &sweepLock{
		log: log.With("client", "RedisSweepLock"),
		rdb: rdb,
		key: key,
		ttl: 10 * time.Minute,
	}, nil
}

// releaseScript deletes the lock only when the caller still owns it, so an
// expired-and-reacquired lock is never released by the old holder.
var releaseScript = goredis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

func (l *sweepLock) TryLock(ctx context.Context) (bool, func(), error) {
	token := uuid.NewString()
	ok, err := l.rdb.SetNX(ctx, l.key, token, l.ttl).Result()
	if err != nil {
		return false, nil, fmt.Errorf("redis setnx: %w", err)
	}
	if !ok {
		return false, nil, nil
	}

	release := func() {
		releaseCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := releaseScript.Run(releaseCtx, l.rdb, []string{l.key}, token).Err(); err != nil {
			l.log.Warn("Failed to release sweep lock", "error", err)
		}
	}
	return true, release, nil
}

func (l *sweepLock) Close() error {
	return l.rdb.Close()
}
