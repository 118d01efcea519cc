package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
)

// releaseScript deletes the lock only if it still carries the caller's token.
var releaseScript = goredis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// SettlementLock implements ports.SettlementLock using Redis SET NX PX.
type SettlementLock struct {
	client *goredis.Client
	prefix string
}

// NewSettlementLock creates a new Redis-backed settlement lock.
func NewSettlementLock(client *goredis.Client) *SettlementLock {
	return &SettlementLock{
		client: client,
		prefix: "settle-lock:",
	}
}

// Acquire takes the lock for orderID. It returns the release token, or ""
// when another holder owns the lock.
func (l *SettlementLock) Acquire(ctx context.Context, orderID string, ttl time.Duration) (string, error) {
	token := uuid.NewString()
	result, err := l.client.SetArgs(ctx, l.prefix+orderID, token, goredis.SetArgs{
		Mode: "NX",
		TTL:  ttl,
	}).Result()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return "", nil
		}
		return "", fmt.Errorf("redis settlement lock acquire: %w", err)
	}
	if result != "OK" {
		return "", nil
	}
	return token, nil
}

// Release frees the lock if token still owns it. Releasing an expired or
// foreign lock is a no-op.
func (l *SettlementLock) Release(ctx context.Context, orderID string, token string) error {
	if token == "" {
		return nil
	}
	if err := releaseScript.Run(ctx, l.client, []string{l.prefix + orderID}, token).Err(); err != nil && !errors.Is(err, goredis.Nil) {
		return fmt.Errorf("redis settlement lock release: %w", err)
	}
	return nil
}
