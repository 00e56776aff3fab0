package redis

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// releaseScript deletes the lock key only when it still holds our token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Lock is a best-effort single-flight guard over SET NX. The guarded work is
// idempotent, so a lost lock only means redundant work, never corruption.
type Lock struct {
	client *redis.Client
	key    string
	ttl    time.Duration
	token  string
}

// NewLock creates a lock on key with the given TTL.
func (c *Client) NewLock(key string, ttl time.Duration) *Lock {
	return &Lock{client: c.Client, key: key, ttl: ttl}
}

// Acquire tries to take the lock. Returns false when another holder has it.
func (l *Lock) Acquire(ctx context.Context) (bool, error) {
	token := uuid.New().String()
	ok, err := l.client.SetNX(ctx, l.key, token, l.ttl).Result()
	if err != nil {
		return false, err
	}
	if ok {
		l.token = token
	}
	return ok, nil
}

// Release frees the lock if this holder still owns it.
func (l *Lock) Release(ctx context.Context) error {
	if l.token == "" {
		return nil
	}
	err := releaseScript.Run(ctx, l.client, []string{l.key}, l.token).Err()
	l.token = ""
	if err == redis.Nil {
		return nil
	}
	return err
}
