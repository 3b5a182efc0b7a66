package distributed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

// ErrLockHeld outro processo detém o lock
var ErrLockHeld = errors.New("lock is held by another owner")

const unlockScript = `
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
else
	return 0
end
`

// Locker cria locks com TTL fixo. Com client nil todo lock é concedido
// localmente (implantação de instância única).
type Locker struct {
	client *redis.Client
	ttl    time.Duration
	wait   time.Duration
}

func NewLocker(client *redis.Client, ttl time.Duration) *Locker {
	return &Locker{client: client, ttl: ttl, wait: ttl}
}

// WithLock executa fn segurando o lock da chave. Aguarda até o TTL pelo lock.
func (l *Locker) WithLock(ctx context.Context, key string, fn func() error) error {
	if l == nil || l.client == nil {
		return fn()
	}

	value := uuid.New().String()
	deadline := time.Now().Add(l.wait)
	for {
		ok, err := l.client.SetNX(ctx, key, value, l.ttl).Result()
		if err != nil {
			return fmt.Errorf("failed to acquire lock %s: %w", key, err)
		}
		if ok {
			break
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("%s: %w", key, ErrLockHeld)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(50 * time.Millisecond):
		}
	}

	defer l.client.Eval(context.Background(), unlockScript, []string{key}, value)
	return fn()
}
