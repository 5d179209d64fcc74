// Package lock keeps scheduled jobs from running on more than one replica
// at a time.
package lock

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Locker hands out named, expiring locks. TryAcquire never blocks; it
// returns acquired=false when someone else holds the key.
type Locker interface {
	TryAcquire(ctx context.Context, key string, ttl time.Duration) (release func(), acquired bool, err error)
}

// --- InMemoryLock ---

// InMemoryLock serves single-replica deployments and tests
type InMemoryLock struct {
	mu   sync.Mutex
	held map[string]time.Time // key -> expiry
	now  func() time.Time
}

func NewInMemoryLock() *InMemoryLock {
	return &InMemoryLock{
		held: make(map[string]time.Time),
		now:  time.Now,
	}
}

func (l *InMemoryLock) TryAcquire(_ context.Context, key string, ttl time.Duration) (func(), bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if expiry, ok := l.held[key]; ok && now.Before(expiry) {
		return nil, false, nil
	}
	expiry := now.Add(ttl)
	l.held[key] = expiry

	var once sync.Once
	release := func() {
		once.Do(func() {
			l.mu.Lock()
			// a lock that already expired may belong to someone else now
			if l.held[key].Equal(expiry) {
				delete(l.held, key)
			}
			l.mu.Unlock()
		})
	}
	return release, true, nil
}

// --- RedisLock ---

// releaseScript deletes the key only when it still carries our token
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisLock implements Locker with SET NX PX
type RedisLock struct {
	client *redis.Client
	prefix string
}

func NewRedisLock(client *redis.Client) *RedisLock {
	return &RedisLock{client: client, prefix: "memberhub:lock:"}
}

func (l *RedisLock) TryAcquire(ctx context.Context, key string, ttl time.Duration) (func(), bool, error) {
	fullKey := l.prefix + key
	token := uuid.NewString()

	ok, err := l.client.SetNX(ctx, fullKey, token, ttl).Result()
	if err != nil {
		return nil, false, fmt.Errorf("try acquire lock for %s: %w", key, err)
	}
	if !ok {
		return nil, false, nil
	}

	var once sync.Once
	release := func() {
		once.Do(func() {
			_ = releaseScript.Run(context.Background(), l.client, []string{fullKey}, token).Err()
		})
	}
	return release, true, nil
}

// New returns a RedisLock when addr is set and an InMemoryLock otherwise
func New(addr, password string, db int) (Locker, *redis.Client) {
	if addr == "" {
		return NewInMemoryLock(), nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return NewRedisLock(client), client
}
