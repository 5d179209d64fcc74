package lock

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryLock_TryAcquire(t *testing.T) {
	l := NewInMemoryLock()
	ctx := context.Background()

	release, ok, err := l.TryAcquire(ctx, "expiry", time.Minute)
	require.NoError(t, err)
	require.True(t, ok)

	_, ok, err = l.TryAcquire(ctx, "expiry", time.Minute)
	require.NoError(t, err)
	assert.False(t, ok, "held lock cannot be taken twice")

	_, ok, err = l.TryAcquire(ctx, "reminders", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok, "keys are independent")

	release()
	release()

	_, ok, err = l.TryAcquire(ctx, "expiry", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestInMemoryLock_Expires(t *testing.T) {
	l := NewInMemoryLock()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }

	_, ok, _ := l.TryAcquire(context.Background(), "expiry", time.Minute)
	require.True(t, ok)

	now = now.Add(2 * time.Minute)
	_, ok, _ = l.TryAcquire(context.Background(), "expiry", time.Minute)
	assert.True(t, ok)
}

func TestRedisLock_TryAcquire(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	a := NewRedisLock(client)
	b := NewRedisLock(client)
	ctx := context.Background()

	release, ok, err := a.TryAcquire(ctx, "expiry", time.Minute)
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, mr.Exists("memberhub:lock:expiry"))

	_, ok, err = b.TryAcquire(ctx, "expiry", time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)

	release()
	assert.False(t, mr.Exists("memberhub:lock:expiry"))

	_, ok, err = b.TryAcquire(ctx, "expiry", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRedisLock_ExpiredLockNotReleasedByOldHolder(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	l := NewRedisLock(client)
	ctx := context.Background()

	releaseOld, ok, err := l.TryAcquire(ctx, "expiry", time.Second)
	require.NoError(t, err)
	require.True(t, ok)

	mr.FastForward(2 * time.Second)

	_, ok, err = l.TryAcquire(ctx, "expiry", time.Minute)
	require.NoError(t, err)
	require.True(t, ok)

	releaseOld()
	assert.True(t, mr.Exists("memberhub:lock:expiry"), "new holder keeps the lock")
}

func TestRedisLock_Unavailable(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	mr.Close()

	_, ok, err := NewRedisLock(client).TryAcquire(context.Background(), "expiry", time.Minute)
	assert.Error(t, err)
	assert.False(t, ok)
}
