package distributed

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocker_WithoutRedisRunsDirectly(t *testing.T) {
	l := NewLocker(nil, time.Second)

	called := false
	err := l.WithLock(context.Background(), "processo:sei:1", func() error {
		called = true
		return nil
	})
	assert.NoError(t, err)
	assert.True(t, called)
}

func TestLocker_PropagatesError(t *testing.T) {
	boom := errors.New("boom")
	var l *Locker
	err := l.WithLock(context.Background(), "k", func() error { return boom })
	assert.ErrorIs(t, err, boom)
}

func newRedisLocker(t *testing.T, ttl time.Duration) (*Locker, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewLocker(client, ttl), mr
}

func TestLocker_AcquiresWithTTLAndReleases(t *testing.T) {
	l, mr := newRedisLocker(t, time.Second)
	key := "processo:sei:23000.1"

	err := l.WithLock(context.Background(), key, func() error {
		assert.True(t, mr.Exists(key))
		assert.Equal(t, time.Second, mr.TTL(key))
		return nil
	})
	require.NoError(t, err)
	assert.False(t, mr.Exists(key))
}

func TestLocker_WaitsForRelease(t *testing.T) {
	l, mr := newRedisLocker(t, time.Second)
	key := "processo:sei:23000.2"
	require.NoError(t, mr.Set(key, "outro-dono"))

	time.AfterFunc(150*time.Millisecond, func() { mr.Del(key) })

	called := false
	err := l.WithLock(context.Background(), key, func() error {
		called = true
		return nil
	})
	require.NoError(t, err)
	assert.True(t, called)
}

func TestLocker_HeldByOtherOwner(t *testing.T) {
	l, mr := newRedisLocker(t, 100*time.Millisecond)
	key := "processo:sei:23000.3"
	require.NoError(t, mr.Set(key, "outro-dono"))

	called := false
	err := l.WithLock(context.Background(), key, func() error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, ErrLockHeld)
	assert.False(t, called)

	got, err := mr.Get(key)
	require.NoError(t, err)
	assert.Equal(t, "outro-dono", got)
}

func TestLocker_UnlockKeepsForeignValue(t *testing.T) {
	l, mr := newRedisLocker(t, time.Second)
	key := "processo:sei:23000.4"

	// lock expirou e outro dono assumiu durante fn
	err := l.WithLock(context.Background(), key, func() error {
		return mr.Set(key, "novo-dono")
	})
	require.NoError(t, err)

	got, err := mr.Get(key)
	require.NoError(t, err)
	assert.Equal(t, "novo-dono", got)
}

func TestLocker_ContextCanceledWhileWaiting(t *testing.T) {
	l, mr := newRedisLocker(t, 5*time.Second)
	key := "processo:sei:23000.5"
	require.NoError(t, mr.Set(key, "outro-dono"))

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	err := l.WithLock(ctx, key, func() error { return nil })
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
