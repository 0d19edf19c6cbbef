package redisstore

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T, prefix string, ttl time.Duration) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	s := NewWithClient(client, prefix, ttl)
	t.Cleanup(func() { _ = s.Close() })
	return s, mr
}

func TestGetSetRemove(t *testing.T) {
	s, mr := setupTestRedis(t, "drogafarm", 0)
	ctx := context.Background()

	_, ok, err := s.Get(ctx, "user")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set(ctx, "user", `{"name":"Ana","email":"ana@x.com"}`))
	require.NoError(t, s.Set(ctx, "rememberMe", "true"))

	raw, err := mr.Get("drogafarm:user")
	require.NoError(t, err)
	assert.Equal(t, `{"name":"Ana","email":"ana@x.com"}`, raw)

	v, ok, err := s.Get(ctx, "rememberMe")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "true", v)

	require.NoError(t, s.Remove(ctx, "user", "rememberMe"))
	assert.False(t, mr.Exists("drogafarm:user"))
	assert.False(t, mr.Exists("drogafarm:rememberMe"))
	require.NoError(t, s.Remove(ctx))
}

func TestNoPrefix(t *testing.T) {
	s, mr := setupTestRedis(t, "", 0)
	require.NoError(t, s.Set(context.Background(), "rememberMe", "false"))
	assert.True(t, mr.Exists("rememberMe"))
}

func TestTTL(t *testing.T) {
	s, mr := setupTestRedis(t, "df", time.Hour)
	ctx := context.Background()
	require.NoError(t, s.Set(ctx, "user", "x"))
	assert.Equal(t, time.Hour, mr.TTL("df:user"))

	mr.FastForward(2 * time.Hour)
	_, ok, err := s.Get(ctx, "user")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestServerDown(t *testing.T) {
	s, mr := setupTestRedis(t, "df", 0)
	require.NoError(t, s.Ping(context.Background()))
	mr.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, _, err := s.Get(ctx, "user")
	require.Error(t, err)
	require.Error(t, s.Set(ctx, "user", "x"))
}
