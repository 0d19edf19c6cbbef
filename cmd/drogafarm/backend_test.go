package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"

	"github.com/jask/drogafarm/internal/config"
	"github.com/jask/drogafarm/internal/logging"
)

func roundTrip(t *testing.T, cfg config.Config) {
	t.Helper()
	ctx := context.Background()
	kv, closeKV, err := openBackend(ctx, cfg, logging.Discard())
	require.NoError(t, err)
	defer closeKV()

	require.NoError(t, kv.Set(ctx, "user", `{"name":"a"}`))
	v, ok, err := kv.Get(ctx, "user")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, `{"name":"a"}`, v)
	require.NoError(t, kv.Remove(ctx, "user"))
	_, ok, err = kv.Get(ctx, "user")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestOpenBackendSQLite(t *testing.T) {
	cfg := config.Config{Store: config.StoreConfig{Backend: config.BackendSQLite}}
	cfg.Database.Path = filepath.Join(t.TempDir(), "nested", "drogafarm.db")
	roundTrip(t, cfg)
}

func TestOpenBackendFile(t *testing.T) {
	cfg := config.Config{Store: config.StoreConfig{Backend: config.BackendFile}}
	cfg.File.Path = filepath.Join(t.TempDir(), "session.json")
	roundTrip(t, cfg)
}

func TestOpenBackendMemory(t *testing.T) {
	roundTrip(t, config.Config{Store: config.StoreConfig{Backend: config.BackendMemory}})
}

func TestOpenBackendRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := config.Config{Store: config.StoreConfig{Backend: config.BackendRedis}}
	cfg.Redis.Addr = mr.Addr()
	cfg.Redis.KeyPrefix = "df"
	roundTrip(t, cfg)
}

func TestOpenBackendUnknown(t *testing.T) {
	_, _, err := openBackend(context.Background(), config.Config{Store: config.StoreConfig{Backend: "etcd"}}, logging.Discard())
	require.Error(t, err)
}
