package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jask/drogafarm/internal/database"
	"github.com/jask/drogafarm/internal/store"
)

var _ store.KV = (*KVRepo)(nil)

func openTestDB(t *testing.T) *KVRepo {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	require.NoError(t, database.RunMigrations(dbPath))
	// second run is a no-op
	require.NoError(t, database.RunMigrations(dbPath))

	db, err := database.Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewKVRepo(db)
}

func TestKVRepo(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	repo := openTestDB(t)

	_, ok, err := repo.Get(ctx, "user")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, repo.Set(ctx, "user", `{"name":"Ana","email":"ana@x.com"}`))
	require.NoError(t, repo.Set(ctx, "rememberMe", "true"))
	require.NoError(t, repo.Set(ctx, "rememberMe", "false"))

	v, ok, err := repo.Get(ctx, "rememberMe")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "false", v)

	entries, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, "rememberMe", entries[0].Key)
	require.Equal(t, "user", entries[1].Key)
	require.False(t, entries[1].UpdatedAt.IsZero())

	require.NoError(t, repo.Remove(ctx, "user", "rememberMe", "missing"))
	entries, err = repo.List(ctx)
	require.NoError(t, err)
	require.Empty(t, entries)

	require.NoError(t, repo.Remove(ctx))
}

func TestKVRepoClosedDB(t *testing.T) {
	t.Parallel()

	dbPath := filepath.Join(t.TempDir(), "closed.db")
	require.NoError(t, database.RunMigrations(dbPath))
	db, err := database.Open(dbPath)
	require.NoError(t, err)
	repo := NewKVRepo(db)
	require.NoError(t, db.Close())

	_, _, err = repo.Get(context.Background(), "user")
	require.Error(t, err)
	require.Error(t, repo.Set(context.Background(), "user", "x"))
}

func TestRunMigrationsWithDB(t *testing.T) {
	t.Parallel()

	db, err := database.Open(filepath.Join(t.TempDir(), "shared.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, database.RunMigrationsWithDB(db))

	repo := NewKVRepo(db)
	require.NoError(t, repo.Set(context.Background(), "k", "v"))
}
