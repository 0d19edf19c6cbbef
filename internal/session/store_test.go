package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jask/drogafarm/internal/store"
)

func TestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory()
	st := NewStore(kv)

	id, err := st.LoadIdentity(ctx)
	require.NoError(t, err)
	assert.Nil(t, id)
	remember, err := st.RememberMe(ctx)
	require.NoError(t, err)
	assert.False(t, remember)

	require.NoError(t, st.SaveIdentity(ctx, Identity{Name: "Ana", Email: "ana@x.com"}))
	require.NoError(t, st.SetRememberMe(ctx, true))

	raw, ok, err := kv.Get(ctx, KeyUser)
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `{"name":"Ana","email":"ana@x.com"}`, raw)
	raw, _, err = kv.Get(ctx, KeyRememberMe)
	require.NoError(t, err)
	assert.Equal(t, "true", raw)

	id, err = st.LoadIdentity(ctx)
	require.NoError(t, err)
	assert.Equal(t, &Identity{Name: "Ana", Email: "ana@x.com"}, id)

	require.NoError(t, st.Clear(ctx))
	id, err = st.LoadIdentity(ctx)
	require.NoError(t, err)
	assert.Nil(t, id)
}

func TestRememberMeOnlyExactTrue(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory()
	st := NewStore(kv)

	for _, v := range []string{"TRUE", "1", "yes", "false", ""} {
		require.NoError(t, kv.Set(ctx, KeyRememberMe, v))
		got, err := st.RememberMe(ctx)
		require.NoError(t, err)
		assert.False(t, got, v)
	}
}

func TestLoadIdentityCorrupt(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory()
	require.NoError(t, kv.Set(ctx, KeyUser, "{"))

	_, err := NewStore(kv).LoadIdentity(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode identity")
}

func TestStoreWrapsBackendErrors(t *testing.T) {
	kv := store.NewMemory()
	require.NoError(t, kv.Close())
	st := NewStore(kv)

	err := st.SaveIdentity(context.Background(), Identity{Name: "a"})
	require.ErrorIs(t, err, store.ErrClosed)
	_, err = st.RememberMe(context.Background())
	require.ErrorIs(t, err, store.ErrClosed)
	require.ErrorIs(t, st.Clear(context.Background()), store.ErrClosed)
}
