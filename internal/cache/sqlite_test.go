package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLite(t.TempDir() + "/cache.db")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	require.NoError(t, store.Migrate(context.Background()))
	return store
}

func TestSQLiteSetGet(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "leaderboard", []byte(`{"rank":1}`), time.Minute))

	payload, ok, err := store.Get(ctx, "leaderboard")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `{"rank":1}`, string(payload))
}

func TestSQLiteGetMissingKey(t *testing.T) {
	store := newTestStore(t)

	payload, ok, err := store.Get(context.Background(), "nope")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, payload)
}

func TestSQLiteExpiredEntryIsAMiss(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "kpis:Austin,TX", []byte("stale"), -time.Second))

	_, ok, err := store.Get(ctx, "kpis:Austin,TX")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSQLiteUpsertReplacesPayload(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "leaderboard", []byte("v1"), time.Minute))
	require.NoError(t, store.Set(ctx, "leaderboard", []byte("v2"), time.Minute))

	payload, ok, err := store.Get(ctx, "leaderboard")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "v2", string(payload))
}

func TestSQLitePurgeExpired(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "live", []byte("x"), time.Hour))
	require.NoError(t, store.Set(ctx, "dead-1", []byte("x"), -time.Second))
	require.NoError(t, store.Set(ctx, "dead-2", []byte("x"), -time.Minute))

	n, err := store.PurgeExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	_, ok, err := store.Get(ctx, "live")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestSQLiteMigrateIdempotent(t *testing.T) {
	store := newTestStore(t)
	assert.NoError(t, store.Migrate(context.Background()))
}

func TestNoopStore(t *testing.T) {
	ctx := context.Background()
	var store Store = Noop{}

	require.NoError(t, store.Set(ctx, "k", []byte("v"), time.Minute))
	_, ok, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)

	n, err := store.PurgeExpired(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}
