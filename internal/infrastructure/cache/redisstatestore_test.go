package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMiniRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestRedisStateStore_SingleUse(t *testing.T) {
	_, client := setupMiniRedis(t)
	store := NewRedisStateStore(client, "", 0)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "abc", StateInfo{Provider: "google", CodeVerifier: "v1"}))

	info, err := store.VerifyAndGet(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, "google", info.Provider)
	assert.Equal(t, "v1", info.CodeVerifier)
	assert.False(t, info.CreatedAt.IsZero())

	_, err = store.VerifyAndGet(ctx, "abc")
	assert.ErrorIs(t, err, ErrStateNotFound)
}

func TestRedisStateStore_Expires(t *testing.T) {
	mr, client := setupMiniRedis(t)
	store := NewRedisStateStore(client, "test:", time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "abc", StateInfo{Provider: "discord", CodeVerifier: "v"}))
	assert.True(t, mr.Exists("test:abc"))

	mr.FastForward(2 * time.Minute)

	_, err := store.VerifyAndGet(ctx, "abc")
	assert.ErrorIs(t, err, ErrStateNotFound)
}

func TestRedisStateStore_RejectsEmpty(t *testing.T) {
	_, client := setupMiniRedis(t)
	store := NewRedisStateStore(client, "", 0)

	assert.Error(t, store.Set(context.Background(), "", StateInfo{CodeVerifier: "v"}))
	assert.Error(t, store.Set(context.Background(), "s", StateInfo{}))
}

func TestMemoryStateStore(t *testing.T) {
	store := NewMemoryStateStore(time.Minute)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "one", StateInfo{Provider: "google", CodeVerifier: "v"}))
	require.NoError(t, store.Set(ctx, "two", StateInfo{Provider: "google", CodeVerifier: "v"}))

	info, err := store.VerifyAndGet(ctx, "one")
	require.NoError(t, err)
	assert.Equal(t, "google", info.Provider)

	_, err = store.VerifyAndGet(ctx, "one")
	assert.ErrorIs(t, err, ErrStateNotFound)

	now = now.Add(2 * time.Minute)
	_, err = store.VerifyAndGet(ctx, "two")
	assert.ErrorIs(t, err, ErrStateNotFound)
}
