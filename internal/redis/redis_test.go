package redis

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nixie-Tech-LLC/rafiq/internal/model"
)

func testClient(t *testing.T) *redis.Client {
	t.Helper()
	addr := os.Getenv("TEST_REDIS_ADDRESS")
	if addr == "" {
		addr = "localhost:6379"
	}
	client := redis.NewClient(&redis.Options{Addr: addr, DB: 15})
	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("redis not available at %s: %v", addr, err)
	}
	t.Cleanup(func() { client.Close() })
	return client
}

func TestStateCache(t *testing.T) {
	client := testClient(t)
	cache := NewStateCache(client, time.Minute)
	ctx := context.Background()
	userID := int(time.Now().UnixNano() % 1_000_000)

	_, err := cache.Get(ctx, userID)
	assert.ErrorIs(t, err, ErrMiss)

	state := model.DefaultReaderState()
	state.Page = 77
	require.NoError(t, cache.Put(ctx, userID, state))

	got, err := cache.Get(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 77, got.Page)

	require.NoError(t, cache.Invalidate(ctx, userID))
	_, err = cache.Get(ctx, userID)
	assert.ErrorIs(t, err, ErrMiss)
}

func TestStateCacheDropsGarbage(t *testing.T) {
	client := testClient(t)
	cache := NewStateCache(client, time.Minute)
	ctx := context.Background()
	userID := int(time.Now().UnixNano()%1_000_000) + 1_000_000

	require.NoError(t, client.Set(ctx, stateKey(userID), "{not json", time.Minute).Err())
	_, err := cache.Get(ctx, userID)
	assert.ErrorIs(t, err, ErrMiss)
	assert.Equal(t, int64(0), client.Exists(ctx, stateKey(userID)).Val())
}

func TestFollowCodesAreSingleUse(t *testing.T) {
	client := testClient(t)
	cache := NewStateCache(client, time.Minute)
	ctx := context.Background()

	require.NoError(t, cache.PutFollowCode(ctx, "TESTCODE", 12, time.Minute))
	userID, err := cache.ClaimFollowCode(ctx, "TESTCODE")
	require.NoError(t, err)
	assert.Equal(t, 12, userID)

	_, err = cache.ClaimFollowCode(ctx, "TESTCODE")
	assert.ErrorIs(t, err, ErrMiss)
}
