package redis

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/bizscrape-service/internal/entity"
)

func TestDecodeStats(t *testing.T) {
	s, err := decodeStats(map[string]string{"total": "5", "successful": "3", "failed": "2", "inProgress": "0"})
	require.NoError(t, err)
	assert.Equal(t, entity.ScrapeStats{Total: 5, Successful: 3, Failed: 2}, s)

	_, err = decodeStats(map[string]string{"total": "5"})
	require.Error(t, err)

	_, err = decodeStats(map[string]string{"total": "x", "successful": "0", "failed": "0", "inProgress": "0"})
	require.Error(t, err)
}

func TestStatsCacheRoundTrip(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set")
	}
	ctx := context.Background()
	client := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { _ = client.Close() })
	require.NoError(t, client.Ping(ctx).Err())

	cache := NewStatsCache(client, time.Minute)
	user := uuid.NewString()

	_, ok, err := cache.Get(ctx, user)
	require.NoError(t, err)
	assert.False(t, ok)

	want := entity.ScrapeStats{Total: 4, Successful: 3, Failed: 1}
	gen, err := cache.Generation(ctx, user)
	require.NoError(t, err)
	assert.Zero(t, gen)
	stored, err := cache.Set(ctx, user, want, gen)
	require.NoError(t, err)
	require.True(t, stored)
	got, ok, err := cache.Get(ctx, user)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, want, got)

	ttl, err := client.TTL(ctx, statsKeyPrefix+user).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))

	require.NoError(t, cache.Invalidate(ctx, user))
	_, ok, err = cache.Get(ctx, user)
	require.NoError(t, err)
	assert.False(t, ok)

	// A fill computed before the Invalidate must not land.
	stored, err = cache.Set(ctx, user, want, gen)
	require.NoError(t, err)
	assert.False(t, stored)
	_, ok, err = cache.Get(ctx, user)
	require.NoError(t, err)
	assert.False(t, ok)

	gen, err = cache.Generation(ctx, user)
	require.NoError(t, err)
	assert.EqualValues(t, 1, gen)
}
