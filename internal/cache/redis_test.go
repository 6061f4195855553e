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

// setupTestRedis creates a miniredis server and returns a RedisCache instance
func setupTestRedis(t *testing.T) (*RedisCache, *miniredis.Miniredis, func()) {
	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	cache := NewRedisCache(client, 15*time.Minute)

	cleanup := func() {
		client.Close()
		mr.Close()
	}

	return cache, mr, cleanup
}

func TestGet_Success(t *testing.T) {
	cache, mr, cleanup := setupTestRedis(t)
	defer cleanup()

	doc := `<order id="ORD-000001"></order>`
	require.NoError(t, mr.Set(cacheKey("ORD-000001"), doc))

	result, err := cache.Get(context.Background(), "ORD-000001")
	require.NoError(t, err)
	assert.Equal(t, doc, string(result))
}

func TestGet_CacheMiss(t *testing.T) {
	cache, _, cleanup := setupTestRedis(t)
	defer cleanup()

	result, err := cache.Get(context.Background(), "ORD-000404")
	assert.ErrorIs(t, err, ErrCacheMiss)
	assert.Nil(t, result)
}

func TestGet_RedisDown(t *testing.T) {
	cache, mr, cleanup := setupTestRedis(t)
	defer cleanup()

	mr.Close()

	_, err := cache.Get(context.Background(), "ORD-000001")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrCacheMiss)
	assert.Contains(t, err.Error(), "redis get failed")
}

func TestSet_Success(t *testing.T) {
	cache, mr, cleanup := setupTestRedis(t)
	defer cleanup()

	require.NoError(t, cache.Set(context.Background(), "ORD-000001", []byte("<order/>")))

	stored, err := mr.Get(cacheKey("ORD-000001"))
	require.NoError(t, err)
	assert.Equal(t, "<order/>", stored)

	// TTL is base TTL plus up to 4 minutes of jitter
	ttl := mr.TTL(cacheKey("ORD-000001"))
	assert.GreaterOrEqual(t, ttl, 15*time.Minute)
	assert.LessOrEqual(t, ttl, 19*time.Minute)
}

func TestSet_Expires(t *testing.T) {
	cache, mr, cleanup := setupTestRedis(t)
	defer cleanup()

	require.NoError(t, cache.Set(context.Background(), "ORD-000001", []byte("<order/>")))
	mr.FastForward(20 * time.Minute)

	_, err := cache.Get(context.Background(), "ORD-000001")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestDelete_Success(t *testing.T) {
	cache, mr, cleanup := setupTestRedis(t)
	defer cleanup()

	require.NoError(t, mr.Set(cacheKey("ORD-000001"), "<order/>"))
	require.NoError(t, cache.Delete(context.Background(), "ORD-000001"))
	assert.False(t, mr.Exists(cacheKey("ORD-000001")))

	// Deleting a missing key is not an error
	assert.NoError(t, cache.Delete(context.Background(), "ORD-000001"))
}

func TestNopCache(t *testing.T) {
	var c DocumentCache = NopCache{}
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "ORD-000001", []byte("x")))
	_, err := c.Get(ctx, "ORD-000001")
	assert.ErrorIs(t, err, ErrCacheMiss)
	assert.NoError(t, c.Delete(ctx, "ORD-000001"))
}

func TestCacheKey(t *testing.T) {
	assert.Equal(t, "order-doc:ORD-000001", cacheKey("ORD-000001"))
}
