// internal/leadscoring/cache_test.go
package leadscoring

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, client
}

func TestCache_SetGet(t *testing.T) {
	mr, client := setupRedis(t)
	cache := NewCache(client, 10*time.Minute)
	record := createTestRecord()

	require.NoError(t, cache.Set(context.Background(), record))
	assert.True(t, mr.Exists("rfq:lead:sess-100"))
	assert.Equal(t, 10*time.Minute, mr.TTL("rfq:lead:sess-100"))

	got, err := cache.Get(context.Background(), "sess-100")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, record.ID, got.ID)
	assert.Equal(t, record.Score(), got.Score())
	assert.True(t, record.CreatedAt.Equal(got.CreatedAt))
}

func TestCache_Miss(t *testing.T) {
	_, client := setupRedis(t)

	got, err := NewCache(client, time.Minute).Get(context.Background(), "unknown")

	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestCache_CorruptEntry(t *testing.T) {
	mr, client := setupRedis(t)
	require.NoError(t, mr.Set("rfq:lead:bad", "{not json"))

	_, err := NewCache(client, time.Minute).Get(context.Background(), "bad")

	assert.Error(t, err)
}

func TestCache_Unavailable(t *testing.T) {
	mr, client := setupRedis(t)
	mr.Close()

	_, err := NewCache(client, time.Minute).Get(context.Background(), "sess-1")

	assert.Error(t, err)
}
