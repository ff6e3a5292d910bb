// internal/leadscoring/cache.go
package leadscoring

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const cacheKeyPrefix = "rfq:lead:"

// CacheKey is the Redis key holding the latest record for a session.
func CacheKey(sessionID string) string {
	return cacheKeyPrefix + sessionID
}

// Cache keeps the most recent record per session in Redis.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

// Get returns nil without error on a miss.
func (c *Cache) Get(ctx context.Context, sessionID string) (*LeadScoreRecord, error) {
	raw, err := c.client.Get(ctx, CacheKey(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cache get: %w", err)
	}

	var record LeadScoreRecord
	if err := json.Unmarshal(raw, &record); err != nil {
		return nil, fmt.Errorf("cache decode: %w", err)
	}
	return &record, nil
}

func (c *Cache) Set(ctx context.Context, record *LeadScoreRecord) error {
	raw, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("cache encode: %w", err)
	}
	if err := c.client.Set(ctx, CacheKey(record.SessionID), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}
