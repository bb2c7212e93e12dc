// Package cache provides a short-lived Redis read-through cache for
// assembled insight responses, so repeated dashboard refreshes do not
// recompute identical statistics.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog/log"

	"github.com/restwell/restwell/internal/insights"
)

// InsightsCache caches per-user insight responses keyed by fetch window.
type InsightsCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewInsightsCache wraps an existing Redis client.
func NewInsightsCache(client *redis.Client, ttl time.Duration) *InsightsCache {
	return &InsightsCache{client: client, ttl: ttl}
}

// Connect dials Redis and verifies the connection.
func Connect(ctx context.Context, addr string, ttl time.Duration) (*InsightsCache, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return NewInsightsCache(client, ttl), nil
}

// Close releases the underlying client.
func (c *InsightsCache) Close() error { return c.client.Close() }

// Get returns the cached response for (user, days) if present. A miss is
// (nil, false, nil); corrupt entries are treated as misses.
func (c *InsightsCache) Get(ctx context.Context, userID string, days int) (*insights.Response, bool, error) {
	raw, err := c.client.Get(ctx, cacheKey(userID, days)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("cache get failed: %w", err)
	}

	var resp insights.Response
	if err := json.Unmarshal(raw, &resp); err != nil {
		log.Warn().Err(err).Str("user_id", userID).Msg("dropping corrupt cache entry")
		return nil, false, nil
	}
	return &resp, true, nil
}

// Set stores a response under the cache TTL.
func (c *InsightsCache) Set(ctx context.Context, userID string, days int, resp insights.Response) error {
	raw, err := json.Marshal(resp)
	if err != nil {
		return fmt.Errorf("cache marshal failed: %w", err)
	}
	if err := c.client.Set(ctx, cacheKey(userID, days), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set failed: %w", err)
	}
	return nil
}

func cacheKey(userID string, days int) string {
	return fmt.Sprintf("insights:%s:%dd", userID, days)
}
