package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"ripple/internal/observability"

	"github.com/redis/go-redis/v9"
)

// TTLs for the cached read models.
const (
	FeedTTL    = 30 * time.Second
	ProfileTTL = 5 * time.Minute
	PostTTL    = time.Minute
)

// GetJSON attempts to get the key from Redis and unmarshal into dest.
// Returns (true, nil) if found and unmarshaled, (false, nil) if not found.
func GetJSON(ctx context.Context, key string, dest any) (bool, error) {
	if Client == nil {
		return false, nil
	}
	s, err := Client.Get(ctx, key).Result()
	if err == redis.Nil {
		observability.CacheRequests.WithLabelValues("miss").Inc()
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal([]byte(s), dest); err != nil {
		return false, err
	}
	observability.CacheRequests.WithLabelValues("hit").Inc()
	return true, nil
}

// SetJSON marshals v and sets the key with TTL.
func SetJSON(ctx context.Context, key string, v any, ttl time.Duration) error {
	if Client == nil {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return Client.Set(ctx, key, b, ttl).Err()
}

// Aside tries Redis first, on miss it calls fetch (which should populate
// dest), then stores the result with ttl. fetch must write into dest.
func Aside(ctx context.Context, key string, dest any, ttl time.Duration, fetch func() error) error {
	found, err := GetJSON(ctx, key, dest)
	if err != nil {
		return err
	}
	if found {
		return nil
	}

	if err := fetch(); err != nil {
		return err
	}

	// Store into cache (best-effort)
	_ = SetJSON(ctx, key, dest, ttl)
	return nil
}

// Delete removes the given keys. Best-effort when Redis is down.
func Delete(ctx context.Context, keys ...string) {
	if Client == nil || len(keys) == 0 {
		return
	}
	_ = Client.Del(ctx, keys...).Err()
}

// DeleteByPrefix removes every key matching prefix*. Uses SCAN so it never
// blocks the server on large keyspaces.
func DeleteByPrefix(ctx context.Context, prefix string) {
	if Client == nil {
		return
	}
	iter := Client.Scan(ctx, 0, prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		_ = Client.Del(ctx, iter.Val()).Err()
	}
}

// Key builders shared by services so invalidation and reads agree.

func FeedKey(viewerID uint, cursor string, limit int) string {
	return fmt.Sprintf("feed:%d:%s:%d", viewerID, cursor, limit)
}

func ProfileKey(username string) string {
	return "profile:" + username
}

func PostKey(postID uint) string {
	return fmt.Sprintf("post:%d", postID)
}
