package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisMirror copies cache entries into Redis so a restarted process can
// serve warm data without refetching every provider. The in-memory table
// stays authoritative; the mirror is best effort.
type RedisMirror struct {
	client *redis.Client
}

// NewRedisMirror connects to Redis and verifies the connection
func NewRedisMirror(redisURL string) (*RedisMirror, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &RedisMirror{client: client}, nil
}

// Close closes the Redis connection
func (m *RedisMirror) Close() error {
	return m.client.Close()
}

// HealthCheck pings Redis to verify the connection
func (m *RedisMirror) HealthCheck(ctx context.Context) error {
	return m.client.Ping(ctx).Err()
}

// Write stores an entry under its cache key with the policy TTL
func (m *RedisMirror) Write(ctx context.Context, e *Entry) error {
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshaling cache entry: %w", err)
	}

	return m.client.Set(ctx, mirrorKey(e.Key), data, e.TTL).Err()
}

// Read retrieves a mirrored entry, or redis.Nil if absent/expired
func (m *RedisMirror) Read(ctx context.Context, key string) (*Entry, error) {
	data, err := m.client.Get(ctx, mirrorKey(key)).Result()
	if err != nil {
		return nil, err
	}

	var entry Entry
	if err := json.Unmarshal([]byte(data), &entry); err != nil {
		return nil, fmt.Errorf("unmarshaling cache entry: %w", err)
	}
	entry.TTL = time.Duration(entry.TTLSeconds) * time.Second

	return &entry, nil
}

// Delete removes mirrored entries
func (m *RedisMirror) Delete(ctx context.Context, keys ...string) error {
	prefixed := make([]string, len(keys))
	for i, k := range keys {
		prefixed[i] = mirrorKey(k)
	}
	return m.client.Del(ctx, prefixed...).Err()
}

func mirrorKey(key string) string {
	return "gridiron:cache:" + key
}
