// Package cache holds the Redis-backed daily summary cache. Summaries
// containing an open log are never cached because their provisional
// durations change with wall-clock time.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"timeclock/internal/domain"
	"timeclock/internal/errors"
)

// SummaryCache stores serialized daily summaries keyed by user and day.
type SummaryCache struct {
	client *redis.Client
	ttl    time.Duration
}

// New connects to Redis and returns a cache with the given entry TTL.
func New(redisAddr string, ttl time.Duration) (*SummaryCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr: redisAddr,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, errors.NewStorageError("connect to redis", err)
	}

	return &SummaryCache{client: client, ttl: ttl}, nil
}

// NewWithClient wraps an existing client. Used by tests.
func NewWithClient(client *redis.Client, ttl time.Duration) *SummaryCache {
	return &SummaryCache{client: client, ttl: ttl}
}

func summaryKey(userID, day string) string {
	return fmt.Sprintf("summary:%s:%s", userID, day)
}

// Get returns the cached summary for the user and day, or nil on a miss.
func (c *SummaryCache) Get(ctx context.Context, userID, day string) (*domain.DailySummary, error) {
	data, err := c.client.Get(ctx, summaryKey(userID, day)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, errors.NewStorageError("read summary cache", err)
	}

	var summary domain.DailySummary
	if err := json.Unmarshal([]byte(data), &summary); err != nil {
		return nil, errors.NewStorageError("decode cached summary", err)
	}
	return &summary, nil
}

// Set stores a summary for the user and day.
func (c *SummaryCache) Set(ctx context.Context, userID, day string, summary *domain.DailySummary) error {
	data, err := json.Marshal(summary)
	if err != nil {
		return errors.NewStorageError("encode summary", err)
	}
	if err := c.client.Set(ctx, summaryKey(userID, day), data, c.ttl).Err(); err != nil {
		return errors.NewStorageError("write summary cache", err)
	}
	return nil
}

// InvalidateUser drops every cached summary for the user. Called on any
// write touching the user's tasks or time logs.
func (c *SummaryCache) InvalidateUser(ctx context.Context, userID string) error {
	pattern := summaryKey(userID, "*")
	iter := c.client.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return errors.NewStorageError("invalidate summary cache", err)
		}
	}
	if err := iter.Err(); err != nil {
		return errors.NewStorageError("scan summary cache", err)
	}
	return nil
}

// Close releases the Redis connection.
func (c *SummaryCache) Close() error {
	return c.client.Close()
}
