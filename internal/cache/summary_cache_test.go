package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"timeclock/internal/domain"
)

func newTestCache(t *testing.T, ttl time.Duration) (*SummaryCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	c := NewWithClient(client, ttl)
	t.Cleanup(func() { c.Close() })
	return c, mr
}

func sampleSummary() *domain.DailySummary {
	return &domain.DailySummary{
		TotalTime:      1500,
		TaskCount:      1,
		CompletedTasks: 2,
		Tasks: map[string]domain.TaskTimeSummary{
			"task-1": {
				Title:          "Write report",
				TitleAvailable: true,
				TotalTime:      1500,
			},
		},
	}
}

func TestSummaryCache_SetAndGet(t *testing.T) {
	c, _ := newTestCache(t, 5*time.Minute)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "user-1", "2026-03-14", sampleSummary()))

	got, err := c.Get(ctx, "user-1", "2026-03-14")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, int64(1500), got.TotalTime)
	assert.Equal(t, 1, got.TaskCount)
	assert.Equal(t, 2, got.CompletedTasks)
	assert.Equal(t, "Write report", got.Tasks["task-1"].Title)
}

func TestSummaryCache_GetMiss(t *testing.T) {
	c, _ := newTestCache(t, 5*time.Minute)

	got, err := c.Get(context.Background(), "user-1", "2026-03-14")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSummaryCache_EntriesExpire(t *testing.T) {
	c, mr := newTestCache(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "user-1", "2026-03-14", sampleSummary()))
	assert.True(t, mr.Exists("summary:user-1:2026-03-14"))

	mr.FastForward(2 * time.Minute)

	got, err := c.Get(ctx, "user-1", "2026-03-14")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSummaryCache_InvalidateUser(t *testing.T) {
	c, mr := newTestCache(t, 5*time.Minute)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "user-1", "2026-03-13", sampleSummary()))
	require.NoError(t, c.Set(ctx, "user-1", "2026-03-14", sampleSummary()))
	require.NoError(t, c.Set(ctx, "user-2", "2026-03-14", sampleSummary()))

	require.NoError(t, c.InvalidateUser(ctx, "user-1"))

	assert.False(t, mr.Exists("summary:user-1:2026-03-13"))
	assert.False(t, mr.Exists("summary:user-1:2026-03-14"))
	// Other users keep their entries
	assert.True(t, mr.Exists("summary:user-2:2026-03-14"))
}

func TestSummaryCache_InvalidateUserWithoutEntries(t *testing.T) {
	c, _ := newTestCache(t, 5*time.Minute)
	assert.NoError(t, c.InvalidateUser(context.Background(), "user-1"))
}
