package services

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"timeclock/internal/cache"
	"timeclock/internal/domain"
	"timeclock/internal/errors"
)

// runInterval records a closed log of the given length starting at the
// current clock time.
func runInterval(t *testing.T, timer TimerService, clock *fixedClock, userID, taskID string, d time.Duration) {
	t.Helper()
	ctx := context.Background()
	_, err := timer.Start(ctx, userID, taskID)
	require.NoError(t, err)
	clock.Advance(d)
	_, err = timer.Stop(ctx, userID, taskID)
	require.NoError(t, err)
}

func TestSummaryService_DailySummary(t *testing.T) {
	repo := newTestRepository(t)
	clock := &fixedClock{now: time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)}
	taskID := createTestTask(t, repo, clock, "user-1", "Write report")

	timer := NewTimerService(repo, clock, nil)
	summaries := NewSummaryService(repo, clock, time.UTC, nil)
	ctx := context.Background()

	// Two closed intervals on the same task within the same day
	runInterval(t, timer, clock, "user-1", taskID, 10*time.Minute)
	clock.Advance(time.Hour)
	runInterval(t, timer, clock, "user-1", taskID, 15*time.Minute)

	summary, err := summaries.GetDailySummary(ctx, "user-1", nil)
	require.NoError(t, err)

	assert.Equal(t, int64(1500), summary.TotalTime)
	assert.Equal(t, 1, summary.TaskCount)
	assert.Equal(t, 0, summary.CompletedTasks)

	taskSummary, ok := summary.Tasks[taskID]
	require.True(t, ok)
	assert.Equal(t, int64(1500), taskSummary.TotalTime)
	assert.True(t, taskSummary.TitleAvailable)
	assert.Equal(t, "Write report", taskSummary.Title)
	require.Len(t, taskSummary.Logs, 2)

	// Per-log durations add up to the task total
	var sum int64
	for _, l := range taskSummary.Logs {
		sum += l.Duration
	}
	assert.Equal(t, taskSummary.TotalTime, sum)
}

func TestSummaryService_TotalIsSumAcrossTasks(t *testing.T) {
	repo := newTestRepository(t)
	clock := &fixedClock{now: time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)}
	taskA := createTestTask(t, repo, clock, "user-1", "Task A")
	taskB := createTestTask(t, repo, clock, "user-1", "Task B")

	timer := NewTimerService(repo, clock, nil)
	summaries := NewSummaryService(repo, clock, time.UTC, nil)

	runInterval(t, timer, clock, "user-1", taskA, 10*time.Minute)
	runInterval(t, timer, clock, "user-1", taskB, 20*time.Minute)
	runInterval(t, timer, clock, "user-1", taskA, 5*time.Minute)

	summary, err := summaries.GetDailySummary(context.Background(), "user-1", nil)
	require.NoError(t, err)

	assert.Equal(t, 2, summary.TaskCount)
	assert.Equal(t, int64(900), summary.Tasks[taskA].TotalTime)
	assert.Equal(t, int64(1200), summary.Tasks[taskB].TotalTime)
	assert.Equal(t, summary.Tasks[taskA].TotalTime+summary.Tasks[taskB].TotalTime, summary.TotalTime)
}

func TestSummaryService_RepeatedReadsAreStable(t *testing.T) {
	repo := newTestRepository(t)
	clock := &fixedClock{now: time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)}
	taskID := createTestTask(t, repo, clock, "user-1", "Task")

	timer := NewTimerService(repo, clock, nil)
	summaries := NewSummaryService(repo, clock, time.UTC, nil)
	ctx := context.Background()

	runInterval(t, timer, clock, "user-1", taskID, 10*time.Minute)

	first, err := summaries.GetDailySummary(ctx, "user-1", nil)
	require.NoError(t, err)
	second, err := summaries.GetDailySummary(ctx, "user-1", nil)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestSummaryService_OpenLogIsProvisional(t *testing.T) {
	repo := newTestRepository(t)
	clock := &fixedClock{now: time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)}
	taskID := createTestTask(t, repo, clock, "user-1", "Task")

	timer := NewTimerService(repo, clock, nil)
	summaries := NewSummaryService(repo, clock, time.UTC, nil)
	ctx := context.Background()

	_, err := timer.Start(ctx, "user-1", taskID)
	require.NoError(t, err)

	clock.Advance(7 * time.Minute)
	summary, err := summaries.GetDailySummary(ctx, "user-1", nil)
	require.NoError(t, err)
	assert.Equal(t, int64(420), summary.TotalTime)

	// The open log keeps accruing as the clock moves
	clock.Advance(3 * time.Minute)
	summary, err = summaries.GetDailySummary(ctx, "user-1", nil)
	require.NoError(t, err)
	assert.Equal(t, int64(600), summary.TotalTime)
}

func TestSummaryService_DeletedTaskStillCounts(t *testing.T) {
	repo := newTestRepository(t)
	clock := &fixedClock{now: time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)}
	taskID := createTestTask(t, repo, clock, "user-1", "Doomed task")

	timer := NewTimerService(repo, clock, nil)
	tasks := NewTaskService(repo, clock, nil)
	summaries := NewSummaryService(repo, clock, time.UTC, nil)
	ctx := context.Background()

	runInterval(t, timer, clock, "user-1", taskID, 10*time.Minute)
	require.NoError(t, tasks.DeleteTask(ctx, "user-1", taskID))

	summary, err := summaries.GetDailySummary(ctx, "user-1", nil)
	require.NoError(t, err)

	assert.Equal(t, int64(600), summary.TotalTime)
	taskSummary, ok := summary.Tasks[taskID]
	require.True(t, ok)
	assert.False(t, taskSummary.TitleAvailable)
	assert.Empty(t, taskSummary.Title)
}

func TestSummaryService_CompletedTasksWindow(t *testing.T) {
	repo := newTestRepository(t)
	clock := &fixedClock{now: time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)}
	taskA := createTestTask(t, repo, clock, "user-1", "Task A")
	taskB := createTestTask(t, repo, clock, "user-1", "Task B")

	tasks := NewTaskService(repo, clock, nil)
	summaries := NewSummaryService(repo, clock, time.UTC, nil)
	ctx := context.Background()

	// A completed today, B completed yesterday
	status := domain.StatusCompleted
	_, err := tasks.UpdateTask(ctx, "user-1", taskA, UpdateTaskParams{Status: &status})
	require.NoError(t, err)

	yesterdayClock := &fixedClock{now: clock.now.Add(-24 * time.Hour)}
	tasksYesterday := NewTaskService(repo, yesterdayClock, nil)
	_, err = tasksYesterday.UpdateTask(ctx, "user-1", taskB, UpdateTaskParams{Status: &status})
	require.NoError(t, err)

	today, err := summaries.GetDailySummary(ctx, "user-1", nil)
	require.NoError(t, err)
	assert.Equal(t, 1, today.CompletedTasks)

	yesterday := clock.now.Add(-24 * time.Hour)
	past, err := summaries.GetDailySummary(ctx, "user-1", &yesterday)
	require.NoError(t, err)
	assert.Equal(t, 1, past.CompletedTasks)
}

func TestSummaryService_DayBoundaries(t *testing.T) {
	repo := newTestRepository(t)
	clock := &fixedClock{now: time.Date(2026, 3, 13, 23, 50, 0, 0, time.UTC)}
	taskID := createTestTask(t, repo, clock, "user-1", "Task")

	timer := NewTimerService(repo, clock, nil)
	summaries := NewSummaryService(repo, clock, time.UTC, nil)
	ctx := context.Background()

	// Started on the 13th; its start time keeps it out of the 14th
	runInterval(t, timer, clock, "user-1", taskID, 5*time.Minute)

	// Started on the 14th
	clock.now = time.Date(2026, 3, 14, 0, 10, 0, 0, time.UTC)
	runInterval(t, timer, clock, "user-1", taskID, 5*time.Minute)

	day14 := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	summary, err := summaries.GetDailySummary(ctx, "user-1", &day14)
	require.NoError(t, err)
	assert.Equal(t, int64(300), summary.TotalTime)

	day13 := time.Date(2026, 3, 13, 12, 0, 0, 0, time.UTC)
	summary, err = summaries.GetDailySummary(ctx, "user-1", &day13)
	require.NoError(t, err)
	assert.Equal(t, int64(300), summary.TotalTime)
}

func TestSummaryService_RangeSummaryValidation(t *testing.T) {
	repo := newTestRepository(t)
	clock := &fixedClock{now: time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)}
	summaries := NewSummaryService(repo, clock, time.UTC, nil)

	_, err := summaries.GetRangeSummary(context.Background(), "user-1", TimeRange{
		Start: clock.now,
		End:   clock.now.Add(-time.Hour),
	})
	require.Error(t, err)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeValidation))
}

func TestSummaryService_ListTimeLogs(t *testing.T) {
	repo := newTestRepository(t)
	clock := &fixedClock{now: time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)}
	taskA := createTestTask(t, repo, clock, "user-1", "Task A")
	taskB := createTestTask(t, repo, clock, "user-1", "Task B")

	timer := NewTimerService(repo, clock, nil)
	summaries := NewSummaryService(repo, clock, time.UTC, nil)
	ctx := context.Background()

	runInterval(t, timer, clock, "user-1", taskA, 5*time.Minute)
	clock.Advance(time.Minute)
	runInterval(t, timer, clock, "user-1", taskB, 10*time.Minute)
	clock.Advance(time.Minute)
	_, err := timer.Start(ctx, "user-1", taskA)
	require.NoError(t, err)

	views, err := summaries.ListTimeLogs(ctx, "user-1", domain.TimeLogFilter{})
	require.NoError(t, err)
	require.Len(t, views, 3)

	// Most recent first; the open log leads
	assert.Equal(t, InProgressMarker, views[0].FormattedDuration)
	assert.Nil(t, views[0].Duration)
	assert.Equal(t, taskA, views[0].Task.ID)
	assert.Equal(t, "Task A", views[0].Task.Title)

	assert.Equal(t, "10m 0s", views[1].FormattedDuration)
	require.NotNil(t, views[1].Duration)
	assert.Equal(t, int64(600), *views[1].Duration)
	assert.Equal(t, taskB, views[1].Task.ID)

	assert.Equal(t, "5m 0s", views[2].FormattedDuration)

	// Descending by start time
	assert.True(t, views[0].StartTime.After(views[1].StartTime))
	assert.True(t, views[1].StartTime.After(views[2].StartTime))
}

func TestSummaryService_ListTimeLogsFilters(t *testing.T) {
	repo := newTestRepository(t)
	clock := &fixedClock{now: time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)}
	taskA := createTestTask(t, repo, clock, "user-1", "Task A")
	taskB := createTestTask(t, repo, clock, "user-1", "Task B")

	timer := NewTimerService(repo, clock, nil)
	summaries := NewSummaryService(repo, clock, time.UTC, nil)
	ctx := context.Background()

	runInterval(t, timer, clock, "user-1", taskA, 5*time.Minute)
	clock.Advance(2 * time.Hour)
	cutoff := clock.now
	runInterval(t, timer, clock, "user-1", taskB, 5*time.Minute)

	byTask, err := summaries.ListTimeLogs(ctx, "user-1", domain.TimeLogFilter{TaskID: &taskA})
	require.NoError(t, err)
	require.Len(t, byTask, 1)
	assert.Equal(t, taskA, byTask[0].Task.ID)

	since, err := summaries.ListTimeLogs(ctx, "user-1", domain.TimeLogFilter{StartDate: &cutoff})
	require.NoError(t, err)
	require.Len(t, since, 1)
	assert.Equal(t, taskB, since[0].Task.ID)

	before, err := summaries.ListTimeLogs(ctx, "user-1", domain.TimeLogFilter{EndDate: &cutoff})
	require.NoError(t, err)
	require.Len(t, before, 1)
	assert.Equal(t, taskA, before[0].Task.ID)
}

func TestSummaryService_CachesSettledDays(t *testing.T) {
	repo := newTestRepository(t)
	clock := &fixedClock{now: time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)}
	taskID := createTestTask(t, repo, clock, "user-1", "Task")

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	summaryCache := cache.NewWithClient(client, 5*time.Minute)
	t.Cleanup(func() { summaryCache.Close() })

	timer := NewTimerService(repo, clock, summaryCache)
	summaries := NewSummaryService(repo, clock, time.UTC, summaryCache)
	ctx := context.Background()

	runInterval(t, timer, clock, "user-1", taskID, 10*time.Minute)

	first, err := summaries.GetDailySummary(ctx, "user-1", nil)
	require.NoError(t, err)
	assert.Equal(t, int64(600), first.TotalTime)
	assert.True(t, mr.Exists("summary:user-1:2026-03-14"))

	cached, err := summaries.GetDailySummary(ctx, "user-1", nil)
	require.NoError(t, err)
	assert.Equal(t, first.TotalTime, cached.TotalTime)

	// A new interval invalidates the cached day and the next read sees it
	runInterval(t, timer, clock, "user-1", taskID, 5*time.Minute)
	fresh, err := summaries.GetDailySummary(ctx, "user-1", nil)
	require.NoError(t, err)
	assert.Equal(t, int64(900), fresh.TotalTime)
}

func TestSummaryService_SkipsCacheWhileTimerRuns(t *testing.T) {
	repo := newTestRepository(t)
	clock := &fixedClock{now: time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)}
	taskID := createTestTask(t, repo, clock, "user-1", "Task")

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	summaryCache := cache.NewWithClient(client, 5*time.Minute)
	t.Cleanup(func() { summaryCache.Close() })

	timer := NewTimerService(repo, clock, summaryCache)
	summaries := NewSummaryService(repo, clock, time.UTC, summaryCache)
	ctx := context.Background()

	_, err := timer.Start(ctx, "user-1", taskID)
	require.NoError(t, err)

	_, err = summaries.GetDailySummary(ctx, "user-1", nil)
	require.NoError(t, err)
	assert.False(t, mr.Exists("summary:user-1:2026-03-14"))
}
