package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"timeclock/internal/repository"
	"timeclock/internal/repository/sqlite"
)

// fixedClock lets tests drive time explicitly.
type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time {
	return c.now
}

func (c *fixedClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

func newTestRepository(t *testing.T) repository.Repository {
	t.Helper()
	repo, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

// createTestTask seeds a task through the task service and returns its id.
func createTestTask(t *testing.T, repo repository.Repository, clock *fixedClock, userID, title string) string {
	t.Helper()
	tasks := NewTaskService(repo, clock, nil)
	task, err := tasks.CreateTask(context.Background(), userID, title, "")
	require.NoError(t, err)
	return task.ID
}
