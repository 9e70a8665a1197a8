package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTimeLog_IsOpen(t *testing.T) {
	start := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

	log := NewTimeLog("user-1", "task-1", start)
	assert.True(t, log.IsOpen())

	closed := log.Close(start.Add(5 * time.Minute))
	assert.False(t, closed.IsOpen())
	// Close returns a copy; the original stays open
	assert.True(t, log.IsOpen())
}

func TestTimeLog_DurationSeconds(t *testing.T) {
	start := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		log      TimeLog
		ref      time.Time
		expected int64
	}{
		{
			name:     "closed log uses its end time",
			log:      NewTimeLog("user-1", "task-1", start).Close(start.Add(5*time.Minute + 30*time.Second)),
			ref:      start.Add(10 * time.Hour), // ignored
			expected: 330,
		},
		{
			name:     "open log measures against the reference time",
			log:      NewTimeLog("user-1", "task-1", start),
			ref:      start.Add(30 * time.Minute),
			expected: 1800,
		},
		{
			name:     "fractional seconds are floored, not rounded",
			log:      NewTimeLog("user-1", "task-1", start).Close(start.Add(2*time.Second + 900*time.Millisecond)),
			ref:      start,
			expected: 2,
		},
		{
			name:     "never negative",
			log:      NewTimeLog("user-1", "task-1", start),
			ref:      start.Add(-time.Minute),
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.log.DurationSeconds(tt.ref))
		})
	}
}

func TestTimeLog_IsValid(t *testing.T) {
	start := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		log      TimeLog
		expected bool
	}{
		{"open log", NewTimeLog("user-1", "task-1", start), true},
		{"closed log", NewTimeLog("user-1", "task-1", start).Close(start.Add(time.Minute)), true},
		{"missing user", NewTimeLog("", "task-1", start), false},
		{"missing task", NewTimeLog("user-1", "", start), false},
		{"zero start time", NewTimeLog("user-1", "task-1", time.Time{}), false},
		{"end before start", NewTimeLog("user-1", "task-1", start).Close(start.Add(-time.Minute)), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.log.IsValid())
		})
	}
}

func TestTask_IsValid(t *testing.T) {
	task := NewTask("user-1", "Write report", "quarterly numbers")
	assert.True(t, task.IsValid())
	assert.Equal(t, StatusPending, task.Status)
	assert.True(t, task.IsOwnedBy("user-1"))
	assert.False(t, task.IsOwnedBy("user-2"))

	task.Status = TaskStatus("archived")
	assert.False(t, task.IsValid())
}

func TestIsValidStatus(t *testing.T) {
	assert.True(t, IsValidStatus(StatusPending))
	assert.True(t, IsValidStatus(StatusInProgress))
	assert.True(t, IsValidStatus(StatusCompleted))
	assert.False(t, IsValidStatus(TaskStatus("done")))
	assert.False(t, IsValidStatus(TaskStatus("")))
}
