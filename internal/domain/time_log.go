package domain

import (
	"time"
)

// TimeLog represents one contiguous recorded span of work on a task.
// This is a pure domain model without database-specific concerns.
type TimeLog struct {
	ID        string
	UserID    string
	TaskID    string
	StartTime time.Time
	EndTime   *time.Time // nil while the log is open
}

// NewTimeLog creates a new open TimeLog for the given task.
func NewTimeLog(userID, taskID string, startTime time.Time) TimeLog {
	return TimeLog{
		UserID:    userID,
		TaskID:    taskID,
		StartTime: startTime,
	}
}

// IsOpen returns true if the time log is still being timed (no end time).
func (tl TimeLog) IsOpen() bool {
	return tl.EndTime == nil
}

// Close sets the end time for the time log.
func (tl TimeLog) Close(endTime time.Time) TimeLog {
	tl.EndTime = &endTime
	return tl
}

// Duration returns the span of the time log. An open log is measured
// against the supplied reference time so callers control the snapshot.
func (tl TimeLog) Duration(ref time.Time) time.Duration {
	end := ref
	if tl.EndTime != nil {
		end = *tl.EndTime
	}
	d := end.Sub(tl.StartTime)
	if d < 0 {
		return 0
	}
	return d
}

// DurationSeconds returns the floored whole-second duration, never negative.
func (tl TimeLog) DurationSeconds(ref time.Time) int64 {
	return int64(tl.Duration(ref) / time.Second)
}

// IsValid checks if the time log has valid data.
func (tl TimeLog) IsValid() bool {
	if tl.UserID == "" || tl.TaskID == "" {
		return false
	}
	if tl.StartTime.IsZero() {
		return false
	}
	if tl.EndTime != nil && tl.EndTime.Before(tl.StartTime) {
		return false
	}
	return true
}
