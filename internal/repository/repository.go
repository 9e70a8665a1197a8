// Package repository defines the storage contract shared by the SQLite and
// Postgres backends.
package repository

import (
	"context"
	"time"

	"timeclock/internal/repository/models"
)

// SearchOptions narrows a time log search. StartTime is inclusive and
// EndTime exclusive, matching the [rangeStart, rangeEnd) window used by
// summaries. All fields are optional.
type SearchOptions struct {
	StartTime *time.Time
	EndTime   *time.Time
	TaskID    *string
}

// Repository is the durable store behind the timer, summary and task
// services. Every query is scoped to a single user.
//
// Backends must enforce the single-open-log rule themselves: a second
// insert of an open log for the same user is rejected with a conflict
// error regardless of any application-level checks, so concurrent starts
// cannot race past each other.
type Repository interface {
	// Task operations
	CreateTask(ctx context.Context, task *models.Task) error
	GetTask(ctx context.Context, userID, taskID string) (*models.Task, error)
	ListTasks(ctx context.Context, userID string) ([]*models.Task, error)
	UpdateTask(ctx context.Context, task *models.Task) error
	DeleteTask(ctx context.Context, userID, taskID string) error

	// CountCompletedTasks counts the user's tasks whose status is completed
	// and whose last update falls within [start, end).
	CountCompletedTasks(ctx context.Context, userID string, start, end time.Time) (int, error)

	// Time log operations
	CreateTimeLog(ctx context.Context, log *models.TimeLog) error
	GetOpenTimeLog(ctx context.Context, userID string) (*models.TimeLog, error)
	CloseTimeLog(ctx context.Context, userID, taskID string, endTime time.Time) (*models.TimeLog, error)
	SearchTimeLogs(ctx context.Context, userID string, opts SearchOptions) ([]*models.TimeLog, error)

	// CountOpenTimeLogs counts open logs across all users. The server uses
	// it to seed the active-timers gauge at startup.
	CountOpenTimeLogs(ctx context.Context) (int, error)

	// Utility
	Close() error
}
