package services

import (
	"context"
	"time"

	"timeclock/internal/domain"
)

// TimeRange represents a half-open time window [Start, End)
type TimeRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// TimerSession couples a time log with its task for display. Duration is
// human readable; it is empty for a log that has just been started.
type TimerSession struct {
	Log      *domain.TimeLog `json:"log"`
	Task     *domain.Task    `json:"task"`
	Duration string          `json:"duration,omitempty"`
}

// UpdateTaskParams carries the optional fields of a task update. Nil fields
// are left unchanged.
type UpdateTaskParams struct {
	Title       *string
	Description *string
	Status      *domain.TaskStatus
}

// TimerService starts and stops time logs while preserving the rule that a
// user has at most one open log at a time.
type TimerService interface {
	// Start opens a new time log for the task. It fails with a not-found
	// error when the task does not exist or belongs to someone else, and
	// with a conflict error carrying the active task id when any log is
	// already open for the user.
	Start(ctx context.Context, userID, taskID string) (*TimerSession, error)

	// Stop closes the open log matching both user and task. Stopping a task
	// other than the one being timed fails with a not-found error rather
	// than closing the active log.
	Stop(ctx context.Context, userID, taskID string) (*TimerSession, error)
}

// SummaryService computes read-only aggregations over stored time logs.
type SummaryService interface {
	// GetDailySummary aggregates the user's logs for one day. A nil day
	// means today in the service's configured time zone. Open logs
	// contribute a provisional duration measured against a single reference
	// time captured at the start of the call.
	GetDailySummary(ctx context.Context, userID string, day *time.Time) (*domain.DailySummary, error)

	// GetRangeSummary is the general form of GetDailySummary over an
	// arbitrary [start, end) window.
	GetRangeSummary(ctx context.Context, userID string, window TimeRange) (*domain.DailySummary, error)

	// ListTimeLogs returns the user's logs matching the filter, most recent
	// first, with display formatting applied.
	ListTimeLogs(ctx context.Context, userID string, filter domain.TimeLogFilter) ([]*domain.TimeLogView, error)
}

// TaskService is the task registry: plain CRUD plus the ownership lookup
// the timer depends on.
type TaskService interface {
	CreateTask(ctx context.Context, userID, title, description string) (*domain.Task, error)
	ListTasks(ctx context.Context, userID string) ([]*domain.Task, error)
	UpdateTask(ctx context.Context, userID, taskID string, params UpdateTaskParams) (*domain.Task, error)
	DeleteTask(ctx context.Context, userID, taskID string) error

	// FindOwnedTask returns the task only when it exists and belongs to the
	// user; otherwise a not-found error.
	FindOwnedTask(ctx context.Context, userID, taskID string) (*domain.Task, error)
}

// SummaryInvalidator is notified whenever a user's data changes so derived
// caches can be dropped. Implemented by cache.SummaryCache.
type SummaryInvalidator interface {
	InvalidateUser(ctx context.Context, userID string) error
}
