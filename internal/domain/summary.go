package domain

import "time"

// LogSummary is one time log's contribution inside a daily summary.
type LogSummary struct {
	StartTime time.Time  `json:"startTime"`
	EndTime   *time.Time `json:"endTime"`
	Duration  int64      `json:"duration"` // whole seconds, floored
}

// TaskTimeSummary aggregates all of one task's logs within a summary window.
// TitleAvailable is false when the task has been deleted since the logs were
// recorded; its time still counts.
type TaskTimeSummary struct {
	Title          string       `json:"title"`
	TitleAvailable bool         `json:"titleAvailable"`
	TotalTime      int64        `json:"totalTime"` // seconds
	Logs           []LogSummary `json:"logs"`
}

// DailySummary is a read-only aggregate of time spent within one day-bounded
// window for a single user.
type DailySummary struct {
	TotalTime      int64                      `json:"totalTime"` // seconds
	TaskCount      int                        `json:"taskCount"`
	CompletedTasks int                        `json:"completedTasks"`
	Tasks          map[string]TaskTimeSummary `json:"tasks"` // keyed by task id
}

// TaskRef is a denormalized task reference for display alongside a log.
type TaskRef struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// TimeLogView is a presentation wrapper around a time log: formatted
// duration for closed logs, an explicit in-progress marker for open ones.
type TimeLogView struct {
	ID                string     `json:"id"`
	Task              TaskRef    `json:"task"`
	StartTime         time.Time  `json:"startTime"`
	EndTime           *time.Time `json:"endTime"`
	Duration          *int64     `json:"duration"` // seconds; nil while open
	FormattedDuration string     `json:"formattedDuration"`
}

// TimeLogFilter narrows a time log listing. All fields are optional.
type TimeLogFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
	TaskID    *string
}
