// Package models holds the storage row representations shared by the
// repository backends.
package models

import "time"

// Task is a task row as persisted by a backend.
type Task struct {
	ID          string
	UserID      string
	Title       string
	Description string
	Status      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TimeLog is a time log row as persisted by a backend.
// A NULL end_time marks the log as open.
type TimeLog struct {
	ID        string
	UserID    string
	TaskID    string
	StartTime time.Time
	EndTime   *time.Time
}
