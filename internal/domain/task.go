package domain

import (
	"time"
)

// TaskStatus represents the workflow state of a task.
type TaskStatus string

const (
	StatusPending    TaskStatus = "pending"
	StatusInProgress TaskStatus = "in-progress"
	StatusCompleted  TaskStatus = "completed"
)

// IsValidStatus reports whether s is one of the known task statuses.
func IsValidStatus(s TaskStatus) bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// Task represents a task in the domain model.
// This is a pure domain model without database-specific concerns.
type Task struct {
	ID          string
	UserID      string
	Title       string
	Description string
	Status      TaskStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewTask creates a new Task owned by the given user.
func NewTask(userID, title, description string) Task {
	return Task{
		UserID:      userID,
		Title:       title,
		Description: description,
		Status:      StatusPending,
	}
}

// IsValid checks if the task has valid data.
func (t Task) IsValid() bool {
	return t.UserID != "" && t.Title != "" && IsValidStatus(t.Status)
}

// IsOwnedBy reports whether the task belongs to the given user.
func (t Task) IsOwnedBy(userID string) bool {
	return t.UserID == userID
}

// String returns the task title for display purposes.
func (t Task) String() string {
	return t.Title
}
