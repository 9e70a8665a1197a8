package domain

import (
	"timeclock/internal/repository/models"
)

// TaskMapper handles conversion between domain and storage Task models.
type TaskMapper struct{}

// NewTaskMapper creates a new TaskMapper instance.
func NewTaskMapper() *TaskMapper {
	return &TaskMapper{}
}

// ToStorage converts a domain Task to a storage Task.
func (m *TaskMapper) ToStorage(task Task) models.Task {
	return models.Task{
		ID:          task.ID,
		UserID:      task.UserID,
		Title:       task.Title,
		Description: task.Description,
		Status:      string(task.Status),
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}

// FromStorage converts a storage Task to a domain Task.
func (m *TaskMapper) FromStorage(row models.Task) Task {
	return Task{
		ID:          row.ID,
		UserID:      row.UserID,
		Title:       row.Title,
		Description: row.Description,
		Status:      TaskStatus(row.Status),
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
}

// FromStorageSlice converts a slice of storage Tasks to domain Tasks.
func (m *TaskMapper) FromStorageSlice(rows []*models.Task) []*Task {
	tasks := make([]*Task, len(rows))
	for i, row := range rows {
		task := m.FromStorage(*row)
		tasks[i] = &task
	}
	return tasks
}

// TimeLogMapper handles conversion between domain and storage TimeLog models.
type TimeLogMapper struct{}

// NewTimeLogMapper creates a new TimeLogMapper instance.
func NewTimeLogMapper() *TimeLogMapper {
	return &TimeLogMapper{}
}

// ToStorage converts a domain TimeLog to a storage TimeLog.
func (m *TimeLogMapper) ToStorage(log TimeLog) models.TimeLog {
	return models.TimeLog{
		ID:        log.ID,
		UserID:    log.UserID,
		TaskID:    log.TaskID,
		StartTime: log.StartTime,
		EndTime:   log.EndTime,
	}
}

// FromStorage converts a storage TimeLog to a domain TimeLog.
func (m *TimeLogMapper) FromStorage(row models.TimeLog) TimeLog {
	return TimeLog{
		ID:        row.ID,
		UserID:    row.UserID,
		TaskID:    row.TaskID,
		StartTime: row.StartTime,
		EndTime:   row.EndTime,
	}
}

// FromStorageSlice converts a slice of storage TimeLogs to domain TimeLogs.
func (m *TimeLogMapper) FromStorageSlice(rows []*models.TimeLog) []*TimeLog {
	logs := make([]*TimeLog, len(rows))
	for i, row := range rows {
		log := m.FromStorage(*row)
		logs[i] = &log
	}
	return logs
}

// Mapper bundles the model mappers used by the service layer.
type Mapper struct {
	Task    *TaskMapper
	TimeLog *TimeLogMapper
}

// NewMapper creates a new Mapper instance.
func NewMapper() *Mapper {
	return &Mapper{
		Task:    NewTaskMapper(),
		TimeLog: NewTimeLogMapper(),
	}
}
