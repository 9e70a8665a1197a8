package sqlite

import (
	"database/sql"

	"timeclock/internal/repository/models"
)

// Scanner interface defines the common scanning behavior for both sql.Row and sql.Rows
type Scanner interface {
	Scan(dest ...interface{}) error
}

// Rows interface defines the common behavior for sql.Rows
type Rows interface {
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
}

// ScanTimeLog scans a single time log from a database row
func ScanTimeLog(scanner Scanner) (*models.TimeLog, error) {
	row := &models.TimeLog{}
	var startTime string
	var endTime sql.NullString

	err := scanner.Scan(
		&row.ID,
		&row.UserID,
		&row.TaskID,
		&startTime,
		&endTime,
	)
	if err != nil {
		return nil, err
	}

	row.StartTime, err = ParseTimeFromDB(startTime)
	if err != nil {
		return nil, err
	}
	if endTime.Valid {
		end, err := ParseTimeFromDB(endTime.String)
		if err != nil {
			return nil, err
		}
		row.EndTime = &end
	}

	return row, nil
}

// ScanTimeLogs scans multiple time logs from database rows
func ScanTimeLogs(rows Rows) ([]*models.TimeLog, error) {
	var logs []*models.TimeLog
	for rows.Next() {
		log, err := ScanTimeLog(rows)
		if err != nil {
			return nil, err
		}
		logs = append(logs, log)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return logs, nil
}

// ScanTask scans a single task from a database row
func ScanTask(scanner Scanner) (*models.Task, error) {
	task := &models.Task{}
	var createdAt, updatedAt string

	err := scanner.Scan(
		&task.ID,
		&task.UserID,
		&task.Title,
		&task.Description,
		&task.Status,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	task.CreatedAt, err = ParseTimeFromDB(createdAt)
	if err != nil {
		return nil, err
	}
	task.UpdatedAt, err = ParseTimeFromDB(updatedAt)
	if err != nil {
		return nil, err
	}

	return task, nil
}

// ScanTasks scans multiple tasks from database rows
func ScanTasks(rows Rows) ([]*models.Task, error) {
	var tasks []*models.Task
	for rows.Next() {
		task, err := ScanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return tasks, nil
}
