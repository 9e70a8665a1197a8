// Package sqlite is the default storage backend. Times are stored as RFC3339
// text in UTC; the single-open-log rule is enforced by a partial unique index.
package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"timeclock/internal/errors"
	"timeclock/internal/repository"
	"timeclock/internal/repository/models"
	"timeclock/internal/repository/sqlite/migrations"

	_ "modernc.org/sqlite"
)

// SQLiteRepository implements the repository.Repository interface
type SQLiteRepository struct {
	db *sql.DB
}

var _ repository.Repository = (*SQLiteRepository)(nil)

// New creates a new SQLite repository instance
func New(dbPath string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.NewStorageError("open database", err)
	}

	// SQLite serializes writers anyway; a single connection avoids
	// SQLITE_BUSY and keeps :memory: databases coherent under the pool.
	db.SetMaxOpenConns(1)

	if err := migrations.RunMigrations(db); err != nil {
		db.Close()
		return nil, errors.NewStorageError("run migrations", err)
	}

	return &SQLiteRepository{db: db}, nil
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

// CreateTask inserts a new task row
func (r *SQLiteRepository) CreateTask(ctx context.Context, task *models.Task) error {
	query := `
	INSERT INTO tasks (id, user_id, title, description, status, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		task.ID, task.UserID, task.Title, task.Description, task.Status,
		FormatTimeForDB(task.CreatedAt), FormatTimeForDB(task.UpdatedAt))
	if err != nil {
		return HandleStorageError("create task", err)
	}
	return nil
}

// GetTask retrieves a task by id, scoped to its owner
func (r *SQLiteRepository) GetTask(ctx context.Context, userID, taskID string) (*models.Task, error) {
	query := `
	SELECT id, user_id, title, description, status, created_at, updated_at
	FROM tasks
	WHERE id = ? AND user_id = ?`

	return QuerySingle(ctx, r.db, query, ScanTask, "task", taskID, taskID, userID)
}

// ListTasks retrieves all tasks owned by the user
func (r *SQLiteRepository) ListTasks(ctx context.Context, userID string) ([]*models.Task, error) {
	query := `
	SELECT id, user_id, title, description, status, created_at, updated_at
	FROM tasks
	WHERE user_id = ?
	ORDER BY created_at ASC`

	return QueryMultiple(ctx, r.db, query, ScanTasks, "tasks", userID)
}

// UpdateTask updates an existing task row
func (r *SQLiteRepository) UpdateTask(ctx context.Context, task *models.Task) error {
	query := `
	UPDATE tasks
	SET title = ?, description = ?, status = ?, updated_at = ?
	WHERE id = ? AND user_id = ?`

	return ExecuteWithRowsAffected(ctx, r.db, query, "task", task.ID,
		task.Title, task.Description, task.Status, FormatTimeForDB(task.UpdatedAt),
		task.ID, task.UserID)
}

// DeleteTask deletes a task row. Its time logs are kept; summaries report
// the title as unavailable but still count the time.
func (r *SQLiteRepository) DeleteTask(ctx context.Context, userID, taskID string) error {
	query := `DELETE FROM tasks WHERE id = ? AND user_id = ?`
	return ExecuteWithRowsAffected(ctx, r.db, query, "task", taskID, taskID, userID)
}

// CountCompletedTasks counts tasks completed within [start, end)
func (r *SQLiteRepository) CountCompletedTasks(ctx context.Context, userID string, start, end time.Time) (int, error) {
	query := `
	SELECT COUNT(*)
	FROM tasks
	WHERE user_id = ? AND status = ? AND updated_at >= ? AND updated_at < ?`

	var count int
	err := r.db.QueryRowContext(ctx, query, userID, "completed",
		FormatTimeForDB(start), FormatTimeForDB(end)).Scan(&count)
	if err != nil {
		return 0, HandleStorageError("count completed tasks", err)
	}
	return count, nil
}

// CreateTimeLog inserts a new time log row. Inserting a second open log for
// the same user violates the partial unique index and is reported as a
// conflict error.
func (r *SQLiteRepository) CreateTimeLog(ctx context.Context, log *models.TimeLog) error {
	query := `
	INSERT INTO time_logs (id, user_id, task_id, start_time, end_time)
	VALUES (?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		log.ID, log.UserID, log.TaskID,
		FormatTimeForDB(log.StartTime), FormatTimePtrForDB(log.EndTime))
	if err != nil {
		if IsUniqueViolation(err) {
			return errors.NewConflictError("")
		}
		return HandleStorageError("create time log", err)
	}
	return nil
}

// GetOpenTimeLog finds the user's open time log, if any
func (r *SQLiteRepository) GetOpenTimeLog(ctx context.Context, userID string) (*models.TimeLog, error) {
	query := `
	SELECT id, user_id, task_id, start_time, end_time
	FROM time_logs
	WHERE user_id = ? AND end_time IS NULL`

	return QuerySingle(ctx, r.db, query, ScanTimeLog, "open time log", userID, userID)
}

// CloseTimeLog closes the open log matching both user and task. The update
// is guarded on end_time IS NULL so a log is only ever closed once.
func (r *SQLiteRepository) CloseTimeLog(ctx context.Context, userID, taskID string, endTime time.Time) (*models.TimeLog, error) {
	query := `
	SELECT id, user_id, task_id, start_time, end_time
	FROM time_logs
	WHERE user_id = ? AND task_id = ? AND end_time IS NULL`

	log, err := QuerySingle(ctx, r.db, query, ScanTimeLog, "active time log", taskID, userID, taskID)
	if err != nil {
		return nil, err
	}

	update := `UPDATE time_logs SET end_time = ? WHERE id = ? AND end_time IS NULL`
	if err := ExecuteWithRowsAffected(ctx, r.db, update, "active time log", taskID,
		FormatTimeForDB(endTime), log.ID); err != nil {
		return nil, err
	}

	closed := endTime.UTC().Truncate(time.Second)
	log.EndTime = &closed
	return log, nil
}

// CountOpenTimeLogs counts open logs across all users
func (r *SQLiteRepository) CountOpenTimeLogs(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM time_logs WHERE end_time IS NULL`).Scan(&count)
	if err != nil {
		return 0, HandleStorageError("count open time logs", err)
	}
	return count, nil
}

// SearchTimeLogs returns the user's time logs matching the options, most
// recent first
func (r *SQLiteRepository) SearchTimeLogs(ctx context.Context, userID string, opts repository.SearchOptions) ([]*models.TimeLog, error) {
	conditions := []string{"user_id = ?"}
	args := []interface{}{userID}

	if opts.StartTime != nil {
		conditions = append(conditions, "start_time >= ?")
		args = append(args, FormatTimePtrForDB(opts.StartTime))
	}
	if opts.EndTime != nil {
		conditions = append(conditions, "start_time < ?")
		args = append(args, FormatTimePtrForDB(opts.EndTime))
	}
	if opts.TaskID != nil {
		conditions = append(conditions, "task_id = ?")
		args = append(args, *opts.TaskID)
	}

	query := `
	SELECT id, user_id, task_id, start_time, end_time
	FROM time_logs
	WHERE ` + strings.Join(conditions, " AND ") + `
	ORDER BY start_time DESC`

	return QueryMultiple(ctx, r.db, query, ScanTimeLogs, "time logs", args...)
}
