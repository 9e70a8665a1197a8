// Package postgres is the Postgres storage backend. It honors the same
// contract as the sqlite backend; the single-open-log rule is enforced by a
// partial unique index and surfaced through SQLSTATE 23505.
package postgres

import (
	"context"
	"database/sql"
	"strconv"
	"strings"
	"time"

	"github.com/lib/pq"

	"timeclock/internal/errors"
	"timeclock/internal/repository"
	"timeclock/internal/repository/models"
)

const schema = `
CREATE TABLE IF NOT EXISTS tasks (
	id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL,
	title TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	status TEXT NOT NULL DEFAULT 'pending',
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_tasks_user ON tasks(user_id);
CREATE INDEX IF NOT EXISTS idx_tasks_user_status_updated ON tasks(user_id, status, updated_at);

CREATE TABLE IF NOT EXISTS time_logs (
	id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL,
	task_id TEXT NOT NULL,
	start_time TIMESTAMPTZ NOT NULL,
	end_time TIMESTAMPTZ
);

CREATE INDEX IF NOT EXISTS idx_time_logs_user_start ON time_logs(user_id, start_time);
CREATE INDEX IF NOT EXISTS idx_time_logs_user_end ON time_logs(user_id, end_time);

CREATE UNIQUE INDEX IF NOT EXISTS idx_time_logs_one_open_per_user
	ON time_logs(user_id) WHERE end_time IS NULL;
`

// PostgresRepository implements the repository.Repository interface
type PostgresRepository struct {
	db *sql.DB
}

var _ repository.Repository = (*PostgresRepository)(nil)

// New opens a connection and ensures the schema exists
func New(dsn string) (*PostgresRepository, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, errors.NewStorageError("open database", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, errors.NewStorageError("ping database", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, errors.NewStorageError("create schema", err)
	}
	return &PostgresRepository{db: db}, nil
}

// NewWithDB wraps an existing connection. Used by tests.
func NewWithDB(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Close closes the database connection
func (r *PostgresRepository) Close() error {
	return r.db.Close()
}

func isUniqueViolation(err error) bool {
	if pqErr, ok := err.(*pq.Error); ok {
		return pqErr.Code == "23505"
	}
	// sqlmock and wrapped errors don't carry the pq type
	return err != nil && strings.Contains(err.Error(), "duplicate key value")
}

func (r *PostgresRepository) CreateTask(ctx context.Context, task *models.Task) error {
	query := `
	INSERT INTO tasks (id, user_id, title, description, status, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.ExecContext(ctx, query,
		task.ID, task.UserID, task.Title, task.Description, task.Status,
		task.CreatedAt, task.UpdatedAt)
	if err != nil {
		return errors.NewStorageError("create task", err)
	}
	return nil
}

func (r *PostgresRepository) GetTask(ctx context.Context, userID, taskID string) (*models.Task, error) {
	query := `
	SELECT id, user_id, title, description, status, created_at, updated_at
	FROM tasks
	WHERE id = $1 AND user_id = $2`

	task := &models.Task{}
	err := r.db.QueryRowContext(ctx, query, taskID, userID).Scan(
		&task.ID, &task.UserID, &task.Title, &task.Description, &task.Status,
		&task.CreatedAt, &task.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError("task", taskID)
	}
	if err != nil {
		return nil, errors.NewStorageError("get task", err)
	}
	return task, nil
}

func (r *PostgresRepository) ListTasks(ctx context.Context, userID string) ([]*models.Task, error) {
	query := `
	SELECT id, user_id, title, description, status, created_at, updated_at
	FROM tasks
	WHERE user_id = $1
	ORDER BY created_at ASC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, errors.NewStorageError("list tasks", err)
	}
	defer rows.Close()

	var tasks []*models.Task
	for rows.Next() {
		task := &models.Task{}
		if err := rows.Scan(&task.ID, &task.UserID, &task.Title, &task.Description,
			&task.Status, &task.CreatedAt, &task.UpdatedAt); err != nil {
			return nil, errors.NewStorageError("scan task", err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewStorageError("scan tasks", err)
	}
	return tasks, nil
}

func (r *PostgresRepository) UpdateTask(ctx context.Context, task *models.Task) error {
	query := `
	UPDATE tasks
	SET title = $1, description = $2, status = $3, updated_at = $4
	WHERE id = $5 AND user_id = $6`

	result, err := r.db.ExecContext(ctx, query,
		task.Title, task.Description, task.Status, task.UpdatedAt,
		task.ID, task.UserID)
	if err != nil {
		return errors.NewStorageError("update task", err)
	}
	return checkRowsAffected(result, "task", task.ID)
}

func (r *PostgresRepository) DeleteTask(ctx context.Context, userID, taskID string) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM tasks WHERE id = $1 AND user_id = $2`, taskID, userID)
	if err != nil {
		return errors.NewStorageError("delete task", err)
	}
	return checkRowsAffected(result, "task", taskID)
}

func (r *PostgresRepository) CountCompletedTasks(ctx context.Context, userID string, start, end time.Time) (int, error) {
	query := `
	SELECT COUNT(*)
	FROM tasks
	WHERE user_id = $1 AND status = 'completed' AND updated_at >= $2 AND updated_at < $3`

	var count int
	if err := r.db.QueryRowContext(ctx, query, userID, start, end).Scan(&count); err != nil {
		return 0, errors.NewStorageError("count completed tasks", err)
	}
	return count, nil
}

func (r *PostgresRepository) CreateTimeLog(ctx context.Context, log *models.TimeLog) error {
	query := `
	INSERT INTO time_logs (id, user_id, task_id, start_time, end_time)
	VALUES ($1, $2, $3, $4, $5)`

	var end interface{}
	if log.EndTime != nil {
		end = *log.EndTime
	}
	_, err := r.db.ExecContext(ctx, query, log.ID, log.UserID, log.TaskID, log.StartTime, end)
	if err != nil {
		if isUniqueViolation(err) {
			return errors.NewConflictError("")
		}
		return errors.NewStorageError("create time log", err)
	}
	return nil
}

func (r *PostgresRepository) GetOpenTimeLog(ctx context.Context, userID string) (*models.TimeLog, error) {
	query := `
	SELECT id, user_id, task_id, start_time, end_time
	FROM time_logs
	WHERE user_id = $1 AND end_time IS NULL`

	log := &models.TimeLog{}
	var end sql.NullTime
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&log.ID, &log.UserID, &log.TaskID, &log.StartTime, &end)
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError("open time log", userID)
	}
	if err != nil {
		return nil, errors.NewStorageError("get open time log", err)
	}
	if end.Valid {
		log.EndTime = &end.Time
	}
	return log, nil
}

func (r *PostgresRepository) CloseTimeLog(ctx context.Context, userID, taskID string, endTime time.Time) (*models.TimeLog, error) {
	query := `
	UPDATE time_logs
	SET end_time = $1
	WHERE user_id = $2 AND task_id = $3 AND end_time IS NULL
	RETURNING id, user_id, task_id, start_time, end_time`

	log := &models.TimeLog{}
	var end sql.NullTime
	err := r.db.QueryRowContext(ctx, query, endTime, userID, taskID).Scan(
		&log.ID, &log.UserID, &log.TaskID, &log.StartTime, &end)
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError("active time log", taskID)
	}
	if err != nil {
		return nil, errors.NewStorageError("close time log", err)
	}
	if end.Valid {
		log.EndTime = &end.Time
	}
	return log, nil
}

func (r *PostgresRepository) CountOpenTimeLogs(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM time_logs WHERE end_time IS NULL`).Scan(&count)
	if err != nil {
		return 0, errors.NewStorageError("count open time logs", err)
	}
	return count, nil
}

func (r *PostgresRepository) SearchTimeLogs(ctx context.Context, userID string, opts repository.SearchOptions) ([]*models.TimeLog, error) {
	conditions := []string{"user_id = $1"}
	args := []interface{}{userID}

	if opts.StartTime != nil {
		args = append(args, *opts.StartTime)
		conditions = append(conditions, "start_time >= $"+strconv.Itoa(len(args)))
	}
	if opts.EndTime != nil {
		args = append(args, *opts.EndTime)
		conditions = append(conditions, "start_time < $"+strconv.Itoa(len(args)))
	}
	if opts.TaskID != nil {
		args = append(args, *opts.TaskID)
		conditions = append(conditions, "task_id = $"+strconv.Itoa(len(args)))
	}

	query := `
	SELECT id, user_id, task_id, start_time, end_time
	FROM time_logs
	WHERE ` + strings.Join(conditions, " AND ") + `
	ORDER BY start_time DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.NewStorageError("search time logs", err)
	}
	defer rows.Close()

	var logs []*models.TimeLog
	for rows.Next() {
		log := &models.TimeLog{}
		var end sql.NullTime
		if err := rows.Scan(&log.ID, &log.UserID, &log.TaskID, &log.StartTime, &end); err != nil {
			return nil, errors.NewStorageError("scan time log", err)
		}
		if end.Valid {
			log.EndTime = &end.Time
		}
		logs = append(logs, log)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewStorageError("scan time logs", err)
	}
	return logs, nil
}

func checkRowsAffected(result sql.Result, entityType, id string) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return errors.NewStorageError("get rows affected", err)
	}
	if rows == 0 {
		return errors.NewNotFoundError(entityType, id)
	}
	return nil
}
