package services

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"timeclock/internal/domain"
	"timeclock/internal/errors"
	"timeclock/internal/metrics"
	"timeclock/internal/repository"
	"timeclock/internal/repository/models"
	"timeclock/internal/validation"
)

// timerServiceImpl implements the TimerService interface
type timerServiceImpl struct {
	repo        repository.Repository
	clock       domain.Clock
	mapper      *domain.Mapper
	validator   *validation.TimeLogValidator
	invalidator SummaryInvalidator // may be nil
}

// NewTimerService creates a new TimerService instance. invalidator may be
// nil when no summary cache is configured.
func NewTimerService(repo repository.Repository, clock domain.Clock, invalidator SummaryInvalidator) TimerService {
	return &timerServiceImpl{
		repo:        repo,
		clock:       clock,
		mapper:      domain.NewMapper(),
		validator:   validation.NewTimeLogValidator(),
		invalidator: invalidator,
	}
}

// Start opens a new time log for the task
func (s *timerServiceImpl) Start(ctx context.Context, userID, taskID string) (*TimerSession, error) {
	if err := s.validator.ValidateTimerRequest(userID, taskID); err != nil {
		return nil, err
	}

	// Ownership check against the task registry
	taskRow, err := s.repo.GetTask(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}

	// Pre-check for an open log so the common case reports the blocking
	// task without relying on the constraint error
	open, err := s.repo.GetOpenTimeLog(ctx, userID)
	if err == nil {
		metrics.RecordStartConflict()
		return nil, errors.NewConflictError(open.TaskID)
	}
	if !errors.IsErrorType(err, errors.ErrorTypeNotFound) {
		return nil, err
	}

	row := &models.TimeLog{
		ID:        uuid.NewString(),
		UserID:    userID,
		TaskID:    taskID,
		StartTime: s.clock.Now().UTC().Truncate(time.Second),
	}

	if err := s.repo.CreateTimeLog(ctx, row); err != nil {
		if errors.IsErrorType(err, errors.ErrorTypeConflict) {
			// Lost a concurrent start; resolve the winner's task id
			metrics.RecordStartConflict()
			if winner, lookupErr := s.repo.GetOpenTimeLog(ctx, userID); lookupErr == nil {
				return nil, errors.NewConflictError(winner.TaskID)
			}
			return nil, err
		}
		return nil, err
	}

	metrics.RecordTimeLogStarted()
	s.invalidate(ctx, userID)

	logEntry := s.mapper.TimeLog.FromStorage(*row)
	task := s.mapper.Task.FromStorage(*taskRow)
	return &TimerSession{Log: &logEntry, Task: &task}, nil
}

// Stop closes the open log matching both user and task
func (s *timerServiceImpl) Stop(ctx context.Context, userID, taskID string) (*TimerSession, error) {
	if err := s.validator.ValidateTimerRequest(userID, taskID); err != nil {
		return nil, err
	}

	endTime := s.clock.Now().UTC().Truncate(time.Second)
	row, err := s.repo.CloseTimeLog(ctx, userID, taskID, endTime)
	if err != nil {
		return nil, err
	}

	logEntry := s.mapper.TimeLog.FromStorage(*row)
	metrics.RecordTimeLogStopped(logEntry.Duration(endTime))
	s.invalidate(ctx, userID)

	// Task title is display-only; a task deleted mid-flight is tolerated
	var task *domain.Task
	if taskRow, lookupErr := s.repo.GetTask(ctx, userID, taskID); lookupErr == nil {
		t := s.mapper.Task.FromStorage(*taskRow)
		task = &t
	}

	return &TimerSession{
		Log:      &logEntry,
		Task:     task,
		Duration: FormatDuration(logEntry.DurationSeconds(endTime)),
	}, nil
}

func (s *timerServiceImpl) invalidate(ctx context.Context, userID string) {
	if s.invalidator == nil {
		return
	}
	if err := s.invalidator.InvalidateUser(ctx, userID); err != nil {
		// A stale cache entry is preferable to failing the write
		log.Printf("failed to invalidate summary cache for user %s: %v", userID, err)
	}
}
