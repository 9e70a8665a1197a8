package services

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"timeclock/internal/domain"
	"timeclock/internal/repository"
	"timeclock/internal/repository/models"
	"timeclock/internal/validation"
)

// taskServiceImpl implements the TaskService interface
type taskServiceImpl struct {
	repo        repository.Repository
	clock       domain.Clock
	mapper      *domain.Mapper
	validator   *validation.TaskValidator
	invalidator SummaryInvalidator // may be nil
}

// NewTaskService creates a new TaskService instance with default title
// length limits. invalidator may be nil when no summary cache is configured.
func NewTaskService(repo repository.Repository, clock domain.Clock, invalidator SummaryInvalidator) TaskService {
	return &taskServiceImpl{
		repo:        repo,
		clock:       clock,
		mapper:      domain.NewMapper(),
		validator:   validation.NewTaskValidator(),
		invalidator: invalidator,
	}
}

// NewTaskServiceWithLimits creates a TaskService whose title validation uses
// the configured length limits.
func NewTaskServiceWithLimits(repo repository.Repository, clock domain.Clock, invalidator SummaryInvalidator, titleMinLength, titleMaxLength int) TaskService {
	return &taskServiceImpl{
		repo:        repo,
		clock:       clock,
		mapper:      domain.NewMapper(),
		validator:   validation.NewTaskValidatorWithLimits(titleMinLength, titleMaxLength),
		invalidator: invalidator,
	}
}

// CreateTask creates a new pending task owned by the user
func (s *taskServiceImpl) CreateTask(ctx context.Context, userID, title, description string) (*domain.Task, error) {
	if err := s.validator.ValidateTaskForCreation(userID, title); err != nil {
		return nil, err
	}

	now := s.clock.Now().UTC().Truncate(time.Second)
	row := &models.Task{
		ID:          uuid.NewString(),
		UserID:      userID,
		Title:       s.validator.GetValidTitle(title),
		Description: description,
		Status:      string(domain.StatusPending),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.CreateTask(ctx, row); err != nil {
		return nil, err
	}

	task := s.mapper.Task.FromStorage(*row)
	return &task, nil
}

// ListTasks returns all tasks owned by the user
func (s *taskServiceImpl) ListTasks(ctx context.Context, userID string) ([]*domain.Task, error) {
	if err := s.validator.ValidateUserID(userID); err != nil {
		return nil, err
	}

	rows, err := s.repo.ListTasks(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.mapper.Task.FromStorageSlice(rows), nil
}

// UpdateTask applies the non-nil fields of params to the task. The updated
// timestamp always moves, which is what anchors a completion inside a
// summary window.
func (s *taskServiceImpl) UpdateTask(ctx context.Context, userID, taskID string, params UpdateTaskParams) (*domain.Task, error) {
	if err := s.validator.ValidateUserID(userID); err != nil {
		return nil, err
	}
	if err := s.validator.ValidateTaskID(taskID); err != nil {
		return nil, err
	}

	row, err := s.repo.GetTask(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}

	if params.Title != nil {
		if err := s.validator.ValidateTaskForCreation(userID, *params.Title); err != nil {
			return nil, err
		}
		row.Title = s.validator.GetValidTitle(*params.Title)
	}
	if params.Description != nil {
		row.Description = *params.Description
	}
	if params.Status != nil {
		if err := s.validator.ValidateStatus(*params.Status); err != nil {
			return nil, err
		}
		row.Status = string(*params.Status)
	}
	row.UpdatedAt = s.clock.Now().UTC().Truncate(time.Second)

	if err := s.repo.UpdateTask(ctx, row); err != nil {
		return nil, err
	}

	s.invalidate(ctx, userID)
	task := s.mapper.Task.FromStorage(*row)
	return &task, nil
}

// DeleteTask removes the task. Its time logs are intentionally kept: past
// work remains counted in summaries with the title reported unavailable.
func (s *taskServiceImpl) DeleteTask(ctx context.Context, userID, taskID string) error {
	if err := s.validator.ValidateUserID(userID); err != nil {
		return err
	}
	if err := s.validator.ValidateTaskID(taskID); err != nil {
		return err
	}

	if err := s.repo.DeleteTask(ctx, userID, taskID); err != nil {
		return err
	}

	s.invalidate(ctx, userID)
	return nil
}

// FindOwnedTask returns the task only when it exists and belongs to the user
func (s *taskServiceImpl) FindOwnedTask(ctx context.Context, userID, taskID string) (*domain.Task, error) {
	if err := s.validator.ValidateUserID(userID); err != nil {
		return nil, err
	}
	if err := s.validator.ValidateTaskID(taskID); err != nil {
		return nil, err
	}

	row, err := s.repo.GetTask(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}
	task := s.mapper.Task.FromStorage(*row)
	return &task, nil
}

func (s *taskServiceImpl) invalidate(ctx context.Context, userID string) {
	if s.invalidator == nil {
		return
	}
	if err := s.invalidator.InvalidateUser(ctx, userID); err != nil {
		log.Printf("failed to invalidate summary cache for user %s: %v", userID, err)
	}
}
