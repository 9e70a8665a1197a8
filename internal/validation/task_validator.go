package validation

import (
	"timeclock/internal/domain"
	"timeclock/internal/errors"
)

// TaskValidator validates task inputs before they reach storage
type TaskValidator struct {
	validator *Validator
}

// NewTaskValidator creates a new task validator with default limits
func NewTaskValidator() *TaskValidator {
	return &TaskValidator{validator: NewValidator()}
}

// NewTaskValidatorWithLimits creates a task validator with configured limits
func NewTaskValidatorWithLimits(minLen, maxLen int) *TaskValidator {
	return &TaskValidator{validator: NewValidatorWithLimits(minLen, maxLen)}
}

// ValidateTaskID checks that a task id has been supplied
func (tv *TaskValidator) ValidateTaskID(taskID string) error {
	if !tv.validator.IsNonEmptyString(taskID) {
		return errors.NewInvalidInputError("taskId", taskID, "task id is required")
	}
	return nil
}

// ValidateUserID checks that a user id has been supplied
func (tv *TaskValidator) ValidateUserID(userID string) error {
	if !tv.validator.IsNonEmptyString(userID) {
		return errors.NewInvalidInputError("userId", userID, "user id is required")
	}
	return nil
}

// ValidateTaskForCreation validates inputs for a new task
func (tv *TaskValidator) ValidateTaskForCreation(userID, title string) error {
	if err := tv.ValidateUserID(userID); err != nil {
		return err
	}
	if !tv.validator.IsNonEmptyString(title) {
		return errors.NewValidationError("task title cannot be empty", nil)
	}
	if !tv.validator.IsValidTitleLength(title) {
		return errors.NewValidationError("task title length is out of bounds", nil)
	}
	return nil
}

// ValidateStatus checks that a status value is one of the known statuses
func (tv *TaskValidator) ValidateStatus(status domain.TaskStatus) error {
	if !domain.IsValidStatus(status) {
		return errors.NewInvalidInputError("status", string(status), "unknown task status")
	}
	return nil
}

// GetValidTitle returns the cleaned task title
func (tv *TaskValidator) GetValidTitle(title string) string {
	return tv.validator.TrimAndValidateString(title)
}
