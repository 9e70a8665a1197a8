package validation

import (
	"timeclock/internal/domain"
	"timeclock/internal/errors"
)

// TimeLogValidator validates timer and listing inputs
type TimeLogValidator struct {
	validator *Validator
}

// NewTimeLogValidator creates a new time log validator
func NewTimeLogValidator() *TimeLogValidator {
	return &TimeLogValidator{validator: NewValidator()}
}

// ValidateTimerRequest validates the identifiers of a start or stop request
func (tlv *TimeLogValidator) ValidateTimerRequest(userID, taskID string) error {
	if !tlv.validator.IsNonEmptyString(userID) {
		return errors.NewInvalidInputError("userId", userID, "user id is required")
	}
	if !tlv.validator.IsNonEmptyString(taskID) {
		return errors.NewInvalidInputError("taskId", taskID, "task id is required")
	}
	return nil
}

// ValidateFilter validates a time log listing filter
func (tlv *TimeLogValidator) ValidateFilter(filter domain.TimeLogFilter) error {
	if !tlv.validator.IsValidDateRange(filter.StartDate, filter.EndDate) {
		return errors.NewValidationError("start date must not be after end date", nil)
	}
	if filter.TaskID != nil && !tlv.validator.IsNonEmptyString(*filter.TaskID) {
		return errors.NewInvalidInputError("taskId", *filter.TaskID, "task id must not be blank")
	}
	return nil
}
