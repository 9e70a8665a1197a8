package validation

import (
	"strings"
	"time"
)

// Validator provides common validation utilities
type Validator struct {
	titleMinLength int
	titleMaxLength int
}

// NewValidator creates a new validator instance with default limits
func NewValidator() *Validator {
	return &Validator{
		titleMinLength: 1,
		titleMaxLength: 255,
	}
}

// NewValidatorWithLimits creates a validator with configured title limits
func NewValidatorWithLimits(minLen, maxLen int) *Validator {
	return &Validator{
		titleMinLength: minLen,
		titleMaxLength: maxLen,
	}
}

// IsNonEmptyString checks if a string is not empty after trimming whitespace
func (v *Validator) IsNonEmptyString(s string) bool {
	return strings.TrimSpace(s) != ""
}

// IsValidTitleLength checks if a title length is within configured limits
func (v *Validator) IsValidTitleLength(title string) bool {
	length := len(strings.TrimSpace(title))
	return length >= v.titleMinLength && length <= v.titleMaxLength
}

// IsValidDateRange checks if a date range is logical
func (v *Validator) IsValidDateRange(startTime, endTime *time.Time) bool {
	if startTime == nil || endTime == nil {
		return true // open-ended ranges are valid
	}
	return startTime.Before(*endTime) || startTime.Equal(*endTime)
}

// TrimAndValidateString trims whitespace and returns the cleaned string
func (v *Validator) TrimAndValidateString(s string) string {
	return strings.TrimSpace(s)
}
