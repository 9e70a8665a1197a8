package validation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"timeclock/internal/domain"
	"timeclock/internal/errors"
)

func TestTimeLogValidator_ValidateTimerRequest(t *testing.T) {
	tlv := NewTimeLogValidator()

	assert.NoError(t, tlv.ValidateTimerRequest("user-1", "task-1"))

	err := tlv.ValidateTimerRequest("", "task-1")
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeInvalidInput))

	err = tlv.ValidateTimerRequest("user-1", "  ")
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeInvalidInput))
}

func TestTimeLogValidator_ValidateFilter(t *testing.T) {
	tlv := NewTimeLogValidator()
	earlier := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	later := earlier.Add(24 * time.Hour)
	taskID := "task-1"
	blank := "  "

	assert.NoError(t, tlv.ValidateFilter(domain.TimeLogFilter{}))
	assert.NoError(t, tlv.ValidateFilter(domain.TimeLogFilter{
		StartDate: &earlier,
		EndDate:   &later,
		TaskID:    &taskID,
	}))

	err := tlv.ValidateFilter(domain.TimeLogFilter{StartDate: &later, EndDate: &earlier})
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeValidation))

	err = tlv.ValidateFilter(domain.TimeLogFilter{TaskID: &blank})
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeInvalidInput))
}
