package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidateAssignmentLastDate(t *testing.T) {
	now := time.Date(2026, time.August, 30, 23, 30, 0, 0, time.UTC)

	assert.NoError(t, ValidateAssignmentLastDate(now.AddDate(0, 0, 7), now))
	assert.NoError(t, ValidateAssignmentLastDate(
		time.Date(2026, time.August, 30, 0, 0, 0, 0, time.UTC), now))

	err := ValidateAssignmentLastDate(now.AddDate(0, 0, -1), now)
	assert.EqualError(t, err, "Assignment cannot be created in the past.")
}
