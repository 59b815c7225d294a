package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidateBatchDuration(t *testing.T) {
	now := time.Date(2026, time.August, 30, 10, 0, 0, 0, time.UTC)
	day := func(d int) time.Time { return now.AddDate(0, 0, d) }

	cases := []struct {
		name     string
		duration Duration
		wantErr  string
	}{
		{
			name:     "valid window",
			duration: Duration{From: day(1), To: day(90)},
		},
		{
			name:     "starts today",
			duration: Duration{From: now, To: day(30)},
		},
		{
			name:     "missing dates",
			duration: Duration{},
			wantErr:  "Duration with from and to dates is required",
		},
		{
			name:     "end before start",
			duration: Duration{From: day(10), To: day(5)},
			wantErr:  "Batch end date must be after start date",
		},
		{
			name:     "end equals start",
			duration: Duration{From: day(10), To: day(10)},
			wantErr:  "Batch end date must be after start date",
		},
		{
			name:     "starts in the past",
			duration: Duration{From: day(-1), To: day(30)},
			wantErr:  "Batch cannot start in the past",
		},
		{
			name:     "longer than two years",
			duration: Duration{From: day(1), To: day(1).AddDate(2, 0, 1)},
			wantErr:  "Batch duration cannot exceed 2 years",
		},
		{
			name:     "exactly two years",
			duration: Duration{From: day(1), To: day(1).AddDate(2, 0, 0)},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateBatchDuration(tc.duration, now)
			if tc.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.EqualError(t, err, tc.wantErr)
			}
		})
	}
}
