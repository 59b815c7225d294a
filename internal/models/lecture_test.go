package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidateLectureDuration(t *testing.T) {
	now := time.Date(2026, time.August, 30, 8, 0, 0, 0, time.UTC)
	at := func(d, hour int) time.Time {
		return time.Date(2026, time.August, 30+d, hour, 0, 0, 0, time.UTC)
	}

	cases := []struct {
		name     string
		duration Duration
		wantErr  string
	}{
		{
			name:     "valid slot",
			duration: Duration{From: at(1, 10), To: at(1, 12)},
		},
		{
			name:     "exactly three hours",
			duration: Duration{From: at(1, 10), To: at(1, 13)},
		},
		{
			name:     "missing times",
			duration: Duration{},
			wantErr:  "Duration with from and to times is required.",
		},
		{
			name:     "spans two days",
			duration: Duration{From: at(1, 23), To: at(2, 1)},
			wantErr:  "Lecture duration must be on the same day.",
		},
		{
			name:     "end before start",
			duration: Duration{From: at(1, 12), To: at(1, 10)},
			wantErr:  "End time must be after start time.",
		},
		{
			name:     "end equals start",
			duration: Duration{From: at(1, 10), To: at(1, 10)},
			wantErr:  "End time must be after start time.",
		},
		{
			name:     "longer than three hours",
			duration: Duration{From: at(1, 10), To: at(1, 14)},
			wantErr:  "Lecture duration cannot exceed 3 hours.",
		},
		{
			name:     "scheduled yesterday",
			duration: Duration{From: at(-1, 10), To: at(-1, 12)},
			wantErr:  "Lecture cannot be scheduled in the past.",
		},
		{
			name:     "earlier today still allowed",
			duration: Duration{From: at(0, 6), To: at(0, 7)},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateLectureDuration(tc.duration, now)
			if tc.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.EqualError(t, err, tc.wantErr)
			}
		})
	}
}
