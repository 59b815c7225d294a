package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsValidEmail(t *testing.T) {
	cases := []struct {
		email string
		valid bool
	}{
		{"someone@gmail.com", true},
		{"first.last+tag@gmail.com", true},
		{"UPPER_case99@gmail.com", true},
		{"someone@yahoo.com", false},
		{"someone@gmailXcom", false},
		{"@gmail.com", false},
		{"someone@gmail.com ", false},
		{"", false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.valid, IsValidEmail(tc.email), tc.email)
	}
}

func TestIsValidPhone(t *testing.T) {
	assert.True(t, IsValidPhone("9876543210"))
	assert.False(t, IsValidPhone("987654321"))
	assert.False(t, IsValidPhone("98765432100"))
	assert.False(t, IsValidPhone("987654321a"))
	assert.False(t, IsValidPhone("+919876543210"))
	assert.False(t, IsValidPhone(""))
}

func TestIsValidPassword(t *testing.T) {
	cases := []struct {
		password string
		valid    bool
	}{
		{"Abc1@x", true},
		{"Str0ng&Pass", true},
		{"abc1@x", false},  // no uppercase
		{"ABC1@X", false},  // no lowercase
		{"Abcd@x", false},  // no digit
		{"Abc12x", false},  // no special
		{"Ab1@", false},    // too short
		{"Abc1 @x", false}, // space not allowed
		{"Abc1#xy", false}, // # outside the allowed specials
	}

	for _, tc := range cases {
		assert.Equal(t, tc.valid, IsValidPassword(tc.password), tc.password)
	}
}

func TestCalculateAge(t *testing.T) {
	now := time.Date(2026, time.August, 30, 12, 0, 0, 0, time.UTC)

	dob := time.Date(2000, time.August, 30, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 26, CalculateAge(dob, now))

	dob = time.Date(2000, time.August, 31, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 25, CalculateAge(dob, now))

	dob = time.Date(2000, time.December, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 25, CalculateAge(dob, now))

	dob = time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 0, CalculateAge(dob, now))
}
