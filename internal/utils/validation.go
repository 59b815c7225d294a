package utils

import (
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Validate is the shared struct validator for request payloads.
var Validate = validator.New()

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@gmail\.com$`)
	phoneRegex = regexp.MustCompile(`^\d{10}$`)
)

// ValidationMessage flattens a validator error into one field-level message
// suitable for the error envelope.
func ValidationMessage(err error) string {
	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err.Error()
	}

	messages := make([]string, 0, len(errs))
	for _, fe := range errs {
		messages = append(messages, fe.Field()+" failed on the '"+fe.Tag()+"' rule")
	}
	return strings.Join(messages, ", ")
}

// IsValidEmail accepts only gmail addresses, matching the provider rule the
// admin panel enforces.
func IsValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// IsValidPhone accepts exactly ten digits.
func IsValidPhone(phone string) bool {
	return phoneRegex.MatchString(phone)
}

// IsValidPassword requires at least 6 characters including a lowercase
// letter, an uppercase letter, a digit and one of @$!%*?&, with no other
// characters allowed.
func IsValidPassword(password string) bool {
	if len(password) < 6 {
		return false
	}

	var hasLower, hasUpper, hasDigit, hasSpecial bool
	for _, c := range password {
		switch {
		case c >= 'a' && c <= 'z':
			hasLower = true
		case c >= 'A' && c <= 'Z':
			hasUpper = true
		case c >= '0' && c <= '9':
			hasDigit = true
		case strings.ContainsRune("@$!%*?&", c):
			hasSpecial = true
		default:
			return false
		}
	}

	return hasLower && hasUpper && hasDigit && hasSpecial
}

// CalculateAge derives age in whole years from a date of birth.
func CalculateAge(dob time.Time, now time.Time) int {
	age := now.Year() - dob.Year()
	if now.Month() < dob.Month() || (now.Month() == dob.Month() && now.Day() < dob.Day()) {
		age--
	}
	return age
}
