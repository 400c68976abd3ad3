package domain

import (
	"fmt"
	"regexp"
	"strings"
)

// MaxPasswordLength is the longest password bcrypt accepts, in bytes.
const MaxPasswordLength = 72

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// ValidateCredentials applies the login/registration rules: both fields
// present, email well-formed, password between minLength and
// MaxPasswordLength bytes.
func ValidateCredentials(email, password string, minLength int) error {
	if strings.TrimSpace(email) == "" || password == "" {
		return fmt.Errorf("%w: email and password are required", ErrValidation)
	}
	if !ValidEmail(email) {
		return fmt.Errorf("%w: invalid email", ErrValidation)
	}
	return ValidatePassword(password, minLength)
}

func ValidatePassword(password string, minLength int) error {
	if len(password) < minLength {
		return fmt.Errorf("%w: password must be at least %d characters", ErrValidation, minLength)
	}
	if len(password) > MaxPasswordLength {
		return fmt.Errorf("%w: password must be at most %d bytes", ErrValidation, MaxPasswordLength)
	}
	return nil
}

// Required fails when value is blank.
func Required(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%w: %s is required", ErrValidation, name)
	}
	return nil
}
