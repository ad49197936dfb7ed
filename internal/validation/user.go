// Package validation provides input validation invoked at the API boundary
// before any entity construction.
package validation

import (
	"fmt"
	"regexp"
)

var (
	usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_]{3,50}$`)
	emailRegex    = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

// ValidateUsername checks username length and character set.
func ValidateUsername(username string) error {
	if !usernameRegex.MatchString(username) {
		return fmt.Errorf("username must be 3-50 characters and contain only letters, numbers, and underscores")
	}
	return nil
}

// ValidateEmail checks basic email shape and length.
func ValidateEmail(email string) error {
	if len(email) > 100 {
		return fmt.Errorf("email must not exceed 100 characters")
	}
	if !emailRegex.MatchString(email) {
		return fmt.Errorf("invalid email address")
	}
	return nil
}

// ValidatePassword checks password length bounds.
func ValidatePassword(password string) error {
	if len(password) < 6 {
		return fmt.Errorf("password must be at least 6 characters long")
	}
	if len(password) > 128 {
		return fmt.Errorf("password must not exceed 128 characters")
	}
	return nil
}
