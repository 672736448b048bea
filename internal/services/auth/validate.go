package auth

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	MinUsernameLength = 3
	MinPasswordLength = 6
)

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

// NormalizeUsername trims surrounding whitespace
func NormalizeUsername(username string) string {
	return strings.TrimSpace(username)
}

// ValidateUsername checks a normalized username against the registration rules
func ValidateUsername(username string) error {
	switch {
	case username == "":
		return fmt.Errorf("%w: username is required", ErrInvalidUsername)
	case len(username) < MinUsernameLength:
		return fmt.Errorf("%w: username must be at least %d characters", ErrInvalidUsername, MinUsernameLength)
	case !usernamePattern.MatchString(username):
		return fmt.Errorf("%w: username can only contain letters, numbers, and underscores", ErrInvalidUsername)
	}
	return nil
}

// ValidatePassword checks a password against the registration rules
func ValidatePassword(password string) error {
	switch {
	case strings.TrimSpace(password) == "":
		return fmt.Errorf("%w: password is required", ErrInvalidPassword)
	case len(password) < MinPasswordLength:
		return fmt.Errorf("%w: password must be at least %d characters", ErrInvalidPassword, MinPasswordLength)
	}
	return nil
}

// Strength is a coarse password strength rating
type Strength string

const (
	StrengthNone   Strength = ""
	StrengthWeak   Strength = "Weak"
	StrengthFair   Strength = "Fair"
	StrengthStrong Strength = "Strong"
)

// PasswordStrength rates a password by length
func PasswordStrength(password string) Strength {
	switch n := len(password); {
	case n == 0:
		return StrengthNone
	case n < 4:
		return StrengthWeak
	case n < 8:
		return StrengthFair
	default:
		return StrengthStrong
	}
}
