// utils/validator.go - Input validation
package utils

import (
	"regexp"
	"strings"
)

// DAC committees must have between 2 and 4 members inclusive.
const (
	MinDacMembers = 2
	MaxDacMembers = 4
)

// ValidateEmail checks if email is valid
func ValidateEmail(email string) bool {
	emailRegex := regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	return emailRegex.MatchString(email)
}

// ValidatePassword checks password strength
func ValidatePassword(password string) (bool, string) {
	if len(password) < 8 {
		return false, "Password must be at least 8 characters"
	}

	return true, ""
}

// ValidateDacCount checks the committee size boundary.
func ValidateDacCount(count int) (bool, string) {
	if count < MinDacMembers || count > MaxDacMembers {
		return false, "DAC committee must have between 2 and 4 members"
	}
	return true, ""
}

// SanitizeInput removes potentially harmful characters
func SanitizeInput(input string) string {
	input = strings.TrimSpace(input)
	input = strings.ReplaceAll(input, "\x00", "")

	return input
}
