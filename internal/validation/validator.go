package validation

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// emailPattern accepts local@domain.tld with non-whitespace segments.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Validator provides common validation utilities
type Validator struct {
	email *regexp.Regexp
}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{email: emailPattern}
}

// IsNonEmptyString checks if a string is not empty after trimming whitespace
func (v *Validator) IsNonEmptyString(s string) bool {
	return strings.TrimSpace(s) != ""
}

// IsWithinLength reports whether s has at most max characters. Characters
// are counted as runes on the raw value.
func (v *Validator) IsWithinLength(s string, max int) bool {
	return utf8.RuneCountInString(s) <= max
}

// IsValidEmail checks the local@domain.tld shape.
func (v *Validator) IsValidEmail(s string) bool {
	return v.email.MatchString(s)
}

// IsStrongPassword checks for at least 8 characters with one ASCII
// uppercase letter and one ASCII digit. Other characters are allowed.
func (v *Validator) IsStrongPassword(s string) bool {
	if utf8.RuneCountInString(s) < 8 {
		return false
	}
	var upper, digit bool
	for _, r := range s {
		switch {
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		}
	}
	return upper && digit
}
