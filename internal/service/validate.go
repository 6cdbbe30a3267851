// Package service provides business logic implementations.
package service

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

// ErrValidation is the base error all input validation failures wrap.
// Callers can match the whole family with errors.Is.
var ErrValidation = errors.New("invalid input")

// Validation errors surfaced as field-level messages.
var (
	ErrInvalidName       = fmt.Errorf("%w: name must be 2-50 characters", ErrValidation)
	ErrInvalidPhone      = fmt.Errorf("%w: phone must be a Kenyan mobile number", ErrValidation)
	ErrInvalidNationalID = fmt.Errorf("%w: national id must be at least 8 digits", ErrValidation)
	ErrWeakPassword      = fmt.Errorf("%w: password must be at least 8 characters with upper, lower and digit", ErrValidation)
	ErrInvalidDelta      = fmt.Errorf("%w: connections delta must be a non-negative integer", ErrValidation)
	ErrInvalidMonth      = fmt.Errorf("%w: month must be in YYYY-MM form", ErrValidation)
)

// phoneCountryCode is the fixed prefix all stored phone numbers carry.
const phoneCountryCode = "+254"

var (
	phoneLocalRegex = regexp.MustCompile(`^[17]\d{8}$`)
	nationalIDRegex = regexp.MustCompile(`^\d{8,}$`)
	monthKeyRegex   = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)
)

// NormalizePhone normalizes a raw phone input to the stored form: +254
// followed by exactly 9 digits starting with 1 or 7. Accepted inputs are
// the stored form itself, the 254- or 0-prefixed variants, and the bare
// 9-digit local part; anything else fails validation.
func NormalizePhone(raw string) (string, error) {
	s := strings.Map(func(r rune) rune {
		if r == ' ' || r == '-' {
			return -1
		}
		return r
	}, strings.TrimSpace(raw))

	switch {
	case strings.HasPrefix(s, phoneCountryCode):
		s = s[len(phoneCountryCode):]
	case strings.HasPrefix(s, "254"):
		s = s[3:]
	case strings.HasPrefix(s, "0"):
		s = s[1:]
	}

	if !phoneLocalRegex.MatchString(s) {
		return "", ErrInvalidPhone
	}

	return phoneCountryCode + s, nil
}

// ValidateName checks the display name length bounds.
func ValidateName(name string) error {
	n := len([]rune(strings.TrimSpace(name)))
	if n < 2 || n > 50 {
		return ErrInvalidName
	}
	return nil
}

// ValidateNationalID checks the registration identifier: digits only,
// at least 8 of them.
func ValidateNationalID(id string) error {
	if !nationalIDRegex.MatchString(strings.TrimSpace(id)) {
		return ErrInvalidNationalID
	}
	return nil
}

// ValidatePassword checks password strength: at least 8 characters with an
// upper-case letter, a lower-case letter and a digit.
func ValidatePassword(password string) error {
	if len([]rune(password)) < 8 {
		return ErrWeakPassword
	}

	hasUpper := false
	hasLower := false
	hasDigit := false
	for _, char := range password {
		switch {
		case unicode.IsUpper(char):
			hasUpper = true
		case unicode.IsLower(char):
			hasLower = true
		case unicode.IsDigit(char):
			hasDigit = true
		}
	}

	if hasUpper && hasLower && hasDigit {
		return nil
	}
	return ErrWeakPassword
}

// ValidateMonthKey checks a YYYY-MM bucket key.
func ValidateMonthKey(monthYear string) error {
	if !monthKeyRegex.MatchString(monthYear) {
		return ErrInvalidMonth
	}
	return nil
}
