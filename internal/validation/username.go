package validation

import (
	"regexp"
	"strconv"
)

// UsernamePattern определяет допустимый формат username
// Латинские буквы, цифры, нижнее подчеркивание, точка и дефис
var UsernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_.-]+$`)

const (
	// MinUsernameLen минимальная длина username
	MinUsernameLen = 3
	// MaxUsernameLen максимальная длина username
	MaxUsernameLen = 20
)

// ValidateUsername проверяет, что username соответствует требованиям
// Длина: 3-20 символов
func ValidateUsername(username string) error {
	if username == "" {
		return &Error{Field: "username", Rule: "required", Message: "cannot be empty"}
	}

	if len(username) < MinUsernameLen {
		return &Error{Field: "username", Rule: "min=" + strconv.Itoa(MinUsernameLen),
			Message: "must be at least " + strconv.Itoa(MinUsernameLen) + " characters long"}
	}

	if len(username) > MaxUsernameLen {
		return &Error{Field: "username", Rule: "max=" + strconv.Itoa(MaxUsernameLen),
			Message: "must not exceed " + strconv.Itoa(MaxUsernameLen) + " characters"}
	}

	if !UsernamePattern.MatchString(username) {
		return &Error{Field: "username", Rule: "pattern",
			Message: "can only contain letters (a-z, A-Z), numbers (0-9), underscores, dots and dashes"}
	}

	return nil
}
