package validation

import (
	"strconv"
	"unicode"
)

const (
	// MinPasswordLen минимальная длина пароля
	MinPasswordLen = 8
	// MaxPasswordLen ограничение bcrypt: байты после 72-го не учитываются
	MaxPasswordLen = 72
)

// ValidatePassword проверяет, что пароль достаточно сложный:
// минимум 8 символов, заглавная и строчная буквы, цифра и спецсимвол
func ValidatePassword(password string) error {
	if password == "" {
		return &Error{Field: "password", Rule: "required", Message: "cannot be empty"}
	}

	if len([]rune(password)) < MinPasswordLen {
		return &Error{Field: "password", Rule: "min=" + strconv.Itoa(MinPasswordLen),
			Message: "must be at least " + strconv.Itoa(MinPasswordLen) + " characters long"}
	}

	if len(password) > MaxPasswordLen {
		return &Error{Field: "password", Rule: "max=" + strconv.Itoa(MaxPasswordLen),
			Message: "must not exceed " + strconv.Itoa(MaxPasswordLen) + " bytes"}
	}

	var upper, lower, digit, symbol bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			symbol = true
		}
	}

	if !upper || !lower || !digit || !symbol {
		return &Error{Field: "password", Rule: "strong",
			Message: "must contain an uppercase letter, a lowercase letter, a number and a symbol"}
	}

	return nil
}
