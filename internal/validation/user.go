package validation

import (
	"strconv"
	"strings"
)

// Ограничения на полное имя
const (
	MinFullnameLen = 3
	MaxFullnameLen = 50
)

// NormalizeEmail приводит email к каноническому виду перед сохранением и поиском
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidateEmail проверяет формат email
func ValidateEmail(email string) error {
	if email == "" {
		return &Error{Field: "email", Rule: "required", Message: "cannot be empty"}
	}
	return Var("email", email, "email")
}

// ValidateFullname проверяет длину полного имени
func ValidateFullname(fullname string) error {
	if strings.TrimSpace(fullname) == "" {
		return &Error{Field: "fullname", Rule: "required", Message: "cannot be empty"}
	}
	return Var("fullname", strings.TrimSpace(fullname), "min="+strconv.Itoa(MinFullnameLen)+",max="+strconv.Itoa(MaxFullnameLen))
}

// ValidateRole проверяет, что роль известна
func ValidateRole(role string) error {
	return Var("role", role, "oneof=admin user")
}

// ValidateUUID проверяет идентификатор из пути запроса
func ValidateUUID(field, id string) error {
	return Var(field, id, "required,uuid")
}
