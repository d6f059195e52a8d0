package validation

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// В ошибках используем имена полей из json тегов
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	// username: буквы, цифры, "_", "." и "-"
	_ = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return UsernamePattern.MatchString(fl.Field().String())
	})
	return v
}

// Error описывает нарушенное правило валидации конкретного поля
type Error struct {
	Field   string `json:"field,omitempty"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + " " + e.Message
}

// Var проверяет значение по тегам go-playground/validator (например "min=3,max=20")
// и возвращает *Error с первым нарушенным правилом
func Var(field string, value any, rules string) error {
	err := validate.Var(value, rules)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return &Error{Field: field, Rule: "invalid", Message: "is invalid"}
	}

	return fieldError(field, verrs[0])
}

func fieldError(field string, fe validator.FieldError) *Error {
	rule := fe.Tag()
	if fe.Param() != "" {
		rule += "=" + fe.Param()
	}

	return &Error{Field: field, Rule: rule, Message: Describe(fe.Tag(), fe.Param(), fe.Kind() == reflect.String)}
}

// Struct проверяет структуру по тегам validate и возвращает *Error с первым нарушенным правилом
func Struct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return &Error{Rule: "invalid", Message: "request is invalid"}
	}

	return fieldError(verrs[0].Field(), verrs[0])
}

// Describe превращает тег валидатора в короткое сообщение
func Describe(tag, param string, isString bool) string {
	switch tag {
	case "required":
		return "is required"
	case "min":
		if isString {
			return "must be at least " + param + " characters long"
		}
		return "must be at least " + param
	case "max":
		if isString {
			return "must not exceed " + param + " characters"
		}
		return "must not exceed " + param
	case "gte":
		return "must be greater than or equal to " + param
	case "gt":
		return "must be greater than " + param
	case "lte", "ltefield":
		return "must be less than or equal to " + param
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(param, " ", ", ")
	case "email":
		return "must be a valid email address"
	case "uuid", "uuid4":
		return "must be a valid UUID"
	case "url", "http_url":
		return "must be a valid URL"
	case "username":
		return "can only contain letters (a-z, A-Z), numbers (0-9), underscores, dots and dashes"
	default:
		return "failed rule " + tag
	}
}
