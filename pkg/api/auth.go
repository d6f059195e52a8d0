package api

import (
	"time"

	"github.com/iudanet/learnhub/internal/models"
)

// TokenCookieName имя cookie, в которой сервер отдает JWT
const TokenCookieName = "JWT"

// SignupRequest представляет запрос на регистрацию нового пользователя
type SignupRequest struct {
	Email    string `json:"email" validate:"required"`                            // email, приводится к нижнему регистру
	Username string `json:"username" validate:"required"`                         // уникальный username
	Password string `json:"password" validate:"required"`                         // пароль в открытом виде, только в запросе
	Fullname string `json:"fullname" validate:"required,min=3,max=50"`            // полное имя
	Role     string `json:"role,omitempty" validate:"omitempty,oneof=admin user"` // роль, по умолчанию user
}

// SigninRequest представляет запрос на аутентификацию
type SigninRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse представляет ответ на регистрацию и вход
type AuthResponse struct {
	ExpiresAt time.Time    `json:"expires_at"` // время истечения токена
	User      *models.User `json:"user"`       // профиль пользователя
	Token     string       `json:"token"`      // тот же JWT, что и в cookie, для клиентов без cookie
	Success   bool         `json:"success"`
	Message   string       `json:"message"`
}

// MeResponse представляет текущую identity из токена и актуальный профиль
type MeResponse struct {
	User    *models.User `json:"user"`
	Success bool         `json:"success"`
	Message string       `json:"message"`
}

// ErrorResponse представляет ответ с ошибкой
type ErrorResponse struct {
	Field   string `json:"field,omitempty"` // поле, не прошедшее валидацию
	Rule    string `json:"rule,omitempty"`  // нарушенное правило
	Message string `json:"message"`         // описание ошибки
	Success bool   `json:"success"`
}
