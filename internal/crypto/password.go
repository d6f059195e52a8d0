package crypto

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCost возвращается, если стоимость bcrypt вне допустимого диапазона
var ErrInvalidCost = errors.New("invalid bcrypt cost")

// PasswordHasher хеширует и проверяет пароли с помощью bcrypt.
// Стоимость задаётся один раз при старте и дальше не меняется.
type PasswordHasher struct {
	cost int
}

// NewPasswordHasher создает hasher с заданной стоимостью.
// Некорректная стоимость - фатальная ошибка конфигурации.
func NewPasswordHasher(cost int) (*PasswordHasher, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return nil, fmt.Errorf("%w: %d (allowed %d-%d)", ErrInvalidCost, cost, bcrypt.MinCost, bcrypt.MaxCost)
	}
	return &PasswordHasher{cost: cost}, nil
}

// Hash возвращает bcrypt хеш пароля. Соль случайная, поэтому два вызова дают разные хеши.
func (h *PasswordHasher) Hash(plaintext string) (string, error) {
	if plaintext == "" {
		return "", fmt.Errorf("password cannot be empty")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	return string(hash), nil
}

// Verify сравнивает пароль с хешем. Любое несовпадение (включая битый хеш) - false.
func (h *PasswordHasher) Verify(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
