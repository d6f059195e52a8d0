// Package storage описывает локальное хранилище сессии терминального клиента.
package storage

import (
	"context"
	"time"
)

// AuthStorage хранит сессию текущего пользователя между запусками клиента
type AuthStorage interface {
	// SaveAuth сохраняет сессию, перезаписывая предыдущую
	SaveAuth(ctx context.Context, auth *AuthData) error

	// GetAuth возвращает сохраненную сессию или ErrAuthNotFound
	GetAuth(ctx context.Context) (*AuthData, error)

	// DeleteAuth удаляет сессию (signout)
	DeleteAuth(ctx context.Context) error

	// IsAuthenticated сообщает, есть ли сессия с неистекшим токеном
	IsAuthenticated(ctx context.Context) (bool, error)
}

// AuthData представляет сессию в хранилище.
// Token хранится как есть: это JWT, выданный сервером, и сервер все равно проверяет его подпись.
type AuthData struct {
	ExpiresAt time.Time `json:"expires_at"`
	Server    string    `json:"server"` // адрес сервера, выдавшего токен
	Username  string    `json:"username"`
	UserID    string    `json:"user_id"`
	Role      string    `json:"role"`
	Token     string    `json:"token"`
}

// Expired сообщает, истек ли токен к моменту now
func (a *AuthData) Expired(now time.Time) bool {
	return !now.Before(a.ExpiresAt)
}
