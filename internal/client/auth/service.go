// Package auth управляет сессией терминального клиента: вход, регистрация, выход
// и выдача токена для остальных команд.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/iudanet/learnhub/internal/client/storage"
	"github.com/iudanet/learnhub/internal/validation"
	"github.com/iudanet/learnhub/pkg/api"
)

// ErrNotAuthenticated означает, что сессии нет, токен истек или выдан другим сервером
var ErrNotAuthenticated = errors.New("not authenticated, run 'learnhub signin' first")

// API - часть HTTP клиента, нужная сервису
type API interface {
	Signup(ctx context.Context, req api.SignupRequest) (*api.AuthResponse, error)
	Signin(ctx context.Context, req api.SigninRequest) (*api.AuthResponse, error)
	Signout(ctx context.Context, token string) error
	BaseURL() string
}

// Service связывает API сервера и локальное хранилище сессии
type Service struct {
	api    API
	store  storage.AuthStorage
	logger *slog.Logger
	now    func() time.Time
}

// NewService создает сервис авторизации
func NewService(apiClient API, store storage.AuthStorage, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		api:    apiClient,
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

// Signup проверяет данные локально, регистрирует пользователя и сохраняет сессию.
// Локальная проверка повторяет серверную, чтобы не гонять заведомо плохой запрос.
func (s *Service) Signup(ctx context.Context, req api.SignupRequest) (*storage.AuthData, error) {
	req.Email = validation.NormalizeEmail(req.Email)

	checks := []error{
		validation.ValidateEmail(req.Email),
		validation.ValidateUsername(req.Username),
		validation.ValidatePassword(req.Password),
		validation.ValidateFullname(req.Fullname),
	}
	if req.Role != "" {
		checks = append(checks, validation.ValidateRole(req.Role))
	}
	for _, err := range checks {
		if err != nil {
			return nil, fmt.Errorf("invalid input: %w", err)
		}
	}

	resp, err := s.api.Signup(ctx, req)
	if err != nil {
		return nil, err
	}
	return s.saveSession(ctx, resp)
}

// Signin выполняет вход и сохраняет сессию
func (s *Service) Signin(ctx context.Context, email, password string) (*storage.AuthData, error) {
	email = validation.NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, fmt.Errorf("email and password are required")
	}

	resp, err := s.api.Signin(ctx, api.SigninRequest{Email: email, Password: password})
	if err != nil {
		return nil, err
	}
	return s.saveSession(ctx, resp)
}

// Signout удаляет локальную сессию. Сервер уведомляется по возможности:
// токен stateless, поэтому недоступный сервер не мешает выходу.
func (s *Service) Signout(ctx context.Context) error {
	session, err := s.store.GetAuth(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrAuthNotFound) {
			return ErrNotAuthenticated
		}
		return fmt.Errorf("failed to get session: %w", err)
	}

	if err := s.api.Signout(ctx, session.Token); err != nil {
		s.logger.Warn("failed to sign out on server", "error", err)
	}

	if err := s.store.DeleteAuth(ctx); err != nil {
		return fmt.Errorf("failed to delete local session: %w", err)
	}
	return nil
}

// Session возвращает действующую сессию для текущего сервера
func (s *Service) Session(ctx context.Context) (*storage.AuthData, error) {
	session, err := s.store.GetAuth(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrAuthNotFound) {
			return nil, ErrNotAuthenticated
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	if session.Expired(s.now()) {
		return nil, ErrNotAuthenticated
	}
	if session.Server != "" && session.Server != s.api.BaseURL() {
		s.logger.Debug("session belongs to another server", "session_server", session.Server)
		return nil, ErrNotAuthenticated
	}
	return session, nil
}

// Stored возвращает сохраненную сессию без проверки срока, для команды status
func (s *Service) Stored(ctx context.Context) (*storage.AuthData, error) {
	session, err := s.store.GetAuth(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrAuthNotFound) {
			return nil, ErrNotAuthenticated
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return session, nil
}

func (s *Service) saveSession(ctx context.Context, resp *api.AuthResponse) (*storage.AuthData, error) {
	if resp.Token == "" || resp.User == nil {
		return nil, fmt.Errorf("server returned an incomplete auth response")
	}

	session := &storage.AuthData{
		Server:    s.api.BaseURL(),
		Username:  resp.User.Username,
		UserID:    resp.User.ID,
		Role:      resp.User.Role,
		Token:     resp.Token,
		ExpiresAt: resp.ExpiresAt,
	}
	if err := s.store.SaveAuth(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}
	return session, nil
}
