// Package api реализует HTTP клиент к REST API learnhub.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/iudanet/learnhub/internal/models"
	"github.com/iudanet/learnhub/pkg/api"
)

// ErrUnauthorized возвращается при ответе 401: токена нет, он истек или подписан чужим секретом
var ErrUnauthorized = errors.New("unauthorized")

// Error представляет ответ сервера с ошибкой
type Error struct {
	Message    string
	Field      string
	Rule       string
	StatusCode int
}

func (e *Error) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("server error (%d): %s: %s", e.StatusCode, e.Field, e.Message)
	}
	return fmt.Sprintf("server error (%d): %s", e.StatusCode, e.Message)
}

// Is позволяет сопоставлять 401 с ErrUnauthorized через errors.Is
func (e *Error) Is(target error) bool {
	return target == ErrUnauthorized && e.StatusCode == http.StatusUnauthorized
}

// IsStatus сообщает, что err получен от сервера с данным статусом
func IsStatus(err error, code int) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.StatusCode == code
}

// Client представляет HTTP клиент для взаимодействия с сервером
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient создает новый API клиент
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return fmt.Errorf("stopped after 10 redirects")
				}
				// Authorization не переносится при редиректе по умолчанию
				if len(via) > 0 && via[0].Header.Get("Authorization") != "" {
					req.Header.Set("Authorization", via[0].Header.Get("Authorization"))
				}
				return nil
			},
		},
	}
}

// BaseURL возвращает адрес сервера
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Signup регистрирует нового пользователя
func (c *Client) Signup(ctx context.Context, req api.SignupRequest) (*api.AuthResponse, error) {
	var resp api.AuthResponse
	if err := c.doRequest(ctx, http.MethodPost, "/auth/signup", "", req, &resp); err != nil {
		return nil, fmt.Errorf("signup request failed: %w", err)
	}
	return &resp, nil
}

// Signin выполняет аутентификацию пользователя
func (c *Client) Signin(ctx context.Context, req api.SigninRequest) (*api.AuthResponse, error) {
	var resp api.AuthResponse
	if err := c.doRequest(ctx, http.MethodPost, "/auth/signin", "", req, &resp); err != nil {
		return nil, fmt.Errorf("signin request failed: %w", err)
	}
	return &resp, nil
}

// Signout просит сервер удалить cookie с токеном
func (c *Client) Signout(ctx context.Context, token string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/signout", nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	// сервер читает токен при выходе только из cookie
	req.AddCookie(&http.Cookie{Name: api.TokenCookieName, Value: token})

	if err := c.do(req, nil); err != nil {
		return fmt.Errorf("signout request failed: %w", err)
	}
	return nil
}

// Me возвращает профиль текущего пользователя
func (c *Client) Me(ctx context.Context, token string) (*models.User, error) {
	var resp api.MeResponse
	if err := c.doRequest(ctx, http.MethodGet, "/user/me", token, nil, &resp); err != nil {
		return nil, fmt.Errorf("me request failed: %w", err)
	}
	return resp.User, nil
}

// Courses возвращает каталог курсов
func (c *Client) Courses(ctx context.Context) ([]*models.Course, error) {
	var resp struct {
		Courses []*models.Course `json:"courses"`
	}
	if err := c.doRequest(ctx, http.MethodGet, "/course", "", nil, &resp); err != nil {
		return nil, fmt.Errorf("courses request failed: %w", err)
	}
	return resp.Courses, nil
}

// Enroll записывает текущего пользователя на курс
func (c *Client) Enroll(ctx context.Context, token, courseID string) (*models.Enrollment, error) {
	var resp struct {
		Enrollment *models.Enrollment `json:"enrollment"`
	}
	if err := c.doRequest(ctx, http.MethodPost, "/user/courses/"+url.PathEscape(courseID), token, nil, &resp); err != nil {
		return nil, fmt.Errorf("enroll request failed: %w", err)
	}
	return resp.Enrollment, nil
}

// MyCourses возвращает курсы, на которые записан пользователь
func (c *Client) MyCourses(ctx context.Context, token string) ([]*models.Enrollment, error) {
	var resp struct {
		Courses []*models.Enrollment `json:"courses"`
	}
	if err := c.doRequest(ctx, http.MethodGet, "/user/courses", token, nil, &resp); err != nil {
		return nil, fmt.Errorf("my courses request failed: %w", err)
	}
	return resp.Courses, nil
}

// CourseLessons возвращает уроки курса
func (c *Client) CourseLessons(ctx context.Context, token, courseID string) ([]*models.Lesson, error) {
	var resp struct {
		Lessons []*models.Lesson `json:"lessons"`
	}
	path := "/course/" + url.PathEscape(courseID) + "/lessons"
	if err := c.doRequest(ctx, http.MethodGet, path, token, nil, &resp); err != nil {
		return nil, fmt.Errorf("lessons request failed: %w", err)
	}
	return resp.Lessons, nil
}

// CompleteLesson отмечает урок пройденным. Урок, который еще не начат,
// сначала начинается: сервер хранит прогресс только для начатых уроков.
func (c *Client) CompleteLesson(ctx context.Context, token, lessonID string) (*models.LessonProgress, error) {
	path := "/user/lessons/" + url.PathEscape(lessonID)

	err := c.doRequest(ctx, http.MethodPost, path, token, nil, nil)
	if err != nil && !IsStatus(err, http.StatusConflict) {
		return nil, fmt.Errorf("start lesson request failed: %w", err)
	}

	var resp struct {
		Lesson *models.LessonProgress `json:"lesson"`
	}
	body := api.LessonProgressRequest{Status: models.ProgressCompleted}
	if err := c.doRequest(ctx, http.MethodPatch, path, token, body, &resp); err != nil {
		return nil, fmt.Errorf("complete lesson request failed: %w", err)
	}
	return resp.Lesson, nil
}

// MySkills возвращает навыки пользователя
func (c *Client) MySkills(ctx context.Context, token string) ([]*models.UserSkill, error) {
	var resp struct {
		Skills []*models.UserSkill `json:"skills"`
	}
	if err := c.doRequest(ctx, http.MethodGet, "/user/skills", token, nil, &resp); err != nil {
		return nil, fmt.Errorf("skills request failed: %w", err)
	}
	return resp.Skills, nil
}

// Attempt отправляет результат прохождения квиза
func (c *Client) Attempt(ctx context.Context, token, quizID string, score int64) (*models.QuizAttempt, error) {
	var resp struct {
		Attempt *models.QuizAttempt `json:"attempt"`
	}
	body := api.QuizAttemptRequest{Score: &score}
	path := "/user/quizAttempts/" + url.PathEscape(quizID)
	if err := c.doRequest(ctx, http.MethodPost, path, token, body, &resp); err != nil {
		return nil, fmt.Errorf("quiz attempt request failed: %w", err)
	}
	return resp.Attempt, nil
}

// doRequest выполняет JSON запрос; token передается в заголовке Authorization, если задан
func (c *Client) doRequest(ctx context.Context, method, path, token string, body, result any) error {
	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return c.do(req, result)
}

func (c *Client) do(req *http.Request, result any) error {
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp api.ErrorResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil && errResp.Message != "" {
			return &Error{
				StatusCode: resp.StatusCode,
				Message:    errResp.Message,
				Field:      errResp.Field,
				Rule:       errResp.Rule,
			}
		}
		return &Error{StatusCode: resp.StatusCode, Message: "unexpected response: " + strconv.Quote(string(respBody))}
	}

	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}
