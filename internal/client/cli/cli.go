// Package cli реализует команды терминального клиента learnhub.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/iudanet/learnhub/internal/client/api"
	"github.com/iudanet/learnhub/internal/client/auth"
	"github.com/iudanet/learnhub/internal/client/iocli"
	"github.com/iudanet/learnhub/internal/client/storage"
	"github.com/iudanet/learnhub/internal/models"
	pkgapi "github.com/iudanet/learnhub/pkg/api"
)

// PasswordEnv - переменная окружения с паролем для неинтерактивного входа
const PasswordEnv = "LEARNHUB_PASSWORD"

// ErrUnknownCommand возвращается Run для неизвестной команды
var ErrUnknownCommand = errors.New("unknown command")

// AuthService управляет локальной сессией
type AuthService interface {
	Signup(ctx context.Context, req pkgapi.SignupRequest) (*storage.AuthData, error)
	Signin(ctx context.Context, email, password string) (*storage.AuthData, error)
	Signout(ctx context.Context) error
	Session(ctx context.Context) (*storage.AuthData, error)
	Stored(ctx context.Context) (*storage.AuthData, error)
}

// API - запросы к серверу, которым нужен токен сессии (кроме каталога курсов)
type API interface {
	Me(ctx context.Context, token string) (*models.User, error)
	Courses(ctx context.Context) ([]*models.Course, error)
	Enroll(ctx context.Context, token, courseID string) (*models.Enrollment, error)
	MyCourses(ctx context.Context, token string) ([]*models.Enrollment, error)
	CourseLessons(ctx context.Context, token, courseID string) ([]*models.Lesson, error)
	CompleteLesson(ctx context.Context, token, lessonID string) (*models.LessonProgress, error)
	MySkills(ctx context.Context, token string) ([]*models.UserSkill, error)
	Attempt(ctx context.Context, token, quizID string, score int64) (*models.QuizAttempt, error)
}

// Passwords задает неинтерактивные источники пароля
type Passwords struct {
	FromFile string
}

type Cli struct {
	io        iocli.IO
	auth      AuthService
	api       API
	getenv    func(string) string
	passwords Passwords
}

func New(term iocli.IO, authService AuthService, apiClient API, passwords Passwords) *Cli {
	return &Cli{
		io:        term,
		auth:      authService,
		api:       apiClient,
		passwords: passwords,
		getenv:    os.Getenv,
	}
}

// readPassword берет пароль по приоритету:
// 1. переменная окружения LEARNHUB_PASSWORD
// 2. файл из --password-file
// 3. интерактивный ввод
// Второй результат сообщает, что пароль введен интерактивно.
func (c *Cli) readPassword(prompt string) (string, bool, error) {
	if env := c.getenv(PasswordEnv); env != "" {
		return env, false, nil
	}

	if c.passwords.FromFile != "" {
		content, err := os.ReadFile(c.passwords.FromFile)
		if err != nil {
			return "", false, fmt.Errorf("failed to read password file: %w", err)
		}
		password := strings.TrimSpace(string(content))
		if password == "" {
			return "", false, fmt.Errorf("password file is empty")
		}
		return password, false, nil
	}

	password, err := c.io.ReadPassword(prompt)
	if err != nil {
		return "", false, fmt.Errorf("failed to read password: %w", err)
	}
	if password == "" {
		return "", false, fmt.Errorf("password cannot be empty")
	}
	return password, true, nil
}

// explain делает ошибки сервера понятнее для пользователя
func explain(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, api.ErrUnauthorized):
		return fmt.Errorf("%w (session rejected by server, run 'learnhub signin')", err)
	case api.IsStatus(err, http.StatusForbidden):
		return fmt.Errorf("%w (access denied)", err)
	default:
		return err
	}
}

// requireArgs проверяет число позиционных аргументов команды
func requireArgs(args []string, n int, usage string) error {
	if len(args) < n {
		return fmt.Errorf("missing arguments. Usage: learnhub %s", usage)
	}
	return nil
}

var _ AuthService = (*auth.Service)(nil)

// PrintUsage печатает справку
func PrintUsage(w io.Writer) {
	fmt.Fprint(w, `LearnHub Client

Usage:
  learnhub [OPTIONS] COMMAND [ARGS]

Options:
  --version              Show version information
  --server URL           Server URL (default: http://localhost:8080)
  --db PATH              Path to local session database (default: learnhub-client.db)
  --password-file PATH   Read password from file instead of prompting

Password priority (highest to lowest):
  1. LEARNHUB_PASSWORD environment variable
  2. --password-file
  3. Interactive prompt

Commands:
  signup [--admin]            Create an account and sign in
  signin [email]              Sign in
  signout                     Sign out and delete the local session
  status                      Show session and profile
  courses                     List all courses
  enroll <course_id>          Enroll in a course
  my-courses                  List your courses
  lessons <course_id>         List lessons of a course
  complete <lesson_id>        Mark a lesson as completed
  skills                      List your skills
  attempt <quiz_id> <score>   Submit a quiz result

Examples:
  learnhub signup
  learnhub signin alice@example.com
  learnhub courses
  learnhub enroll 0b6f1b4e-7d1c-4b8e-9a57-3c2f0c1d9e21
  learnhub --server https://learnhub.example.com status
`)
}
