package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/learnhub/internal/client/api"
	"github.com/iudanet/learnhub/internal/client/auth"
	"github.com/iudanet/learnhub/internal/client/storage"
	"github.com/iudanet/learnhub/internal/models"
	pkgapi "github.com/iudanet/learnhub/pkg/api"
)

const (
	testCourseID = "0b6f1b4e-7d1c-4b8e-9a57-3c2f0c1d9e21"
	testLessonID = "8c1f3a52-1e0b-4d6f-8f2e-6a9b7c0d1e22"
	testQuizID   = "3d2e1f40-5a6b-4c7d-8e9f-0a1b2c3d4e55"
)

// fakeIO отдает заранее заданный ввод и копит вывод
type fakeIO struct {
	out       bytes.Buffer
	inputs    []string
	passwords []string
	prompts   []string
}

func (f *fakeIO) Println(a ...any)               { fmt.Fprintln(&f.out, a...) }
func (f *fakeIO) Printf(format string, a ...any) { fmt.Fprintf(&f.out, format, a...) }
func (f *fakeIO) Write(p []byte) (int, error)    { return f.out.Write(p) }

func (f *fakeIO) ReadInput(prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	if len(f.inputs) == 0 {
		return "", errors.New("unexpected input prompt: " + prompt)
	}
	v := f.inputs[0]
	f.inputs = f.inputs[1:]
	return v, nil
}

func (f *fakeIO) ReadPassword(prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	if len(f.passwords) == 0 {
		return "", errors.New("unexpected password prompt: " + prompt)
	}
	v := f.passwords[0]
	f.passwords = f.passwords[1:]
	return v, nil
}

// fakeAuth подменяет auth.Service
type fakeAuth struct {
	session    *storage.AuthData
	err        error
	signupReq  *pkgapi.SignupRequest
	signinArgs []string
	signedOut  bool
}

func (f *fakeAuth) Signup(ctx context.Context, req pkgapi.SignupRequest) (*storage.AuthData, error) {
	f.signupReq = &req
	return f.session, f.err
}

func (f *fakeAuth) Signin(ctx context.Context, email, password string) (*storage.AuthData, error) {
	f.signinArgs = []string{email, password}
	return f.session, f.err
}

func (f *fakeAuth) Signout(ctx context.Context) error {
	f.signedOut = f.err == nil
	return f.err
}

func (f *fakeAuth) Session(ctx context.Context) (*storage.AuthData, error) {
	if f.session == nil {
		return nil, auth.ErrNotAuthenticated
	}
	if f.session.ExpiresAt.Before(time.Now()) {
		return nil, auth.ErrNotAuthenticated
	}
	return f.session, nil
}

func (f *fakeAuth) Stored(ctx context.Context) (*storage.AuthData, error) {
	if f.session == nil {
		return nil, auth.ErrNotAuthenticated
	}
	return f.session, nil
}

// fakeAPI возвращает фиксированные данные и запоминает токен и аргументы
type fakeAPI struct {
	err         error
	user        *models.User
	attempt     *models.QuizAttempt
	courses     []*models.Course
	enrollments []*models.Enrollment
	lessons     []*models.Lesson
	skills      []*models.UserSkill
	token       string
	args        []string
	score       int64
}

func (f *fakeAPI) Me(ctx context.Context, token string) (*models.User, error) {
	f.token = token
	return f.user, f.err
}

func (f *fakeAPI) Courses(ctx context.Context) ([]*models.Course, error) {
	return f.courses, f.err
}

func (f *fakeAPI) Enroll(ctx context.Context, token, courseID string) (*models.Enrollment, error) {
	f.token, f.args = token, []string{courseID}
	return &models.Enrollment{CourseID: courseID}, f.err
}

func (f *fakeAPI) MyCourses(ctx context.Context, token string) ([]*models.Enrollment, error) {
	f.token = token
	return f.enrollments, f.err
}

func (f *fakeAPI) CourseLessons(ctx context.Context, token, courseID string) ([]*models.Lesson, error) {
	f.token, f.args = token, []string{courseID}
	return f.lessons, f.err
}

func (f *fakeAPI) CompleteLesson(ctx context.Context, token, lessonID string) (*models.LessonProgress, error) {
	f.token, f.args = token, []string{lessonID}
	return &models.LessonProgress{LessonID: lessonID, Status: models.ProgressCompleted}, f.err
}

func (f *fakeAPI) MySkills(ctx context.Context, token string) ([]*models.UserSkill, error) {
	f.token = token
	return f.skills, f.err
}

func (f *fakeAPI) Attempt(ctx context.Context, token, quizID string, score int64) (*models.QuizAttempt, error) {
	f.token, f.args, f.score = token, []string{quizID}, score
	return f.attempt, f.err
}

func activeSession() *storage.AuthData {
	return &storage.AuthData{
		Server:    "http://localhost:8080",
		Username:  "alice",
		UserID:    "user-1",
		Role:      models.RoleUser,
		Token:     "tok",
		ExpiresAt: time.Now().Add(24 * time.Hour),
	}
}

func newTestCli(io *fakeIO, a *fakeAuth, apiClient *fakeAPI) *Cli {
	c := New(io, a, apiClient, Passwords{})
	c.getenv = func(string) string { return "" }
	return c
}

func TestRun_UnknownCommand(t *testing.T) {
	io := &fakeIO{}
	err := newTestCli(io, &fakeAuth{}, &fakeAPI{}).Run(context.Background(), "frobnicate", nil)

	assert.ErrorIs(t, err, ErrUnknownCommand)
	assert.Contains(t, io.out.String(), "Usage:")
}

func TestRun_Help(t *testing.T) {
	io := &fakeIO{}
	require.NoError(t, newTestCli(io, &fakeAuth{}, &fakeAPI{}).Run(context.Background(), "help", nil))
	assert.Contains(t, io.out.String(), "attempt <quiz_id> <score>")
}

func TestPrintUsage(t *testing.T) {
	var buf bytes.Buffer
	PrintUsage(&buf)
	for _, cmd := range []string{"signup", "signin", "signout", "status", "courses", "enroll", "my-courses", "lessons", "complete", "skills", "attempt"} {
		assert.Contains(t, buf.String(), cmd)
	}
}

func TestReadPassword_Priority(t *testing.T) {
	file := filepath.Join(t.TempDir(), "password.txt")
	require.NoError(t, os.WriteFile(file, []byte("FromF1le!\n"), 0600))

	t.Run("env wins", func(t *testing.T) {
		c := New(&fakeIO{}, &fakeAuth{}, &fakeAPI{}, Passwords{FromFile: file})
		c.getenv = func(k string) string {
			if k == PasswordEnv {
				return "FromEnv1!"
			}
			return ""
		}
		pw, interactive, err := c.readPassword("Password: ")
		require.NoError(t, err)
		assert.Equal(t, "FromEnv1!", pw)
		assert.False(t, interactive)
	})

	t.Run("file before prompt", func(t *testing.T) {
		io := &fakeIO{passwords: []string{"unused"}}
		c := newTestCli(io, &fakeAuth{}, &fakeAPI{})
		c.passwords.FromFile = file

		pw, interactive, err := c.readPassword("Password: ")
		require.NoError(t, err)
		assert.Equal(t, "FromF1le!", pw)
		assert.False(t, interactive)
		assert.Empty(t, io.prompts)
	})

	t.Run("empty file", func(t *testing.T) {
		empty := filepath.Join(t.TempDir(), "empty.txt")
		require.NoError(t, os.WriteFile(empty, []byte("\n"), 0600))

		c := newTestCli(&fakeIO{}, &fakeAuth{}, &fakeAPI{})
		c.passwords.FromFile = empty
		_, _, err := c.readPassword("Password: ")
		assert.ErrorContains(t, err, "password file is empty")
	})

	t.Run("missing file", func(t *testing.T) {
		c := newTestCli(&fakeIO{}, &fakeAuth{}, &fakeAPI{})
		c.passwords.FromFile = filepath.Join(t.TempDir(), "nope")
		_, _, err := c.readPassword("Password: ")
		assert.ErrorContains(t, err, "failed to read password file")
	})

	t.Run("prompt", func(t *testing.T) {
		io := &fakeIO{passwords: []string{"Typed1!x"}}
		pw, interactive, err := newTestCli(io, &fakeAuth{}, &fakeAPI{}).readPassword("Password: ")
		require.NoError(t, err)
		assert.Equal(t, "Typed1!x", pw)
		assert.True(t, interactive)
	})

	t.Run("empty prompt", func(t *testing.T) {
		io := &fakeIO{passwords: []string{""}}
		_, _, err := newTestCli(io, &fakeAuth{}, &fakeAPI{}).readPassword("Password: ")
		assert.ErrorContains(t, err, "password cannot be empty")
	})
}

func TestExplain(t *testing.T) {
	assert.NoError(t, explain(nil))

	unauthorized := fmt.Errorf("wrapped: %w", &api.Error{StatusCode: http.StatusUnauthorized, Message: "Invalid token"})
	err := explain(unauthorized)
	assert.ErrorIs(t, err, api.ErrUnauthorized)
	assert.Contains(t, err.Error(), "learnhub signin")

	forbidden := &api.Error{StatusCode: http.StatusForbidden, Message: "Complete the prerequisite lesson first"}
	assert.Contains(t, explain(forbidden).Error(), "access denied")

	plain := errors.New("boom")
	assert.Equal(t, plain, explain(plain))
}
