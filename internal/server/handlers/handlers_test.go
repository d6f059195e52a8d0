package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/iudanet/learnhub/internal/crypto"
	"github.com/iudanet/learnhub/internal/models"
	"github.com/iudanet/learnhub/internal/server/jwt"
	"github.com/iudanet/learnhub/internal/server/storage/sqlstore"
	"github.com/iudanet/learnhub/pkg/api"
)

const testPassword = "Str0ng!pass"

func setupTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))
}

func setupTestStore(t *testing.T) *sqlstore.Store {
	t.Helper()

	s, err := sqlstore.New(context.Background(), sqlstore.SQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	return s
}

func newTestHasher(t *testing.T) *crypto.PasswordHasher {
	t.Helper()

	h, err := crypto.NewPasswordHasher(bcrypt.MinCost)
	require.NoError(t, err)
	return h
}

// testRequest описывает вызов handler'а напрямую, без роутера
type testRequest struct {
	body     any // string отправляется как есть, остальное через json.Marshal
	identity *jwt.Identity
	path     map[string]string
	cookies  []*http.Cookie
	method   string
	target   string
}

func serve(t *testing.T, h http.HandlerFunc, tr testRequest) *httptest.ResponseRecorder {
	t.Helper()

	var body io.Reader
	switch b := tr.body.(type) {
	case nil:
	case string:
		body = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}

	method := tr.method
	if method == "" {
		method = http.MethodGet
	}
	target := tr.target
	if target == "" {
		target = "/"
	}

	req := httptest.NewRequest(method, target, body)
	req.Header.Set("Content-Type", "application/json")
	for name, value := range tr.path {
		req.SetPathValue(name, value)
	}
	for _, c := range tr.cookies {
		req.AddCookie(c)
	}
	if tr.identity != nil {
		req = req.WithContext(jwt.WithIdentity(req.Context(), tr.identity))
	}

	w := httptest.NewRecorder()
	h(w, req)
	return w
}

// decodeResponse разбирает тело ответа в T
func decodeResponse[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.NewDecoder(w.Body).Decode(&v), "body: %s", w.Body.String())
	return v
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) api.ErrorResponse {
	t.Helper()

	resp := decodeResponse[api.ErrorResponse](t, w)
	require.False(t, resp.Success)
	return resp
}

// testEnvelope - разобранный успешный конверт {success, message, <key>}
type testEnvelope struct {
	fields    map[string]json.RawMessage
	Unchanged map[string]string
	Message   string
	Success   bool
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) testEnvelope {
	t.Helper()

	fields := decodeResponse[map[string]json.RawMessage](t, w)
	env := testEnvelope{fields: fields}
	require.NoError(t, json.Unmarshal(fields["success"], &env.Success))
	require.NoError(t, json.Unmarshal(fields["message"], &env.Message))
	if raw, ok := fields["unchanged"]; ok {
		require.NoError(t, json.Unmarshal(raw, &env.Unchanged))
	}
	return env
}

// payload достает сущность или список из конверта по ключу
func payload[T any](t *testing.T, env testEnvelope, key string) T {
	t.Helper()

	raw, ok := env.fields[key]
	require.True(t, ok, "response has no %q key", key)

	var v T
	require.NoError(t, json.Unmarshal(raw, &v))
	return v
}

func createTestUser(t *testing.T, s *sqlstore.Store, hasher *crypto.PasswordHasher, role string) *models.User {
	t.Helper()

	hash, err := hasher.Hash(testPassword)
	require.NoError(t, err)

	id := uuid.New().String()
	user := &models.User{
		ID:         id,
		Email:      "user_" + id[:8] + "@example.com",
		Username:   "user_" + id[:8],
		HashedPass: hash,
		Fullname:   "Test User",
		Role:       role,
		Rank:       1,
		CreatedAt:  time.Now().UTC(),
	}
	require.NoError(t, s.CreateUser(context.Background(), user))
	return user
}

func identityFor(u *models.User) *jwt.Identity {
	id := identityOf(u)
	return &id
}

func createTestCourse(t *testing.T, s *sqlstore.Store) *models.Course {
	t.Helper()

	c := &models.Course{
		ID:          uuid.New().String(),
		Title:       "Go basics",
		Category:    "programming",
		Description: "Types, functions and packages",
		CreatedAt:   time.Now().UTC(),
	}
	require.NoError(t, s.CreateCourse(context.Background(), c))
	return c
}

func createTestLesson(t *testing.T, s *sqlstore.Store, courseID string, prerequisite *string) *models.Lesson {
	t.Helper()

	l := &models.Lesson{
		ID:                   uuid.New().String(),
		CourseID:             courseID,
		Title:                "Lesson " + uuid.NewString()[:6],
		ContentDocumented:    "text",
		PrerequisiteLessonID: prerequisite,
		XP:                   5,
		CreatedAt:            time.Now().UTC(),
	}
	require.NoError(t, s.CreateLesson(context.Background(), l))
	return l
}

func createTestQuiz(t *testing.T, s *sqlstore.Store) *models.Quiz {
	t.Helper()

	q := &models.Quiz{
		ID:           uuid.New().String(),
		Title:        "Go quiz",
		PassingScore: 6,
		TotalScore:   10,
		XPReward:     20,
		TimeLimit:    15,
		CreatedAt:    time.Now().UTC(),
	}
	require.NoError(t, s.CreateQuiz(context.Background(), q))
	return q
}

func createTestQuestion(t *testing.T, s *sqlstore.Store, title string) *models.Question {
	t.Helper()

	q := &models.Question{
		ID:         uuid.New().String(),
		Title:      title,
		Difficulty: models.DifficultyBeginner,
		CreatedAt:  time.Now().UTC(),
	}
	require.NoError(t, s.CreateQuestion(context.Background(), q))
	return q
}

func createTestSkill(t *testing.T, s *sqlstore.Store, title string, xp int64) *models.Skill {
	t.Helper()

	sk := &models.Skill{Title: title, XP: xp}
	require.NoError(t, s.CreateSkill(context.Background(), sk))
	return sk
}
