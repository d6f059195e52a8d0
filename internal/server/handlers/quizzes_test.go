package handlers

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/learnhub/internal/models"
	"github.com/iudanet/learnhub/pkg/api"
)

func quizPath(id string) map[string]string { return map[string]string{"quiz_id": id} }

func questionPath(id string) map[string]string { return map[string]string{"question_id": id} }

func TestQuizHandler_QuizCRUD(t *testing.T) {
	s := setupTestStore(t)
	h := NewQuizHandler(setupTestLogger(), s, s)

	w := serve(t, h.CreateQuiz, testRequest{
		method: http.MethodPost,
		body:   api.CreateQuizRequest{Title: "Concurrency", PassingScore: 7, TotalScore: 10, XPReward: 50, TimeLimit: 20},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	quiz := payload[models.Quiz](t, decodeEnvelope(t, w), "quiz")

	w = serve(t, h.GetQuiz, testRequest{path: quizPath(quiz.ID)})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(7), payload[models.Quiz](t, decodeEnvelope(t, w), "quiz").PassingScore)

	w = serve(t, h.ListQuizzes, testRequest{})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, payload[[]models.Quiz](t, decodeEnvelope(t, w), "quizzes"), 1)

	w = serve(t, h.UpdateQuiz, testRequest{method: http.MethodPatch, path: quizPath(quiz.ID), body: `{"time_limit": 30, "xp_reward": 50}`})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	env := decodeEnvelope(t, w)
	assert.Equal(t, map[string]string{"xp_reward": "XP reward is already the current one, nothing changed"}, env.Unchanged)
	assert.Equal(t, int64(30), payload[models.Quiz](t, env, "quiz").TimeLimit)

	w = serve(t, h.DeleteQuiz, testRequest{method: http.MethodDelete, path: quizPath(quiz.ID)})
	require.Equal(t, http.StatusOK, w.Code)

	w = serve(t, h.GetQuiz, testRequest{path: quizPath(quiz.ID)})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestQuizHandler_ScoreRules(t *testing.T) {
	s := setupTestStore(t)
	h := NewQuizHandler(setupTestLogger(), s, s)

	w := serve(t, h.CreateQuiz, testRequest{
		method: http.MethodPost,
		body:   api.CreateQuizRequest{Title: "Broken", PassingScore: 11, TotalScore: 10},
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeError(t, w)
	assert.Equal(t, "passing_score", resp.Field)
	assert.Equal(t, "ltefield=TotalScore", resp.Rule)

	w = serve(t, h.CreateQuiz, testRequest{
		method: http.MethodPost,
		body:   api.CreateQuizRequest{Title: "Empty", TotalScore: 0},
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "gt=0", decodeError(t, w).Rule)

	// PATCH проверяет поля по отдельности, связь между ними держит CHECK в БД
	quiz := createTestQuiz(t, s)
	w = serve(t, h.UpdateQuiz, testRequest{method: http.MethodPatch, path: quizPath(quiz.ID), body: `{"passing_score": 20}`})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "check", decodeError(t, w).Rule)
}

func TestQuizHandler_Questions(t *testing.T) {
	s := setupTestStore(t)
	h := NewQuizHandler(setupTestLogger(), s, s)

	w := serve(t, h.CreateQuestion, testRequest{method: http.MethodPost, body: api.CreateQuestionRequest{Title: "What is a goroutine?"}})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	question := payload[models.Question](t, decodeEnvelope(t, w), "question")
	assert.Equal(t, models.DifficultyBeginner, question.Difficulty)

	w = serve(t, h.CreateQuestion, testRequest{method: http.MethodPost, body: api.CreateQuestionRequest{Title: "What is a goroutine?"}})
	require.Equal(t, http.StatusConflict, w.Code)

	w = serve(t, h.CreateQuestion, testRequest{
		method: http.MethodPost,
		body:   api.CreateQuestionRequest{Title: "What is a channel?", Difficulty: "expert"},
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "difficulty", decodeError(t, w).Field)

	w = serve(t, h.UpdateQuestion, testRequest{
		method: http.MethodPatch,
		path:   questionPath(question.ID),
		body:   `{"difficulty": "advanced"}`,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, models.DifficultyAdvanced, payload[models.Question](t, decodeEnvelope(t, w), "question").Difficulty)

	w = serve(t, h.ListQuestions, testRequest{})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, payload[[]models.Question](t, decodeEnvelope(t, w), "questions"), 1)

	w = serve(t, h.GetQuestion, testRequest{path: questionPath(question.ID)})
	require.Equal(t, http.StatusOK, w.Code)

	w = serve(t, h.DeleteQuestion, testRequest{method: http.MethodDelete, path: questionPath(question.ID)})
	require.Equal(t, http.StatusOK, w.Code)

	w = serve(t, h.GetQuestion, testRequest{path: questionPath(question.ID)})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestQuizHandler_Options(t *testing.T) {
	s := setupTestStore(t)
	h := NewQuizHandler(setupTestLogger(), s, s)
	question := createTestQuestion(t, s, "Which keyword starts a goroutine?")

	w := serve(t, h.CreateOption, testRequest{
		method: http.MethodPost,
		path:   questionPath(question.ID),
		body:   api.CreateOptionRequest{OptionText: "go", IsCorrect: true},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	option := payload[models.Option](t, decodeEnvelope(t, w), "option")
	assert.Equal(t, question.ID, option.QuestionID)
	assert.True(t, option.IsCorrect)

	w = serve(t, h.CreateOption, testRequest{
		method: http.MethodPost,
		path:   questionPath(question.ID),
		body:   api.CreateOptionRequest{OptionText: "go"},
	})
	require.Equal(t, http.StatusConflict, w.Code, "option text is unique per question")

	w = serve(t, h.CreateOption, testRequest{
		method: http.MethodPost,
		path:   questionPath(uuid.NewString()),
		body:   api.CreateOptionRequest{OptionText: "defer"},
	})
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "exists", decodeError(t, w).Rule)

	optionPath := map[string]string{"option_id": option.ID}

	w = serve(t, h.UpdateOption, testRequest{method: http.MethodPatch, path: optionPath, body: `{"is_correct": true}`})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "No changes detected", decodeEnvelope(t, w).Message)

	w = serve(t, h.UpdateOption, testRequest{method: http.MethodPatch, path: optionPath, body: `{"is_correct": false}`})
	require.Equal(t, http.StatusOK, w.Code)
	assert.False(t, payload[models.Option](t, decodeEnvelope(t, w), "option").IsCorrect)

	w = serve(t, h.UpdateOption, testRequest{method: http.MethodPatch, path: optionPath, body: `{"is_correct": "no"}`})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "bool", decodeError(t, w).Rule)

	w = serve(t, h.ListOptions, testRequest{path: questionPath(question.ID)})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, payload[[]models.Option](t, decodeEnvelope(t, w), "options"), 1)

	w = serve(t, h.DeleteOption, testRequest{method: http.MethodDelete, path: optionPath})
	require.Equal(t, http.StatusOK, w.Code)

	w = serve(t, h.DeleteOption, testRequest{method: http.MethodDelete, path: optionPath})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestQuizHandler_Composition(t *testing.T) {
	s := setupTestStore(t)
	h := NewQuizHandler(setupTestLogger(), s, s)
	quiz := createTestQuiz(t, s)
	question := createTestQuestion(t, s, "What does defer do?")

	ids := map[string]string{"quiz_id": quiz.ID, "question_id": question.ID}

	w := serve(t, h.AddQuizQuestion, testRequest{method: http.MethodPost, path: ids})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = serve(t, h.AddQuizQuestion, testRequest{method: http.MethodPost, path: ids})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = serve(t, h.QuizQuestions, testRequest{path: quizPath(quiz.ID)})
	require.Equal(t, http.StatusOK, w.Code)
	questions := payload[[]models.Question](t, decodeEnvelope(t, w), "questions")
	require.Len(t, questions, 1)
	assert.Equal(t, question.ID, questions[0].ID)

	w = serve(t, h.AddQuizQuestion, testRequest{
		method: http.MethodPost,
		path:   map[string]string{"quiz_id": quiz.ID, "question_id": uuid.NewString()},
	})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = serve(t, h.AddQuizQuestion, testRequest{
		method: http.MethodPost,
		path:   map[string]string{"quiz_id": quiz.ID, "question_id": "nope"},
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "question_id", decodeError(t, w).Field)

	w = serve(t, h.RemoveQuizQuestion, testRequest{method: http.MethodDelete, path: ids})
	require.Equal(t, http.StatusOK, w.Code)

	w = serve(t, h.RemoveQuizQuestion, testRequest{method: http.MethodDelete, path: ids})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = serve(t, h.QuizQuestions, testRequest{path: quizPath(uuid.NewString())})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestQuizHandler_Attempts(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()
	h := NewQuizHandler(setupTestLogger(), s, s)
	quiz := createTestQuiz(t, s)
	user := createTestUser(t, s, newTestHasher(t), models.RoleUser)

	now := time.Now().UTC()
	for i, score := range []int64{3, 8} {
		require.NoError(t, s.RecordAttempt(ctx, &models.QuizAttempt{
			ID:          uuid.NewString(),
			UserID:      user.ID,
			QuizID:      quiz.ID,
			Score:       score,
			Passed:      score >= quiz.PassingScore,
			AttemptedAt: now.Add(time.Duration(i) * time.Minute),
		}))
	}

	w := serve(t, h.QuizAttempts, testRequest{path: quizPath(quiz.ID)})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, payload[[]models.QuizAttempt](t, decodeEnvelope(t, w), "attempts"), 2)

	w = serve(t, h.UserQuizAttempt, testRequest{path: map[string]string{"quiz_id": quiz.ID, "user_id": user.ID}})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	latest := payload[models.QuizAttempt](t, decodeEnvelope(t, w), "attempt")
	assert.Equal(t, int64(8), latest.Score)
	assert.True(t, latest.Passed)

	w = serve(t, h.UserQuizAttempt, testRequest{path: map[string]string{"quiz_id": quiz.ID, "user_id": uuid.NewString()}})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = serve(t, h.QuizAttempts, testRequest{path: quizPath(uuid.NewString())})
	assert.Equal(t, http.StatusNotFound, w.Code)
}
