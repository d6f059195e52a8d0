package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/iudanet/learnhub/internal/models"
	"github.com/iudanet/learnhub/internal/server/patch"
	"github.com/iudanet/learnhub/internal/server/storage"
	"github.com/iudanet/learnhub/pkg/api"
)

// QuizHandler обрабатывает квизы, банк вопросов и варианты ответов
type QuizHandler struct {
	base
	quizzes  storage.QuizStorage
	progress storage.ProgressStorage
}

// NewQuizHandler создает handler квизов
func NewQuizHandler(logger *slog.Logger, quizzes storage.QuizStorage, progress storage.ProgressStorage) *QuizHandler {
	return &QuizHandler{
		base:     base{logger: logger},
		quizzes:  quizzes,
		progress: progress,
	}
}

// ListQuizzes обрабатывает GET /quiz
func (h *QuizHandler) ListQuizzes(w http.ResponseWriter, r *http.Request) {
	quizzes, err := h.quizzes.ListQuizzes(r.Context())
	if err != nil {
		h.fail(r.Context(), w, err, "quiz")
		return
	}
	h.send(w, http.StatusOK, "Quizzes retrieved successfully", "quizzes", quizzes)
}

// GetQuiz обрабатывает GET /quiz/{quiz_id}
func (h *QuizHandler) GetQuiz(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathUUID(r, "quiz_id")
	if err != nil {
		h.fail(ctx, w, err, "quiz")
		return
	}

	quiz, err := h.quizzes.GetQuiz(ctx, id)
	if err != nil {
		h.fail(ctx, w, err, "quiz")
		return
	}
	h.send(w, http.StatusOK, "Quiz retrieved successfully", "quiz", quiz)
}

// CreateQuiz обрабатывает POST /quiz
func (h *QuizHandler) CreateQuiz(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.CreateQuizRequest
	if err := decodeJSON(r, &req); err != nil {
		h.fail(ctx, w, err, "quiz")
		return
	}

	quiz := &models.Quiz{
		ID:           uuid.New().String(),
		Title:        strings.TrimSpace(req.Title),
		PassingScore: req.PassingScore,
		TotalScore:   req.TotalScore,
		XPReward:     req.XPReward,
		TimeLimit:    req.TimeLimit,
		CreatedAt:    time.Now().UTC(),
	}
	if err := h.quizzes.CreateQuiz(ctx, quiz); err != nil {
		h.fail(ctx, w, err, "quiz")
		return
	}

	h.logger.InfoContext(ctx, "quiz created", slog.String("quiz_id", quiz.ID))
	h.send(w, http.StatusCreated, "Quiz created successfully", "quiz", quiz)
}

// UpdateQuiz обрабатывает PATCH /quiz/{quiz_id}
// passing_score > total_score отклоняется ограничением CHECK в базе
func (h *QuizHandler) UpdateQuiz(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathUUID(r, "quiz_id")
	if err != nil {
		h.fail(ctx, w, err, "quiz")
		return
	}

	current, err := h.quizzes.GetQuiz(ctx, id)
	if err != nil {
		h.fail(ctx, w, err, "quiz")
		return
	}

	applyPatch(h.base, w, r, quizSchema, current, "quiz", "quiz",
		func(ctx context.Context, upd *patch.Update) (*models.Quiz, error) {
			return h.quizzes.UpdateQuiz(ctx, id, upd)
		})
}

// DeleteQuiz обрабатывает DELETE /quiz/{quiz_id}
func (h *QuizHandler) DeleteQuiz(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathUUID(r, "quiz_id")
	if err != nil {
		h.fail(ctx, w, err, "quiz")
		return
	}

	if err := h.quizzes.DeleteQuiz(ctx, id); err != nil {
		h.fail(ctx, w, err, "quiz")
		return
	}

	h.logger.InfoContext(ctx, "quiz deleted", slog.String("quiz_id", id))
	h.send(w, http.StatusOK, "Quiz deleted successfully", "", nil)
}

// QuizQuestions обрабатывает GET /quiz/{quiz_id}/questions
func (h *QuizHandler) QuizQuestions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathUUID(r, "quiz_id")
	if err != nil {
		h.fail(ctx, w, err, "quiz")
		return
	}

	if _, err := h.quizzes.GetQuiz(ctx, id); err != nil {
		h.fail(ctx, w, err, "quiz")
		return
	}

	questions, err := h.quizzes.ListQuizQuestions(ctx, id)
	if err != nil {
		h.fail(ctx, w, err, "question")
		return
	}
	h.send(w, http.StatusOK, "Quiz questions retrieved successfully", "questions", questions)
}

func (h *QuizHandler) quizQuestionIDs(w http.ResponseWriter, r *http.Request) (quizID, questionID string, ok bool) {
	quizID, err := pathUUID(r, "quiz_id")
	if err == nil {
		questionID, err = pathUUID(r, "question_id")
	}
	if err != nil {
		h.fail(r.Context(), w, err, "quiz question")
		return "", "", false
	}
	return quizID, questionID, true
}

// AddQuizQuestion обрабатывает POST /quiz/{quiz_id}/questions/{question_id}
func (h *QuizHandler) AddQuizQuestion(w http.ResponseWriter, r *http.Request) {
	quizID, questionID, ok := h.quizQuestionIDs(w, r)
	if !ok {
		return
	}

	if err := h.quizzes.AddQuizQuestion(r.Context(), quizID, questionID); err != nil {
		h.fail(r.Context(), w, err, "quiz question")
		return
	}
	h.send(w, http.StatusCreated, "Question added to quiz successfully", "", nil)
}

// RemoveQuizQuestion обрабатывает DELETE /quiz/{quiz_id}/questions/{question_id}
func (h *QuizHandler) RemoveQuizQuestion(w http.ResponseWriter, r *http.Request) {
	quizID, questionID, ok := h.quizQuestionIDs(w, r)
	if !ok {
		return
	}

	if err := h.quizzes.RemoveQuizQuestion(r.Context(), quizID, questionID); err != nil {
		h.fail(r.Context(), w, err, "quiz question")
		return
	}
	h.send(w, http.StatusOK, "Question removed from quiz successfully", "", nil)
}

// QuizAttempts обрабатывает GET /quiz/{quiz_id}/attempts
func (h *QuizHandler) QuizAttempts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathUUID(r, "quiz_id")
	if err != nil {
		h.fail(ctx, w, err, "quiz")
		return
	}

	if _, err := h.quizzes.GetQuiz(ctx, id); err != nil {
		h.fail(ctx, w, err, "quiz")
		return
	}

	attempts, err := h.progress.ListQuizAttempts(ctx, id)
	if err != nil {
		h.fail(ctx, w, err, "attempt")
		return
	}
	h.send(w, http.StatusOK, "Quiz attempts retrieved successfully", "attempts", attempts)
}

// UserQuizAttempt обрабатывает GET /quiz/{quiz_id}/attempts/{user_id}: последняя попытка пользователя
func (h *QuizHandler) UserQuizAttempt(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	quizID, err := pathUUID(r, "quiz_id")
	if err != nil {
		h.fail(ctx, w, err, "attempt")
		return
	}
	userID, err := pathUUID(r, "user_id")
	if err != nil {
		h.fail(ctx, w, err, "attempt")
		return
	}

	attempt, err := h.progress.LatestAttempt(ctx, quizID, userID)
	if err != nil {
		h.fail(ctx, w, err, "attempt")
		return
	}
	h.send(w, http.StatusOK, "Quiz attempt retrieved successfully", "attempt", attempt)
}
