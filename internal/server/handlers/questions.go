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
	"github.com/iudanet/learnhub/pkg/api"
)

// ListQuestions обрабатывает GET /question
func (h *QuizHandler) ListQuestions(w http.ResponseWriter, r *http.Request) {
	questions, err := h.quizzes.ListQuestions(r.Context())
	if err != nil {
		h.fail(r.Context(), w, err, "question")
		return
	}
	h.send(w, http.StatusOK, "Questions retrieved successfully", "questions", questions)
}

// GetQuestion обрабатывает GET /question/{question_id}
func (h *QuizHandler) GetQuestion(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathUUID(r, "question_id")
	if err != nil {
		h.fail(ctx, w, err, "question")
		return
	}

	question, err := h.quizzes.GetQuestion(ctx, id)
	if err != nil {
		h.fail(ctx, w, err, "question")
		return
	}
	h.send(w, http.StatusOK, "Question retrieved successfully", "question", question)
}

// CreateQuestion обрабатывает POST /question
func (h *QuizHandler) CreateQuestion(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.CreateQuestionRequest
	if err := decodeJSON(r, &req); err != nil {
		h.fail(ctx, w, err, "question")
		return
	}

	difficulty := req.Difficulty
	if difficulty == "" {
		difficulty = models.DifficultyBeginner
	}

	question := &models.Question{
		ID:         uuid.New().String(),
		Title:      strings.TrimSpace(req.Title),
		Difficulty: difficulty,
		CreatedAt:  time.Now().UTC(),
	}
	if err := h.quizzes.CreateQuestion(ctx, question); err != nil {
		h.fail(ctx, w, err, "question")
		return
	}

	h.logger.InfoContext(ctx, "question created", slog.String("question_id", question.ID))
	h.send(w, http.StatusCreated, "Question created successfully", "question", question)
}

// UpdateQuestion обрабатывает PATCH /question/{question_id}
func (h *QuizHandler) UpdateQuestion(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathUUID(r, "question_id")
	if err != nil {
		h.fail(ctx, w, err, "question")
		return
	}

	current, err := h.quizzes.GetQuestion(ctx, id)
	if err != nil {
		h.fail(ctx, w, err, "question")
		return
	}

	applyPatch(h.base, w, r, questionSchema, current, "question", "question",
		func(ctx context.Context, upd *patch.Update) (*models.Question, error) {
			return h.quizzes.UpdateQuestion(ctx, id, upd)
		})
}

// DeleteQuestion обрабатывает DELETE /question/{question_id}
func (h *QuizHandler) DeleteQuestion(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathUUID(r, "question_id")
	if err != nil {
		h.fail(ctx, w, err, "question")
		return
	}

	if err := h.quizzes.DeleteQuestion(ctx, id); err != nil {
		h.fail(ctx, w, err, "question")
		return
	}
	h.send(w, http.StatusOK, "Question deleted successfully", "", nil)
}

// ListOptions обрабатывает GET /question/{question_id}/options
func (h *QuizHandler) ListOptions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathUUID(r, "question_id")
	if err != nil {
		h.fail(ctx, w, err, "question")
		return
	}

	if _, err := h.quizzes.GetQuestion(ctx, id); err != nil {
		h.fail(ctx, w, err, "question")
		return
	}

	options, err := h.quizzes.ListOptions(ctx, id)
	if err != nil {
		h.fail(ctx, w, err, "option")
		return
	}
	h.send(w, http.StatusOK, "Options retrieved successfully", "options", options)
}

// CreateOption обрабатывает POST /question/{question_id}/options
func (h *QuizHandler) CreateOption(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	questionID, err := pathUUID(r, "question_id")
	if err != nil {
		h.fail(ctx, w, err, "option")
		return
	}

	var req api.CreateOptionRequest
	if err := decodeJSON(r, &req); err != nil {
		h.fail(ctx, w, err, "option")
		return
	}

	option := &models.Option{
		ID:         uuid.New().String(),
		QuestionID: questionID,
		OptionText: strings.TrimSpace(req.OptionText),
		IsCorrect:  req.IsCorrect,
	}
	if err := h.quizzes.CreateOption(ctx, option); err != nil {
		h.fail(ctx, w, err, "option")
		return
	}
	h.send(w, http.StatusCreated, "Option created successfully", "option", option)
}

// UpdateOption обрабатывает PATCH /question/options/{option_id}
func (h *QuizHandler) UpdateOption(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathUUID(r, "option_id")
	if err != nil {
		h.fail(ctx, w, err, "option")
		return
	}

	current, err := h.quizzes.GetOption(ctx, id)
	if err != nil {
		h.fail(ctx, w, err, "option")
		return
	}

	applyPatch(h.base, w, r, optionSchema, current, "option", "option",
		func(ctx context.Context, upd *patch.Update) (*models.Option, error) {
			return h.quizzes.UpdateOption(ctx, id, upd)
		})
}

// DeleteOption обрабатывает DELETE /question/options/{option_id}
func (h *QuizHandler) DeleteOption(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathUUID(r, "option_id")
	if err != nil {
		h.fail(ctx, w, err, "option")
		return
	}

	if err := h.quizzes.DeleteOption(ctx, id); err != nil {
		h.fail(ctx, w, err, "option")
		return
	}
	h.send(w, http.StatusOK, "Option deleted successfully", "", nil)
}
