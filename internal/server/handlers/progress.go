package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/iudanet/learnhub/internal/models"
	"github.com/iudanet/learnhub/internal/server/storage"
	"github.com/iudanet/learnhub/internal/validation"
	"github.com/iudanet/learnhub/pkg/api"
)

// ProgressHandler обрабатывает связи текущего пользователя: курсы, уроки, квизы и навыки
type ProgressHandler struct {
	base
	store storage.Storage
}

// NewProgressHandler создает handler прогресса
func NewProgressHandler(logger *slog.Logger, store storage.Storage) *ProgressHandler {
	return &ProgressHandler{base: base{logger: logger}, store: store}
}

// Enroll обрабатывает POST /user/courses/{course_id}
func (h *ProgressHandler) Enroll(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := h.identity(w, r)
	if !ok {
		return
	}
	courseID, err := pathUUID(r, "course_id")
	if err != nil {
		h.fail(ctx, w, err, "enrollment")
		return
	}

	enrollment, err := h.store.Enroll(ctx, id.ID, courseID)
	if err != nil {
		h.fail(ctx, w, err, "enrollment")
		return
	}

	h.logger.InfoContext(ctx, "user enrolled", slog.String("user_id", id.ID), slog.String("course_id", courseID))
	h.send(w, http.StatusCreated, "Enrolled successfully", "enrollment", enrollment)
}

// Courses обрабатывает GET /user/courses
func (h *ProgressHandler) Courses(w http.ResponseWriter, r *http.Request) {
	id, ok := h.identity(w, r)
	if !ok {
		return
	}

	enrollments, err := h.store.ListEnrollments(r.Context(), id.ID)
	if err != nil {
		h.fail(r.Context(), w, err, "enrollment")
		return
	}
	h.send(w, http.StatusOK, "Courses retrieved successfully", "courses", enrollments)
}

// StartLesson обрабатывает POST /user/lessons/{lesson_id}
func (h *ProgressHandler) StartLesson(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := h.identity(w, r)
	if !ok {
		return
	}
	lessonID, err := pathUUID(r, "lesson_id")
	if err != nil {
		h.fail(ctx, w, err, "lesson")
		return
	}

	lesson, err := h.store.GetLesson(ctx, lessonID)
	if err != nil {
		h.fail(ctx, w, err, "lesson")
		return
	}

	met, err := prerequisiteMet(ctx, h.store, id, lesson)
	if err != nil {
		h.fail(ctx, w, err, "lesson")
		return
	}
	if !met {
		h.sendError(w, "Complete the prerequisite lesson first", http.StatusForbidden)
		return
	}

	progress, err := h.store.StartLesson(ctx, id.ID, lessonID)
	if err != nil {
		h.fail(ctx, w, err, "lesson progress")
		return
	}
	h.send(w, http.StatusCreated, "Lesson started", "lesson", progress)
}

// UpdateLesson обрабатывает PATCH /user/lessons/{lesson_id}
func (h *ProgressHandler) UpdateLesson(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := h.identity(w, r)
	if !ok {
		return
	}
	lessonID, err := pathUUID(r, "lesson_id")
	if err != nil {
		h.fail(ctx, w, err, "lesson progress")
		return
	}

	var req api.LessonProgressRequest
	if err := decodeJSON(r, &req); err != nil {
		h.fail(ctx, w, err, "lesson progress")
		return
	}

	current, err := h.store.GetLessonProgress(ctx, id.ID, lessonID)
	if err != nil {
		h.fail(ctx, w, err, "lesson progress")
		return
	}
	if current.Status == req.Status {
		h.sendJSON(w, envelope{
			"success":   true,
			"message":   "No changes detected",
			"unchanged": map[string]string{"status": "Status is already the current one, nothing changed"},
			"lesson":    current,
		}, http.StatusOK)
		return
	}

	progress, err := h.store.SetLessonStatus(ctx, id.ID, lessonID, req.Status)
	if err != nil {
		h.fail(ctx, w, err, "lesson progress")
		return
	}
	h.send(w, http.StatusOK, "Lesson progress updated successfully", "lesson", progress)
}

// Lessons обрабатывает GET /user/lessons
func (h *ProgressHandler) Lessons(w http.ResponseWriter, r *http.Request) {
	id, ok := h.identity(w, r)
	if !ok {
		return
	}

	lessons, err := h.store.ListLessonProgress(r.Context(), id.ID)
	if err != nil {
		h.fail(r.Context(), w, err, "lesson progress")
		return
	}
	h.send(w, http.StatusOK, "Lessons retrieved successfully", "lessons", lessons)
}

// Lesson обрабатывает GET /user/lessons/{lesson_id}
func (h *ProgressHandler) Lesson(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := h.identity(w, r)
	if !ok {
		return
	}
	lessonID, err := pathUUID(r, "lesson_id")
	if err != nil {
		h.fail(ctx, w, err, "lesson progress")
		return
	}

	progress, err := h.store.GetLessonProgress(ctx, id.ID, lessonID)
	if err != nil {
		h.fail(ctx, w, err, "lesson progress")
		return
	}
	h.send(w, http.StatusOK, "Lesson progress retrieved successfully", "lesson", progress)
}

// Attempt обрабатывает POST /user/quizAttempts/{quiz_id}
// Баллы должны лежать в [0, total_score]; passed = score >= passing_score
func (h *ProgressHandler) Attempt(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := h.identity(w, r)
	if !ok {
		return
	}
	quizID, err := pathUUID(r, "quiz_id")
	if err != nil {
		h.fail(ctx, w, err, "quiz")
		return
	}

	var req api.QuizAttemptRequest
	if err := decodeJSON(r, &req); err != nil {
		h.fail(ctx, w, err, "attempt")
		return
	}

	quiz, err := h.store.GetQuiz(ctx, quizID)
	if err != nil {
		h.fail(ctx, w, err, "quiz")
		return
	}

	score := *req.Score
	if score > quiz.TotalScore {
		h.sendValidation(w, &validation.Error{
			Field:   "score",
			Rule:    "lte=" + itoa(quiz.TotalScore),
			Message: "must be less than or equal to " + itoa(quiz.TotalScore),
		})
		return
	}

	attempt := &models.QuizAttempt{
		ID:          uuid.New().String(),
		UserID:      id.ID,
		QuizID:      quizID,
		Score:       score,
		Passed:      score >= quiz.PassingScore,
		AttemptedAt: time.Now().UTC(),
	}
	if err := h.store.RecordAttempt(ctx, attempt); err != nil {
		h.fail(ctx, w, err, "attempt")
		return
	}

	h.logger.InfoContext(ctx, "quiz attempt recorded",
		slog.String("user_id", id.ID),
		slog.String("quiz_id", quizID),
		slog.Bool("passed", attempt.Passed))
	h.send(w, http.StatusCreated, "Quiz attempt recorded", "attempt", attempt)
}

// Attempts обрабатывает GET /user/quizAttempts
func (h *ProgressHandler) Attempts(w http.ResponseWriter, r *http.Request) {
	id, ok := h.identity(w, r)
	if !ok {
		return
	}

	attempts, err := h.store.ListUserAttempts(r.Context(), id.ID)
	if err != nil {
		h.fail(r.Context(), w, err, "attempt")
		return
	}
	h.send(w, http.StatusOK, "Quiz attempts retrieved successfully", "attempts", attempts)
}

// Skills обрабатывает GET /user/skills
func (h *ProgressHandler) Skills(w http.ResponseWriter, r *http.Request) {
	id, ok := h.identity(w, r)
	if !ok {
		return
	}

	skills, err := h.store.ListUserSkills(r.Context(), id.ID)
	if err != nil {
		h.fail(r.Context(), w, err, "skill")
		return
	}
	h.send(w, http.StatusOK, "Skills retrieved successfully", "skills", skills)
}

// AddSkill обрабатывает POST /user/skills/{skill_id}
func (h *ProgressHandler) AddSkill(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := h.identity(w, r)
	if !ok {
		return
	}
	skillID, err := pathInt64(r, "skill_id")
	if err != nil {
		h.fail(ctx, w, err, "skill")
		return
	}

	skill, err := h.store.AddUserSkill(ctx, id.ID, skillID)
	if err != nil {
		h.fail(ctx, w, err, "user skill")
		return
	}
	h.send(w, http.StatusCreated, "Skill added successfully", "skill", skill)
}

// RemoveSkill обрабатывает DELETE /user/skills/{skill_id}
func (h *ProgressHandler) RemoveSkill(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := h.identity(w, r)
	if !ok {
		return
	}
	skillID, err := pathInt64(r, "skill_id")
	if err != nil {
		h.fail(ctx, w, err, "skill")
		return
	}

	if err := h.store.RemoveUserSkill(ctx, id.ID, skillID); err != nil {
		h.fail(ctx, w, err, "user skill")
		return
	}
	h.send(w, http.StatusOK, "Skill removed successfully", "", nil)
}
