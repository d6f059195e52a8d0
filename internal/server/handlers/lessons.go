package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/iudanet/learnhub/internal/models"
	"github.com/iudanet/learnhub/internal/server/jwt"
	"github.com/iudanet/learnhub/internal/server/patch"
	"github.com/iudanet/learnhub/internal/server/storage"
	"github.com/iudanet/learnhub/internal/validation"
	"github.com/iudanet/learnhub/pkg/api"
)

var errSelfPrerequisite = &validation.Error{
	Field:   "prerequisite_lesson_id",
	Rule:    "nefield",
	Message: "cannot reference the lesson itself",
}

var errPrerequisiteCycle = &validation.Error{
	Field:   "prerequisite_lesson_id",
	Rule:    "acyclic",
	Message: "would create a prerequisite cycle",
}

// prerequisiteCycle сообщает, приводит ли цепочка prerequisite от start обратно к lessonID
func prerequisiteCycle(ctx context.Context, courses storage.CourseStorage, lessonID, start string) (bool, error) {
	if start == lessonID {
		return false, errSelfPrerequisite
	}

	seen := make(map[string]bool)
	for next := start; next != ""; {
		if next == lessonID {
			return true, nil
		}
		if seen[next] {
			return false, nil
		}
		seen[next] = true

		lesson, err := courses.GetLesson(ctx, next)
		if errors.Is(err, storage.ErrNotFound) {
			// несуществующий урок отклонит внешний ключ
			return false, nil
		}
		if err != nil {
			return false, err
		}

		next = ""
		if lesson.PrerequisiteLessonID != nil {
			next = *lesson.PrerequisiteLessonID
		}
	}
	return false, nil
}

// prerequisiteMet сообщает, может ли identity открыть урок.
// Администраторы проходят всегда; остальным нужен завершенный prerequisite урок.
func prerequisiteMet(ctx context.Context, progress storage.ProgressStorage, id *jwt.Identity, lesson *models.Lesson) (bool, error) {
	if lesson.PrerequisiteLessonID == nil || id.Role == models.RoleAdmin {
		return true, nil
	}

	p, err := progress.GetLessonProgress(ctx, id.ID, *lesson.PrerequisiteLessonID)
	if errors.Is(err, storage.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return p.Status == models.ProgressCompleted, nil
}

// ListLessons обрабатывает GET /lesson
func (h *CourseHandler) ListLessons(w http.ResponseWriter, r *http.Request) {
	lessons, err := h.courses.ListLessons(r.Context(), "")
	if err != nil {
		h.fail(r.Context(), w, err, "lesson")
		return
	}
	h.send(w, http.StatusOK, "Lessons retrieved successfully", "lessons", lessons)
}

// GetLesson обрабатывает GET /lesson/{lesson_id}
func (h *CourseHandler) GetLesson(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	ident, ok := h.identity(w, r)
	if !ok {
		return
	}

	id, err := pathUUID(r, "lesson_id")
	if err != nil {
		h.fail(ctx, w, err, "lesson")
		return
	}

	lesson, err := h.courses.GetLesson(ctx, id)
	if err != nil {
		h.fail(ctx, w, err, "lesson")
		return
	}

	met, err := prerequisiteMet(ctx, h.progress, ident, lesson)
	if err != nil {
		h.fail(ctx, w, err, "lesson")
		return
	}
	if !met {
		h.sendError(w, "Complete the prerequisite lesson first", http.StatusForbidden)
		return
	}

	h.send(w, http.StatusOK, "Lesson retrieved successfully", "lesson", lesson)
}

// CreateLesson обрабатывает POST /lesson
func (h *CourseHandler) CreateLesson(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.CreateLessonRequest
	if err := decodeJSON(r, &req); err != nil {
		h.fail(ctx, w, err, "lesson")
		return
	}

	lesson := &models.Lesson{
		ID:                   uuid.New().String(),
		CourseID:             req.CourseID,
		Title:                strings.TrimSpace(req.Title),
		ContentDocumented:    req.ContentDocumented,
		ContentVideo:         req.ContentVideo,
		QuizID:               req.QuizID,
		PrerequisiteLessonID: req.PrerequisiteLessonID,
		XP:                   req.XP,
		CreatedAt:            time.Now().UTC(),
	}
	if err := h.courses.CreateLesson(ctx, lesson); err != nil {
		h.fail(ctx, w, err, "lesson")
		return
	}

	h.logger.InfoContext(ctx, "lesson created",
		slog.String("lesson_id", lesson.ID),
		slog.String("course_id", lesson.CourseID))
	h.send(w, http.StatusCreated, "Lesson created successfully", "lesson", lesson)
}

// UpdateLesson обрабатывает PATCH /lesson/{lesson_id}
func (h *CourseHandler) UpdateLesson(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathUUID(r, "lesson_id")
	if err != nil {
		h.fail(ctx, w, err, "lesson")
		return
	}

	current, err := h.courses.GetLesson(ctx, id)
	if err != nil {
		h.fail(ctx, w, err, "lesson")
		return
	}

	applyPatch(h.base, w, r, lessonSchema, current, "lesson", "lesson",
		func(ctx context.Context, upd *patch.Update) (*models.Lesson, error) {
			v, _ := upd.Value("prerequisite_lesson_id")
			if target, ok := v.(string); ok && target != "" {
				cycle, err := prerequisiteCycle(ctx, h.courses, id, target)
				if err != nil {
					return nil, err
				}
				if cycle {
					return nil, errPrerequisiteCycle
				}
			}
			return h.courses.UpdateLesson(ctx, id, upd)
		})
}

// DeleteLesson обрабатывает DELETE /lesson/{lesson_id}
func (h *CourseHandler) DeleteLesson(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathUUID(r, "lesson_id")
	if err != nil {
		h.fail(ctx, w, err, "lesson")
		return
	}

	if err := h.courses.DeleteLesson(ctx, id); err != nil {
		h.fail(ctx, w, err, "lesson")
		return
	}

	h.logger.InfoContext(ctx, "lesson deleted", slog.String("lesson_id", id))
	h.send(w, http.StatusOK, "Lesson deleted successfully", "", nil)
}
