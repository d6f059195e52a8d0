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

// CourseHandler обрабатывает курсы и уроки
type CourseHandler struct {
	base
	courses  storage.CourseStorage
	progress storage.ProgressStorage
}

// NewCourseHandler создает handler курсов
func NewCourseHandler(logger *slog.Logger, courses storage.CourseStorage, progress storage.ProgressStorage) *CourseHandler {
	return &CourseHandler{
		base:     base{logger: logger},
		courses:  courses,
		progress: progress,
	}
}

// ListCourses обрабатывает GET /course
func (h *CourseHandler) ListCourses(w http.ResponseWriter, r *http.Request) {
	courses, err := h.courses.ListCourses(r.Context())
	if err != nil {
		h.fail(r.Context(), w, err, "course")
		return
	}
	h.send(w, http.StatusOK, "Courses retrieved successfully", "courses", courses)
}

// GetCourse обрабатывает GET /course/{course_id}
func (h *CourseHandler) GetCourse(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathUUID(r, "course_id")
	if err != nil {
		h.fail(ctx, w, err, "course")
		return
	}

	course, err := h.courses.GetCourse(ctx, id)
	if err != nil {
		h.fail(ctx, w, err, "course")
		return
	}
	h.send(w, http.StatusOK, "Course retrieved successfully", "course", course)
}

// CreateCourse обрабатывает POST /course
func (h *CourseHandler) CreateCourse(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.CreateCourseRequest
	if err := decodeJSON(r, &req); err != nil {
		h.fail(ctx, w, err, "course")
		return
	}

	course := &models.Course{
		ID:          uuid.New().String(),
		Title:       strings.TrimSpace(req.Title),
		Category:    strings.TrimSpace(req.Category),
		Description: strings.TrimSpace(req.Description),
		CreatedAt:   time.Now().UTC(),
	}
	if err := h.courses.CreateCourse(ctx, course); err != nil {
		h.fail(ctx, w, err, "course")
		return
	}

	h.logger.InfoContext(ctx, "course created", slog.String("course_id", course.ID))
	h.send(w, http.StatusCreated, "Course created successfully", "course", course)
}

// UpdateCourse обрабатывает PATCH /course/{course_id}
func (h *CourseHandler) UpdateCourse(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathUUID(r, "course_id")
	if err != nil {
		h.fail(ctx, w, err, "course")
		return
	}

	current, err := h.courses.GetCourse(ctx, id)
	if err != nil {
		h.fail(ctx, w, err, "course")
		return
	}

	applyPatch(h.base, w, r, courseSchema, current, "course", "course",
		func(ctx context.Context, upd *patch.Update) (*models.Course, error) {
			return h.courses.UpdateCourse(ctx, id, upd)
		})
}

// DeleteCourse обрабатывает DELETE /course/{course_id}
func (h *CourseHandler) DeleteCourse(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathUUID(r, "course_id")
	if err != nil {
		h.fail(ctx, w, err, "course")
		return
	}

	if err := h.courses.DeleteCourse(ctx, id); err != nil {
		h.fail(ctx, w, err, "course")
		return
	}

	h.logger.InfoContext(ctx, "course deleted", slog.String("course_id", id))
	h.send(w, http.StatusOK, "Course deleted successfully", "", nil)
}

// CourseLessons обрабатывает GET /course/{course_id}/lessons
func (h *CourseHandler) CourseLessons(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathUUID(r, "course_id")
	if err != nil {
		h.fail(ctx, w, err, "course")
		return
	}

	// 404 для несуществующего курса, а не пустой список
	if _, err := h.courses.GetCourse(ctx, id); err != nil {
		h.fail(ctx, w, err, "course")
		return
	}

	lessons, err := h.courses.ListLessons(ctx, id)
	if err != nil {
		h.fail(ctx, w, err, "lesson")
		return
	}
	h.send(w, http.StatusOK, "Lessons retrieved successfully", "lessons", lessons)
}

// CourseUsers обрабатывает GET /course/{course_id}/users
func (h *CourseHandler) CourseUsers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathUUID(r, "course_id")
	if err != nil {
		h.fail(ctx, w, err, "course")
		return
	}

	if _, err := h.courses.GetCourse(ctx, id); err != nil {
		h.fail(ctx, w, err, "course")
		return
	}

	members, err := h.courses.ListCourseMembers(ctx, id)
	if err != nil {
		h.fail(ctx, w, err, "course")
		return
	}
	h.send(w, http.StatusOK, "Course users retrieved successfully", "users", members)
}
