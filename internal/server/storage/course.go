package storage

import (
	"context"

	"github.com/iudanet/learnhub/internal/models"
	"github.com/iudanet/learnhub/internal/server/patch"
)

// CourseStorage defines interface for courses and lessons
type CourseStorage interface {
	CreateCourse(ctx context.Context, course *models.Course) error
	// GetCourse returns ErrNotFound if course doesn't exist
	GetCourse(ctx context.Context, courseID string) (*models.Course, error)
	ListCourses(ctx context.Context) ([]*models.Course, error)
	UpdateCourse(ctx context.Context, courseID string, upd *patch.Update) (*models.Course, error)
	// DeleteCourse removes the course and its lessons
	DeleteCourse(ctx context.Context, courseID string) error
	// ListCourseMembers returns users enrolled into the course
	ListCourseMembers(ctx context.Context, courseID string) ([]*models.CourseMember, error)

	// CreateLesson returns ErrReferenceNotFound if course, quiz or prerequisite doesn't exist
	CreateLesson(ctx context.Context, lesson *models.Lesson) error
	GetLesson(ctx context.Context, lessonID string) (*models.Lesson, error)
	// ListLessons returns all lessons, or lessons of one course when courseID is not empty
	ListLessons(ctx context.Context, courseID string) ([]*models.Lesson, error)
	UpdateLesson(ctx context.Context, lessonID string, upd *patch.Update) (*models.Lesson, error)
	DeleteLesson(ctx context.Context, lessonID string) error
}
