package storage

import (
	"context"

	"github.com/iudanet/learnhub/internal/models"
)

// ProgressStorage defines interface for the per-user junctions:
// enrollments, lesson progress, quiz attempts and acquired skills
type ProgressStorage interface {
	// Enroll returns ErrAlreadyExists if already enrolled, ErrReferenceNotFound if course is missing
	Enroll(ctx context.Context, userID, courseID string) (*models.Enrollment, error)
	ListEnrollments(ctx context.Context, userID string) ([]*models.Enrollment, error)

	// StartLesson creates an in_progress record
	StartLesson(ctx context.Context, userID, lessonID string) (*models.LessonProgress, error)
	// SetLessonStatus returns ErrNotFound if the lesson was never started
	SetLessonStatus(ctx context.Context, userID, lessonID, status string) (*models.LessonProgress, error)
	GetLessonProgress(ctx context.Context, userID, lessonID string) (*models.LessonProgress, error)
	ListLessonProgress(ctx context.Context, userID string) ([]*models.LessonProgress, error)

	RecordAttempt(ctx context.Context, attempt *models.QuizAttempt) error
	ListUserAttempts(ctx context.Context, userID string) ([]*models.QuizAttempt, error)
	ListQuizAttempts(ctx context.Context, quizID string) ([]*models.QuizAttempt, error)
	// LatestAttempt returns ErrNotFound if the user never attempted the quiz
	LatestAttempt(ctx context.Context, quizID, userID string) (*models.QuizAttempt, error)

	AddUserSkill(ctx context.Context, userID string, skillID int64) (*models.UserSkill, error)
	// RemoveUserSkill returns ErrNotFound if the user doesn't have the skill
	RemoveUserSkill(ctx context.Context, userID string, skillID int64) error
	ListUserSkills(ctx context.Context, userID string) ([]*models.UserSkill, error)
}

// Storage объединяет все хранилища сервера
type Storage interface {
	UserStorage
	CourseStorage
	QuizStorage
	SkillStorage
	ProgressStorage
	Close() error
}
