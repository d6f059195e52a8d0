package storage

import (
	"context"

	"github.com/iudanet/learnhub/internal/models"
	"github.com/iudanet/learnhub/internal/server/patch"
)

// QuizStorage defines interface for quizzes, the question bank and answer options
type QuizStorage interface {
	CreateQuiz(ctx context.Context, quiz *models.Quiz) error
	GetQuiz(ctx context.Context, quizID string) (*models.Quiz, error)
	ListQuizzes(ctx context.Context) ([]*models.Quiz, error)
	UpdateQuiz(ctx context.Context, quizID string, upd *patch.Update) (*models.Quiz, error)
	DeleteQuiz(ctx context.Context, quizID string) error

	// AddQuizQuestion links a question to a quiz
	// Returns ErrAlreadyExists if already linked, ErrReferenceNotFound if either side is missing
	AddQuizQuestion(ctx context.Context, quizID, questionID string) error
	RemoveQuizQuestion(ctx context.Context, quizID, questionID string) error
	ListQuizQuestions(ctx context.Context, quizID string) ([]*models.Question, error)

	// CreateQuestion returns ErrAlreadyExists (column title) on duplicate titles
	CreateQuestion(ctx context.Context, question *models.Question) error
	GetQuestion(ctx context.Context, questionID string) (*models.Question, error)
	ListQuestions(ctx context.Context) ([]*models.Question, error)
	UpdateQuestion(ctx context.Context, questionID string, upd *patch.Update) (*models.Question, error)
	DeleteQuestion(ctx context.Context, questionID string) error

	CreateOption(ctx context.Context, option *models.Option) error
	GetOption(ctx context.Context, optionID string) (*models.Option, error)
	ListOptions(ctx context.Context, questionID string) ([]*models.Option, error)
	UpdateOption(ctx context.Context, optionID string, upd *patch.Update) (*models.Option, error)
	DeleteOption(ctx context.Context, optionID string) error
}
