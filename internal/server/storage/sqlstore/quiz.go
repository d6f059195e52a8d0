package sqlstore

import (
	"context"
	"fmt"

	"github.com/iudanet/learnhub/internal/models"
	"github.com/iudanet/learnhub/internal/server/patch"
	"github.com/iudanet/learnhub/internal/server/storage"
)

const (
	quizColumns     = `quiz_id, title, passing_score, total_score, xp_reward, time_limit, created_at`
	questionColumns = `question_id, title, difficulty, created_at`
	optionColumns   = `option_id, question_id, option_text, is_correct`
)

func scanQuiz(row scanner) (*models.Quiz, error) {
	q := &models.Quiz{}
	err := row.Scan(&q.ID, &q.Title, &q.PassingScore, &q.TotalScore, &q.XPReward, &q.TimeLimit, &q.CreatedAt)
	if err != nil {
		return nil, err
	}
	return q, nil
}

func scanQuestion(row scanner) (*models.Question, error) {
	q := &models.Question{}
	if err := row.Scan(&q.ID, &q.Title, &q.Difficulty, &q.CreatedAt); err != nil {
		return nil, err
	}
	return q, nil
}

func scanOption(row scanner) (*models.Option, error) {
	o := &models.Option{}
	if err := row.Scan(&o.ID, &o.QuestionID, &o.OptionText, &o.IsCorrect); err != nil {
		return nil, err
	}
	return o, nil
}

// CreateQuiz creates a new quiz
func (s *Store) CreateQuiz(ctx context.Context, quiz *models.Quiz) error {
	query := `INSERT INTO quizzes (` + quizColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?)`

	_, err := s.db.ExecContext(ctx, s.rebind(query),
		quiz.ID, quiz.Title, quiz.PassingScore, quiz.TotalScore, quiz.XPReward, quiz.TimeLimit, quiz.CreatedAt)
	if err != nil {
		return s.wrap(err, "failed to insert quiz")
	}

	return nil
}

// GetQuiz retrieves quiz by ID
func (s *Store) GetQuiz(ctx context.Context, quizID string) (*models.Quiz, error) {
	query := `SELECT ` + quizColumns + ` FROM quizzes WHERE quiz_id = ?`

	quiz, err := scanQuiz(s.db.QueryRowContext(ctx, s.rebind(query), quizID))
	if err != nil {
		return nil, s.wrap(err, "failed to get quiz")
	}

	return quiz, nil
}

// ListQuizzes returns all quizzes
func (s *Store) ListQuizzes(ctx context.Context) ([]*models.Quiz, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+quizColumns+` FROM quizzes ORDER BY created_at, quiz_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list quizzes: %w", err)
	}
	defer rows.Close()

	quizzes := make([]*models.Quiz, 0)
	for rows.Next() {
		q, err := scanQuiz(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan quiz: %w", err)
		}
		quizzes = append(quizzes, q)
	}

	return quizzes, rows.Err()
}

// UpdateQuiz applies a partial update
func (s *Store) UpdateQuiz(ctx context.Context, quizID string, upd *patch.Update) (*models.Quiz, error) {
	query, args, err := s.updateQuery("quizzes", "quiz_id", quizColumns, upd, quizID)
	if err != nil {
		return nil, err
	}

	quiz, err := scanQuiz(s.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, s.wrap(err, "failed to update quiz")
	}

	return quiz, nil
}

// DeleteQuiz deletes quiz by ID
func (s *Store) DeleteQuiz(ctx context.Context, quizID string) error {
	return s.execAffectingOne(ctx, `DELETE FROM quizzes WHERE quiz_id = ?`, storage.ErrNotFound, quizID)
}

// AddQuizQuestion links a question to a quiz
func (s *Store) AddQuizQuestion(ctx context.Context, quizID, questionID string) error {
	_, err := s.db.ExecContext(ctx, s.rebind(`INSERT INTO quiz_questions (quiz_id, question_id) VALUES (?, ?)`),
		quizID, questionID)
	if err != nil {
		return s.wrap(err, "failed to add question to quiz")
	}
	return nil
}

// RemoveQuizQuestion unlinks a question from a quiz
func (s *Store) RemoveQuizQuestion(ctx context.Context, quizID, questionID string) error {
	return s.execAffectingOne(ctx, `DELETE FROM quiz_questions WHERE quiz_id = ? AND question_id = ?`,
		storage.ErrNotFound, quizID, questionID)
}

// ListQuizQuestions returns the questions of a quiz
func (s *Store) ListQuizQuestions(ctx context.Context, quizID string) ([]*models.Question, error) {
	query := `
		SELECT q.question_id, q.title, q.difficulty, q.created_at
		FROM quiz_questions qq
		JOIN questions q ON q.question_id = qq.question_id
		WHERE qq.quiz_id = ?
		ORDER BY q.created_at, q.question_id
	`

	rows, err := s.db.QueryContext(ctx, s.rebind(query), quizID)
	if err != nil {
		return nil, fmt.Errorf("failed to list quiz questions: %w", err)
	}
	defer rows.Close()

	questions := make([]*models.Question, 0)
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan question: %w", err)
		}
		questions = append(questions, q)
	}

	return questions, rows.Err()
}

// CreateQuestion creates a new question
func (s *Store) CreateQuestion(ctx context.Context, question *models.Question) error {
	query := `INSERT INTO questions (` + questionColumns + `) VALUES (?, ?, ?, ?)`

	_, err := s.db.ExecContext(ctx, s.rebind(query),
		question.ID, question.Title, question.Difficulty, question.CreatedAt)
	if err != nil {
		return s.wrap(err, "failed to insert question")
	}

	return nil
}

// GetQuestion retrieves question by ID
func (s *Store) GetQuestion(ctx context.Context, questionID string) (*models.Question, error) {
	query := `SELECT ` + questionColumns + ` FROM questions WHERE question_id = ?`

	q, err := scanQuestion(s.db.QueryRowContext(ctx, s.rebind(query), questionID))
	if err != nil {
		return nil, s.wrap(err, "failed to get question")
	}

	return q, nil
}

// ListQuestions returns the whole question bank
func (s *Store) ListQuestions(ctx context.Context) ([]*models.Question, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+questionColumns+` FROM questions ORDER BY created_at, question_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}
	defer rows.Close()

	questions := make([]*models.Question, 0)
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan question: %w", err)
		}
		questions = append(questions, q)
	}

	return questions, rows.Err()
}

// UpdateQuestion applies a partial update
func (s *Store) UpdateQuestion(ctx context.Context, questionID string, upd *patch.Update) (*models.Question, error) {
	query, args, err := s.updateQuery("questions", "question_id", questionColumns, upd, questionID)
	if err != nil {
		return nil, err
	}

	q, err := scanQuestion(s.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, s.wrap(err, "failed to update question")
	}

	return q, nil
}

// DeleteQuestion deletes question together with its options
func (s *Store) DeleteQuestion(ctx context.Context, questionID string) error {
	return s.execAffectingOne(ctx, `DELETE FROM questions WHERE question_id = ?`, storage.ErrNotFound, questionID)
}

// CreateOption creates an answer option
func (s *Store) CreateOption(ctx context.Context, option *models.Option) error {
	query := `INSERT INTO question_options (` + optionColumns + `) VALUES (?, ?, ?, ?)`

	_, err := s.db.ExecContext(ctx, s.rebind(query),
		option.ID, option.QuestionID, option.OptionText, option.IsCorrect)
	if err != nil {
		return s.wrap(err, "failed to insert option")
	}

	return nil
}

// GetOption retrieves option by ID
func (s *Store) GetOption(ctx context.Context, optionID string) (*models.Option, error) {
	query := `SELECT ` + optionColumns + ` FROM question_options WHERE option_id = ?`

	o, err := scanOption(s.db.QueryRowContext(ctx, s.rebind(query), optionID))
	if err != nil {
		return nil, s.wrap(err, "failed to get option")
	}

	return o, nil
}

// ListOptions returns the options of a question
func (s *Store) ListOptions(ctx context.Context, questionID string) ([]*models.Option, error) {
	query := `SELECT ` + optionColumns + ` FROM question_options WHERE question_id = ? ORDER BY option_text, option_id`

	rows, err := s.db.QueryContext(ctx, s.rebind(query), questionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list options: %w", err)
	}
	defer rows.Close()

	options := make([]*models.Option, 0)
	for rows.Next() {
		o, err := scanOption(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan option: %w", err)
		}
		options = append(options, o)
	}

	return options, rows.Err()
}

// UpdateOption applies a partial update
func (s *Store) UpdateOption(ctx context.Context, optionID string, upd *patch.Update) (*models.Option, error) {
	query, args, err := s.updateQuery("question_options", "option_id", optionColumns, upd, optionID)
	if err != nil {
		return nil, err
	}

	o, err := scanOption(s.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, s.wrap(err, "failed to update option")
	}

	return o, nil
}

// DeleteOption deletes option by ID
func (s *Store) DeleteOption(ctx context.Context, optionID string) error {
	return s.execAffectingOne(ctx, `DELETE FROM question_options WHERE option_id = ?`, storage.ErrNotFound, optionID)
}
