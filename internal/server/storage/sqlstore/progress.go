package sqlstore

import (
	"context"
	"fmt"
	"time"

	"github.com/iudanet/learnhub/internal/models"
	"github.com/iudanet/learnhub/internal/server/storage"
)

const attemptColumns = `attempt_id, user_id, quiz_id, score, passed, attempted_at`

func scanAttempt(row scanner) (*models.QuizAttempt, error) {
	a := &models.QuizAttempt{}
	if err := row.Scan(&a.ID, &a.UserID, &a.QuizID, &a.Score, &a.Passed, &a.AttemptedAt); err != nil {
		return nil, err
	}
	return a, nil
}

// Enroll enrolls user into course
func (s *Store) Enroll(ctx context.Context, userID, courseID string) (*models.Enrollment, error) {
	e := &models.Enrollment{
		UserID:     userID,
		CourseID:   courseID,
		EnrolledAt: time.Now().UTC(),
	}

	_, err := s.db.ExecContext(ctx, s.rebind(`INSERT INTO enrollments (user_id, course_id, enrolled_at) VALUES (?, ?, ?)`),
		e.UserID, e.CourseID, e.EnrolledAt)
	if err != nil {
		return nil, s.wrap(err, "failed to enroll")
	}

	return e, nil
}

// ListEnrollments returns user's courses
func (s *Store) ListEnrollments(ctx context.Context, userID string) ([]*models.Enrollment, error) {
	query := `
		SELECT e.user_id, e.enrolled_at, c.course_id, c.title, c.category, c.description, c.created_at
		FROM enrollments e
		JOIN courses c ON c.course_id = e.course_id
		WHERE e.user_id = ?
		ORDER BY e.enrolled_at, c.course_id
	`

	rows, err := s.db.QueryContext(ctx, s.rebind(query), userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list enrollments: %w", err)
	}
	defer rows.Close()

	enrollments := make([]*models.Enrollment, 0)
	for rows.Next() {
		e := &models.Enrollment{Course: &models.Course{}}
		err := rows.Scan(&e.UserID, &e.EnrolledAt,
			&e.Course.ID, &e.Course.Title, &e.Course.Category, &e.Course.Description, &e.Course.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan enrollment: %w", err)
		}
		e.CourseID = e.Course.ID
		enrollments = append(enrollments, e)
	}

	return enrollments, rows.Err()
}

// StartLesson creates an in_progress record
func (s *Store) StartLesson(ctx context.Context, userID, lessonID string) (*models.LessonProgress, error) {
	p := &models.LessonProgress{
		UserID:    userID,
		LessonID:  lessonID,
		Status:    models.ProgressInProgress,
		UpdatedAt: time.Now().UTC(),
	}

	_, err := s.db.ExecContext(ctx,
		s.rebind(`INSERT INTO lesson_progress (user_id, lesson_id, status, updated_at) VALUES (?, ?, ?, ?)`),
		p.UserID, p.LessonID, p.Status, p.UpdatedAt)
	if err != nil {
		return nil, s.wrap(err, "failed to start lesson")
	}

	return p, nil
}

// SetLessonStatus updates progress status
func (s *Store) SetLessonStatus(ctx context.Context, userID, lessonID, status string) (*models.LessonProgress, error) {
	query := `
		UPDATE lesson_progress SET status = ?, updated_at = ?
		WHERE user_id = ? AND lesson_id = ?
		RETURNING user_id, lesson_id, status, updated_at
	`

	p := &models.LessonProgress{}
	err := s.db.QueryRowContext(ctx, s.rebind(query), status, time.Now().UTC(), userID, lessonID).
		Scan(&p.UserID, &p.LessonID, &p.Status, &p.UpdatedAt)
	if err != nil {
		return nil, s.wrap(err, "failed to update lesson progress")
	}

	return p, nil
}

// GetLessonProgress returns progress of one lesson
func (s *Store) GetLessonProgress(ctx context.Context, userID, lessonID string) (*models.LessonProgress, error) {
	query := `
		SELECT p.user_id, p.lesson_id, l.title, p.status, p.updated_at
		FROM lesson_progress p
		JOIN lessons l ON l.lesson_id = p.lesson_id
		WHERE p.user_id = ? AND p.lesson_id = ?
	`

	p := &models.LessonProgress{}
	err := s.db.QueryRowContext(ctx, s.rebind(query), userID, lessonID).
		Scan(&p.UserID, &p.LessonID, &p.Title, &p.Status, &p.UpdatedAt)
	if err != nil {
		return nil, s.wrap(err, "failed to get lesson progress")
	}

	return p, nil
}

// ListLessonProgress returns all lesson progress of a user
func (s *Store) ListLessonProgress(ctx context.Context, userID string) ([]*models.LessonProgress, error) {
	query := `
		SELECT p.user_id, p.lesson_id, l.title, p.status, p.updated_at
		FROM lesson_progress p
		JOIN lessons l ON l.lesson_id = p.lesson_id
		WHERE p.user_id = ?
		ORDER BY p.updated_at, p.lesson_id
	`

	rows, err := s.db.QueryContext(ctx, s.rebind(query), userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list lesson progress: %w", err)
	}
	defer rows.Close()

	list := make([]*models.LessonProgress, 0)
	for rows.Next() {
		p := &models.LessonProgress{}
		if err := rows.Scan(&p.UserID, &p.LessonID, &p.Title, &p.Status, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan lesson progress: %w", err)
		}
		list = append(list, p)
	}

	return list, rows.Err()
}

// RecordAttempt stores a quiz attempt
func (s *Store) RecordAttempt(ctx context.Context, a *models.QuizAttempt) error {
	query := `INSERT INTO quiz_attempts (` + attemptColumns + `) VALUES (?, ?, ?, ?, ?, ?)`

	_, err := s.db.ExecContext(ctx, s.rebind(query), a.ID, a.UserID, a.QuizID, a.Score, a.Passed, a.AttemptedAt)
	if err != nil {
		return s.wrap(err, "failed to record attempt")
	}

	return nil
}

func (s *Store) listAttempts(ctx context.Context, where string, arg string) ([]*models.QuizAttempt, error) {
	query := `SELECT ` + attemptColumns + ` FROM quiz_attempts WHERE ` + where + ` = ? ORDER BY attempted_at DESC, attempt_id`

	rows, err := s.db.QueryContext(ctx, s.rebind(query), arg)
	if err != nil {
		return nil, fmt.Errorf("failed to list attempts: %w", err)
	}
	defer rows.Close()

	attempts := make([]*models.QuizAttempt, 0)
	for rows.Next() {
		a, err := scanAttempt(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attempt: %w", err)
		}
		attempts = append(attempts, a)
	}

	return attempts, rows.Err()
}

// ListUserAttempts returns user's attempts, newest first
func (s *Store) ListUserAttempts(ctx context.Context, userID string) ([]*models.QuizAttempt, error) {
	return s.listAttempts(ctx, "user_id", userID)
}

// ListQuizAttempts returns all attempts of a quiz, newest first
func (s *Store) ListQuizAttempts(ctx context.Context, quizID string) ([]*models.QuizAttempt, error) {
	return s.listAttempts(ctx, "quiz_id", quizID)
}

// LatestAttempt returns the newest attempt of a user for a quiz
func (s *Store) LatestAttempt(ctx context.Context, quizID, userID string) (*models.QuizAttempt, error) {
	query := `
		SELECT ` + attemptColumns + ` FROM quiz_attempts
		WHERE quiz_id = ? AND user_id = ?
		ORDER BY attempted_at DESC, attempt_id
		LIMIT 1
	`

	a, err := scanAttempt(s.db.QueryRowContext(ctx, s.rebind(query), quizID, userID))
	if err != nil {
		return nil, s.wrap(err, "failed to get attempt")
	}

	return a, nil
}

// AddUserSkill grants a skill to a user
func (s *Store) AddUserSkill(ctx context.Context, userID string, skillID int64) (*models.UserSkill, error) {
	us := &models.UserSkill{
		UserID:     userID,
		SkillID:    skillID,
		AcquiredAt: time.Now().UTC(),
	}

	_, err := s.db.ExecContext(ctx, s.rebind(`INSERT INTO user_skills (user_id, skill_id, acquired_at) VALUES (?, ?, ?)`),
		us.UserID, us.SkillID, us.AcquiredAt)
	if err != nil {
		return nil, s.wrap(err, "failed to add user skill")
	}

	return us, nil
}

// RemoveUserSkill removes a skill from a user
func (s *Store) RemoveUserSkill(ctx context.Context, userID string, skillID int64) error {
	return s.execAffectingOne(ctx, `DELETE FROM user_skills WHERE user_id = ? AND skill_id = ?`,
		storage.ErrNotFound, userID, skillID)
}

// ListUserSkills returns the skills of a user
func (s *Store) ListUserSkills(ctx context.Context, userID string) ([]*models.UserSkill, error) {
	query := `
		SELECT us.user_id, us.acquired_at, sk.skill_id, sk.title, sk.xp
		FROM user_skills us
		JOIN skills sk ON sk.skill_id = us.skill_id
		WHERE us.user_id = ?
		ORDER BY us.acquired_at, sk.skill_id
	`

	rows, err := s.db.QueryContext(ctx, s.rebind(query), userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list user skills: %w", err)
	}
	defer rows.Close()

	list := make([]*models.UserSkill, 0)
	for rows.Next() {
		us := &models.UserSkill{Skill: &models.Skill{}}
		if err := rows.Scan(&us.UserID, &us.AcquiredAt, &us.Skill.ID, &us.Skill.Title, &us.Skill.XP); err != nil {
			return nil, fmt.Errorf("failed to scan user skill: %w", err)
		}
		us.SkillID = us.Skill.ID
		list = append(list, us)
	}

	return list, rows.Err()
}

var _ storage.Storage = (*Store)(nil)
