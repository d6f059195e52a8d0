package sqlstore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/iudanet/learnhub/internal/models"
	"github.com/iudanet/learnhub/internal/server/patch"
	"github.com/iudanet/learnhub/internal/server/storage"
)

const (
	courseColumns = `course_id, title, category, description, created_at`
	lessonColumns = `lesson_id, title, content_documented, content_video, course_id, quiz_id, prerequisite_lesson_id, xp, created_at`
)

func scanCourse(row scanner) (*models.Course, error) {
	c := &models.Course{}
	if err := row.Scan(&c.ID, &c.Title, &c.Category, &c.Description, &c.CreatedAt); err != nil {
		return nil, err
	}
	return c, nil
}

func scanLesson(row scanner) (*models.Lesson, error) {
	l := &models.Lesson{}
	var video, quizID, prereq sql.NullString

	err := row.Scan(&l.ID, &l.Title, &l.ContentDocumented, &video, &l.CourseID, &quizID, &prereq, &l.XP, &l.CreatedAt)
	if err != nil {
		return nil, err
	}

	l.ContentVideo = nullString(video)
	l.QuizID = nullString(quizID)
	l.PrerequisiteLessonID = nullString(prereq)
	return l, nil
}

// CreateCourse creates a new course
func (s *Store) CreateCourse(ctx context.Context, course *models.Course) error {
	query := `INSERT INTO courses (` + courseColumns + `) VALUES (?, ?, ?, ?, ?)`

	_, err := s.db.ExecContext(ctx, s.rebind(query),
		course.ID, course.Title, course.Category, course.Description, course.CreatedAt)
	if err != nil {
		return s.wrap(err, "failed to insert course")
	}

	return nil
}

// GetCourse retrieves course by ID
func (s *Store) GetCourse(ctx context.Context, courseID string) (*models.Course, error) {
	query := `SELECT ` + courseColumns + ` FROM courses WHERE course_id = ?`

	course, err := scanCourse(s.db.QueryRowContext(ctx, s.rebind(query), courseID))
	if err != nil {
		return nil, s.wrap(err, "failed to get course")
	}

	return course, nil
}

// ListCourses returns all courses
func (s *Store) ListCourses(ctx context.Context) ([]*models.Course, error) {
	query := `SELECT ` + courseColumns + ` FROM courses ORDER BY created_at, course_id`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}
	defer rows.Close()

	courses := make([]*models.Course, 0)
	for rows.Next() {
		c, err := scanCourse(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan course: %w", err)
		}
		courses = append(courses, c)
	}

	return courses, rows.Err()
}

// UpdateCourse applies a partial update
func (s *Store) UpdateCourse(ctx context.Context, courseID string, upd *patch.Update) (*models.Course, error) {
	query, args, err := s.updateQuery("courses", "course_id", courseColumns, upd, courseID)
	if err != nil {
		return nil, err
	}

	course, err := scanCourse(s.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, s.wrap(err, "failed to update course")
	}

	return course, nil
}

// DeleteCourse deletes course and, by cascade, its lessons and enrollments
func (s *Store) DeleteCourse(ctx context.Context, courseID string) error {
	return s.execAffectingOne(ctx, `DELETE FROM courses WHERE course_id = ?`, storage.ErrNotFound, courseID)
}

// ListCourseMembers returns users enrolled into the course
func (s *Store) ListCourseMembers(ctx context.Context, courseID string) ([]*models.CourseMember, error) {
	query := `
		SELECT u.user_id, u.username, u.email, u.fullname, e.enrolled_at
		FROM enrollments e
		JOIN users u ON u.user_id = e.user_id
		WHERE e.course_id = ?
		ORDER BY e.enrolled_at, u.user_id
	`

	rows, err := s.db.QueryContext(ctx, s.rebind(query), courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to list course members: %w", err)
	}
	defer rows.Close()

	members := make([]*models.CourseMember, 0)
	for rows.Next() {
		m := &models.CourseMember{}
		if err := rows.Scan(&m.UserID, &m.Username, &m.Email, &m.Fullname, &m.EnrolledAt); err != nil {
			return nil, fmt.Errorf("failed to scan course member: %w", err)
		}
		members = append(members, m)
	}

	return members, rows.Err()
}

// CreateLesson creates a new lesson
func (s *Store) CreateLesson(ctx context.Context, lesson *models.Lesson) error {
	query := `INSERT INTO lessons (` + lessonColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := s.db.ExecContext(ctx, s.rebind(query),
		lesson.ID,
		lesson.Title,
		lesson.ContentDocumented,
		stringOrNil(lesson.ContentVideo),
		lesson.CourseID,
		stringOrNil(lesson.QuizID),
		stringOrNil(lesson.PrerequisiteLessonID),
		lesson.XP,
		lesson.CreatedAt,
	)
	if err != nil {
		return s.wrap(err, "failed to insert lesson")
	}

	return nil
}

// GetLesson retrieves lesson by ID
func (s *Store) GetLesson(ctx context.Context, lessonID string) (*models.Lesson, error) {
	query := `SELECT ` + lessonColumns + ` FROM lessons WHERE lesson_id = ?`

	lesson, err := scanLesson(s.db.QueryRowContext(ctx, s.rebind(query), lessonID))
	if err != nil {
		return nil, s.wrap(err, "failed to get lesson")
	}

	return lesson, nil
}

// ListLessons returns all lessons or lessons of one course
func (s *Store) ListLessons(ctx context.Context, courseID string) ([]*models.Lesson, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if courseID == "" {
		rows, err = s.db.QueryContext(ctx, `SELECT `+lessonColumns+` FROM lessons ORDER BY created_at, lesson_id`)
	} else {
		query := `SELECT ` + lessonColumns + ` FROM lessons WHERE course_id = ? ORDER BY created_at, lesson_id`
		rows, err = s.db.QueryContext(ctx, s.rebind(query), courseID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list lessons: %w", err)
	}
	defer rows.Close()

	lessons := make([]*models.Lesson, 0)
	for rows.Next() {
		l, err := scanLesson(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan lesson: %w", err)
		}
		lessons = append(lessons, l)
	}

	return lessons, rows.Err()
}

// UpdateLesson applies a partial update
func (s *Store) UpdateLesson(ctx context.Context, lessonID string, upd *patch.Update) (*models.Lesson, error) {
	query, args, err := s.updateQuery("lessons", "lesson_id", lessonColumns, upd, lessonID)
	if err != nil {
		return nil, err
	}

	lesson, err := scanLesson(s.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, s.wrap(err, "failed to update lesson")
	}

	return lesson, nil
}

// DeleteLesson deletes lesson by ID
func (s *Store) DeleteLesson(ctx context.Context, lessonID string) error {
	return s.execAffectingOne(ctx, `DELETE FROM lessons WHERE lesson_id = ?`, storage.ErrNotFound, lessonID)
}
