package models

import "time"

// Статусы прохождения урока
const (
	ProgressInProgress = "in_progress"
	ProgressCompleted  = "completed"
)

// Enrollment связывает пользователя с курсом
type Enrollment struct {
	EnrolledAt time.Time `json:"enrolled_at"`
	Course     *Course   `json:"course,omitempty"` // заполняется при чтении списка
	UserID     string    `json:"user_id"`
	CourseID   string    `json:"course_id"`
}

// LessonProgress хранит статус прохождения урока пользователем
type LessonProgress struct {
	UpdatedAt time.Time `json:"updated_at"`
	UserID    string    `json:"user_id"`
	LessonID  string    `json:"lesson_id"`
	Title     string    `json:"title"` // название урока, заполняется при чтении
	Status    string    `json:"status"`
}

// QuizAttempt представляет одну попытку прохождения квиза
type QuizAttempt struct {
	AttemptedAt time.Time `json:"attempted_at"`
	ID          string    `json:"attempt_id"`
	UserID      string    `json:"user_id"`
	QuizID      string    `json:"quiz_id"`
	Score       int64     `json:"score"`
	Passed      bool      `json:"passed"`
}

// UserSkill представляет навык, полученный пользователем
type UserSkill struct {
	AcquiredAt time.Time `json:"acquired_at"`
	Skill      *Skill    `json:"skill,omitempty"` // заполняется при чтении списка
	UserID     string    `json:"user_id"`
	SkillID    int64     `json:"skill_id"`
}

// CourseMember представляет участника курса для админского списка
type CourseMember struct {
	EnrolledAt time.Time `json:"enrolled_at"`
	UserID     string    `json:"user_id"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	Fullname   string    `json:"fullname"`
}
