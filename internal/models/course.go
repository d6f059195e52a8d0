package models

import "time"

// Course представляет курс
type Course struct {
	CreatedAt   time.Time `json:"created_at"`
	ID          string    `json:"course_id"`
	Title       string    `json:"title"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
}

// Lesson представляет урок внутри курса
type Lesson struct {
	CreatedAt            time.Time `json:"created_at"`
	ContentVideo         *string   `json:"content_video,omitempty"`          // ссылка на видео
	QuizID               *string   `json:"quiz_id,omitempty"`                // квиз по итогам урока
	PrerequisiteLessonID *string   `json:"prerequisite_lesson_id,omitempty"` // урок, который нужно пройти раньше
	ID                   string    `json:"lesson_id"`
	CourseID             string    `json:"course_id"`
	Title                string    `json:"title"`
	ContentDocumented    string    `json:"content_documented"` // текстовое содержимое урока
	XP                   int64     `json:"xp"`
}
