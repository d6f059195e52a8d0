package api

import "strings"

// CreateCourseRequest представляет запрос на создание курса
type CreateCourseRequest struct {
	Title       string `json:"title" validate:"required,min=3,max=100"`
	Category    string `json:"category" validate:"required,max=50"`
	Description string `json:"description" validate:"required,max=2000"`
}

// CreateLessonRequest представляет запрос на создание урока
type CreateLessonRequest struct {
	ContentVideo         *string `json:"content_video" validate:"omitempty,url"`
	QuizID               *string `json:"quiz_id" validate:"omitempty,uuid"`
	PrerequisiteLessonID *string `json:"prerequisite_lesson_id" validate:"omitempty,uuid"`
	Title                string  `json:"title" validate:"required,min=3,max=100"`
	ContentDocumented    string  `json:"content_documented" validate:"required"`
	CourseID             string  `json:"course_id" validate:"required,uuid"`
	XP                   int64   `json:"xp" validate:"gte=0"`
}

// Normalize обрезает пробелы в необязательных полях; пустая строка означает null
func (r *CreateLessonRequest) Normalize() {
	r.ContentVideo = emptyToNil(r.ContentVideo)
	r.QuizID = emptyToNil(r.QuizID)
	r.PrerequisiteLessonID = emptyToNil(r.PrerequisiteLessonID)
}

func emptyToNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

// CreateQuizRequest представляет запрос на создание квиза
type CreateQuizRequest struct {
	Title        string `json:"title" validate:"required,min=3,max=100"`
	PassingScore int64  `json:"passing_score" validate:"gte=0,ltefield=TotalScore"`
	TotalScore   int64  `json:"total_score" validate:"gt=0"`
	XPReward     int64  `json:"xp_reward" validate:"gte=0"`
	TimeLimit    int64  `json:"time_limit" validate:"gte=0"` // в минутах, 0 - без ограничения
}

// CreateQuestionRequest представляет запрос на создание вопроса
type CreateQuestionRequest struct {
	Title      string `json:"title" validate:"required,min=3,max=500"`
	Difficulty string `json:"difficulty" validate:"omitempty,oneof=beginner intermediate advanced"`
}

// CreateOptionRequest представляет запрос на создание варианта ответа
type CreateOptionRequest struct {
	OptionText string `json:"option_text" validate:"required,max=500"`
	IsCorrect  bool   `json:"is_correct"`
}

// CreateSkillRequest представляет запрос на создание навыка
type CreateSkillRequest struct {
	Title string `json:"title" validate:"required,min=2,max=100"`
	XP    int64  `json:"xp" validate:"gte=0"`
}
