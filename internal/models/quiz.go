package models

import "time"

// Уровни сложности вопросов
const (
	DifficultyBeginner     = "beginner"
	DifficultyIntermediate = "intermediate"
	DifficultyAdvanced     = "advanced"
)

// Quiz представляет квиз
type Quiz struct {
	CreatedAt    time.Time `json:"created_at"`
	ID           string    `json:"quiz_id"`
	Title        string    `json:"title"`
	PassingScore int64     `json:"passing_score"`
	TotalScore   int64     `json:"total_score"`
	XPReward     int64     `json:"xp_reward"`
	TimeLimit    int64     `json:"time_limit"` // в минутах
}

// Question представляет вопрос из банка вопросов
type Question struct {
	CreatedAt  time.Time `json:"created_at"`
	ID         string    `json:"question_id"`
	Title      string    `json:"title"`
	Difficulty string    `json:"difficulty"`
}

// Option представляет вариант ответа на вопрос
type Option struct {
	ID         string `json:"option_id"`
	QuestionID string `json:"question_id"`
	OptionText string `json:"option_text"`
	IsCorrect  bool   `json:"is_correct"`
}
