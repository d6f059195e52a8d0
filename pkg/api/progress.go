package api

import "time"

// QuizAttemptRequest представляет результат прохождения квиза
type QuizAttemptRequest struct {
	Score *int64 `json:"score" validate:"required,gte=0"`
}

// LessonProgressRequest представляет изменение статуса урока
type LessonProgressRequest struct {
	Status string `json:"status" validate:"required,oneof=in_progress completed"`
}

// PhotoUploadRequest представляет запрос на загрузку аватара
type PhotoUploadRequest struct {
	ContentType string `json:"content_type" validate:"required,oneof=image/png image/jpeg image/webp"`
}

// PhotoUploadResponse содержит presigned URL для загрузки аватара напрямую в S3
type PhotoUploadResponse struct {
	ExpiresAt time.Time `json:"expires_at"`
	UploadURL string    `json:"upload_url"` // PUT сюда
	PhotoURL  string    `json:"photo_url"`  // публичный адрес после загрузки
	Success   bool      `json:"success"`
	Message   string    `json:"message"`
}
