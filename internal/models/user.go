package models

import "time"

// Роли пользователей
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User представляет пользователя платформы
type User struct {
	CreatedAt     time.Time `json:"created_at"`               // время регистрации
	PersonalPhoto *string   `json:"personal_photo,omitempty"` // URL аватара
	ID            string    `json:"user_id"`                  // UUID пользователя
	Email         string    `json:"email"`                    // уникальный email (lowercase)
	Username      string    `json:"username"`                 // уникальный username
	HashedPass    string    `json:"-"`                        // bcrypt хеш пароля, никогда не отдаётся наружу
	Fullname      string    `json:"fullname"`                 // полное имя
	Role          string    `json:"role"`                     // admin | user
	XP            int64     `json:"xp"`                       // накопленный опыт
	Rank          int64     `json:"rank"`                     // ранг
	Streak        int64     `json:"streak"`                   // серия дней подряд
}
