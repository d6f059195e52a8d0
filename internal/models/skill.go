package models

// Skill представляет навык. В отличие от остальных сущностей ключ целочисленный.
type Skill struct {
	Title string `json:"title"`
	ID    int64  `json:"skill_id"`
	XP    int64  `json:"xp"`
}
