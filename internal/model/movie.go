package model

import (
	"time"
)

// Movie 电影模型（固定片库，管理员维护，所有人可读）
type Movie struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Title       string    `json:"title" gorm:"size:200;not null"`
	Director    string    `json:"director" gorm:"size:100"`
	ReleaseDate time.Time `json:"release_date"`
	ImagePath   string    `json:"image_path" gorm:"size:255"`
	CreatedAt   time.Time `json:"created_at"`
}
