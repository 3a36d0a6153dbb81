package model

import (
	"time"
)

// Thread 讨论帖，归属于一部电影和一个发帖用户
type Thread struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Title       string    `json:"title" gorm:"size:200;not null"`
	Description string    `json:"description" gorm:"type:text"`
	MovieID     uint      `json:"movie_id" gorm:"not null;index"`
	Movie       Movie     `json:"movie,omitempty" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	UserID      uint      `json:"user_id" gorm:"not null;index"`
	User        User      `json:"user,omitempty" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	IsDeleted   bool      `json:"-" gorm:"default:false"` // 概念模型保留的软删标记，写路径目前是硬删
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
