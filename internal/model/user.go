package model

import (
	"time"
)

// User 用户模型
type User struct {
	ID              uint       `json:"id" gorm:"primaryKey"`
	Username        string     `json:"username" gorm:"uniqueIndex;size:20;not null"` // 公开标识，登录可用，不允许含 @
	Email           string     `json:"email" gorm:"uniqueIndex;size:120;not null"`
	Nickname        string     `json:"nickname" gorm:"size:40"`
	PasswordHash    string     `json:"-" gorm:"not null"`
	IsAdmin         bool       `json:"is_admin" gorm:"default:false"`
	Bio             string     `json:"bio" gorm:"size:200"`
	FavoriteRole    string     `json:"favorite_role" gorm:"size:60"` // 最喜欢的角色
	FavoriteMovieID *uint      `json:"favorite_movie_id"`
	FavoriteMovie   *Movie     `json:"favorite_movie,omitempty" gorm:"foreignKey:FavoriteMovieID;constraint:OnDelete:SET NULL"`
	AvatarPath      string     `json:"avatar_path" gorm:"size:255"`
	IsDeleted       bool       `json:"-" gorm:"default:false"`
	DeletedAt       *time.Time `json:"-"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// SessionUser 专门用于 Session 存储的用户信息结构
type SessionUser struct {
	ID       uint
	Username string
	IsAdmin  bool
}
