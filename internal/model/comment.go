package model

import (
	"time"
)

// 评论层级：1 = 帖子下的顶层评论，2 = 回复。层级硬性封顶为 2。
const (
	CommentLevelTop   = 1
	CommentLevelReply = 2
)

// Comment 评论模型
// ParentID 仅在 Level=2 时非空，指向同一帖子下的顶层评论。
// ReplyToID 是展示用的"回复 @某人"指向，可以指向同组内任意一条评论，不参与结构嵌套。
type Comment struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	Level     int       `json:"level" gorm:"not null;default:1"`
	ThreadID  uint      `json:"thread_id" gorm:"not null;index"`
	Thread    Thread    `json:"-" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	UserID    uint      `json:"user_id" gorm:"not null;index"`
	User      User      `json:"user,omitempty" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	ParentID  *uint     `json:"parent_id" gorm:"index"`
	ReplyToID *uint     `json:"reply_to_id"`
	ReplyTo   *Comment  `json:"reply_to,omitempty" gorm:"foreignKey:ReplyToID;constraint:OnDelete:SET NULL"`
	CreatedAt time.Time `json:"created_at"`
}
