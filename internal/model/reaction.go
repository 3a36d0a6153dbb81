package model

import (
	"time"
)

// 反应目标类型
const (
	ReactableThread  = "THREAD"
	ReactableComment = "COMMENT"
)

// 反应类型枚举
const (
	ReactionLike  = "LIKE"
	ReactionLove  = "LOVE"
	ReactionLaugh = "LAUGH"
	ReactionAngry = "ANGRY"
	ReactionSad   = "SAD"
)

// IsValidReactionType 校验反应类型是否合法
func IsValidReactionType(t string) bool {
	switch t {
	case ReactionLike, ReactionLove, ReactionLaugh, ReactionAngry, ReactionSad:
		return true
	}
	return false
}

// Reaction 反应模型，目标是帖子或评论（由 ReactableType 判别）
// ThreadID / CommentID 恰好填一个。两条复合唯一索引保证
// 同一用户对同一目标同时最多只有一条反应，Postgres 对 NULL 不参与唯一判定，
// 所以两条索引互不干扰。
type Reaction struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	Type          string    `json:"type" gorm:"size:10;not null"`
	ReactableType string    `json:"reactable_type" gorm:"size:10;not null;uniqueIndex:idx_reaction_user_thread,priority:2;uniqueIndex:idx_reaction_user_comment,priority:2"`
	UserID        uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_reaction_user_thread,priority:1;uniqueIndex:idx_reaction_user_comment,priority:1"`
	User          User      `json:"user,omitempty" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	ThreadID      *uint     `json:"thread_id,omitempty" gorm:"uniqueIndex:idx_reaction_user_thread,priority:3"`
	CommentID     *uint     `json:"comment_id,omitempty" gorm:"uniqueIndex:idx_reaction_user_comment,priority:3"`
	CreatedAt     time.Time `json:"created_at"`
}
