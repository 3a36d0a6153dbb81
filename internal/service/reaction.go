package service

import (
	"errors"
	"strings"

	"github.com/user/cinetalk/internal/apperr"
	"github.com/user/cinetalk/internal/model"
	"gorm.io/gorm"
)

// ApplyResult 一次反应操作的结果
type ApplyResult int

const (
	ReactionCreated ApplyResult = iota // 新建，对应 201
	ReactionUpdated                    // 类型原地替换
	ReactionRemoved                    // 同类型重复提交，切换删除
)

// reactionStore 反应服务依赖的存储能力
type reactionStore interface {
	FindByUserAndTarget(userID uint, reactableType string, targetID uint) (*model.Reaction, error)
	Create(reaction *model.Reaction) error
	UpdateType(id uint, newType string) error
	Delete(id uint) error
}

type threadFinder interface {
	FindByID(id uint) (*model.Thread, error)
}

type commentFinder interface {
	FindByID(id uint) (*model.Comment, error)
}

// ReactionService 维护"一人一目标至多一条反应"的不变量，提供切换语义
type ReactionService struct {
	reactions reactionStore
	threads   threadFinder
	comments  commentFinder
}

func NewReactionService(reactions reactionStore, threads threadFinder, comments commentFinder) *ReactionService {
	return &ReactionService{
		reactions: reactions,
		threads:   threads,
		comments:  comments,
	}
}

// Apply 对帖子或评论提交一次反应。
// 无已有反应则创建；已有同类型反应则删除（切换语义，重复提交永远不报错）；
// 已有不同类型反应则原地替换。
// 并发重复创建时靠存储层唯一索引裁决，输家拿到 Conflict。
func (s *ReactionService) Apply(userID uint, reactableType string, targetID uint, requestedType string) (ApplyResult, *model.Reaction, error) {
	requestedType = strings.TrimSpace(requestedType)
	if requestedType == "" {
		return 0, nil, apperr.Wrap(apperr.ErrInvalidArgument, "反应类型不能为空")
	}
	if !model.IsValidReactionType(requestedType) {
		return 0, nil, apperr.Wrap(apperr.ErrInvalidArgument, "不支持的反应类型")
	}

	switch reactableType {
	case model.ReactableThread:
		thread, err := s.threads.FindByID(targetID)
		if err != nil {
			return 0, nil, apperr.ErrInternal
		}
		if thread == nil {
			return 0, nil, apperr.Wrap(apperr.ErrNotFound, "帖子不存在")
		}
	case model.ReactableComment:
		comment, err := s.comments.FindByID(targetID)
		if err != nil {
			return 0, nil, apperr.ErrInternal
		}
		if comment == nil {
			return 0, nil, apperr.Wrap(apperr.ErrNotFound, "评论不存在")
		}
	default:
		return 0, nil, apperr.Wrap(apperr.ErrInvalidArgument, "不支持的反应目标")
	}

	existing, err := s.reactions.FindByUserAndTarget(userID, reactableType, targetID)
	if err != nil {
		return 0, nil, apperr.ErrInternal
	}

	// 没有已存在的反应：创建
	if existing == nil {
		reaction := &model.Reaction{
			Type:          requestedType,
			ReactableType: reactableType,
			UserID:        userID,
		}
		if reactableType == model.ReactableThread {
			reaction.ThreadID = &targetID
		} else {
			reaction.CommentID = &targetID
		}

		if err := s.reactions.Create(reaction); err != nil {
			// 并发竞争的输家：存在性检查之后别人先插了一条
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return 0, nil, apperr.Wrap(apperr.ErrConflict, "该目标上已有你的反应")
			}
			return 0, nil, apperr.ErrInternal
		}
		return ReactionCreated, reaction, nil
	}

	// 同类型重复提交：切换删除
	if existing.Type == requestedType {
		if err := s.reactions.Delete(existing.ID); err != nil {
			return 0, nil, apperr.ErrInternal
		}
		return ReactionRemoved, nil, nil
	}

	// 类型不同：原地替换
	if err := s.reactions.UpdateType(existing.ID, requestedType); err != nil {
		return 0, nil, apperr.ErrInternal
	}
	existing.Type = requestedType
	return ReactionUpdated, existing, nil
}
