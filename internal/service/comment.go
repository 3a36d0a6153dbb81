package service

import (
	"strings"

	"github.com/user/cinetalk/internal/apperr"
	"github.com/user/cinetalk/internal/model"
)

// commentStore 评论服务依赖的存储能力
type commentStore interface {
	Create(comment *model.Comment) error
	FindByID(id uint) (*model.Comment, error)
	ListTopLevel(threadID uint) ([]*model.Comment, error)
	ListReplies(parentID uint) ([]*model.Comment, error)
	UpdateContent(id uint, content string) error
	Delete(id uint) error
	ReplyCounts(parentIDs []uint) (map[uint]int64, error)
}

type commentReactionCounter interface {
	CountsForComments(commentIDs []uint) (map[uint]map[string]int64, error)
}

// CommentItem 评论列表项，计数均为读时统计
type CommentItem struct {
	*model.Comment
	ReactionCounts map[string]int64 `json:"reaction_counts"`
	ReplyCount     int64            `json:"reply_count"`
}

// CreateCommentInput 创建评论的入参
type CreateCommentInput struct {
	ThreadID  uint
	AuthorID  uint
	Content   string
	ParentID  *uint
	ReplyToID *uint
}

// CommentService 维护两级评论结构：顶层评论 Level=1，回复 Level=2，不再往下嵌套
type CommentService struct {
	comments  commentStore
	threads   threadFinder
	reactions commentReactionCounter
}

func NewCommentService(comments commentStore, threads threadFinder, reactions commentReactionCounter) *CommentService {
	return &CommentService{
		comments:  comments,
		threads:   threads,
		reactions: reactions,
	}
}

// ListTopLevel 获取帖子下的顶层评论，附带各类型反应数和回复数
func (s *CommentService) ListTopLevel(threadID uint) ([]CommentItem, error) {
	thread, err := s.threads.FindByID(threadID)
	if err != nil {
		return nil, apperr.ErrInternal
	}
	if thread == nil {
		return nil, apperr.Wrap(apperr.ErrNotFound, "帖子不存在")
	}

	comments, err := s.comments.ListTopLevel(threadID)
	if err != nil {
		return nil, apperr.ErrInternal
	}

	ids := make([]uint, len(comments))
	for i, c := range comments {
		ids[i] = c.ID
	}

	reactionCounts, err := s.reactions.CountsForComments(ids)
	if err != nil {
		return nil, apperr.ErrInternal
	}
	replyCounts, err := s.comments.ReplyCounts(ids)
	if err != nil {
		return nil, apperr.ErrInternal
	}

	items := make([]CommentItem, len(comments))
	for i, c := range comments {
		counts := reactionCounts[c.ID]
		if counts == nil {
			counts = map[string]int64{}
		}
		items[i] = CommentItem{
			Comment:        c,
			ReactionCounts: counts,
			ReplyCount:     replyCounts[c.ID],
		}
	}
	return items, nil
}

// ListReplies 获取顶层评论下的回复，附带反应数和"回复 @某人"指向
func (s *CommentService) ListReplies(parentID uint) ([]CommentItem, error) {
	parent, err := s.comments.FindByID(parentID)
	if err != nil {
		return nil, apperr.ErrInternal
	}
	if parent == nil {
		return nil, apperr.Wrap(apperr.ErrNotFound, "评论不存在")
	}

	replies, err := s.comments.ListReplies(parentID)
	if err != nil {
		return nil, apperr.ErrInternal
	}

	ids := make([]uint, len(replies))
	for i, c := range replies {
		ids[i] = c.ID
	}
	reactionCounts, err := s.reactions.CountsForComments(ids)
	if err != nil {
		return nil, apperr.ErrInternal
	}

	items := make([]CommentItem, len(replies))
	for i, c := range replies {
		counts := reactionCounts[c.ID]
		if counts == nil {
			counts = map[string]int64{}
		}
		items[i] = CommentItem{Comment: c, ReactionCounts: counts}
	}
	return items, nil
}

// Create 创建评论。
// 带 ParentID 视为回复（Level=2），父评论必须是同一帖子下的顶层评论；
// 不带 ParentID 则是顶层评论，此时不允许出现 ReplyToID。
// ReplyToID 仅用于展示指向，不参与结构嵌套，层级始终封顶为 2。
func (s *CommentService) Create(input CreateCommentInput) (*model.Comment, error) {
	content := strings.TrimSpace(input.Content)
	if content == "" {
		return nil, apperr.Wrap(apperr.ErrInvalidArgument, "评论内容不能为空")
	}

	thread, err := s.threads.FindByID(input.ThreadID)
	if err != nil {
		return nil, apperr.ErrInternal
	}
	if thread == nil {
		return nil, apperr.Wrap(apperr.ErrNotFound, "帖子不存在")
	}
	if thread.IsDeleted {
		return nil, apperr.Wrap(apperr.ErrInvalidArgument, "帖子已删除")
	}

	comment := &model.Comment{
		Content:  content,
		ThreadID: input.ThreadID,
		UserID:   input.AuthorID,
		Level:    model.CommentLevelTop,
	}

	if input.ParentID != nil {
		parent, err := s.comments.FindByID(*input.ParentID)
		if err != nil {
			return nil, apperr.ErrInternal
		}
		if parent == nil {
			// 回复时父评论已被删除
			return nil, apperr.Wrap(apperr.ErrConflict, "父评论已被删除")
		}
		if parent.Level != model.CommentLevelTop {
			return nil, apperr.Wrap(apperr.ErrInvalidArgument, "只能回复顶层评论")
		}
		if parent.ThreadID != input.ThreadID {
			return nil, apperr.Wrap(apperr.ErrInvalidArgument, "父评论不属于该帖子")
		}

		comment.Level = model.CommentLevelReply
		comment.ParentID = input.ParentID

		if input.ReplyToID != nil {
			replyTo, err := s.comments.FindByID(*input.ReplyToID)
			if err != nil {
				return nil, apperr.ErrInternal
			}
			if replyTo == nil {
				return nil, apperr.Wrap(apperr.ErrInvalidArgument, "被回复的评论不存在")
			}
			if replyTo.ThreadID != input.ThreadID {
				return nil, apperr.Wrap(apperr.ErrInvalidArgument, "被回复的评论不属于该帖子")
			}
			comment.ReplyToID = input.ReplyToID
		}
	} else if input.ReplyToID != nil {
		return nil, apperr.Wrap(apperr.ErrInvalidArgument, "顶层评论不能带回复指向")
	}

	if err := s.comments.Create(comment); err != nil {
		return nil, apperr.ErrInternal
	}
	return comment, nil
}

// Update 更新评论内容，只有作者本人可以改
func (s *CommentService) Update(callerID, id uint, content string) (*model.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperr.Wrap(apperr.ErrInvalidArgument, "评论内容不能为空")
	}

	comment, err := s.comments.FindByID(id)
	if err != nil {
		return nil, apperr.ErrInternal
	}
	if comment == nil {
		return nil, apperr.Wrap(apperr.ErrNotFound, "评论不存在")
	}
	if comment.UserID != callerID {
		return nil, apperr.Wrap(apperr.ErrForbidden, "只能编辑自己的评论")
	}

	if err := s.comments.UpdateContent(id, content); err != nil {
		return nil, apperr.ErrInternal
	}
	comment.Content = content
	return comment, nil
}

// Delete 删除评论，只有作者本人可以删。
// 顶层评论级联删除其下回复，由存储层在同一事务内完成
func (s *CommentService) Delete(callerID, id uint) error {
	comment, err := s.comments.FindByID(id)
	if err != nil {
		return apperr.ErrInternal
	}
	if comment == nil {
		return apperr.Wrap(apperr.ErrNotFound, "评论不存在")
	}
	if comment.UserID != callerID {
		return apperr.Wrap(apperr.ErrForbidden, "只能删除自己的评论")
	}

	if err := s.comments.Delete(id); err != nil {
		return apperr.ErrInternal
	}
	return nil
}
