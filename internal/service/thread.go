package service

import (
	"strings"

	"github.com/user/cinetalk/internal/apperr"
	"github.com/user/cinetalk/internal/model"
)

// threadStore 帖子服务依赖的存储能力
type threadStore interface {
	Create(thread *model.Thread) error
	FindByID(id uint) (*model.Thread, error)
	ListByMovie(movieID uint) ([]*model.Thread, error)
	Update(id uint, fields map[string]interface{}) error
	Delete(id uint) error
	CommentCounts(threadIDs []uint) (map[uint]int64, error)
}

type movieFinder interface {
	FindByID(id uint) (*model.Movie, error)
}

type threadReactionCounter interface {
	CountsForThreads(threadIDs []uint) (map[uint]map[string]int64, error)
}

// ThreadItem 帖子列表项，计数均为读时统计
type ThreadItem struct {
	*model.Thread
	CommentCount   int64            `json:"comment_count"`
	ReactionCounts map[string]int64 `json:"reaction_counts"`
}

// ThreadService 帖子的增删改查和归属校验
type ThreadService struct {
	threads   threadStore
	movies    movieFinder
	reactions threadReactionCounter
}

func NewThreadService(threads threadStore, movies movieFinder, reactions threadReactionCounter) *ThreadService {
	return &ThreadService{
		threads:   threads,
		movies:    movies,
		reactions: reactions,
	}
}

// ListByMovie 获取某部电影下的帖子，附带评论数和各类型反应数
func (s *ThreadService) ListByMovie(movieID uint) ([]ThreadItem, error) {
	movie, err := s.movies.FindByID(movieID)
	if err != nil {
		return nil, apperr.ErrInternal
	}
	if movie == nil {
		return nil, apperr.Wrap(apperr.ErrNotFound, "电影不存在")
	}

	threads, err := s.threads.ListByMovie(movieID)
	if err != nil {
		return nil, apperr.ErrInternal
	}

	ids := make([]uint, len(threads))
	for i, t := range threads {
		ids[i] = t.ID
	}

	commentCounts, err := s.threads.CommentCounts(ids)
	if err != nil {
		return nil, apperr.ErrInternal
	}
	reactionCounts, err := s.reactions.CountsForThreads(ids)
	if err != nil {
		return nil, apperr.ErrInternal
	}

	items := make([]ThreadItem, len(threads))
	for i, t := range threads {
		counts := reactionCounts[t.ID]
		if counts == nil {
			counts = map[string]int64{}
		}
		items[i] = ThreadItem{
			Thread:         t,
			CommentCount:   commentCounts[t.ID],
			ReactionCounts: counts,
		}
	}
	return items, nil
}

// Get 获取单个帖子详情，附带计数
func (s *ThreadService) Get(id uint) (*ThreadItem, error) {
	thread, err := s.threads.FindByID(id)
	if err != nil {
		return nil, apperr.ErrInternal
	}
	if thread == nil {
		return nil, apperr.Wrap(apperr.ErrNotFound, "帖子不存在")
	}

	commentCounts, err := s.threads.CommentCounts([]uint{id})
	if err != nil {
		return nil, apperr.ErrInternal
	}
	reactionCounts, err := s.reactions.CountsForThreads([]uint{id})
	if err != nil {
		return nil, apperr.ErrInternal
	}

	counts := reactionCounts[id]
	if counts == nil {
		counts = map[string]int64{}
	}
	return &ThreadItem{
		Thread:         thread,
		CommentCount:   commentCounts[id],
		ReactionCounts: counts,
	}, nil
}

// Create 在某部电影下发帖
func (s *ThreadService) Create(authorID, movieID uint, title, description string) (*model.Thread, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, apperr.Wrap(apperr.ErrInvalidArgument, "帖子标题不能为空")
	}

	movie, err := s.movies.FindByID(movieID)
	if err != nil {
		return nil, apperr.ErrInternal
	}
	if movie == nil {
		return nil, apperr.Wrap(apperr.ErrNotFound, "电影不存在")
	}

	thread := &model.Thread{
		Title:       title,
		Description: strings.TrimSpace(description),
		MovieID:     movieID,
		UserID:      authorID,
	}
	if err := s.threads.Create(thread); err != nil {
		return nil, apperr.ErrInternal
	}
	return thread, nil
}

// Update 更新帖子标题和描述，只有楼主可以改
func (s *ThreadService) Update(callerID, id uint, title, description string) (*model.Thread, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, apperr.Wrap(apperr.ErrInvalidArgument, "帖子标题不能为空")
	}

	thread, err := s.threads.FindByID(id)
	if err != nil {
		return nil, apperr.ErrInternal
	}
	if thread == nil {
		return nil, apperr.Wrap(apperr.ErrNotFound, "帖子不存在")
	}
	if thread.UserID != callerID {
		return nil, apperr.Wrap(apperr.ErrForbidden, "只能编辑自己的帖子")
	}

	fields := map[string]interface{}{
		"title":       title,
		"description": strings.TrimSpace(description),
	}
	if err := s.threads.Update(id, fields); err != nil {
		return nil, apperr.ErrInternal
	}
	thread.Title = title
	thread.Description = strings.TrimSpace(description)
	return thread, nil
}

// Delete 删除帖子，只有楼主可以删，评论和反应随帖子一并清理
func (s *ThreadService) Delete(callerID, id uint) error {
	thread, err := s.threads.FindByID(id)
	if err != nil {
		return apperr.ErrInternal
	}
	if thread == nil {
		return apperr.Wrap(apperr.ErrNotFound, "帖子不存在")
	}
	if thread.UserID != callerID {
		return apperr.Wrap(apperr.ErrForbidden, "只能删除自己的帖子")
	}

	if err := s.threads.Delete(id); err != nil {
		return apperr.ErrInternal
	}
	return nil
}
