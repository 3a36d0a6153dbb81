package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/user/cinetalk/internal/apperr"
	"github.com/user/cinetalk/internal/model"
	"gorm.io/gorm"
)

// fakeReactionStore 内存版反应存储，模拟唯一索引行为
type fakeReactionStore struct {
	nextID  uint
	rows    map[uint]*model.Reaction
	dupNext bool // 下一次 Create 模拟并发竞争输家
}

func newFakeReactionStore() *fakeReactionStore {
	return &fakeReactionStore{rows: map[uint]*model.Reaction{}}
}

func (f *fakeReactionStore) FindByUserAndTarget(userID uint, reactableType string, targetID uint) (*model.Reaction, error) {
	for _, r := range f.rows {
		if r.UserID != userID || r.ReactableType != reactableType {
			continue
		}
		if reactableType == model.ReactableThread && r.ThreadID != nil && *r.ThreadID == targetID {
			return r, nil
		}
		if reactableType == model.ReactableComment && r.CommentID != nil && *r.CommentID == targetID {
			return r, nil
		}
	}
	return nil, nil
}

func (f *fakeReactionStore) Create(reaction *model.Reaction) error {
	if f.dupNext {
		f.dupNext = false
		return gorm.ErrDuplicatedKey
	}
	// 唯一索引：同一用户同一目标只能有一条
	var targetID uint
	if reaction.ReactableType == model.ReactableThread {
		targetID = *reaction.ThreadID
	} else {
		targetID = *reaction.CommentID
	}
	if existing, _ := f.FindByUserAndTarget(reaction.UserID, reaction.ReactableType, targetID); existing != nil {
		return gorm.ErrDuplicatedKey
	}

	f.nextID++
	reaction.ID = f.nextID
	reaction.CreatedAt = time.Now()
	f.rows[reaction.ID] = reaction
	return nil
}

func (f *fakeReactionStore) UpdateType(id uint, newType string) error {
	if r, ok := f.rows[id]; ok {
		r.Type = newType
	}
	return nil
}

func (f *fakeReactionStore) Delete(id uint) error {
	delete(f.rows, id)
	return nil
}

type fakeThreadFinder struct {
	threads map[uint]*model.Thread
}

func (f *fakeThreadFinder) FindByID(id uint) (*model.Thread, error) {
	return f.threads[id], nil
}

type fakeCommentFinder struct {
	comments map[uint]*model.Comment
}

func (f *fakeCommentFinder) FindByID(id uint) (*model.Comment, error) {
	return f.comments[id], nil
}

func newReactionService() (*ReactionService, *fakeReactionStore) {
	store := newFakeReactionStore()
	threads := &fakeThreadFinder{threads: map[uint]*model.Thread{
		1: {ID: 1, Title: "t1", MovieID: 1, UserID: 1},
	}}
	comments := &fakeCommentFinder{comments: map[uint]*model.Comment{
		10: {ID: 10, ThreadID: 1, UserID: 2, Level: model.CommentLevelTop},
	}}
	return NewReactionService(store, threads, comments), store
}

// 切换不变量：同类型连续提交两次，最终一条反应都不留
func TestReactionApply_Toggle(t *testing.T) {
	svc, store := newReactionService()

	result, reaction, err := svc.Apply(7, model.ReactableComment, 10, model.ReactionLike)
	require.NoError(t, err)
	require.Equal(t, ReactionCreated, result)
	require.NotNil(t, reaction)
	require.Equal(t, model.ReactionLike, reaction.Type)
	require.Len(t, store.rows, 1)

	result, reaction, err = svc.Apply(7, model.ReactableComment, 10, model.ReactionLike)
	require.NoError(t, err)
	require.Equal(t, ReactionRemoved, result)
	require.Nil(t, reaction)
	require.Empty(t, store.rows)
}

// 替换不变量：先 LIKE 再 LOVE，只剩一条 LOVE
func TestReactionApply_Replace(t *testing.T) {
	svc, store := newReactionService()

	_, _, err := svc.Apply(7, model.ReactableThread, 1, model.ReactionLike)
	require.NoError(t, err)

	result, reaction, err := svc.Apply(7, model.ReactableThread, 1, model.ReactionLove)
	require.NoError(t, err)
	require.Equal(t, ReactionUpdated, result)
	require.Equal(t, model.ReactionLove, reaction.Type)
	require.Len(t, store.rows, 1)
	for _, r := range store.rows {
		require.Equal(t, model.ReactionLove, r.Type)
	}
}

// 切换删除之后再换类型提交，此时没有已存在的反应，应判定为新建而不是替换
func TestReactionApply_CreateAfterToggleOff(t *testing.T) {
	svc, _ := newReactionService()

	_, _, err := svc.Apply(5, model.ReactableComment, 10, model.ReactionLike)
	require.NoError(t, err)
	result, _, err := svc.Apply(5, model.ReactableComment, 10, model.ReactionLike)
	require.NoError(t, err)
	require.Equal(t, ReactionRemoved, result)

	result, reaction, err := svc.Apply(5, model.ReactableComment, 10, model.ReactionLove)
	require.NoError(t, err)
	require.Equal(t, ReactionCreated, result)
	require.Equal(t, model.ReactionLove, reaction.Type)
}

func TestReactionApply_Validation(t *testing.T) {
	svc, _ := newReactionService()

	tests := []struct {
		name          string
		reactableType string
		targetID      uint
		reqType       string
		wantErr       error
	}{
		{"空类型", model.ReactableThread, 1, "", apperr.ErrInvalidArgument},
		{"未知类型", model.ReactableThread, 1, "WOW", apperr.ErrInvalidArgument},
		{"未知目标种类", "POST", 1, model.ReactionLike, apperr.ErrInvalidArgument},
		{"帖子不存在", model.ReactableThread, 99, model.ReactionLike, apperr.ErrNotFound},
		{"评论不存在", model.ReactableComment, 99, model.ReactionLike, apperr.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := svc.Apply(7, tt.reactableType, tt.targetID, tt.reqType)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

// 并发竞争：存在性检查通过但插入撞了唯一索引，输家拿 Conflict
func TestReactionApply_DuplicateRace(t *testing.T) {
	svc, store := newReactionService()
	store.dupNext = true

	_, _, err := svc.Apply(7, model.ReactableThread, 1, model.ReactionLike)
	require.ErrorIs(t, err, apperr.ErrConflict)
}
