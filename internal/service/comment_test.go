package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/user/cinetalk/internal/apperr"
	"github.com/user/cinetalk/internal/model"
)

type fakeCommentStore struct {
	nextID   uint
	comments map[uint]*model.Comment
}

func newFakeCommentStore() *fakeCommentStore {
	return &fakeCommentStore{comments: map[uint]*model.Comment{}}
}

func (f *fakeCommentStore) put(c *model.Comment) *model.Comment {
	f.nextID++
	c.ID = f.nextID
	f.comments[c.ID] = c
	return c
}

func (f *fakeCommentStore) Create(comment *model.Comment) error {
	comment.CreatedAt = time.Now()
	f.put(comment)
	return nil
}

func (f *fakeCommentStore) FindByID(id uint) (*model.Comment, error) {
	return f.comments[id], nil
}

func (f *fakeCommentStore) ListTopLevel(threadID uint) ([]*model.Comment, error) {
	var out []*model.Comment
	for _, c := range f.comments {
		if c.ThreadID == threadID && c.Level == model.CommentLevelTop {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeCommentStore) ListReplies(parentID uint) ([]*model.Comment, error) {
	var out []*model.Comment
	for _, c := range f.comments {
		if c.ParentID != nil && *c.ParentID == parentID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeCommentStore) UpdateContent(id uint, content string) error {
	if c, ok := f.comments[id]; ok {
		c.Content = content
	}
	return nil
}

// Delete 和存储层事务行为一致：顶层评论连同回复一起删，
// 幸存评论上指向被删评论的展示指向置空
func (f *fakeCommentStore) Delete(id uint) error {
	doomed := map[uint]bool{id: true}
	for cid, c := range f.comments {
		if c.ParentID != nil && *c.ParentID == id {
			doomed[cid] = true
		}
	}
	for cid := range doomed {
		delete(f.comments, cid)
	}
	for _, c := range f.comments {
		if c.ReplyToID != nil && doomed[*c.ReplyToID] {
			c.ReplyToID = nil
		}
	}
	return nil
}

func (f *fakeCommentStore) ReplyCounts(parentIDs []uint) (map[uint]int64, error) {
	counts := map[uint]int64{}
	for _, id := range parentIDs {
		for _, c := range f.comments {
			if c.ParentID != nil && *c.ParentID == id {
				counts[id]++
			}
		}
	}
	return counts, nil
}

type fakeCommentCounter struct {
	counts map[uint]map[string]int64
}

func (f *fakeCommentCounter) CountsForComments(commentIDs []uint) (map[uint]map[string]int64, error) {
	out := map[uint]map[string]int64{}
	for _, id := range commentIDs {
		if c, ok := f.counts[id]; ok {
			out[id] = c
		}
	}
	return out, nil
}

func newCommentService() (*CommentService, *fakeCommentStore, *fakeCommentCounter) {
	store := newFakeCommentStore()
	threads := &fakeThreadFinder{threads: map[uint]*model.Thread{
		1: {ID: 1, Title: "t1", MovieID: 1, UserID: 1},
		2: {ID: 2, Title: "t2", MovieID: 1, UserID: 1},
	}}
	counter := &fakeCommentCounter{counts: map[uint]map[string]int64{}}
	return NewCommentService(store, threads, counter), store, counter
}

func TestCommentCreate_TopLevel(t *testing.T) {
	svc, _, _ := newCommentService()

	comment, err := svc.Create(CreateCommentInput{ThreadID: 1, AuthorID: 3, Content: "  不错的片子  "})
	require.NoError(t, err)
	require.Equal(t, model.CommentLevelTop, comment.Level)
	require.Nil(t, comment.ParentID)
	require.Equal(t, "不错的片子", comment.Content)
}

func TestCommentCreate_Reply(t *testing.T) {
	svc, store, _ := newCommentService()
	parent := store.put(&model.Comment{ThreadID: 1, UserID: 2, Level: model.CommentLevelTop, Content: "楼主"})

	reply, err := svc.Create(CreateCommentInput{ThreadID: 1, AuthorID: 3, Content: "同感", ParentID: &parent.ID})
	require.NoError(t, err)
	require.Equal(t, model.CommentLevelReply, reply.Level)
	require.Equal(t, parent.ID, *reply.ParentID)

	// 层级封顶为 2：不能回复回复
	_, err = svc.Create(CreateCommentInput{ThreadID: 1, AuthorID: 4, Content: "三层", ParentID: &reply.ID})
	require.ErrorIs(t, err, apperr.ErrInvalidArgument)
}

func TestCommentCreate_ReplyTo(t *testing.T) {
	svc, store, _ := newCommentService()
	parent := store.put(&model.Comment{ThreadID: 1, UserID: 2, Level: model.CommentLevelTop})
	sibling := store.put(&model.Comment{ThreadID: 1, UserID: 5, Level: model.CommentLevelReply, ParentID: &parent.ID})
	other := store.put(&model.Comment{ThreadID: 2, UserID: 6, Level: model.CommentLevelTop})

	// 正常的"回复 @某人"
	reply, err := svc.Create(CreateCommentInput{
		ThreadID: 1, AuthorID: 3, Content: "回你", ParentID: &parent.ID, ReplyToID: &sibling.ID,
	})
	require.NoError(t, err)
	require.Equal(t, sibling.ID, *reply.ReplyToID)

	// 指向别的帖子下的评论
	_, err = svc.Create(CreateCommentInput{
		ThreadID: 1, AuthorID: 3, Content: "跨帖", ParentID: &parent.ID, ReplyToID: &other.ID,
	})
	require.ErrorIs(t, err, apperr.ErrInvalidArgument)

	// 顶层评论不能带回复指向
	_, err = svc.Create(CreateCommentInput{ThreadID: 1, AuthorID: 3, Content: "顶层", ReplyToID: &sibling.ID})
	require.ErrorIs(t, err, apperr.ErrInvalidArgument)
}

func TestCommentCreate_Invalid(t *testing.T) {
	svc, store, _ := newCommentService()
	otherParent := store.put(&model.Comment{ThreadID: 2, UserID: 2, Level: model.CommentLevelTop})
	missing := uint(999)

	tests := []struct {
		name    string
		input   CreateCommentInput
		wantErr error
	}{
		{"空内容", CreateCommentInput{ThreadID: 1, AuthorID: 3, Content: "   "}, apperr.ErrInvalidArgument},
		{"帖子不存在", CreateCommentInput{ThreadID: 99, AuthorID: 3, Content: "x"}, apperr.ErrNotFound},
		{"父评论已被删除", CreateCommentInput{ThreadID: 1, AuthorID: 3, Content: "x", ParentID: &missing}, apperr.ErrConflict},
		{"父评论不属于该帖子", CreateCommentInput{ThreadID: 1, AuthorID: 3, Content: "x", ParentID: &otherParent.ID}, apperr.ErrInvalidArgument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(tt.input)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCommentUpdate_OwnerOnly(t *testing.T) {
	svc, store, _ := newCommentService()
	c := store.put(&model.Comment{ThreadID: 1, UserID: 2, Level: model.CommentLevelTop, Content: "原文"})

	_, err := svc.Update(3, c.ID, "改掉")
	require.ErrorIs(t, err, apperr.ErrForbidden)
	require.Equal(t, "原文", store.comments[c.ID].Content)

	updated, err := svc.Update(2, c.ID, "改掉")
	require.NoError(t, err)
	require.Equal(t, "改掉", updated.Content)

	_, err = svc.Update(2, 999, "x")
	require.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestCommentDelete_CascadesReplies(t *testing.T) {
	svc, store, _ := newCommentService()
	parent := store.put(&model.Comment{ThreadID: 1, UserID: 2, Level: model.CommentLevelTop})
	store.put(&model.Comment{ThreadID: 1, UserID: 3, Level: model.CommentLevelReply, ParentID: &parent.ID})
	store.put(&model.Comment{ThreadID: 1, UserID: 4, Level: model.CommentLevelReply, ParentID: &parent.ID})

	require.ErrorIs(t, svc.Delete(9, parent.ID), apperr.ErrForbidden)
	require.Len(t, store.comments, 3)

	require.NoError(t, svc.Delete(2, parent.ID))
	require.Empty(t, store.comments)
}

// 删除被"回复 @某人"指向的评论必须成功，幸存评论的指向被置空而不是留成悬空引用
func TestCommentDelete_ClearsReplyToPointers(t *testing.T) {
	svc, store, _ := newCommentService()
	parent := store.put(&model.Comment{ThreadID: 1, UserID: 2, Level: model.CommentLevelTop})
	r1 := store.put(&model.Comment{ThreadID: 1, UserID: 3, Level: model.CommentLevelReply, ParentID: &parent.ID})
	r2 := store.put(&model.Comment{ThreadID: 1, UserID: 4, Level: model.CommentLevelReply, ParentID: &parent.ID, ReplyToID: &r1.ID})

	require.NoError(t, svc.Delete(3, r1.ID))
	require.Nil(t, store.comments[r2.ID].ReplyToID)

	// 同一帖子里跨组的指向：别的顶层评论下的回复指向 parent 的回复
	other := store.put(&model.Comment{ThreadID: 1, UserID: 5, Level: model.CommentLevelTop})
	inner := store.put(&model.Comment{ThreadID: 1, UserID: 6, Level: model.CommentLevelReply, ParentID: &parent.ID})
	cross := store.put(&model.Comment{ThreadID: 1, UserID: 7, Level: model.CommentLevelReply, ParentID: &other.ID, ReplyToID: &inner.ID})

	require.NoError(t, svc.Delete(2, parent.ID))
	require.Nil(t, store.comments[parent.ID])
	require.NotNil(t, store.comments[cross.ID])
	require.Nil(t, store.comments[cross.ID].ReplyToID)
}

func TestCommentListTopLevel_Counts(t *testing.T) {
	svc, store, counter := newCommentService()
	top := store.put(&model.Comment{ThreadID: 1, UserID: 2, Level: model.CommentLevelTop})
	store.put(&model.Comment{ThreadID: 1, UserID: 3, Level: model.CommentLevelReply, ParentID: &top.ID})
	counter.counts[top.ID] = map[string]int64{model.ReactionLike: 2, model.ReactionLaugh: 1}

	items, err := svc.ListTopLevel(1)
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, int64(1), items[0].ReplyCount)
	require.Equal(t, int64(2), items[0].ReactionCounts[model.ReactionLike])

	_, err = svc.ListTopLevel(99)
	require.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestCommentListReplies(t *testing.T) {
	svc, store, _ := newCommentService()
	parent := store.put(&model.Comment{ThreadID: 1, UserID: 2, Level: model.CommentLevelTop})
	store.put(&model.Comment{ThreadID: 1, UserID: 3, Level: model.CommentLevelReply, ParentID: &parent.ID})

	items, err := svc.ListReplies(parent.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.NotNil(t, items[0].ReactionCounts)

	_, err = svc.ListReplies(999)
	require.ErrorIs(t, err, apperr.ErrNotFound)
}
