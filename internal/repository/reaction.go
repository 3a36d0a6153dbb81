package repository

import (
	"errors"

	"github.com/user/cinetalk/internal/model"
	"gorm.io/gorm"
)

type ReactionRepository struct {
	db *gorm.DB
}

func NewReactionRepository(db *gorm.DB) *ReactionRepository {
	return &ReactionRepository{db: db}
}

// targetQuery 按目标类型拼出定位条件
func (r *ReactionRepository) targetQuery(reactableType string, targetID uint) *gorm.DB {
	q := r.db.Where("reactable_type = ?", reactableType)
	if reactableType == model.ReactableThread {
		return q.Where("thread_id = ?", targetID)
	}
	return q.Where("comment_id = ?", targetID)
}

// FindByUserAndTarget 查找用户在某个目标上的反应
func (r *ReactionRepository) FindByUserAndTarget(userID uint, reactableType string, targetID uint) (*model.Reaction, error) {
	var reaction model.Reaction
	err := r.targetQuery(reactableType, targetID).
		Where("user_id = ?", userID).
		First(&reaction).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &reaction, nil
}

// Create 创建反应。唯一索引冲突（并发重复创建的输家）
// 会以 gorm.ErrDuplicatedKey 形式返回
func (r *ReactionRepository) Create(reaction *model.Reaction) error {
	return r.db.Create(reaction).Error
}

// UpdateType 原地更新反应类型
func (r *ReactionRepository) UpdateType(id uint, newType string) error {
	return r.db.Model(&model.Reaction{}).Where("id = ?", id).Update("type", newType).Error
}

// Delete 删除反应
func (r *ReactionRepository) Delete(id uint) error {
	return r.db.Delete(&model.Reaction{}, id).Error
}

// CountsByTarget 统计单个目标上各类型的反应数（读时计算，不落冗余计数器）
func (r *ReactionRepository) CountsByTarget(reactableType string, targetID uint) (map[string]int64, error) {
	type row struct {
		Type  string
		Count int64
	}
	var rows []row
	err := r.targetQuery(reactableType, targetID).
		Model(&model.Reaction{}).
		Select("type, COUNT(*) as count").
		Group("type").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64)
	for _, rw := range rows {
		counts[rw.Type] = rw.Count
	}
	return counts, nil
}

// CountsForComments 批量统计多条评论上各类型的反应数
func (r *ReactionRepository) CountsForComments(commentIDs []uint) (map[uint]map[string]int64, error) {
	counts := make(map[uint]map[string]int64)
	if len(commentIDs) == 0 {
		return counts, nil
	}

	type row struct {
		CommentID uint
		Type      string
		Count     int64
	}
	var rows []row
	err := r.db.Model(&model.Reaction{}).
		Select("comment_id, type, COUNT(*) as count").
		Where("reactable_type = ? AND comment_id IN ?", model.ReactableComment, commentIDs).
		Group("comment_id, type").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, rw := range rows {
		if counts[rw.CommentID] == nil {
			counts[rw.CommentID] = make(map[string]int64)
		}
		counts[rw.CommentID][rw.Type] = rw.Count
	}
	return counts, nil
}

// CountsForThreads 批量统计多个帖子上各类型的反应数
func (r *ReactionRepository) CountsForThreads(threadIDs []uint) (map[uint]map[string]int64, error) {
	counts := make(map[uint]map[string]int64)
	if len(threadIDs) == 0 {
		return counts, nil
	}

	type row struct {
		ThreadID uint
		Type     string
		Count    int64
	}
	var rows []row
	err := r.db.Model(&model.Reaction{}).
		Select("thread_id, type, COUNT(*) as count").
		Where("reactable_type = ? AND thread_id IN ?", model.ReactableThread, threadIDs).
		Group("thread_id, type").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, rw := range rows {
		if counts[rw.ThreadID] == nil {
			counts[rw.ThreadID] = make(map[string]int64)
		}
		counts[rw.ThreadID][rw.Type] = rw.Count
	}
	return counts, nil
}
