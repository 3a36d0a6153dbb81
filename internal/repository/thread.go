package repository

import (
	"errors"

	"github.com/user/cinetalk/internal/model"
	"gorm.io/gorm"
)

type ThreadRepository struct {
	db *gorm.DB
}

func NewThreadRepository(db *gorm.DB) *ThreadRepository {
	return &ThreadRepository{db: db}
}

// Create 创建帖子
func (r *ThreadRepository) Create(thread *model.Thread) error {
	return r.db.Create(thread).Error
}

// FindByID 根据 ID 查找帖子
func (r *ThreadRepository) FindByID(id uint) (*model.Thread, error) {
	var thread model.Thread
	err := r.db.Preload("User").First(&thread, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &thread, nil
}

// ListByMovie 获取某部电影下的帖子列表，按创建时间倒序
func (r *ThreadRepository) ListByMovie(movieID uint) ([]*model.Thread, error) {
	var threads []*model.Thread
	err := r.db.Preload("User").
		Where("movie_id = ?", movieID).
		Order("created_at DESC").
		Find(&threads).Error
	return threads, err
}

// Update 更新帖子标题和描述
func (r *ThreadRepository) Update(id uint, fields map[string]interface{}) error {
	return r.db.Model(&model.Thread{}).Where("id = ?", id).Updates(fields).Error
}

// Delete 硬删除帖子，同一事务内清掉帖子下的评论和所有相关反应，
// 避免留下半删状态
func (r *ThreadRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		// 帖子下评论的反应
		subQuery := tx.Model(&model.Comment{}).Select("id").Where("thread_id = ?", id)
		if err := tx.Where("reactable_type = ? AND comment_id IN (?)", model.ReactableComment, subQuery).
			Delete(&model.Reaction{}).Error; err != nil {
			return err
		}
		// 帖子自身的反应
		if err := tx.Where("reactable_type = ? AND thread_id = ?", model.ReactableThread, id).
			Delete(&model.Reaction{}).Error; err != nil {
			return err
		}
		if err := tx.Where("thread_id = ?", id).Delete(&model.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Thread{}, id).Error
	})
}

// CommentCounts 批量统计各帖子的评论数
func (r *ThreadRepository) CommentCounts(threadIDs []uint) (map[uint]int64, error) {
	counts := make(map[uint]int64)
	if len(threadIDs) == 0 {
		return counts, nil
	}

	type row struct {
		ThreadID uint
		Count    int64
	}
	var rows []row
	err := r.db.Model(&model.Comment{}).
		Select("thread_id, COUNT(*) as count").
		Where("thread_id IN ?", threadIDs).
		Group("thread_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, rw := range rows {
		counts[rw.ThreadID] = rw.Count
	}
	return counts, nil
}
