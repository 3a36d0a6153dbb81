package repository

import (
	"errors"

	"github.com/user/cinetalk/internal/model"
	"gorm.io/gorm"
)

type CommentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

// Create 创建评论
func (r *CommentRepository) Create(comment *model.Comment) error {
	if err := r.db.Create(comment).Error; err != nil {
		return err
	}
	// 回填作者和回复指向，供接口直接返回
	return r.db.Preload("User").Preload("ReplyTo.User").First(comment, comment.ID).Error
}

// FindByID 根据 ID 查找评论
func (r *CommentRepository) FindByID(id uint) (*model.Comment, error) {
	var comment model.Comment
	err := r.db.Preload("User").First(&comment, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &comment, nil
}

// ListTopLevel 获取帖子下的顶层评论，按创建时间倒序
func (r *CommentRepository) ListTopLevel(threadID uint) ([]*model.Comment, error) {
	var comments []*model.Comment
	err := r.db.Preload("User").
		Where("thread_id = ? AND level = ?", threadID, model.CommentLevelTop).
		Order("created_at DESC").
		Find(&comments).Error
	return comments, err
}

// ListReplies 获取某条顶层评论下的回复，按创建时间倒序，
// 带上 ReplyTo 作者信息用于"回复 @某人"展示
func (r *CommentRepository) ListReplies(parentID uint) ([]*model.Comment, error) {
	var comments []*model.Comment
	err := r.db.Preload("User").Preload("ReplyTo.User").
		Where("parent_id = ? AND level = ?", parentID, model.CommentLevelReply).
		Order("created_at DESC").
		Find(&comments).Error
	return comments, err
}

// UpdateContent 更新评论内容
func (r *CommentRepository) UpdateContent(id uint, content string) error {
	return r.db.Model(&model.Comment{}).Where("id = ?", id).Update("content", content).Error
}

// Delete 硬删除评论。顶层评论连同其回复及相关反应在同一事务内级联删除，
// 不会留下悬空的二级回复。指向被删评论的 reply_to_id 展示指向全部置空，
// 自引用外键不会挡住删除
func (r *CommentRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		// 幸存评论上指向本条及其回复的展示指向
		doomed := tx.Model(&model.Comment{}).Select("id").
			Where("id = ? OR parent_id = ?", id, id)
		if err := tx.Model(&model.Comment{}).
			Where("reply_to_id IN (?)", doomed).
			Update("reply_to_id", nil).Error; err != nil {
			return err
		}
		// 本条及其回复的反应
		subQuery := tx.Model(&model.Comment{}).Select("id").
			Where("id = ? OR parent_id = ?", id, id)
		if err := tx.Where("reactable_type = ? AND comment_id IN (?)", model.ReactableComment, subQuery).
			Delete(&model.Reaction{}).Error; err != nil {
			return err
		}
		// 回复
		if err := tx.Where("parent_id = ?", id).Delete(&model.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Comment{}, id).Error
	})
}

// ReplyCounts 批量统计各顶层评论的回复数
func (r *CommentRepository) ReplyCounts(parentIDs []uint) (map[uint]int64, error) {
	counts := make(map[uint]int64)
	if len(parentIDs) == 0 {
		return counts, nil
	}

	type row struct {
		ParentID uint
		Count    int64
	}
	var rows []row
	err := r.db.Model(&model.Comment{}).
		Select("parent_id, COUNT(*) as count").
		Where("parent_id IN ?", parentIDs).
		Group("parent_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, rw := range rows {
		counts[rw.ParentID] = rw.Count
	}
	return counts, nil
}
