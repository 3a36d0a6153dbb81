package repository

import (
	"errors"

	"github.com/user/cinetalk/internal/model"
	"gorm.io/gorm"
)

type MovieRepository struct {
	db *gorm.DB
}

func NewMovieRepository(db *gorm.DB) *MovieRepository {
	return &MovieRepository{db: db}
}

// Create 创建电影
func (r *MovieRepository) Create(movie *model.Movie) error {
	return r.db.Create(movie).Error
}

// FindByID 根据 ID 查找电影
func (r *MovieRepository) FindByID(id uint) (*model.Movie, error) {
	var movie model.Movie
	err := r.db.First(&movie, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &movie, nil
}

// ListAll 获取片库全部电影，按上映时间倒序
func (r *MovieRepository) ListAll() ([]*model.Movie, error) {
	var movies []*model.Movie
	err := r.db.Order("release_date DESC").Find(&movies).Error
	return movies, err
}

// Update 更新电影信息
func (r *MovieRepository) Update(id uint, fields map[string]interface{}) error {
	return r.db.Model(&model.Movie{}).Where("id = ?", id).Updates(fields).Error
}

// Delete 删除电影，同一事务内清掉用户的收藏指向
func (r *MovieRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.User{}).
			Where("favorite_movie_id = ?", id).
			Update("favorite_movie_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Movie{}, id).Error
	})
}

// ThreadCount 统计电影下的帖子数，用于删除前的引用检查
func (r *MovieRepository) ThreadCount(movieID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.Thread{}).Where("movie_id = ?", movieID).Count(&count).Error
	return count, err
}
