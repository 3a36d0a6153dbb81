package repository

import (
	"errors"
	"time"

	"github.com/user/cinetalk/internal/model"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create 创建用户
func (r *UserRepository) Create(username, email, nickname, password string) (*model.User, error) {
	// 密码哈希
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username:     username,
		Email:        email,
		Nickname:     nickname,
		PasswordHash: string(hash),
	}

	if err := r.db.Create(user).Error; err != nil {
		return nil, err
	}

	return user, nil
}

// FindByID 根据 ID 查找用户（已注销用户视为不存在）
func (r *UserRepository) FindByID(id uint) (*model.User, error) {
	var user model.User
	err := r.db.Where("is_deleted = ?", false).First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// FindByUsername 根据用户名查找用户
func (r *UserRepository) FindByUsername(username string) (*model.User, error) {
	var user model.User
	err := r.db.Where("username = ? AND is_deleted = ?", username, false).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// FindByEmail 根据邮箱查找用户
func (r *UserRepository) FindByEmail(email string) (*model.User, error) {
	var user model.User
	err := r.db.Where("email = ? AND is_deleted = ?", email, false).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// CheckPassword 验证密码
func (r *UserRepository) CheckPassword(user *model.User, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password))
	return err == nil
}

// UpdateProfile 更新个人资料
func (r *UserRepository) UpdateProfile(userID uint, fields map[string]interface{}) error {
	return r.db.Model(&model.User{}).Where("id = ?", userID).Updates(fields).Error
}

// UpdatePassword 更新密码
func (r *UserRepository) UpdatePassword(userID uint, newPassword string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return r.db.Model(&model.User{}).Where("id = ?", userID).Update("password_hash", string(hash)).Error
}

// OwnedContentCount 统计用户名下的帖子和评论数量，用于注销前的引用检查
func (r *UserRepository) OwnedContentCount(userID uint) (int64, error) {
	var threadCount, commentCount int64
	if err := r.db.Model(&model.Thread{}).Where("user_id = ?", userID).Count(&threadCount).Error; err != nil {
		return 0, err
	}
	if err := r.db.Model(&model.Comment{}).Where("user_id = ?", userID).Count(&commentCount).Error; err != nil {
		return 0, err
	}
	return threadCount + commentCount, nil
}

// SoftDelete 注销用户（打软删标记，不做物理删除）
func (r *UserRepository) SoftDelete(userID uint) error {
	now := time.Now()
	return r.db.Model(&model.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"is_deleted": true,
		"deleted_at": &now,
	}).Error
}
