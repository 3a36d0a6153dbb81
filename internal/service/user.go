package service

import (
	"errors"
	"strings"

	"github.com/user/cinetalk/internal/apperr"
	"github.com/user/cinetalk/internal/model"
	"gorm.io/gorm"
)

// userStore 用户服务依赖的存储能力
type userStore interface {
	Create(username, email, nickname, password string) (*model.User, error)
	FindByID(id uint) (*model.User, error)
	FindByUsername(username string) (*model.User, error)
	FindByEmail(email string) (*model.User, error)
	CheckPassword(user *model.User, password string) bool
	UpdateProfile(userID uint, fields map[string]interface{}) error
	UpdatePassword(userID uint, newPassword string) error
	OwnedContentCount(userID uint) (int64, error)
	SoftDelete(userID uint) error
}

// UpdateProfileInput 更新个人资料的入参，nil 表示不改
type UpdateProfileInput struct {
	Nickname        *string
	Bio             *string
	FavoriteRole    *string
	FavoriteMovieID *uint
	AvatarPath      *string
}

// UserService 注册、登录和个人资料维护
type UserService struct {
	users  userStore
	movies movieFinder
}

func NewUserService(users userStore, movies movieFinder) *UserService {
	return &UserService{users: users, movies: movies}
}

// Register 注册新用户。
// 用户名不允许含 @（登录时靠 @ 区分邮箱和用户名），
// 用户名、邮箱冲突时明确告知撞的是哪个字段
func (s *UserService) Register(username, email, nickname, password string) (*model.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	nickname = strings.TrimSpace(nickname)

	if len(username) < 2 || len(username) > 20 {
		return nil, apperr.Wrap(apperr.ErrInvalidArgument, "用户名应在 2-20 个字符之间")
	}
	if strings.Contains(username, "@") {
		return nil, apperr.Wrap(apperr.ErrInvalidArgument, "用户名不能包含 @")
	}
	if email == "" || !strings.Contains(email, "@") {
		return nil, apperr.Wrap(apperr.ErrInvalidArgument, "请输入有效的邮箱地址")
	}
	if len(password) < 6 {
		return nil, apperr.Wrap(apperr.ErrInvalidArgument, "密码至少需要 6 个字符")
	}
	if nickname == "" {
		nickname = username
	}

	if existing, err := s.users.FindByUsername(username); err != nil {
		return nil, apperr.ErrInternal
	} else if existing != nil {
		return nil, apperr.Wrap(apperr.ErrConflict, "用户名已被占用")
	}
	if existing, err := s.users.FindByEmail(email); err != nil {
		return nil, apperr.ErrInternal
	} else if existing != nil {
		return nil, apperr.Wrap(apperr.ErrConflict, "邮箱已被注册")
	}

	user, err := s.users.Create(username, email, nickname, password)
	if err != nil {
		// 存在性检查和写入之间的并发注册，由唯一索引兜底
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Wrap(apperr.ErrConflict, "用户名或邮箱已被注册")
		}
		return nil, apperr.ErrInternal
	}
	return user, nil
}

// Login 登录，标识可以是用户名或邮箱。
// 无论哪个字段错，返回的文案都一样，不暴露账号是否存在
func (s *UserService) Login(identifier, password string) (*model.User, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" || password == "" {
		return nil, apperr.Wrap(apperr.ErrUnauthorized, "账号或密码错误")
	}

	var (
		user *model.User
		err  error
	)
	if strings.Contains(identifier, "@") {
		user, err = s.users.FindByEmail(identifier)
	} else {
		user, err = s.users.FindByUsername(identifier)
	}
	if err != nil {
		return nil, apperr.ErrInternal
	}
	if user == nil || !s.users.CheckPassword(user, password) {
		return nil, apperr.Wrap(apperr.ErrUnauthorized, "账号或密码错误")
	}

	return user, nil
}

// Get 获取用户资料
func (s *UserService) Get(id uint) (*model.User, error) {
	user, err := s.users.FindByID(id)
	if err != nil {
		return nil, apperr.ErrInternal
	}
	if user == nil {
		return nil, apperr.Wrap(apperr.ErrNotFound, "用户不存在")
	}
	return user, nil
}

// UpdateProfile 更新个人资料
func (s *UserService) UpdateProfile(callerID uint, input UpdateProfileInput) (*model.User, error) {
	fields := map[string]interface{}{}
	if input.Nickname != nil {
		nickname := strings.TrimSpace(*input.Nickname)
		if nickname == "" {
			return nil, apperr.Wrap(apperr.ErrInvalidArgument, "昵称不能为空")
		}
		fields["nickname"] = nickname
	}
	if input.Bio != nil {
		fields["bio"] = strings.TrimSpace(*input.Bio)
	}
	if input.FavoriteRole != nil {
		fields["favorite_role"] = strings.TrimSpace(*input.FavoriteRole)
	}
	if input.FavoriteMovieID != nil {
		movie, err := s.movies.FindByID(*input.FavoriteMovieID)
		if err != nil {
			return nil, apperr.ErrInternal
		}
		if movie == nil {
			return nil, apperr.Wrap(apperr.ErrInvalidArgument, "收藏的电影不存在")
		}
		fields["favorite_movie_id"] = *input.FavoriteMovieID
	}
	if input.AvatarPath != nil {
		fields["avatar_path"] = strings.TrimSpace(*input.AvatarPath)
	}

	if len(fields) > 0 {
		if err := s.users.UpdateProfile(callerID, fields); err != nil {
			return nil, apperr.ErrInternal
		}
	}
	return s.Get(callerID)
}

// ChangePassword 修改密码，需要先验证当前密码
func (s *UserService) ChangePassword(callerID uint, currentPassword, newPassword string) error {
	user, err := s.users.FindByID(callerID)
	if err != nil {
		return apperr.ErrInternal
	}
	if user == nil {
		return apperr.Wrap(apperr.ErrNotFound, "用户不存在")
	}

	if !s.users.CheckPassword(user, currentPassword) {
		return apperr.Wrap(apperr.ErrInvalidArgument, "当前密码错误")
	}
	if len(newPassword) < 6 {
		return apperr.Wrap(apperr.ErrInvalidArgument, "新密码至少需要 6 个字符")
	}

	if err := s.users.UpdatePassword(callerID, newPassword); err != nil {
		return apperr.ErrInternal
	}
	return nil
}

// DeleteAccount 注销账号。名下还有帖子或评论时拒绝，
// 引用完整性优先，不做级联
func (s *UserService) DeleteAccount(callerID uint) error {
	user, err := s.users.FindByID(callerID)
	if err != nil {
		return apperr.ErrInternal
	}
	if user == nil {
		return apperr.Wrap(apperr.ErrNotFound, "用户不存在")
	}

	owned, err := s.users.OwnedContentCount(callerID)
	if err != nil {
		return apperr.ErrInternal
	}
	if owned > 0 {
		return apperr.Wrap(apperr.ErrConflict, "名下仍有帖子或评论，无法注销")
	}

	if err := s.users.SoftDelete(callerID); err != nil {
		return apperr.ErrInternal
	}
	return nil
}
