package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/user/cinetalk/internal/apperr"
	"github.com/user/cinetalk/internal/model"
	"github.com/user/cinetalk/internal/utils"
	"golang.org/x/sync/singleflight"
)

const movieListCacheKey = "movies:all"

// movieStore 片库服务依赖的存储能力
type movieStore interface {
	Create(movie *model.Movie) error
	FindByID(id uint) (*model.Movie, error)
	ListAll() ([]*model.Movie, error)
	Update(id uint, fields map[string]interface{}) error
	Delete(id uint) error
	ThreadCount(movieID uint) (int64, error)
}

// MovieService 片库读写。电影是基本不变的参考数据，读路径走缓存，
// 写路径（仅管理员）同步失效缓存
type MovieService struct {
	movies      movieStore
	detailCache *utils.TTLCache[*model.Movie]
	sf          singleflight.Group
}

func NewMovieService(movies movieStore) *MovieService {
	return &MovieService{
		movies:      movies,
		detailCache: utils.NewTTLCache[*model.Movie](512, 10*time.Minute),
	}
}

// List 获取全部电影，结果进全局缓存
func (s *MovieService) List() ([]*model.Movie, error) {
	if cached, ok := utils.CacheGet(movieListCacheKey); ok {
		return cached.([]*model.Movie), nil
	}

	movies, err := s.movies.ListAll()
	if err != nil {
		return nil, apperr.ErrInternal
	}
	utils.CacheSet(movieListCacheKey, movies, 10*time.Minute)
	return movies, nil
}

// Get 获取电影详情。缓存未命中时用 singleflight 合并并发回源
func (s *MovieService) Get(id uint) (*model.Movie, error) {
	key := fmt.Sprintf("movie:%d", id)
	if movie, ok := s.detailCache.Get(key); ok {
		return movie, nil
	}

	v, err, _ := s.sf.Do(key, func() (interface{}, error) {
		movie, err := s.movies.FindByID(id)
		if err != nil {
			return nil, err
		}
		if movie != nil {
			s.detailCache.Set(key, movie)
		}
		return movie, nil
	})
	if err != nil {
		return nil, apperr.ErrInternal
	}

	movie := v.(*model.Movie)
	if movie == nil {
		return nil, apperr.Wrap(apperr.ErrNotFound, "电影不存在")
	}
	return movie, nil
}

// Create 新增电影（管理员操作）
func (s *MovieService) Create(title, director string, releaseDate time.Time, imagePath string) (*model.Movie, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, apperr.Wrap(apperr.ErrInvalidArgument, "电影标题不能为空")
	}

	movie := &model.Movie{
		Title:       title,
		Director:    strings.TrimSpace(director),
		ReleaseDate: releaseDate,
		ImagePath:   imagePath,
	}
	if err := s.movies.Create(movie); err != nil {
		return nil, apperr.ErrInternal
	}
	utils.CacheDelete(movieListCacheKey)
	return movie, nil
}

// Update 更新电影信息（管理员操作）
func (s *MovieService) Update(id uint, fields map[string]interface{}) (*model.Movie, error) {
	movie, err := s.movies.FindByID(id)
	if err != nil {
		return nil, apperr.ErrInternal
	}
	if movie == nil {
		return nil, apperr.Wrap(apperr.ErrNotFound, "电影不存在")
	}

	if err := s.movies.Update(id, fields); err != nil {
		return nil, apperr.ErrInternal
	}

	s.detailCache.Delete(fmt.Sprintf("movie:%d", id))
	utils.CacheDelete(movieListCacheKey)

	updated, err := s.movies.FindByID(id)
	if err != nil {
		return nil, apperr.ErrInternal
	}
	return updated, nil
}

// Delete 删除电影（管理员操作）。
// 片下还有讨论帖时拒绝删除，引用完整性优先，不级联清用户内容
func (s *MovieService) Delete(id uint) error {
	movie, err := s.movies.FindByID(id)
	if err != nil {
		return apperr.ErrInternal
	}
	if movie == nil {
		return apperr.Wrap(apperr.ErrNotFound, "电影不存在")
	}

	threads, err := s.movies.ThreadCount(id)
	if err != nil {
		return apperr.ErrInternal
	}
	if threads > 0 {
		return apperr.Wrap(apperr.ErrConflict, "该电影下仍有讨论帖，无法删除")
	}

	if err := s.movies.Delete(id); err != nil {
		return apperr.ErrInternal
	}
	s.detailCache.Delete(fmt.Sprintf("movie:%d", id))
	utils.CacheDelete(movieListCacheKey)
	return nil
}
