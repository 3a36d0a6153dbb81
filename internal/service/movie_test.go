package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/user/cinetalk/internal/apperr"
	"github.com/user/cinetalk/internal/model"
	"github.com/user/cinetalk/internal/utils"
)

type fakeMovieStore struct {
	nextID       uint
	movies       map[uint]*model.Movie
	threadCounts map[uint]int64
	findCalls    int
	listCalls    int
}

func newFakeMovieStore() *fakeMovieStore {
	return &fakeMovieStore{
		movies:       map[uint]*model.Movie{},
		threadCounts: map[uint]int64{},
	}
}

func (f *fakeMovieStore) put(m *model.Movie) *model.Movie {
	f.nextID++
	m.ID = f.nextID
	f.movies[m.ID] = m
	return m
}

func (f *fakeMovieStore) Create(movie *model.Movie) error {
	f.put(movie)
	return nil
}

func (f *fakeMovieStore) FindByID(id uint) (*model.Movie, error) {
	f.findCalls++
	return f.movies[id], nil
}

func (f *fakeMovieStore) ListAll() ([]*model.Movie, error) {
	f.listCalls++
	var out []*model.Movie
	for _, m := range f.movies {
		out = append(out, m)
	}
	return out, nil
}

func (f *fakeMovieStore) Update(id uint, fields map[string]interface{}) error {
	if m, ok := f.movies[id]; ok {
		if v, ok := fields["title"].(string); ok {
			m.Title = v
		}
		if v, ok := fields["director"].(string); ok {
			m.Director = v
		}
	}
	return nil
}

func (f *fakeMovieStore) Delete(id uint) error {
	delete(f.movies, id)
	return nil
}

func (f *fakeMovieStore) ThreadCount(movieID uint) (int64, error) {
	return f.threadCounts[movieID], nil
}

func newMovieService() (*MovieService, *fakeMovieStore) {
	utils.InitCache() // 每个用例独享全局缓存
	store := newFakeMovieStore()
	return NewMovieService(store), store
}

// 详情读两次只回源一次，第二次命中缓存
func TestMovieGet_Cached(t *testing.T) {
	svc, store := newMovieService()
	movie := store.put(&model.Movie{Title: "教父", Director: "科波拉"})

	got, err := svc.Get(movie.ID)
	require.NoError(t, err)
	require.Equal(t, "教父", got.Title)

	_, err = svc.Get(movie.ID)
	require.NoError(t, err)
	require.Equal(t, 1, store.findCalls)

	_, err = svc.Get(999)
	require.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestMovieList_Cached(t *testing.T) {
	svc, store := newMovieService()
	store.put(&model.Movie{Title: "教父"})

	movies, err := svc.List()
	require.NoError(t, err)
	require.Len(t, movies, 1)

	_, err = svc.List()
	require.NoError(t, err)
	require.Equal(t, 1, store.listCalls)
}

// 写路径要同步失效列表缓存和详情缓存
func TestMovieWrite_InvalidatesCache(t *testing.T) {
	svc, store := newMovieService()
	movie := store.put(&model.Movie{Title: "教父"})

	_, err := svc.List()
	require.NoError(t, err)
	_, err = svc.Get(movie.ID)
	require.NoError(t, err)

	updated, err := svc.Update(movie.ID, map[string]interface{}{"title": "教父2"})
	require.NoError(t, err)
	require.Equal(t, "教父2", updated.Title)

	got, err := svc.Get(movie.ID)
	require.NoError(t, err)
	require.Equal(t, "教父2", got.Title)

	_, err = svc.Create("现代启示录", "科波拉", time.Date(1979, 8, 15, 0, 0, 0, 0, time.UTC), "")
	require.NoError(t, err)

	movies, err := svc.List()
	require.NoError(t, err)
	require.Len(t, movies, 2)
}

func TestMovieDelete(t *testing.T) {
	svc, store := newMovieService()
	movie := store.put(&model.Movie{Title: "教父"})

	// 片下还有讨论帖时拒绝删除，电影原样保留
	store.threadCounts[movie.ID] = 2
	require.ErrorIs(t, svc.Delete(movie.ID), apperr.ErrConflict)
	require.NotNil(t, store.movies[movie.ID])

	store.threadCounts[movie.ID] = 0
	require.NoError(t, svc.Delete(movie.ID))
	require.ErrorIs(t, svc.Delete(movie.ID), apperr.ErrNotFound)

	_, err := svc.Get(movie.ID)
	require.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestMovieCreate_Validation(t *testing.T) {
	svc, _ := newMovieService()
	_, err := svc.Create("   ", "", time.Time{}, "")
	require.ErrorIs(t, err, apperr.ErrInvalidArgument)
}
