package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/user/cinetalk/internal/utils"
)

type movieRequest struct {
	Title       string `json:"title" binding:"required"`
	Director    string `json:"director"`
	ReleaseDate string `json:"release_date" binding:"required"` // YYYY-MM-DD
	ImagePath   string `json:"image_path"`
}

// ListMovies 片库列表
func (h *Handler) ListMovies(c *gin.Context) {
	movies, err := h.Movies.List()
	if err != nil {
		utils.FromError(c, err)
		return
	}
	utils.Success(c, movies)
}

// GetMovie 电影详情
func (h *Handler) GetMovie(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	movie, err := h.Movies.Get(id)
	if err != nil {
		utils.FromError(c, err)
		return
	}
	utils.Success(c, movie)
}

// CreateMovie 新增电影（管理员）
func (h *Handler) CreateMovie(c *gin.Context) {
	var req movieRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "电影信息不完整")
		return
	}

	releaseDate, err := time.Parse("2006-01-02", req.ReleaseDate)
	if err != nil {
		utils.BadRequest(c, "上映日期格式应为 YYYY-MM-DD")
		return
	}

	movie, err := h.Movies.Create(req.Title, req.Director, releaseDate, req.ImagePath)
	if err != nil {
		utils.FromError(c, err)
		return
	}
	utils.SuccessWithStatus(c, http.StatusCreated, "电影已创建", movie)
}

// UpdateMovie 更新电影（管理员）
func (h *Handler) UpdateMovie(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req movieRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "电影信息不完整")
		return
	}

	releaseDate, err := time.Parse("2006-01-02", req.ReleaseDate)
	if err != nil {
		utils.BadRequest(c, "上映日期格式应为 YYYY-MM-DD")
		return
	}

	movie, err := h.Movies.Update(id, map[string]interface{}{
		"title":        req.Title,
		"director":     req.Director,
		"release_date": releaseDate,
		"image_path":   req.ImagePath,
	})
	if err != nil {
		utils.FromError(c, err)
		return
	}
	utils.Success(c, movie)
}

// DeleteMovie 删除电影（管理员）
func (h *Handler) DeleteMovie(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.Movies.Delete(id); err != nil {
		utils.FromError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
