package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/user/cinetalk/internal/middleware"
	"github.com/user/cinetalk/internal/utils"
)

type threadRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
}

// ListThreads 某部电影下的帖子列表
func (h *Handler) ListThreads(c *gin.Context) {
	movieID, ok := parseID(c, "id")
	if !ok {
		return
	}

	threads, err := h.Threads.ListByMovie(movieID)
	if err != nil {
		utils.FromError(c, err)
		return
	}
	utils.Success(c, threads)
}

// GetThread 帖子详情
func (h *Handler) GetThread(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	thread, err := h.Threads.Get(id)
	if err != nil {
		utils.FromError(c, err)
		return
	}
	utils.Success(c, thread)
}

// CreateThread 在某部电影下发帖
func (h *Handler) CreateThread(c *gin.Context) {
	movieID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req threadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "帖子标题不能为空")
		return
	}

	thread, err := h.Threads.Create(middleware.GetUserID(c), movieID, req.Title, req.Description)
	if err != nil {
		utils.FromError(c, err)
		return
	}
	utils.SuccessWithStatus(c, http.StatusCreated, "发帖成功", thread)
}

// UpdateThread 编辑帖子（仅楼主）
func (h *Handler) UpdateThread(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req threadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "帖子标题不能为空")
		return
	}

	thread, err := h.Threads.Update(middleware.GetUserID(c), id, req.Title, req.Description)
	if err != nil {
		utils.FromError(c, err)
		return
	}
	utils.Success(c, thread)
}

// DeleteThread 删除帖子（仅楼主）
func (h *Handler) DeleteThread(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.Threads.Delete(middleware.GetUserID(c), id); err != nil {
		utils.FromError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
