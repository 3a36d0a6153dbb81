package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/user/cinetalk/internal/middleware"
	"github.com/user/cinetalk/internal/service"
	"github.com/user/cinetalk/internal/utils"
)

type createCommentRequest struct {
	Content   string `json:"content" binding:"required"`
	ParentID  *uint  `json:"parent_id"`
	ReplyToID *uint  `json:"reply_to_id"`
}

type updateCommentRequest struct {
	Content string `json:"content" binding:"required"`
}

// ListComments 帖子下的顶层评论
func (h *Handler) ListComments(c *gin.Context) {
	threadID, ok := parseID(c, "id")
	if !ok {
		return
	}

	comments, err := h.Comments.ListTopLevel(threadID)
	if err != nil {
		utils.FromError(c, err)
		return
	}
	utils.Success(c, comments)
}

// ListReplies 顶层评论下的回复
func (h *Handler) ListReplies(c *gin.Context) {
	parentID, ok := parseID(c, "id")
	if !ok {
		return
	}

	replies, err := h.Comments.ListReplies(parentID)
	if err != nil {
		utils.FromError(c, err)
		return
	}
	utils.Success(c, replies)
}

// CreateComment 发表评论或回复
func (h *Handler) CreateComment(c *gin.Context) {
	threadID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req createCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "评论内容不能为空")
		return
	}

	comment, err := h.Comments.Create(service.CreateCommentInput{
		ThreadID:  threadID,
		AuthorID:  middleware.GetUserID(c),
		Content:   req.Content,
		ParentID:  req.ParentID,
		ReplyToID: req.ReplyToID,
	})
	if err != nil {
		utils.FromError(c, err)
		return
	}
	utils.SuccessWithStatus(c, http.StatusCreated, "评论成功", comment)
}

// UpdateComment 编辑评论（仅作者）
func (h *Handler) UpdateComment(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req updateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "评论内容不能为空")
		return
	}

	comment, err := h.Comments.Update(middleware.GetUserID(c), id, req.Content)
	if err != nil {
		utils.FromError(c, err)
		return
	}
	utils.Success(c, comment)
}

// DeleteComment 删除评论（仅作者），顶层评论连同回复一起删
func (h *Handler) DeleteComment(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.Comments.Delete(middleware.GetUserID(c), id); err != nil {
		utils.FromError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
