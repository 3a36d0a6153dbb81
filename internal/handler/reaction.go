package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/user/cinetalk/internal/middleware"
	"github.com/user/cinetalk/internal/model"
	"github.com/user/cinetalk/internal/service"
	"github.com/user/cinetalk/internal/utils"
)

type reactionRequest struct {
	Type string `json:"type" binding:"required"`
}

// ReactToThread 对帖子提交反应（切换语义）
func (h *Handler) ReactToThread(c *gin.Context) {
	h.applyReaction(c, model.ReactableThread)
}

// ReactToComment 对评论提交反应（切换语义）
func (h *Handler) ReactToComment(c *gin.Context) {
	h.applyReaction(c, model.ReactableComment)
}

func (h *Handler) applyReaction(c *gin.Context, reactableType string) {
	targetID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req reactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "反应类型不能为空")
		return
	}

	result, reaction, err := h.Reactions.Apply(middleware.GetUserID(c), reactableType, targetID, req.Type)
	if err != nil {
		utils.FromError(c, err)
		return
	}

	switch result {
	case service.ReactionCreated:
		utils.SuccessWithStatus(c, http.StatusCreated, "已添加反应", gin.H{"reaction": reaction})
	case service.ReactionUpdated:
		utils.SuccessWithStatus(c, http.StatusOK, "反应已更新", gin.H{"reaction": reaction})
	default:
		utils.SuccessWithStatus(c, http.StatusOK, "反应已取消", gin.H{"reaction": nil})
	}
}
