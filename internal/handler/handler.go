package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/user/cinetalk/internal/config"
	"github.com/user/cinetalk/internal/repository"
	"github.com/user/cinetalk/internal/service"
	"github.com/user/cinetalk/internal/utils"
)

// Handler HTTP 处理器
type Handler struct {
	Repos     *repository.Repositories
	Config    *config.Config
	Users     *service.UserService
	Movies    *service.MovieService
	Threads   *service.ThreadService
	Comments  *service.CommentService
	Reactions *service.ReactionService
}

// NewHandler 创建处理器
func NewHandler(repos *repository.Repositories, cfg *config.Config) *Handler {
	return &Handler{
		Repos:     repos,
		Config:    cfg,
		Users:     service.NewUserService(repos.User, repos.Movie),
		Movies:    service.NewMovieService(repos.Movie),
		Threads:   service.NewThreadService(repos.Thread, repos.Movie, repos.Reaction),
		Comments:  service.NewCommentService(repos.Comment, repos.Thread, repos.Reaction),
		Reactions: service.NewReactionService(repos.Reaction, repos.Thread, repos.Comment),
	}
}

// Health 健康检查
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// parseID 解析路径中的数字 ID，非法时直接回 400
func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		utils.BadRequest(c, "非法的 ID")
		return 0, false
	}
	return uint(id), true
}
