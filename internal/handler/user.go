package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/user/cinetalk/internal/middleware"
	"github.com/user/cinetalk/internal/service"
	"github.com/user/cinetalk/internal/utils"
)

type updateProfileRequest struct {
	Nickname        *string `json:"nickname"`
	Bio             *string `json:"bio"`
	FavoriteRole    *string `json:"favorite_role"`
	FavoriteMovieID *uint   `json:"favorite_movie_id"`
	AvatarPath      *string `json:"avatar_path"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=6"`
}

// Me 获取当前用户资料
func (h *Handler) Me(c *gin.Context) {
	user, err := h.Users.Get(middleware.GetUserID(c))
	if err != nil {
		utils.FromError(c, err)
		return
	}
	utils.Success(c, user)
}

// UpdateMe 更新个人资料
func (h *Handler) UpdateMe(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "资料格式不正确")
		return
	}

	user, err := h.Users.UpdateProfile(middleware.GetUserID(c), service.UpdateProfileInput{
		Nickname:        req.Nickname,
		Bio:             req.Bio,
		FavoriteRole:    req.FavoriteRole,
		FavoriteMovieID: req.FavoriteMovieID,
		AvatarPath:      req.AvatarPath,
	})
	if err != nil {
		utils.FromError(c, err)
		return
	}
	utils.Success(c, user)
}

// ChangePassword 修改密码
func (h *Handler) ChangePassword(c *gin.Context) {
	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "密码格式不正确")
		return
	}

	if err := h.Users.ChangePassword(middleware.GetUserID(c), req.CurrentPassword, req.NewPassword); err != nil {
		utils.FromError(c, err)
		return
	}
	utils.Success(c, nil)
}

// DeleteMe 注销账号，名下仍有内容时返回 409
func (h *Handler) DeleteMe(c *gin.Context) {
	if err := h.Users.DeleteAccount(middleware.GetUserID(c)); err != nil {
		utils.FromError(c, err)
		return
	}
	middleware.ClearAuth(c)
	c.Status(http.StatusNoContent)
}
