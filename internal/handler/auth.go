package handler

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/user/cinetalk/internal/middleware"
	"github.com/user/cinetalk/internal/model"
	"github.com/user/cinetalk/internal/utils"
)

type registerRequest struct {
	Username string `json:"username" binding:"required,handle"`
	Email    string `json:"email" binding:"required,email"`
	Nickname string `json:"nickname"`
	Password string `json:"password" binding:"required,min=6"`
}

type loginRequest struct {
	Identifier string `json:"identifier" binding:"required"`
	Password   string `json:"password" binding:"required"`
}

// Register 注册
func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "注册信息不完整或格式不正确")
		return
	}

	user, err := h.Users.Register(req.Username, req.Email, req.Nickname, req.Password)
	if err != nil {
		utils.FromError(c, err)
		return
	}

	utils.Success(c, user)
}

// Login 登录，标识可以是用户名或邮箱
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Unauthorized(c, "账号或密码错误")
		return
	}

	user, err := h.Users.Login(req.Identifier, req.Password)
	if err != nil {
		utils.FromError(c, err)
		return
	}

	token, err := middleware.GenerateToken(user.ID, user.IsAdmin, h.Config.AppSecret, h.Config.SessionExpiry)
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "登录失败，请重试")
		return
	}
	middleware.SetAuthCookie(c, token, h.Config.SessionExpiry)

	// 保存 UserInfo 到 Session
	session := sessions.Default(c)
	session.Set("userinfo", model.SessionUser{
		ID:       user.ID,
		Username: user.Username,
		IsAdmin:  user.IsAdmin,
	})
	session.Save()

	utils.Success(c, gin.H{
		"id":       user.ID,
		"is_admin": user.IsAdmin,
	})
}

// Logout 登出
func (h *Handler) Logout(c *gin.Context) {
	middleware.ClearAuth(c)
	utils.Success(c, nil)
}
