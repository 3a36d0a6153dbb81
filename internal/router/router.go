package router

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/user/cinetalk/internal/handler"
	"github.com/user/cinetalk/internal/middleware"
)

// RegisterValidations 注册自定义参数校验规则
func RegisterValidations() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		// 公开用户名不允许含 @，登录时靠 @ 区分邮箱和用户名
		v.RegisterValidation("handle", func(fl validator.FieldLevel) bool {
			name := fl.Field().String()
			return len(name) >= 2 && len(name) <= 20 && !strings.Contains(name, "@")
		})
	}
}

// RegisterRoutes 注册所有路由
func RegisterRoutes(r *gin.Engine, h *handler.Handler) {
	// 健康检查
	r.GET("/health", h.Health)

	// ==================== 认证 ====================
	auth := r.Group("/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
		auth.POST("/logout", middleware.RequireAuth(h.Config.AppSecret), h.Logout)
	}

	// ==================== 公开读取 ====================
	public := r.Group("")
	public.Use(middleware.OptionalAuth(h.Config.AppSecret))
	{
		public.GET("/movies", h.ListMovies)
		public.GET("/movies/:id", h.GetMovie)
		public.GET("/movies/:id/threads", h.ListThreads)
		public.GET("/threads/:id", h.GetThread)
		public.GET("/threads/:id/comments", h.ListComments)
		public.GET("/comments/:id/replies", h.ListReplies)
	}

	// ==================== 需要登录 ====================
	authed := r.Group("")
	authed.Use(middleware.RequireAuth(h.Config.AppSecret))
	{
		authed.POST("/movies/:id/threads", h.CreateThread)
		authed.PUT("/threads/:id", h.UpdateThread)
		authed.DELETE("/threads/:id", h.DeleteThread)

		authed.POST("/threads/:id/comments", h.CreateComment)
		authed.PUT("/comments/:id", h.UpdateComment)
		authed.DELETE("/comments/:id", h.DeleteComment)

		authed.PUT("/threads/:id/reaction", h.ReactToThread)
		authed.PUT("/comments/:id/reaction", h.ReactToComment)

		authed.GET("/users/me", h.Me)
		authed.PUT("/users/me", h.UpdateMe)
		authed.PUT("/users/me/password", h.ChangePassword)
		authed.DELETE("/users/me", h.DeleteMe)
	}

	// ==================== 片库管理（管理员）====================
	admin := r.Group("/movies")
	admin.Use(middleware.RequireAuth(h.Config.AppSecret))
	admin.Use(middleware.RequireAdmin())
	{
		admin.POST("", h.CreateMovie)
		admin.PUT("/:id", h.UpdateMovie)
		admin.DELETE("/:id", h.DeleteMovie)
	}
}
