package middleware

import (
	"net/http"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// Claims JWT 声明，载荷只放身份和管理员标记
type Claims struct {
	UserID  uint `json:"user_id"`
	IsAdmin bool `json:"is_admin"`
	jwt.RegisteredClaims
}

// RequireAuth 必须登录中间件。
// Token 缺失、伪造或过期一律 401，同时清掉 Cookie 和缓存的会话状态
func RequireAuth(appSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := extractClaims(c, appSecret)
		if err != nil {
			ClearAuth(c)
			c.JSON(http.StatusUnauthorized, gin.H{
				"code": 401, "message": "未登录", "data": nil, "success": false,
			})
			c.Abort()
			return
		}

		// 将用户信息存入上下文，后续领域调用显式传参
		c.Set("user_id", claims.UserID)
		c.Set("is_admin", claims.IsAdmin)

		c.Next()
	}
}

// OptionalAuth 可选登录中间件（不强制要求登录）
func OptionalAuth(appSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := extractClaims(c, appSecret)
		if err == nil {
			c.Set("user_id", claims.UserID)
			c.Set("is_admin", claims.IsAdmin)
		}
		c.Next()
	}
}

// RequireAdmin 管理员权限中间件
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		isAdmin, exists := c.Get("is_admin")
		if !exists || isAdmin != true {
			c.JSON(http.StatusForbidden, gin.H{
				"code": 403, "message": "需要管理员权限", "data": nil, "success": false,
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

// extractClaims 从 Cookie 中提取并校验 JWT Claims
func extractClaims(c *gin.Context, appSecret string) (*Claims, error) {
	tokenString, err := c.Cookie("token")
	if err != nil || tokenString == "" {
		return nil, jwt.ErrTokenMalformed
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(appSecret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}

	return claims, nil
}

// GetUserID 从上下文获取用户 ID（未登录返回 0）
func GetUserID(c *gin.Context) uint {
	if userID, exists := c.Get("user_id"); exists {
		return userID.(uint)
	}
	return 0
}

// IsAdmin 从上下文获取管理员标记
func IsAdmin(c *gin.Context) bool {
	if isAdmin, exists := c.Get("is_admin"); exists {
		return isAdmin.(bool)
	}
	return false
}

// GenerateToken 生成 JWT Token
func GenerateToken(userID uint, isAdmin bool, appSecret string, expiry time.Duration) (string, error) {
	claims := &Claims{
		UserID:  userID,
		IsAdmin: isAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(appSecret))
}

// SetAuthCookie 下发登录 Cookie：HttpOnly + SameSite Strict，有效期固定
func SetAuthCookie(c *gin.Context, token string, expiry time.Duration) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie("token", token, int(expiry.Seconds()), "/", "", false, true)
}

// ClearAuth 清除登录 Cookie 和缓存的会话状态
func ClearAuth(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie("token", "", -1, "/", "", false, true)

	session := sessions.Default(c)
	session.Clear()
	session.Save()
}
