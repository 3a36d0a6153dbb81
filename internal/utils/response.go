package utils

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/user/cinetalk/internal/apperr"
)

// Response 统一API响应结构
type Response struct {
	Code    int         `json:"code"`    // 状态码
	Message string      `json:"message"` // 消息
	Data    interface{} `json:"data"`    // 数据
	Success bool        `json:"success"` // 是否成功
}

// Success 返回成功响应
func Success(c *gin.Context, data interface{}) {
	c.JSON(200, Response{
		Code:    200,
		Message: "success",
		Data:    data,
		Success: true,
	})
}

// SuccessWithStatus 返回成功响应并指定状态码（201 创建、204 删除等）
func SuccessWithStatus(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, Response{
		Code:    status,
		Message: message,
		Data:    data,
		Success: true,
	})
}

// Error 返回错误响应
func Error(c *gin.Context, code int, message string) {
	c.JSON(code, Response{
		Code:    code,
		Message: message,
		Data:    nil,
		Success: false,
	})
}

// FromError 把领域错误翻译为对应的 HTTP 响应。
// 非领域错误只记日志，对外统一 500 文案
func FromError(c *gin.Context, err error) {
	status := apperr.HTTPStatus(err)
	if status == 500 {
		log.Printf("[internal error] %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	}
	Error(c, status, apperr.Message(err))
}

// BadRequest 返回400错误
func BadRequest(c *gin.Context, message string) {
	Error(c, 400, message)
}

// Unauthorized 返回401错误
func Unauthorized(c *gin.Context, message string) {
	if message == "" {
		message = "未登录"
	}
	Error(c, 401, message)
}

// NotFound 返回404错误
func NotFound(c *gin.Context, message string) {
	if message == "" {
		message = "资源不存在"
	}
	Error(c, 404, message)
}
