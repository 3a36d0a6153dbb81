package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// 领域错误分类。服务层只返回这些哨兵错误（可带上下文包装），
// API 边界统一翻译为固定的 HTTP 状态码，存储层细节不外泄。
var (
	ErrInvalidArgument = errors.New("参数错误")
	ErrNotFound        = errors.New("资源不存在")
	ErrConflict        = errors.New("资源冲突")
	ErrUnauthorized    = errors.New("未登录")
	ErrForbidden       = errors.New("没有操作权限")
	ErrInternal        = errors.New("服务器内部错误")
)

// Wrap 在哨兵错误上附加一段面向用户的说明
func Wrap(kind error, msg string) error {
	return fmt.Errorf("%w: %s", kind, msg)
}

// Wrapf 格式化版本的 Wrap
func Wrapf(kind error, format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", kind, fmt.Sprintf(format, args...))
}

// HTTPStatus 把领域错误映射为 HTTP 状态码
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Message 提取对用户可见的错误文案：Wrap 附加的说明部分，不带分类前缀。
// 非领域错误一律收敛为"服务器内部错误"，避免泄露内部细节。
func Message(err error) string {
	for _, kind := range []error{
		ErrInvalidArgument, ErrUnauthorized, ErrForbidden,
		ErrNotFound, ErrConflict,
	} {
		if errors.Is(err, kind) {
			return strings.TrimPrefix(err.Error(), kind.Error()+": ")
		}
	}
	return ErrInternal.Error()
}
