package middleware

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

// Recovery 捕获handler中的panic
// panic转换为内部错误交给ErrorRenderer，返回500页面，进程不退出
func Recovery(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Error("panic recovered",
					append(requestFields(c), zap.Any("panic", r), zap.Stack("stack"))...,
				)
				_ = c.Error(apperrors.Wrapf(fmt.Errorf("panic: %v", r), "%s %s 处理失败", c.Request.Method, c.FullPath()))
				c.Abort()
			}
		}()
		c.Next()
	}
}
