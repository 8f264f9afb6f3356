package middleware

import (
	"fmt"

	"github.com/gin-gonic/gin"

	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

// HTML 渲染页面模板
// gin在渲染失败时只把错误追加到c.Errors；这里取回该错误并标记为ErrRenderError返回
//
//	return middleware.HTML(c, http.StatusOK, "all_books", view)
func HTML(c *gin.Context, status int, name string, data any) error {
	n := len(c.Errors)
	c.HTML(status, name, data)
	if len(c.Errors) == n {
		return nil
	}

	err := c.Errors.Last().Err
	c.Errors = c.Errors[:n]
	return apperrors.ErrRenderError.WithCause(fmt.Errorf("render %s: %w", name, err))
}
