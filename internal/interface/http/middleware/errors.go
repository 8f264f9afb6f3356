package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/xiebiao/bookcatalog/internal/interface/http/dto"
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

// 错误页面模板
const (
	viewError        = "error"          // 图书不存在
	viewPageNotFound = "page_not_found" // 路由不存在
	viewServerError  = "server_error"   // 其他错误
)

// HandlerFunc 返回error的handler
type HandlerFunc func(c *gin.Context) error

// Handle 把返回error的handler适配为gin.HandlerFunc
// 错误记录到c.Errors并中止后续handler，由ErrorRenderer统一渲染
//
//	r.GET("/books/:id", middleware.Handle(h.Show))
func Handle(fn HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := fn(c); err != nil {
			_ = c.Error(err)
			c.Abort()
		}
	}
}

// NotFound 路由不存在（NoRoute/NoMethod）
func NotFound() gin.HandlerFunc {
	return func(c *gin.Context) {
		_ = c.Error(apperrors.ErrRouteNotFound)
		c.Abort()
	}
}

// ErrorRenderer 错误渲染中间件（必须注册在Recovery之前）
// 错误分类：
// 1. 路由不存在 → page_not_found（404）
// 2. 图书不存在 → error（404）
// 3. 其他 → server_error（参数格式错误400，其余500），错误详情只写日志
func ErrorRenderer(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last().Err
		appErr := apperrors.GetAppError(err)

		// 响应已经写出（如模板渲染到一半失败），只能记录日志
		if c.Writer.Written() {
			log.Error("error after response written",
				append(requestFields(c), zap.Int("code", appErr.Code), zap.Error(err))...,
			)
			return
		}

		var renderErr error
		switch {
		case errors.Is(err, apperrors.ErrRouteNotFound):
			renderErr = HTML(c, http.StatusNotFound, viewPageNotFound, dto.ErrorView{Title: "Page Not Found"})
		case appErr.HTTPStatus() == http.StatusNotFound:
			renderErr = HTML(c, http.StatusNotFound, viewError, dto.ErrorView{Title: "Book Not Found"})
		default:
			status := appErr.HTTPStatus()
			fields := append(requestFields(c), zap.Int("code", appErr.Code), zap.Error(err))
			if status >= http.StatusInternalServerError {
				log.Error("request failed", fields...)
			} else {
				log.Warn("bad request", fields...)
			}
			renderErr = HTML(c, status, viewServerError, dto.ErrorView{Title: "Server Error", RequestID: GetRequestID(c)})
		}

		// 错误页本身渲染失败
		if renderErr != nil {
			log.Error("render error page failed",
				append(requestFields(c), zap.Int("code", apperrors.ErrCodeRenderError), zap.Error(renderErr))...,
			)
			if !c.Writer.Written() {
				c.String(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
			}
		}
	}
}
