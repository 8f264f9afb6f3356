package handler

import (
	"github.com/gin-gonic/gin"
)

// Route 一条路由（方法 + 路径 + 处理器）
// 路由以数据形式声明，由router统一注册
type Route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
}
