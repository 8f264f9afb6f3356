package router

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/xiebiao/bookcatalog/docs" // Swagger文档
	"github.com/xiebiao/bookcatalog/internal/infrastructure/config"
	"github.com/xiebiao/bookcatalog/internal/interface/http/handler"
	"github.com/xiebiao/bookcatalog/internal/interface/http/middleware"
	"github.com/xiebiao/bookcatalog/pkg/metrics"
	"github.com/xiebiao/bookcatalog/pkg/response"
	"github.com/xiebiao/bookcatalog/web"
)

// New 创建并配置Gin引擎
// 设计说明：
// 1. 中间件顺序：请求日志 → 链路追踪 → 指标 → 错误渲染 → panic恢复 → 业务handler
// 2. 页面路由与JSON路由由各自handler的Routes()声明
// 3. 未匹配的路由与方法统一渲染page_not_found
func New(
	cfg *config.Config,
	log *zap.Logger,
	bookHandler *handler.BookHandler,
	bookAPIHandler *handler.BookAPIHandler,
) (*gin.Engine, error) {
	gin.SetMode(cfg.Server.Mode)
	metrics.InitMetrics()

	r := gin.New()
	r.HandleMethodNotAllowed = true

	// 页面模板与静态资源
	tmpl, err := web.Templates()
	if err != nil {
		return nil, fmt.Errorf("解析页面模板失败: %w", err)
	}
	r.SetHTMLTemplate(tmpl)

	r.Use(
		middleware.RequestLogger(log),
		middleware.Tracing(),
		middleware.Metrics(),
		middleware.ErrorRenderer(log),
		middleware.Recovery(log),
	)

	r.StaticFS("/static", web.Static())

	// 健康检查
	r.GET("/ping", func(c *gin.Context) {
		response.Success(c, gin.H{
			"message": "pong",
			"status":  "healthy",
		})
	})

	// Prometheus指标
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Swagger文档（访问/swagger/index.html，生产环境可关闭）
	if cfg.Server.Swagger {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// 页面路由
	register(r, bookHandler.Routes())

	// JSON路由
	register(r.Group("/api/v1"), bookAPIHandler.Routes())

	r.NoRoute(middleware.NotFound())
	r.NoMethod(middleware.NotFound())

	return r, nil
}

// register 注册路由表
func register(r gin.IRoutes, routes []handler.Route) {
	for _, route := range routes {
		r.Handle(route.Method, route.Path, route.Handler)
	}
}
